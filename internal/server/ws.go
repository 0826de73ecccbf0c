package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Event is one executed action pushed to websocket clients.
type Event struct {
	ID        string `json:"id"`
	Origin    string `json:"origin"`
	Action    string `json:"action"`
	Detail    string `json:"detail,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// EventsHandler broadcasts executed actions to websocket clients. The
// action dispatcher pushes events via Publish; slow clients are
// dropped rather than blocking the publisher.
type EventsHandler struct {
	logger  *zap.SugaredLogger
	clients map[*websocket.Conn]chan Event
	mu      sync.RWMutex
}

// NewEventsHandler creates an EventsHandler with no clients.
func NewEventsHandler(logger *zap.SugaredLogger) *EventsHandler {
	return &EventsHandler{
		logger:  logger,
		clients: make(map[*websocket.Conn]chan Event),
	}
}

// Publish fans an event out to every connected client. Safe to call
// from any goroutine.
func (h *EventsHandler) Publish(origin, action, detail string) {
	ev := Event{
		ID:        uuid.NewString(),
		Origin:    origin,
		Action:    action,
		Detail:    detail,
		Timestamp: time.Now().UnixMilli(),
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.clients {
		select {
		case ch <- ev:
		default:
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *EventsHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("Websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ch := make(chan Event, 16)
	h.mu.Lock()
	h.clients[conn] = ch
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Reader goroutine detects the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev := <-ch:
			msg, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
