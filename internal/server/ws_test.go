package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func TestEventsHandler_PublishWithoutClients(t *testing.T) {
	h := NewEventsHandler(zap.NewNop().Sugar())

	// Must not block or panic with nobody connected.
	h.Publish("gesture", "click", "")

	if h.ClientCount() != 0 {
		t.Errorf("client count = %d, want 0", h.ClientCount())
	}
}

func TestEventsHandler_BroadcastsToClient(t *testing.T) {
	h := NewEventsHandler(zap.NewNop().Sugar())
	srv := httptest.NewServer(h)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	defer conn.Close()

	// Wait for the server to register the client.
	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	h.Publish("voice", "right-click", "please right click now")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read event: %v", err)
	}

	var ev Event
	if err := json.Unmarshal(msg, &ev); err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if ev.ID == "" {
		t.Error("event should carry a generated ID")
	}
	if ev.Origin != "voice" || ev.Action != "right-click" {
		t.Errorf("event = %+v, want voice/right-click", ev)
	}
}
