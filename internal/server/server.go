// Package server provides the local HTTP control surface for the
// Mudra virtual mouse.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/store"
)

// ControlHooks let the server toggle the running pipelines without
// importing them.
type ControlHooks struct {
	SetMouse       func(enabled bool)
	SetVoice       func(enabled bool)
	VoiceListening func() bool
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	State     *control.State
	Hooks     ControlHooks
	Events    *EventsHandler
	// OnPhrasesChanged is forwarded to the phrase API handler.
	OnPhrasesChanged func()
}

// Server represents the HTTP control server.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/status", s.handleStatus)
	s.mux.HandleFunc("/api/control", s.handleControl)

	if s.config.Store != nil {
		profileHandler := api.NewProfileHandler(s.config.Store)
		s.mux.Handle("/api/profiles", profileHandler)
		s.mux.Handle("/api/profiles/", profileHandler)

		phraseHandler := api.NewPhraseHandler(s.config.Store)
		phraseHandler.OnChanged = s.config.OnPhrasesChanged
		s.mux.Handle("/api/phrases", phraseHandler)
		s.mux.Handle("/api/phrases/", phraseHandler)
	}

	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}

	if s.config.Events != nil {
		s.mux.Handle("/api/events", s.config.Events)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

type statusResponse struct {
	control.Snapshot
	VoiceListening bool `json:"voice_listening"`
}

// handleStatus handles GET requests to /api/status with a snapshot of
// the pointer state and the voice listener.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeStatus(w)
}

func (s *Server) writeStatus(w http.ResponseWriter) {
	resp := statusResponse{}
	if s.config.State != nil {
		resp.Snapshot = s.config.State.Snapshot()
	}
	if s.config.Hooks.VoiceListening != nil {
		resp.VoiceListening = s.config.Hooks.VoiceListening()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type controlRequest struct {
	Mouse *bool `json:"mouse"`
	Voice *bool `json:"voice"`
}

// handleControl handles POST requests to /api/control toggling the
// mouse pipeline and the voice listener.
func (s *Server) handleControl(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req controlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Mouse != nil && s.config.Hooks.SetMouse != nil {
		s.config.Hooks.SetMouse(*req.Mouse)
	}
	if req.Voice != nil && s.config.Hooks.SetVoice != nil {
		s.config.Hooks.SetVoice(*req.Voice)
	}

	s.writeStatus(w)
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
