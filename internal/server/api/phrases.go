package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/voice"
)

// PhraseHandler handles HTTP requests for custom voice phrase resources.
type PhraseHandler struct {
	store *store.Store

	// OnChanged, if set, is called after a successful create or delete
	// so the running voice vocabulary can be reloaded.
	OnChanged func()
}

// NewPhraseHandler creates a new PhraseHandler with the given store.
func NewPhraseHandler(s *store.Store) *PhraseHandler {
	return &PhraseHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *PhraseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/phrases or /api/phrases/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/phrases")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type createPhraseRequest struct {
	Phrase  string `json:"phrase"`
	Command string `json:"command"`
}

type phraseResponse struct {
	ID        string `json:"id"`
	Phrase    string `json:"phrase"`
	Command   string `json:"command"`
	CreatedAt string `json:"created_at"`
}

type listPhrasesResponse struct {
	Phrases []phraseResponse `json:"phrases"`
}

func toPhraseResponse(p *store.Phrase) phraseResponse {
	return phraseResponse{
		ID:        p.ID,
		Phrase:    p.Phrase,
		Command:   p.Command,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// list handles GET /api/phrases and returns all custom phrases.
func (h *PhraseHandler) list(w http.ResponseWriter, r *http.Request) {
	phrases, err := h.store.Phrases().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list phrases")
		return
	}

	response := listPhrasesResponse{
		Phrases: make([]phraseResponse, 0, len(phrases)),
	}
	for _, p := range phrases {
		response.Phrases = append(response.Phrases, toPhraseResponse(p))
	}

	writeJSON(w, http.StatusOK, response)
}

// create handles POST /api/phrases and creates a new phrase. The
// command must name one of the built-in voice commands.
func (h *PhraseHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createPhraseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Phrase) == "" {
		writeError(w, http.StatusBadRequest, "Phrase is required")
		return
	}
	if _, ok := voice.CommandFromName(req.Command); !ok {
		writeError(w, http.StatusBadRequest, "Unknown command name")
		return
	}

	phrase := &store.Phrase{
		ID:      uuid.NewString(),
		Phrase:  strings.ToLower(strings.TrimSpace(req.Phrase)),
		Command: req.Command,
	}
	if err := h.store.Phrases().Create(phrase); err != nil {
		writeError(w, http.StatusConflict, "Failed to create phrase")
		return
	}

	if h.OnChanged != nil {
		h.OnChanged()
	}
	writeJSON(w, http.StatusCreated, toPhraseResponse(phrase))
}

// delete handles DELETE /api/phrases/{id} and removes a phrase.
func (h *PhraseHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Phrases().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Phrase not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete phrase")
		return
	}

	if h.OnChanged != nil {
		h.OnChanged()
	}
	w.WriteHeader(http.StatusNoContent)
}
