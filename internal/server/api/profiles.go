// Package api provides HTTP API handlers for the Mudra virtual mouse.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/store"
)

// ProfileHandler handles HTTP requests for tuning profile resources.
type ProfileHandler struct {
	store *store.Store
}

// NewProfileHandler creates a new ProfileHandler with the given store.
func NewProfileHandler(s *store.Store) *ProfileHandler {
	return &ProfileHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/profiles or /api/profiles/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/profiles")
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
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type profilePayload struct {
	Name                string  `json:"name"`
	SmoothingFactor     float64 `json:"smoothing_factor"`
	EdgeMargin          int     `json:"edge_margin"`
	PinchThreshold      float64 `json:"pinch_threshold"`
	DragHoldMs          int     `json:"drag_hold_ms"`
	ClickCooldownMs     int     `json:"click_cooldown_ms"`
	DoubleClickWindowMs int     `json:"double_click_window_ms"`
	ShortcutCooldownMs  int     `json:"shortcut_cooldown_ms"`
	AuthHoldMs          int     `json:"auth_hold_ms"`
	ScrollSensitivity   float64 `json:"scroll_sensitivity"`
}

type profileResponse struct {
	ID string `json:"id"`
	profilePayload
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type listProfilesResponse struct {
	Profiles []profileResponse `json:"profiles"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Profile to a profileResponse.
func toResponse(p *store.Profile) profileResponse {
	return profileResponse{
		ID: p.ID,
		profilePayload: profilePayload{
			Name:                p.Name,
			SmoothingFactor:     p.SmoothingFactor,
			EdgeMargin:          p.EdgeMargin,
			PinchThreshold:      p.PinchThreshold,
			DragHoldMs:          p.DragHoldMs,
			ClickCooldownMs:     p.ClickCooldownMs,
			DoubleClickWindowMs: p.DoubleClickWindowMs,
			ShortcutCooldownMs:  p.ShortcutCooldownMs,
			AuthHoldMs:          p.AuthHoldMs,
			ScrollSensitivity:   p.ScrollSensitivity,
		},
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (p profilePayload) toProfile(id string) *store.Profile {
	return &store.Profile{
		ID:                  id,
		Name:                p.Name,
		SmoothingFactor:     p.SmoothingFactor,
		EdgeMargin:          p.EdgeMargin,
		PinchThreshold:      p.PinchThreshold,
		DragHoldMs:          p.DragHoldMs,
		ClickCooldownMs:     p.ClickCooldownMs,
		DoubleClickWindowMs: p.DoubleClickWindowMs,
		ShortcutCooldownMs:  p.ShortcutCooldownMs,
		AuthHoldMs:          p.AuthHoldMs,
		ScrollSensitivity:   p.ScrollSensitivity,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/profiles and returns all profiles.
func (h *ProfileHandler) list(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.store.Profiles().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list profiles")
		return
	}

	response := listProfilesResponse{
		Profiles: make([]profileResponse, 0, len(profiles)),
	}
	for _, p := range profiles {
		response.Profiles = append(response.Profiles, toResponse(p))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/profiles/{id} and returns a single profile.
func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	profile, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(profile))
}

// create handles POST /api/profiles and creates a new profile.
func (h *ProfileHandler) create(w http.ResponseWriter, r *http.Request) {
	var req profilePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Profile name is required")
		return
	}

	profile := req.toProfile(uuid.NewString())
	if err := h.store.Profiles().Create(profile); err != nil {
		writeError(w, http.StatusConflict, "Failed to create profile")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(profile))
}

// update handles PUT /api/profiles/{id} and rewrites an existing profile.
func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var req profilePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Profile name is required")
		return
	}

	profile := req.toProfile(id)
	if err := h.store.Profiles().Update(profile); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(profile))
}

// delete handles DELETE /api/profiles/{id} and removes a profile.
func (h *ProfileHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Profiles().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
