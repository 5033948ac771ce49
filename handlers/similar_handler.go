package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"cinelist-backend/models"
	"cinelist-backend/services"
)

// SimilarHandler drives similar-title pagination sessions
type SimilarHandler struct {
	sessions *services.SimilarSessions
}

// NewSimilarHandler creates a new similar handler
func NewSimilarHandler(sessions *services.SimilarSessions) *SimilarHandler {
	return &SimilarHandler{
		sessions: sessions,
	}
}

type createSimilarRequest struct {
	Category string `json:"category"`
	ID       int    `json:"id"`
}

type subjectRequest struct {
	ID int `json:"id"`
}

type scrollResponse struct {
	Loaded bool                `json:"loaded"`
	State  models.SimilarState `json:"state"`
}

// Create handles POST /api/similar
func (h *SimilarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request createSimilarRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	category, err := models.ParseCategory(request.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if request.ID == 0 {
		writeError(w, http.StatusBadRequest, "Subject id is required")
		return
	}

	id, loader := h.sessions.Create(r.Context(), category, request.ID)
	writeJSON(w, http.StatusCreated, sessionState(id, loader))
}

// State handles GET /api/similar/{session}
func (h *SimilarHandler) State(w http.ResponseWriter, r *http.Request) {
	id, loader, ok := h.loader(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionState(id, loader))
}

// More handles POST /api/similar/{session}/more
func (h *SimilarHandler) More(w http.ResponseWriter, r *http.Request) {
	id, loader, ok := h.loader(w, r)
	if !ok {
		return
	}
	loader.LoadMore(r.Context())
	writeJSON(w, http.StatusOK, sessionState(id, loader))
}

// Scroll handles POST /api/similar/{session}/scroll.
// The next page is only loaded when the viewport is near the bottom.
func (h *SimilarHandler) Scroll(w http.ResponseWriter, r *http.Request) {
	id, loader, ok := h.loader(w, r)
	if !ok {
		return
	}

	var viewport services.Viewport
	if err := json.NewDecoder(r.Body).Decode(&viewport); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	loaded := false
	if loader.ShouldLoadMore(viewport) {
		loaded = loader.LoadMore(r.Context())
	}
	writeJSON(w, http.StatusOK, scrollResponse{Loaded: loaded, State: sessionState(id, loader)})
}

// Subject handles PUT /api/similar/{session}/subject
func (h *SimilarHandler) Subject(w http.ResponseWriter, r *http.Request) {
	id, loader, ok := h.loader(w, r)
	if !ok {
		return
	}

	var request subjectRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.ID == 0 {
		writeError(w, http.StatusBadRequest, "Subject id is required")
		return
	}

	loader.Reset(request.ID)
	loader.LoadPage(r.Context(), 1, true)
	writeJSON(w, http.StatusOK, sessionState(id, loader))
}

// Delete handles DELETE /api/similar/{session}
func (h *SimilarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["session"]
	if err := h.sessions.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SimilarHandler) loader(w http.ResponseWriter, r *http.Request) (string, *services.SimilarLoader, bool) {
	id := mux.Vars(r)["session"]
	loader, err := h.sessions.Get(id)
	if errors.Is(err, services.ErrSessionNotFound) {
		log.Printf("loader: Unknown session %s", id)
		writeError(w, http.StatusNotFound, err.Error())
		return "", nil, false
	}
	return id, loader, true
}

func sessionState(id string, loader *services.SimilarLoader) models.SimilarState {
	state := loader.State()
	state.Session = id
	return state
}
