package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"cinelist-backend/models"
	"cinelist-backend/services"
)

// WatchlistHandler handles watchlist related requests
type WatchlistHandler struct {
	watchlistService *services.WatchlistService
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(watchlistService *services.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistService: watchlistService,
	}
}

// GetWatchlist handles GET /api/watchlist
func (h *WatchlistHandler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.watchlistService.Snapshot())
}

// ListCategory handles GET /api/watchlist/{category}
func (h *WatchlistHandler) ListCategory(w http.ResponseWriter, r *http.Request) {
	category, err := pathCategory(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.watchlistService.List(category))
}

// Contains handles GET /api/watchlist/{category}/{id}
func (h *WatchlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	category, err := pathCategory(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"inWatchlist": h.watchlistService.Contains(id, category)})
}

// Add handles POST /api/watchlist/{category}
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	category, item, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	items, err := h.watchlistService.Add(item, category)
	if err != nil {
		log.Printf("Add: Error updating watchlist: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to update watchlist")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Toggle handles POST /api/watchlist/{category}/toggle
func (h *WatchlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	category, item, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	items, err := h.watchlistService.Toggle(item, category)
	if err != nil {
		log.Printf("Toggle: Error updating watchlist: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to update watchlist")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"inWatchlist": containsItem(items, item.ID),
		"items":       items,
	})
}

// Remove handles DELETE /api/watchlist/{category}/{id}
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	category, err := pathCategory(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.watchlistService.Remove(id, category)
	if err != nil {
		log.Printf("Remove: Error updating watchlist: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to update watchlist")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Events handles GET /api/watchlist/events as a Server-Sent Events stream.
// Every write to either category is pushed to the client.
func (h *WatchlistHandler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	changes := make(chan models.WatchlistChange, 16)
	unsubscribe := h.watchlistService.Subscribe(func(change models.WatchlistChange) {
		select {
		case changes <- change:
		default:
			log.Printf("Events: Client too slow, dropping %s update", change.Category)
		}
	})
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	log.Printf("Events: Client %s subscribed", r.RemoteAddr)
	for {
		select {
		case <-r.Context().Done():
			log.Printf("Events: Client %s disconnected", r.RemoteAddr)
			return
		case change := <-changes:
			data, err := json.Marshal(change)
			if err != nil {
				log.Printf("Events: Error encoding change: %v", err)
				continue
			}
			fmt.Fprintf(w, "event: watchlist\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func (h *WatchlistHandler) decodeItem(w http.ResponseWriter, r *http.Request) (models.Category, models.CatalogItem, bool) {
	var item models.CatalogItem

	category, err := pathCategory(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", item, false
	}

	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		log.Printf("decodeItem: Error decoding JSON: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return "", item, false
	}
	if item.ID == 0 {
		writeError(w, http.StatusBadRequest, "Item id is required")
		return "", item, false
	}
	return category, item, true
}

func containsItem(items []models.CatalogItem, id int) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}
