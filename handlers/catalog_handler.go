package handlers

import (
	"log"
	"net/http"

	"cinelist-backend/services"
)

// CatalogHandler serves listings and details from the content source.
// Source failures are logged and answered with canned content.
type CatalogHandler struct {
	source           services.ContentSource
	watchlistService *services.WatchlistService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(source services.ContentSource, watchlistService *services.WatchlistService) *CatalogHandler {
	return &CatalogHandler{
		source:           source,
		watchlistService: watchlistService,
	}
}

// Search handles GET /api/search?q=
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := h.source.Search(r.Context(), query)
	if err != nil {
		log.Printf("Search: Error searching %q, serving fallback: %v", query, err)
		results = services.FallbackSearch(query)
	}
	writeJSON(w, http.StatusOK, results)
}

// Trending handles GET /api/{category}/trending
func (h *CatalogHandler) Trending(w http.ResponseWriter, r *http.Request) {
	category, err := pathCategory(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.source.Trending(r.Context(), category, r.URL.Query().Get("window"))
	if err != nil {
		log.Printf("Trending: Error fetching %s, serving fallback: %v", category, err)
		items = services.FallbackTrending(category)
	}
	writeJSON(w, http.StatusOK, items)
}

// Popular handles GET /api/{category}/popular
func (h *CatalogHandler) Popular(w http.ResponseWriter, r *http.Request) {
	category, err := pathCategory(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.source.Popular(r.Context(), category)
	if err != nil {
		log.Printf("Popular: Error fetching %s, serving fallback: %v", category, err)
		items = services.FallbackPopular(category)
	}
	writeJSON(w, http.StatusOK, items)
}

// Details handles GET /api/{category}/{id}
func (h *CatalogHandler) Details(w http.ResponseWriter, r *http.Request) {
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

	details, err := h.source.Details(r.Context(), category, id)
	if err != nil {
		log.Printf("Details: Error fetching %s %d, serving fallback: %v", category, id, err)
		details = services.FallbackDetails(category, id)
	}
	details.InWatchlist = h.watchlistService.Contains(id, category)
	writeJSON(w, http.StatusOK, details)
}
