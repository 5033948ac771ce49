package services

import (
	"context"
	"log"
	"sync"

	"cinelist-backend/models"
)

const (
	// MaxSimilarPages caps pagination no matter how many pages the source reports
	MaxSimilarPages = 5
	// ScrollThreshold is how close to the bottom of the document a scroll must
	// get before the next page is requested
	ScrollThreshold = 1000
)

// Viewport describes the client's scroll position
type Viewport struct {
	ScrollTop      float64 `json:"scrollTop"`
	ViewportHeight float64 `json:"viewportHeight"`
	DocumentHeight float64 `json:"documentHeight"`
}

// NearBottom reports whether the viewport is within ScrollThreshold of the end
func (v Viewport) NearBottom() bool {
	return v.ViewportHeight+v.ScrollTop >= v.DocumentHeight-ScrollThreshold
}

// SimilarLoader grows the list of titles related to one subject page by page.
type SimilarLoader struct {
	source   RelatedSource
	category models.Category

	mu        sync.Mutex
	subject   int
	gen       uint64 // bumped on every Reset
	items     []models.CatalogItem
	nextPage  int
	isLoading bool
	hasMore   bool
}

// NewSimilarLoader creates a loader for subject with nothing loaded yet
func NewSimilarLoader(source RelatedSource, category models.Category, subject int) *SimilarLoader {
	return &SimilarLoader{
		source:   source,
		category: category,
		subject:  subject,
		items:    []models.CatalogItem{},
		nextPage: 1,
		hasMore:  true,
	}
}

// Reset switches the loader to a new subject and clears accumulated state.
// A request still in flight for the previous subject is discarded when it returns.
func (l *SimilarLoader) Reset(subject int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.gen++
	l.subject = subject
	l.items = []models.CatalogItem{}
	l.nextPage = 1
	l.hasMore = true
	l.isLoading = false
}

// LoadPage requests page and merges it into the accumulated items.
// It is a no-op while a load is running or, unless reset is set, once the
// list is exhausted. The return value reports whether a request was issued.
func (l *SimilarLoader) LoadPage(ctx context.Context, page int, reset bool) bool {
	l.mu.Lock()
	if !l.begin(reset) {
		l.mu.Unlock()
		return false
	}
	gen, subject := l.gen, l.subject
	l.mu.Unlock()

	l.fetch(ctx, gen, subject, page, reset)
	return true
}

// LoadMore requests the next page without resetting
func (l *SimilarLoader) LoadMore(ctx context.Context) bool {
	l.mu.Lock()
	if !l.begin(false) {
		l.mu.Unlock()
		return false
	}
	gen, subject, page := l.gen, l.subject, l.nextPage
	l.mu.Unlock()

	l.fetch(ctx, gen, subject, page, false)
	return true
}

// begin applies the load guard and marks a load in flight. Callers hold l.mu.
func (l *SimilarLoader) begin(reset bool) bool {
	if l.isLoading || (!l.hasMore && !reset) {
		return false
	}
	l.isLoading = true
	return true
}

// fetch runs one request for the snapshot taken under the lock and merges the
// result unless the loader was reset in the meantime.
func (l *SimilarLoader) fetch(ctx context.Context, gen uint64, subject, page int, reset bool) {
	result, err := l.source.GetRelated(ctx, l.category, subject, page)

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen {
		log.Printf("LoadPage: Dropping page %d for %s %d, subject changed to %d", page, l.category, subject, l.subject)
		return
	}
	defer func() { l.isLoading = false }()

	if err != nil {
		log.Printf("LoadPage: Error fetching similar %s for %d page %d: %v", l.category, subject, page, err)
		if reset {
			l.items = fallbackSimilar(l.category)
		}
		l.hasMore = false
		return
	}

	if reset {
		l.items = append([]models.CatalogItem{}, result.Items...)
	} else {
		l.items = append(l.items, result.Items...)
	}
	l.hasMore = page < result.TotalPages && page < MaxSimilarPages
	l.nextPage = page + 1

	log.Printf("LoadPage: Loaded page %d/%d for %s %d (%d items, hasMore=%t)",
		page, result.TotalPages, l.category, subject, len(l.items), l.hasMore)
}

// ShouldLoadMore applies the scroll trigger: near the bottom, more pages
// available and nothing in flight.
func (l *SimilarLoader) ShouldLoadMore(v Viewport) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return v.NearBottom() && l.hasMore && !l.isLoading
}

// State returns a snapshot of the loader
func (l *SimilarLoader) State() models.SimilarState {
	l.mu.Lock()
	defer l.mu.Unlock()

	return models.SimilarState{
		Category:  l.category,
		SubjectID: l.subject,
		Items:     append([]models.CatalogItem{}, l.items...),
		NextPage:  l.nextPage,
		IsLoading: l.isLoading,
		HasMore:   l.hasMore,
	}
}
