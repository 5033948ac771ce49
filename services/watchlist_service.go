package services

import (
	"log"
	"sync"

	"cinelist-backend/models"
)

// WatchlistService is the category-scoped set of saved titles.
// Entries are addressed by id only and kept in insertion order.
type WatchlistService struct {
	repo WatchlistRepo
	// serializes read-modify-write cycles from concurrent requests
	mutex sync.Mutex

	subMu       sync.RWMutex
	subscribers map[int]func(models.WatchlistChange)
	nextSubID   int
}

// NewWatchlistService creates a new watchlist service
func NewWatchlistService(repo WatchlistRepo) *WatchlistService {
	return &WatchlistService{
		repo:        repo,
		subscribers: make(map[int]func(models.WatchlistChange)),
	}
}

// List returns the persisted sequence for the category.
// Missing or corrupt data reads as empty.
func (s *WatchlistService) List(category models.Category) []models.CatalogItem {
	items, err := s.repo.Read(category)
	if err != nil {
		log.Printf("List: Error reading %s watchlist, treating as empty: %v", category, err)
		return []models.CatalogItem{}
	}
	if items == nil {
		return []models.CatalogItem{}
	}
	return items
}

// Add appends item unless an entry with the same id exists.
// Storage is only written when the sequence changed.
func (s *WatchlistService) Add(item models.CatalogItem, category models.Category) ([]models.CatalogItem, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.add(item, category)
}

func (s *WatchlistService) add(item models.CatalogItem, category models.Category) ([]models.CatalogItem, error) {
	current := s.List(category)
	updated, changed := appendUnique(current, item)
	if !changed {
		log.Printf("Add: %s %d already in watchlist", category, item.ID)
		return current, nil
	}

	if err := s.persist(category, updated); err != nil {
		return current, err
	}
	log.Printf("Add: Added %s %d (%d entries)", category, item.ID, len(updated))
	return updated, nil
}

// Remove drops every entry with id. Storage is written even when nothing matched.
func (s *WatchlistService) Remove(id int, category models.Category) ([]models.CatalogItem, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.remove(id, category)
}

func (s *WatchlistService) remove(id int, category models.Category) ([]models.CatalogItem, error) {
	current := s.List(category)
	updated := withoutID(current, id)

	if err := s.persist(category, updated); err != nil {
		return current, err
	}
	log.Printf("Remove: Removed %s %d (%d entries)", category, id, len(updated))
	return updated, nil
}

// Contains reports whether an entry with id is saved under category
func (s *WatchlistService) Contains(id int, category models.Category) bool {
	return containsID(s.List(category), id)
}

// Toggle removes the item if present and adds it otherwise.
// Exactly one write happens.
func (s *WatchlistService) Toggle(item models.CatalogItem, category models.Category) ([]models.CatalogItem, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if containsID(s.List(category), item.ID) {
		return s.remove(item.ID, category)
	}
	return s.add(item, category)
}

// Counts returns the number of saved entries per category
func (s *WatchlistService) Counts() map[models.Category]int {
	counts := make(map[models.Category]int, len(models.Categories))
	for _, category := range models.Categories {
		counts[category] = len(s.List(category))
	}
	return counts
}

// Snapshot returns both categories with counts. Entries stay as stored; the
// copies handed out carry their category so exported items are self-describing.
func (s *WatchlistService) Snapshot() models.WatchlistResponse {
	movies := withCategory(s.List(models.CategoryMovie), models.CategoryMovie)
	series := withCategory(s.List(models.CategorySeries), models.CategorySeries)
	return models.WatchlistResponse{
		Movies: movies,
		Series: series,
		Counts: map[models.Category]int{
			models.CategoryMovie:  len(movies),
			models.CategorySeries: len(series),
		},
	}
}

// Subscribe registers fn to be called after every successful write.
// The returned function unregisters it.
func (s *WatchlistService) Subscribe(fn func(models.WatchlistChange)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *WatchlistService) persist(category models.Category, items []models.CatalogItem) error {
	if err := s.repo.Write(category, items); err != nil {
		log.Printf("persist: Error saving %s watchlist: %v", category, err)
		return err
	}
	s.notify(models.WatchlistChange{Category: category, Items: items})
	return nil
}

func (s *WatchlistService) notify(change models.WatchlistChange) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for _, fn := range s.subscribers {
		fn(change)
	}
}

func containsID(items []models.CatalogItem, id int) bool {
	for _, existing := range items {
		if existing.ID == id {
			return true
		}
	}
	return false
}

// appendUnique returns a new slice with item at the end, or items unchanged
// if the id is already present.
func appendUnique(items []models.CatalogItem, item models.CatalogItem) ([]models.CatalogItem, bool) {
	if containsID(items, item.ID) {
		return items, false
	}
	updated := make([]models.CatalogItem, 0, len(items)+1)
	updated = append(updated, items...)
	return append(updated, item), true
}

func withCategory(items []models.CatalogItem, category models.Category) []models.CatalogItem {
	out := make([]models.CatalogItem, len(items))
	for i, item := range items {
		if item.Category == "" {
			item.Category = category
		}
		out[i] = item
	}
	return out
}

func withoutID(items []models.CatalogItem, id int) []models.CatalogItem {
	updated := make([]models.CatalogItem, 0, len(items))
	for _, existing := range items {
		if existing.ID != id {
			updated = append(updated, existing)
		}
	}
	return updated
}
