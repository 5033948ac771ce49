package services

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"cinelist-backend/models"
	"cinelist-backend/utils"
)

// WatchlistRepo is the durable key/value layer under the watchlist.
// Each category is stored under its own key and never touches the other.
type WatchlistRepo interface {
	Read(category models.Category) ([]models.CatalogItem, error)
	Write(category models.Category, items []models.CatalogItem) error
}

// StorageKey returns the key a category is persisted under
func StorageKey(category models.Category) string {
	if category == models.CategorySeries {
		return "tmdb_tv_watchlist"
	}
	return "tmdb_watchlist"
}

// FileWatchlistRepo keeps one JSON array per category in a directory
type FileWatchlistRepo struct {
	fs  afero.Fs
	dir string
	mu  sync.RWMutex
}

// NewFileWatchlistRepo creates a file-backed repo rooted at dir
func NewFileWatchlistRepo(fs afero.Fs, dir string) *FileWatchlistRepo {
	return &FileWatchlistRepo{
		fs:  fs,
		dir: dir,
	}
}

func (r *FileWatchlistRepo) path(category models.Category) string {
	return filepath.Join(r.dir, StorageKey(category)+".json")
}

// Read returns the stored sequence; a missing file is an empty sequence
func (r *FileWatchlistRepo) Read(category models.Category) ([]models.CatalogItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	path := r.path(category)
	if !utils.FileExists(r.fs, path) {
		return nil, nil
	}

	var items []models.CatalogItem
	if err := utils.ReadJSON(r.fs, path, &items); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return items, nil
}

// Write replaces the stored sequence for the category
func (r *FileWatchlistRepo) Write(category models.Category, items []models.CatalogItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	path := r.path(category)
	if items == nil {
		items = []models.CatalogItem{}
	}
	if err := utils.WriteJSON(r.fs, path, items); err != nil {
		log.Printf("FileWatchlistRepo.Write: Error saving %s: %v", path, err)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// MemoryWatchlistRepo keeps the watchlist in process memory
type MemoryWatchlistRepo struct {
	mu    sync.RWMutex
	items map[models.Category][]models.CatalogItem
}

// NewMemoryWatchlistRepo creates an empty in-memory repo
func NewMemoryWatchlistRepo() *MemoryWatchlistRepo {
	return &MemoryWatchlistRepo{
		items: make(map[models.Category][]models.CatalogItem),
	}
}

// Read returns a copy of the stored sequence
func (r *MemoryWatchlistRepo) Read(category models.Category) ([]models.CatalogItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.CatalogItem(nil), r.items[category]...), nil
}

// Write stores a copy of items
func (r *MemoryWatchlistRepo) Write(category models.Category, items []models.CatalogItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[category] = append([]models.CatalogItem{}, items...)
	return nil
}
