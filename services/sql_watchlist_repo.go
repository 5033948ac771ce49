package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cinelist-backend/models"
)

// SQLWatchlistRepo stores each category's JSON array in one row of the
// watchlists table. The same queries run on sqlite and postgres.
type SQLWatchlistRepo struct {
	db *sql.DB
}

// NewSQLWatchlistRepo creates a repo over a migrated database
func NewSQLWatchlistRepo(db *sql.DB) *SQLWatchlistRepo {
	return &SQLWatchlistRepo{db: db}
}

// Read returns the stored sequence; a missing row is an empty sequence
func (r *SQLWatchlistRepo) Read(category models.Category) ([]models.CatalogItem, error) {
	var raw string
	err := r.db.QueryRow(
		`SELECT items FROM watchlists WHERE storage_key = $1`,
		StorageKey(category),
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}

	var items []models.CatalogItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal watchlist: %w", err)
	}
	return items, nil
}

// Write upserts the category's row
func (r *SQLWatchlistRepo) Write(category models.Category, items []models.CatalogItem) error {
	if items == nil {
		items = []models.CatalogItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal watchlist: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO watchlists (storage_key, items, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (storage_key) DO UPDATE
		SET items = excluded.items, updated_at = excluded.updated_at`,
		StorageKey(category), string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save watchlist: %w", err)
	}
	return nil
}
