package services

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/afero"

	"cinelist-backend/config"
	"cinelist-backend/database"
	"cinelist-backend/utils"
)

// OpenWatchlistRepo builds the repo selected by WATCHLIST_BACKEND.
// The closer releases any database handle.
func OpenWatchlistRepo(cfg *config.Config) (WatchlistRepo, io.Closer, error) {
	log.Printf("OpenWatchlistRepo: Using %s backend", cfg.WatchlistBackend)

	switch cfg.WatchlistBackend {
	case config.BackendFile, "":
		return NewFileWatchlistRepo(afero.NewOsFs(), cfg.DataDir), utils.NoopCloser{}, nil
	case config.BackendMemory:
		return NewMemoryWatchlistRepo(), utils.NoopCloser{}, nil
	case config.BackendSQLite:
		db, err := database.Connect(database.DriverSQLite, cfg.SQLitePath())
		if err != nil {
			return nil, nil, err
		}
		return NewSQLWatchlistRepo(db), db, nil
	case config.BackendPostgres:
		db, err := database.Connect(database.DriverPostgres, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLWatchlistRepo(db), db, nil
	}
	return nil, nil, fmt.Errorf("unknown watchlist backend %q", cfg.WatchlistBackend)
}
