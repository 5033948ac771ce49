package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Watchlist persistence backends
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds the application configuration
type Config struct {
	Port              string
	DataDir           string
	WatchlistBackend  string
	DatabaseURL       string
	TMDBAPIKey        string
	TMDBBaseURL       string
	TMDBTimeout       time.Duration
	APIKey            string
	LogFile           string
	SimilarSessionTTL time.Duration
}

// LoadConfig loads the configuration from environment variables or defaults
func LoadConfig() *Config {
	// Get the current working directory
	cwd, _ := os.Getwd()

	defaultDataDir := filepath.Join(cwd, "data")

	return &Config{
		Port:              getEnv("PORT", "8080"),
		DataDir:           getEnv("DATA_DIR", defaultDataDir),
		WatchlistBackend:  getEnv("WATCHLIST_BACKEND", BackendFile),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		TMDBAPIKey:        getEnv("TMDB_API_KEY", ""),
		TMDBBaseURL:       getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBTimeout:       getEnvDuration("TMDB_TIMEOUT", 15*time.Second),
		APIKey:            getEnv("API_KEY", ""),
		LogFile:           getEnv("LOG_FILE", ""),
		SimilarSessionTTL: getEnvDuration("SIMILAR_SESSION_TTL", 30*time.Minute),
	}
}

// SQLitePath is where the sqlite backend keeps its database
func (c *Config) SQLitePath() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return filepath.Join(c.DataDir, "watchlist.db")
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration parses a duration such as "15s"; a bare integer is read as seconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("getEnvDuration: Invalid value %q for %s, using %v", value, key, defaultValue)
	return defaultValue
}
