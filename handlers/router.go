package handlers

import (
	"bufio"
	"crypto/subtle"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// RouterConfig collects the handlers mounted by NewRouter
type RouterConfig struct {
	Watchlist *WatchlistHandler
	Catalog   *CatalogHandler
	Similar   *SimilarHandler
	// APIKey guards watchlist writes when non-empty
	APIKey string
}

// NewRouter builds the API routes wrapped in logging and CORS
func NewRouter(rc RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(createLoggingMiddleware())

	protect := createAPIKeyMiddleware(rc.APIKey)

	r.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Printf("healthcheck: Unable to write response: %v", err)
		}
	}).Methods("GET")

	// Watchlist routes
	r.HandleFunc("/api/watchlist", rc.Watchlist.GetWatchlist).Methods("GET")
	r.HandleFunc("/api/watchlist/events", rc.Watchlist.Events).Methods("GET")
	r.HandleFunc("/api/watchlist/{category}", rc.Watchlist.ListCategory).Methods("GET")
	r.Handle("/api/watchlist/{category}", protect(http.HandlerFunc(rc.Watchlist.Add))).Methods("POST")
	r.Handle("/api/watchlist/{category}/toggle", protect(http.HandlerFunc(rc.Watchlist.Toggle))).Methods("POST")
	r.HandleFunc("/api/watchlist/{category}/{id:[0-9]+}", rc.Watchlist.Contains).Methods("GET")
	r.Handle("/api/watchlist/{category}/{id:[0-9]+}", protect(http.HandlerFunc(rc.Watchlist.Remove))).Methods("DELETE")

	// Similar-title pagination sessions
	r.HandleFunc("/api/similar", rc.Similar.Create).Methods("POST")
	r.HandleFunc("/api/similar/{session}", rc.Similar.State).Methods("GET")
	r.HandleFunc("/api/similar/{session}", rc.Similar.Delete).Methods("DELETE")
	r.HandleFunc("/api/similar/{session}/more", rc.Similar.More).Methods("POST")
	r.HandleFunc("/api/similar/{session}/scroll", rc.Similar.Scroll).Methods("POST")
	r.HandleFunc("/api/similar/{session}/subject", rc.Similar.Subject).Methods("PUT")

	// Catalog routes
	r.HandleFunc("/api/search", rc.Catalog.Search).Methods("GET")
	r.HandleFunc("/api/{category}/trending", rc.Catalog.Trending).Methods("GET")
	r.HandleFunc("/api/{category}/popular", rc.Catalog.Popular).Methods("GET")
	r.HandleFunc("/api/{category}/{id:[0-9]+}", rc.Catalog.Details).Methods("GET")

	// Set up CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	return corsHandler.Handler(r)
}

// createAPIKeyMiddleware creates middleware for API key authentication.
// An empty key disables the check.
func createAPIKeyMiddleware(expectedKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if expectedKey == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip authentication for OPTIONS requests
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			// Get API key from Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "Missing Authorization header")
				return
			}

			// Check if header starts with "Bearer "
			if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
				writeError(w, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}

			if subtle.ConstantTimeCompare([]byte(authHeader[7:]), []byte(expectedKey)) != 1 {
				writeError(w, http.StatusUnauthorized, "Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// createLoggingMiddleware creates middleware for logging requests
func createLoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			log.Printf("REQUEST: %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)

			// Create a response writer wrapper to capture status code
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			log.Printf("RESPONSE: %s %s - Status: %d - Duration: %v", r.Method, r.URL.Path, wrapped.statusCode, duration)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush keeps the event stream working through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijacking not supported")
	}
	return h.Hijack()
}
