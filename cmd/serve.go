package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"cinelist-backend/config"
	"cinelist-backend/handlers"
	"cinelist-backend/services"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Example: `  # Start server on the configured PORT (default 8080)
  cinelist serve

  # Start server on a custom port
  cinelist serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if port != "" {
				cfg.Port = port
			}
			if cfg.TMDBAPIKey == "" {
				log.Printf("serve: TMDB_API_KEY is not set, catalog requests will fail")
			}

			// Initialize services
			watchlistService, closer, err := openWatchlist(cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			tmdb := services.NewTMDBClient(cfg.TMDBAPIKey, cfg.TMDBBaseURL, cfg.TMDBTimeout)
			sessions := services.NewSimilarSessions(tmdb, cfg.SimilarSessionTTL)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go sessions.Run(ctx)

			// Initialize handlers
			router := handlers.NewRouter(handlers.RouterConfig{
				Watchlist: handlers.NewWatchlistHandler(watchlistService),
				Catalog:   handlers.NewCatalogHandler(tmdb, watchlistService),
				Similar:   handlers.NewSimilarHandler(sessions),
				APIKey:    cfg.APIKey,
			})

			server := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			serverErr := make(chan error, 1)
			go func() {
				log.Printf("serve: Starting server on port %s", cfg.Port)
				log.Printf("serve: Watchlist backend: %s", cfg.WatchlistBackend)
				log.Printf("serve: Data directory: %s", cfg.DataDir)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			select {
			case <-ctx.Done():
				log.Printf("serve: Shutting down server...")
				shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancelShutdown()
				if err := server.Shutdown(shutdownCtx); err != nil {
					log.Printf("serve: Server shutdown failed: %v", err)
					return err
				}
				log.Printf("serve: Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")

	return cmd
}
