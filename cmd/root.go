package cmd

import (
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"cinelist-backend/config"
	"cinelist-backend/services"
	"cinelist-backend/utils"
)

// NewRootCmd builds the cinelist command tree
func NewRootCmd() *cobra.Command {
	var logCloser io.Closer

	cmd := &cobra.Command{
		Use:   "cinelist",
		Short: "Movie and TV catalog browser backend with a personal watchlist",
		Long: `Cinelist serves movie and TV listings from TMDB to a browser front end
and keeps a personal watchlist, split into movies and series.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			logCloser = utils.SetupLogging(config.LoadConfig().LogFile)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newWatchlistCmd())
	cmd.AddCommand(newSimilarCmd())

	return cmd
}

// openWatchlist builds the watchlist service on the configured backend
func openWatchlist(cfg *config.Config) (*services.WatchlistService, io.Closer, error) {
	repo, closer, err := services.OpenWatchlistRepo(cfg)
	if err != nil {
		return nil, nil, err
	}
	return services.NewWatchlistService(repo), closer, nil
}
