package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cinelist-backend/config"
	"cinelist-backend/models"
	"cinelist-backend/services"
)

func newSimilarCmd() *cobra.Command {
	var pages int

	cmd := &cobra.Command{
		Use:   "similar <movie|series> <id>",
		Short: "List titles similar to a movie or series",
		Example: `  # First two pages of titles similar to Fight Club
  cinelist similar movie 550 --pages 2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := models.ParseCategory(args[0])
			if err != nil {
				return err
			}
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[1])
			}

			cfg := config.LoadConfig()
			tmdb := services.NewTMDBClient(cfg.TMDBAPIKey, cfg.TMDBBaseURL, cfg.TMDBTimeout)
			loader := services.NewSimilarLoader(tmdb, category, id)

			loader.LoadPage(cmd.Context(), 1, true)
			for loaded := 1; loaded < pages && loader.State().HasMore; loaded++ {
				loader.LoadMore(cmd.Context())
			}

			state := loader.State()
			printItems(cmd.OutOrStdout(), state.Items)
			fmt.Fprintf(cmd.ErrOrStderr(), "%d titles, next page %d, more available: %t\n",
				len(state.Items), state.NextPage, state.HasMore)
			return nil
		},
	}

	cmd.Flags().IntVarP(&pages, "pages", "n", 1, fmt.Sprintf("Pages to load (at most %d)", services.MaxSimilarPages))

	return cmd
}
