package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cinelist-backend/config"
	"cinelist-backend/models"
)

func newWatchlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Inspect and edit the watchlist on the configured backend",
	}

	cmd.AddCommand(newWatchlistListCmd())
	cmd.AddCommand(newWatchlistMutateCmd("add"))
	cmd.AddCommand(newWatchlistMutateCmd("toggle"))
	cmd.AddCommand(newWatchlistRemoveCmd())
	cmd.AddCommand(newWatchlistExportCmd())

	return cmd
}

func newWatchlistListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [movie|series]",
		Short: "Print saved titles for a category, or per-category counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var category models.Category
			if len(args) == 1 {
				var err error
				if category, err = models.ParseCategory(args[0]); err != nil {
					return err
				}
			}
			svc, closer, err := openWatchlist(config.LoadConfig())
			if err != nil {
				return err
			}
			defer closer.Close()

			if category == "" {
				counts := svc.Counts()
				fmt.Fprintf(cmd.OutOrStdout(), "Movies (%d)\nTV Shows (%d)\n",
					counts[models.CategoryMovie], counts[models.CategorySeries])
				return nil
			}
			printItems(cmd.OutOrStdout(), svc.List(category))
			return nil
		},
	}
}

func newWatchlistMutateCmd(action string) *cobra.Command {
	var item models.CatalogItem
	var rating float64

	cmd := &cobra.Command{
		Use:   action + " <movie|series> <id>",
		Short: map[string]string{"add": "Save a title", "toggle": "Save a title, or unsave it if already saved"}[action],
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := models.ParseCategory(args[0])
			if err != nil {
				return err
			}
			if item.ID, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("invalid id %q", args[1])
			}
			if cmd.Flags().Changed("rating") {
				item.Rating = &rating
			}

			svc, closer, err := openWatchlist(config.LoadConfig())
			if err != nil {
				return err
			}
			defer closer.Close()

			var items []models.CatalogItem
			if action == "toggle" {
				items, err = svc.Toggle(item, category)
			} else {
				items, err = svc.Add(item, category)
			}
			if err != nil {
				return err
			}
			printItems(cmd.OutOrStdout(), items)
			return nil
		},
	}

	cmd.Flags().StringVar(&item.Title, "title", "", "Title or series name")
	cmd.Flags().StringVar(&item.PosterPath, "poster", "", "TMDB poster path")
	cmd.Flags().StringVar(&item.ReleaseDate, "release-date", "", "Release or first air date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&rating, "rating", 0, "Rating from 0 to 10")

	return cmd
}

func newWatchlistRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <movie|series> <id>",
		Short: "Unsave a title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := models.ParseCategory(args[0])
			if err != nil {
				return err
			}
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid id %q", args[1])
			}

			svc, closer, err := openWatchlist(config.LoadConfig())
			if err != nil {
				return err
			}
			defer closer.Close()

			items, err := svc.Remove(id, category)
			if err != nil {
				return err
			}
			printItems(cmd.OutOrStdout(), items)
			return nil
		},
	}
}

func newWatchlistExportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write both categories to stdout as JSON or YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := openWatchlist(config.LoadConfig())
			if err != nil {
				return err
			}
			defer closer.Close()

			return writeExport(cmd.OutOrStdout(), format, svc.Snapshot())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")

	return cmd
}

func writeExport(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml", "yml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(v)
	}
	return fmt.Errorf("unsupported format %q (want json or yaml)", format)
}

func printItems(w io.Writer, items []models.CatalogItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "(empty)")
		return
	}
	for _, item := range items {
		line := fmt.Sprintf("%d\t%s", item.ID, item.Title)
		if item.ReleaseDate != "" {
			line += "\t" + item.ReleaseDate
		}
		if item.Rating != nil {
			line += fmt.Sprintf("\t%.1f", *item.Rating)
		}
		fmt.Fprintln(w, line)
	}
}
