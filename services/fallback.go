package services

import (
	"fmt"

	"cinelist-backend/models"
)

// Canned content served when the content source fails. Listing entries use
// negative ids so they can never match a real title.

func rating(v float64) *float64 { return &v }

// FallbackPopular is shown when the popular listing cannot be fetched
func FallbackPopular(category models.Category) []models.CatalogItem {
	if category == models.CategorySeries {
		return []models.CatalogItem{
			{ID: -3, Category: category, Title: "Stranger Things", PosterPath: "/x2LSRK2Cm7MZhjluni1msVJ3wDF.jpg", Rating: rating(8.7), ReleaseDate: "2016-07-15"},
			{ID: -4, Category: category, Title: "The Crown", PosterPath: "/1M876KPjulVwppEpldhdc8V4o68.jpg", Rating: rating(8.2), ReleaseDate: "2016-11-04"},
		}
	}
	return []models.CatalogItem{
		{ID: -3, Category: category, Title: "Pulp Fiction", PosterPath: "/dM2w364MScsjFf8pfMbaWUcWrR.jpg", Rating: rating(8.9), ReleaseDate: "1994-10-14"},
		{ID: -4, Category: category, Title: "The Dark Knight", PosterPath: "/qJ2tW6WMUDux911r6m7haRef0WH.jpg", Rating: rating(9.0), ReleaseDate: "2008-07-18"},
	}
}

// FallbackTrending is shown when the trending listing cannot be fetched
func FallbackTrending(category models.Category) []models.CatalogItem {
	if category == models.CategorySeries {
		return []models.CatalogItem{
			{ID: -1, Category: category, Title: "Breaking Bad", PosterPath: "/ggFHVNu6YYI5L9pCfOacjizRGt.jpg", Rating: rating(9.5), ReleaseDate: "2008-01-20"},
			{ID: -2, Category: category, Title: "Game of Thrones", PosterPath: "/u3bZgnGQ9T01sWNhyveQz0wH0Hl.jpg", Rating: rating(9.3), ReleaseDate: "2011-04-17"},
		}
	}
	return []models.CatalogItem{
		{ID: -1, Category: category, Title: "The Shawshank Redemption", PosterPath: "/q6y0Go1tsGEsmtFryDOJo3dEmqu.jpg", Rating: rating(8.7), ReleaseDate: "1994-09-23"},
		{ID: -2, Category: category, Title: "The Godfather", PosterPath: "/3bhkrj58Vtu7enYsRolD1fZdja1.jpg", Rating: rating(8.7), ReleaseDate: "1972-03-14"},
	}
}

// FallbackSearch echoes the query back as one placeholder per category
func FallbackSearch(query string) *models.SearchResults {
	return &models.SearchResults{
		Movies: []models.CatalogItem{
			{ID: -5, Category: models.CategoryMovie, Title: fmt.Sprintf("Movie Result for %q", query), Rating: rating(7.0), ReleaseDate: "2024-01-01"},
		},
		Series: []models.CatalogItem{
			{ID: -6, Category: models.CategorySeries, Title: fmt.Sprintf("TV Show Result for %q", query), Rating: rating(7.5), ReleaseDate: "2024-01-01"},
		},
	}
}

// FallbackDetails is a sample record for the requested title. It keeps the
// requested id so the page can still be saved to the watchlist.
func FallbackDetails(category models.Category, id int) *models.Details {
	details := &models.Details{
		Item: models.CatalogItem{
			ID:          id,
			Category:    category,
			Title:       "Sample Movie",
			Overview:    "This is a sample movie description. The actual movie data could not be loaded.",
			Rating:      rating(7.5),
			ReleaseDate: "2024-01-01",
		},
		Genres:  []string{"Drama"},
		Runtime: 120,
		Cast: []models.CastMember{
			{ID: -1, Name: "Actor One", Character: "Main Character"},
			{ID: -2, Name: "Actor Two", Character: "Supporting Character"},
		},
		Trailers: []models.Trailer{},
	}
	if category == models.CategorySeries {
		details.Item.Title = "Sample TV Show"
		details.Item.Overview = "This is a sample TV show description. The actual show data could not be loaded."
		details.Runtime = 0
		details.Seasons = 1
	}
	return details
}

// fallbackSimilar keeps the first similar-titles load from ever rendering empty
func fallbackSimilar(category models.Category) []models.CatalogItem {
	label := "Similar Movie"
	if category == models.CategorySeries {
		label = "Similar Show"
	}
	return []models.CatalogItem{
		{ID: -1, Category: category, Title: label + " 1", Rating: rating(7.2), ReleaseDate: "2024-01-01"},
		{ID: -2, Category: category, Title: label + " 2", Rating: rating(6.8), ReleaseDate: "2023-12-15"},
	}
}
