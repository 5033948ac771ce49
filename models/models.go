package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a category string is neither movie nor series
var ErrUnknownCategory = errors.New("unknown category")

// Category selects the movie or series partition
type Category string

const (
	CategoryMovie  Category = "movie"
	CategorySeries Category = "series"
)

// Categories lists every category in display order
var Categories = []Category{CategoryMovie, CategorySeries}

// ParseCategory converts a path or flag value into a Category.
// TMDB's "tv" spelling is accepted for series.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies":
		return CategoryMovie, nil
	case "series", "tv", "show", "shows":
		return CategorySeries, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// TMDBPath returns the path segment TMDB uses for this category
func (c Category) TMDBPath() string {
	if c == CategorySeries {
		return "tv"
	}
	return "movie"
}

// CatalogItem is a movie or series record normalized at the API boundary
type CatalogItem struct {
	ID          int      `json:"id" yaml:"id"`
	Category    Category `json:"category,omitempty" yaml:"category,omitempty"`
	Title       string   `json:"title" yaml:"title"`
	PosterPath  string   `json:"posterPath,omitempty" yaml:"posterPath,omitempty"`
	Overview    string   `json:"overview,omitempty" yaml:"overview,omitempty"`
	Rating      *float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
	ReleaseDate string   `json:"releaseDate,omitempty" yaml:"releaseDate,omitempty"` // ISO date; first air date for series
}

// Page is one page of a paginated listing
type Page struct {
	Page         int           `json:"page"`
	Items        []CatalogItem `json:"items"`
	TotalPages   int           `json:"totalPages"`
	TotalResults int           `json:"totalResults"`
}

// SearchResults holds the merged movie and series search results
type SearchResults struct {
	Movies []CatalogItem `json:"movies"`
	Series []CatalogItem `json:"series"`
}

// CastMember is a single credited performer
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profilePath,omitempty"`
}

// Trailer is a YouTube trailer attached to a title
type Trailer struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
}

// Details is the full record shown on a title page
type Details struct {
	Item         CatalogItem  `json:"item"`
	BackdropPath string       `json:"backdropPath,omitempty"`
	Genres       []string     `json:"genres"`
	Runtime      int          `json:"runtime,omitempty"` // minutes, movies only
	Seasons      int          `json:"seasons,omitempty"` // series only
	Cast         []CastMember `json:"cast"`
	Trailers     []Trailer    `json:"trailers"`
	InWatchlist  bool         `json:"inWatchlist"`
}

// SimilarState is a snapshot of a similar-items loader
type SimilarState struct {
	Session   string        `json:"session,omitempty"`
	Category  Category      `json:"category"`
	SubjectID int           `json:"subjectId"`
	Items     []CatalogItem `json:"items"`
	NextPage  int           `json:"nextPage"`
	IsLoading bool          `json:"isLoading"`
	HasMore   bool          `json:"hasMore"`
}

// WatchlistResponse is the combined watchlist view
type WatchlistResponse struct {
	Movies []CatalogItem    `json:"movies" yaml:"movies"`
	Series []CatalogItem    `json:"series" yaml:"series"`
	Counts map[Category]int `json:"counts" yaml:"counts"`
}

// WatchlistChange is emitted after every watchlist write
type WatchlistChange struct {
	Category Category      `json:"category"`
	Items    []CatalogItem `json:"items"`
}
