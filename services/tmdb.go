package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"cinelist-backend/models"
)

const (
	tmdbBaseURL = "https://api.themoviedb.org/3"
	maxCast     = 5
)

// RelatedSource provides pages of titles related to a subject
type RelatedSource interface {
	GetRelated(ctx context.Context, category models.Category, id, page int) (*models.Page, error)
}

// ContentSource is the catalog metadata provider
type ContentSource interface {
	RelatedSource
	Search(ctx context.Context, query string) (*models.SearchResults, error)
	Trending(ctx context.Context, category models.Category, window string) ([]models.CatalogItem, error)
	Popular(ctx context.Context, category models.Category) ([]models.CatalogItem, error)
	Details(ctx context.Context, category models.Category, id int) (*models.Details, error)
}

// TMDBClient talks to The Movie Database v3 API
type TMDBClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewTMDBClient creates a client. A zero timeout leaves requests unbounded.
func NewTMDBClient(apiKey, baseURL string, timeout time.Duration) *TMDBClient {
	if baseURL == "" {
		baseURL = tmdbBaseURL
	}
	return &TMDBClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// tmdbListItem covers both movie and tv list entries
type tmdbListItem struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Name         string   `json:"name"`
	Overview     string   `json:"overview"`
	PosterPath   *string  `json:"poster_path"`
	VoteAverage  *float64 `json:"vote_average"`
	ReleaseDate  string   `json:"release_date"`
	FirstAirDate string   `json:"first_air_date"`
}

type tmdbPagedResponse struct {
	Page         int            `json:"page"`
	Results      []tmdbListItem `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

type tmdbDetails struct {
	tmdbListItem
	BackdropPath    *string `json:"backdrop_path"`
	Runtime         int     `json:"runtime"`
	NumberOfSeasons int     `json:"number_of_seasons"`
	Genres          []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

type tmdbCredits struct {
	Cast []struct {
		ID          int     `json:"id"`
		Name        string  `json:"name"`
		Character   string  `json:"character"`
		ProfilePath *string `json:"profile_path"`
	} `json:"cast"`
}

type tmdbVideos struct {
	Results []struct {
		Key  string `json:"key"`
		Name string `json:"name"`
		Site string `json:"site"`
		Type string `json:"type"`
	} `json:"results"`
}

// GetRelated retrieves one page of titles similar to id
func (c *TMDBClient) GetRelated(ctx context.Context, category models.Category, id, page int) (*models.Page, error) {
	endpoint := fmt.Sprintf("/%s/%d/similar", category.TMDBPath(), id)
	params := url.Values{}
	params.Set("page", fmt.Sprintf("%d", page))

	var resp tmdbPagedResponse
	if err := c.getJSON(ctx, endpoint, params, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch similar %s %d page %d: %w", category, id, page, err)
	}

	return &models.Page{
		Page:         resp.Page,
		Items:        convertItems(category, resp.Results),
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
	}, nil
}

// Search queries movies and series concurrently; either failure fails the search
func (c *TMDBClient) Search(ctx context.Context, query string) (*models.SearchResults, error) {
	results := &models.SearchResults{
		Movies: []models.CatalogItem{},
		Series: []models.CatalogItem{},
	}
	if strings.TrimSpace(query) == "" {
		return results, nil
	}

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		items, err := c.search(ctx, models.CategoryMovie, query)
		results.Movies = items
		return err
	})
	p.Go(func(ctx context.Context) error {
		items, err := c.search(ctx, models.CategorySeries, query)
		results.Series = items
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("failed to search %q: %w", query, err)
	}
	return results, nil
}

func (c *TMDBClient) search(ctx context.Context, category models.Category, query string) ([]models.CatalogItem, error) {
	params := url.Values{}
	params.Set("query", query)

	var resp tmdbPagedResponse
	if err := c.getJSON(ctx, "/search/"+category.TMDBPath(), params, &resp); err != nil {
		return nil, err
	}
	return convertItems(category, resp.Results), nil
}

// Trending returns trending titles for a "day" or "week" window
func (c *TMDBClient) Trending(ctx context.Context, category models.Category, window string) ([]models.CatalogItem, error) {
	if window != "week" {
		window = "day"
	}
	endpoint := fmt.Sprintf("/trending/%s/%s", category.TMDBPath(), window)

	var resp tmdbPagedResponse
	if err := c.getJSON(ctx, endpoint, url.Values{}, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch trending %s: %w", category, err)
	}
	return convertItems(category, resp.Results), nil
}

// Popular returns the first page of popular titles
func (c *TMDBClient) Popular(ctx context.Context, category models.Category) ([]models.CatalogItem, error) {
	endpoint := fmt.Sprintf("/%s/popular", category.TMDBPath())

	var resp tmdbPagedResponse
	if err := c.getJSON(ctx, endpoint, url.Values{}, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch popular %s: %w", category, err)
	}
	return convertItems(category, resp.Results), nil
}

// Details fetches the title, its credits and its videos concurrently
func (c *TMDBClient) Details(ctx context.Context, category models.Category, id int) (*models.Details, error) {
	base := fmt.Sprintf("/%s/%d", category.TMDBPath(), id)

	var (
		details tmdbDetails
		credits tmdbCredits
		videos  tmdbVideos
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		return c.getJSON(ctx, base, url.Values{}, &details)
	})
	p.Go(func(ctx context.Context) error {
		return c.getJSON(ctx, base+"/credits", url.Values{}, &credits)
	})
	p.Go(func(ctx context.Context) error {
		return c.getJSON(ctx, base+"/videos", url.Values{}, &videos)
	})
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch %s %d details: %w", category, id, err)
	}

	result := &models.Details{
		Item:         convertItem(category, details.tmdbListItem),
		BackdropPath: deref(details.BackdropPath),
		Genres:       make([]string, 0, len(details.Genres)),
		Cast:         make([]models.CastMember, 0, maxCast),
		Trailers:     []models.Trailer{},
	}
	if category == models.CategorySeries {
		result.Seasons = details.NumberOfSeasons
	} else {
		result.Runtime = details.Runtime
	}
	for _, g := range details.Genres {
		result.Genres = append(result.Genres, g.Name)
	}
	for i, member := range credits.Cast {
		if i == maxCast {
			break
		}
		result.Cast = append(result.Cast, models.CastMember{
			ID:          member.ID,
			Name:        member.Name,
			Character:   member.Character,
			ProfilePath: deref(member.ProfilePath),
		})
	}
	for _, v := range videos.Results {
		if v.Type == "Trailer" && v.Site == "YouTube" {
			result.Trailers = append(result.Trailers, models.Trailer{Key: v.Key, Name: v.Name, Site: v.Site})
		}
	}

	return result, nil
}

func (c *TMDBClient) getJSON(ctx context.Context, endpoint string, params url.Values, v any) error {
	data, err := c.makeRequest(ctx, endpoint, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", endpoint, err)
	}
	return nil
}

// makeRequest performs an HTTP GET request to TMDB API
func (c *TMDBClient) makeRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TMDB endpoint %s: %w", endpoint, err)
	}

	q := u.Query()
	for k, vals := range params {
		for _, v := range vals {
			q.Add(k, v)
		}
	}
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request to %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("makeRequest: TMDB returned status %d for %s", resp.StatusCode, endpoint)
		return nil, fmt.Errorf("TMDB API returned status %d for %s: %s", resp.StatusCode, endpoint, string(data))
	}

	return data, nil
}

// convertItem folds TMDB's movie/tv field names into one record
func convertItem(category models.Category, ti tmdbListItem) models.CatalogItem {
	item := models.CatalogItem{
		ID:          ti.ID,
		Category:    category,
		Title:       ti.Title,
		PosterPath:  deref(ti.PosterPath),
		Overview:    ti.Overview,
		Rating:      ti.VoteAverage,
		ReleaseDate: ti.ReleaseDate,
	}
	if category == models.CategorySeries {
		item.Title = ti.Name
		item.ReleaseDate = ti.FirstAirDate
	}
	// Some endpoints only carry one of the two fields
	if item.Title == "" {
		item.Title = ti.Title + ti.Name
	}
	if item.ReleaseDate == "" {
		item.ReleaseDate = ti.ReleaseDate + ti.FirstAirDate
	}
	return item
}

func convertItems(category models.Category, results []tmdbListItem) []models.CatalogItem {
	items := make([]models.CatalogItem, 0, len(results))
	for _, r := range results {
		items = append(items, convertItem(category, r))
	}
	return items
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
