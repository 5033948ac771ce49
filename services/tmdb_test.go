package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinelist-backend/models"
)

// newTMDBServer serves canned bodies by path and records requested URLs
func newTMDBServer(t *testing.T, routes map[string]string) (*TMDBClient, *[]string) {
	t.Helper()
	var mu sync.Mutex
	var seen []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.URL.String())
		mu.Unlock()

		if r.URL.Query().Get("api_key") != "test-key" {
			http.Error(w, `{"status_message":"Invalid API key"}`, http.StatusUnauthorized)
			return
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			http.Error(w, `{"status_message":"not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return NewTMDBClient("test-key", server.URL, 5*time.Second), &seen
}

func TestGetRelatedMovie(t *testing.T) {
	client, seen := newTMDBServer(t, map[string]string{
		"/movie/550/similar": `{
			"page": 2,
			"total_pages": 7,
			"total_results": 140,
			"results": [
				{"id": 807, "title": "Se7en", "poster_path": "/se7en.jpg", "vote_average": 8.4, "release_date": "1995-09-22"},
				{"id": 680, "title": "Pulp Fiction", "poster_path": null, "vote_average": 8.5, "release_date": "1994-09-10"}
			]
		}`,
	})

	result, err := client.GetRelated(context.Background(), models.CategoryMovie, 550, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 7, result.TotalPages)
	assert.Equal(t, 140, result.TotalResults)
	require.Len(t, result.Items, 2)

	first := result.Items[0]
	assert.Equal(t, 807, first.ID)
	assert.Equal(t, "Se7en", first.Title)
	assert.Equal(t, "/se7en.jpg", first.PosterPath)
	assert.Equal(t, "1995-09-22", first.ReleaseDate)
	assert.Equal(t, models.CategoryMovie, first.Category)
	require.NotNil(t, first.Rating)
	assert.InDelta(t, 8.4, *first.Rating, 0.001)
	assert.Empty(t, result.Items[1].PosterPath)

	require.Len(t, *seen, 1)
	assert.Contains(t, (*seen)[0], "page=2")
}

func TestGetRelatedSeriesNormalizesNames(t *testing.T) {
	client, _ := newTMDBServer(t, map[string]string{
		"/tv/1399/similar": `{
			"page": 1,
			"total_pages": 1,
			"results": [{"id": 1396, "name": "Breaking Bad", "first_air_date": "2008-01-20"}]
		}`,
	})

	result, err := client.GetRelated(context.Background(), models.CategorySeries, 1399, 1)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Breaking Bad", result.Items[0].Title)
	assert.Equal(t, "2008-01-20", result.Items[0].ReleaseDate)
	assert.Equal(t, models.CategorySeries, result.Items[0].Category)
	assert.Nil(t, result.Items[0].Rating)
}

func TestRequestErrors(t *testing.T) {
	client, _ := newTMDBServer(t, map[string]string{
		"/movie/popular": `{"results": [`,
	})
	ctx := context.Background()

	_, err := client.GetRelated(ctx, models.CategoryMovie, 1, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")

	_, err = client.Popular(ctx, models.CategoryMovie)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")

	bad := NewTMDBClient("wrong", client.baseURL, time.Second)
	_, err = bad.Trending(ctx, models.CategoryMovie, "day")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestSearchMergesBothCategories(t *testing.T) {
	client, seen := newTMDBServer(t, map[string]string{
		"/search/movie": `{"results": [{"id": 1, "title": "Dune", "release_date": "2021-09-15"}]}`,
		"/search/tv":    `{"results": [{"id": 2, "name": "Dune: Prophecy", "first_air_date": "2024-11-17"}]}`,
	})

	results, err := client.Search(context.Background(), "dune")
	require.NoError(t, err)
	require.Len(t, results.Movies, 1)
	require.Len(t, results.Series, 1)
	assert.Equal(t, "Dune", results.Movies[0].Title)
	assert.Equal(t, "Dune: Prophecy", results.Series[0].Title)

	require.Len(t, *seen, 2)
	for _, u := range *seen {
		assert.Contains(t, u, "query=dune")
	}
}

func TestSearchEmptyQuerySkipsRequests(t *testing.T) {
	client, seen := newTMDBServer(t, map[string]string{})

	results, err := client.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, results.Movies)
	assert.Empty(t, results.Series)
	assert.Empty(t, *seen)
}

func TestSearchFailsWhenEitherSideFails(t *testing.T) {
	client, _ := newTMDBServer(t, map[string]string{
		"/search/movie": `{"results": []}`,
	})

	_, err := client.Search(context.Background(), "dune")
	require.Error(t, err)
}

func TestTrendingWindow(t *testing.T) {
	client, seen := newTMDBServer(t, map[string]string{
		"/trending/tv/week": `{"results": [{"id": 3, "name": "Severance"}]}`,
		"/trending/tv/day":  `{"results": []}`,
	})
	ctx := context.Background()

	items, err := client.Trending(ctx, models.CategorySeries, "week")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Severance", items[0].Title)

	_, err = client.Trending(ctx, models.CategorySeries, "month")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix((*seen)[1], "/trending/tv/day"))
}

func TestDetails(t *testing.T) {
	client, _ := newTMDBServer(t, map[string]string{
		"/movie/603": `{
			"id": 603, "title": "The Matrix", "overview": "Neo.", "runtime": 136,
			"backdrop_path": "/bd.jpg", "release_date": "1999-03-30", "vote_average": 8.2,
			"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}]
		}`,
		"/movie/603/credits": `{"cast": [
			{"id": 1, "name": "Keanu Reeves", "character": "Neo"},
			{"id": 2, "name": "Laurence Fishburne", "character": "Morpheus"},
			{"id": 3, "name": "Carrie-Anne Moss", "character": "Trinity"},
			{"id": 4, "name": "Hugo Weaving", "character": "Agent Smith"},
			{"id": 5, "name": "Gloria Foster", "character": "Oracle"},
			{"id": 6, "name": "Joe Pantoliano", "character": "Cypher"}
		]}`,
		"/movie/603/videos": `{"results": [
			{"key": "abc", "name": "Trailer", "site": "YouTube", "type": "Trailer"},
			{"key": "def", "name": "Teaser", "site": "YouTube", "type": "Teaser"},
			{"key": "ghi", "name": "Trailer", "site": "Vimeo", "type": "Trailer"}
		]}`,
	})

	details, err := client.Details(context.Background(), models.CategoryMovie, 603)
	require.NoError(t, err)

	assert.Equal(t, "The Matrix", details.Item.Title)
	assert.Equal(t, 136, details.Runtime)
	assert.Zero(t, details.Seasons)
	assert.Equal(t, "/bd.jpg", details.BackdropPath)
	assert.Equal(t, []string{"Action", "Science Fiction"}, details.Genres)
	require.Len(t, details.Cast, 5)
	assert.Equal(t, "Gloria Foster", details.Cast[4].Name)
	require.Len(t, details.Trailers, 1)
	assert.Equal(t, "abc", details.Trailers[0].Key)
}

func TestDetailsFailsWhenAnyPartFails(t *testing.T) {
	client, _ := newTMDBServer(t, map[string]string{
		"/tv/1":         `{"id": 1, "name": "Show", "number_of_seasons": 2}`,
		"/tv/1/credits": `{"cast": []}`,
	})

	_, err := client.Details(context.Background(), models.CategorySeries, 1)
	require.Error(t, err)
}
