package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cinelist-backend/mocks"
	"cinelist-backend/models"
	"cinelist-backend/services"
)

type testAPI struct {
	handler   http.Handler
	source    *mocks.MockContentSource
	watchlist *services.WatchlistService
}

func newTestAPI(t *testing.T, apiKey string) *testAPI {
	t.Helper()
	ctrl := gomock.NewController(t)
	source := mocks.NewMockContentSource(ctrl)
	watchlist := services.NewWatchlistService(services.NewMemoryWatchlistRepo())

	handler := NewRouter(RouterConfig{
		Watchlist: NewWatchlistHandler(watchlist),
		Catalog:   NewCatalogHandler(source, watchlist),
		Similar:   NewSimilarHandler(services.NewSimilarSessions(source, time.Minute)),
		APIKey:    apiKey,
	})
	return &testAPI{handler: handler, source: source, watchlist: watchlist}
}

func (a *testAPI) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthcheck(t *testing.T) {
	api := newTestAPI(t, "")
	rec := api.do(t, "GET", "/healthcheck", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestWatchlistAddListRemove(t *testing.T) {
	api := newTestAPI(t, "")

	rec := api.do(t, "POST", "/api/watchlist/movie", `{"id": 5, "title": "X"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = api.do(t, "POST", "/api/watchlist/movie", `{"id": 5, "title": "X"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	items := decode[[]models.CatalogItem](t, api.do(t, "GET", "/api/watchlist/movie", ""))
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].ID)

	contains := decode[map[string]bool](t, api.do(t, "GET", "/api/watchlist/movie/5", ""))
	assert.True(t, contains["inWatchlist"])
	contains = decode[map[string]bool](t, api.do(t, "GET", "/api/watchlist/series/5", ""))
	assert.False(t, contains["inWatchlist"])

	rec = api.do(t, "DELETE", "/api/watchlist/movie/5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.CatalogItem](t, rec))
}

func TestWatchlistToggleAndOverview(t *testing.T) {
	api := newTestAPI(t, "")

	rec := api.do(t, "POST", "/api/watchlist/tv/toggle", `{"id": 7, "title": "Severance"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]json.RawMessage](t, rec)
	assert.JSONEq(t, "true", string(body["inWatchlist"]))

	overview := decode[models.WatchlistResponse](t, api.do(t, "GET", "/api/watchlist", ""))
	assert.Empty(t, overview.Movies)
	require.Len(t, overview.Series, 1)
	assert.Equal(t, 1, overview.Counts[models.CategorySeries])
	assert.Equal(t, 0, overview.Counts[models.CategoryMovie])

	rec = api.do(t, "POST", "/api/watchlist/series/toggle", `{"id": 7}`)
	body = decode[map[string]json.RawMessage](t, rec)
	assert.JSONEq(t, "false", string(body["inWatchlist"]))
}

func TestWatchlistBadRequests(t *testing.T) {
	api := newTestAPI(t, "")

	assert.Equal(t, http.StatusBadRequest, api.do(t, "GET", "/api/watchlist/music", "").Code)
	assert.Equal(t, http.StatusBadRequest, api.do(t, "POST", "/api/watchlist/movie", `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(t, "POST", "/api/watchlist/movie", `{"title": "no id"}`).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(t, "DELETE", "/api/watchlist/music/1", "").Code)
}

func TestAPIKeyProtectsWrites(t *testing.T) {
	api := newTestAPI(t, "secret")

	assert.Equal(t, http.StatusUnauthorized, api.do(t, "POST", "/api/watchlist/movie", `{"id": 1}`).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(t, "POST", "/api/watchlist/movie", `{"id": 1}`, "Authorization", "secret").Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(t, "DELETE", "/api/watchlist/movie/1", "", "Authorization", "Bearer wrong").Code)
	assert.False(t, api.watchlist.Contains(1, models.CategoryMovie))

	rec := api.do(t, "POST", "/api/watchlist/movie", `{"id": 1}`, "Authorization", "Bearer secret")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Reads stay open
	assert.Equal(t, http.StatusOK, api.do(t, "GET", "/api/watchlist/movie", "").Code)
}

func TestDetailsIncludesWatchlistState(t *testing.T) {
	api := newTestAPI(t, "")
	_, err := api.watchlist.Add(models.CatalogItem{ID: 603}, models.CategoryMovie)
	require.NoError(t, err)

	api.source.EXPECT().Details(gomock.Any(), models.CategoryMovie, 603).
		Return(&models.Details{Item: models.CatalogItem{ID: 603, Title: "The Matrix"}}, nil)

	rec := api.do(t, "GET", "/api/movie/603", "")
	require.Equal(t, http.StatusOK, rec.Code)
	details := decode[models.Details](t, rec)
	assert.True(t, details.InWatchlist)
	assert.Equal(t, "The Matrix", details.Item.Title)
}

func TestCatalogFailuresServeFallback(t *testing.T) {
	api := newTestAPI(t, "")
	upstream := errors.New("timeout")

	api.source.EXPECT().Search(gomock.Any(), "dune").Return(nil, upstream)
	api.source.EXPECT().Popular(gomock.Any(), models.CategorySeries).Return(nil, upstream)
	api.source.EXPECT().Popular(gomock.Any(), models.CategoryMovie).Return(nil, upstream)
	api.source.EXPECT().Trending(gomock.Any(), models.CategoryMovie, "week").Return(nil, upstream)

	rec := api.do(t, "GET", "/api/search?q=dune", "")
	require.Equal(t, http.StatusOK, rec.Code)
	results := decode[models.SearchResults](t, rec)
	require.Len(t, results.Movies, 1)
	require.Len(t, results.Series, 1)
	assert.Contains(t, results.Movies[0].Title, "dune")
	assert.Contains(t, results.Series[0].Title, "dune")

	rec = api.do(t, "GET", "/api/tv/popular", "")
	require.Equal(t, http.StatusOK, rec.Code)
	series := decode[[]models.CatalogItem](t, rec)
	require.Len(t, series, 2)
	assert.Equal(t, "Stranger Things", series[0].Title)

	rec = api.do(t, "GET", "/api/movie/popular", "")
	require.Equal(t, http.StatusOK, rec.Code)
	movies := decode[[]models.CatalogItem](t, rec)
	require.Len(t, movies, 2)
	assert.Equal(t, "Pulp Fiction", movies[0].Title)

	rec = api.do(t, "GET", "/api/movie/trending?window=week", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "timeout")
	for _, item := range decode[[]models.CatalogItem](t, rec) {
		assert.Negative(t, item.ID)
		assert.Equal(t, models.CategoryMovie, item.Category)
	}
}

func TestDetailsFailureServesSampleRecord(t *testing.T) {
	api := newTestAPI(t, "")
	_, err := api.watchlist.Add(models.CatalogItem{ID: 42, Title: "Saved"}, models.CategoryMovie)
	require.NoError(t, err)

	api.source.EXPECT().Details(gomock.Any(), models.CategoryMovie, 42).Return(nil, errors.New("timeout"))
	api.source.EXPECT().Details(gomock.Any(), models.CategorySeries, 7).Return(nil, errors.New("timeout"))

	rec := api.do(t, "GET", "/api/movie/42", "")
	require.Equal(t, http.StatusOK, rec.Code)
	details := decode[models.Details](t, rec)
	assert.Equal(t, 42, details.Item.ID)
	assert.Equal(t, "Sample Movie", details.Item.Title)
	assert.True(t, details.InWatchlist)
	require.Len(t, details.Cast, 2)
	assert.Equal(t, "Actor One", details.Cast[0].Name)
	assert.Empty(t, details.Trailers)

	details = decode[models.Details](t, api.do(t, "GET", "/api/tv/7", ""))
	assert.Equal(t, "Sample TV Show", details.Item.Title)
	assert.Equal(t, 1, details.Seasons)
	assert.False(t, details.InWatchlist)
}

func TestSearchAndListings(t *testing.T) {
	api := newTestAPI(t, "")

	api.source.EXPECT().Search(gomock.Any(), "alien").Return(&models.SearchResults{
		Movies: []models.CatalogItem{{ID: 348, Title: "Alien"}},
		Series: []models.CatalogItem{},
	}, nil)
	api.source.EXPECT().Trending(gomock.Any(), models.CategorySeries, "").
		Return([]models.CatalogItem{{ID: 1}, {ID: 2}}, nil)

	results := decode[models.SearchResults](t, api.do(t, "GET", "/api/search?q=alien", ""))
	require.Len(t, results.Movies, 1)
	assert.Equal(t, "Alien", results.Movies[0].Title)

	trending := decode[[]models.CatalogItem](t, api.do(t, "GET", "/api/series/trending", ""))
	assert.Len(t, trending, 2)
}

func TestSimilarSessionFlow(t *testing.T) {
	api := newTestAPI(t, "")

	api.source.EXPECT().GetRelated(gomock.Any(), models.CategoryMovie, 550, 1).
		Return(&models.Page{Page: 1, TotalPages: 3, Items: []models.CatalogItem{{ID: 1}, {ID: 2}}}, nil)
	api.source.EXPECT().GetRelated(gomock.Any(), models.CategoryMovie, 550, 2).
		Return(&models.Page{Page: 2, TotalPages: 3, Items: []models.CatalogItem{{ID: 3}}}, nil)
	api.source.EXPECT().GetRelated(gomock.Any(), models.CategoryMovie, 680, 1).
		Return(&models.Page{Page: 1, TotalPages: 1, Items: []models.CatalogItem{{ID: 9}}}, nil)

	rec := api.do(t, "POST", "/api/similar", `{"category": "movie", "id": 550}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	state := decode[models.SimilarState](t, rec)
	require.NotEmpty(t, state.Session)
	assert.Len(t, state.Items, 2)
	assert.True(t, state.HasMore)

	session := "/api/similar/" + state.Session

	// Far from the bottom: nothing loads
	rec = api.do(t, "POST", session+"/scroll", `{"scrollTop": 0, "viewportHeight": 800, "documentHeight": 6000}`)
	require.Equal(t, http.StatusOK, rec.Code)
	scroll := decode[scrollResponse](t, rec)
	assert.False(t, scroll.Loaded)
	assert.Len(t, scroll.State.Items, 2)

	// Near the bottom: page 2 is appended
	rec = api.do(t, "POST", session+"/scroll", `{"scrollTop": 5000, "viewportHeight": 800, "documentHeight": 6000}`)
	scroll = decode[scrollResponse](t, rec)
	assert.True(t, scroll.Loaded)
	assert.Len(t, scroll.State.Items, 3)
	assert.Equal(t, 3, scroll.State.NextPage)

	// New subject resets the list
	rec = api.do(t, "PUT", session+"/subject", `{"id": 680}`)
	require.Equal(t, http.StatusOK, rec.Code)
	state = decode[models.SimilarState](t, rec)
	assert.Equal(t, 680, state.SubjectID)
	require.Len(t, state.Items, 1)
	assert.Equal(t, 9, state.Items[0].ID)
	assert.False(t, state.HasMore)

	// Exhausted: more is a no-op
	rec = api.do(t, "POST", session+"/more", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[models.SimilarState](t, rec).Items, 1)

	assert.Equal(t, http.StatusNoContent, api.do(t, "DELETE", session, "").Code)
	assert.Equal(t, http.StatusNotFound, api.do(t, "GET", session, "").Code)
}

func TestSimilarCreateValidation(t *testing.T) {
	api := newTestAPI(t, "")

	assert.Equal(t, http.StatusBadRequest, api.do(t, "POST", "/api/similar", `{"category": "book", "id": 1}`).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(t, "POST", "/api/similar", `{"category": "movie"}`).Code)
	assert.Equal(t, http.StatusNotFound, api.do(t, "POST", "/api/similar/nope/more", "").Code)
}

func TestWatchlistEventsStream(t *testing.T) {
	api := newTestAPI(t, "")
	server := httptest.NewServer(api.handler)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", server.URL+"/api/watchlist/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	_, err = api.watchlist.Add(models.CatalogItem{ID: 42, Title: "Hitchhiker"}, models.CategoryMovie)
	require.NoError(t, err)

	reader := bufio.NewReader(resp.Body)
	var data string
	for data == "" {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: ") {
			data = strings.TrimSpace(strings.TrimPrefix(line, "data: "))
		}
	}

	var change models.WatchlistChange
	require.NoError(t, json.Unmarshal([]byte(data), &change))
	assert.Equal(t, models.CategoryMovie, change.Category)
	require.Len(t, change.Items, 1)
	assert.Equal(t, 42, change.Items[0].ID)
}
