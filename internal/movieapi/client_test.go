package movieapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub/internal/cache"
	"moviehub/pkg/models"
)

const paginatedBody = `{"data": [
	{"movie_id": 603, "original_title": "The Matrix", "title": "Matrix (US)", "release_date": "1999-03-31"},
	{"movie_id": 604, "title": "The Matrix Reloaded", "release_date": "not-a-date"},
	{"movie_id": 605}
]}`

func newTestClient(t *testing.T, upstream http.Handler) (*Client, *cache.MovieCache) {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	c, err := cache.New(16)
	require.NoError(t, err)
	return NewClient(srv.URL, c, zerolog.Nop()), c
}

func TestFetchPageNormalizes(t *testing.T) {
	var gotPage string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/paginated", r.URL.Path)
		gotPage = r.URL.Query().Get("page")
		w.Write([]byte(paginatedBody))
	}))

	got, err := client.FetchPage(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "2", gotPage)

	require.Len(t, got, 3)

	// original_title wins over title; date parsed to calendar year
	assert.Equal(t, models.Movie{ID: "tp_603", Title: "The Matrix", Year: 1999, Source: models.SourceAPI}, got[0])
	// falls back to title; bad date means year 0
	assert.Equal(t, models.Movie{ID: "tp_604", Title: "The Matrix Reloaded", Year: 0, Source: models.SourceAPI}, got[1])
	// no titles at all
	assert.Equal(t, "Untitled", got[2].Title)
	assert.Equal(t, 0, got[2].Year)
}

func TestFetchPagePopulatesCache(t *testing.T) {
	client, c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(paginatedBody))
	}))

	_, err := client.FetchPage(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	m, ok := c.Get("tp_603")
	require.True(t, ok)
	assert.Equal(t, "The Matrix", m.Title)
}

func TestFetchPageUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))

	_, err := client.FetchPage(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestFetchRandom(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/random/2", r.URL.Path)
		w.Write([]byte(`[
			{"movie_id": 11, "original_title": "Star Wars", "release_date": "1977-05-25"},
			{"movie_id": 12, "original_title": "Return of the Jedi", "release_date": "1983-05-25"}
		]`))
	}))

	got, err := client.FetchRandom(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "tp_11", got[0].ID)
	assert.Equal(t, 1977, got[0].Year)
	assert.Equal(t, models.SourceAPI, got[1].Source)
}

func TestFetchRandomDecodeError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"oops": true}`))
	}))

	_, err := client.FetchRandom(context.Background(), 3)
	require.Error(t, err)
}
