package movieapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"moviehub/internal/cache"
	"moviehub/pkg/models"
)

// Client fetches movies from the third-party movie API and maps every raw
// record into the normalized Movie shape. Each normalized movie is also
// written into the shared result cache so the detail handler can resolve
// third-party ids seen earlier in this process's lifetime.
type Client struct {
	base   string
	client *http.Client
	cache  *cache.MovieCache
	log    zerolog.Logger
}

func NewClient(base string, c *cache.MovieCache, log zerolog.Logger) *Client {
	return &Client{
		base:   base,
		client: &http.Client{Timeout: 12 * time.Second},
		cache:  c,
		log:    log.With().Str("component", "movieapi").Logger(),
	}
}

// rawMovie is the upstream record shape. Raw shapes never escape this
// package.
type rawMovie struct {
	MovieID       json.Number `json:"movie_id"`
	OriginalTitle string      `json:"original_title"`
	Title         string      `json:"title"`
	ReleaseDate   string      `json:"release_date"`
}

type paginatedResponse struct {
	Data []rawMovie `json:"data"`
}

// FetchPage fetches one upstream-paginated page of movies.
func (c *Client) FetchPage(ctx context.Context, page int) ([]models.Movie, error) {
	url := fmt.Sprintf("%s/paginated?page=%d", c.base, page)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var pr paginatedResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("movie api: decode paginated: %w", err)
	}

	return c.normalizeAll(pr.Data), nil
}

// FetchRandom fetches count randomly selected upstream movies. The caller
// validates that count is positive before calling.
func (c *Client) FetchRandom(ctx context.Context, count int) ([]models.Movie, error) {
	url := c.base + "/random/" + strconv.Itoa(count)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var raw []rawMovie
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("movie api: decode random: %w", err)
	}

	return c.normalizeAll(raw), nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("movie api: build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("movie api: request: %w", err)
	}

	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("movie api: status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

func (c *Client) normalizeAll(raw []rawMovie) []models.Movie {
	out := make([]models.Movie, 0, len(raw))
	for _, r := range raw {
		m := normalize(r)
		if c.cache != nil {
			c.cache.Put(m)
		}
		out = append(out, m)
	}
	return out
}

// normalize maps one raw upstream record into the shared Movie shape.
// Title falls back original_title -> title -> "Untitled"; the year is 0
// when release_date is absent or not a date.
func normalize(r rawMovie) models.Movie {
	title := r.OriginalTitle
	if title == "" {
		title = r.Title
	}
	if title == "" {
		title = "Untitled"
	}

	year := 0
	if r.ReleaseDate != "" {
		if t, err := time.Parse("2006-01-02", r.ReleaseDate); err == nil {
			year = t.Year()
		}
	}

	return models.Movie{
		ID:     "tp_" + r.MovieID.String(),
		Title:  title,
		Year:   year,
		Source: models.SourceAPI,
	}
}
