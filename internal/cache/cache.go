package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"moviehub/pkg/models"
)

// MovieCache holds movies already normalized from the third-party API,
// keyed by movie id. It is bounded: once capacity is reached the least
// recently used entry is evicted, so the cache cannot grow without limit
// over the life of the process.
//
// The cache is populated as a side effect of normalization and consulted
// by the detail handler when an id is not in the local store. An id that
// was never fetched within this process's lifetime is simply a miss.
type MovieCache struct {
	entries *lru.Cache[string, models.Movie]
}

// New creates a cache that keeps at most capacity movies.
func New(capacity int) (*MovieCache, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("cache capacity must be >= 1, got %d", capacity)
	}
	entries, err := lru.New[string, models.Movie](capacity)
	if err != nil {
		return nil, fmt.Errorf("new lru: %w", err)
	}
	return &MovieCache{entries: entries}, nil
}

// Put stores a movie, overwriting any prior entry with the same id.
func (c *MovieCache) Put(m models.Movie) {
	c.entries.Add(m.ID, m)
}

// Get looks up a movie by id and marks it recently used.
func (c *MovieCache) Get(id string) (models.Movie, bool) {
	return c.entries.Get(id)
}

// Len reports how many movies are currently cached.
func (c *MovieCache) Len() int {
	return c.entries.Len()
}
