package movies

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"moviehub/pkg/models"
)

// Repo persists locally created movies as a single JSON document on disk.
// The whole collection is rewritten on every create; file order is
// insertion order.
//
// All writes go through one mutex so concurrent creates cannot lose each
// other's append on the read-modify-write cycle.
type Repo struct {
	mu   sync.Mutex
	path string
	log  zerolog.Logger
}

func NewRepo(path string, log zerolog.Logger) *Repo {
	return &Repo{path: path, log: log.With().Str("component", "movies-repo").Logger()}
}

// ReadAll returns every local movie in file order. A missing, unreadable
// or malformed document degrades to an empty collection; it never fails.
func (r *Repo) ReadAll() []models.Movie {
	return r.readAll()
}

func (r *Repo) readAll() []models.Movie {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.Warn().Err(err).Str("path", r.path).Msg("local movie document unreadable, treating as empty")
		}
		return []models.Movie{}
	}

	var out []models.Movie
	if err := json.Unmarshal(data, &out); err != nil {
		r.log.Warn().Err(err).Str("path", r.path).Msg("local movie document malformed, treating as empty")
		return []models.Movie{}
	}
	if out == nil {
		out = []models.Movie{}
	}
	return out
}

// Create appends a new local movie and rewrites the whole document.
func (r *Repo) Create(title string, year int) (models.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := models.Movie{
		ID:     "local_" + strconv.FormatInt(time.Now().UnixNano(), 10),
		Title:  title,
		Year:   year,
		Source: models.SourceLocal,
	}

	all := append(r.readAll(), m)

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return models.Movie{}, fmt.Errorf("marshal movies: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return models.Movie{}, fmt.Errorf("ensure data dir: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return models.Movie{}, fmt.Errorf("write movies: %w", err)
	}

	return m, nil
}

// FindByID returns the first movie in file order with the given id.
func (r *Repo) FindByID(id string) (models.Movie, bool) {
	for _, m := range r.readAll() {
		if m.ID == id {
			return m, true
		}
	}
	return models.Movie{}, false
}
