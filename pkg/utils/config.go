package utils

import (
	"os"
	"strconv"
)

type Config struct {
	Addr        string // HTTP listen address
	DataFile    string // path of the local movie document
	MovieAPIURL string // base URL of the third-party movie API
	CacheSize   int    // capacity of the third-party result cache
}

func LoadConfig() Config {
	cfg := Config{
		Addr:        ":8080",
		DataFile:    "data/movies.json",
		MovieAPIURL: "http://localhost:5001",
		CacheSize:   512,
	}

	if v := os.Getenv("MOVIEHUB_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("MOVIEHUB_DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("MOVIEHUB_MOVIE_API_URL"); v != "" {
		cfg.MovieAPIURL = v
	}
	if v := os.Getenv("MOVIEHUB_CACHE_SIZE"); v != "" {
		// if parse fails, keep the default
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheSize = n
		}
	}

	return cfg
}
