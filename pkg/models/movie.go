package models

// Source values for Movie.Source.
const (
	SourceLocal = "local"
	SourceAPI   = "api"
)

// Movie is the normalized, internal form of a catalog entry.
//
// Both the local document store and the third-party API are mapped into
// this structure first; raw upstream shapes never leave the adapter.
type Movie struct {
	ID     string `json:"id"`     // "local_<timestamp>" or "tp_<upstream id>"
	Title  string `json:"title"`  // normalized title, never empty ("Untitled" fallback)
	Year   int    `json:"year"`   // release year; 0 means unknown
	Source string `json:"source"` // "local" or "api"
}
