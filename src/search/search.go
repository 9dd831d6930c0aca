package search

import "context"

// Query describes one web search request in provider-neutral terms.
type Query struct {
	Text           string
	NumResults     int
	MaxCharacters  int
	IncludeDomains []string
	UseAutoprompt  bool
}

// Result captures a single entry returned by a search provider.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Engine defines a concrete search backend.
type Engine interface {
	// Name returns the unique identifier for the engine instance.
	Name() string
	// Search executes the query and returns results in provider ranking order.
	Search(ctx context.Context, q Query) ([]Result, error)
}
