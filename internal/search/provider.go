package search

import "context"

// Hit represents a search result from any provider
type Hit struct {
	Title    string
	URL      string
	Snippet  string
	Provider string // "google", "serpapi", "tavily"
}

// ResultURL exposes the hit as an object-shaped gateway result.
func (h Hit) ResultURL() string {
	return h.URL
}

// SearchProvider is the interface all search providers must implement
type SearchProvider interface {
	// Name returns the provider identifier (e.g., "tavily", "google")
	Name() string

	// Search runs a web search and returns at most maxResults hits
	Search(ctx context.Context, query string, maxResults int) ([]Hit, error)
}
