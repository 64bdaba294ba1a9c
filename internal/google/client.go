package google

import (
	"context"
	"fmt"
	"log"

	"github.com/amityadav/modsearch/internal/search"
	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// maxPageSize is the largest page the Custom Search JSON API serves.
const maxPageSize = 10

// Client searches the web through a Google Programmable Search Engine.
type Client struct {
	service *customsearch.Service
	cx      string
}

// createService creates a Custom Search service. Overridden in tests.
var createService = func(ctx context.Context, opts ...option.ClientOption) (*customsearch.Service, error) {
	return customsearch.NewService(ctx, opts...)
}

// NewClient creates a Custom Search client for engine cx.
func NewClient(ctx context.Context, apiKey, cx string, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Google Search API key is not set")
	}
	if cx == "" {
		return nil, fmt.Errorf("Google Search engine ID (cx) is not set")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	srv, err := createService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create customsearch service: %w", err)
	}
	return &Client{service: srv, cx: cx}, nil
}

// Name returns the provider identifier
func (c *Client) Name() string {
	return "google"
}

// Search returns at most maxResults hits from the first result page.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]search.Hit, error) {
	if maxResults <= 0 || maxResults > maxPageSize {
		maxResults = maxPageSize
	}

	log.Printf("[Google] Searching for: %q (num=%d)", query, maxResults)
	resp, err := c.service.Cse.List().
		Cx(c.cx).
		Q(query).
		Num(int64(maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("customsearch cse.list: %w", err)
	}

	hits := make([]search.Hit, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || item.Link == "" {
			continue
		}
		hits = append(hits, search.Hit{
			Title:    item.Title,
			URL:      item.Link,
			Snippet:  item.Snippet,
			Provider: "google",
		})
	}

	log.Printf("[Google] Found %d results", len(hits))
	return hits, nil
}
