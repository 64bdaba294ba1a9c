package serpapi

import (
	"context"
	"fmt"
	"log"

	"github.com/amityadav/modsearch/internal/search"
	g "github.com/serpapi/google-search-results-golang"
)

// Client is a wrapper around the SerpApi search service
type Client struct {
	apiKey string
	fetch  func(parameter map[string]string, apiKey string) (map[string]interface{}, error)
}

// NewClient creates a new SerpApiClient
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		fetch: func(parameter map[string]string, apiKey string) (map[string]interface{}, error) {
			s := g.NewGoogleSearch(parameter, apiKey)
			return s.GetJSON()
		},
	}
}

// Name returns the provider identifier
func (c *Client) Name() string {
	return "serpapi"
}

// Search performs a Google search via SerpApi and returns organic results.
// The SerpApi client has no context support; ctx is only checked before the call.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]search.Hit, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("SerpApi API key is not set")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	parameter := map[string]string{
		"engine":        "google",
		"q":             query,
		"google_domain": "google.com",
		"gl":            "us",
		"hl":            "en",
		"num":           fmt.Sprint(maxResults),
	}

	log.Printf("[SerpApi] Searching for: %q", query)
	results, err := c.fetch(parameter, c.apiKey)
	if err != nil {
		return nil, fmt.Errorf("serpapi search failed: %w", err)
	}

	hits := parseOrganic(results, maxResults)
	log.Printf("[SerpApi] Found %d organic results", len(hits))
	return hits, nil
}

// parseOrganic focuses on the organic_results node
func parseOrganic(results map[string]interface{}, maxResults int) []search.Hit {
	organicResults, ok := results["organic_results"].([]interface{})
	if !ok {
		log.Printf("[SerpApi] No organic_results found in response")
		return []search.Hit{}
	}

	hits := make([]search.Hit, 0, len(organicResults))
	for _, item := range organicResults {
		res, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		title, _ := res["title"].(string)
		link, _ := res["link"].(string)
		snippet, _ := res["snippet"].(string)

		if link == "" {
			continue
		}

		hits = append(hits, search.Hit{
			Title:    title,
			URL:      link,
			Snippet:  snippet,
			Provider: "serpapi",
		})
		if len(hits) == maxResults {
			break
		}
	}
	return hits
}
