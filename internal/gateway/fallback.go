package gateway

import "strings"

// Fallback returns the deterministic substitute result set for query.
// It always yields three mapping-shaped items with occurrences 3, 2 and 1.
func Fallback(query string) []any {
	slug := strings.ReplaceAll(query, " ", "-")
	return []any{
		MapItem{"url": "https://example.com/article?q=" + query, "occurrences": 3},
		MapItem{"url": "https://docs.example.com/" + slug, "occurrences": 2},
		MapItem{"url": "https://blog.example.com/" + slug, "occurrences": 1},
	}
}
