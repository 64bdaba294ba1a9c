package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback_Shape(t *testing.T) {
	queries := []string{"rust memory safety", "go", "  padded  ", "a/b?c=d", "日本語 検索"}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			items := Fallback(q)
			require.Len(t, items, 3)

			results, err := NormalizeAll(items)
			require.NoError(t, err)

			var counts []int
			for _, r := range results {
				require.NotNil(t, r.Occurrences)
				counts = append(counts, *r.Occurrences)
			}
			assert.Equal(t, []int{3, 2, 1}, counts)
		})
	}
}

func TestFallback_URLs(t *testing.T) {
	items := Fallback("Rust Memory safety")

	assert.Equal(t, "https://example.com/article?q=Rust Memory safety", items[0].(MapItem)["url"])
	assert.Equal(t, "https://docs.example.com/Rust-Memory-safety", items[1].(MapItem)["url"])
	assert.Equal(t, "https://blog.example.com/Rust-Memory-safety", items[2].(MapItem)["url"])
}

func TestFallback_SlugOnlyReplacesSpaces(t *testing.T) {
	items := Fallback("a\tb  c&d")

	assert.Equal(t, "https://docs.example.com/a\tb--c&d", items[1].(MapItem)["url"])
}

func TestFallback_Deterministic(t *testing.T) {
	assert.Equal(t, Fallback("same query"), Fallback("same query"))
}
