package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVICE_NAME", "PORT", "GRPC_PORT", "GOOGLE_SEARCH_API_KEY", "GOOGLE_SEARCH_CX",
		"SERPAPI_API_KEY", "TAVILY_API_KEY", "SEARCH_PROVIDER", "SEARCH_NUM_RESULTS",
		"SEARCH_SCRAPE_PAGES", "SEARCH_SCRAPE_WORKERS", "HTTP_READ_TIMEOUT_SECS",
		"HTTP_WRITE_TIMEOUT_SECS", "HTTP_IDLE_TIMEOUT_SECS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, DefaultServiceName, cfg.ServiceName)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.Empty(t, cfg.GoogleSearchAPIKey)
	assert.Empty(t, cfg.GoogleSearchCX)
	assert.Equal(t, 5, cfg.SearchNumResults)
	assert.True(t, cfg.ScrapePages)
	assert.Equal(t, 4, cfg.ScrapeWorkers)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 120*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVICE_NAME", "search-edge")
	t.Setenv("PORT", "9090")
	t.Setenv("GRPC_PORT", "0")
	t.Setenv("GOOGLE_SEARCH_API_KEY", "key")
	t.Setenv("GOOGLE_SEARCH_CX", "cx")
	t.Setenv("SEARCH_PROVIDER", "  Tavily ")
	t.Setenv("SEARCH_NUM_RESULTS", "8")
	t.Setenv("SEARCH_SCRAPE_PAGES", "false")
	t.Setenv("HTTP_WRITE_TIMEOUT_SECS", "5")

	cfg := Load()
	assert.Equal(t, "search-edge", cfg.ServiceName)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 0, cfg.GRPCPort)
	assert.Equal(t, "key", cfg.GoogleSearchAPIKey)
	assert.Equal(t, "cx", cfg.GoogleSearchCX)
	assert.Equal(t, "tavily", cfg.SearchProvider)
	assert.Equal(t, 8, cfg.SearchNumResults)
	assert.False(t, cfg.ScrapePages)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
}

func TestLoad_InvalidNumbersUseDefaults(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("SEARCH_SCRAPE_PAGES", "maybe")

	cfg := Load()
	assert.Equal(t, 8000, cfg.Port)
	assert.True(t, cfg.ScrapePages)
}
