package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultServiceName is reported by the health endpoints.
const DefaultServiceName = "modular-search-server"

// Config holds all application configuration
type Config struct {
	ServiceName string
	Port        int
	GRPCPort    int // 0 disables the gRPC health server

	GoogleSearchAPIKey string
	GoogleSearchCX     string
	SerpAPIKey         string
	TavilyAPIKey       string
	SearchProvider     string

	SearchNumResults int
	ScrapePages      bool
	ScrapeWorkers    int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load loads configuration from environment variables.
// Missing search credentials are not an error; the gateway then serves
// fallback results only.
func Load() Config {
	return Config{
		ServiceName:        getEnv("SERVICE_NAME", DefaultServiceName),
		Port:               getEnvInt("PORT", 8000),
		GRPCPort:           getEnvInt("GRPC_PORT", 50051),
		GoogleSearchAPIKey: os.Getenv("GOOGLE_SEARCH_API_KEY"),
		GoogleSearchCX:     os.Getenv("GOOGLE_SEARCH_CX"),
		SerpAPIKey:         os.Getenv("SERPAPI_API_KEY"),
		TavilyAPIKey:       os.Getenv("TAVILY_API_KEY"),
		SearchProvider:     strings.ToLower(strings.TrimSpace(os.Getenv("SEARCH_PROVIDER"))),
		SearchNumResults:   getEnvInt("SEARCH_NUM_RESULTS", 5),
		ScrapePages:        getEnvBool("SEARCH_SCRAPE_PAGES", true),
		ScrapeWorkers:      getEnvInt("SEARCH_SCRAPE_WORKERS", 4),
		ReadTimeout:        getEnvSeconds("HTTP_READ_TIMEOUT_SECS", 15),
		WriteTimeout:       getEnvSeconds("HTTP_WRITE_TIMEOUT_SECS", 120),
		IdleTimeout:        getEnvSeconds("HTTP_IDLE_TIMEOUT_SECS", 60),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultValue int) time.Duration {
	return time.Duration(getEnvInt(key, defaultValue)) * time.Second
}
