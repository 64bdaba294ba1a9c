package fx

import (
	"context"
	"log"

	"github.com/amityadav/modsearch/internal/codebase"
	"github.com/amityadav/modsearch/internal/config"
	"github.com/amityadav/modsearch/internal/gateway"
	"github.com/amityadav/modsearch/internal/google"
	"github.com/amityadav/modsearch/internal/scraper"
	"github.com/amityadav/modsearch/internal/search"
	"github.com/amityadav/modsearch/internal/serpapi"
	"github.com/amityadav/modsearch/internal/tavily"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

// ============================================================================
// FX MODULES - Group related providers together
// ============================================================================

// ConfigModule provides application configuration
var ConfigModule = fx.Module("config",
	fx.Provide(config.Load),
)

// SearchModule provides the search registry and page scraping
var SearchModule = fx.Module("search",
	fx.Provide(
		NewSearchRegistry,
		scraper.NewScraper,
		NewScrapePool,
	),
)

// GatewayModule provides the backend handle and the dispatcher
var GatewayModule = fx.Module("gateway",
	fx.Provide(
		NewBackend,
		gateway.NewDispatcher,
	),
)

// ============================================================================
// PROVIDER FUNCTIONS
// ============================================================================

// NewSearchRegistry creates search registry with all available providers.
// A provider that fails to initialize is skipped, never fatal.
func NewSearchRegistry(cfg config.Config) *search.Registry {
	registry := search.NewRegistry()

	if cfg.GoogleSearchAPIKey != "" || cfg.GoogleSearchCX != "" {
		client, err := google.NewClient(context.Background(), cfg.GoogleSearchAPIKey, cfg.GoogleSearchCX)
		if err != nil {
			log.Printf("[FX] SearchRegistry: Google failed to initialize: %v", err)
		} else {
			registry.Register(client)
			log.Printf("[FX] SearchRegistry: Google registered")
		}
	}

	if cfg.SerpAPIKey != "" {
		registry.Register(serpapi.NewClient(cfg.SerpAPIKey))
		log.Printf("[FX] SearchRegistry: SerpApi registered")
	}

	if cfg.TavilyAPIKey != "" {
		registry.Register(tavily.NewClient(cfg.TavilyAPIKey))
		log.Printf("[FX] SearchRegistry: Tavily registered")
	}

	log.Printf("[FX] SearchRegistry initialized with %d providers", registry.Count())
	return registry
}

// NewScrapePool creates the worker pool used to scrape search hits
func NewScrapePool(lc fx.Lifecycle, cfg config.Config) (*ants.Pool, error) {
	size := cfg.ScrapeWorkers
	if size < 1 {
		size = 1
	}

	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			pool.Release()
			return nil
		},
	})

	log.Printf("[FX] ScrapePool initialized (%d workers)", size)
	return pool, nil
}

// BackendParams groups dependencies for the search backend
type BackendParams struct {
	fx.In
	Config   config.Config
	Registry *search.Registry
	Scraper  *scraper.Scraper
	Pool     *ants.Pool
}

// NewBackend creates the codebase search backend. It returns a nil Backend when
// no search provider is configured; the gateway then serves fallback results.
func NewBackend(p BackendParams) gateway.Backend {
	provider, ok := p.Registry.Primary(p.Config.SearchProvider)
	if !ok {
		log.Printf("[FX] Backend unavailable (no search provider configured), serving fallback results")
		return nil
	}

	opts := []codebase.Option{codebase.WithNumResults(p.Config.SearchNumResults)}
	if p.Config.ScrapePages {
		opts = append(opts, codebase.WithScraper(p.Scraper, p.Pool))
	}

	log.Printf("[FX] Backend initialized (provider: %s, scrape pages: %v)", provider.Name(), p.Config.ScrapePages)
	return codebase.NewController(provider, opts...)
}
