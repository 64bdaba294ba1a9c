package codebase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/amityadav/modsearch/internal/search"
	"github.com/panjf2000/ants/v2"
)

const defaultNumResults = 5

// Match is a repository referenced by the pages a search returned.
type Match struct {
	Repository  string
	Occurrences int
}

func (m Match) ResultURL() string      { return m.Repository }
func (m Match) ResultOccurrences() int { return m.Occurrences }

// LinkFetcher returns the outbound links of a page.
type LinkFetcher interface {
	Links(ctx context.Context, pageURL string) ([]string, error)
}

// Controller finds code repositories related to a query: it runs a web
// search, scrapes every hit for links into code hosts and counts how often each
// repository is referenced.
type Controller struct {
	provider   search.SearchProvider
	fetcher    LinkFetcher
	pool       *ants.Pool
	numResults int
}

// Option configures a Controller.
type Option func(*Controller)

// WithScraper enables page scraping. Pages are fetched on pool.
func WithScraper(fetcher LinkFetcher, pool *ants.Pool) Option {
	return func(c *Controller) {
		c.fetcher = fetcher
		c.pool = pool
	}
}

// WithNumResults sets how many search hits are requested per query.
func WithNumResults(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.numResults = n
		}
	}
}

// NewController creates a controller on top of provider.
func NewController(provider search.SearchProvider, opts ...Option) *Controller {
	c := &Controller{
		provider:   provider,
		numResults: defaultNumResults,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run returns []Match when any repository was found, otherwise the raw
// []search.Hit (possibly empty).
func (c *Controller) Run(ctx context.Context, query string) (any, error) {
	hits, err := c.provider.Search(ctx, query, c.numResults)
	if err != nil {
		return nil, fmt.Errorf("%s search: %w", c.provider.Name(), err)
	}
	if len(hits) == 0 || c.fetcher == nil {
		return hits, nil
	}

	matches := c.collect(ctx, hits)
	if len(matches) == 0 {
		log.Printf("[Codebase] No repositories referenced by %d pages, returning search hits", len(hits))
		return hits, nil
	}

	log.Printf("[Codebase] Found %d repositories across %d pages", len(matches), len(hits))
	return matches, nil
}

// collect scrapes hits concurrently and merges per-page references in hit
// order so that ties keep a stable first-seen ordering.
func (c *Controller) collect(ctx context.Context, hits []search.Hit) []Match {
	perPage := make([][]string, len(hits))

	var wg sync.WaitGroup
	for i, hit := range hits {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			perPage[i] = c.references(ctx, hit)
		}
		if c.pool == nil {
			task()
			continue
		}
		if err := c.pool.Submit(task); err != nil {
			log.Printf("[Codebase] Pool rejected %s: %v", hit.URL, err)
			wg.Done()
		}
	}
	wg.Wait()

	counts := map[string]int{}
	var order []string
	for _, repos := range perPage {
		for _, repo := range repos {
			if counts[repo] == 0 {
				order = append(order, repo)
			}
			counts[repo]++
		}
	}

	matches := make([]Match, len(order))
	for i, repo := range order {
		matches[i] = Match{Repository: repo, Occurrences: counts[repo]}
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Occurrences > matches[b].Occurrences
	})
	return matches
}

// references returns every repository reference of a hit: the hit itself if
// it is a repository, then each repository link on the page.
func (c *Controller) references(ctx context.Context, hit search.Hit) []string {
	var repos []string
	if repo, ok := RepositoryURL(hit.URL); ok {
		repos = append(repos, repo)
	}

	links, err := c.fetcher.Links(ctx, hit.URL)
	if err != nil {
		log.Printf("[Codebase] Skipping %s: %v", hit.URL, err)
		return repos
	}
	for _, link := range links {
		if repo, ok := RepositoryURL(link); ok {
			repos = append(repos, repo)
		}
	}
	return repos
}
