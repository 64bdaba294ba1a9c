package codebase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/amityadav/modsearch/internal/gateway"
	"github.com/amityadav/modsearch/internal/search"
	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	hits    []search.Hit
	err     error
	gotMax  int
	gotText string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Search(_ context.Context, query string, maxResults int) ([]search.Hit, error) {
	f.gotText = query
	f.gotMax = maxResults
	return f.hits, f.err
}

type fakeFetcher struct {
	pages map[string][]string
	calls atomic.Int32
}

func (f *fakeFetcher) Links(_ context.Context, pageURL string) ([]string, error) {
	f.calls.Add(1)
	links, ok := f.pages[pageURL]
	if !ok {
		return nil, errors.New("status code error: 404")
	}
	return links, nil
}

func newPool(t *testing.T) *ants.Pool {
	t.Helper()
	pool, err := ants.NewPool(2)
	require.NoError(t, err)
	t.Cleanup(pool.Release)
	return pool
}

func TestRun_CountsRepositoryReferences(t *testing.T) {
	provider := &fakeProvider{hits: []search.Hit{
		{URL: "https://blog.example.com/a"},
		{URL: "https://github.com/rust-lang/rust"},
		{URL: "https://blog.example.com/missing"},
		{URL: "https://news.example.com/b"},
	}}
	fetcher := &fakeFetcher{pages: map[string][]string{
		"https://blog.example.com/a": {
			"https://github.com/tokio-rs/tokio",
			"https://github.com/rust-lang/rust/issues/1",
			"https://example.com/unrelated",
		},
		"https://github.com/rust-lang/rust": {
			"https://github.com/rust-lang/rust/blob/master/README.md",
		},
		"https://news.example.com/b": {
			"https://gitlab.com/some/project",
			"https://github.com/tokio-rs/tokio",
		},
	}}

	c := NewController(provider, WithScraper(fetcher, newPool(t)), WithNumResults(4))
	out, err := c.Run(context.Background(), "rust async")
	require.NoError(t, err)

	assert.Equal(t, []Match{
		{Repository: "https://github.com/rust-lang/rust", Occurrences: 3},
		{Repository: "https://github.com/tokio-rs/tokio", Occurrences: 2},
		{Repository: "https://gitlab.com/some/project", Occurrences: 1},
	}, out)
	assert.Equal(t, "rust async", provider.gotText)
	assert.Equal(t, 4, provider.gotMax)
	assert.Equal(t, int32(4), fetcher.calls.Load())
}

func TestRun_NoRepositoriesReturnsHits(t *testing.T) {
	hits := []search.Hit{{URL: "https://blog.example.com/a", Provider: "fake"}}
	fetcher := &fakeFetcher{pages: map[string][]string{
		"https://blog.example.com/a": {"https://example.com/other"},
	}}

	c := NewController(&fakeProvider{hits: hits}, WithScraper(fetcher, newPool(t)))
	out, err := c.Run(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, hits, out)
}

func TestRun_WithoutScraper(t *testing.T) {
	hits := []search.Hit{{URL: "https://a"}, {URL: "https://b"}}
	provider := &fakeProvider{hits: hits}

	c := NewController(provider)
	out, err := c.Run(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, hits, out)
	assert.Equal(t, defaultNumResults, provider.gotMax)
}

func TestRun_ScraperWithoutPool(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string][]string{
		"https://a": {"https://github.com/golang/go"},
	}}

	c := NewController(&fakeProvider{hits: []search.Hit{{URL: "https://a"}}}, WithScraper(fetcher, nil))
	out, err := c.Run(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, []Match{{Repository: "https://github.com/golang/go", Occurrences: 1}}, out)
}

func TestRun_EmptyHits(t *testing.T) {
	fetcher := &fakeFetcher{}
	c := NewController(&fakeProvider{hits: []search.Hit{}}, WithScraper(fetcher, newPool(t)))

	out, err := c.Run(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, int32(0), fetcher.calls.Load())
}

func TestRun_ProviderError(t *testing.T) {
	c := NewController(&fakeProvider{err: errors.New("quota exceeded")})

	_, err := c.Run(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fake search: quota exceeded")
}

func TestRun_ReleasedPoolSkipsPages(t *testing.T) {
	pool, err := ants.NewPool(1)
	require.NoError(t, err)
	pool.Release()

	hits := []search.Hit{{URL: "https://github.com/golang/go"}}
	c := NewController(&fakeProvider{hits: hits}, WithScraper(&fakeFetcher{}, pool))

	out, err := c.Run(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, hits, out)
}

func TestController_IsGatewayBackend(t *testing.T) {
	provider := &fakeProvider{hits: []search.Hit{{URL: "https://a"}}}
	d := gateway.NewDispatcher(NewController(provider))

	results, outcome, err := d.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, gateway.BackendSuccess, outcome.Kind())
	require.Len(t, results, 1)
	assert.Equal(t, "https://a", results[0].URL)
	assert.Equal(t, 1, *results[0].Occurrences)
}

func TestController_EmptyHitsFallBack(t *testing.T) {
	d := gateway.NewDispatcher(NewController(&fakeProvider{}))

	outcome := d.Dispatch(context.Background(), "q")
	assert.True(t, outcome.IsFallback())
}
