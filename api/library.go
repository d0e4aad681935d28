// Package api discovers, fetches, caches and searches the pages of a documentation site.
package api

import (
	"context"
)

// Library is the documentation corpus served by one process: the site, its
// catalog and the content fetcher. It is constructed once at startup and
// shared by every request handler.
type Library struct {
	Site    Site
	Fetcher *Fetcher
	Catalog *Catalog
}

// Config holds the knobs read at startup
type Config struct {
	Site          Site
	MaxResources  int
	CacheFailures bool
	// FetcherOptions are applied after the options derived from the fields above
	FetcherOptions []FetcherOption
}

// NewLibrary wires a Fetcher and Catalog for cfg.Site; call Init before serving
func NewLibrary(cfg Config) *Library {
	opts := append([]FetcherOption{WithFailureCaching(cfg.CacheFailures)}, cfg.FetcherOptions...)
	fetcher := NewFetcher(opts...)
	return &Library{
		Site:    cfg.Site,
		Fetcher: fetcher,
		Catalog: NewCatalog(cfg.Site, fetcher, cfg.MaxResources),
	}
}

// Init runs catalog discovery; it is safe to call more than once
func (l *Library) Init(ctx context.Context) {
	l.Catalog.Discover(ctx)
}

// Resources returns the catalog in discovery order
func (l *Library) Resources() []Resource {
	return l.Catalog.Resources()
}

// Read returns the text of uri, or a failure description in its place
func (l *Library) Read(ctx context.Context, uri string) string {
	return l.Fetcher.Fetch(ctx, uri)
}

// ReadMarkdown returns uri rendered as Markdown, or a failure description in its place
func (l *Library) ReadMarkdown(ctx context.Context, uri string) string {
	return l.Fetcher.Markdown(ctx, uri)
}

// Search runs a search over the catalog
func (l *Library) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	return Search(ctx, l.Fetcher, l.Catalog.Resources(), query, limit)
}
