package api

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"sync"
	"unicode/utf8"

	"github.com/ka2n/llamadocs/api/extract"
	"github.com/ka2n/llamadocs/log"
	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
)

// DefaultMaxResources caps the catalog size when no limit is configured
const DefaultMaxResources = 50

// minLabelLength filters out icon and symbol links
const minLabelLength = 3

// Catalog is the ordered list of resources discovered from the site navigation
type Catalog struct {
	site         Site
	fetcher      *Fetcher
	maxResources int

	once      sync.Once
	resources []Resource
}

// NewCatalog creates an empty catalog; call Discover to populate it.
// maxResources <= 0 means DefaultMaxResources.
func NewCatalog(site Site, fetcher *Fetcher, maxResources int) *Catalog {
	if maxResources <= 0 {
		maxResources = DefaultMaxResources
	}
	return &Catalog{
		site:         site,
		fetcher:      fetcher,
		maxResources: maxResources,
	}
}

// Discover builds the catalog from the site index page.
// Only the first call does any work; later calls return the same resources.
// When the index cannot be fetched or parsed, or yields no usable link, the
// site's fallback pages are used instead.
func (c *Catalog) Discover(ctx context.Context) []Resource {
	c.once.Do(func() {
		resources, err := c.discover(ctx)
		if err != nil {
			log.Error("Failed to discover documentation structure, using defaults", log.Err(err))
			resources = c.site.FallbackResources()
		}
		c.resources = resources
		log.Info("Initialized documentation resources", "count", len(c.resources))
	})
	return c.Resources()
}

func (c *Catalog) discover(ctx context.Context) ([]Resource, error) {
	indexURL := c.site.IndexURL()
	body, err := c.fetcher.download(ctx, indexURL)
	if err != nil {
		return nil, err
	}

	links, err := extract.Links(bytes.NewReader(body))
	if err != nil {
		return nil, failure.Wrap(err, failure.WithCode(ErrDiscoveryFailed),
			failure.Message(fmt.Sprintf("Failed to parse index page: %v", err)),
			failure.Context{"url": indexURL})
	}

	base, err := url.Parse(c.site.BaseURL)
	if err != nil {
		return nil, failure.Wrap(err, failure.WithCode(ErrDiscoveryFailed),
			failure.Message(fmt.Sprintf("Invalid base URL: %v", err)),
			failure.Context{"base_url": c.site.BaseURL})
	}

	resources := c.resourcesFromLinks(base, links)
	if len(resources) == 0 {
		return nil, failure.New(ErrDiscoveryFailed,
			failure.Message("No documentation links found"),
			failure.Context{"url": indexURL})
	}
	return resources, nil
}

type docLink struct {
	URL   string
	Title string
}

func (c *Catalog) resourcesFromLinks(base *url.URL, links []extract.Link) []Resource {
	docLinks := make([]docLink, 0, len(links))
	for _, l := range links {
		if utf8.RuneCountInString(l.Label) <= minLabelLength {
			continue
		}
		u, ok := resolveSameSite(base, l.Href)
		if !ok {
			continue
		}
		docLinks = append(docLinks, docLink{URL: u, Title: l.Label})
	}

	docLinks = lo.UniqBy(docLinks, func(l docLink) string {
		return l.URL
	})
	if len(docLinks) > c.maxResources {
		docLinks = docLinks[:c.maxResources]
	}

	return lo.Map(docLinks, func(l docLink, i int) Resource {
		return Resource{
			URI:         l.URL,
			Name:        fmt.Sprintf("%sdoc_%d", c.site.NamePrefix, i),
			Description: c.site.describe(l.Title),
			MIMEType:    c.site.MIMEType,
		}
	})
}

// resolveSameSite resolves href against base and reports whether it points
// to the same host over http(s)
func resolveSameSite(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	// fragment-only links point back at the index page itself
	if ref.Scheme == "" && ref.Host == "" && ref.Path == "" {
		return "", false
	}

	u := base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if u.Host != base.Host {
		return "", false
	}
	return u.String(), true
}

// Resources returns a copy of the catalog in discovery order
func (c *Catalog) Resources() []Resource {
	resources := make([]Resource, len(c.resources))
	copy(resources, c.resources)
	return resources
}

// Lookup finds a resource by URI
func (c *Catalog) Lookup(uri string) (Resource, bool) {
	return lo.Find(c.resources, func(r Resource) bool {
		return r.URI == uri
	})
}
