package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ka2n/llamadocs/api/cache"
	"github.com/ka2n/llamadocs/api/extract"
	"github.com/ka2n/llamadocs/log"
	"github.com/morikuni/failure/v2"
)

// FetchTimeout bounds every outbound request
const FetchTimeout = 30 * time.Second

// userAgent is sent to avoid being blocked
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Fetcher retrieves documentation pages and memoizes their extracted text by URI
type Fetcher struct {
	client        *http.Client
	text          *cache.Cache[string]
	markdown      *cache.Cache[string]
	cacheFailures bool
}

// FetcherOption configures a Fetcher
type FetcherOption func(*Fetcher)

// WithHTTPClient replaces the default client (30s timeout, logged transport)
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithFailureCaching controls whether failure text is memoized like content.
// It is enabled by default.
func WithFailureCaching(enabled bool) FetcherOption {
	return func(f *Fetcher) {
		f.cacheFailures = enabled
	}
}

// NewFetcher creates a Fetcher with empty caches
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout:   FetchTimeout,
			Transport: log.Transport(nil),
		},
		text:          cache.New[string](),
		markdown:      cache.New[string](),
		cacheFailures: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the extracted text of the page at uri.
// It never fails: errors are rendered as a human readable description and
// returned in place of the content.
func (f *Fetcher) Fetch(ctx context.Context, uri string) string {
	if content, ok := f.text.Get(uri); ok {
		return content
	}

	content, err := f.Get(ctx, uri)
	if err != nil {
		log.Error("Failed to fetch content", "uri", uri, log.Err(err))
		content = FailureText(err)
		if !f.cacheFailures {
			return content
		}
	}

	return f.text.Set(uri, content)
}

// Get fetches uri and extracts its text without consulting the cache
func (f *Fetcher) Get(ctx context.Context, uri string) (string, error) {
	body, err := f.download(ctx, uri)
	if err != nil {
		return "", err
	}

	content, err := extract.Text(bytes.NewReader(body))
	if err != nil {
		return "", failure.Wrap(err, failure.WithCode(ErrExtractFailed),
			failure.Message(fmt.Sprintf("Failed to extract text: %v", err)),
			failure.Context{"uri": uri})
	}
	return content, nil
}

// Markdown returns the page at uri converted to Markdown, memoized separately
// from Fetch. Failures are rendered the same way as Fetch but never memoized.
func (f *Fetcher) Markdown(ctx context.Context, uri string) string {
	md, err := f.markdown.GetOrSet(uri, func() (string, error) {
		body, err := f.download(ctx, uri)
		if err != nil {
			return "", err
		}
		u, err := url.Parse(uri)
		if err != nil {
			return "", failure.Wrap(err, failure.WithCode(ErrExtractFailed),
				failure.Message(fmt.Sprintf("Invalid resource URI: %v", err)),
				failure.Context{"uri": uri})
		}
		md, err := extract.Markdown(u, string(body))
		if err != nil {
			return "", failure.Wrap(err, failure.WithCode(ErrExtractFailed),
				failure.Message(fmt.Sprintf("Failed to convert page to Markdown: %v", err)),
				failure.Context{"uri": uri})
		}
		return md, nil
	})
	if err != nil {
		log.Error("Failed to fetch markdown", "uri", uri, log.Err(err))
		return FailureText(err)
	}
	return md
}

// CachedCount returns how many URIs have memoized text
func (f *Fetcher) CachedCount() int {
	return f.text.Len()
}

// download is bounded by the client timeout only. The result is shared through
// the caches, so the caller's cancellation is not propagated.
func (f *Fetcher) download(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodGet, uri, nil)
	if err != nil {
		return nil, failure.Wrap(err, failure.WithCode(ErrFetchFailed),
			failure.Message(fmt.Sprintf("Invalid resource URI: %v", err)),
			failure.Context{"uri": uri})
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, failure.Wrap(err, failure.WithCode(ErrFetchFailed),
			failure.Message(fmt.Sprintf("Failed to fetch page: %v", err)),
			failure.Context{"uri": uri})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, failure.New(ErrUnexpectedStatus,
			failure.Message(fmt.Sprintf("Unexpected status '%s' for url '%s'", resp.Status, uri)),
			failure.Context{"uri": uri, "status": resp.Status})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, failure.Wrap(err, failure.WithCode(ErrFetchFailed),
			failure.Message(fmt.Sprintf("Failed to read response body: %v", err)),
			failure.Context{"uri": uri})
	}
	return body, nil
}

// FailureText renders a fetch error the way it is served in place of content
func FailureText(err error) string {
	if failure.Is(err, ErrExtractFailed) {
		return fmt.Sprintf("Unexpected error fetching content: %s", errorMessage(err))
	}
	return fmt.Sprintf("HTTP error fetching content: %s", errorMessage(err))
}

func errorMessage(err error) string {
	if msg := failure.MessageOf(err); msg != "" {
		return msg.String()
	}
	return err.Error()
}
