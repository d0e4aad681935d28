package api

import (
	"context"
	"strings"

	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
)

const (
	// DefaultSearchLimit is used when the caller does not ask for a limit
	DefaultSearchLimit = 5

	snippetLines  = 3
	snippetLength = 200
	ellipsis      = "..."
)

// SearchResult is a resource whose content matched a query
type SearchResult struct {
	URI     string `json:"uri"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Search scans resources in catalog order for query.
// A resource is a candidate when its description or name contains the query;
// candidates are fetched and kept when their content contains it too. All
// comparisons are case-insensitive substring matches. Scanning stops as soon
// as limit results are collected, so later resources are never fetched.
func Search(ctx context.Context, fetcher *Fetcher, resources []Resource, query string, limit int) ([]SearchResult, error) {
	if limit < 0 {
		return nil, failure.New(ErrInvalidLimit,
			failure.Message("limit must not be negative"))
	}

	results := []SearchResult{}
	if limit == 0 {
		return results, nil
	}

	q := strings.ToLower(query)
	for _, r := range resources {
		if !strings.Contains(strings.ToLower(r.Description), q) && !strings.Contains(strings.ToLower(r.Name), q) {
			continue
		}

		content := fetcher.Fetch(ctx, r.URI)
		if !strings.Contains(strings.ToLower(content), q) {
			continue
		}

		results = append(results, SearchResult{
			URI:     r.URI,
			Title:   r.Description,
			Snippet: snippet(content, q),
		})
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

// snippet joins the first matching lines of content and truncates the result
func snippet(content, lowerQuery string) string {
	lines := lo.Filter(strings.Split(content, "\n"), func(line string, _ int) bool {
		return strings.Contains(strings.ToLower(line), lowerQuery)
	})
	if len(lines) > snippetLines {
		lines = lines[:snippetLines]
	}

	s := []rune(strings.Join(lines, "\n"))
	if len(s) > snippetLength {
		return string(s[:snippetLength]) + ellipsis
	}
	return string(s)
}
