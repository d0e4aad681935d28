package api

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// docSite is a fake documentation site that counts requests per path
type docSite struct {
	*httptest.Server

	mu    sync.Mutex
	pages map[string]string
	hits  map[string]int
}

func newDocSite(t *testing.T, pages map[string]string) *docSite {
	t.Helper()

	s := &docSite{
		pages: pages,
		hits:  make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		body, ok := s.pages[r.URL.Path]
		s.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *docSite) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *docSite) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.hits {
		total += n
	}
	return total
}

// site returns a Site definition pointing at the fake server
func (s *docSite) site() Site {
	site := DefaultSite
	site.BaseURL = s.URL
	return site
}

func page(body string) string {
	return "<html><body><main>" + body + "</main></body></html>"
}
