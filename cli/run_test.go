package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/ka2n/llamadocs/api"
	"github.com/morikuni/failure/v2"
)

// newSiteFile serves a small documentation site and returns a site file pointing at it
func newSiteFile(t *testing.T) (string, *httptest.Server) {
	t.Helper()

	pages := map[string]string{
		"/en/stable/": `<html><body>
<a href="/en/stable/agents/">Agents guide</a>
<a href="/en/stable/loading/">Loading data</a>
</body></html>`,
		"/en/stable/agents/":  `<html><body><main><p>Agents use tools</p><p>Nothing else</p></main></body></html>`,
		"/en/stable/loading/": `<html><body><main><p>Readers load documents</p></main></body></html>`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte("base_url: "+srv.URL+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path, srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestResourcesCommand(t *testing.T) {
	t.Setenv(EnvMaxResources, "")
	site, srv := newSiteFile(t)

	out, err := execute(t, "resources", "--site", site)
	if err != nil {
		t.Fatalf("resources error = %v", err)
	}

	want := "Documentation Resources (2):\n" +
		"  llamaindex_doc_0\n" +
		"    LlamaIndex Documentation: Agents guide\n" +
		"    " + srv.URL + "/en/stable/agents/\n" +
		"  llamaindex_doc_1\n" +
		"    LlamaIndex Documentation: Loading data\n" +
		"    " + srv.URL + "/en/stable/loading/\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestResourcesCommandMaxResources(t *testing.T) {
	site, _ := newSiteFile(t)

	t.Setenv(EnvMaxResources, "1")
	out, err := execute(t, "resources", "--site", site)
	if err != nil {
		t.Fatalf("resources error = %v", err)
	}
	if !strings.HasPrefix(out, "Documentation Resources (1):") {
		t.Errorf("output = %q, want one resource", out)
	}

	t.Setenv(EnvMaxResources, "bogus")
	if _, err := execute(t, "resources", "--site", site); !failure.Is(err, InvalidMaxResources) {
		t.Errorf("resources error = %v, want %v", err, InvalidMaxResources)
	}
}

func TestSearchCommand(t *testing.T) {
	t.Setenv(EnvMaxResources, "")
	site, srv := newSiteFile(t)

	t.Run("text", func(t *testing.T) {
		out, err := execute(t, "search", "--site", site, "agents")
		if err != nil {
			t.Fatalf("search error = %v", err)
		}
		want := "LlamaIndex Documentation: Agents guide\n" +
			srv.URL + "/en/stable/agents/\n" +
			"  Agents use tools\n"
		if diff := cmp.Diff(want, out); diff != "" {
			t.Errorf("output mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "search", "--site", site, "-o", "json", "load")
		if err != nil {
			t.Fatalf("search error = %v", err)
		}
		var got []api.SearchResult
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("output is not JSON: %v: %s", err, out)
		}
		want := []api.SearchResult{{
			URI:     srv.URL + "/en/stable/loading/",
			Title:   "LlamaIndex Documentation: Loading data",
			Snippet: "Readers load documents",
		}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("results mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no results", func(t *testing.T) {
		out, err := execute(t, "search", "--site", site, "retrievers")
		if err != nil {
			t.Fatalf("search error = %v", err)
		}
		if out != "No results for \"retrievers\"\n" {
			t.Errorf("output = %q", out)
		}
	})

	t.Run("bad limit", func(t *testing.T) {
		if _, err := execute(t, "search", "--site", site, "--limit", "-2", "agents"); err == nil {
			t.Error("search with negative limit succeeded")
		}
	})
}

func TestFetchCommand(t *testing.T) {
	site, srv := newSiteFile(t)

	out, err := execute(t, "fetch", "--site", site, srv.URL+"/en/stable/agents/")
	if err != nil {
		t.Fatalf("fetch error = %v", err)
	}
	if out != "Agents use tools\nNothing else\n" {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, "fetch", "--site", site, srv.URL+"/missing/")
	if err != nil {
		t.Fatalf("fetch error = %v", err)
	}
	if !strings.HasPrefix(out, "HTTP error fetching content: ") {
		t.Errorf("output = %q, want failure text", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "llamadocs version 1.0.0") {
		t.Errorf("output = %q", out)
	}
}
