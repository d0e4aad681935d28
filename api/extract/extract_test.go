package extract

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// readTestFile reads a test file from the testdata directory
func readTestFile(t *testing.T, filename string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatalf("Failed to read test file %s: %v", filename, err)
	}
	return string(content)
}

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{
			name:     "main element wins over article",
			filename: "main_content.html",
			want: strings.Join([]string{
				"Starter Tutorial",
				"Install the package with pip.",
				"Load your data   and build an index.",
			}, "\n"),
		},
		{
			name:     "article when no main",
			filename: "article_content.html",
			want:     "Indexing\nAn Index is a data structure.",
		},
		{
			name:     "content class container",
			filename: "div_content.html",
			want:     "Querying\nQuerying is the most important part of your LLM application.",
		},
		{
			name:     "whole document fallback",
			filename: "whole_document.html",
			want:     "Agents\nAgents are LLM-powered knowledge workers.",
		},
		{
			name:     "plain text body",
			filename: "",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body string
			if tt.filename != "" {
				body = readTestFile(t, tt.filename)
			}
			got, err := Text(strings.NewReader(body))
			if err != nil {
				t.Fatalf("Text() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Text() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLinks(t *testing.T) {
	got, err := Links(strings.NewReader(readTestFile(t, "index.html")))
	if err != nil {
		t.Fatalf("Links() error = %v", err)
	}

	want := []Link{
		{Href: "/en/stable/", Label: "Home"},
		{Href: "/en/stable/getting_started/installation/", Label: "Installation and Setup"},
		{Href: "https://docs.llamaindex.ai/en/stable/understanding/", Label: "Understanding"},
		{Href: "https://github.com/run-llama/llama_index", Label: "GitHub"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Links() mismatch (-want +got):\n%s", diff)
	}
}

func TestMarkdown(t *testing.T) {
	u, _ := url.Parse("https://docs.llamaindex.ai/en/stable/getting_started/starter_example/")

	got, err := Markdown(u, readTestFile(t, "main_content.html"))
	if err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}
	if !strings.Contains(got, "Install the package with pip.") {
		t.Errorf("Markdown() = %q, want it to contain the page body", got)
	}
}
