package api

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/morikuni/failure/v2"
)

func TestLoadSite(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Site
		wantCode ErrorCode
	}{
		{
			name:     "full definition",
			filename: "site_full.yaml",
			want: Site{
				Name:       "Example",
				BaseURL:    "https://docs.example.com",
				IndexPath:  "/latest/",
				NamePrefix: "example_",
				MIMEType:   "text/html",
				Fallback: []Page{
					{Path: "/latest/intro/", Title: "Intro Guide"},
					{Path: "/latest/api/", Title: "API Reference"},
				},
			},
		},
		{
			name:     "missing fields keep defaults",
			filename: "site_partial.yaml",
			want: func() Site {
				s := DefaultSite
				s.BaseURL = "http://localhost:9000"
				return s
			}(),
		},
		{
			name:     "relative base url",
			filename: "site_invalid.yaml",
			wantCode: ErrInvalidSite,
		},
		{
			name:     "broken yaml",
			filename: "site_broken.yaml",
			wantCode: ErrInvalidSite,
		},
		{
			name:     "missing file",
			filename: "does_not_exist.yaml",
			wantCode: ErrInvalidSite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadSite(filepath.Join("testdata", tt.filename))
			if tt.wantCode != "" {
				if !failure.Is(err, tt.wantCode) {
					t.Errorf("LoadSite() error = %v, want code %v", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadSite() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LoadSite() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFallbackResources(t *testing.T) {
	site, err := LoadSite(filepath.Join("testdata", "site_full.yaml"))
	if err != nil {
		t.Fatalf("LoadSite() error = %v", err)
	}

	want := []Resource{
		{URI: "https://docs.example.com/latest/intro/", Name: "example_intro_guide", Description: "Example Documentation: Intro Guide", MIMEType: "text/html"},
		{URI: "https://docs.example.com/latest/api/", Name: "example_api_reference", Description: "Example Documentation: API Reference", MIMEType: "text/html"},
	}
	if diff := cmp.Diff(want, site.FallbackResources()); diff != "" {
		t.Errorf("FallbackResources() mismatch (-want +got):\n%s", diff)
	}
}

func TestResourceMIME(t *testing.T) {
	if got := (Resource{}).MIME(); got != "text/plain" {
		t.Errorf("MIME() = %q, want text/plain", got)
	}
	if got := (Resource{MIMEType: "text/html"}).MIME(); got != "text/html" {
		t.Errorf("MIME() = %q, want text/html", got)
	}
}

func TestDefaultSiteIndexURL(t *testing.T) {
	if got := DefaultSite.IndexURL(); got != "https://docs.llamaindex.ai/en/stable/" {
		t.Errorf("IndexURL() = %q", got)
	}
}
