package api

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/morikuni/failure/v2"
	"gopkg.in/yaml.v3"
)

// DefaultMIMEType is used for resources that do not declare one
const DefaultMIMEType = "text/plain"

// Resource is an addressable documentation page served by the catalog
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MIMEType    string `json:"mimeType"`
}

// MIME returns the resource MIME type, falling back to DefaultMIMEType
func (r Resource) MIME() string {
	if r.MIMEType == "" {
		return DefaultMIMEType
	}
	return r.MIMEType
}

// Page is a well-known documentation page used when discovery fails
type Page struct {
	Path  string `yaml:"path"`
	Title string `yaml:"title"`
}

// Site describes the documentation website being served
type Site struct {
	// Name is the human readable site name used in resource descriptions
	Name string `yaml:"name"`
	// BaseURL is the scheme and host every relative link is resolved against
	BaseURL string `yaml:"base_url"`
	// IndexPath is the page whose links seed the catalog
	IndexPath string `yaml:"index_path"`
	// NamePrefix prefixes every resource name
	NamePrefix string `yaml:"name_prefix"`
	// MIMEType is advertised for every resource
	MIMEType string `yaml:"mime_type"`
	// Fallback is the catalog used when discovery fails
	Fallback []Page `yaml:"fallback"`
}

// DefaultSite is the LlamaIndex documentation site
var DefaultSite = Site{
	Name:       "LlamaIndex",
	BaseURL:    "https://docs.llamaindex.ai",
	IndexPath:  "/en/stable/",
	NamePrefix: "llamaindex_",
	MIMEType:   "text/html",
	Fallback: []Page{
		{Path: "/en/stable/getting_started/starter_example.html", Title: "Getting Started"},
		{Path: "/en/stable/module_guides/loading/", Title: "Data Loading"},
		{Path: "/en/stable/module_guides/indexing/", Title: "Indexing"},
		{Path: "/en/stable/module_guides/querying/", Title: "Querying"},
		{Path: "/en/stable/module_guides/agents/", Title: "Agents"},
	},
}

// LoadSite reads a site definition from a YAML file.
// Fields missing from the file keep their DefaultSite values.
func LoadSite(path string) (Site, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Site{}, failure.Wrap(err, failure.WithCode(ErrInvalidSite),
			failure.Message("Failed to read site definition"),
			failure.Context{"path": path})
	}

	site := DefaultSite
	site.Fallback = nil
	if err := yaml.Unmarshal(b, &site); err != nil {
		return Site{}, failure.Wrap(err, failure.WithCode(ErrInvalidSite),
			failure.Message("Failed to parse site definition"),
			failure.Context{"path": path})
	}
	if site.Fallback == nil {
		site.Fallback = DefaultSite.Fallback
	}

	if err := site.Validate(); err != nil {
		return Site{}, err
	}
	return site, nil
}

// Validate checks that the base URL is an absolute http(s) URL
func (s Site) Validate() error {
	u, err := url.Parse(s.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return failure.New(ErrInvalidSite,
			failure.Message("Site base URL must be an absolute http(s) URL"),
			failure.Context{"base_url": s.BaseURL})
	}
	return nil
}

// IndexURL returns the URL of the page that seeds discovery
func (s Site) IndexURL() string {
	return strings.TrimSuffix(s.BaseURL, "/") + s.IndexPath
}

// FallbackResources builds the fixed catalog from s.Fallback, in order
func (s Site) FallbackResources() []Resource {
	resources := make([]Resource, 0, len(s.Fallback))
	for _, p := range s.Fallback {
		resources = append(resources, Resource{
			URI:         strings.TrimSuffix(s.BaseURL, "/") + p.Path,
			Name:        s.NamePrefix + strings.ReplaceAll(strings.ToLower(p.Title), " ", "_"),
			Description: s.describe(p.Title),
			MIMEType:    s.MIMEType,
		})
	}
	return resources
}

func (s Site) describe(title string) string {
	return fmt.Sprintf("%s Documentation: %s", s.Name, title)
}
