package cli

import (
	"context"
	"os"
	"strconv"

	"github.com/ka2n/llamadocs/api"
	"github.com/ka2n/llamadocs/log"
	"github.com/morikuni/failure/v2"
	"github.com/spf13/pflag"
)

// EnvMaxResources caps the discovered catalog when --max-resources is not given
const EnvMaxResources = "LLAMADOCS_MAX_RESOURCES"

// options are the flags shared by every command
type options struct {
	sitePath      string
	maxResources  countFlag
	cacheFailures bool
}

func (o *options) register(fs *pflag.FlagSet) {
	fs.StringVar(&o.sitePath, "site", "", "Site definition file (YAML)")
	fs.Var(&o.maxResources, "max-resources", "Maximum number of catalog resources (env "+EnvMaxResources+", default 50)")
	fs.BoolVar(&o.cacheFailures, "cache-failures", true, "Remember failed fetches for the life of the process")
}

// config resolves the library configuration from flags and environment.
// Flags take precedence over environment variables.
func (o *options) config() (api.Config, error) {
	site := api.DefaultSite
	if o.sitePath != "" {
		s, err := api.LoadSite(o.sitePath)
		if err != nil {
			return api.Config{}, err
		}
		site = s
	}

	maxResources := o.maxResources.Value
	if !o.maxResources.IsSet {
		if v := os.Getenv(EnvMaxResources); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return api.Config{}, failure.New(InvalidMaxResources,
					failure.Message(EnvMaxResources+" must be a positive integer"),
					failure.Context{"value": v})
			}
			maxResources = n
		}
	}

	return api.Config{
		Site:          site,
		MaxResources:  maxResources,
		CacheFailures: o.cacheFailures,
	}, nil
}

// newLibrary builds a Library without discovering its catalog
func (o *options) newLibrary() (*api.Library, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	log.Debug("Using site", "name", cfg.Site.Name, "base_url", cfg.Site.BaseURL, "max_resources", cfg.MaxResources)
	return api.NewLibrary(cfg), nil
}

// loadLibrary builds a Library and discovers its catalog
func (o *options) loadLibrary(ctx context.Context) (*api.Library, error) {
	lib, err := o.newLibrary()
	if err != nil {
		return nil, err
	}
	lib.Init(ctx)
	return lib, nil
}
