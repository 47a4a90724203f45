package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/stakpak/paks-og/internal/config"
	"github.com/stakpak/paks-og/pkg/cache"
	perrors "github.com/stakpak/paks-og/pkg/errors"
	"github.com/stakpak/paks-og/pkg/fonts"
	"github.com/stakpak/paks-og/pkg/integrations/paks"
	"github.com/stakpak/paks-og/pkg/pipeline"
	"github.com/stakpak/paks-og/pkg/raster"
)

// appName is the application name used for directories and display.
const appName = "paks-og"

// LogInfo is the default log level, exported for main.
const LogInfo = log.InfoLevel

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands. Config and Logger are replaced
// once flags are parsed.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	logOut  io.Writer
	cfgFile string
	verbose bool
}

// New creates a CLI that logs to w at the given level until configuration
// is loaded.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level, config.LogText),
		logOut: w,
	}
}

// config returns the loaded configuration, loading defaults when a command
// runs without the root's pre-run hook.
func (c *CLI) config() (*config.Config, error) {
	if c.Config != nil {
		return c.Config, nil
	}
	cfg, err := config.Load(c.cfgFile, nil)
	if err != nil {
		return nil, err
	}
	c.Config = cfg
	return cfg, nil
}

// =============================================================================
// Factories
// =============================================================================

// newCache opens the configured cache backend.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheFile:
		fc, err := cache.NewFileCache(cfg.Cache.Dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		return cache.NewNullCache(), nil
	}
}

// fontSources returns the configured font sources in lookup order.
func fontSources(cfg *config.Config) []fonts.Source {
	sources := []fonts.Source{
		&fonts.LocalSource{Dir: cfg.Fonts.Dir, Subproject: cfg.Fonts.Subproject},
		&fonts.RemoteSource{
			RegularURL: cfg.Fonts.RegularURL,
			BoldURL:    cfg.Fonts.BoldURL,
			Timeout:    cfg.Fonts.FetchTimeout,
			Retries:    1,
		},
	}
	if cfg.Fonts.EmbeddedFallback {
		sources = append(sources, fonts.EmbeddedSource{})
	}
	return sources
}

// newRunner wires a pipeline runner from configuration. offline skips the
// registry. The caller must Close the runner.
func (c *CLI) newRunner(ctx context.Context, offline bool) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}

	store, err := c.newCache(ctx, cfg)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "open %s cache", cfg.Cache.Backend)
	}

	backend, err := raster.NewBackend(cfg.Render.Backend)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	keyer := cache.NewDefaultKeyer()
	if cfg.Cache.KeyPrefix != "" {
		keyer = cache.NewScopedKeyer(keyer, cfg.Cache.KeyPrefix)
	}

	var lookup pipeline.Lookup
	if !offline {
		client := paks.NewClient(paks.Config{
			BaseURL:  cfg.Registry.BaseURL,
			Timeout:  cfg.Registry.Timeout,
			Retries:  cfg.Registry.Retries,
			Cache:    store,
			Keyer:    keyer,
			CacheTTL: cfg.Registry.CacheTTL,
		})
		lookup = pipeline.NewRegistryLookup(client)
	}

	provider := fonts.NewProvider(fonts.NewCache(), cfg.Fonts.Family, fontSources(cfg), c.Logger)

	return pipeline.NewRunner(pipeline.Config{
		Lookup:  lookup,
		Fonts:   provider,
		Backend: backend,
		Cache:   store,
		Keyer:   keyer,
		Logger:  c.Logger,
	}), nil
}

// cacheDir returns the file cache directory from configuration, falling
// back to the user cache directory.
func cacheDir(cfg *config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// openOutput returns stdout for "-" and a created file otherwise.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
