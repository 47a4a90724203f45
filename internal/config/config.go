// Package config loads paks-og settings from defaults, a config file,
// PAKSOG_ environment variables and command-line flags.
package config

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/stakpak/paks-og/pkg/cache"
	perrors "github.com/stakpak/paks-og/pkg/errors"
	"github.com/stakpak/paks-og/pkg/fonts"
	"github.com/stakpak/paks-og/pkg/integrations/paks"
	"github.com/stakpak/paks-og/pkg/raster"
)

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Log formats.
const (
	LogText   = "text"
	LogJSON   = "json"
	LogLogfmt = "logfmt"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Registry RegistryConfig `koanf:"registry"`
	Cache    CacheConfig    `koanf:"cache"`
	Fonts    FontsConfig    `koanf:"fonts"`
	Render   RenderConfig   `koanf:"render"`
	Log      LogConfig      `koanf:"log"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr              string        `koanf:"addr"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
}

// RegistryConfig configures the Paks registry client. A zero Timeout means
// requests are bounded only by the caller's context.
type RegistryConfig struct {
	BaseURL  string        `koanf:"base_url"`
	Timeout  time.Duration `koanf:"timeout"`
	Retries  int           `koanf:"retries"`
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// CacheConfig selects where registry responses and rendered cards are kept.
type CacheConfig struct {
	Backend  string `koanf:"backend"`
	Dir      string `koanf:"dir"`
	RedisURL string `koanf:"redis_url"`

	// KeyPrefix namespaces every key, so deployments can share one Redis.
	KeyPrefix string `koanf:"key_prefix"`
}

// FontsConfig configures font discovery.
type FontsConfig struct {
	Family           string        `koanf:"family"`
	Dir              string        `koanf:"dir"`
	Subproject       string        `koanf:"subproject"`
	RegularURL       string        `koanf:"regular_url"`
	BoldURL          string        `koanf:"bold_url"`
	FetchTimeout     time.Duration `koanf:"fetch_timeout"`
	EmbeddedFallback bool          `koanf:"embedded_fallback"`
}

// RenderConfig configures rasterization.
type RenderConfig struct {
	Width   int    `koanf:"width"`
	Backend string `koanf:"backend"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Defaults returns the lowest-precedence configuration layer.
func Defaults() map[string]any {
	return map[string]any{
		"server.addr":                ":8080",
		"server.read_header_timeout": 10 * time.Second,
		"server.shutdown_timeout":    5 * time.Second,

		"registry.base_url":  paks.DefaultBaseURL,
		"registry.timeout":   time.Duration(0),
		"registry.retries":   2,
		"registry.cache_ttl": cache.TTLHTTP,

		"cache.backend":    CacheNone,
		"cache.dir":        "",
		"cache.redis_url":  "",
		"cache.key_prefix": "",

		"fonts.family":            fonts.DefaultFamily,
		"fonts.dir":               "",
		"fonts.subproject":        fonts.DefaultSubproject,
		"fonts.regular_url":       fonts.DefaultRegularURL,
		"fonts.bold_url":          fonts.DefaultBoldURL,
		"fonts.fetch_timeout":     time.Duration(0),
		"fonts.embedded_fallback": false,

		"render.width":   raster.DefaultWidth,
		"render.backend": raster.BackendNative,

		"log.level":  "info",
		"log.format": LogText,
	}
}

// Validate checks values that cannot be checked by decoding alone.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return invalid("server.addr is required")
	}
	if err := perrors.ValidateURL(c.Registry.BaseURL); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "registry.base_url")
	}
	if c.Registry.Timeout < 0 || c.Fonts.FetchTimeout < 0 {
		return invalid("timeouts cannot be negative")
	}
	if c.Registry.Retries < 0 {
		return invalid("registry.retries cannot be negative")
	}

	switch strings.ToLower(c.Cache.Backend) {
	case CacheNone, CacheFile:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return invalid("cache.redis_url is required for the redis backend")
		}
	default:
		return invalid("unknown cache.backend %q (want none, file or redis)", c.Cache.Backend)
	}

	for name, u := range map[string]string{"fonts.regular_url": c.Fonts.RegularURL, "fonts.bold_url": c.Fonts.BoldURL} {
		if err := perrors.ValidateURL(u); err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "%s", name)
		}
	}

	if c.Render.Width < 1 || c.Render.Width > raster.MaxWidth {
		return invalid("render.width must be between 1 and %d", raster.MaxWidth)
	}
	if _, err := raster.NewBackend(c.Render.Backend); err != nil {
		return err
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level: %v", err)
	}
	switch c.Log.Format {
	case LogText, LogJSON, LogLogfmt:
	default:
		return invalid("unknown log.format %q (want text, json or logfmt)", c.Log.Format)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return perrors.New(perrors.ErrCodeInvalidConfig, format, args...)
}
