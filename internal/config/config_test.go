package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	perrors "github.com/stakpak/paks-og/pkg/errors"
	"github.com/stakpak/paks-og/pkg/fonts"
	"github.com/stakpak/paks-og/pkg/integrations/paks"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load("", t.TempDir(), nil)
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.ReadHeaderTimeout != 10*time.Second || cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("server timeouts = %v/%v", cfg.Server.ReadHeaderTimeout, cfg.Server.ShutdownTimeout)
	}
	if cfg.Registry.BaseURL != paks.DefaultBaseURL || cfg.Registry.Timeout != 0 || cfg.Registry.Retries != 2 {
		t.Errorf("Registry = %+v", cfg.Registry)
	}
	if cfg.Cache.Backend != CacheNone {
		t.Errorf("Cache.Backend = %q", cfg.Cache.Backend)
	}
	if cfg.Fonts.Family != fonts.DefaultFamily || cfg.Fonts.Subproject != "apps/web" || cfg.Fonts.EmbeddedFallback {
		t.Errorf("Fonts = %+v", cfg.Fonts)
	}
	if cfg.Fonts.FetchTimeout != 0 {
		t.Errorf("Fonts.FetchTimeout = %v, want no timeout", cfg.Fonts.FetchTimeout)
	}
	if cfg.Render.Width != 1200 || cfg.Render.Backend != "native" {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != LogText {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.File != "" {
		t.Errorf("File = %q, want none", cfg.File)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "paks-og.yaml", `
server:
  addr: ":9090"
registry:
  timeout: 3s
cache:
  backend: file
  dir: /tmp/paks-og
  key_prefix: "staging:"
fonts:
  embedded_fallback: true
log:
  format: json
`)

	cfg, err := load("", dir, nil)
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Registry.Timeout != 3*time.Second {
		t.Errorf("Registry.Timeout = %v", cfg.Registry.Timeout)
	}
	if cfg.Cache.Backend != CacheFile || cfg.Cache.Dir != "/tmp/paks-og" || cfg.Cache.KeyPrefix != "staging:" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if !cfg.Fonts.EmbeddedFallback {
		t.Error("Fonts.EmbeddedFallback = false")
	}
	if cfg.Log.Format != LogJSON {
		t.Errorf("Log.Format = %q", cfg.Log.Format)
	}
	if cfg.Render.Width != 1200 {
		t.Errorf("unset values should keep defaults, Render.Width = %d", cfg.Render.Width)
	}
	if filepath.Base(cfg.File) != "paks-og.yaml" {
		t.Errorf("File = %q", cfg.File)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.toml", `
[render]
width = 600
backend = "rsvg"

[fonts]
dir = "/srv/fonts"
fetch_timeout = "2s"
`)

	cfg, err := load(path, t.TempDir(), nil)
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if cfg.Render.Width != 600 || cfg.Render.Backend != "rsvg" {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Fonts.Dir != "/srv/fonts" || cfg.Fonts.FetchTimeout != 2*time.Second {
		t.Errorf("Fonts = %+v", cfg.Fonts)
	}
	if cfg.File != path {
		t.Errorf("File = %q, want %q", cfg.File, path)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "paks-og.yml", `
server:
  addr: ":7000"
render:
  width: 800
log:
  level: warn
`)
	t.Setenv("PAKSOG_SERVER__ADDR", ":7100")
	t.Setenv("PAKSOG_RENDER__WIDTH", "900")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("addr", "", "")
	flags.Int("width", 0, "")
	flags.String("log-level", "", "")
	flags.Bool("verbose", false, "")
	if err := flags.Parse([]string{"--addr", ":7200", "--verbose"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := load("", dir, flags)
	if err != nil {
		t.Fatalf("load() error: %v", err)
	}
	if cfg.Server.Addr != ":7200" {
		t.Errorf("flag should win: Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Render.Width != 900 {
		t.Errorf("env should beat file and unset flags: Render.Width = %d", cfg.Render.Width)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("file should beat defaults: Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad extension", "paks-og.json", `{}`},
		{"bad yaml", "bad.yaml", "server: [unclosed"},
		{"bad toml", "bad.toml", "[render\nwidth = 1"},
		{"unknown cache backend", "c.yaml", "cache:\n  backend: memcached\n"},
		{"redis without url", "c.yaml", "cache:\n  backend: redis\n"},
		{"width too large", "c.yaml", "render:\n  width: 100000\n"},
		{"unknown raster backend", "c.yaml", "render:\n  backend: cairo\n"},
		{"bad registry url", "c.yaml", "registry:\n  base_url: ftp://example.com\n"},
		{"bad log format", "c.yaml", "log:\n  format: xml\n"},
		{"bad log level", "c.yaml", "log:\n  level: loud\n"},
		{"negative timeout", "c.yaml", "registry:\n  timeout: -1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, tt.file, tt.content)
			_, err := load(path, dir, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !perrors.Is(err, perrors.ErrCodeInvalidConfig) {
				t.Errorf("error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := load(filepath.Join(t.TempDir(), "nope.yaml"), t.TempDir(), nil); err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"PAKSOG_SERVER__ADDR", "server.addr"},
		{"PAKSOG_CACHE__REDIS_URL", "cache.redis_url"},
		{"PAKSOG_FONTS__EMBEDDED_FALLBACK", "fonts.embedded_fallback"},
	}
	for _, tt := range tests {
		if got := envKey(tt.in); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTOMLParserRoundTrip(t *testing.T) {
	p := TOML()
	data, err := p.Marshal(map[string]any{"render": map[string]any{"width": int64(640)}})
	if err != nil {
		t.Fatal(err)
	}
	m, err := p.Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	render, ok := m["render"].(map[string]any)
	if !ok || render["width"] != int64(640) {
		t.Errorf("round trip = %v", m)
	}
}
