package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	perrors "github.com/stakpak/paks-og/pkg/errors"
)

// EnvPrefix prefixes every environment variable. A double underscore
// separates sections: PAKSOG_CACHE__REDIS_URL sets cache.redis_url.
const EnvPrefix = "PAKSOG_"

// FileNames are searched in the working directory, in order, when no config
// file is given explicitly.
var FileNames = []string{"paks-og.yaml", "paks-og.yml", "paks-og.toml"}

// flagKeys maps command-line flag names to config keys. Flags not listed
// here are not configuration.
var flagKeys = map[string]string{
	"addr":          "server.addr",
	"registry-url":  "registry.base_url",
	"cache":         "cache.backend",
	"cache-dir":     "cache.dir",
	"redis-url":     "cache.redis_url",
	"fonts-dir":     "fonts.dir",
	"embedded-font": "fonts.embedded_fallback",
	"width":         "render.width",
	"backend":       "render.backend",
	"log-level":     "log.level",
	"log-format":    "log.format",
}

// findConfigFile returns the explicit path or the first FileNames entry
// present in dir.
func findConfigFile(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range FileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// parserFor picks a koanf parser from the file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".toml":
		return TOML(), nil
	default:
		return nil, perrors.New(perrors.ErrCodeInvalidConfig, "unsupported config file type %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// Load builds the configuration. Precedence, highest first: flags that were
// explicitly set, PAKSOG_ environment variables, the config file, defaults.
// cfgFile may be empty to search the working directory; flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return load(cfgFile, cwd, flags)
}

func load(cfgFile, dir string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// 2. Config file
	path := findConfigFile(cfgFile, dir)
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "read config file %s", path)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "decode config")
	}
	cfg.File = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey turns PAKSOG_CACHE__REDIS_URL into cache.redis_url.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
