package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/photopack/pkg/pipeline"
)

// configFile is the config file name inside configDir.
const configFile = "config.toml"

// Config holds user defaults read from config.toml. Flags override it; it
// overrides the pipeline defaults.
//
//	width = 1200
//	ordering = "area"
//	formats = ["text", "json"]
//	placeholder = "."
//	scale = 10
//	redis_url = "redis://localhost:6379/0"
//	cache_ttl = "72h"
type Config struct {
	Width       int      `toml:"width"`
	Ordering    string   `toml:"ordering"`
	Formats     []string `toml:"formats"`
	Placeholder string   `toml:"placeholder"`
	Scale       int      `toml:"scale"`
	RedisURL    string   `toml:"redis_url"`
	CacheTTL    string   `toml:"cache_ttl"`

	ttl time.Duration
}

// loadConfig reads the config at path. An empty path selects the default
// location, where a missing file yields an empty config; an explicit path
// must exist.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return &Config{}, nil
		}
		path = filepath.Join(dir, configFile)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		return &Config{}, nil
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Width < 0 {
		return fmt.Errorf("width must be positive, got %d", c.Width)
	}
	if c.Ordering != "" {
		if err := pipeline.ValidateOrdering(c.Ordering); err != nil {
			return err
		}
	}
	if err := pipeline.ValidateFormats(c.Formats); err != nil {
		return err
	}
	if c.CacheTTL != "" {
		ttl, err := time.ParseDuration(c.CacheTTL)
		if err != nil {
			return fmt.Errorf("cache_ttl: %w", err)
		}
		c.ttl = ttl
	}
	return nil
}

// apply fills unset pipeline options from the config. Fields already set
// (from flags) are left alone. The configured width only applies to
// manifests that set no width of their own.
func (c *Config) apply(opts *pipeline.Options) {
	if opts.FallbackWidth == 0 {
		opts.FallbackWidth = c.Width
	}
	if opts.Ordering == "" {
		opts.Ordering = c.Ordering
	}
	if len(opts.Formats) == 0 {
		opts.Formats = c.Formats
	}
	if opts.Placeholder == "" {
		opts.Placeholder = c.Placeholder
	}
	if opts.Scale == 0 {
		opts.Scale = c.Scale
	}
	if opts.TTL == 0 {
		opts.TTL = c.ttl
	}
}

// redisURL returns the flag value if set, otherwise the configured URL.
func (c *Config) redisURL(flag string) string {
	if flag != "" {
		return flag
	}
	return c.RedisURL
}
