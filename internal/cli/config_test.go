package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/photopack/pkg/pipeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
width = 1200
ordering = "area"
formats = ["text", "json"]
placeholder = "."
scale = 10
redis_url = "redis://localhost:6379/0"
cache_ttl = "72h"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	want := &Config{
		Width:       1200,
		Ordering:    "area",
		Formats:     []string{"text", "json"},
		Placeholder: ".",
		Scale:       10,
		RedisURL:    "redis://localhost:6379/0",
		CacheTTL:    "72h",
		ttl:         72 * time.Hour,
	}
	if diff := cmp.Diff(want, cfg, cmp.AllowUnexported(Config{})); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("missing default config should not fail: %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("expected empty config (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":  `colour = "red"`,
		"bad ordering": `ordering = "random"`,
		"bad format":   `formats = ["svg"]`,
		"bad ttl":      `cache_ttl = "soon"`,
		"negative":     `width = -3`,
		"invalid toml": `width = `,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := loadConfig(writeConfig(t, body)); err == nil {
				t.Errorf("loadConfig(%q) = nil error", body)
			}
		})
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("explicit missing config should fail")
	}
}

func TestConfigApply(t *testing.T) {
	cfg := &Config{Width: 900, Ordering: "widest", Formats: []string{"json"}, Scale: 3, ttl: time.Hour}

	// Flags win over config.
	opts := pipeline.Options{Width: 500, Formats: []string{"text"}}
	cfg.apply(&opts)
	if opts.Width != 500 || opts.Formats[0] != "text" {
		t.Errorf("flag values overridden: %+v", opts)
	}
	if opts.FallbackWidth != 900 {
		t.Errorf("FallbackWidth = %d, want configured 900", opts.FallbackWidth)
	}
	if opts.Ordering != "widest" || opts.Scale != 3 || opts.TTL != time.Hour {
		t.Errorf("config values not applied: %+v", opts)
	}

	if got := cfg.redisURL("redis://flag"); got != "redis://flag" {
		t.Errorf("redisURL(flag) = %q", got)
	}
	cfg.RedisURL = "redis://config"
	if got := cfg.redisURL(""); got != "redis://config" {
		t.Errorf("redisURL() = %q", got)
	}
}
