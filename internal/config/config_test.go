package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	c := NewConfig()

	if c.Timeout != DefaultTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultTimeout, c.Timeout)
	}
	if c.PageLimit != DefaultPageLimit {
		t.Errorf("expected page limit %d, got %d", DefaultPageLimit, c.PageLimit)
	}
	if c.BatchSize != DefaultBatchSize {
		t.Errorf("expected batch size %d, got %d", DefaultBatchSize, c.BatchSize)
	}
	if c.UserAgent != DefaultUserAgent {
		t.Errorf("expected user agent %q, got %q", DefaultUserAgent, c.UserAgent)
	}
	if c.MaxBodySize != DefaultMaxBodySize {
		t.Errorf("expected max body size %d, got %d", DefaultMaxBodySize, c.MaxBodySize)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		c := NewConfig()
		c.Seeds = []string{"https://example.com"}
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config passes",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "no seeds",
			mutate:  func(c *Config) { c.Seeds = nil },
			wantErr: ErrNoSeed,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Timeout = -time.Second },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative page limit",
			mutate:  func(c *Config) { c.PageLimit = -1 },
			wantErr: ErrInvalidPageLimit,
		},
		{
			name:    "zero page limit is unlimited and valid",
			mutate:  func(c *Config) { c.PageLimit = 0 },
			wantErr: nil,
		},
		{
			name:    "negative sitemap limit",
			mutate:  func(c *Config) { c.SitemapLimit = -1 },
			wantErr: ErrInvalidSitemapLimit,
		},
		{
			name:    "zero batch size",
			mutate:  func(c *Config) { c.BatchSize = 0 },
			wantErr: ErrInvalidBatchSize,
		},
		{
			name:    "negative max body size",
			mutate:  func(c *Config) { c.MaxBodySize = -1 },
			wantErr: ErrInvalidMaxBodySize,
		},
		{
			name:    "json and markdown together",
			mutate:  func(c *Config) { c.JSONReport = true; c.MarkdownReport = true },
			wantErr: ErrConflictingReportFormats,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := valid()
			tt.mutate(c)

			err := c.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigForSeed(t *testing.T) {
	t.Parallel()

	t.Run("no config file falls back to globals", func(t *testing.T) {
		t.Parallel()

		c := NewConfig()
		c.PageLimit = 50
		c.IncludePrefixes = []string{"example.com/docs"}

		limit, include, exclude := c.ForSeed("example.com")
		if limit != 50 {
			t.Errorf("expected limit 50, got %d", limit)
		}
		if len(include) != 1 || include[0] != "example.com/docs" {
			t.Errorf("unexpected include prefixes: %v", include)
		}
		if len(exclude) != 0 {
			t.Errorf("unexpected exclude prefixes: %v", exclude)
		}
	})

	t.Run("per-host override wins over globals", func(t *testing.T) {
		t.Parallel()

		tenPages := 10
		c := NewConfig()
		c.PageLimit = 50
		c.ExcludePrefixes = []string{"example.com/private"}
		c.SiteConfigs = &File{
			Sites: map[string]SiteConfig{
				"example.com": {
					PageLimit:       &tenPages,
					IncludePrefixes: []string{"example.com/blog"},
				},
			},
		}

		limit, include, exclude := c.ForSeed("example.com")
		if limit != 10 {
			t.Errorf("expected overridden limit 10, got %d", limit)
		}
		if len(include) != 1 || include[0] != "example.com/blog" {
			t.Errorf("unexpected include prefixes: %v", include)
		}
		// Exclude was not overridden, so the global value stays.
		if len(exclude) != 1 || exclude[0] != "example.com/private" {
			t.Errorf("unexpected exclude prefixes: %v", exclude)
		}
	})

	t.Run("unknown host uses file defaults", func(t *testing.T) {
		t.Parallel()

		fivePages := 5
		c := NewConfig()
		c.PageLimit = 50
		c.SiteConfigs = &File{
			Defaults: SiteConfig{PageLimit: &fivePages},
			Sites:    map[string]SiteConfig{},
		}

		limit, _, _ := c.ForSeed("other.com")
		if limit != 5 {
			t.Errorf("expected file default limit 5, got %d", limit)
		}
	})
}

func TestFileSiteConfig(t *testing.T) {
	t.Parallel()

	twenty := 20
	thirty := 30

	cf := &File{
		Defaults: SiteConfig{
			PageLimit:       &twenty,
			ExcludePrefixes: []string{"default/excluded"},
		},
		Sites: map[string]SiteConfig{
			"a.com": {
				PageLimit:       &thirty,
				IncludePrefixes: []string{"a.com/docs"},
			},
		},
	}

	t.Run("host entry overrides defaults field by field", func(t *testing.T) {
		t.Parallel()

		got := cf.SiteConfig("a.com")
		if got.PageLimit == nil || *got.PageLimit != 30 {
			t.Errorf("expected page limit 30, got %v", got.PageLimit)
		}
		if len(got.IncludePrefixes) != 1 || got.IncludePrefixes[0] != "a.com/docs" {
			t.Errorf("unexpected include prefixes: %v", got.IncludePrefixes)
		}
		if len(got.ExcludePrefixes) != 1 || got.ExcludePrefixes[0] != "default/excluded" {
			t.Errorf("expected default exclude prefixes, got %v", got.ExcludePrefixes)
		}
	})

	t.Run("unknown host returns defaults", func(t *testing.T) {
		t.Parallel()

		got := cf.SiteConfig("unknown.com")
		if got.PageLimit == nil || *got.PageLimit != 20 {
			t.Errorf("expected default page limit 20, got %v", got.PageLimit)
		}
		if len(got.IncludePrefixes) != 0 {
			t.Errorf("expected no include prefixes, got %v", got.IncludePrefixes)
		}
	})
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads a valid config file", func(t *testing.T) {
		t.Parallel()

		content := `defaults:
  pageLimit: 25
sites:
  example.com:
    pageLimit: 10
    includePrefixes:
      - example.com/blog
    excludePrefixes:
      - example.com/admin
`
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if cf.Defaults.PageLimit == nil || *cf.Defaults.PageLimit != 25 {
			t.Errorf("expected defaults page limit 25, got %v", cf.Defaults.PageLimit)
		}

		site, ok := cf.Sites["example.com"]
		if !ok {
			t.Fatal("expected site entry for example.com")
		}
		if site.PageLimit == nil || *site.PageLimit != 10 {
			t.Errorf("expected site page limit 10, got %v", site.PageLimit)
		}
		if len(site.IncludePrefixes) != 1 || site.IncludePrefixes[0] != "example.com/blog" {
			t.Errorf("unexpected include prefixes: %v", site.IncludePrefixes)
		}
		if len(site.ExcludePrefixes) != 1 || site.ExcludePrefixes[0] != "example.com/admin" {
			t.Errorf("unexpected exclude prefixes: %v", site.ExcludePrefixes)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid YAML returns an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("sites: [not a map"), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("empty file yields empty but usable config", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte(""), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("failed to load empty config: %v", err)
		}
		if cf.Sites == nil {
			t.Error("expected Sites map to be initialized")
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit path that exists is returned", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("sites: {}"), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit path that does not exist yields empty", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); got != "" {
			t.Errorf("expected empty path, got %q", got)
		}
	})
}

// TestFindConfigFileXDGFallback verifies the last search location.
// Serial on purpose: it rewrites HOME and XDG_CONFIG_HOME.
func TestFindConfigFileXDGFallback(t *testing.T) {
	// Restore the xdg package's view of the environment after the
	// t.Setenv cleanups have put the real values back.
	t.Cleanup(xdg.Reload)

	t.Setenv("HOME", t.TempDir())
	xdgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdgHome)
	xdg.Reload()

	dir := filepath.Join(xdgHome, AppName)
	if err := os.MkdirAll(dir, 0750); err != nil {
		t.Fatalf("failed to create XDG config dir: %v", err)
	}
	path := filepath.Join(dir, DefaultConfigFile)
	if err := os.WriteFile(path, []byte("sites: {}"), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if got := FindConfigFile(""); got != path {
		t.Errorf("expected XDG fallback %q, got %q", path, got)
	}
}
