package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout bounds each HTTP request. The crawler itself adds no
	// cancellation, so the client timeout is the only thing standing
	// between a hanging server and a hanging crawl.
	DefaultTimeout = 30 * time.Second

	// DefaultPageLimit caps the number of pages recorded per crawl.
	// 0 would mean unlimited; the CLI defaults to a cap so that pointing
	// sitecrawl at a large site does not run away. Override with
	// --limit 0 for an unbounded crawl.
	DefaultPageLimit = 100

	// DefaultSitemapLimit bounds sitemap extraction. 0 means all entries.
	DefaultSitemapLimit = 0

	// DefaultBatchSize is the number of seeds crawled concurrently when
	// several are given. Each crawl is still strictly sequential inside.
	DefaultBatchSize = 4

	// DefaultUserAgent identifies sitecrawl in HTTP requests. A descriptive
	// User-Agent lets site operators identify crawler traffic in their logs.
	DefaultUserAgent = "sitecrawl/1.0 (+https://github.com/nao1215/sitecrawl)"

	// DefaultMaxBodySize limits the response body size to read.
	// 5MB is generous for HTML pages while preventing memory exhaustion.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "sitecrawl"
)

// Config holds all configuration options for sitecrawl.
// It is populated from CLI flags and passed through the application via
// dependency injection rather than global state.
type Config struct {
	// Seeds is the list of seed URLs to crawl. Each must be an absolute
	// http(s) URL; each seed produces one independent crawl.
	Seeds []string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// PageLimit caps the number of pages recorded per crawl.
	// 0 means unlimited.
	PageLimit int

	// IncludePrefixes is the allow-list of URL prefixes. When non-empty,
	// only candidates matching at least one prefix are crawled.
	IncludePrefixes []string

	// ExcludePrefixes is the deny-list of URL prefixes.
	ExcludePrefixes []string

	// SitemapLimit bounds the number of URLs read from a sitemap.
	// 0 means all entries.
	SitemapLimit int

	// BatchSize is the number of concurrent crawls when multiple seeds are
	// given. A single crawl never fetches concurrently.
	BatchSize int

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// 0 means use the default.
	MaxBodySize int64

	// Verbose enables detailed log output using slog.LevelDebug. Skip
	// diagnostics are only visible with this enabled.
	Verbose bool

	// JSONReport enables JSON report output instead of the plain listing.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written there instead of stdout.
	ReportFile string

	// ConfigFilePath is the path to the configuration file. If empty, the
	// tool searches for .sitecrawl in the current directory and then in
	// the user's home directory.
	ConfigFilePath string

	// SiteConfigs holds per-host overrides loaded from the config file.
	SiteConfigs *File

	// DBDir is the directory for the SQLite database. When set, crawl
	// results are saved for later inspection via the history command.
	DBDir string

	// SaveToDB indicates whether to persist crawl results.
	// Automatically set when DBDir is configured.
	SaveToDB bool
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (timeout, limits, user
// agent). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:      DefaultTimeout,
		PageLimit:    DefaultPageLimit,
		SitemapLimit: DefaultSitemapLimit,
		BatchSize:    DefaultBatchSize,
		UserAgent:    DefaultUserAgent,
		MaxBodySize:  DefaultMaxBodySize,
	}
}

// XDGDataDir returns the XDG data directory for sitecrawl.
// On Linux: ~/.local/share/sitecrawl
// On macOS: ~/Library/Application Support/sitecrawl
// On Windows: %LOCALAPPDATA%\sitecrawl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for sitecrawl.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first sentinel error describing what is invalid; fixing
// one error often makes the others irrelevant.
func (c *Config) Validate() error {
	if len(c.Seeds) == 0 {
		return ErrNoSeed
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.PageLimit < 0 {
		return ErrInvalidPageLimit
	}

	if c.SitemapLimit < 0 {
		return ErrInvalidSitemapLimit
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// ForSeed returns the effective crawl settings for one seed, applying any
// per-host override from the config file on top of the global values.
func (c *Config) ForSeed(host string) (pageLimit int, include, exclude []string) {
	pageLimit = c.PageLimit
	include = c.IncludePrefixes
	exclude = c.ExcludePrefixes

	if c.SiteConfigs == nil {
		return pageLimit, include, exclude
	}

	site := c.SiteConfigs.SiteConfig(host)
	if site.PageLimit != nil {
		pageLimit = *site.PageLimit
	}
	if len(site.IncludePrefixes) > 0 {
		include = site.IncludePrefixes
	}
	if len(site.ExcludePrefixes) > 0 {
		exclude = site.ExcludePrefixes
	}
	return pageLimit, include, exclude
}
