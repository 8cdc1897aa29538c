package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nao1215/sitecrawl/internal/config"
	"github.com/nao1215/sitecrawl/internal/crawler"
	"github.com/nao1215/sitecrawl/internal/database"
	"github.com/nao1215/sitecrawl/internal/model"
)

// Runner orchestrates a single crawl from seed to stored result.
// It wires the configuration, the spider, the diagnostics sink, and the
// optional database together.
//
// Design decision: The Runner owns the HTTP client and builds a fresh
// Spider per crawl rather than reusing one. A Spider carries per-crawl
// settings (page limit, prefix filters) that may differ per seed when
// the config file has per-host overrides.
type Runner struct {
	// cfg holds the global configuration and per-host overrides.
	cfg *config.Config

	// logger is used for structured logging during the crawl.
	logger *slog.Logger

	// db receives completed results when persistence is enabled.
	// Nil means results are not saved.
	db *database.CrawlDB
}

// RunnerOption configures a Runner.
// This follows the functional options pattern for clean API design.
type RunnerOption func(*Runner)

// WithLogger sets a custom logger for the runner.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithDatabase enables persisting completed crawl results.
func WithDatabase(db *database.CrawlDB) RunnerOption {
	return func(r *Runner) {
		r.db = db
	}
}

// NewRunner creates a Runner for the given configuration.
func NewRunner(cfg *config.Config, opts ...RunnerOption) *Runner {
	r := &Runner{cfg: cfg}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Run crawls one seed and returns the result.
// Per-host overrides from the config file are applied before the crawl
// starts. Only a malformed seed produces an error; mid-crawl failures
// abandon the affected branch and are counted in the result's skip map.
func (r *Runner) Run(ctx context.Context, seed string) (*model.CrawlResult, error) {
	trimmed := strings.TrimSuffix(seed, "/")

	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", crawler.ErrMalformedSeed, seed, err)
	}
	host := strings.ToLower(u.Hostname())

	pageLimit, include, exclude := r.cfg.ForSeed(host)

	result := model.NewCrawlResult(trimmed, host)
	result.PageLimit = pageLimit

	client := &http.Client{Timeout: r.cfg.Timeout}

	spider := crawler.New(client,
		crawler.WithPageLimit(pageLimit),
		crawler.WithIncludePrefixes(include),
		crawler.WithExcludePrefixes(exclude),
		crawler.WithUserAgent(r.cfg.UserAgent),
		crawler.WithMaxBodySize(r.cfg.MaxBodySize),
		crawler.WithLogger(r.logger),
		crawler.WithDiagnostics(func(d crawler.Diagnostic) {
			result.CountSkip(d.Reason)
			r.logger.Debug("candidate skipped",
				"url", d.URL,
				"reason", d.Reason.String(),
				"error", d.Err,
			)
		}),
	)

	r.logger.Info("starting crawl",
		"seed", trimmed,
		"host", host,
		"page_limit", pageLimit,
	)

	pages, err := spider.Crawl(ctx, seed)
	result.Duration = time.Since(result.StartedAt)
	if err != nil {
		return nil, err
	}

	result.Pages = pages

	r.logger.Info("crawl complete",
		"seed", trimmed,
		"pages", result.PageCount(),
		"duration", result.Duration,
	)

	if r.db != nil {
		id, err := r.db.SaveResult(ctx, result)
		if err != nil {
			return nil, fmt.Errorf("failed to save crawl result: %w", err)
		}
		r.logger.Debug("crawl result saved", "session_id", id)
	}

	return result, nil
}
