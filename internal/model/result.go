package model

import "time"

// CrawlResult holds the outcome of a single site crawl.
// Pages preserves discovery order: the crawl is strict depth-first
// pre-order, so given deterministic page content the order is stable.
type CrawlResult struct {
	// Seed is the URL the crawl started from, after trailing-slash cleanup.
	Seed string `json:"seed"`

	// Host is the hostname the crawl was scoped to. Every entry in Pages
	// belongs to this host.
	Host string `json:"host"`

	// Pages is the insertion-ordered set of normalized, scheme-qualified
	// page URLs. Entries are unique by construction.
	Pages []string `json:"pages"`

	// PageLimit is the configured page cap. Zero means unlimited.
	PageLimit int `json:"page_limit"`

	// StartedAt is when the crawl began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the wall-clock time the crawl took.
	Duration time.Duration `json:"duration"`

	// Skips counts skipped candidates by reason label (SkipReason.String()).
	// Populated when the caller installs a counting diagnostics sink.
	Skips map[string]int `json:"skips,omitempty"`
}

// NewCrawlResult creates a CrawlResult for the given seed and host with the
// crawl start time set to now.
func NewCrawlResult(seed, host string) *CrawlResult {
	return &CrawlResult{
		Seed:      seed,
		Host:      host,
		Pages:     make([]string, 0),
		StartedAt: time.Now(),
		Skips:     make(map[string]int),
	}
}

// PageCount returns the number of pages discovered.
func (r *CrawlResult) PageCount() int {
	return len(r.Pages)
}

// CountSkip increments the counter for the given skip reason.
func (r *CrawlResult) CountSkip(reason SkipReason) {
	if r.Skips == nil {
		r.Skips = make(map[string]int)
	}
	r.Skips[reason.String()]++
}
