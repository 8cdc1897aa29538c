package model

import (
	"testing"
	"time"
)

// TestSkipReasonString verifies that every skip reason has a stable label.
// These labels are stored in the database and shown in reports, so changes
// must be intentional.
func TestSkipReasonString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reason SkipReason
		want   string
	}{
		{SkipNone, "fetched"},
		{SkipLimitReached, "limit_reached"},
		{SkipCrossHost, "cross_host"},
		{SkipMalformedURL, "malformed_url"},
		{SkipLargeFile, "large_file"},
		{SkipNotIncluded, "not_included"},
		{SkipExcluded, "excluded"},
		{SkipDuplicate, "duplicate"},
		{SkipBadStatus, "bad_status"},
		{SkipMissingContentType, "missing_content_type"},
		{SkipNonHTML, "non_html"},
		{SkipFetchFailed, "fetch_failed"},
		{SkipUnresolvableLink, "unresolvable_link"},
		{SkipNonXML, "non_xml"},
		{SkipParseFailed, "parse_failed"},
		{SkipReason(999), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.reason.String(); got != tt.want {
			t.Errorf("SkipReason(%d).String() = %q, want %q", int(tt.reason), got, tt.want)
		}
	}
}

// TestCrawlResult verifies the CrawlResult helpers.
func TestCrawlResult(t *testing.T) {
	t.Parallel()

	t.Run("NewCrawlResult initializes fields", func(t *testing.T) {
		t.Parallel()

		r := NewCrawlResult("https://example.com", "example.com")
		if r.Seed != "https://example.com" {
			t.Errorf("expected seed to be preserved, got %q", r.Seed)
		}
		if r.Host != "example.com" {
			t.Errorf("expected host to be preserved, got %q", r.Host)
		}
		if r.Pages == nil || len(r.Pages) != 0 {
			t.Errorf("expected empty page list, got %v", r.Pages)
		}
		if time.Since(r.StartedAt) > time.Minute {
			t.Errorf("expected StartedAt near now, got %v", r.StartedAt)
		}
	})

	t.Run("CountSkip accumulates by label", func(t *testing.T) {
		t.Parallel()

		r := NewCrawlResult("https://example.com", "example.com")
		r.CountSkip(SkipCrossHost)
		r.CountSkip(SkipCrossHost)
		r.CountSkip(SkipDuplicate)

		if r.Skips["cross_host"] != 2 {
			t.Errorf("expected 2 cross_host skips, got %d", r.Skips["cross_host"])
		}
		if r.Skips["duplicate"] != 1 {
			t.Errorf("expected 1 duplicate skip, got %d", r.Skips["duplicate"])
		}
	})

	t.Run("CountSkip tolerates nil map", func(t *testing.T) {
		t.Parallel()

		r := &CrawlResult{}
		r.CountSkip(SkipBadStatus)
		if r.Skips["bad_status"] != 1 {
			t.Errorf("expected 1 bad_status skip, got %d", r.Skips["bad_status"])
		}
	})
}
