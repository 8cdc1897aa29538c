package crawler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/nao1215/sitecrawl/internal/model"
)

// largeFileExtensions lists archive suffixes that are never fetched.
// These indicate downloadable artifacts rather than crawlable pages, and
// fetching them would hang the crawl on large bodies.
var largeFileExtensions = map[string]struct{}{
	"zip": {},
	"tar": {},
	"rar": {},
	"jar": {},
	"arj": {},
	"gz":  {},
}

// Diagnostic describes one candidate URL that dropped out of a crawl.
// Diagnostics replace ad-hoc debug printing: the Spider reports every skip
// through its sink, and the caller decides whether to count, log, or
// ignore them.
type Diagnostic struct {
	// URL is the candidate as it was proposed, before normalization.
	URL string

	// Reason classifies the skip.
	Reason model.SkipReason

	// Err carries the underlying error for fetch and parse failures.
	// Nil for policy skips (cross-host, filtered, duplicate, ...).
	Err error
}

// DiagnosticFunc receives skip diagnostics during a crawl.
type DiagnosticFunc func(Diagnostic)

// Spider crawls the pages of a single site reachable from a seed URL.
// It records normalized page keys in discovery order, never follows
// cross-host links, and absorbs every failure except a malformed seed.
//
// Design decision: We require an external *http.Client rather than
// constructing one because:
//  1. Timeout policy belongs to the caller (the crawler adds none)
//  2. Tests can install httptest transports
//  3. Consistent with how the rest of the codebase handles HTTP
type Spider struct {
	// client performs all GET requests.
	client *http.Client

	// pageLimit caps the page set size. 0 means unlimited.
	pageLimit int

	// includePrefixes and excludePrefixes are raw prefix lists collected
	// from options; they are compiled into filter once in New.
	includePrefixes []string
	excludePrefixes []string

	// filter is the compiled prefix filter applied at every depth.
	filter *PrefixFilter

	// userAgent is the User-Agent header to send.
	userAgent string

	// maxBodySize limits the size of response bodies to read.
	maxBodySize int64

	// logger receives crawl progress and, by default, diagnostics.
	logger *slog.Logger

	// diagnostics receives one Diagnostic per skipped candidate.
	diagnostics DiagnosticFunc
}

// Option configures a Spider.
type Option func(*Spider)

// WithPageLimit caps the number of pages a crawl may record.
// 0 (the default) means unlimited.
func WithPageLimit(limit int) Option {
	return func(s *Spider) {
		if limit >= 0 {
			s.pageLimit = limit
		}
	}
}

// WithIncludePrefixes sets the allow-list of URL prefixes. When non-empty,
// only candidates whose normalized form starts with one of the prefixes
// are crawled. Prefixes may be given with or without a scheme.
func WithIncludePrefixes(prefixes []string) Option {
	return func(s *Spider) {
		s.includePrefixes = prefixes
	}
}

// WithExcludePrefixes sets the deny-list of URL prefixes. Candidates whose
// normalized form starts with any of the prefixes are never crawled.
func WithExcludePrefixes(prefixes []string) Option {
	return func(s *Spider) {
		s.excludePrefixes = prefixes
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Spider) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
func WithMaxBodySize(size int64) Option {
	return func(s *Spider) {
		if size > 0 {
			s.maxBodySize = size
		}
	}
}

// WithLogger sets a custom logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Spider) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDiagnostics installs a sink for skip diagnostics. When not set,
// diagnostics are logged at debug level, which keeps them invisible unless
// verbose logging is on.
func WithDiagnostics(fn DiagnosticFunc) Option {
	return func(s *Spider) {
		if fn != nil {
			s.diagnostics = fn
		}
	}
}

// New creates a Spider using the given HTTP client.
// A nil client falls back to http.DefaultClient.
func New(client *http.Client, opts ...Option) *Spider {
	s := &Spider{
		client:      client,
		pageLimit:   0,
		userAgent:   "sitecrawl/1.0 (+https://github.com/nao1215/sitecrawl)",
		maxBodySize: 5 * 1024 * 1024, // 5MB
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		s.client = http.DefaultClient
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.diagnostics == nil {
		s.diagnostics = s.logDiagnostic
	}
	s.filter = NewPrefixFilter(s.includePrefixes, s.excludePrefixes)

	return s
}

// Crawl discovers the pages of the site reachable from seedURL and returns
// their normalized, scheme-qualified URLs in discovery order.
//
// The traversal is strict depth-first pre-order over the links of each
// fetched page, with a single accumulator shared by the whole crawl: later
// siblings see the pages recorded by earlier siblings. No two fetches of
// one crawl run concurrently, which is what makes the result order
// deterministic for deterministic content.
//
// The only error Crawl returns is ErrMalformedSeed. Fetch failures, bad
// statuses, non-HTML responses, and unparseable documents abandon their
// branch (the page stays recorded) and the crawl continues elsewhere.
func (s *Spider) Crawl(ctx context.Context, seedURL string) ([]string, error) {
	seedURL = strings.TrimSuffix(seedURL, "/")

	seed, err := url.Parse(seedURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedSeed, seedURL, err)
	}
	if (seed.Scheme != "http" && seed.Scheme != "https") || seed.Hostname() == "" {
		return nil, fmt.Errorf("%w: %q", ErrMalformedSeed, seedURL)
	}

	// The site base keeps the port so that resolved links stay fetchable;
	// the same-host rule compares hostnames only.
	base := seed.Scheme + "://" + seed.Host
	extractor, err := NewLinkExtractor(base, s.logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedSeed, seedURL, err)
	}

	s.logger.Info("crawl started", "seed", seedURL, "limit", s.pageLimit)

	pages := newPageSet()
	s.visit(ctx, pages, seed, extractor, seedURL)

	s.logger.Info("crawl finished", "seed", seedURL, "pages", pages.Len())

	return pages.Slice(), nil
}

// visit processes one candidate URL and recurses into the links of its
// document. The checks run in a fixed order; the first failing check ends
// the branch. Recording happens BEFORE the fetch so that a URL counts as
// visited even when its fetch fails, which prevents retry loops on broken
// links.
func (s *Spider) visit(ctx context.Context, pages *pageSet, seed *url.URL, extractor *LinkExtractor, rawURL string) {
	if ctx.Err() != nil {
		return
	}

	if s.pageLimit > 0 && pages.Len() >= s.pageLimit {
		s.diagnostics(Diagnostic{URL: rawURL, Reason: model.SkipLimitReached})
		return
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		s.diagnostics(Diagnostic{URL: rawURL, Reason: model.SkipMalformedURL, Err: err})
		return
	}

	if !strings.EqualFold(u.Hostname(), seed.Hostname()) {
		s.diagnostics(Diagnostic{URL: rawURL, Reason: model.SkipCrossHost})
		return
	}

	key, err := Normalize(rawURL, true)
	if err != nil {
		s.diagnostics(Diagnostic{URL: rawURL, Reason: model.SkipMalformedURL, Err: err})
		return
	}
	normalized := u.Scheme + "://" + key

	if hasLargeFileExtension(key) {
		s.diagnostics(Diagnostic{URL: rawURL, Reason: model.SkipLargeFile})
		return
	}

	if reason := s.filter.Evaluate(normalized); reason != model.SkipNone {
		s.diagnostics(Diagnostic{URL: rawURL, Reason: reason})
		return
	}

	if !pages.Add(normalized) {
		s.diagnostics(Diagnostic{URL: rawURL, Reason: model.SkipDuplicate})
		return
	}

	// Fetch the original URL, not the normalized key: scheme and query
	// matter for the network request even though they are not part of the
	// dedup identity.
	body, reason, err := s.fetch(ctx, rawURL)
	if reason != model.SkipNone {
		s.diagnostics(Diagnostic{URL: rawURL, Reason: reason, Err: err})
		return
	}

	links, err := extractor.Extract(bytes.NewReader(body))
	if err != nil {
		s.diagnostics(Diagnostic{URL: rawURL, Reason: model.SkipParseFailed, Err: err})
		return
	}

	for _, link := range links {
		s.visit(ctx, pages, seed, extractor, link)
	}
}

// fetch issues a single GET and returns the HTML body, or the reason the
// response cannot spawn children. The returned reason is model.SkipNone
// only when the body is usable HTML.
func (s *Spider) fetch(ctx context.Context, rawURL string) ([]byte, model.SkipReason, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, model.SkipFetchFailed, err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, model.SkipFetchFailed, err
	}
	defer resp.Body.Close()

	if resp.StatusCode > 399 {
		return nil, model.SkipBadStatus, nil
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		return nil, model.SkipMissingContentType, nil
	}
	if !strings.Contains(contentType, "text/html") {
		return nil, model.SkipNonHTML, nil
	}

	reader := decodeBody(io.LimitReader(resp.Body, s.maxBodySize), contentType)
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, model.SkipFetchFailed, err
	}

	return body, model.SkipNone, nil
}

// decodeBody wraps r with a charset decoder when the Content-Type names a
// non-UTF-8 encoding. Unknown or missing charsets fall through undecoded;
// the HTML parser copes with most of what the web serves.
func decodeBody(r io.Reader, contentType string) io.Reader {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return r
	}
	name := strings.ToLower(strings.TrimSpace(params["charset"]))
	if name == "" || name == "utf-8" || name == "utf8" {
		return r
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return r
	}
	return transform.NewReader(r, enc.NewDecoder())
}

// hasLargeFileExtension reports whether the key's last path segment carries
// one of the archive extensions.
func hasLargeFileExtension(key string) bool {
	segment := key
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}
	dot := strings.LastIndex(segment, ".")
	if dot < 0 || dot == len(segment)-1 {
		return false
	}
	_, ok := largeFileExtensions[strings.ToLower(segment[dot+1:])]
	return ok
}

// logDiagnostic is the default diagnostics sink. Skips are only visible
// with verbose logging enabled.
func (s *Spider) logDiagnostic(d Diagnostic) {
	if d.Err != nil {
		s.logger.Debug("candidate skipped", "url", d.URL, "reason", d.Reason.String(), "error", d.Err)
		return
	}
	s.logger.Debug("candidate skipped", "url", d.URL, "reason", d.Reason.String())
}
