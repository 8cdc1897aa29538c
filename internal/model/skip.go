package model

// SkipReason explains why a candidate URL was not added to the page set
// or why a recorded page spawned no children.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and map keys. The String() method provides
// human-readable output for diagnostics and reports.
type SkipReason int

const (
	// SkipNone indicates the candidate was accepted and fetched as HTML.
	SkipNone SkipReason = iota

	// SkipLimitReached indicates the page limit was already met when the
	// candidate was proposed.
	SkipLimitReached

	// SkipCrossHost indicates the candidate's hostname differs from the
	// seed's hostname. Cross-host links are never followed.
	SkipCrossHost

	// SkipMalformedURL indicates the candidate could not be parsed as a URL.
	// Only the seed URL surfaces this as an error; mid-crawl candidates are
	// dropped silently.
	SkipMalformedURL

	// SkipLargeFile indicates the candidate's path ends with an archive
	// extension (zip, tar, rar, jar, arj, gz). These are excluded to avoid
	// fetching large bodies misidentified as crawlable pages.
	SkipLargeFile

	// SkipNotIncluded indicates an include-prefix list is configured and the
	// candidate matches none of its prefixes.
	SkipNotIncluded

	// SkipExcluded indicates the candidate matches an exclude prefix.
	SkipExcluded

	// SkipDuplicate indicates the candidate's normalized key was already in
	// the page set.
	SkipDuplicate

	// SkipBadStatus indicates the fetch returned a status code above 399.
	// The page stays recorded; the branch spawns no children.
	SkipBadStatus

	// SkipMissingContentType indicates the response carried no Content-Type
	// header.
	SkipMissingContentType

	// SkipNonHTML indicates the response Content-Type does not contain
	// text/html.
	SkipNonHTML

	// SkipFetchFailed indicates a network-level failure (DNS, connection,
	// timeout, truncated body). The page stays recorded.
	SkipFetchFailed

	// SkipUnresolvableLink indicates a link target inside a document could
	// not be resolved to an absolute URL and was dropped during extraction.
	SkipUnresolvableLink

	// SkipNonXML indicates a sitemap response Content-Type was neither
	// application/xml nor text/xml.
	SkipNonXML

	// SkipParseFailed indicates a fetched document could not be parsed as a
	// whole. The branch contributes nothing; the crawl continues elsewhere.
	SkipParseFailed
)

// String returns a short machine-friendly label for the skip reason.
// Labels are stable; reports and the database store them as text.
func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "fetched"
	case SkipLimitReached:
		return "limit_reached"
	case SkipCrossHost:
		return "cross_host"
	case SkipMalformedURL:
		return "malformed_url"
	case SkipLargeFile:
		return "large_file"
	case SkipNotIncluded:
		return "not_included"
	case SkipExcluded:
		return "excluded"
	case SkipDuplicate:
		return "duplicate"
	case SkipBadStatus:
		return "bad_status"
	case SkipMissingContentType:
		return "missing_content_type"
	case SkipNonHTML:
		return "non_html"
	case SkipFetchFailed:
		return "fetch_failed"
	case SkipUnresolvableLink:
		return "unresolvable_link"
	case SkipNonXML:
		return "non_xml"
	case SkipParseFailed:
		return "parse_failed"
	default:
		return "unknown"
	}
}
