package crawler

import "errors"

// Crawl errors.
//
// Design decision: We use package-level sentinel errors so that callers can
// use errors.Is() for programmatic handling while wrapped messages still
// carry the offending URL. Only seed malformation ever reaches a caller;
// every other failure degrades to "this branch contributes nothing".
var (
	// ErrMalformedSeed is returned when the seed URL cannot be parsed as an
	// absolute http(s) URL. This is the only error Crawl surfaces.
	ErrMalformedSeed = errors.New("malformed seed URL: expected absolute http(s) URL")

	// ErrMalformedURL is returned by Normalize when the input cannot be
	// parsed as a URL. Mid-crawl, candidates failing normalization are
	// dropped and the crawl continues.
	ErrMalformedURL = errors.New("malformed URL")
)
