package crawler

import (
	"fmt"
	"net/url"
	"strings"
)

// Normalize reduces rawURL to the hostname+path key used for deduplication.
// Two URLs differing only by scheme, query string, or (when removeFragment
// is true) fragment normalize to the same key. A trailing slash is stripped
// once, so "example.com/a/" and "example.com/a" collapse together.
//
// Normalize is idempotent: re-normalizing a key wrapped back into a URL
// yields the same key.
func Normalize(rawURL string, removeFragment bool) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrMalformedURL, rawURL, err)
	}

	key := u.Hostname() + u.Path
	if u.Fragment != "" {
		key += "#" + u.Fragment
	}

	// The original string is the authority on whether a fragment exists;
	// the cut itself is applied to the derived key. Keep both halves of
	// that check as-is: the dedup keys of every existing crawl depend on it.
	if removeFragment && strings.Contains(rawURL, "#") {
		if i := strings.Index(key, "#"); i >= 0 {
			key = key[:i]
		}
	}

	// Trailing-slash canonicalization runs after the fragment cut.
	key = strings.TrimSuffix(key, "/")

	return key, nil
}
