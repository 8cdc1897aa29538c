package crawler

import (
	"strings"

	"github.com/nao1215/sitecrawl/internal/model"
)

// PrefixFilter scopes a crawl with allow/deny URL prefix lists.
//
// Prefixes are canonicalized once at construction (trimmed, lower-cased,
// scheme stripped) rather than re-lower-cased on every comparison, so both
// "a.com/blog" and "https://a.com/blog" configure the same filter.
type PrefixFilter struct {
	// include holds allow-list prefixes. When non-empty, a candidate must
	// match at least one of them.
	include []string

	// exclude holds deny-list prefixes. A candidate matching any of them
	// is rejected, even if it also matches an include prefix.
	exclude []string
}

// NewPrefixFilter builds a PrefixFilter from raw prefix lists.
// Nil or empty lists disable the corresponding check.
func NewPrefixFilter(include, exclude []string) *PrefixFilter {
	return &PrefixFilter{
		include: canonicalizePrefixes(include),
		exclude: canonicalizePrefixes(exclude),
	}
}

// canonicalizePrefixes lower-cases each prefix and strips a leading scheme.
// Empty entries are dropped.
func canonicalizePrefixes(prefixes []string) []string {
	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		p = strings.ToLower(strings.TrimSpace(p))
		p = strings.TrimPrefix(p, "https://")
		p = strings.TrimPrefix(p, "http://")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Evaluate checks the normalized, scheme-qualified URL against the filter.
// It returns model.SkipNone when the URL passes, model.SkipNotIncluded when
// an allow-list is configured and nothing matched, and model.SkipExcluded
// when a deny prefix matched.
func (f *PrefixFilter) Evaluate(normalizedURL string) model.SkipReason {
	if f == nil {
		return model.SkipNone
	}

	key := strings.ToLower(normalizedURL)
	key = strings.TrimPrefix(key, "https://")
	key = strings.TrimPrefix(key, "http://")

	if len(f.include) > 0 {
		matched := false
		for _, p := range f.include {
			if strings.HasPrefix(key, p) {
				matched = true
				break
			}
		}
		if !matched {
			return model.SkipNotIncluded
		}
	}

	for _, p := range f.exclude {
		if strings.HasPrefix(key, p) {
			return model.SkipExcluded
		}
	}

	return model.SkipNone
}

// Empty reports whether the filter has no prefixes configured.
func (f *PrefixFilter) Empty() bool {
	return f == nil || (len(f.include) == 0 && len(f.exclude) == 0)
}
