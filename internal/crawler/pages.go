package crawler

// pageSet is the insertion-ordered set of normalized page URLs accumulated
// by one crawl. Discovery order is part of the observable result, so the
// set keeps a slice alongside the membership map.
//
// Design decision: The set is owned by exactly one Crawl invocation and is
// threaded through the sequential depth-first recursion. There is a single
// writer at any time, so no locking is needed. A future parallel crawler
// would have to add exclusive-access discipline around Add to preserve the
// uniqueness and ordering invariants.
type pageSet struct {
	// order holds keys in discovery order.
	order []string

	// seen provides O(1) membership checks.
	seen map[string]struct{}
}

// newPageSet creates an empty pageSet.
func newPageSet() *pageSet {
	return &pageSet{
		order: make([]string, 0),
		seen:  make(map[string]struct{}),
	}
}

// Len returns the number of recorded pages.
func (s *pageSet) Len() int {
	return len(s.order)
}

// Contains reports whether key has been recorded.
func (s *pageSet) Contains(key string) bool {
	_, ok := s.seen[key]
	return ok
}

// Add records key and returns true, or returns false if key was already
// present.
func (s *pageSet) Add(key string) bool {
	if s.Contains(key) {
		return false
	}
	s.seen[key] = struct{}{}
	s.order = append(s.order, key)
	return true
}

// Slice returns a copy of the recorded keys in discovery order.
func (s *pageSet) Slice() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
