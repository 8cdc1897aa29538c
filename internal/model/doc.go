// Package model defines the data structures shared across sitecrawl.
//
// The central type is CrawlResult, which carries the insertion-ordered set
// of discovered pages for one crawl together with timing and skip counters.
// SkipReason classifies every way a candidate URL can drop out of a crawl;
// its string labels are stable and used in reports and the database.
//
// Design decision: Types here have no behavior beyond simple accessors so
// that the crawler, report, database, and pipeline packages can share them
// without import cycles.
package model
