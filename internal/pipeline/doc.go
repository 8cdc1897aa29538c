// Package pipeline orchestrates crawl execution.
//
// The Runner drives one crawl end to end: it resolves per-host
// configuration overrides, builds a Spider with a diagnostics sink that
// accumulates skip statistics, runs the crawl, and optionally persists
// the result. The BatchProcessor runs multiple seeds concurrently with
// a bounded degree of parallelism while each crawl stays sequential
// internally.
package pipeline
