// Package log provides logging helpers for sitecrawl, built on top of the
// standard slog package.
//
// This package extends slog to provide:
//   - Truncation of oversized attribute values (URLs, HTML fragments)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// Crawl diagnostics are emitted at slog.LevelDebug. The verbose flag on
// NewLogger is the only switch that makes them visible; by default the
// crawler swallows per-link failures and skip reasons, which is the
// intended behavior for library consumers.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Debug("skipping candidate",
//	    "url", "https://example.com/archive.zip",
//	    "reason", "large_file",
//	)
//	slog.SetDefault(logger)
package log
