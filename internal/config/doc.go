// Package config provides configuration structures and utilities for sitecrawl.
// It defines the global crawl settings populated from CLI flags, per-host
// overrides loaded from a YAML configuration file, and report generation
// preferences.
package config
