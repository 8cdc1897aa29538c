// Package main provides the entry point for the sitecrawl CLI.
//
// Sitecrawl recursively discovers the pages of a website. Starting from a
// seed URL it follows same-host links, records each page once in discovery
// order, and prints or stores the resulting page list.
//
// Usage:
//
//	sitecrawl crawl <seed-url>
//	sitecrawl sitemap <sitemap-url>
//	sitecrawl history
//
// See --help for all available options.
package main

// main is the entry point for sitecrawl.
func main() {
	Execute()
}
