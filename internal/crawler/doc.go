// Package crawler provides same-origin web crawling for sitecrawl.
//
// # Architecture
//
// The package is designed around the Spider type, which coordinates the
// crawl. A crawl is a strict depth-first pre-order traversal of the link
// graph reachable from a seed URL, scoped to the seed's hostname and
// recorded in an insertion-ordered set of normalized page keys.
//
// Design decision: We implement our own crawler rather than using a
// third-party framework because:
//  1. The visit order and the record-before-fetch rule are part of the
//     observable contract and must not be delegated to a scheduler
//  2. One crawl has exactly one in-flight fetch, which frameworks built
//     around worker pools do not guarantee
//  3. Reduces external dependencies for the core traversal
//
// # Components
//
//   - Spider: the crawler; sequential recursion, page limit, prefix filters
//   - Normalize: hostname+path dedup key derivation
//   - PrefixFilter: allow/deny URL-prefix scoping, canonicalized once
//   - LinkExtractor: <a href> extraction over golang.org/x/net/html
//   - ExtractSitemapURLs / FetchSitemap: bounded sitemap <loc> extraction
//
// # Failure policy
//
// Only a malformed seed URL surfaces as an error. Every other failure
// (network, bad status, non-HTML response, unparseable document, bad link)
// abandons its branch and is reported through the Diagnostic sink, which
// by default logs at debug level and is otherwise silent.
//
// # Usage
//
//	spider := crawler.New(httpClient,
//	    crawler.WithPageLimit(100),
//	    crawler.WithIncludePrefixes([]string{"example.com/blog"}),
//	)
//	pages, err := spider.Crawl(ctx, "https://example.com")
package crawler
