package crawler

import (
	"context"
	"encoding/xml"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/nao1215/sitecrawl/internal/model"
)

// sitemapEntry is one <url> element of a sitemap document. Only the <loc>
// child matters here.
type sitemapEntry struct {
	Loc string `xml:"loc"`
}

// ExtractSitemapURLs reads a sitemap XML document and returns the text of
// each <url> element's <loc> child, in document order, collecting at most
// limit entries (0 = unlimited). Scanning stops as soon as the limit is
// reached, so oversized sitemaps are never decoded past the bound.
//
// <url> elements without a non-empty <loc> are skipped. Only a
// whole-document XML error propagates.
func ExtractSitemapURLs(r io.Reader, limit int) ([]string, error) {
	decoder := xml.NewDecoder(r)
	urls := make([]string, 0)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "url" {
			continue
		}

		var entry sitemapEntry
		if err := decoder.DecodeElement(&entry, &start); err != nil {
			return nil, err
		}

		loc := strings.TrimSpace(entry.Loc)
		if loc == "" {
			continue
		}

		urls = append(urls, loc)
		if limit > 0 && len(urls) >= limit {
			break
		}
	}

	return urls, nil
}

// FetchSitemap issues a single GET for a sitemap document and returns the
// contained <loc> URLs, at most limit (0 = unlimited).
//
// Failures never propagate: a network error, a status above 399, a missing
// content-type, a content-type other than application/xml or text/xml, or
// an unparseable document all yield an empty list, visible only through
// the diagnostics sink.
func (s *Spider) FetchSitemap(ctx context.Context, sitemapURL string, limit int) []string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		s.diagnostics(Diagnostic{URL: sitemapURL, Reason: model.SkipMalformedURL, Err: err})
		return []string{}
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/xml,text/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		s.diagnostics(Diagnostic{URL: sitemapURL, Reason: model.SkipFetchFailed, Err: err})
		return []string{}
	}
	defer resp.Body.Close()

	if resp.StatusCode > 399 {
		s.diagnostics(Diagnostic{URL: sitemapURL, Reason: model.SkipBadStatus})
		return []string{}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		s.diagnostics(Diagnostic{URL: sitemapURL, Reason: model.SkipMissingContentType})
		return []string{}
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || (mediaType != "application/xml" && mediaType != "text/xml") {
		s.diagnostics(Diagnostic{URL: sitemapURL, Reason: model.SkipNonXML})
		return []string{}
	}

	urls, err := ExtractSitemapURLs(io.LimitReader(resp.Body, s.maxBodySize), limit)
	if err != nil {
		s.diagnostics(Diagnostic{URL: sitemapURL, Reason: model.SkipParseFailed, Err: err})
		return []string{}
	}

	return urls
}
