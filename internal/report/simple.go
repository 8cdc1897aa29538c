package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/nao1215/sitecrawl/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display: one page URL per line,
// followed by a short summary.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables the skip-count breakdown in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with skip statistics.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the crawl result in human-readable format.
func (w *SimpleWriter) Write(result *model.CrawlResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writePages(&sb, result)
	w.writeSummary(&sb, result)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with crawl information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *model.CrawlResult) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        SITECRAWL REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Seed:       %s\n", result.Seed))
	sb.WriteString(fmt.Sprintf("Host:       %s\n", result.Host))
	sb.WriteString(fmt.Sprintf("Crawl Date: %s\n", result.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Duration:   %s\n", result.Duration.Round(time.Millisecond)))
	if result.PageLimit > 0 {
		sb.WriteString(fmt.Sprintf("Page Limit: %d\n", result.PageLimit))
	} else {
		sb.WriteString("Page Limit: unlimited\n")
	}
	sb.WriteString("\n")
}

// writePages writes the discovered pages in discovery order.
func (w *SimpleWriter) writePages(sb *strings.Builder, result *model.CrawlResult) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("PAGES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if result.PageCount() == 0 {
		sb.WriteString("  No pages discovered\n")
	} else {
		for i, page := range result.Pages {
			sb.WriteString(fmt.Sprintf("  %3d. %s\n", i+1, page))
		}
	}
	sb.WriteString("\n")
}

// writeSummary writes the page count and, in verbose mode, the skip
// breakdown sorted by reason label for stable output.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, result *model.CrawlResult) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("TOTAL: %d pages\n", result.PageCount()))

	if w.verbose && len(result.Skips) > 0 {
		sb.WriteString("\nSkipped candidates:\n")

		reasons := make([]string, 0, len(result.Skips))
		for reason := range result.Skips {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)

		for _, reason := range reasons {
			sb.WriteString(fmt.Sprintf("  %-22s %d\n", reason, result.Skips[reason]))
		}
	}

	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
