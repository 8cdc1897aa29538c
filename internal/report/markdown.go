package report

import (
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/sitecrawl/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the crawl result in Markdown format.
func (w *MarkdownWriter) Write(result *model.CrawlResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writePages(md, result)
	w.writeSkips(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with crawl information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.CrawlResult) {
	md.H1("Sitecrawl Report")
	md.PlainText("")

	pageLimit := "unlimited"
	if result.PageLimit > 0 {
		pageLimit = strconv.Itoa(result.PageLimit)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seed", "`" + result.Seed + "`"},
			{"Host", "`" + result.Host + "`"},
			{"Crawl Date", result.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", result.Duration.Round(time.Millisecond).String()},
			{"Page Limit", pageLimit},
			{"Pages Found", strconv.Itoa(result.PageCount())},
		},
	})
	md.PlainText("")
}

// writePages writes the discovered pages in discovery order.
func (w *MarkdownWriter) writePages(md *markdown.Markdown, result *model.CrawlResult) {
	md.H2("Pages")
	md.PlainText("")

	if result.PageCount() == 0 {
		md.PlainText("No pages discovered.")
		md.PlainText("")
		return
	}

	md.OrderedList(result.Pages...)
	md.PlainText("")
}

// writeSkips writes the skip statistics section with a pie chart
// visualizing the reason distribution.
func (w *MarkdownWriter) writeSkips(md *markdown.Markdown, result *model.CrawlResult) {
	if len(result.Skips) == 0 {
		return
	}

	md.H2("Skipped Candidates")
	md.PlainText("")

	reasons := make([]string, 0, len(result.Skips))
	for reason := range result.Skips {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)

	rows := make([][]string, 0, len(reasons))
	total := 0
	for _, reason := range reasons {
		rows = append(rows, []string{reason, strconv.Itoa(result.Skips[reason])})
		total += result.Skips[reason]
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(total) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Reason", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writePieChart(md, reasons, result.Skips)
}

// writePieChart writes a mermaid pie chart for the skip reason distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, reasons []string, skips map[string]int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Skip Reason Distribution"),
		piechart.WithShowData(true),
	)

	for _, reason := range reasons {
		if skips[reason] > 0 {
			chart.LabelAndIntValue(reason, uint64(skips[reason]))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [sitecrawl](https://github.com/nao1215/sitecrawl)*")
}
