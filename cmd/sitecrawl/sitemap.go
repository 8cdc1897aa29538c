package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/nao1215/sitecrawl/internal/config"
	"github.com/nao1215/sitecrawl/internal/crawler"
	"github.com/nao1215/sitecrawl/internal/log"
	"github.com/spf13/cobra"
)

// NewSitemapCmd creates the sitemap command.
func NewSitemapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitemap <sitemap-url>",
		Short: "Extract page URLs from an XML sitemap",
		Long: `Sitemap downloads an XML sitemap and prints the page URLs it lists,
one per line, in document order.

A sitemap lets you seed a crawl with pages that are not reachable by
following links alone. Failures (unreachable server, non-XML response,
malformed document) produce an empty list, never an error.

Examples:
  # Print every URL in a sitemap
  sitecrawl sitemap https://example.com/sitemap.xml

  # Print at most 10 URLs
  sitecrawl sitemap --limit 10 https://example.com/sitemap.xml`,
		Args: cobra.ExactArgs(1),
		RunE: runSitemapCmd,
	}

	cmd.Flags().IntP("limit", "l", config.DefaultSitemapLimit,
		"Maximum number of URLs to extract (0 = all)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for the request")

	return cmd
}

// runSitemapCmd executes the sitemap command.
func runSitemapCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit < 0 {
		return config.ErrInvalidSitemapLimit
	}

	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}
	if timeout <= 0 {
		return config.ErrInvalidTimeout
	}

	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	spider := crawler.New(&http.Client{Timeout: timeout},
		crawler.WithLogger(logger),
	)

	urls := spider.FetchSitemap(cmd.Context(), args[0], limit)
	for _, u := range urls {
		fmt.Fprintln(cmd.OutOrStdout(), u)
	}

	logger.Info("sitemap extracted", "url", args[0], "count", len(urls))
	return nil
}
