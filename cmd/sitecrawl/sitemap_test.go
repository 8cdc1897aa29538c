package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewSitemapCmd(t *testing.T) {
	t.Parallel()

	cmd := NewSitemapCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "sitemap <sitemap-url>" {
			t.Errorf("expected use 'sitemap <sitemap-url>', got %q", cmd.Use)
		}
	})

	t.Run("has limit and timeout flags", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("limit") == nil {
			t.Error("expected limit flag")
		}
		if cmd.Flags().Lookup("timeout") == nil {
			t.Error("expected timeout flag")
		}
	})
}

func TestSitemapCmdEndToEnd(t *testing.T) {
	t.Parallel()

	newSitemapServer := func() *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/xml")
			fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/1</loc></url>
  <url><loc>https://example.com/2</loc></url>
  <url><loc>https://example.com/3</loc></url>
</urlset>`)
		}))
	}

	t.Run("prints every URL", func(t *testing.T) {
		t.Parallel()

		server := newSitemapServer()
		defer server.Close()

		var buf bytes.Buffer
		root := NewRootCmd()
		root.SetOut(&buf)
		root.SetArgs([]string{"sitemap", server.URL + "/sitemap.xml"})

		if err := root.Execute(); err != nil {
			t.Fatalf("failed to execute sitemap: %v", err)
		}

		lines := strings.Fields(buf.String())
		if len(lines) != 3 {
			t.Fatalf("expected 3 URLs, got %v", lines)
		}
		if lines[0] != "https://example.com/1" || lines[2] != "https://example.com/3" {
			t.Errorf("unexpected URLs: %v", lines)
		}
	})

	t.Run("respects the limit flag", func(t *testing.T) {
		t.Parallel()

		server := newSitemapServer()
		defer server.Close()

		var buf bytes.Buffer
		root := NewRootCmd()
		root.SetOut(&buf)
		root.SetArgs([]string{"sitemap", "--limit", "2", server.URL})

		if err := root.Execute(); err != nil {
			t.Fatalf("failed to execute sitemap: %v", err)
		}

		if lines := strings.Fields(buf.String()); len(lines) != 2 {
			t.Errorf("expected 2 URLs, got %v", lines)
		}
	})

	t.Run("unreachable server prints nothing without failing", func(t *testing.T) {
		t.Parallel()

		server := newSitemapServer()
		serverURL := server.URL
		server.Close()

		var buf bytes.Buffer
		root := NewRootCmd()
		root.SetOut(&buf)
		root.SetArgs([]string{"sitemap", serverURL})

		if err := root.Execute(); err != nil {
			t.Fatalf("sitemap should not fail on fetch errors: %v", err)
		}
		if buf.Len() != 0 {
			t.Errorf("expected empty output, got %q", buf.String())
		}
	})

	t.Run("negative limit fails", func(t *testing.T) {
		t.Parallel()

		root := NewRootCmd()
		root.SetArgs([]string{"sitemap", "--limit", "-1", "https://example.com/sitemap.xml"})

		if err := root.Execute(); err == nil {
			t.Error("expected error for negative limit")
		}
	})
}
