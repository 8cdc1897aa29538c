package main

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/nao1215/sitecrawl/internal/database"
	"github.com/nao1215/sitecrawl/internal/model"
)

// seedHistory stores one crawl session and returns its database directory
// and session ID.
func seedHistory(t *testing.T) (string, int64) {
	t.Helper()

	dbDir := t.TempDir()
	cdb, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer cdb.Close() //nolint:errcheck // test cleanup

	result := model.NewCrawlResult("https://example.com", "example.com")
	result.Pages = []string{"https://example.com", "https://example.com/about"}

	id, err := cdb.SaveResult(context.Background(), result)
	if err != nil {
		t.Fatalf("failed to save result: %v", err)
	}
	return dbDir, id
}

func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists stored sessions", func(t *testing.T) {
		t.Parallel()

		dbDir, _ := seedHistory(t)

		var buf bytes.Buffer
		root := NewRootCmd()
		root.SetOut(&buf)
		root.SetArgs([]string{"history", "--db-dir", dbDir})

		if err := root.Execute(); err != nil {
			t.Fatalf("failed to execute history: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "https://example.com") {
			t.Errorf("expected seed in listing:\n%s", out)
		}
		if !strings.Contains(out, "ID") {
			t.Errorf("expected header in listing:\n%s", out)
		}
	})

	t.Run("filters by host", func(t *testing.T) {
		t.Parallel()

		dbDir, _ := seedHistory(t)

		var buf bytes.Buffer
		root := NewRootCmd()
		root.SetOut(&buf)
		root.SetArgs([]string{"history", "--db-dir", dbDir, "--host", "other.com"})

		if err := root.Execute(); err != nil {
			t.Fatalf("failed to execute history: %v", err)
		}
		if !strings.Contains(buf.String(), "No crawl sessions found") {
			t.Errorf("expected empty listing for unknown host:\n%s", buf.String())
		}
	})

	t.Run("shows one session's pages", func(t *testing.T) {
		t.Parallel()

		dbDir, id := seedHistory(t)

		var buf bytes.Buffer
		root := NewRootCmd()
		root.SetOut(&buf)
		root.SetArgs([]string{"history", "--db-dir", dbDir, "--id", strconv.FormatInt(id, 10)})

		if err := root.Execute(); err != nil {
			t.Fatalf("failed to execute history: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "https://example.com/about") {
			t.Errorf("expected page list:\n%s", out)
		}
		if !strings.Contains(out, "Pages: 2") {
			t.Errorf("expected page count:\n%s", out)
		}
	})

	t.Run("unknown session id fails", func(t *testing.T) {
		t.Parallel()

		dbDir, _ := seedHistory(t)

		root := NewRootCmd()
		root.SetArgs([]string{"history", "--db-dir", dbDir, "--id", "42"})

		if err := root.Execute(); err == nil {
			t.Error("expected error for unknown session id")
		}
	})

	t.Run("missing database fails with hint", func(t *testing.T) {
		t.Parallel()

		root := NewRootCmd()
		root.SetArgs([]string{"history", "--db-dir", t.TempDir()})

		err := root.Execute()
		if err == nil {
			t.Fatal("expected error for missing database")
		}
		if !strings.Contains(err.Error(), "no crawl history") {
			t.Errorf("expected hint in error, got %v", err)
		}
	})
}
