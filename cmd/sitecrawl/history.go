package main

import (
	"fmt"

	"github.com/nao1215/sitecrawl/internal/config"
	"github.com/nao1215/sitecrawl/internal/database"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past crawl sessions from the local database",
		Long: `History lists crawl sessions stored in the local SQLite database.

By default it shows one line per session, newest first. Use --id to print
the full page list of a single session.

Examples:
  # List all stored crawls
  sitecrawl history

  # List crawls of one host
  sitecrawl history --host example.com

  # Print the pages of session 3
  sitecrawl history --id 3`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().String("host", "", "Only show sessions for this host")
	cmd.Flags().Int64("id", 0, "Show the page list of one session")
	cmd.Flags().String("db-dir", "",
		"Directory of the crawl history database (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	host, err := cmd.Flags().GetString("host")
	if err != nil {
		return err
	}

	sessionID, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	// History is read-only: never create a database here.
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("no crawl history found (run a crawl first): %w", err)
	}
	defer db.Close() //nolint:errcheck // Best effort cleanup

	if sessionID > 0 {
		return showSession(cmd, db, sessionID)
	}
	return listSessions(cmd, db, host)
}

// listSessions prints one summary line per stored session.
func listSessions(cmd *cobra.Command, db *database.CrawlDB, host string) error {
	sessions, err := db.ListSessions(cmd.Context(), host)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No crawl sessions found")
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-5s %-20s %-30s %8s %10s\n", "ID", "DATE", "SEED", "PAGES", "DURATION")
	for _, s := range sessions {
		fmt.Fprintf(out, "%-5d %-20s %-30s %8d %10s\n",
			s.ID,
			s.StartedAt.Format("2006-01-02 15:04:05"),
			s.Seed,
			s.PageCount,
			s.Duration,
		)
	}

	return nil
}

// showSession prints the full page list of one session.
func showSession(cmd *cobra.Command, db *database.CrawlDB, sessionID int64) error {
	result, err := db.GetResult(cmd.Context(), sessionID)
	if err != nil {
		return fmt.Errorf("failed to load session %d: %w", sessionID, err)
	}
	if result == nil {
		return fmt.Errorf("session %d not found", sessionID)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Seed:  %s\n", result.Seed)
	fmt.Fprintf(out, "Host:  %s\n", result.Host)
	fmt.Fprintf(out, "Date:  %s\n", result.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Pages: %d\n\n", result.PageCount())

	for i, page := range result.Pages {
		fmt.Fprintf(out, "%3d. %s\n", i+1, page)
	}

	return nil
}
