package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/sitecrawl/internal/model"
)

// CrawlDB provides SQLite-based storage for crawl results.
// It manages connection pooling and provides methods for saving crawl
// sessions and querying crawl history.
//
// Design decision: We use a single database file for all crawls rather
// than a file per host. This makes history queries across hosts trivial
// and simplifies backup/restore operations.
type CrawlDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures CrawlDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a CrawlDB at the specified path.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*CrawlDB, error) {
	dbPath := filepath.Join(dbDir, "sitecrawl.db")

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string
	// We use modernc.org/sqlite which uses a different connection string format.
	// When CreateIfNotExists is false, we use mode=rw to prevent creating new files.
	// When CreateIfNotExists is true, we use mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; multiple connections add nothing
	// for this workload.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CrawlDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cdb, nil
}

// Close closes the database connection.
func (cdb *CrawlDB) Close() error {
	return cdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (cdb *CrawlDB) createTables() error {
	schema := `
	-- Sessions store one row per completed crawl
	CREATE TABLE IF NOT EXISTS crawl_sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed TEXT NOT NULL,
		host TEXT NOT NULL,
		page_limit INTEGER NOT NULL,
		started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		duration_ms INTEGER NOT NULL,
		page_count INTEGER NOT NULL,
		skips TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_host ON crawl_sessions(host);
	CREATE INDEX IF NOT EXISTS idx_sessions_started ON crawl_sessions(started_at);

	-- Pages store the discovered URLs of a session in discovery order
	CREATE TABLE IF NOT EXISTS crawl_pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL REFERENCES crawl_sessions(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		url TEXT NOT NULL,
		UNIQUE(session_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_pages_session ON crawl_pages(session_id);
	`

	_, err := cdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveResult persists a crawl result as a new session with its pages.
// It returns the database ID of the new session. The whole save runs in
// one transaction so a partially written session never becomes visible.
func (cdb *CrawlDB) SaveResult(ctx context.Context, result *model.CrawlResult) (int64, error) {
	skipsJSON, err := json.Marshal(result.Skips)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize skip counts: %w", err)
	}

	tx, err := cdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after Commit is a no-op

	res, err := tx.ExecContext(ctx,
		`INSERT INTO crawl_sessions (seed, host, page_limit, started_at, duration_ms, page_count, skips)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.Seed,
		result.Host,
		result.PageLimit,
		result.StartedAt.UTC().Format("2006-01-02 15:04:05"),
		result.Duration.Milliseconds(),
		result.PageCount(),
		string(skipsJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert session: %w", err)
	}

	sessionID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read session id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO crawl_pages (session_id, position, url) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare page insert: %w", err)
	}
	defer stmt.Close() //nolint:errcheck // closing a prepared statement

	for i, page := range result.Pages {
		if _, err := stmt.ExecContext(ctx, sessionID, i, page); err != nil {
			return 0, fmt.Errorf("failed to insert page %q: %w", page, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit session: %w", err)
	}

	return sessionID, nil
}

// SessionMetadata contains summary information about a stored crawl.
// This is used for displaying crawl history without loading every page.
type SessionMetadata struct {
	// ID is the unique identifier of the session in the database.
	ID int64

	// Seed is the URL the crawl started from.
	Seed string

	// Host is the hostname the crawl was restricted to.
	Host string

	// PageLimit is the page limit the crawl ran with (0 = unlimited).
	PageLimit int

	// StartedAt is when the crawl started.
	StartedAt time.Time

	// Duration is how long the crawl took.
	Duration time.Duration

	// PageCount is the number of pages discovered.
	PageCount int

	// Skips contains counts of skipped candidates by reason.
	Skips map[string]int
}

// ListSessions returns stored crawl sessions, newest first.
// When host is non-empty, only sessions for that host are returned.
func (cdb *CrawlDB) ListSessions(ctx context.Context, host string) ([]SessionMetadata, error) {
	query := `
	SELECT id, seed, host, page_limit, started_at, duration_ms, page_count, skips
	FROM crawl_sessions
	`
	args := make([]any, 0, 1)
	if host != "" {
		query += " WHERE host = ?"
		args = append(args, host)
	}
	query += " ORDER BY started_at DESC, id DESC"

	rows, err := cdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var results []SessionMetadata
	for rows.Next() {
		var meta SessionMetadata
		var startedAt string
		var durationMS int64
		var skipsJSON sql.NullString

		if err := rows.Scan(
			&meta.ID,
			&meta.Seed,
			&meta.Host,
			&meta.PageLimit,
			&startedAt,
			&durationMS,
			&meta.PageCount,
			&skipsJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}

		meta.StartedAt = parseTimestamp(startedAt)
		meta.Duration = time.Duration(durationMS) * time.Millisecond

		if skipsJSON.Valid && skipsJSON.String != "" {
			if err := json.Unmarshal([]byte(skipsJSON.String), &meta.Skips); err != nil {
				meta.Skips = make(map[string]int)
			}
		} else {
			meta.Skips = make(map[string]int)
		}

		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetPages returns the discovered URLs of a session in discovery order.
// It returns nil without error when the session has no pages.
func (cdb *CrawlDB) GetPages(ctx context.Context, sessionID int64) ([]string, error) {
	rows, err := cdb.db.QueryContext(ctx,
		`SELECT url FROM crawl_pages WHERE session_id = ? ORDER BY position`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get pages: %w", err)
	}
	defer rows.Close()

	var pages []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, url)
	}

	return pages, rows.Err()
}

// GetResult reconstructs a full crawl result from a stored session.
// It returns nil without error when the session does not exist.
func (cdb *CrawlDB) GetResult(ctx context.Context, sessionID int64) (*model.CrawlResult, error) {
	query := `
	SELECT seed, host, page_limit, started_at, duration_ms, skips
	FROM crawl_sessions
	WHERE id = ?
	`

	var (
		result     model.CrawlResult
		startedAt  string
		durationMS int64
		skipsJSON  sql.NullString
	)

	err := cdb.db.QueryRowContext(ctx, query, sessionID).Scan(
		&result.Seed,
		&result.Host,
		&result.PageLimit,
		&startedAt,
		&durationMS,
		&skipsJSON,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	result.StartedAt = parseTimestamp(startedAt)
	result.Duration = time.Duration(durationMS) * time.Millisecond

	result.Skips = make(map[string]int)
	if skipsJSON.Valid && skipsJSON.String != "" {
		if err := json.Unmarshal([]byte(skipsJSON.String), &result.Skips); err != nil {
			result.Skips = make(map[string]int)
		}
	}

	result.Pages, err = cdb.GetPages(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
