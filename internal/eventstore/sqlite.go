package eventstore

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/godocsite/internal/site"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if necessary) the build-history database.
// Use ":memory:" for an in-memory database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		build_id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		output_dir TEXT NOT NULL,
		packages INTEGER NOT NULL,
		failures INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		build_id TEXT NOT NULL REFERENCES builds(build_id),
		path TEXT NOT NULL,
		file TEXT NOT NULL,
		bytes INTEGER NOT NULL,
		tool_failed INTEGER NOT NULL,
		tool_stderr TEXT,
		duration_ms INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_pages_build_id ON pages(build_id);
	CREATE INDEX IF NOT EXISTS idx_builds_started_at ON builds(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordBuild persists a finished build report and its per-page outcomes in
// a single transaction.
func (s *SQLiteStore) RecordBuild(ctx context.Context, report *site.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO builds (build_id, started_at, finished_at, output_dir, packages, failures) VALUES (?, ?, ?, ?, ?, ?)",
		report.BuildID, report.StartedAt.UnixMilli(), report.FinishedAt.UnixMilli(),
		report.OutputDir, len(report.Pages), report.Failures(),
	)
	if err != nil {
		return fmt.Errorf("insert build: %w", err)
	}

	for _, p := range report.Pages {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO pages (build_id, path, file, bytes, tool_failed, tool_stderr, duration_ms) VALUES (?, ?, ?, ?, ?, ?, ?)",
			report.BuildID, p.Path, p.File, p.Bytes, boolToInt(p.ToolFailed), p.ToolStderr, p.Duration.Milliseconds(),
		)
		if err != nil {
			return fmt.Errorf("insert page %s: %w", p.Path, err)
		}
	}
	return tx.Commit()
}

// RecentBuilds returns the most recent builds, newest first.
func (s *SQLiteStore) RecentBuilds(ctx context.Context, limit int) ([]BuildRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT build_id, started_at, finished_at, output_dir, packages, failures FROM builds ORDER BY started_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var builds []BuildRecord
	for rows.Next() {
		var b BuildRecord
		var started, finished int64
		if err := rows.Scan(&b.BuildID, &started, &finished, &b.OutputDir, &b.Packages, &b.Failures); err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		b.StartedAt = time.UnixMilli(started)
		b.FinishedAt = time.UnixMilli(finished)
		builds = append(builds, b)
	}
	return builds, rows.Err()
}

// BuildPages returns the per-page outcomes of one build in generation order.
func (s *SQLiteStore) BuildPages(ctx context.Context, buildID string) ([]PageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT build_id, path, file, bytes, tool_failed, tool_stderr, duration_ms FROM pages WHERE build_id = ? ORDER BY id",
		buildID,
	)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var pages []PageRecord
	for rows.Next() {
		var p PageRecord
		var failed int
		if err := rows.Scan(&p.BuildID, &p.Path, &p.File, &p.Bytes, &failed, &p.ToolStderr, &p.DurationMS); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		p.ToolFailed = failed != 0
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
