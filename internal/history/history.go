// Package history persists a log of completed builds in SQLite, one row per
// build, so the preview server can show what happened while it was running.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Build is one completed (or failed) build.
type Build struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	Duration    float64   `json:"duration_ms"`
	Fingerprint uint64    `json:"fingerprint"`
	Posts       int       `json:"posts"`
	Succeeded   bool      `json:"succeeded"`
	Error       string    `json:"error,omitempty"`
}

// Store is a SQLite-backed build log.
// Use ":memory:" for an in-memory database, or a file path for persistence.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		duration_ms REAL NOT NULL,
		fingerprint TEXT NOT NULL,
		posts INTEGER NOT NULL,
		succeeded INTEGER NOT NULL,
		error TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_builds_started_at ON builds(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record appends one build row.
func (s *Store) Record(ctx context.Context, b Build) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	succeeded := 0
	if b.Succeeded {
		succeeded = 1
	}
	// The fingerprint is stored as text; SQLite INTEGER is signed 64-bit and
	// would mangle values above 1<<63.
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO builds (id, started_at, duration_ms, fingerprint, posts, succeeded, error) VALUES (?, ?, ?, ?, ?, ?, ?)",
		b.ID, b.StartedAt.UnixMilli(), b.Duration, fmt.Sprintf("%016x", b.Fingerprint), b.Posts, succeeded, b.Error,
	)
	if err != nil {
		return fmt.Errorf("insert build: %w", err)
	}
	return nil
}

// Recent returns up to n builds, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Build, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, started_at, duration_ms, fingerprint, posts, succeeded, error FROM builds ORDER BY started_at DESC, id LIMIT ?", n)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		var b Build
		var startedMilli int64
		var fingerprintHex string
		var succeeded int
		if err := rows.Scan(&b.ID, &startedMilli, &b.Duration, &fingerprintHex, &b.Posts, &succeeded, &b.Error); err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		b.StartedAt = time.UnixMilli(startedMilli).UTC()
		b.Succeeded = succeeded != 0
		if _, err := fmt.Sscanf(fingerprintHex, "%x", &b.Fingerprint); err != nil {
			return nil, fmt.Errorf("decode fingerprint %q: %w", fingerprintHex, err)
		}
		builds = append(builds, b)
	}
	return builds, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
