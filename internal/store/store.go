// Package store persists attempts and per-competency progress in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to timestamp attempts.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS attempts (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		question_id   TEXT NOT NULL,
		module_id     TEXT NOT NULL DEFAULT '',
		question_type TEXT NOT NULL,
		seed          INTEGER NOT NULL,
		answer_json   TEXT NOT NULL,
		result_json   TEXT NOT NULL,
		score         REAL NOT NULL,
		is_correct    INTEGER NOT NULL,
		time_spent_ms INTEGER NOT NULL DEFAULT 0,
		created_at    INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attempts_user_created ON attempts(user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS competency_progress (
		user_id         TEXT NOT NULL,
		competency      TEXT NOT NULL,
		attempts        INTEGER NOT NULL DEFAULT 0,
		correct         INTEGER NOT NULL DEFAULT 0,
		total_score     REAL NOT NULL DEFAULT 0,
		best_score      REAL NOT NULL DEFAULT 0,
		mastery_level   TEXT NOT NULL DEFAULT 'new',
		last_attempt_at INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (user_id, competency)
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. STATICA_DB environment variable
// 2. $XDG_DATA_HOME/staticamaster/staticamaster.db
// 3. ~/.local/share/staticamaster/staticamaster.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("STATICA_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "staticamaster", "staticamaster.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
