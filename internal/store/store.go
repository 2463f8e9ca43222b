package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// schema creates the tables on first open.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS high_scores (
		topic TEXT NOT NULL,
		mode TEXT NOT NULL,
		data TEXT NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (topic, mode)
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL UNIQUE,
		topic TEXT NOT NULL,
		mode TEXT NOT NULL,
		score INTEGER NOT NULL,
		best_streak INTEGER NOT NULL,
		correct INTEGER NOT NULL,
		wrong INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		ended_at INTEGER NOT NULL
	)`,
}

// Store holds the database handle and provides access to repositories.
type Store struct {
	db *sql.DB

	// keepSessions caps the session history on SaveResult (0 = unbounded).
	keepSessions int
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
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

	return &Store{db: db}, nil
}

// KeepSessions makes SaveResult prune the session history down to the
// n most recent records. Zero disables pruning.
func (s *Store) KeepSessions(n int) {
	s.keepSessions = max(0, n)
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// HighScores returns a HighScoreRepo backed by this store.
func (s *Store) HighScores() HighScoreRepo {
	return &highScoreRepo{db: s.db}
}

// Sessions returns a SessionRepo backed by this store.
func (s *Store) Sessions() SessionRepo {
	return &sessionRepo{db: s.db}
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
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

// ResolveDBPath returns configured if set, otherwise the default data
// file. The default is $XDG_DATA_HOME/mathdrill/mathdrill.db, falling
// back to ~/.local/share/mathdrill/mathdrill.db. The parent directory is
// created if missing.
func ResolveDBPath(configured string) (string, error) {
	if configured != "" {
		return configured, ensureDir(configured)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "mathdrill", "mathdrill.db")
	return p, ensureDir(p)
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
