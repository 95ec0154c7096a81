package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup or update matches no row.
var ErrNotFound = errors.New("store: not found")

// Store handles all database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite backend
func New(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	// sqlite time format keeps DATETIME columns comparable as text
	db, err := sql.Open("sqlite", dbPath+"?_time_format=sqlite")
	if err != nil {
		return nil, err
	}
	// follow and engage run concurrently; sqlite serialises writers anyway
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema
func (s *Store) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		link TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		name TEXT,
		bio TEXT,
		location TEXT,
		website TEXT,
		joined TEXT,
		following_count INTEGER,
		followers_count INTEGER,
		reply BOOLEAN NOT NULL DEFAULT 0,
		source TEXT NOT NULL,
		scraped_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tweets (
		tweet_id TEXT PRIMARY KEY,
		link TEXT NOT NULL,
		username TEXT,
		liked BOOLEAN NOT NULL DEFAULT 0,
		replied BOOLEAN NOT NULL DEFAULT 0,
		interacted_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS pacing_sessions (
		id TEXT PRIMARY KEY,
		total_count INTEGER NOT NULL,
		batch_size INTEGER NOT NULL,
		window_ns INTEGER NOT NULL,
		per_item_ns INTEGER NOT NULL,
		rest_interval_ns INTEGER NOT NULL,
		started_at DATETIME NOT NULL,
		stopped_at DATETIME,
		followed INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS follows (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT REFERENCES pacing_sessions(id),
		profile_link TEXT NOT NULL,
		followed_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_profiles_source ON profiles(source);
	CREATE INDEX IF NOT EXISTS idx_tweets_username ON tweets(username);
	CREATE INDEX IF NOT EXISTS idx_follows_followed_at ON follows(followed_at);
	CREATE INDEX IF NOT EXISTS idx_follows_session ON follows(session_id);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
