package session

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore implements KeyValueStore on SQLite so session state
// survives a host restart.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (and initializes) a SQLite-backed store.
// Use ":memory:" for an in-memory database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping session database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize session schema: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Put upserts the value under key with the given timestamp.
func (s *SQLiteStore) Put(key string, value []byte, timestamp time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, timestamp.UTC().Unix())
	if err != nil {
		return fmt.Errorf("failed to store session %q: %w", key, err)
	}
	return nil
}

// Get returns the stored value, or nil when absent or older than maxAge.
func (s *SQLiteStore) Get(key string, maxAge time.Duration) ([]byte, error) {
	var value []byte
	var updatedAt int64
	err := s.db.QueryRow(`SELECT value, updated_at FROM sessions WHERE key = ?`, key).
		Scan(&value, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %q: %w", key, err)
	}

	if time.Since(time.Unix(updatedAt, 0)) > maxAge {
		return nil, nil
	}
	return value, nil
}

// SweepExpired removes entries older than the retention window and
// returns how many were purged.
func (s *SQLiteStore) SweepExpired(retention time.Duration) (int, error) {
	cutoff := time.Now().Add(-retention).UTC().Unix()
	res, err := s.db.Exec(`DELETE FROM sessions WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count swept sessions: %w", err)
	}
	return int(n), nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
