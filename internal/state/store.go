// Package state persists the per-account sync cursor consulted by the auto
// scope.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS sync_state (
	account    TEXT PRIMARY KEY,
	last_sync  TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// Store is a SQLite-backed cursor store.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the cursor database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create state schema: %w", err)
	}

	return &Store{db: db}, nil
}

// LastSync returns the stored cursor for the account, or found=false when
// the account has never completed a run.
func (s *Store) LastSync(ctx context.Context, account string) (time.Time, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT last_sync FROM sync_state WHERE account = ?`, account).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("read sync cursor: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse sync cursor %q: %w", raw, err)
	}

	return ts, true, nil
}

// SetLastSync stores the cursor for the account, replacing any previous
// value.
func (s *Store) SetLastSync(ctx context.Context, account string, ts time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sync_state (account, last_sync, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(account) DO UPDATE SET last_sync = excluded.last_sync, updated_at = excluded.updated_at`,
		account, ts.Format(time.RFC3339Nano), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write sync cursor: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
