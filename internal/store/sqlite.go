package store

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

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{db: db, path: dbPath}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS items (
		ns         TEXT PRIMARY KEY,
		blob       TEXT NOT NULL,
		version    INTEGER NOT NULL DEFAULT 1,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_items_updated ON items(updated_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) GetItem(ctx context.Context, ns string) (string, error) {
	var blob string
	err := s.db.QueryRowContext(ctx, `SELECT blob FROM items WHERE ns = ?`, ns).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, ns)
	}
	if err != nil {
		return "", fmt.Errorf("get item %s: %w", ns, err)
	}
	return blob, nil
}

func (s *SQLiteStore) SetItem(ctx context.Context, ns, blob string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (ns, blob, version, updated_at) VALUES (?, ?, 1, ?)
		 ON CONFLICT(ns) DO UPDATE SET
		   blob = excluded.blob,
		   version = items.version + 1,
		   updated_at = excluded.updated_at`,
		ns, blob, now)
	if err != nil {
		return fmt.Errorf("set item %s: %w", ns, err)
	}
	return nil
}

func (s *SQLiteStore) RemoveItem(ctx context.Context, ns string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE ns = ?`, ns); err != nil {
		return fmt.Errorf("remove item %s: %w", ns, err)
	}
	return nil
}

func (s *SQLiteStore) Items(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ns, blob, version, updated_at FROM items ORDER BY ns`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row scanner) (Item, error) {
	var it Item
	err := row.Scan(&it.NS, &it.Blob, &it.Version, &it.UpdatedAt)
	return it, err
}
