package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"futur-backend/internal/domain"
	"futur-backend/pkg/logger"

	_ "modernc.org/sqlite"
)

// SQLite stores values in a single table of a local SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database file at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// single writer keeps :memory: databases shared across calls
	db.SetMaxOpenConns(1)
	return NewSQLite(db)
}

func NewSQLite(db *sql.DB) (*SQLite, error) {
	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate sqlite kv: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS storefront_kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	_, err := s.db.ExecContext(context.Background(), query)
	return err
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM storefront_kv WHERE key = ?`, key).Scan(&value)
	logger.StorageOp("sqlite", "get", key, time.Since(start), err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: sqlite get %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return value, nil
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO storefront_kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano),
	)
	logger.StorageOp("sqlite", "set", key, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("%w: sqlite set %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM storefront_kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("%w: sqlite delete %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
