package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"futur-backend/internal/domain"
	"futur-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxQuerier is the subset of *pgxpool.Pool the Postgres backend needs.
type PgxQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	pgSchema = `CREATE TABLE IF NOT EXISTS storefront_kv (
	key TEXT PRIMARY KEY,
	value BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	pgGet    = `SELECT value FROM storefront_kv WHERE key = $1`
	pgUpsert = `INSERT INTO storefront_kv (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	pgDelete = `DELETE FROM storefront_kv WHERE key = $1`
)

// Postgres stores values in the storefront_kv table.
type Postgres struct {
	db PgxQuerier
}

func NewPostgres(db PgxQuerier) *Postgres {
	return &Postgres{db: db}
}

// NewPgxPool creates a new pgx connection pool
func NewPgxPool(ctx context.Context, dsn string, maxConns, minConns int32, maxIdle time.Duration) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = minConns
	poolConfig.MaxConnIdleTime = maxIdle

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the backing table when missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, pgSchema); err != nil {
		return fmt.Errorf("create storefront_kv: %w", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	var value []byte
	err := p.db.QueryRow(ctx, pgGet, key).Scan(&value)
	logger.StorageOp("postgres", "get", key, time.Since(start), err)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: postgres get %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return value, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	_, err := p.db.Exec(ctx, pgUpsert, key, value)
	logger.StorageOp("postgres", "set", key, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("%w: postgres set %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.db.Exec(ctx, pgDelete, key); err != nil {
		return fmt.Errorf("%w: postgres delete %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return nil
}
