package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOptions sizes the connection pool. Zero fields keep the defaults.
type PoolOptions struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

func defaultPoolOptions() PoolOptions {
	return PoolOptions{
		MaxConns:        10,
		MinConns:        1,
		MaxConnLifetime: 30 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}
}

func Connect(ctx context.Context, databaseURL string, opts PoolOptions) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	def := defaultPoolOptions()
	cfg.MaxConns = pick(opts.MaxConns, def.MaxConns)
	cfg.MinConns = pick(opts.MinConns, def.MinConns)
	cfg.MaxConnLifetime = pick(opts.MaxConnLifetime, def.MaxConnLifetime)
	cfg.MaxConnIdleTime = pick(opts.MaxConnIdleTime, def.MaxConnIdleTime)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}

const savesSchema = `
CREATE TABLE IF NOT EXISTS game_saves (
	slot       TEXT PRIMARY KEY,
	state      JSONB NOT NULL,
	game_date  TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// EnsureSchema creates the save table when it is missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, savesSchema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func pick[T comparable](v, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}
	return v
}
