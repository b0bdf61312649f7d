package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"essay-grader-service/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS assessment (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	folder      TEXT NOT NULL,
	rubric      TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS rubric (
	name       TEXT PRIMARY KEY,
	criteria   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS grade (
	assessment_name TEXT NOT NULL,
	essay_file      TEXT NOT NULL,
	grades          JSONB NOT NULL,
	comments        TEXT NOT NULL DEFAULT '',
	graded_at       TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (assessment_name, essay_file)
);
`

// NewPool opens and pings a connection pool sized from cfg.
func NewPool(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
