package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS journal_kv (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// PostgresBackend stores values in the journal_kv table.
type PostgresBackend struct {
	pool *pgxpool.Pool
	owns bool
}

// NewPostgresBackend creates the journal_kv table if needed. The caller keeps
// ownership of pool.
func NewPostgresBackend(ctx context.Context, pool *pgxpool.Pool) (*PostgresBackend, error) {
	op := "storage.NewPostgresBackend"
	if pool == nil {
		return nil, fmt.Errorf("%s: nil pool", op)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("%s: create table: %w", op, err)
	}
	return &PostgresBackend{pool: pool}, nil
}

func (p *PostgresBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.pool.QueryRow(ctx, `SELECT value FROM journal_kv WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage.PostgresBackend.Get: %w", err)
	}
	return value, nil
}

func (p *PostgresBackend) Put(ctx context.Context, key string, value []byte) error {
	sqlQuery := `
	INSERT INTO journal_kv (key, value, updated_at) VALUES ($1, $2, now())
	ON CONFLICT (key) DO UPDATE SET
	value = EXCLUDED.value,
	updated_at = EXCLUDED.updated_at
	`
	if _, err := p.pool.Exec(ctx, sqlQuery, key, value); err != nil {
		return fmt.Errorf("storage.PostgresBackend.Put: %w", err)
	}
	return nil
}

func (p *PostgresBackend) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresBackend) Close() error {
	if p.owns {
		p.pool.Close()
	}
	return nil
}
