package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pixil98/go-pixelmmo/internal/game"
)

// PostgresRepository stores player records as JSONB payloads.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, dsn string) (*PostgresRepository, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty postgres dsn")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	_, err = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS players (
		subject TEXT PRIMARY KEY,
		payload JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating players table: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) Load(ctx context.Context, subject string) (*game.PlayerRecord, error) {
	var payload []byte
	err := r.pool.QueryRow(ctx, `SELECT payload FROM players WHERE subject = $1`, subject).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, subject)
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", subject, err)
	}
	return decodeRecord(subject, payload)
}

func (r *PostgresRepository) Save(ctx context.Context, rec *game.PlayerRecord) error {
	payload, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO players (subject, payload, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (subject) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		rec.Subject, string(payload))
	if err != nil {
		return fmt.Errorf("saving %s: %w", rec.Subject, err)
	}
	return nil
}

func (r *PostgresRepository) Create(ctx context.Context, rec *game.PlayerRecord) error {
	payload, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `INSERT INTO players (subject, payload) VALUES ($1, $2)
		ON CONFLICT (subject) DO NOTHING`,
		rec.Subject, string(payload))
	if err != nil {
		return fmt.Errorf("creating %s: %w", rec.Subject, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrExists, rec.Subject)
	}
	return nil
}
