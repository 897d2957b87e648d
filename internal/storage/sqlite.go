package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pixil98/go-pixelmmo/internal/game"
	_ "modernc.org/sqlite"
)

// SQLiteRepository stores player records as JSON payloads in a single table.
type SQLiteRepository struct {
	db    *sql.DB
	clock func() time.Time
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteRepository{db: db, clock: time.Now}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", strings.TrimSuffix(p, ";"), err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS players (
		subject TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`)
	if err != nil {
		return fmt.Errorf("creating players table: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Load(ctx context.Context, subject string) (*game.PlayerRecord, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM players WHERE subject = ?`, subject).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, subject)
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", subject, err)
	}

	return decodeRecord(subject, []byte(payload))
}

func (r *SQLiteRepository) Save(ctx context.Context, rec *game.PlayerRecord) error {
	payload, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO players (subject, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(subject) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		rec.Subject, string(payload), r.stamp())
	if err != nil {
		return fmt.Errorf("saving %s: %w", rec.Subject, err)
	}
	return nil
}

func (r *SQLiteRepository) Create(ctx context.Context, rec *game.PlayerRecord) error {
	payload, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `INSERT INTO players (subject, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(subject) DO NOTHING`,
		rec.Subject, string(payload), r.stamp())
	if err != nil {
		return fmt.Errorf("creating %s: %w", rec.Subject, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("creating %s: %w", rec.Subject, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrExists, rec.Subject)
	}
	return nil
}

func (r *SQLiteRepository) stamp() string {
	return r.clock().UTC().Format(time.RFC3339Nano)
}
