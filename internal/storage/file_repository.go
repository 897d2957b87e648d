package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/pixil98/go-pixelmmo/internal/game"
)

// FileRepository stores each player as a JSON asset file.
type FileRepository struct {
	store Storer[*game.PlayerRecord]
}

func NewFileRepository(path string) (*FileRepository, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	st, err := NewFileStore[*game.PlayerRecord](path)
	if err != nil {
		return nil, fmt.Errorf("loading player records: %w", err)
	}
	return &FileRepository{store: st}, nil
}

func (r *FileRepository) Load(_ context.Context, subject string) (*game.PlayerRecord, error) {
	rec, ok := r.store.Get(subject)
	if !ok || rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, subject)
	}
	return cloneRecord(rec), nil
}

func (r *FileRepository) Save(_ context.Context, rec *game.PlayerRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("validating %s: %w", rec.Subject, err)
	}
	return r.store.Save(rec.Subject, cloneRecord(rec))
}

func (r *FileRepository) Create(ctx context.Context, rec *game.PlayerRecord) error {
	if _, ok := r.store.Get(rec.Subject); ok {
		return fmt.Errorf("%w: %s", ErrExists, rec.Subject)
	}
	return r.Save(ctx, rec)
}
