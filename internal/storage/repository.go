package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pixil98/go-pixelmmo/internal/game"
)

var (
	ErrNotFound = errors.New("player record not found")
	ErrExists   = errors.New("player record already exists")
)

// Repository persists player records keyed by auth subject.
type Repository interface {
	Load(ctx context.Context, subject string) (*game.PlayerRecord, error)
	Save(ctx context.Context, rec *game.PlayerRecord) error
	Create(ctx context.Context, rec *game.PlayerRecord) error
}

// cloneRecord detaches a record from any cached copy.
func cloneRecord(rec *game.PlayerRecord) *game.PlayerRecord {
	cp := *rec
	cp.Skills = rec.Skills.Clone()
	cp.Inventory = append(cp.Inventory[:0:0], rec.Inventory...)
	return &cp
}

func encodeRecord(rec *game.PlayerRecord) ([]byte, error) {
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", rec.Subject, err)
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", rec.Subject, err)
	}
	return b, nil
}

func decodeRecord(subject string, payload []byte) (*game.PlayerRecord, error) {
	var rec game.PlayerRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", subject, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", subject, err)
	}
	return &rec, nil
}
