package listener

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pixil98/go-pixelmmo/internal/auth"
	"github.com/pixil98/go-pixelmmo/internal/player"
	"github.com/pixil98/go-pixelmmo/internal/storage"
)

// SessionRunner serves one authenticated connection until it ends.
type SessionRunner interface {
	RunSession(ctx context.Context, connID string, conn player.Conn, token string) error
}

// ConnectionManager hands accepted connections to the session runner.
type ConnectionManager struct {
	sessions SessionRunner
	newID    func() string
}

func NewConnectionManager(sessions SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		sessions: sessions,
		newID:    uuid.NewString,
	}
}

// AcceptConnection runs a session and reports why it was refused, if it was.
func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn player.Conn, token string) (rejected bool, err error) {
	connID := m.newID()
	err = m.sessions.RunSession(ctx, connID, conn, token)
	if err == nil {
		return false, nil
	}

	if refused(err) {
		slog.InfoContext(ctx, "connection rejected", "connId", connID, "reason", err)
		return true, err
	}
	slog.WarnContext(ctx, "player session", "connId", connID, "error", err)
	return false, err
}

func refused(err error) bool {
	return errors.Is(err, auth.ErrMissingToken) ||
		errors.Is(err, auth.ErrInvalidToken) ||
		errors.Is(err, auth.ErrTokenExpired) ||
		errors.Is(err, storage.ErrNotFound) ||
		errors.Is(err, player.ErrAlreadyConnected)
}
