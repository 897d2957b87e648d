package player

import (
	"context"
	"fmt"
	"log/slog"
)

// Conn is a message-oriented client connection.
type Conn interface {
	ReadMessage() ([]byte, error)
	WriteMessage(data []byte) error
}

// RunSession serves one connection until the socket drops or ctx ends. The
// caller owns conn and must close it after RunSession returns.
func (m *PlayerManager) RunSession(ctx context.Context, connID string, conn Conn, token string) error {
	msgs := make(chan []byte, m.outboundBuffer)
	overflow := make(chan struct{})
	var overflowed bool

	// Subscribe first so nothing published during Connect is lost.
	unsub, err := m.subs.Subscribe(connID, func(data []byte) {
		if overflowed {
			return
		}
		select {
		case msgs <- data:
		default:
			overflowed = true
			close(overflow)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribing %s: %w", connID, err)
	}
	defer unsub()

	if err := m.Connect(ctx, connID, token); err != nil {
		return err
	}
	defer m.Disconnect(ctx, connID)

	done := make(chan struct{})
	defer close(done)

	inputChan := make(chan []byte)
	inputErrChan := make(chan error, 1)
	go func() {
		for {
			data, err := conn.ReadMessage()
			if err != nil {
				inputErrChan <- err
				return
			}
			select {
			case inputChan <- data:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-overflow:
			return fmt.Errorf("%w: %s", ErrSlowConsumer, connID)

		case data := <-msgs:
			if err := conn.WriteMessage(data); err != nil {
				slog.DebugContext(ctx, "writing to connection", "connId", connID, "error", err)
				return nil
			}

		case raw := <-inputChan:
			if err := m.cmdHandler.Exec(ctx, connID, raw); err != nil {
				return fmt.Errorf("command execution failed: %w", err)
			}

		case err := <-inputErrChan:
			// A dropped socket is an ordinary disconnect.
			slog.DebugContext(ctx, "connection closed", "connId", connID, "error", err)
			return nil
		}
	}
}
