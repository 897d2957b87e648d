package player

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-pixelmmo/internal/auth"
	"github.com/pixil98/go-pixelmmo/internal/commands"
	"github.com/pixil98/go-pixelmmo/internal/events"
	"github.com/pixil98/go-pixelmmo/internal/game"
	"github.com/pixil98/go-pixelmmo/internal/storage"
)

// Verifier checks a bearer token.
type Verifier interface {
	Verify(token string) (auth.Claims, error)
}

// Subscriber delivers a connection's outbound events.
type Subscriber interface {
	Subscribe(connID string, handler func(data []byte)) (func(), error)
}

// PlayerManager owns the connect and disconnect lifecycle of players.
type PlayerManager struct {
	world      *game.World
	cmdHandler *commands.Handler
	verifier   Verifier
	repo       storage.Repository
	subs       Subscriber

	outboundBuffer int
}

type PlayerManagerOpt func(*PlayerManager)

// WithOutboundBuffer sets how many events may queue for a slow connection
// before it is dropped.
func WithOutboundBuffer(n int) PlayerManagerOpt {
	return func(m *PlayerManager) {
		m.outboundBuffer = n
	}
}

func NewPlayerManager(world *game.World, cmd *commands.Handler, v Verifier, repo storage.Repository, subs Subscriber, opts ...PlayerManagerOpt) *PlayerManager {
	m := &PlayerManager{
		world:          world,
		cmdHandler:     cmd,
		verifier:       v,
		repo:           repo,
		subs:           subs,
		outboundBuffer: 1024,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start waits for shutdown and then persists everyone still connected.
func (m *PlayerManager) Start(ctx context.Context) error {
	<-ctx.Done()

	if err := m.SaveAll(context.WithoutCancel(ctx)); err != nil {
		slog.ErrorContext(ctx, "saving players at shutdown", "error", err)
	}
	return nil
}

// Connect authenticates the token, loads the player and registers it under
// connID. The new connection receives an init snapshot and everyone else a
// playerJoined.
func (m *PlayerManager) Connect(ctx context.Context, connID, token string) error {
	claims, err := m.verifier.Verify(token)
	if err != nil {
		return fmt.Errorf("verifying token: %w", err)
	}

	rec, err := m.repo.Load(ctx, claims.Subject)
	if err != nil {
		return fmt.Errorf("loading player: %w", err)
	}

	p, err := game.NewPlayer(connID, rec)
	if err != nil {
		return fmt.Errorf("building player %s: %w", claims.Subject, err)
	}

	err = m.world.Exec(ctx, func(s *game.Store, out *events.Outbox) error {
		for _, other := range s.Players() {
			if other.Subject == p.Subject {
				return fmt.Errorf("%w: %s", ErrAlreadyConnected, p.Subject)
			}
		}

		if err := s.AddPlayer(p); err != nil {
			return err
		}

		snap, err := s.Snapshot(connID)
		if err != nil {
			return err
		}
		out.Send(connID, events.Init, snap)
		out.BroadcastExcept(connID, events.PlayerJoined, events.PlayerJoinedData{
			SocketID:  connID,
			Username:  p.Username,
			X:         p.X,
			Y:         p.Y,
			Health:    p.Health,
			MaxHealth: p.MaxHealth,
		})
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "player joined", "connId", connID, "subject", p.Subject, "username", p.Username)
	return nil
}

// Disconnect removes the player and persists its record. Saving happens
// after the world is released and is not retried.
func (m *PlayerManager) Disconnect(ctx context.Context, connID string) {
	var rec *game.PlayerRecord
	err := m.world.Exec(ctx, func(s *game.Store, out *events.Outbox) error {
		p, err := s.RemovePlayer(connID)
		if err != nil {
			return err
		}
		rec = p.Record()
		out.Broadcast(events.PlayerLeft, events.PlayerLeftData{SocketID: connID})
		return nil
	})
	if err != nil {
		slog.DebugContext(ctx, "disconnect of unknown connection", "connId", connID, "error", err)
		return
	}

	if err := m.repo.Save(context.WithoutCancel(ctx), rec); err != nil {
		slog.ErrorContext(ctx, "saving player", "connId", connID, "subject", rec.Subject, "error", err)
	}
	slog.InfoContext(ctx, "player left", "connId", connID, "subject", rec.Subject)
}

// SaveAll persists every connected player.
func (m *PlayerManager) SaveAll(ctx context.Context) error {
	var recs []*game.PlayerRecord
	err := m.world.Exec(ctx, func(s *game.Store, _ *events.Outbox) error {
		for _, p := range s.Players() {
			recs = append(recs, p.Record())
		}
		return nil
	})
	if err != nil {
		return err
	}

	el := errors.NewErrorList()
	for _, rec := range recs {
		if err := m.repo.Save(ctx, rec); err != nil {
			el.Add(fmt.Errorf("saving %s: %w", rec.Subject, err))
		}
	}
	if len(recs) > 0 {
		slog.InfoContext(ctx, "saved connected players", "count", len(recs))
	}
	return el.Err()
}
