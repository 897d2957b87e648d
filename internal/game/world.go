package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pixil98/go-pixelmmo/internal/events"
)

// World guards the Store. Every tick and every player command runs as one
// unit through Exec, and the events it produced are delivered only after the
// store is unlocked.
type World struct {
	mu    sync.Mutex
	store *Store

	// flushMu orders delivery. It is taken before mu is released so units
	// deliver in the order they ran.
	flushMu sync.Mutex

	publisher events.Publisher
	recorder  events.Recorder
	clock     func() time.Time
}

type WorldOpt func(*World)

// WithRecorder attaches a recorder that sees every delivered batch.
func WithRecorder(r events.Recorder) WorldOpt {
	return func(w *World) {
		w.recorder = r
	}
}

// WithWorldClock overrides the clock used to stamp recorded batches.
func WithWorldClock(clock func() time.Time) WorldOpt {
	return func(w *World) {
		w.clock = clock
	}
}

func NewWorld(store *Store, pub events.Publisher, opts ...WorldOpt) *World {
	w := &World{
		store:     store,
		publisher: pub,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Exec runs fn with exclusive access to the store, then delivers the queued
// events. Broadcast recipients are the players registered when fn returns.
// Publishing failures are logged; only fn's error is returned.
func (w *World) Exec(ctx context.Context, fn func(*Store, *events.Outbox) error) error {
	out, conns, err := w.run(fn)
	defer w.flushMu.Unlock()

	if out.Len() == 0 {
		return err
	}

	if perr := events.Deliver(w.publisher, out.Messages(), conns); perr != nil {
		slog.WarnContext(ctx, "delivering events", "error", perr)
	}
	if w.recorder != nil {
		if rerr := w.recorder.Record(ctx, w.clock(), out.Messages()); rerr != nil {
			slog.WarnContext(ctx, "recording events", "error", rerr)
		}
	}

	return err
}

func (w *World) run(fn func(*Store, *events.Outbox) error) (*events.Outbox, []string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := &events.Outbox{}
	err := fn(w.store, out)
	conns := w.store.ConnIDs()

	w.flushMu.Lock()
	return out, conns, err
}

// PlayerCount returns the number of connected players.
func (w *World) PlayerCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.PlayerCount()
}
