package game

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pixil98/go-pixelmmo/internal/events"
	"github.com/pixil98/go-testutil"
)

type recordingPublisher struct {
	mu       sync.Mutex
	messages []publishedMessage
}

type publishedMessage struct {
	connID string
	data   string
}

func (p *recordingPublisher) Publish(connID string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, publishedMessage{connID: connID, data: string(data)})
	return nil
}

type recordingRecorder struct {
	batches [][]events.Message
}

func (r *recordingRecorder) Record(_ context.Context, _ time.Time, msgs []events.Message) error {
	r.batches = append(r.batches, msgs)
	return nil
}

func TestWorld_Exec(t *testing.T) {
	pub := &recordingPublisher{}
	rec := &recordingRecorder{}
	store := NewStore()
	_ = store.AddPlayer(newTestPlayer("a", Position{}))
	w := NewWorld(store, pub, WithRecorder(rec))

	err := w.Exec(context.Background(), func(s *Store, out *events.Outbox) error {
		// Players added during the unit receive its broadcasts.
		if err := s.AddPlayer(newTestPlayer("b", Position{})); err != nil {
			return err
		}
		out.Send("b", events.Init, map[string]string{"hello": "b"})
		out.BroadcastExcept("b", events.PlayerJoined, map[string]string{"socketId": "b"})
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "published", len(pub.messages), 2)
	testutil.AssertEqual(t, "init to b", pub.messages[0].connID, "b")
	testutil.AssertEqual(t, "joined to a", pub.messages[1].connID, "a")
	testutil.AssertEqual(t, "recorded batches", len(rec.batches), 1)
	testutil.AssertEqual(t, "player count", w.PlayerCount(), 2)
}

func TestWorld_ExecReturnsError(t *testing.T) {
	pub := &recordingPublisher{}
	w := NewWorld(NewStore(), pub)
	boom := errors.New("boom")

	err := w.Exec(context.Background(), func(s *Store, out *events.Outbox) error {
		return boom
	})
	testutil.AssertEqual(t, "error", errors.Is(err, boom), true)

	// The world is usable after a failed unit.
	err = w.Exec(context.Background(), func(s *Store, out *events.Outbox) error { return nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWorld_ExecConcurrent(t *testing.T) {
	pub := &recordingPublisher{}
	store := NewStore()
	_ = store.AddPlayer(newTestPlayer("a", Position{}))
	w := NewWorld(store, pub)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.Exec(context.Background(), func(s *Store, out *events.Outbox) error {
				p := s.Player("a")
				p.X++
				out.Send("a", events.PlayerMoved, p.View())
				return nil
			})
		}()
	}
	wg.Wait()

	testutil.AssertEqual(t, "moves", len(pub.messages), 20)
	for i, m := range pub.messages {
		want := float64(i + 1)
		if !containsX(m.data, want) {
			t.Fatalf("message %d out of order: %s", i, m.data)
		}
	}
}

func containsX(data string, x float64) bool {
	return strings.Contains(data, `"x":`+strconv.FormatFloat(x, 'f', -1, 64)+`,`)
}
