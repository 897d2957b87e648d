package messaging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"
)

// RedisBus fans events out through an external Redis server, one pub/sub
// channel per connection.
type RedisBus struct {
	client *redis.Client
	ready  chan struct{}
}

func NewRedisBus(opts *redis.Options) *RedisBus {
	return &RedisBus{
		client: redis.NewClient(opts),
		ready:  make(chan struct{}),
	}
}

func (b *RedisBus) Start(ctx context.Context) error {
	if err := b.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis at %s: %w", b.client.Options().Addr, err)
	}
	close(b.ready)

	slog.InfoContext(ctx, "redis bus connected", "addr", b.client.Options().Addr)

	<-ctx.Done()
	if err := b.client.Close(); err != nil {
		slog.WarnContext(ctx, "closing redis client", "error", err)
	}
	return nil
}

// WaitReady blocks until the bus accepts subscriptions or ctx ends.
func (b *RedisBus) WaitReady(ctx context.Context) error {
	select {
	case <-b.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *RedisBus) started() bool {
	select {
	case <-b.ready:
		return true
	default:
		return false
	}
}

func (b *RedisBus) Publish(connID string, data []byte) error {
	if !b.started() {
		return fmt.Errorf("redis bus not started")
	}
	return b.client.Publish(context.Background(), ConnSubject(connID), data).Err()
}

// Subscribe returns once Redis has confirmed the subscription.
func (b *RedisBus) Subscribe(connID string, handler func(data []byte)) (func(), error) {
	if !b.started() {
		return nil, fmt.Errorf("redis bus not started")
	}

	ctx := context.Background()
	subject := ConnSubject(connID)
	ps := b.client.Subscribe(ctx, subject)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribing to %s: %w", subject, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range ps.Channel() {
			handler([]byte(msg.Payload))
		}
	}()

	return func() {
		_ = ps.Close()
		<-done
	}, nil
}
