package command

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-pixelmmo/internal/messaging"
)

type BusDriver string

const (
	BusDriverNats  BusDriver = "nats"
	BusDriverRedis BusDriver = "redis"
)

// eventBus carries encoded events from the world to player sessions.
type eventBus interface {
	Start(ctx context.Context) error
	WaitReady(ctx context.Context) error
	Publish(connID string, data []byte) error
	Subscribe(connID string, handler func(data []byte)) (func(), error)
}

type BusConfig struct {
	Driver BusDriver   `json:"driver"`
	Nats   NatsConfig  `json:"nats"`
	Redis  RedisConfig `json:"redis"`
}

func (c *BusConfig) validate() error {
	switch c.Driver {
	case "", BusDriverNats:
		return c.Nats.validate()
	case BusDriverRedis:
		return c.Redis.validate()
	default:
		return fmt.Errorf("bus: unknown driver %q", c.Driver)
	}
}

func (c *BusConfig) buildBus() (eventBus, error) {
	switch c.Driver {
	case "", BusDriverNats:
		srv, err := c.Nats.buildNatsServer()
		if err != nil {
			return nil, err
		}
		return &natsBus{NatsServer: srv, pub: messaging.NewNatsPublisher(srv)}, nil
	case BusDriverRedis:
		return c.Redis.buildRedisBus(), nil
	default:
		return nil, fmt.Errorf("unknown bus driver %q", c.Driver)
	}
}

type NatsConfig struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	StartTimeout string `json:"start_timeout"`
	MaxPayload   int32  `json:"max_payload"`
}

func (n *NatsConfig) validate() error {
	el := errors.NewErrorList()

	if n.StartTimeout != "" {
		_, err := time.ParseDuration(n.StartTimeout)
		if err != nil {
			el.Add(fmt.Errorf("nats: parsing start_timeout: %w", err))
		}
	}
	if n.MaxPayload < 0 {
		el.Add(fmt.Errorf("nats: max_payload must not be negative"))
	}
	if n.Port < -1 {
		el.Add(fmt.Errorf("nats: port must be -1 (random) or positive"))
	}

	return el.Err()
}

func (n *NatsConfig) buildNatsServer() (*messaging.NatsServer, error) {
	var opts []messaging.NatsServerOpt
	if n.StartTimeout != "" {
		d, err := time.ParseDuration(n.StartTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing start_timeout: %w", err)
		}
		opts = append(opts, messaging.WithStartTimeout(d))
	}
	if n.Host != "" {
		opts = append(opts, messaging.WithHost(n.Host))
	}
	if n.Port != 0 {
		opts = append(opts, messaging.WithPort(n.Port))
	}
	if n.MaxPayload > 0 {
		opts = append(opts, messaging.WithMaxPayload(n.MaxPayload))
	}

	return messaging.NewNatsServer(opts...)
}

// natsBus pairs the embedded server's lifecycle with per-connection routing.
type natsBus struct {
	*messaging.NatsServer
	pub *messaging.NatsPublisher
}

func (b *natsBus) Publish(connID string, data []byte) error {
	return b.pub.Publish(connID, data)
}

func (b *natsBus) Subscribe(connID string, handler func(data []byte)) (func(), error) {
	return b.pub.Subscribe(connID, handler)
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db"`
}

func (r *RedisConfig) validate() error {
	el := errors.NewErrorList()

	if r.Addr == "" {
		el.Add(fmt.Errorf("redis: addr is required"))
	}
	if r.DB < 0 {
		el.Add(fmt.Errorf("redis: db must not be negative"))
	}

	return el.Err()
}

func (r *RedisConfig) buildRedisBus() *messaging.RedisBus {
	return messaging.NewRedisBus(&redis.Options{
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.DB,
	})
}
