package events

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Publisher delivers an encoded event to one connection.
type Publisher interface {
	Publish(connID string, data []byte) error
}

// Recorder observes every delivered message, e.g. to journal a session.
type Recorder interface {
	Record(ctx context.Context, at time.Time, msgs []Message) error
}

// Deliver encodes each message once and publishes it to its recipients.
// Broadcasts go to every id in conns except the excluded one. Delivery keeps
// going after a failure; all errors are joined.
func Deliver(pub Publisher, msgs []Message, conns []string) error {
	var errs []error
	for _, m := range msgs {
		data, err := m.Encode()
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if !m.Broadcast() {
			if err := pub.Publish(m.Target, data); err != nil {
				errs = append(errs, fmt.Errorf("publishing %s to %s: %w", m.Event, m.Target, err))
			}
			continue
		}

		for _, id := range conns {
			if id == m.Exclude {
				continue
			}
			if err := pub.Publish(id, data); err != nil {
				errs = append(errs, fmt.Errorf("publishing %s to %s: %w", m.Event, id, err))
			}
		}
	}
	return errors.Join(errs...)
}
