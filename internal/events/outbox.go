package events

import (
	"encoding/json"
	"fmt"
)

// Message is a single outbound event. An empty Target means broadcast to
// every connection except Exclude.
type Message struct {
	Target  string
	Exclude string
	Event   string
	Data    any
}

// Broadcast reports whether the message fans out to many connections.
func (m Message) Broadcast() bool {
	return m.Target == ""
}

// Envelope is the wire framing of an event.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Encode marshals the message into its wire envelope.
func (m Message) Encode() ([]byte, error) {
	b, err := json.Marshal(Envelope{Event: m.Event, Data: m.Data})
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", m.Event, err)
	}
	return b, nil
}

// Outbox collects the events produced by one unit of work so they can be
// delivered after the world lock is released.
type Outbox struct {
	msgs []Message
}

// Send queues an event for a single connection.
func (o *Outbox) Send(connID, event string, data any) {
	o.msgs = append(o.msgs, Message{Target: connID, Event: event, Data: data})
}

// Broadcast queues an event for every connection.
func (o *Outbox) Broadcast(event string, data any) {
	o.msgs = append(o.msgs, Message{Event: event, Data: data})
}

// BroadcastExcept queues an event for every connection but one.
func (o *Outbox) BroadcastExcept(exclude, event string, data any) {
	o.msgs = append(o.msgs, Message{Exclude: exclude, Event: event, Data: data})
}

// Messages returns the queued events in emission order.
func (o *Outbox) Messages() []Message {
	return o.msgs
}

// Len returns the number of queued events.
func (o *Outbox) Len() int {
	return len(o.msgs)
}

// Named returns the queued events with the given name.
func (o *Outbox) Named(event string) []Message {
	var out []Message
	for _, m := range o.msgs {
		if m.Event == event {
			out = append(out, m)
		}
	}
	return out
}
