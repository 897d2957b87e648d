package driver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type countingTicker struct {
	calls  int
	err    error
	onTick func()
}

func (c *countingTicker) Tick(context.Context) error {
	c.calls++
	if c.onTick != nil {
		c.onTick()
	}
	return c.err
}

func TestDriver_Tick(t *testing.T) {
	tests := map[string]struct {
		tickers  []*countingTicker
		expCalls []int
		expErr   string
	}{
		"all tickers run in order": {
			tickers:  []*countingTicker{{}, {}},
			expCalls: []int{1, 1},
		},
		"error stops the tick": {
			tickers:  []*countingTicker{{err: errors.New("broken world")}, {}},
			expCalls: []int{1, 0},
			expErr:   "broken world",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var ts []Ticker
			for _, c := range tt.tickers {
				ts = append(ts, c)
			}
			d := NewDriver(ts)

			err := d.Tick(context.Background())
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for i, c := range tt.tickers {
				testutil.AssertEqual(t, "calls", c.calls, tt.expCalls[i])
			}
		})
	}
}

func TestDriver_OverrunDoesNotFail(t *testing.T) {
	now := time.Unix(0, 0)
	slow := &countingTicker{onTick: func() { now = now.Add(time.Second) }}
	d := NewDriver([]Ticker{slow}, WithTickLength(50*time.Millisecond), WithClock(func() time.Time { return now }))

	if err := d.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "calls", slow.calls, 1)
}

func TestDriver_StartStopsOnCancel(t *testing.T) {
	c := &countingTicker{}
	d := NewDriver([]Ticker{c}, WithTickLength(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Start(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("driver did not stop")
	}
}
