package driver

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = 50 * time.Millisecond
)

type Ticker interface {
	Tick(context.Context) error
}

// Driver calls its tickers at a fixed rate. A tick that runs past its budget
// is logged; the next tick is not skipped.
type Driver struct {
	tickLength time.Duration
	tickers    []Ticker
	now        func() time.Time
}

func NewDriver(tickers []Ticker, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		tickers:    tickers,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

func (d *Driver) Tick(ctx context.Context) error {
	start := d.now()
	for _, t := range d.tickers {
		if err := t.Tick(ctx); err != nil {
			return err
		}
	}

	if elapsed := d.now().Sub(start); elapsed > d.tickLength {
		slog.WarnContext(ctx, "tick overran its budget", "elapsed", elapsed, "budget", d.tickLength)
	}
	return nil
}
