package driver

import "time"

type DriverOpt func(*Driver)

func WithTickLength(tickLength time.Duration) DriverOpt {
	return func(d *Driver) {
		d.tickLength = tickLength
	}
}

func WithClock(now func() time.Time) DriverOpt {
	return func(d *Driver) {
		d.now = now
	}
}
