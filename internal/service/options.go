// Package service wires storage, order rules and the access gate into the
// operations the CLI exposes.
package service

import "time"

type options struct {
	now func() time.Time
}

// Option configures a service.
type Option func(*options)

// WithClock overrides the clock used for "today" and "this month".
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
