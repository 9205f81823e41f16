package services

import "time"

// Option customizes service construction.
type Option func(*BaseService)

// WithClock replaces the service clock. Used by tests to pin time.
func WithClock(now func() time.Time) Option {
	return func(b *BaseService) {
		b.now = now
	}
}

func applyOptions(b *BaseService, opts []Option) {
	for _, opt := range opts {
		opt(b)
	}
}
