package app

import (
	"time"

	"github.com/Calvinmuemah/ComradeKejani-sub001/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPollInterval sets the polling period.
func WithPollInterval(interval time.Duration) Option {
	return func(e *Engine) {
		if interval > 0 {
			e.pollInterval = interval
		}
	}
}

// WithMetricFanout bounds how many listings have metric lookups in flight.
func WithMetricFanout(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.fanout = n
		}
	}
}

// WithHistoryRetention sets the history log's sliding window.
func WithHistoryRetention(retention time.Duration) Option {
	return func(e *Engine) {
		if retention > 0 {
			e.retention = retention
		}
	}
}

// WithHighlightDwell sets how long a new listing stays highlighted.
func WithHighlightDwell(dwell time.Duration) Option {
	return func(e *Engine) {
		if dwell > 0 {
			e.dwell = dwell
		}
	}
}

// WithNoticeTTL sets how long dashboard notices stay active.
func WithNoticeTTL(ttl time.Duration) Option {
	return func(e *Engine) {
		if ttl > 0 {
			e.noticeTTL = ttl
		}
	}
}

// WithClock overrides the engine's time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}
