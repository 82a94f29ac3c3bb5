package aggregate

import (
	"github.com/Calvinmuemah/ComradeKejani-sub001/pkg/logger"
)

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithFanout bounds how many listings have lookups in flight at once.
func WithFanout(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.fanout = n
		}
	}
}

// WithLogger sets a custom logger for the aggregator.
func WithLogger(l logger.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}
