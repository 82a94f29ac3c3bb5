package history

import "time"

// Option applies a configuration option to the Log.
type Option func(*Log)

// WithRetention sets the sliding retention window for events.
func WithRetention(retention time.Duration) Option {
	return func(l *Log) {
		if retention > 0 {
			l.retention = retention
		}
	}
}
