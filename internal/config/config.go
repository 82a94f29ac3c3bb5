// Package config defines service configuration structures and loading hooks.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// BackendURL is the base URL of the CRUD backend the engine polls.
	BackendURL string `koanf:"backend_url"`

	// PollIntervalMS is the polling period in milliseconds.
	PollIntervalMS int `koanf:"poll_interval_ms"`

	// MetricFanout bounds how many listings have metric lookups in flight.
	MetricFanout int `koanf:"metric_fanout"`

	// HistoryRetentionHours bounds the delta-event log's sliding window.
	HistoryRetentionHours int `koanf:"history_retention_hours"`

	// HighlightDwellMS is how long a new listing stays highlighted.
	HighlightDwellMS int `koanf:"highlight_dwell_ms"`

	// NoticeTTLMS is how long dashboard notices stay active.
	NoticeTTLMS int `koanf:"notice_ttl_ms"`

	// RequestTimeoutMS is the per-request timeout against the backend.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":8090",
		BackendURL:            "http://localhost:5000/api/v1",
		PollIntervalMS:        3_000,
		MetricFanout:          8,
		HistoryRetentionHours: 7 * 24,
		HighlightDwellMS:      4_000,
		NoticeTTLMS:           5_000,
		RequestTimeoutMS:      10_000,
	}
}
