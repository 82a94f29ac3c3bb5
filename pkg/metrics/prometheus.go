// Package metrics provides Prometheus metrics for the listing sync engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the sync engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Poll cycle metrics
	pollCycles       prometheus.Counter
	pollSkippedTicks prometheus.Counter
	pollFailures     prometheus.Counter
	pollCycleLatency prometheus.Histogram

	// Reconciliation metrics
	reconcileChanges   prometheus.Counter
	listingsAdded      prometheus.Counter
	trackedListings    prometheus.Gauge

	// Metric aggregation
	metricFetchErrors  prometheus.Counter
	metricFetchLatency prometheus.Histogram

	// History log
	historyEvents prometheus.Counter
	historySize   prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "kejani",
		subsystem:        "sync",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.pollCycles = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "poll_cycles_total",
		Help:      "Total number of completed poll cycles",
	})

	m.pollSkippedTicks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "poll_skipped_ticks_total",
		Help:      "Total number of ticks skipped because a cycle was in flight",
	})

	m.pollFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "poll_failures_total",
		Help:      "Total number of poll cycles that failed to fetch a snapshot",
	})

	m.pollCycleLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "poll_cycle_latency_milliseconds",
		Help:      "Histogram of poll cycle duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.reconcileChanges = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reconcile_changes_total",
		Help:      "Total number of reconciliations that produced a visible change",
	})

	m.listingsAdded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "listings_added_total",
		Help:      "Total number of newly observed listings",
	})

	m.trackedListings = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tracked_listings",
		Help:      "Current number of listings in the reconciled collection",
	})

	m.metricFetchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "metric_fetch_errors_total",
		Help:      "Total number of per-listing metric fetches that defaulted to zero",
	})

	m.metricFetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "metric_fetch_latency_milliseconds",
		Help:      "Histogram of per-listing metric fetch duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.historyEvents = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_events_total",
		Help:      "Total number of delta events appended to the history log",
	})

	m.historySize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_size",
		Help:      "Current number of events retained in the history log",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// Package-level helpers against the global manager.

// RecordPollCycle increments the completed poll cycle counter.
func RecordPollCycle() {
	globalManager.pollCycles.Inc()
}

// RecordPollSkippedTick increments the skipped tick counter.
func RecordPollSkippedTick() {
	globalManager.pollSkippedTicks.Inc()
}

// RecordPollFailure increments the failed cycle counter.
func RecordPollFailure() {
	globalManager.pollFailures.Inc()
}

// RecordPollCycleLatency records a poll cycle duration.
func RecordPollCycleLatency(latencyMs float64) {
	globalManager.pollCycleLatency.Observe(latencyMs)
}

// RecordReconcileChange increments the changed-reconciliation counter.
func RecordReconcileChange() {
	globalManager.reconcileChanges.Inc()
}

// RecordListingsAdded adds to the newly observed listing counter.
func RecordListingsAdded(n int) {
	globalManager.listingsAdded.Add(float64(n))
}

// UpdateTrackedListings sets the reconciled collection size gauge.
func UpdateTrackedListings(n int) {
	globalManager.trackedListings.Set(float64(n))
}

// RecordMetricFetchError increments the zero-defaulted fetch counter.
func RecordMetricFetchError() {
	globalManager.metricFetchErrors.Inc()
}

// RecordMetricFetchLatency records a per-listing metric fetch duration.
func RecordMetricFetchLatency(latencyMs float64) {
	globalManager.metricFetchLatency.Observe(latencyMs)
}

// RecordHistoryEvents adds to the appended event counter.
func RecordHistoryEvents(n int) {
	globalManager.historyEvents.Add(float64(n))
}

// UpdateHistorySize sets the retained history size gauge.
func UpdateHistorySize(n int) {
	globalManager.historySize.Set(float64(n))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
