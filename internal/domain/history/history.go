// Package history maintains the bounded log of per-listing metric deltas.
//
// The log is the only source of truth for "last observed" values: the latest
// event per listing, by append order, is what new observations are compared
// against. Events older than the retention window are discarded on every
// recording cycle.
package history

import (
	"sort"
	"sync"
	"time"

	model "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/model"
	"github.com/Calvinmuemah/ComradeKejani-sub001/pkg/metrics"
)

const defaultRetention = 7 * 24 * time.Hour

// Log is an in-memory, mutex-guarded event log with a sliding retention
// window.
type Log struct {
	mu        sync.RWMutex
	events    []model.HistoryEvent
	retention time.Duration
}

// NewLog creates a history log with configuration options.
func NewLog(opts ...Option) *Log {
	l := &Log{
		retention: defaultRetention,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Record compares the current observation against the latest recorded values
// per listing and appends an event for every listing whose counters moved,
// plus a baseline event for every listing seen for the first time. It then
// prunes expired events and returns the appended events in append order.
//
// Deltas are clamped at zero; a counter reset records a zero delta, never a
// negative one.
func (l *Log) Record(current map[string]model.Metric, reviewCounts map[string]int, now time.Time) []model.HistoryEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	latest := l.latestLocked()

	// Sorted ids keep append order deterministic across cycles.
	ids := make([]string, 0, len(current))
	for id := range current {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var appended []model.HistoryEvent
	for _, id := range ids {
		cur := current[id]
		reviews := reviewCounts[id]

		prior, seen := latest[id]
		deltaViews := cur.Views
		deltaReviews := reviews
		if seen {
			deltaViews = clampNonNegative(cur.Views - prior.Views)
			deltaReviews = clampNonNegative(reviews - prior.Reviews)
			if deltaViews == 0 && deltaReviews == 0 {
				continue
			}
		}

		appended = append(appended, model.HistoryEvent{
			Timestamp:     now,
			ListingID:     id,
			Views:         cur.Views,
			LandlordViews: cur.LandlordViews,
			Reviews:       reviews,
			DeltaViews:    deltaViews,
			DeltaReviews:  deltaReviews,
		})
	}

	l.events = append(l.events, appended...)
	l.pruneLocked(now)

	metrics.RecordHistoryEvents(len(appended))
	metrics.UpdateHistorySize(len(l.events))

	return appended
}

// Prune discards events older than the retention window relative to now.
// Pruning is idempotent.
func (l *Log) Prune(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pruneLocked(now)
	metrics.UpdateHistorySize(len(l.events))
}

// Events returns a copy of the retained events in append order.
func (l *Log) Events() []model.HistoryEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.HistoryEvent, len(l.events))
	copy(out, l.events)
	return out
}

// Size returns the number of retained events.
func (l *Log) Size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// latestLocked resolves the most recent observation per listing from the log
// itself, last write winning by append order.
func (l *Log) latestLocked() map[string]model.HistoryEvent {
	latest := make(map[string]model.HistoryEvent, len(l.events))
	for _, e := range l.events {
		latest[e.ListingID] = e
	}
	return latest
}

func (l *Log) pruneLocked(now time.Time) {
	cutoff := now.Add(-l.retention)
	kept := l.events[:0]
	for _, e := range l.events {
		if !e.Timestamp.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	l.events = kept
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
