// Package app provides the listing sync engine behind the admin dashboard.
//
// The engine keeps a locally held, ordered collection of listings eventually
// consistent with the backend by polling, refreshes per-listing engagement
// metrics when - and only when - the collection or the review list actually
// changed, derives a bounded history of metric deltas, and serves
// time-bucketed trend series plus display state to the HTTP layer.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	poller "github.com/Calvinmuemah/ComradeKejani-sub001/internal/adapters/poller"
	source "github.com/Calvinmuemah/ComradeKejani-sub001/internal/adapters/source"
	aggregate "github.com/Calvinmuemah/ComradeKejani-sub001/internal/aggregate"
	history "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/history"
	model "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/model"
	reconcile "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/reconcile"
	timeseries "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/timeseries"
	view "github.com/Calvinmuemah/ComradeKejani-sub001/internal/view"
	"github.com/Calvinmuemah/ComradeKejani-sub001/pkg/logger"
	"github.com/Calvinmuemah/ComradeKejani-sub001/pkg/metrics"
)

// Entry is one listing as served to the display layer.
type Entry struct {
	model.Listing
	Metrics model.Metric `json:"metrics"`
	New     bool         `json:"new"`
}

// reviewSignature is a cheap change detector for the review list.
type reviewSignature struct {
	count  int
	latest time.Time
}

// Engine owns the held collection and all derived state. State is mutated
// only from within poll cycles, which the scheduler guarantees never
// overlap; read accessors take copies under the lock.
type Engine struct {
	mu sync.RWMutex

	client     source.Client
	aggregator *aggregate.Aggregator
	scheduler  *poller.Scheduler
	historyLog *history.Log
	highlights *view.HighlightSet
	notices    *view.Board

	listings  []model.Listing
	counts    map[string]model.Metric
	reviews   []model.Review
	reviewSig reviewSignature
	lastPoll  time.Time

	// Configuration
	pollInterval  time.Duration
	fanout        int
	retention     time.Duration
	dwell         time.Duration
	noticeTTL     time.Duration
	now           func() time.Time

	started bool
	logger  logger.Logger
}

// New constructs an engine over the given backend client.
func New(client source.Client, opts ...Option) *Engine {
	e := &Engine{
		client:       client,
		counts:       make(map[string]model.Metric),
		pollInterval: 3 * time.Second,
		fanout:       8,
		retention:    7 * 24 * time.Hour,
		dwell:        4 * time.Second,
		noticeTTL:    5 * time.Second,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logger.Get().Named("engine")
	}

	e.aggregator = aggregate.New(client,
		aggregate.WithFanout(e.fanout),
		aggregate.WithLogger(e.logger),
	)
	e.historyLog = history.NewLog(history.WithRetention(e.retention))
	e.highlights = view.NewHighlightSet(view.WithDwell(e.dwell))
	e.notices = view.NewBoard(view.WithNoticeTTL(e.noticeTTL), view.WithClock(e.now))
	e.scheduler = poller.New(e.cycle,
		poller.WithInterval(e.pollInterval),
		poller.WithLogger(e.logger),
	)

	return e
}

// Start launches the polling loop.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return nil
	}

	e.logger.Info(ctx, "starting sync engine",
		logger.Any("pollInterval", e.pollInterval),
		logger.Int("metricFanout", e.fanout),
	)

	e.scheduler.Start(ctx)
	e.started = true
	return nil
}

// Stop prevents future cycles and clears display timers. An outstanding
// cycle finishes and applies its result once.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		return
	}

	e.scheduler.Stop()
	e.highlights.Stop()
	e.started = false
	e.logger.Info(context.Background(), "sync engine stopped")
}

// Refresh runs one cycle now unless one is already in flight. Returns
// whether a cycle ran.
func (e *Engine) Refresh(ctx context.Context) bool {
	return e.scheduler.Tick(ctx)
}

// cycle is one fetch -> reconcile -> aggregate -> record pass. A snapshot
// fetch failure aborts the cycle with held state untouched; the next tick
// retries.
func (e *Engine) cycle(ctx context.Context) error {
	snapshot, err := e.client.Listings(ctx)
	if err != nil {
		return fmt.Errorf("snapshot fetch: %w", err)
	}

	reviews, reviewsErr := e.client.Reviews(ctx)
	if reviewsErr != nil {
		// Reviews are a dependent input, not the collection itself: keep the
		// held list and carry on with the snapshot.
		e.logger.Warn(ctx, "review fetch failed; keeping held reviews", logger.Error(reviewsErr))
	}

	e.mu.Lock()
	res := reconcile.Merge(e.listings, snapshot)
	e.listings = res.Merged

	reviewsChanged := false
	if reviewsErr == nil {
		sig := signatureOf(reviews)
		reviewsChanged = sig != e.reviewSig
		e.reviews = reviews
		e.reviewSig = sig
	}
	heldReviews := e.reviews
	e.lastPoll = e.now()
	e.mu.Unlock()

	metrics.UpdateTrackedListings(len(res.Merged))

	if res.Changed {
		metrics.RecordReconcileChange()
		if len(res.Added) > 0 {
			ids := make([]string, len(res.Added))
			for i, l := range res.Added {
				ids[i] = l.ID
			}
			e.highlights.Add(ids...)
			e.notices.Push(view.LevelNewListings, arrivalMessage(len(ids)))
			metrics.RecordListingsAdded(len(ids))
			e.logger.Info(ctx, "new listings observed", logger.Int("count", len(ids)))
		}
	}

	// The anti-thrash invariant: no downstream work unless the collection's
	// content or the review list moved.
	if !res.Changed && !reviewsChanged {
		return nil
	}

	counts := e.aggregator.Fetch(ctx, res.Merged)
	e.historyLog.Record(counts, reviewCountsByListing(heldReviews), e.now())

	e.mu.Lock()
	e.counts = counts
	e.mu.Unlock()

	return nil
}

// ConfirmDelete removes a listing after an explicit, user-confirmed delete
// and schedules an immediate background refresh. Mere absence from a
// snapshot never deletes; this is the only removal path.
func (e *Engine) ConfirmDelete(ctx context.Context, id string) error {
	e.mu.Lock()
	idx := -1
	for i, l := range e.listings {
		if l.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrListingNotFound, id)
	}
	e.listings = append(e.listings[:idx], e.listings[idx+1:]...)
	delete(e.counts, id)
	tracked := len(e.listings)
	e.mu.Unlock()

	metrics.UpdateTrackedListings(tracked)
	e.notices.Push(view.LevelInfo, "listing removed")
	e.logger.Info(ctx, "listing deleted on confirmation", logger.String("listingID", id))

	go e.Refresh(context.WithoutCancel(ctx))
	return nil
}

// Listings returns the collection sorted and filtered for display, with
// per-listing metrics and highlight flags attached.
func (e *Engine) Listings(key view.SortKey, dir view.Direction, query string) []Entry {
	e.mu.RLock()
	listings := make([]model.Listing, len(e.listings))
	copy(listings, e.listings)
	counts := make(map[string]model.Metric, len(e.counts))
	for k, v := range e.counts {
		counts[k] = v
	}
	e.mu.RUnlock()

	sorted := view.Apply(listings, counts, key, dir, query)
	entries := make([]Entry, len(sorted))
	for i, l := range sorted {
		entries[i] = Entry{
			Listing: l,
			Metrics: counts[l.ID],
			New:     e.highlights.Contains(l.ID),
		}
	}
	return entries
}

// Series returns the trend series for a chart range.
func (e *Engine) Series(r timeseries.Range) []model.TimePoint {
	e.mu.RLock()
	listings := make([]model.Listing, len(e.listings))
	copy(listings, e.listings)
	reviews := make([]model.Review, len(e.reviews))
	copy(reviews, e.reviews)
	e.mu.RUnlock()

	return timeseries.BuildRange(r, listings, reviews, e.historyLog.Events(), e.now())
}

// Notices returns the active transient notices.
func (e *Engine) Notices() []view.Notice {
	return e.notices.Active()
}

// Highlights returns the ids currently flagged as new.
func (e *Engine) Highlights() []string {
	return e.highlights.Active()
}

// GetStats returns engine statistics for monitoring.
func (e *Engine) GetStats() map[string]interface{} {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return map[string]interface{}{
		"started":         e.started,
		"trackedListings": len(e.listings),
		"reviewCount":     len(e.reviews),
		"historySize":     e.historyLog.Size(),
		"pollerState":     e.scheduler.State().String(),
		"lastPoll":        e.lastPoll,
	}
}

func signatureOf(reviews []model.Review) reviewSignature {
	sig := reviewSignature{count: len(reviews)}
	for _, r := range reviews {
		if r.CreatedAt.After(sig.latest) {
			sig.latest = r.CreatedAt
		}
	}
	return sig
}

func reviewCountsByListing(reviews []model.Review) map[string]int {
	counts := make(map[string]int, len(reviews))
	for _, r := range reviews {
		counts[r.ListingID]++
	}
	return counts
}

func arrivalMessage(n int) string {
	if n == 1 {
		return "1 new listing"
	}
	return fmt.Sprintf("%d new listings", n)
}
