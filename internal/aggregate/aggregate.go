// Package aggregate refreshes per-listing engagement metrics.
//
// Each listing needs two lookups: its own view count and, when an owning
// landlord can be resolved, the landlord view count. Lookups run
// concurrently across listings under a bounded semaphore, and any failure is
// absorbed as a zero record for that listing only; sibling listings are
// unaffected.
package aggregate

import (
	"context"
	"sync"
	"time"

	model "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/model"
	"github.com/Calvinmuemah/ComradeKejani-sub001/pkg/logger"
	"github.com/Calvinmuemah/ComradeKejani-sub001/pkg/metrics"
)

const defaultFanout = 8

// Fetcher is the subset of the backend client the aggregator needs.
type Fetcher interface {
	ListingViews(ctx context.Context, listingID string) (int, error)
	LandlordViews(ctx context.Context, landlordID string) (int, error)
}

// Aggregator fetches metrics for a collection of listings.
type Aggregator struct {
	fetcher Fetcher
	fanout  int
	logger  logger.Logger
}

// New creates an aggregator with configuration options.
func New(fetcher Fetcher, opts ...Option) *Aggregator {
	a := &Aggregator{
		fetcher: fetcher,
		fanout:  defaultFanout,
		logger:  logger.Get().Named("aggregate"),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Fetch retrieves a metric record for every listing in the collection. The
// returned map always has one entry per listing id; failed lookups yield the
// zero record.
func (a *Aggregator) Fetch(ctx context.Context, listings []model.Listing) map[string]model.Metric {
	out := make(map[string]model.Metric, len(listings))
	if len(listings) == 0 {
		return out
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, a.fanout)

	for _, l := range listings {
		wg.Add(1)
		sem <- struct{}{}
		go func(l model.Listing) {
			defer wg.Done()
			defer func() { <-sem }()

			m := a.fetchOne(ctx, l)

			mu.Lock()
			out[l.ID] = m
			mu.Unlock()
		}(l)
	}
	wg.Wait()

	return out
}

// fetchOne issues the listing-view and landlord-view lookups concurrently
// and awaits both. Either lookup failing collapses the record to zero.
func (a *Aggregator) fetchOne(ctx context.Context, l model.Listing) model.Metric {
	start := time.Now()
	defer func() {
		metrics.RecordMetricFetchLatency(float64(time.Since(start).Milliseconds()))
	}()

	var (
		wg            sync.WaitGroup
		views         int
		landlordViews int
		viewsErr      error
		landlordErr   error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		views, viewsErr = a.fetcher.ListingViews(ctx, l.ID)
	}()

	if landlordID, ok := l.Landlord.ID(); ok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			landlordViews, landlordErr = a.fetcher.LandlordViews(ctx, landlordID)
		}()
	}
	wg.Wait()

	if viewsErr != nil || landlordErr != nil {
		err := viewsErr
		if err == nil {
			err = landlordErr
		}
		metrics.RecordMetricFetchError()
		a.logger.Debug(ctx, "metric fetch defaulted to zero",
			logger.String("listingID", l.ID),
			logger.Error(err),
		)
		return model.Metric{}
	}

	return model.Metric{Views: views, LandlordViews: landlordViews}
}
