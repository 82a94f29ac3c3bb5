package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	app "github.com/Calvinmuemah/ComradeKejani-sub001/internal/app"
	model "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/model"
	timeseries "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/timeseries"
	view "github.com/Calvinmuemah/ComradeKejani-sub001/internal/view"
	"github.com/Calvinmuemah/ComradeKejani-sub001/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	m.Run()
}

// fakeClient is an in-memory backend.
type fakeClient struct {
	mu       sync.Mutex
	listings []model.Listing
	reviews  []model.Review
	views    map[string]int

	failSnapshots bool
	viewCalls     int
}

func (f *fakeClient) Listings(context.Context) ([]model.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSnapshots {
		return nil, errors.New("backend down")
	}
	out := make([]model.Listing, len(f.listings))
	copy(out, f.listings)
	return out, nil
}

func (f *fakeClient) Reviews(context.Context) ([]model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Review, len(f.reviews))
	copy(out, f.reviews)
	return out, nil
}

func (f *fakeClient) ListingViews(_ context.Context, id string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.viewCalls++
	return f.views[id], nil
}

func (f *fakeClient) LandlordViews(context.Context, string) (int, error) {
	return 0, nil
}

func (f *fakeClient) viewCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewCalls
}

func TestEngineCycle(t *testing.T) {
	Convey("Given an engine over a fake backend", t, func() {
		now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
		backend := &fakeClient{
			listings: []model.Listing{
				{ID: "A", Title: "Bedsitter", Price: 6500, CreatedAt: now.Add(-48 * time.Hour)},
				{ID: "B", Title: "One bedroom", Price: 12000, CreatedAt: now.Add(-24 * time.Hour)},
			},
			reviews: []model.Review{
				{ListingID: "A", Rating: 4, CreatedAt: now.Add(-24 * time.Hour)},
			},
			views: map[string]int{"A": 10, "B": 3},
		}
		engine := app.New(backend, app.WithClock(func() time.Time { return now }))
		ctx := context.Background()

		Convey("When the first cycle runs", func() {
			So(engine.Refresh(ctx), ShouldBeTrue)

			Convey("Then the collection, metrics and highlights populate", func() {
				entries := engine.Listings(view.SortNone, view.DirNone, "")
				So(entries, ShouldHaveLength, 2)
				So(entries[0].ID, ShouldEqual, "A")
				So(entries[0].Metrics.Views, ShouldEqual, 10)
				So(entries[0].New, ShouldBeTrue)
				So(engine.Highlights(), ShouldResemble, []string{"A", "B"})
			})

			Convey("Then an arrival notice is posted", func() {
				notices := engine.Notices()
				So(notices, ShouldHaveLength, 1)
				So(notices[0].Level, ShouldEqual, view.LevelNewListings)
				So(notices[0].Message, ShouldEqual, "2 new listings")
			})

			Convey("And an identical second cycle does no downstream work", func() {
				calls := backend.viewCallCount()
				So(engine.Refresh(ctx), ShouldBeTrue)
				So(backend.viewCallCount(), ShouldEqual, calls)
				stats := engine.GetStats()
				So(stats["historySize"], ShouldEqual, 2)
			})

			Convey("And a snapshot failure leaves held state untouched", func() {
				backend.mu.Lock()
				backend.failSnapshots = true
				backend.mu.Unlock()

				So(engine.Refresh(ctx), ShouldBeTrue)
				So(engine.Listings(view.SortNone, view.DirNone, ""), ShouldHaveLength, 2)
			})

			Convey("And a new listing appends at the tail with a fresh notice", func() {
				backend.mu.Lock()
				backend.listings = append(backend.listings, model.Listing{ID: "C", Title: "Studio", Price: 9000, CreatedAt: now})
				backend.views["C"] = 1
				backend.mu.Unlock()

				So(engine.Refresh(ctx), ShouldBeTrue)
				entries := engine.Listings(view.SortNone, view.DirNone, "")
				So(entries, ShouldHaveLength, 3)
				So(entries[2].ID, ShouldEqual, "C")
				So(entries[2].New, ShouldBeTrue)

				messages := []string{}
				for _, n := range engine.Notices() {
					messages = append(messages, n.Message)
				}
				So(messages, ShouldContain, "1 new listing")
			})

			Convey("And a review change alone re-aggregates metrics", func() {
				calls := backend.viewCallCount()
				backend.mu.Lock()
				backend.reviews = append(backend.reviews, model.Review{ListingID: "B", Rating: 5, CreatedAt: now})
				backend.mu.Unlock()

				So(engine.Refresh(ctx), ShouldBeTrue)
				So(backend.viewCallCount(), ShouldBeGreaterThan, calls)
			})

			Convey("And the trend series reflects creations and view deltas", func() {
				points := engine.Series(timeseries.RangeAll)
				So(len(points), ShouldBeGreaterThanOrEqualTo, 2)
				last := points[len(points)-1]
				So(last.ListingCumulative, ShouldEqual, 2)
				So(last.ReviewCumulative, ShouldEqual, 1)
				So(last.ViewsCumulative, ShouldEqual, 13)
			})

			Convey("And the hourly series has exactly 24 points", func() {
				So(engine.Series(timeseries.Range24h), ShouldHaveLength, 24)
			})
		})
	})
}

func TestConfirmDelete(t *testing.T) {
	Convey("Given an engine holding two listings", t, func() {
		now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
		backend := &fakeClient{
			listings: []model.Listing{{ID: "A"}, {ID: "B"}},
			views:    map[string]int{},
		}
		engine := app.New(backend, app.WithClock(func() time.Time { return now }))
		ctx := context.Background()
		So(engine.Refresh(ctx), ShouldBeTrue)

		Convey("When a confirmed delete arrives for a known listing", func() {
			// The backend delete has already happened; the snapshot no longer
			// carries it.
			backend.mu.Lock()
			backend.listings = backend.listings[1:]
			backend.mu.Unlock()

			err := engine.ConfirmDelete(ctx, "A")

			Convey("Then the listing leaves the held collection", func() {
				So(err, ShouldBeNil)
				entries := engine.Listings(view.SortNone, view.DirNone, "")
				So(entries, ShouldHaveLength, 1)
				So(entries[0].ID, ShouldEqual, "B")
			})
		})

		Convey("When the id is unknown", func() {
			err := engine.ConfirmDelete(ctx, "missing")

			Convey("Then the engine reports not found", func() {
				So(errors.Is(err, app.ErrListingNotFound), ShouldBeTrue)
			})
		})

		Convey("When a listing is merely absent from one snapshot", func() {
			backend.mu.Lock()
			backend.listings = backend.listings[1:]
			backend.mu.Unlock()

			So(engine.Refresh(ctx), ShouldBeTrue)

			Convey("Then it is retained, not deleted", func() {
				So(engine.Listings(view.SortNone, view.DirNone, ""), ShouldHaveLength, 2)
			})
		})
	})
}

func TestEngineLifecycle(t *testing.T) {
	Convey("Given a started engine", t, func() {
		backend := &fakeClient{views: map[string]int{}}
		engine := app.New(backend, app.WithPollInterval(10*time.Millisecond))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		So(engine.Start(ctx), ShouldBeNil)
		// Idempotent.
		So(engine.Start(ctx), ShouldBeNil)

		Convey("When it runs briefly and stops", func() {
			time.Sleep(30 * time.Millisecond)
			engine.Stop()
			engine.Stop()

			Convey("Then stats report the stopped state", func() {
				stats := engine.GetStats()
				So(stats["started"], ShouldBeFalse)
			})
		})
	})
}
