// Package timeseries buckets listing creations, reviews and view deltas into
// ordered calendar-day or clock-hour points for the trend charts.
package timeseries

import (
	"sort"
	"time"

	model "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/model"
)

const (
	dayLabel  = "2006-01-02"
	hourLabel = "15:00"

	hoursInDay = 24
)

// bucket accumulates per-interval counts before cumulative sums are applied.
type bucket struct {
	listings int
	reviews  int
	views    int
}

// BuildDaily produces one point per distinct calendar day present in any of
// the three inputs, sorted ascending. Cumulative fields are running sums
// seeded at zero before the first day.
func BuildDaily(listings []model.Listing, reviews []model.Review, events []model.HistoryEvent) []model.TimePoint {
	buckets := make(map[string]*bucket)
	get := func(label string) *bucket {
		b, ok := buckets[label]
		if !ok {
			b = &bucket{}
			buckets[label] = b
		}
		return b
	}

	for _, l := range listings {
		ts, ok := l.CreationTime()
		if !ok {
			continue
		}
		get(ts.Format(dayLabel)).listings++
	}
	for _, r := range reviews {
		if r.CreatedAt.IsZero() {
			continue
		}
		get(r.CreatedAt.Format(dayLabel)).reviews++
	}
	for _, e := range events {
		get(e.Timestamp.Format(dayLabel)).views += e.DeltaViews
	}

	labels := make([]string, 0, len(buckets))
	for label := range buckets {
		labels = append(labels, label)
	}
	// Day labels are zero-padded, so lexicographic order is date order.
	sort.Strings(labels)

	points := make([]model.TimePoint, 0, len(labels))
	var cumListings, cumReviews, cumViews int
	for _, label := range labels {
		b := buckets[label]
		cumListings += b.listings
		cumReviews += b.reviews
		cumViews += b.views
		points = append(points, model.TimePoint{
			Label:             label,
			ListingDaily:      b.listings,
			ReviewDaily:       b.reviews,
			ListingCumulative: cumListings,
			ReviewCumulative:  cumReviews,
			ViewsDelta:        b.views,
			ViewsCumulative:   cumViews,
		})
	}
	return points
}

// BuildHourly24 produces exactly 24 points, one per clock hour ending at
// now, each hour covering [hourStart, hourStart+1h). Cumulative sums run
// across the returned points only.
func BuildHourly24(listings []model.Listing, reviews []model.Review, events []model.HistoryEvent, now time.Time) []model.TimePoint {
	end := now.Truncate(time.Hour)
	start := end.Add(-time.Duration(hoursInDay-1) * time.Hour)

	hourIndex := func(ts time.Time) (int, bool) {
		if ts.Before(start) || !ts.Before(end.Add(time.Hour)) {
			return 0, false
		}
		return int(ts.Truncate(time.Hour).Sub(start) / time.Hour), true
	}

	buckets := make([]bucket, hoursInDay)
	for _, l := range listings {
		ts, ok := l.CreationTime()
		if !ok {
			continue
		}
		if i, ok := hourIndex(ts); ok {
			buckets[i].listings++
		}
	}
	for _, r := range reviews {
		if i, ok := hourIndex(r.CreatedAt); ok {
			buckets[i].reviews++
		}
	}
	for _, e := range events {
		if i, ok := hourIndex(e.Timestamp); ok {
			buckets[i].views += e.DeltaViews
		}
	}

	points := make([]model.TimePoint, hoursInDay)
	var cumListings, cumReviews, cumViews int
	for i := range buckets {
		b := buckets[i]
		cumListings += b.listings
		cumReviews += b.reviews
		cumViews += b.views
		points[i] = model.TimePoint{
			Label:             start.Add(time.Duration(i) * time.Hour).Format(hourLabel),
			ListingDaily:      b.listings,
			ReviewDaily:       b.reviews,
			ListingCumulative: cumListings,
			ReviewCumulative:  cumReviews,
			ViewsDelta:        b.views,
			ViewsCumulative:   cumViews,
		}
	}
	return points
}

// BuildRange selects the series for a chart range. The 24h range uses the
// hourly builder; the day ranges re-filter the inputs to the cutoff and
// rebuild the daily series, so cumulative sums start at zero within the
// range. No history recomputation is involved.
func BuildRange(r Range, listings []model.Listing, reviews []model.Review, events []model.HistoryEvent, now time.Time) []model.TimePoint {
	switch r {
	case Range24h:
		return BuildHourly24(listings, reviews, events, now)
	case Range7d:
		return BuildDaily(filterByCutoff(listings, reviews, events, dayStart(now.AddDate(0, 0, -6))))
	case Range30d:
		return BuildDaily(filterByCutoff(listings, reviews, events, dayStart(now.AddDate(0, 0, -29))))
	default:
		return BuildDaily(listings, reviews, events)
	}
}

func dayStart(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}

func filterByCutoff(listings []model.Listing, reviews []model.Review, events []model.HistoryEvent, cutoff time.Time) ([]model.Listing, []model.Review, []model.HistoryEvent) {
	var fl []model.Listing
	for _, l := range listings {
		if ts, ok := l.CreationTime(); ok && !ts.Before(cutoff) {
			fl = append(fl, l)
		}
	}
	var fr []model.Review
	for _, r := range reviews {
		if !r.CreatedAt.Before(cutoff) {
			fr = append(fr, r)
		}
	}
	var fe []model.HistoryEvent
	for _, e := range events {
		if !e.Timestamp.Before(cutoff) {
			fe = append(fe, e)
		}
	}
	return fl, fr, fe
}
