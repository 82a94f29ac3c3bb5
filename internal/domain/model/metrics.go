package model

import "time"

// Metric holds the engagement counters for one listing. Metrics are
// ephemeral: rebuilt on every refresh and never authoritative, so a failed
// fetch simply leaves the zero value.
type Metric struct {
	Views         int `json:"views"`
	LandlordViews int `json:"landlordViews"`
}

// HistoryEvent records a change in a listing's counters between two
// observations. Deltas are clamped at zero: counters are assumed
// monotonically non-decreasing, so a reset never produces a negative delta.
type HistoryEvent struct {
	Timestamp     time.Time `json:"timestamp"`
	ListingID     string    `json:"listingId"`
	Views         int       `json:"views"`
	LandlordViews int       `json:"landlordViews"`
	Reviews       int       `json:"reviews"`
	DeltaViews    int       `json:"deltaViews"`
	DeltaReviews  int       `json:"deltaReviews"`
}

// TimePoint is one bucket of the trend series. Cumulative fields are running
// sums across the ordered sequence, seeded at zero before the first bucket.
type TimePoint struct {
	Label             string `json:"label"`
	ListingDaily      int    `json:"listingDaily"`
	ReviewDaily       int    `json:"reviewDaily"`
	ListingCumulative int    `json:"listingCumulative"`
	ReviewCumulative  int    `json:"reviewCumulative"`
	ViewsDelta        int    `json:"viewsDelta"`
	ViewsCumulative   int    `json:"viewsCumulative"`
}
