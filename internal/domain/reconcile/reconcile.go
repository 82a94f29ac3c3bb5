// Package reconcile merges freshly fetched listing snapshots into the
// previously held ordered collection.
//
// The merge never reorders previously known listings and never drops a
// listing merely because one snapshot omitted it; a transient fetch gap must
// not read as a deletion. New listings append at the tail so a user's scan
// position stays stable across polls.
package reconcile

import (
	model "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/model"
)

// Result is the outcome of one reconciliation.
type Result struct {
	// Merged is the updated collection: previous order preserved, field-level
	// overwrites applied, additions appended at the tail.
	Merged []model.Listing

	// Added lists listings whose id was not previously known, in snapshot
	// order.
	Added []model.Listing

	// Changed reports whether anything visible happened. When false the
	// caller must skip all downstream work.
	Changed bool
}

// Merge reconciles incoming against previous. Pure: neither input slice is
// mutated.
func Merge(previous, incoming []model.Listing) Result {
	known := make(map[string]int, len(previous))
	for i, l := range previous {
		known[l.ID] = i
	}

	latest := make(map[string]model.Listing, len(incoming))
	var added []model.Listing
	for _, l := range incoming {
		latest[l.ID] = l
		if _, ok := known[l.ID]; !ok {
			added = append(added, l)
		}
	}

	merged := make([]model.Listing, 0, len(previous)+len(added))
	for _, prev := range previous {
		if cur, ok := latest[prev.ID]; ok {
			merged = append(merged, cur)
		} else {
			// Absent from this snapshot; keep the held version.
			merged = append(merged, prev)
		}
	}
	merged = append(merged, added...)

	return Result{
		Merged:  merged,
		Added:   added,
		Changed: len(added) > 0 || len(incoming) != len(previous),
	}
}
