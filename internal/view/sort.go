// Package view prepares the reconciled collection for display: tri-state
// sorting, text filtering, "new listing" highlights and transient notices.
package view

import (
	"fmt"
	"sort"
	"strings"

	model "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/model"
)

// SortKey names a sortable column.
type SortKey string

// Sortable columns. SortNone leaves the reconciled order untouched.
const (
	SortNone    SortKey = ""
	SortPrice   SortKey = "price"
	SortUpdated SortKey = "updated"
	SortViews   SortKey = "views"
)

// Direction is the tri-state sort direction.
type Direction int

// Directions cycle none -> ascending -> descending -> none.
const (
	DirNone Direction = iota
	DirAsc
	DirDesc
)

// Cycle advances the tri-state direction.
func (d Direction) Cycle() Direction {
	switch d {
	case DirNone:
		return DirAsc
	case DirAsc:
		return DirDesc
	default:
		return DirNone
	}
}

// ParseSort parses the query-string representation of a sort selection.
func ParseSort(key, dir string) (SortKey, Direction, error) {
	var k SortKey
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "":
		k = SortNone
	case "price":
		k = SortPrice
	case "updated", "updatedat":
		k = SortUpdated
	case "views":
		k = SortViews
	default:
		return SortNone, DirNone, fmt.Errorf("%w: sort %q", ErrBadSelector, key)
	}

	var d Direction
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "none":
		d = DirNone
	case "asc", "ascending":
		d = DirAsc
	case "desc", "descending":
		d = DirDesc
	default:
		return SortNone, DirNone, fmt.Errorf("%w: dir %q", ErrBadSelector, dir)
	}
	return k, d, nil
}

// Apply filters and sorts a copy of the collection. Filtering is a
// case-insensitive substring match over title, estate and landlord name.
// Sorting is stable, so ties keep their reconciled order, and a none
// key/direction returns the filtered collection as held.
func Apply(listings []model.Listing, counts map[string]model.Metric, key SortKey, dir Direction, query string) []model.Listing {
	out := filter(listings, query)
	if key == SortNone || dir == DirNone {
		return out
	}

	less := func(a, b model.Listing) bool { return false }
	switch key {
	case SortPrice:
		less = func(a, b model.Listing) bool { return a.Price < b.Price }
	case SortUpdated:
		less = func(a, b model.Listing) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case SortViews:
		less = func(a, b model.Listing) bool { return counts[a.ID].Views < counts[b.ID].Views }
	}

	sort.SliceStable(out, func(i, j int) bool {
		if dir == DirDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func filter(listings []model.Listing, query string) []model.Listing {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if q == "" || matches(l, q) {
			out = append(out, l)
		}
	}
	return out
}

func matches(l model.Listing, q string) bool {
	if strings.Contains(strings.ToLower(l.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(l.Location.Estate), q) {
		return true
	}
	if name, ok := l.Landlord.Name(); ok && strings.Contains(strings.ToLower(name), q) {
		return true
	}
	return false
}
