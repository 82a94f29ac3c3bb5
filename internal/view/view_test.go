package view_test

import (
	"testing"
	"time"

	model "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/model"
	view "github.com/Calvinmuemah/ComradeKejani-sub001/internal/view"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDirectionCycle(t *testing.T) {
	Convey("Given the tri-state sort direction", t, func() {
		Convey("Then it cycles none -> asc -> desc -> none", func() {
			So(view.DirNone.Cycle(), ShouldEqual, view.DirAsc)
			So(view.DirAsc.Cycle(), ShouldEqual, view.DirDesc)
			So(view.DirDesc.Cycle(), ShouldEqual, view.DirNone)
		})
	})
}

func TestApply(t *testing.T) {
	Convey("Given a reconciled collection with metrics", t, func() {
		listings := []model.Listing{
			{ID: "a", Title: "Bedsitter in Kahawa", Price: 6500, UpdatedAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Location: model.Location{Estate: "Kahawa Wendani"}},
			{ID: "b", Title: "One bedroom", Price: 12000, UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Location: model.Location{Estate: "Zimmerman"}},
			{ID: "c", Title: "Studio", Price: 9000, UpdatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Location: model.Location{Estate: "Kahawa Sukari"}},
		}
		counts := map[string]model.Metric{
			"a": {Views: 3},
			"b": {Views: 9},
			"c": {Views: 1},
		}

		Convey("When no sort is selected the reconciled order holds", func() {
			got := view.Apply(listings, counts, view.SortNone, view.DirNone, "")
			So(idsOf(got), ShouldResemble, []string{"a", "b", "c"})
		})

		Convey("When sorting by price ascending", func() {
			got := view.Apply(listings, counts, view.SortPrice, view.DirAsc, "")
			So(idsOf(got), ShouldResemble, []string{"a", "c", "b"})
		})

		Convey("When sorting by price descending", func() {
			got := view.Apply(listings, counts, view.SortPrice, view.DirDesc, "")
			So(idsOf(got), ShouldResemble, []string{"b", "c", "a"})
		})

		Convey("When sorting by update time ascending", func() {
			got := view.Apply(listings, counts, view.SortUpdated, view.DirAsc, "")
			So(idsOf(got), ShouldResemble, []string{"b", "c", "a"})
		})

		Convey("When sorting by derived view count descending", func() {
			got := view.Apply(listings, counts, view.SortViews, view.DirDesc, "")
			So(idsOf(got), ShouldResemble, []string{"b", "a", "c"})
		})

		Convey("When a sort key has direction none the order holds", func() {
			got := view.Apply(listings, counts, view.SortPrice, view.DirNone, "")
			So(idsOf(got), ShouldResemble, []string{"a", "b", "c"})
		})

		Convey("When filtering by estate, case-insensitively", func() {
			got := view.Apply(listings, counts, view.SortNone, view.DirNone, "kahawa")
			So(idsOf(got), ShouldResemble, []string{"a", "c"})
		})

		Convey("When filtering by title substring", func() {
			got := view.Apply(listings, counts, view.SortNone, view.DirNone, "ONE BED")
			So(idsOf(got), ShouldResemble, []string{"b"})
		})

		Convey("When filter and sort combine", func() {
			got := view.Apply(listings, counts, view.SortPrice, view.DirDesc, "kahawa")
			So(idsOf(got), ShouldResemble, []string{"c", "a"})
		})

		Convey("And the input collection is never mutated", func() {
			view.Apply(listings, counts, view.SortPrice, view.DirDesc, "")
			So(idsOf(listings), ShouldResemble, []string{"a", "b", "c"})
		})
	})
}

func TestParseSort(t *testing.T) {
	Convey("Given query-string sort selectors", t, func() {
		Convey("Then valid selectors parse", func() {
			key, dir, err := view.ParseSort("price", "desc")
			So(err, ShouldBeNil)
			So(key, ShouldEqual, view.SortPrice)
			So(dir, ShouldEqual, view.DirDesc)

			key, dir, err = view.ParseSort("", "")
			So(err, ShouldBeNil)
			So(key, ShouldEqual, view.SortNone)
			So(dir, ShouldEqual, view.DirNone)
		})

		Convey("Then unknown selectors are rejected", func() {
			_, _, err := view.ParseSort("rating", "asc")
			So(err, ShouldNotBeNil)
			_, _, err = view.ParseSort("price", "sideways")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestHighlightSet(t *testing.T) {
	Convey("Given a highlight set with a short dwell", t, func() {
		h := view.NewHighlightSet(view.WithDwell(30 * time.Millisecond))

		Convey("When ids are added", func() {
			h.Add("b", "a")

			Convey("Then they are active and sorted", func() {
				So(h.Active(), ShouldResemble, []string{"a", "b"})
				So(h.Contains("a"), ShouldBeTrue)
			})

			Convey("Then they expire after the dwell time", func() {
				time.Sleep(80 * time.Millisecond)
				So(h.Active(), ShouldBeEmpty)
				So(h.Contains("a"), ShouldBeFalse)
			})
		})

		Convey("When the set is stopped", func() {
			h.Add("a")
			h.Stop()

			Convey("Then highlights clear and additions are rejected", func() {
				So(h.Active(), ShouldBeEmpty)
				h.Add("b")
				So(h.Active(), ShouldBeEmpty)
			})
		})
	})
}

func TestBoard(t *testing.T) {
	Convey("Given a notice board on a fake clock", t, func() {
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		clock := func() time.Time { return now }
		b := view.NewBoard(view.WithNoticeTTL(5*time.Second), view.WithClock(clock))

		Convey("When a notice is pushed", func() {
			n := b.Push(view.LevelNewListings, "2 new listings")

			Convey("Then it is active with an id and timestamp", func() {
				So(n.ID, ShouldNotBeEmpty)
				So(n.CreatedAt, ShouldEqual, now)
				active := b.Active()
				So(active, ShouldHaveLength, 1)
				So(active[0].Message, ShouldEqual, "2 new listings")
			})

			Convey("Then it expires once the clock passes the TTL", func() {
				now = now.Add(6 * time.Second)
				So(b.Active(), ShouldBeEmpty)
			})

			Convey("And newer notices outlive older ones", func() {
				now = now.Add(3 * time.Second)
				b.Push(view.LevelInfo, "refreshed")
				now = now.Add(3 * time.Second)
				active := b.Active()
				So(active, ShouldHaveLength, 1)
				So(active[0].Level, ShouldEqual, view.LevelInfo)
			})
		})
	})
}

func idsOf(listings []model.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}
