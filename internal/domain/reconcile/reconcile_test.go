package reconcile_test

import (
	"testing"

	model "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/model"
	reconcile "github.com/Calvinmuemah/ComradeKejani-sub001/internal/domain/reconcile"
	. "github.com/smartystreets/goconvey/convey"
)

func ids(listings []model.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func TestMerge(t *testing.T) {
	Convey("Given a held collection and a fresh snapshot", t, func() {
		previous := []model.Listing{
			{ID: "A", Price: 100},
			{ID: "B", Price: 200},
		}

		Convey("When the snapshot updates one listing and adds another", func() {
			incoming := []model.Listing{
				{ID: "B", Price: 250},
				{ID: "C", Price: 300},
			}
			res := reconcile.Merge(previous, incoming)

			Convey("Then updates apply in place and additions append", func() {
				So(ids(res.Merged), ShouldResemble, []string{"A", "B", "C"})
				So(res.Merged[0].Price, ShouldEqual, 100)
				So(res.Merged[1].Price, ShouldEqual, 250)
				So(res.Merged[2].Price, ShouldEqual, 300)
				So(ids(res.Added), ShouldResemble, []string{"C"})
				So(res.Changed, ShouldBeTrue)
			})

			Convey("And the inputs are not mutated", func() {
				So(previous[1].Price, ShouldEqual, 200)
				So(ids(previous), ShouldResemble, []string{"A", "B"})
			})
		})

		Convey("When the same snapshot is reconciled twice", func() {
			incoming := []model.Listing{
				{ID: "A", Price: 100},
				{ID: "B", Price: 200},
			}
			first := reconcile.Merge(previous, incoming)
			second := reconcile.Merge(first.Merged, incoming)

			Convey("Then the second call reports no change and an identical collection", func() {
				So(second.Changed, ShouldBeFalse)
				So(second.Added, ShouldBeEmpty)
				So(second.Merged, ShouldResemble, first.Merged)
			})
		})

		Convey("When the snapshot shuffles known ids and adds one", func() {
			incoming := []model.Listing{
				{ID: "C", Price: 300},
				{ID: "B", Price: 200},
				{ID: "A", Price: 100},
			}
			res := reconcile.Merge(previous, incoming)

			Convey("Then the prefix keeps the held order and the new id is last", func() {
				So(ids(res.Merged), ShouldResemble, []string{"A", "B", "C"})
				So(res.Changed, ShouldBeTrue)
			})
		})

		Convey("When a listing is momentarily absent from the snapshot", func() {
			incoming := []model.Listing{
				{ID: "A", Price: 110},
			}
			res := reconcile.Merge(previous, incoming)

			Convey("Then the absent listing is retained unchanged", func() {
				So(ids(res.Merged), ShouldResemble, []string{"A", "B"})
				So(res.Merged[1].Price, ShouldEqual, 200)
			})

			Convey("And the length difference still counts as a change", func() {
				So(res.Changed, ShouldBeTrue)
				So(res.Added, ShouldBeEmpty)
			})
		})

		Convey("When both sides are empty", func() {
			res := reconcile.Merge(nil, nil)

			Convey("Then nothing changed", func() {
				So(res.Merged, ShouldBeEmpty)
				So(res.Added, ShouldBeEmpty)
				So(res.Changed, ShouldBeFalse)
			})
		})

		Convey("When the held collection is empty", func() {
			incoming := []model.Listing{{ID: "X"}, {ID: "Y"}}
			res := reconcile.Merge(nil, incoming)

			Convey("Then every listing is an addition in snapshot order", func() {
				So(ids(res.Merged), ShouldResemble, []string{"X", "Y"})
				So(ids(res.Added), ShouldResemble, []string{"X", "Y"})
				So(res.Changed, ShouldBeTrue)
			})
		})
	})
}
