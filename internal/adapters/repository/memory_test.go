package repository_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/evpulse/evpulse/internal/adapters/repository"
	"github.com/evpulse/evpulse/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryBatchStore(t *testing.T) {
	Convey("Given an empty batch store", t, func() {
		store := repository.NewMemoryBatchStore()
		ctx := context.Background()

		Convey("Then no batch should be present", func() {
			_, ok := store.Get(ctx)
			So(ok, ShouldBeFalse)
		})

		Convey("When storing an upload", func() {
			batch := repository.UploadBatch{
				ID:         "batch-1",
				Filename:   "fleet.csv",
				Rows:       [][]float64{{1}, {2}},
				RowCount:   2,
				UploadedAt: time.Now().UTC(),
			}
			store.Put(ctx, batch)

			Convey("Then it should be retrievable", func() {
				got, ok := store.Get(ctx)
				So(ok, ShouldBeTrue)
				So(got.ID, ShouldEqual, "batch-1")
				So(got.RowCount, ShouldEqual, 2)
			})

			Convey("And a later upload should replace it", func() {
				store.Put(ctx, repository.UploadBatch{ID: "batch-2", RowCount: 5})
				got, ok := store.Get(ctx)
				So(ok, ShouldBeTrue)
				So(got.ID, ShouldEqual, "batch-2")
			})

			Convey("And clearing should remove it", func() {
				store.Clear(ctx)
				_, ok := store.Get(ctx)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When clearing an already empty store", func() {
			Convey("Then nothing should break", func() {
				So(func() { store.Clear(ctx) }, ShouldNotPanic)
			})
		})
	})
}

func TestMemoryRunStore(t *testing.T) {
	Convey("Given a run store with a small cap", t, func() {
		store := repository.NewMemoryRunStore(repository.WithHistorySize(3))
		ctx := context.Background()

		makeRun := func(i int) model.Run {
			return model.Run{ID: "run-" + strconv.Itoa(i), AvgRULDays: float64(i)}
		}

		Convey("Then it should start empty", func() {
			So(store.Len(ctx), ShouldEqual, 0)
			So(store.Recent(ctx, 10), ShouldBeEmpty)
		})

		Convey("When adding runs within the cap", func() {
			store.Add(ctx, makeRun(1))
			store.Add(ctx, makeRun(2))

			Convey("Then recent should return them newest first", func() {
				runs := store.Recent(ctx, 10)
				So(len(runs), ShouldEqual, 2)
				So(runs[0].ID, ShouldEqual, "run-2")
				So(runs[1].ID, ShouldEqual, "run-1")
			})

			Convey("Then a smaller limit should trim the tail", func() {
				runs := store.Recent(ctx, 1)
				So(len(runs), ShouldEqual, 1)
				So(runs[0].ID, ShouldEqual, "run-2")
			})

			Convey("Then a non-positive limit should return everything", func() {
				So(len(store.Recent(ctx, 0)), ShouldEqual, 2)
				So(len(store.Recent(ctx, -1)), ShouldEqual, 2)
			})
		})

		Convey("When adding more runs than the cap", func() {
			for i := 1; i <= 5; i++ {
				store.Add(ctx, makeRun(i))
			}

			Convey("Then only the newest runs should survive", func() {
				So(store.Len(ctx), ShouldEqual, 3)
				runs := store.Recent(ctx, 10)
				So(runs[0].ID, ShouldEqual, "run-5")
				So(runs[1].ID, ShouldEqual, "run-4")
				So(runs[2].ID, ShouldEqual, "run-3")
			})
		})
	})
}
