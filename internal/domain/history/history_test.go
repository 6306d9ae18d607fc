package history_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	history "github.com/okian/phonepick/internal/domain/history"
	model "github.com/okian/phonepick/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryHistory(t *testing.T) {
	Convey("Given a new in-memory history", t, func() {
		ctx := context.Background()
		key := model.PreferenceQuery{OperatingSystem: model.Android, MaxChargingTimeMinutes: 90}.Key()

		Convey("When nothing has been recorded", func() {
			h := history.NewInMemoryHistory()

			Convey("Then no device is seen and the history is empty", func() {
				So(h.Seen(ctx, key, "PhoneA"), ShouldBeFalse)
				So(h.Size(), ShouldEqual, 0)
				So(h.Keys(), ShouldEqual, 0)
			})
		})

		Convey("When recording a device for a key", func() {
			h := history.NewInMemoryHistory()
			h.Record(ctx, key, "PhoneA")

			Convey("Then it is seen for that key only", func() {
				So(h.Seen(ctx, key, "PhoneA"), ShouldBeTrue)
				So(h.Seen(ctx, key, "PhoneB"), ShouldBeFalse)

				other := model.PreferenceQuery{OperatingSystem: model.IOS, MaxChargingTimeMinutes: 90}.Key()
				So(h.Seen(ctx, other, "PhoneA"), ShouldBeFalse)
			})

			Convey("And recording the same pair again", func() {
				h.Record(ctx, key, "PhoneA")

				Convey("Then the record is idempotent", func() {
					So(h.Seen(ctx, key, "PhoneA"), ShouldBeTrue)
					So(h.Size(), ShouldEqual, 1)
					So(h.Keys(), ShouldEqual, 1)
				})
			})
		})

		Convey("When recording under queries that normalize identically", func() {
			h := history.NewInMemoryHistory()
			a := model.PreferenceQuery{OperatingSystem: model.Android, MaxChargingTimeMinutes: 120}
			b := model.PreferenceQuery{OperatingSystem: model.Android, MaxChargingTimeMinutes: 120.0}

			h.Record(ctx, a.Key(), "PhoneA")

			Convey("Then the other query's key sees the same entry", func() {
				So(h.Seen(ctx, b.Key(), "PhoneA"), ShouldBeTrue)
				So(h.Keys(), ShouldEqual, 1)
			})
		})

		Convey("When many devices are recorded across keys", func() {
			h := history.NewInMemoryHistory(history.WithInitialCapacity(4))

			for i := 0; i < 5; i++ {
				k := model.PreferenceQuery{OperatingSystem: model.IOS, MaxChargingTimeMinutes: float64(60 + i)}.Key()
				h.Record(ctx, k, "PhoneA")
				h.Record(ctx, k, "PhoneB")
			}

			Convey("Then size and key counts add up", func() {
				So(h.Size(), ShouldEqual, 10)
				So(h.Keys(), ShouldEqual, 5)
			})
		})

		Convey("When recording concurrently", func() {
			h := history.NewInMemoryHistory()
			var wg sync.WaitGroup

			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func(n int) {
					defer wg.Done()
					h.Record(ctx, key, fmt.Sprintf("Phone-%d", n))
				}(i)
			}
			wg.Wait()

			Convey("Then every device is recorded exactly once", func() {
				So(h.Size(), ShouldEqual, 10)
				for i := 0; i < 10; i++ {
					So(h.Seen(ctx, key, fmt.Sprintf("Phone-%d", i)), ShouldBeTrue)
				}
			})
		})
	})
}
