package catalog_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	catalog "github.com/okian/phonepick/internal/catalog"
	model "github.com/okian/phonepick/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseChargingTime(t *testing.T) {
	Convey("Given raw charging-time fields", t, func() {
		Convey("When the field is well-formed", func() {
			cases := map[string]int{
				"1h 30min": 90,
				"2h":       120,
				"0h 45min": 45,
				"0h":       0,
				"3h 5min":  185,
				" 1h 30min ": 90,
			}

			Convey("Then it should normalize to minutes", func() {
				for raw, want := range cases {
					got, err := catalog.ParseChargingTime(raw)
					So(err, ShouldBeNil)
					So(got, ShouldEqual, want)
				}
			})
		})

		Convey("When the field is malformed", func() {
			for _, raw := range []string{
				"abc",
				"",
				"90",
				"90min",
				"xh 30min",
				"1h xmin",
				"1h 30",
				"1h 30min extra",
			} {
				_, err := catalog.ParseChargingTime(raw)

				Convey("Then it should reject "+raw, func() {
					So(err, ShouldNotBeNil)
					So(errors.Is(err, catalog.ErrChargingTimeFormat), ShouldBeTrue)
				})
			}
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given raw catalog text", t, func() {
		Convey("When loading a header plus three records with one short line", func() {
			raw := strings.Join([]string{
				"device,charging,os",
				"Galaxy S21,1h 30min,Android",
				"broken line,2h",
				"iPhone 13,2h 10min,iOS",
			}, "\n")

			phones, err := catalog.Load(strings.NewReader(raw))

			Convey("Then the short line is dropped and order is preserved", func() {
				So(err, ShouldBeNil)
				So(phones, ShouldHaveLength, 2)
				So(phones[0], ShouldResemble, model.Smartphone{
					DeviceName:          "Galaxy S21",
					ChargingTimeMinutes: 90,
					OperatingSystem:     "Android",
				})
				So(phones[1], ShouldResemble, model.Smartphone{
					DeviceName:          "iPhone 13",
					ChargingTimeMinutes: 130,
					OperatingSystem:     "iOS",
				})
			})
		})

		Convey("When a record has a malformed charging time", func() {
			raw := "device,charging,os\nGalaxy S21,abc,Android\n"
			_, err := catalog.Load(strings.NewReader(raw))

			Convey("Then the load fails with ErrChargingTimeFormat", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, catalog.ErrChargingTimeFormat), ShouldBeTrue)
			})
		})

		Convey("When the input holds only a header", func() {
			phones, err := catalog.Load(strings.NewReader("device,charging,os\n"))

			Convey("Then the catalog is empty without error", func() {
				So(err, ShouldBeNil)
				So(phones, ShouldBeEmpty)
			})
		})

		Convey("When the header itself looks malformed", func() {
			phones, err := catalog.Load(strings.NewReader("just a header\nPixel 8,1h 15min,Android\n"))

			Convey("Then the first line is skipped regardless of shape", func() {
				So(err, ShouldBeNil)
				So(phones, ShouldHaveLength, 1)
				So(phones[0].ChargingTimeMinutes, ShouldEqual, 75)
			})
		})
	})
}

func TestMemoryStore(t *testing.T) {
	Convey("Given a memory store over loaded records", t, func() {
		ctx := context.Background()
		phones := []model.Smartphone{
			{DeviceName: "Galaxy S21", ChargingTimeMinutes: 90, OperatingSystem: "Android"},
			{DeviceName: "iPhone 13", ChargingTimeMinutes: 130, OperatingSystem: "iOS"},
			{DeviceName: "Pixel 8", ChargingTimeMinutes: 75, OperatingSystem: "ANDROID"},
		}
		store := catalog.NewMemoryStore(phones)

		Convey("When reading it back", func() {
			Convey("Then counts and order match the load", func() {
				So(store.Count(ctx), ShouldEqual, 3)
				So(store.All(ctx), ShouldResemble, phones)
			})

			Convey("Then per-OS counts are normalized", func() {
				So(store.CountByOS(ctx), ShouldResemble, map[string]int{
					"ANDROID": 2,
					"IOS":     1,
				})
			})
		})

		Convey("When mutating the slice handed to the store", func() {
			phones[0].DeviceName = "changed"

			Convey("Then the store is unaffected", func() {
				So(store.All(ctx)[0].DeviceName, ShouldEqual, "Galaxy S21")
			})
		})
	})
}
