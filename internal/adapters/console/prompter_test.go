package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	console "github.com/okian/phonepick/internal/adapters/console"
	model "github.com/okian/phonepick/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestReadOperatingSystem(t *testing.T) {
	Convey("Given an OS prompt", t, func() {
		ctx := context.Background()
		var out bytes.Buffer

		Convey("When the first answer is valid", func() {
			p := console.NewPrompter(strings.NewReader("ios\n"), &out)
			os, err := p.ReadOperatingSystem(ctx)

			Convey("Then it returns the normalized OS", func() {
				So(err, ShouldBeNil)
				So(os, ShouldEqual, model.IOS)
			})
		})

		Convey("When the first answer is invalid", func() {
			p := console.NewPrompter(strings.NewReader("foo\nios\n"), &out)
			os, err := p.ReadOperatingSystem(ctx)

			Convey("Then it re-prompts once and returns IOS", func() {
				So(err, ShouldBeNil)
				So(os, ShouldEqual, model.IOS)
				So(strings.Count(out.String(), "Please answer ANDROID or IOS."), ShouldEqual, 1)
				So(strings.Count(out.String(), "Which operating system"), ShouldEqual, 2)
			})
		})

		Convey("When the input stream is already closed", func() {
			p := console.NewPrompter(strings.NewReader(""), &out)
			_, err := p.ReadOperatingSystem(ctx)

			Convey("Then it signals end of input instead of looping", func() {
				So(errors.Is(err, console.ErrEndOfInput), ShouldBeTrue)
			})
		})

		Convey("When the context is cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			p := console.NewPrompter(strings.NewReader("ios\n"), &out)
			_, err := p.ReadOperatingSystem(cancelled)

			Convey("Then the prompt aborts", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, console.ErrEndOfInput), ShouldBeFalse)
			})
		})
	})
}

func TestReadMaxChargingTime(t *testing.T) {
	Convey("Given a charging-time prompt", t, func() {
		ctx := context.Background()
		var out bytes.Buffer

		Convey("When the answer is numeric", func() {
			p := console.NewPrompter(strings.NewReader("90\n"), &out)
			minutes, err := p.ReadMaxChargingTime(ctx)

			Convey("Then it returns the parsed value", func() {
				So(err, ShouldBeNil)
				So(minutes, ShouldEqual, 90.0)
			})
		})

		Convey("When the answer is fractional or negative", func() {
			p := console.NewPrompter(strings.NewReader("87.5\n"), &out)
			minutes, err := p.ReadMaxChargingTime(ctx)
			So(err, ShouldBeNil)
			So(minutes, ShouldEqual, 87.5)

			p = console.NewPrompter(strings.NewReader("-5\n"), &out)
			minutes, err = p.ReadMaxChargingTime(ctx)

			Convey("Then both pass the numeric-only validation", func() {
				So(err, ShouldBeNil)
				So(minutes, ShouldEqual, -5.0)
			})
		})

		Convey("When the answer is not numeric", func() {
			p := console.NewPrompter(strings.NewReader("soon\n120\n"), &out)
			minutes, err := p.ReadMaxChargingTime(ctx)

			Convey("Then it re-prompts and returns the valid value", func() {
				So(err, ShouldBeNil)
				So(minutes, ShouldEqual, 120.0)
				So(out.String(), ShouldContainSubstring, "Please enter a number of minutes.")
			})
		})

		Convey("When the stream closes mid-loop", func() {
			p := console.NewPrompter(strings.NewReader("soon\n"), &out)
			_, err := p.ReadMaxChargingTime(ctx)

			Convey("Then it signals end of input", func() {
				So(errors.Is(err, console.ErrEndOfInput), ShouldBeTrue)
			})
		})
	})
}

func TestConfirm(t *testing.T) {
	Convey("Given a recommendation verdict prompt", t, func() {
		ctx := context.Background()
		var out bytes.Buffer

		Convey("When the user accepts", func() {
			for _, answer := range []string{"yes", "YES", " yes ", "Yes"} {
				p := console.NewPrompter(strings.NewReader(answer+"\n"), &out)
				ok, err := p.Confirm(ctx, "PhoneA")
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
			}

			Convey("Then the device name was presented", func() {
				So(out.String(), ShouldContainSubstring, "PhoneA")
			})
		})

		Convey("When the user answers anything else", func() {
			for _, answer := range []string{"no", "y", "yess", "", "maybe"} {
				p := console.NewPrompter(strings.NewReader(answer+"\n"), &out)
				ok, err := p.Confirm(ctx, "PhoneA")
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			}
		})

		Convey("When the stream closes before a verdict", func() {
			p := console.NewPrompter(strings.NewReader(""), &out)
			_, err := p.Confirm(ctx, "PhoneA")

			Convey("Then it signals end of input", func() {
				So(errors.Is(err, console.ErrEndOfInput), ShouldBeTrue)
			})
		})
	})
}
