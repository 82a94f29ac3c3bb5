package poller_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	poller "github.com/Calvinmuemah/ComradeKejani-sub001/internal/adapters/poller"
	"github.com/Calvinmuemah/ComradeKejani-sub001/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	m.Run()
}

func TestTick(t *testing.T) {
	Convey("Given a scheduler driven manually", t, func() {
		ctx := context.Background()

		Convey("When ticking while no cycle is in flight", func() {
			var calls int
			s := poller.New(func(context.Context) error {
				calls++
				return nil
			})

			ran := s.Tick(ctx)

			Convey("Then the cycle runs", func() {
				So(ran, ShouldBeTrue)
				So(calls, ShouldEqual, 1)
				So(s.State(), ShouldEqual, poller.StateIdle)
			})
		})

		Convey("When a tick lands while a cycle is outstanding", func() {
			started := make(chan struct{})
			release := make(chan struct{})
			s := poller.New(func(context.Context) error {
				close(started)
				<-release
				return nil
			})

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.Tick(ctx)
			}()
			<-started

			Convey("Then the overlapping tick is a no-op", func() {
				So(s.State(), ShouldEqual, poller.StatePolling)
				So(s.Tick(ctx), ShouldBeFalse)
				close(release)
				wg.Wait()
				So(s.State(), ShouldEqual, poller.StateIdle)
			})
		})

		Convey("When a cycle fails", func() {
			boom := errors.New("snapshot fetch failed")
			s := poller.New(func(context.Context) error { return boom })

			So(s.Tick(ctx), ShouldBeTrue)

			Convey("Then the guard clears and the next tick retries", func() {
				So(s.State(), ShouldEqual, poller.StateIdle)
				So(s.Tick(ctx), ShouldBeTrue)
			})
		})
	})
}

func TestStartStop(t *testing.T) {
	Convey("Given a started scheduler with a short interval", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ticks := make(chan struct{}, 16)
		s := poller.New(func(context.Context) error {
			select {
			case ticks <- struct{}{}:
			default:
			}
			return nil
		}, poller.WithInterval(5*time.Millisecond))

		s.Start(ctx)

		Convey("When letting it run briefly", func() {
			// Immediate cycle plus at least one scheduled tick.
			<-ticks
			<-ticks

			Convey("Then Stop halts the loop", func() {
				s.Stop()
				select {
				case <-s.Done():
				case <-time.After(time.Second):
					So("loop did not stop", ShouldBeEmpty)
				}
				// Idempotent.
				s.Stop()
			})
		})
	})
}
