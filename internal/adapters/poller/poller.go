// Package poller runs the engine's reconciliation cycle on a fixed interval.
//
// At most one cycle is in flight at a time: a tick that lands while a cycle
// is outstanding is a no-op. The guard clears unconditionally when a cycle
// ends, so a single failure never stalls polling. Stopping the scheduler
// prevents future cycles without interrupting one already in flight.
package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Calvinmuemah/ComradeKejani-sub001/pkg/logger"
	"github.com/Calvinmuemah/ComradeKejani-sub001/pkg/metrics"
)

const defaultInterval = 3 * time.Second

// State reports what the scheduler is doing.
type State int32

// Scheduler states.
const (
	StateIdle State = iota
	StatePolling
)

func (s State) String() string {
	if s == StatePolling {
		return "polling"
	}
	return "idle"
}

// Cycle is the unit of work the scheduler drives. A returned error marks the
// cycle failed; it is logged and swallowed, and the next tick retries.
type Cycle func(ctx context.Context) error

// Scheduler owns the polling lifecycle.
type Scheduler struct {
	interval time.Duration
	cycle    Cycle

	inFlight atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// New creates a scheduler for the given cycle with configuration options.
func New(cycle Cycle, opts ...Option) *Scheduler {
	s := &Scheduler{
		interval: defaultInterval,
		cycle:    cycle,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("poller"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start launches the polling loop: one immediate cycle, then one per
// interval until Stop is called or ctx is canceled.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		defer close(s.done)

		s.Tick(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.Tick(ctx)
			}
		}
	}()
}

// Tick runs one cycle now unless one is already in flight, in which case it
// reports false and does nothing. Exposed so tests and the force-refresh
// command can drive cycles without the wall clock.
func (s *Scheduler) Tick(ctx context.Context) bool {
	if !s.inFlight.CompareAndSwap(false, true) {
		metrics.RecordPollSkippedTick()
		return false
	}
	defer s.inFlight.Store(false)

	start := time.Now()
	err := s.cycle(ctx)
	metrics.RecordPollCycleLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordPollCycle()

	if err != nil {
		metrics.RecordPollFailure()
		s.logger.Warn(ctx, "poll cycle failed; held state retained", logger.Error(err))
	}
	return true
}

// Stop prevents future cycles. An outstanding cycle is allowed to complete
// and apply its result once; it is simply not rescheduled. Safe to call more
// than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// Done is closed once the polling loop has exited.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// State reports whether a cycle is currently in flight.
func (s *Scheduler) State() State {
	if s.inFlight.Load() {
		return StatePolling
	}
	return StateIdle
}
