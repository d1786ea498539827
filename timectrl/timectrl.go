// Package timectrl drives simulation time according to the configured
// timestep policy.
package timectrl

import (
	"sync"
	"time"
)

// SimClock is an interface for reading simulation time, so consumers can
// depend on a clock abstraction rather than the concrete controller.
type SimClock interface {
	// Now returns the current simulation time.
	Now() time.Time
}

// Policy mirrors the document's timestep policy: a fixed step, or a
// variable step clamped to [Min, Max].
type Policy struct {
	Fixed    time.Duration
	Variable bool
	Min      time.Duration
	Max      time.Duration
}

// TimeController advances simulation time and notifies registered
// listeners on every step. It implements SimClock.
type TimeController struct {
	mu        sync.RWMutex
	StartTime time.Time
	Policy    Policy

	currentTime time.Time

	listeners []func(time.Time)
}

// New constructs a controller starting at start under the given policy.
func New(start time.Time, p Policy) *TimeController {
	return &TimeController{
		StartTime:   start,
		Policy:      p,
		currentTime: start,
	}
}

// Now returns the current simulation time. Implements SimClock.
func (tc *TimeController) Now() time.Time {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.currentTime
}

// SetTime overrides the current simulation time.
func (tc *TimeController) SetTime(t time.Time) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.currentTime = t
}

// AddListener registers a callback invoked on every step with the new
// simulation time. Register listeners before Start.
func (tc *TimeController) AddListener(fn func(time.Time)) {
	tc.listeners = append(tc.listeners, fn)
}

// step returns how far simulation time advances given how long the last
// iteration actually took. The fixed policy ignores elapsed; the variable
// policy clamps it into the configured bounds.
func (tc *TimeController) step(elapsed time.Duration) time.Duration {
	if !tc.Policy.Variable {
		return tc.Policy.Fixed
	}
	if elapsed < tc.Policy.Min {
		return tc.Policy.Min
	}
	if elapsed > tc.Policy.Max {
		return tc.Policy.Max
	}
	return elapsed
}

// Start runs the controller for the specified simulation duration in a
// separate goroutine and returns a channel closed when it finishes.
// A non-positive duration returns an already-closed channel.
func (tc *TimeController) Start(duration time.Duration) <-chan struct{} {
	done := make(chan struct{})
	if duration <= 0 {
		close(done)
		return done
	}

	go func() {
		defer close(done)

		tc.mu.Lock()
		simTime := tc.StartTime
		tc.currentTime = simTime
		tc.mu.Unlock()

		elapsed := time.Duration(0)
		lastIteration := time.Duration(0)

		for elapsed < duration {
			iterStart := time.Now()

			step := tc.step(lastIteration)
			if step <= 0 {
				// A zero fixed step would never terminate.
				return
			}

			simTime = simTime.Add(step)
			elapsed += step

			tc.mu.Lock()
			tc.currentTime = simTime
			tc.mu.Unlock()

			for _, fn := range tc.listeners {
				fn(simTime)
			}

			lastIteration = time.Since(iterStart)
		}
	}()
	return done
}
