// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"sync"
	"time"
)

// Scheduler runs a function once after a delay. It exists so the
// long-press timer can be driven deterministically in tests; the
// default implementation uses the wall clock.
type Scheduler interface {
	// Schedule arranges for fn to run after d. The returned stop
	// function cancels the run if it has not started yet; calling it
	// afterwards is a no-op.
	Schedule(d time.Duration, fn func()) (stop func())
}

// wallScheduler schedules on the wall clock via time.AfterFunc.
type wallScheduler struct{}

func (wallScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// ManualScheduler queues scheduled functions and runs them only when
// Fire is called. It is intended for tests.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []*manualEntry
}

type manualEntry struct {
	fn      func()
	stopped bool
}

func (s *ManualScheduler) Schedule(d time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := &manualEntry{fn: fn}
	s.pending = append(s.pending, e)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		e.stopped = true
	}
}

// Fire runs the oldest pending function that has not been stopped. It
// reports whether one ran.
func (s *ManualScheduler) Fire() bool {
	s.mu.Lock()
	var fn func()
	for len(s.pending) > 0 {
		e := s.pending[0]
		s.pending = s.pending[1:]
		if !e.stopped {
			fn = e.fn
			break
		}
	}
	s.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}
