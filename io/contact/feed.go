// SPDX-License-Identifier: Unlicense OR MIT

package contact

import (
	"errors"
	"sync"
)

// ErrNotCaptured is returned by Feed.Release for a contact that is not
// currently captured.
var ErrNotCaptured = errors.New("contact: not captured")

// Feed is an in-memory Surface driven directly by the caller. It is
// intended for tests and for hosts that translate their own input
// events into contact events.
//
// The zero value is ready to use.
type Feed struct {
	mu         sync.Mutex
	handler    Handler
	suppressed bool
	captured   map[ID]struct{}
}

// Push delivers events to the registered handler, one at a time, in
// order. Events pushed while no handler is registered are dropped.
func (f *Feed) Push(events ...Event) {
	for _, e := range events {
		f.mu.Lock()
		h := f.handler
		f.mu.Unlock()
		if h != nil {
			h(e)
		}
	}
}

func (f *Feed) SetHandler(h Handler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handler = h
}

func (f *Feed) SetGesturesSuppressed(s bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suppressed = s
}

// GesturesSuppressed reports the last value passed to
// SetGesturesSuppressed.
func (f *Feed) GesturesSuppressed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.suppressed
}

func (f *Feed) Capture(id ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.captured == nil {
		f.captured = make(map[ID]struct{})
	}
	f.captured[id] = struct{}{}
	return nil
}

func (f *Feed) Release(id ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.captured[id]; !ok {
		return ErrNotCaptured
	}
	delete(f.captured, id)
	return nil
}

// Captured reports whether id is currently captured.
func (f *Feed) Captured(id ID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.captured[id]
	return ok
}
