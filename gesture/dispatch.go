// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"log"
	"sync"

	"golang.org/x/exp/slices"
)

// dispatcher fans gesture events out to subscribers synchronously, in
// subscription order.
type dispatcher struct {
	mu   sync.Mutex
	next int
	subs []subscription
}

type subscription struct {
	id int
	fn func(Event)
}

// subscribe appends fn and returns a closure that removes exactly that
// subscription. Calling the closure more than once is a no-op.
func (d *dispatcher) subscribe(fn func(Event)) (unsubscribe func()) {
	d.mu.Lock()
	id := d.next
	d.next++
	d.subs = append(d.subs, subscription{id: id, fn: fn})
	d.mu.Unlock()
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if i := d.indexLocked(id); i >= 0 {
			d.subs = slices.Delete(d.subs, i, i+1)
		}
	}
}

// emit delivers e to every currently subscribed callback. Subscribers
// may subscribe, unsubscribe or destroy the recognizer from within
// their callback; alive is consulted before each delivery so a
// mid-fanout Destroy stops the remaining deliveries.
func (d *dispatcher) emit(e Event, alive func() bool) {
	d.mu.Lock()
	snapshot := slices.Clone(d.subs)
	d.mu.Unlock()
	for _, s := range snapshot {
		if alive != nil && !alive() {
			return
		}
		d.mu.Lock()
		gone := d.indexLocked(s.id) < 0
		d.mu.Unlock()
		if gone {
			continue
		}
		deliver(s.fn, e)
	}
}

// deliver isolates a panicking subscriber so its siblings still
// receive the event and the recognizer state is unaffected.
func deliver(fn func(Event), e Event) {
	defer func() {
		if err := recover(); err != nil {
			log.Printf("gesture: subscriber panicked: %v", err)
		}
	}()
	fn(e)
}

func (d *dispatcher) clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs = nil
}

func (d *dispatcher) indexLocked(id int) int {
	return slices.IndexFunc(d.subs, func(s subscription) bool {
		return s.id == id
	})
}
