// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"time"

	"golang.org/x/exp/slices"

	"github.com/mikesaintsg/documenta-sub000/f32"
	"github.com/mikesaintsg/documenta-sub000/io/contact"
)

// trackedContact is the recorded state of one active contact, owned by
// the tracker from its Down notification until its Up or Cancel.
type trackedContact struct {
	id     contact.ID
	source contact.Source
	// origin is the position at the Down notification.
	origin f32.Point
	// originTime is the timestamp of the Down notification.
	originTime time.Duration
	// last is the most recently reported position.
	last    f32.Point
	primary bool
}

// tracker maintains the set of currently active contacts in arrival
// order. It is pure bookkeeping: no timers, no emitted events.
type tracker struct {
	active []trackedContact
}

// down inserts a new contact. A Down for an id that is already active
// replaces the stale entry; the host never reuses an id while it is
// still pressed.
func (t *tracker) down(e contact.Event) {
	c := trackedContact{
		id:         e.ID,
		source:     e.Source,
		origin:     e.Position,
		originTime: e.Time,
		last:       e.Position,
		primary:    e.Primary,
	}
	if i := t.index(e.ID); i >= 0 {
		t.active[i] = c
		return
	}
	t.active = append(t.active, c)
}

// move updates the last seen position for id. It returns nil for an
// unknown id; out-of-order notifications are not an error.
func (t *tracker) move(id contact.ID, p f32.Point) *trackedContact {
	i := t.index(id)
	if i < 0 {
		return nil
	}
	t.active[i].last = p
	return &t.active[i]
}

// lift removes the contact for id and returns its final recorded state.
func (t *tracker) lift(id contact.ID) (trackedContact, bool) {
	i := t.index(id)
	if i < 0 {
		return trackedContact{}, false
	}
	c := t.active[i]
	t.active = slices.Delete(t.active, i, i+1)
	return c, true
}

// get returns the active contact for id, or nil.
func (t *tracker) get(id contact.ID) *trackedContact {
	i := t.index(id)
	if i < 0 {
		return nil
	}
	return &t.active[i]
}

// at returns the i'th active contact in arrival order.
func (t *tracker) at(i int) *trackedContact {
	return &t.active[i]
}

func (t *tracker) count() int {
	return len(t.active)
}

func (t *tracker) reset() {
	t.active = t.active[:0]
}

func (t *tracker) index(id contact.ID) int {
	return slices.IndexFunc(t.active, func(c trackedContact) bool {
		return c.id == id
	})
}
