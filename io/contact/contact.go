// SPDX-License-Identifier: Unlicense OR MIT

/*
Package contact defines the raw per-contact notifications delivered by a
host input surface, and the Surface interface a gesture recognizer binds
to.

A contact is one continuous press-to-release session of a finger, stylus
or mouse button. The host assigns each contact an ID that is stable from
its Down notification to its matching Up or Cancel, and unique among
simultaneously active contacts.
*/
package contact

import (
	"time"

	"github.com/mikesaintsg/documenta-sub000/f32"
)

// Event is one notification about a single contact.
type Event struct {
	Kind   Kind
	Source Source
	// ID tracks a particular contact from Down to
	// Up or Cancel.
	ID ID
	// Time is when the event was generated. The
	// timestamp is relative to an undefined base.
	Time time.Duration
	// Position is the coordinates of the contact in the
	// coordinate system of the bound surface.
	Position f32.Point
	// Primary reports whether the host considers this the primary
	// contact. It is informational only.
	Primary bool
}

// Handler consumes contact events. A Surface delivers events to its
// handler one at a time, in the order the host generates them.
type Handler func(Event)

// Surface is a host input surface that produces contact events.
//
// Implementations are expected to deliver events synchronously and in
// order, and must not call the registered handler from SetHandler
// itself.
type Surface interface {
	// SetHandler registers the sink for this surface's contact
	// events. A nil handler unregisters the current one.
	SetHandler(Handler)
	// SetGesturesSuppressed toggles the host's own default gesture
	// handling, such as native scrolling or zooming, on the surface.
	SetGesturesSuppressed(bool)
	// Capture requests that Move, Up and Cancel events for id keep
	// arriving even when the contact leaves the surface's bounds.
	Capture(id ID) error
	// Release undoes Capture. Releasing a contact that the host has
	// already released is an error callers may ignore.
	Release(id ID) error
}

// ID identifies a contact. IDs are assigned by the host.
type ID uint16

// Kind of an Event.
type Kind uint8

// Source of an Event.
type Source uint8

const (
	// A Cancel event is generated when a contact is
	// interrupted by the system.
	Cancel Kind = iota
	// Down of a contact.
	Down
	// Move of a contact.
	Move
	// Up of a contact.
	Up
)

const (
	// Mouse generated event.
	Mouse Source = iota
	// Touch generated event.
	Touch
	// Pen generated event.
	Pen
)

func (k Kind) String() string {
	switch k {
	case Cancel:
		return "Cancel"
	case Down:
		return "Down"
	case Move:
		return "Move"
	case Up:
		return "Up"
	default:
		panic("unknown Kind")
	}
}

func (s Source) String() string {
	switch s {
	case Mouse:
		return "Mouse"
	case Touch:
		return "Touch"
	case Pen:
		return "Pen"
	default:
		panic("unknown Source")
	}
}
