// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"testing"
	"time"

	"github.com/mikesaintsg/documenta-sub000/f32"
	"github.com/mikesaintsg/documenta-sub000/io/contact"
)

func TestTrackerBookkeeping(t *testing.T) {
	var tr tracker
	tr.down(down(1, 10, 20, 0))
	tr.down(down(2, 30, 40, 5*time.Millisecond))
	if got, want := tr.count(), 2; got != want {
		t.Fatalf("count: got %d, want %d", got, want)
	}

	c := tr.move(1, f32.Pt(15, 25))
	if c == nil {
		t.Fatal("move returned nil for a known contact")
	}
	if got, want := c.last, f32.Pt(15, 25); got != want {
		t.Errorf("last: got %v, want %v", got, want)
	}
	if got, want := c.origin, f32.Pt(10, 20); got != want {
		t.Errorf("origin: got %v, want %v", got, want)
	}

	final, ok := tr.lift(1)
	if !ok {
		t.Fatal("lift failed for a known contact")
	}
	if got, want := final.last, f32.Pt(15, 25); got != want {
		t.Errorf("final state: got %v, want %v", got, want)
	}
	if got, want := tr.count(), 1; got != want {
		t.Errorf("count after lift: got %d, want %d", got, want)
	}
}

func TestTrackerUnknownIDs(t *testing.T) {
	var tr tracker
	if tr.move(9, f32.Pt(1, 1)) != nil {
		t.Error("move for an unknown id did not return nil")
	}
	if _, ok := tr.lift(9); ok {
		t.Error("lift for an unknown id reported success")
	}
	if tr.get(9) != nil {
		t.Error("get for an unknown id did not return nil")
	}
}

func TestTrackerArrivalOrder(t *testing.T) {
	var tr tracker
	for id := contact.ID(3); id > 0; id-- {
		tr.down(down(id, float32(id), 0, 0))
	}
	// Lifting the middle contact preserves the order of the rest.
	tr.lift(2)
	if got, want := tr.at(0).id, contact.ID(3); got != want {
		t.Errorf("at(0): got %d, want %d", got, want)
	}
	if got, want := tr.at(1).id, contact.ID(1); got != want {
		t.Errorf("at(1): got %d, want %d", got, want)
	}
}

func TestTrackerRedundantDownReplaces(t *testing.T) {
	var tr tracker
	tr.down(down(1, 10, 10, 0))
	tr.down(down(1, 50, 50, 5*time.Millisecond))
	if got, want := tr.count(), 1; got != want {
		t.Fatalf("count: got %d, want %d", got, want)
	}
	if got, want := tr.get(1).origin, f32.Pt(50, 50); got != want {
		t.Errorf("origin: got %v, want %v", got, want)
	}
}
