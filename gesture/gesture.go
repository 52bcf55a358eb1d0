// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture turns a stream of raw per-contact Down, Move, Up and
Cancel notifications from a host input surface into semantic gestures:
tap, double tap, long press, single-contact pan, two-contact pan and
pinch.

A Recognizer binds to one contact.Surface at a time. Classified
gestures are delivered synchronously to subscribers registered with
OnGesture, in subscription order.
*/
package gesture

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mikesaintsg/documenta-sub000/f32"
	"github.com/mikesaintsg/documenta-sub000/io/contact"
)

// Event is one classified gesture occurrence or progress report.
type Event struct {
	Kind   Kind
	Source contact.Source
	// Center is the representative point for the gesture: the contact
	// position for single-contact gestures, the midpoint of the pair
	// for two-contact ones.
	Center f32.Point
	// PointerCount is the number of contacts involved.
	PointerCount int
	// Final is true exactly once per gesture occurrence, on the
	// notification that completes it. Continuous gestures (Pan,
	// TwoFingerPan, Pinch) may emit any number of non-final events
	// before the final one.
	Final bool
	// Delta is the cumulative displacement from the gesture's
	// re-basing origin to Center. Valid for Pan and TwoFingerPan.
	Delta f32.Point
	// Scale is the ratio of the current inter-contact distance to the
	// distance recorded when the two-contact phase began. Valid for
	// Pinch.
	Scale float32
}

// Kind of a gesture Event.
type Kind uint8

const (
	Tap Kind = iota
	DoubleTap
	LongPress
	Pan
	TwoFingerPan
	Pinch
)

// Thresholds are the timing and distance limits that separate the
// gesture classes.
type Thresholds struct {
	// TapDistance is the maximum displacement, in surface units, for
	// a press to still count as a tap. Crossing it converts a pending
	// single contact into a pan.
	TapDistance float32
	// TapDuration is the maximum press duration for a tap.
	TapDuration time.Duration
	// DoubleTapGap is the maximum time between two taps that combine
	// into a double tap.
	DoubleTapGap time.Duration
	// LongPressDuration is how long a motionless contact must stay
	// down before a long press fires.
	LongPressDuration time.Duration
	// PinchTolerance is the minimum |scale-1| before two-contact
	// motion classifies as a pinch rather than a two-finger pan.
	PinchTolerance float32
}

// DefaultThresholds returns the thresholds used when a Config leaves
// them unset.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TapDistance:       10,
		TapDuration:       300 * time.Millisecond,
		DoubleTapGap:      300 * time.Millisecond,
		LongPressDuration: 500 * time.Millisecond,
		PinchTolerance:    0.05,
	}
}

// Config configures a Recognizer. The zero value selects
// DefaultThresholds and the wall clock.
type Config struct {
	Thresholds Thresholds
	Scheduler  Scheduler
}

// phase is the classifier state. The active contact count drives the
// transitions; the phase records what the count alone cannot: whether
// a single contact is still a tap candidate, already panning, or
// consumed by a long press.
type phase uint8

const (
	phaseIdle phase = iota
	phaseSinglePending
	phaseSinglePan
	phaseSingleConsumed
	phaseTwoActive
)

// Recognizer classifies contact events from one bound surface into
// gesture events. Create one with New; the zero value is not valid.
//
// Multiple Recognizers attached to different surfaces are fully
// independent.
type Recognizer struct {
	cfg       Config
	destroyed atomic.Bool

	mu      sync.Mutex
	surface contact.Surface
	tracker tracker
	disp    dispatcher

	phase phase
	// pair is the classifying contact pair while in phaseTwoActive:
	// the two earliest-arrival active contacts. Later contacts are
	// tracked but do not participate in classification.
	pair [2]contact.ID
	// rebase is the origin deltas are measured from: the contact's
	// down position for a single-contact pan, the pair centroid at
	// two-contact entry for a two-finger pan. It is reset whenever
	// the classifying contact set changes so deltas never span a
	// count transition.
	rebase f32.Point
	// baseline is the inter-contact distance at two-contact entry.
	baseline float32
	// twoKind is the last emitted two-contact kind; valid only when
	// twoMoved is set.
	twoKind  Kind
	twoMoved bool

	lastTap struct {
		valid bool
		pos   f32.Point
		time  time.Duration
	}

	// timerStop cancels the pending long-press timer, if any. timerSeq
	// invalidates fires from timers that were cancelled after their
	// callback was already underway.
	timerStop func()
	timerSeq  uint64
}

// New returns a Recognizer with cfg's zero fields filled with
// defaults.
func New(cfg Config) *Recognizer {
	def := DefaultThresholds()
	th := &cfg.Thresholds
	if th.TapDistance == 0 {
		th.TapDistance = def.TapDistance
	}
	if th.TapDuration == 0 {
		th.TapDuration = def.TapDuration
	}
	if th.DoubleTapGap == 0 {
		th.DoubleTapGap = def.DoubleTapGap
	}
	if th.LongPressDuration == 0 {
		th.LongPressDuration = def.LongPressDuration
	}
	if th.PinchTolerance == 0 {
		th.PinchTolerance = def.PinchTolerance
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = wallScheduler{}
	}
	return &Recognizer{cfg: cfg}
}

// Attach binds the recognizer to surface, detaching any previously
// bound one. Session state (active contacts, pending timer, double-tap
// memory) is re-created. The surface's default gesture handling is
// suppressed for the duration of the attachment.
func (r *Recognizer) Attach(surface contact.Surface) {
	if surface == nil {
		r.Detach()
		return
	}
	r.mu.Lock()
	if r.destroyed.Load() {
		r.mu.Unlock()
		return
	}
	prev := r.surface
	r.surface = surface
	r.resetSessionLocked()
	r.mu.Unlock()
	if prev != nil && prev != surface {
		prev.SetHandler(nil)
		prev.SetGesturesSuppressed(false)
	}
	surface.SetGesturesSuppressed(true)
	surface.SetHandler(r.handle)
}

// Detach unbinds the current surface, if any, without destroying the
// recognizer. Detach when not attached is a no-op.
func (r *Recognizer) Detach() {
	r.mu.Lock()
	prev := r.surface
	r.surface = nil
	r.resetSessionLocked()
	r.mu.Unlock()
	if prev != nil {
		prev.SetHandler(nil)
		prev.SetGesturesSuppressed(false)
	}
}

// OnGesture subscribes fn to classified gesture events and returns a
// closure that unsubscribes it. After the closure runs, fn receives no
// event for any subsequent notification.
func (r *Recognizer) OnGesture(fn func(Event)) (unsubscribe func()) {
	if fn == nil || r.destroyed.Load() {
		return func() {}
	}
	return r.disp.subscribe(fn)
}

// Destroy unbinds the surface and discards all subscribers and timers
// permanently. No event is emitted after Destroy returns, even when it
// is called from within a subscriber callback. Destroy is idempotent,
// and lifecycle methods called afterwards are no-ops.
func (r *Recognizer) Destroy() {
	if !r.destroyed.CompareAndSwap(false, true) {
		return
	}
	r.mu.Lock()
	prev := r.surface
	r.surface = nil
	r.resetSessionLocked()
	r.mu.Unlock()
	r.disp.clear()
	if prev != nil {
		prev.SetHandler(nil)
		prev.SetGesturesSuppressed(false)
	}
}

// resetSessionLocked returns the classifier to its initial state.
func (r *Recognizer) resetSessionLocked() {
	r.cancelTimerLocked()
	r.tracker.reset()
	r.phase = phaseIdle
	r.twoMoved = false
	r.lastTap.valid = false
}

// handle processes one contact notification to completion. It is the
// handler registered with the bound surface.
func (r *Recognizer) handle(e contact.Event) {
	r.mu.Lock()
	if r.destroyed.Load() || r.surface == nil {
		r.mu.Unlock()
		return
	}
	surface := r.surface
	var out []Event
	switch e.Kind {
	case contact.Down:
		out = r.downLocked(e)
	case contact.Move:
		out = r.moveLocked(e)
	case contact.Up:
		out = r.liftLocked(e, false)
	case contact.Cancel:
		out = r.liftLocked(e, true)
	}
	r.mu.Unlock()
	switch e.Kind {
	case contact.Down:
		_ = surface.Capture(e.ID)
	case contact.Up, contact.Cancel:
		// The host may already have released the contact on its own.
		_ = surface.Release(e.ID)
	}
	for _, ev := range out {
		r.emit(ev)
	}
}

func (r *Recognizer) emit(ev Event) {
	r.disp.emit(ev, func() bool { return !r.destroyed.Load() })
}

func (r *Recognizer) downLocked(e contact.Event) []Event {
	r.tracker.down(e)
	switch r.tracker.count() {
	case 1:
		r.phase = phaseSinglePending
		r.armLongPressLocked(e.ID)
	case 2:
		// A second contact discards single-contact tap and pan
		// tracking, whatever single state we were in.
		r.cancelTimerLocked()
		r.enterTwoActiveLocked()
	default:
		// Additional contacts are tracked so counts stay correct, but
		// only the two earliest-arrival contacts classify.
	}
	return nil
}

func (r *Recognizer) moveLocked(e contact.Event) []Event {
	c := r.tracker.move(e.ID, e.Position)
	if c == nil {
		// Unknown id: a stale or out-of-order notification.
		return nil
	}
	switch r.phase {
	case phaseSinglePending:
		if f32.Dist(c.origin, c.last) <= r.cfg.Thresholds.TapDistance {
			return nil
		}
		r.cancelTimerLocked()
		r.phase = phaseSinglePan
		r.rebase = c.origin
		return []Event{r.panEventLocked(c, false)}
	case phaseSinglePan:
		return []Event{r.panEventLocked(c, false)}
	case phaseTwoActive:
		if e.ID != r.pair[0] && e.ID != r.pair[1] {
			return nil
		}
		return []Event{r.twoEventLocked(false)}
	}
	return nil
}

func (r *Recognizer) liftLocked(e contact.Event, cancelled bool) []Event {
	c, ok := r.tracker.lift(e.ID)
	if !ok {
		return nil
	}
	switch r.phase {
	case phaseSinglePending:
		r.cancelTimerLocked()
		r.phase = phaseIdle
		if cancelled {
			// A cancelled contact never becomes a tap.
			return nil
		}
		return r.tapOrDoubleTapLocked(c, e.Time)
	case phaseSinglePan:
		r.phase = phaseIdle
		return []Event{r.panEventLocked(&c, true)}
	case phaseSingleConsumed:
		// The long press already fired for this contact.
		r.phase = phaseIdle
		return nil
	case phaseTwoActive:
		if e.ID != r.pair[0] && e.ID != r.pair[1] {
			return nil
		}
		var out []Event
		if r.twoMoved {
			out = append(out, r.finalTwoEventLocked(c))
		}
		r.reseedLocked()
		return out
	}
	return nil
}

// tapOrDoubleTapLocked classifies an Up from the single-pending phase.
// now is the timestamp of the Up notification.
func (r *Recognizer) tapOrDoubleTapLocked(c trackedContact, now time.Duration) []Event {
	th := r.cfg.Thresholds
	elapsed := now - c.originTime
	moved := f32.Dist(c.origin, c.last)
	if elapsed > th.TapDuration || moved > th.TapDistance {
		// Too slow or drifted past tolerance: discard rather than
		// misclassify.
		return nil
	}
	ev := Event{
		Kind:         Tap,
		Source:       c.source,
		Center:       c.last,
		PointerCount: 1,
		Final:        true,
	}
	if r.lastTap.valid &&
		now-r.lastTap.time <= th.DoubleTapGap &&
		f32.Dist(r.lastTap.pos, c.last) <= th.TapDistance {
		// Clearing the memory makes three rapid taps a tap followed
		// by a double tap, not two double taps.
		r.lastTap.valid = false
		ev.Kind = DoubleTap
		return []Event{ev}
	}
	r.lastTap.valid = true
	r.lastTap.pos = c.last
	r.lastTap.time = now
	return []Event{ev}
}

// enterTwoActiveLocked records the classifying pair, the baseline
// distance and the centroid re-basing origin from the current tracker
// state.
func (r *Recognizer) enterTwoActiveLocked() {
	a, b := r.tracker.at(0), r.tracker.at(1)
	r.phase = phaseTwoActive
	r.pair = [2]contact.ID{a.id, b.id}
	r.baseline = f32.Dist(a.last, b.last)
	r.rebase = f32.Mid(a.last, b.last)
	r.twoMoved = false
}

// reseedLocked picks the next phase after a classifying contact lifted
// during phaseTwoActive.
func (r *Recognizer) reseedLocked() {
	switch r.tracker.count() {
	case 0:
		r.phase = phaseIdle
	case 1:
		// The continuing contact must not inherit the two-contact
		// deltas; re-base to its current position.
		c := r.tracker.at(0)
		r.phase = phaseSinglePan
		r.rebase = c.last
	default:
		r.enterTwoActiveLocked()
	}
}

func (r *Recognizer) panEventLocked(c *trackedContact, final bool) Event {
	return Event{
		Kind:         Pan,
		Source:       c.source,
		Center:       c.last,
		PointerCount: 1,
		Final:        final,
		Delta:        c.last.Sub(r.rebase),
	}
}

// twoEventLocked classifies the current two-contact geometry as a
// pinch or a two-finger pan and builds the corresponding event.
func (r *Recognizer) twoEventLocked(final bool) Event {
	a, b := r.tracker.get(r.pair[0]), r.tracker.get(r.pair[1])
	kind := r.classifyTwoLocked(a.last, b.last)
	r.twoKind = kind
	r.twoMoved = true
	return r.buildTwoEvent(a.source, a.last, b.last, kind, final)
}

// finalTwoEventLocked builds the final event for the two-contact phase
// after one of the pair lifted. lifted has already been removed from
// the tracker; the event keeps the kind that was last active.
func (r *Recognizer) finalTwoEventLocked(lifted trackedContact) Event {
	otherID := r.pair[0]
	if otherID == lifted.id {
		otherID = r.pair[1]
	}
	otherPos := lifted.last
	if o := r.tracker.get(otherID); o != nil {
		otherPos = o.last
	}
	return r.buildTwoEvent(lifted.source, lifted.last, otherPos, r.twoKind, true)
}

// classifyTwoLocked decides pinch versus two-finger pan from the pair
// positions and the pinch tolerance.
func (r *Recognizer) classifyTwoLocked(pa, pb f32.Point) Kind {
	scale := r.twoScaleLocked(pa, pb)
	if math.Abs(float64(scale)-1) > float64(r.cfg.Thresholds.PinchTolerance) {
		return Pinch
	}
	return TwoFingerPan
}

func (r *Recognizer) twoScaleLocked(pa, pb f32.Point) float32 {
	if r.baseline <= 0 {
		return 1
	}
	return f32.Dist(pa, pb) / r.baseline
}

// buildTwoEvent computes center and, depending on kind, delta or scale
// from the pair positions.
func (r *Recognizer) buildTwoEvent(src contact.Source, pa, pb f32.Point, kind Kind, final bool) Event {
	center := f32.Mid(pa, pb)
	ev := Event{
		Kind:         kind,
		Source:       src,
		Center:       center,
		PointerCount: 2,
		Final:        final,
	}
	if kind == Pinch {
		ev.Scale = r.twoScaleLocked(pa, pb)
	} else {
		ev.Delta = center.Sub(r.rebase)
	}
	return ev
}

// armLongPressLocked schedules the long-press timer for id, cancelling
// any prior timer first so at most one is ever outstanding.
func (r *Recognizer) armLongPressLocked(id contact.ID) {
	r.cancelTimerLocked()
	seq := r.timerSeq
	r.timerStop = r.cfg.Scheduler.Schedule(r.cfg.Thresholds.LongPressDuration, func() {
		r.longPress(seq, id)
	})
}

// longPress is the timer callback. seq guards against a fire that
// raced with cancellation.
func (r *Recognizer) longPress(seq uint64, id contact.ID) {
	r.mu.Lock()
	if r.destroyed.Load() || seq != r.timerSeq || r.phase != phaseSinglePending {
		r.mu.Unlock()
		return
	}
	c := r.tracker.get(id)
	if c == nil {
		r.mu.Unlock()
		return
	}
	r.timerStop = nil
	r.phase = phaseSingleConsumed
	ev := Event{
		Kind:         LongPress,
		Source:       c.source,
		Center:       c.last,
		PointerCount: 1,
		Final:        true,
	}
	r.mu.Unlock()
	r.emit(ev)
}

// cancelTimerLocked stops the pending long-press timer, if any, and
// invalidates in-flight fires.
func (r *Recognizer) cancelTimerLocked() {
	r.timerSeq++
	if r.timerStop != nil {
		r.timerStop()
		r.timerStop = nil
	}
}

func (k Kind) String() string {
	switch k {
	case Tap:
		return "Tap"
	case DoubleTap:
		return "DoubleTap"
	case LongPress:
		return "LongPress"
	case Pan:
		return "Pan"
	case TwoFingerPan:
		return "TwoFingerPan"
	case Pinch:
		return "Pinch"
	default:
		panic("unknown Kind")
	}
}
