package virtual

import (
	"math"
	"time"
)

// Element is the scroll container a Tracker observes.
//
// Implementations are compared with == to detect a replaced container, so
// they should be pointer types.
type Element interface {
	ScrollOffset() float64
	ViewportSize() float64

	// OnScroll registers fn for scroll-position changes.
	OnScroll(fn func()) (detach func())

	// OnResize registers fn for changes of the container's box size.
	OnResize(fn func(size float64)) (detach func())
}

// Tracker keeps the Viewport of one scroll container up to date and derives
// its IsScrolling flag.
//
// IsScrolling turns on with every scroll and turns off once no scroll has
// been seen for the configured delay. A zero delay clears it on the next
// scheduler tick.
type Tracker struct {
	element  func() Element
	sched    Scheduler
	delay    time.Duration
	onChange func(Trigger)

	state    Viewport
	attached Element
	detach   []func()
	stopIdle func()
	idleSeq  uint64
	closed   bool
}

// NewTracker builds a tracker that resolves its container through element,
// which may return nil while the container does not exist. onChange runs
// after every state change.
func NewTracker(element func() Element, sched Scheduler, delay time.Duration, onChange func(Trigger)) *Tracker {
	if delay < 0 {
		delay = 0
	}
	return &Tracker{
		element:  element,
		sched:    sched,
		delay:    delay,
		onChange: onChange,
	}
}

// Attach resolves the container and subscribes to it, seeding the viewport
// from the container's current geometry. Attaching to the container already
// observed is a no-op; a different container replaces the old one.
//
// ErrUnavailableContainer means there is nothing to observe yet. Callers are
// expected to retry once layout has settled.
func (t *Tracker) Attach() error {
	if t.closed {
		return ErrClosed
	}
	var el Element
	if t.element != nil {
		el = t.element()
	}
	if el == nil {
		t.release()
		return ErrUnavailableContainer
	}
	if t.attached != nil {
		if t.attached == el {
			return nil
		}
		t.release()
	}

	t.attached = el
	t.detach = append(t.detach, el.OnScroll(t.handleScroll), el.OnResize(t.handleResize))

	t.relayout(el.ScrollOffset(), el.ViewportSize())
	return nil
}

// Attached reports whether a container is being observed.
func (t *Tracker) Attached() bool { return t.attached != nil }

func (t *Tracker) State() Viewport { return t.state }

// Scroll records a new scroll offset and restarts the scrolling debounce.
func (t *Tracker) Scroll(offset float64) {
	if t.closed {
		return
	}
	t.state.ScrollOffset = offset
	// Without a scheduler the flag could never clear, so it is not raised.
	t.state.IsScrolling = t.sched != nil
	t.armIdle()
	t.notify(TriggerScroll)
}

// Resize records a new viewport size. Unchanged sizes are ignored.
func (t *Tracker) Resize(size float64) {
	if t.closed {
		return
	}
	size = sanitizeSize(size)
	if size == t.state.Size {
		return
	}
	t.state.Size = size
	t.notify(TriggerResize)
}

// Close detaches every listener and cancels the debounce timer. The tracker
// ignores all input afterwards.
func (t *Tracker) Close() {
	if t.closed {
		return
	}
	t.closed = true
	t.release()
}

func (t *Tracker) handleScroll() {
	if t.closed {
		return
	}
	el := t.currentElement()
	if el == nil {
		t.release()
		return
	}
	t.Scroll(el.ScrollOffset())
}

func (t *Tracker) handleResize(size float64) {
	if t.closed {
		return
	}
	el := t.currentElement()
	if el == nil {
		t.release()
		return
	}
	// A container may move its offset while reflowing.
	t.relayout(el.ScrollOffset(), size)
}

// relayout records geometry that changed without the user scrolling, so the
// scrolling flag is left alone.
func (t *Tracker) relayout(offset, size float64) {
	size = sanitizeSize(size)
	if offset == t.state.ScrollOffset && size == t.state.Size {
		return
	}
	t.state.ScrollOffset = offset
	t.state.Size = size
	t.notify(TriggerResize)
}

func (t *Tracker) currentElement() Element {
	if t.element == nil {
		return nil
	}
	return t.element()
}

func (t *Tracker) armIdle() {
	if t.sched == nil {
		return
	}
	if t.stopIdle != nil {
		t.stopIdle()
	}
	t.idleSeq++
	seq := t.idleSeq
	t.stopIdle = t.sched.AfterFunc(t.delay, func() { t.idle(seq) })
}

func (t *Tracker) idle(seq uint64) {
	if t.closed || seq != t.idleSeq {
		return
	}
	t.stopIdle = nil
	if !t.state.IsScrolling {
		return
	}
	t.state.IsScrolling = false
	t.notify(TriggerIdle)
}

// release drops the observed container together with the pending debounce.
func (t *Tracker) release() {
	for _, detach := range t.detach {
		if detach != nil {
			detach()
		}
	}
	t.detach = nil
	t.attached = nil
	if t.stopIdle != nil {
		t.stopIdle()
		t.stopIdle = nil
	}
	t.idleSeq++
}

func (t *Tracker) notify(tr Trigger) {
	if t.onChange != nil {
		t.onChange(tr)
	}
}

func sanitizeSize(size float64) float64 {
	if !(size > 0) || math.IsInf(size, 1) {
		return 0
	}
	return size
}
