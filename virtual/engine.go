// Package virtual computes which slice of a long, variable-height list is
// visible in a scrollable viewport.
//
// An Engine owns the measurement cache and the viewport state of one list.
// Scroll, resize and measurement events are fed in one at a time; after each
// of them the engine recomputes its Window synchronously, so the window never
// lags behind the real scroll position. The engine is not safe for concurrent
// use: all calls, including scheduler callbacks, must come from one goroutine.
package virtual

import (
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/miosa/osa-vlist/logger"
)

// Engine virtualizes one list whose items are identified by keys of type K.
type Engine[K comparable] struct {
	layout   Layout[K]
	cache    *MeasurementCache[K]
	tracker  *Tracker
	sched    Scheduler
	ownSched bool
	window   Window[K]
	log      logger.Logger
	onChange func(Trigger)
	closed   bool
}

// New validates the configuration and computes the initial window. count is
// the size of the collection and key maps an index to its stable key.
//
// Without WithItemHeight or WithEstimateItemHeight New fails with
// ErrInvalidConfiguration. Without WithScheduler the scrolling debounce runs
// on a LoopScheduler whose callbacks the owner drains via Scheduler; Close
// releases it.
func New[K comparable](count int, key func(int) K, opts ...Option) (*Engine[K], error) {
	s := defaultSettings()
	for _, o := range opts {
		o(&s)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	l := Layout[K]{
		Count:    count,
		Key:      key,
		Exact:    s.itemHeight,
		Estimate: s.estimate,
		Gap:      s.gap,
		Overscan: s.overscan,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	owned := s.scheduler == nil
	if owned {
		s.scheduler = NewLoopScheduler(1)
	}
	if s.log == nil {
		s.log = logger.Discard()
	}

	e := &Engine[K]{
		layout:   l,
		cache:    NewMeasurementCache[K](),
		sched:    s.scheduler,
		ownSched: owned,
		log:      s.log,
		onChange: s.onChange,
	}
	e.tracker = NewTracker(s.element, s.scheduler, s.scrollingDelay, e.handleViewport)
	e.recompute(TriggerConfig)
	return e, nil
}

// Observe attaches to the scroll container. It reports false while the
// container is unavailable; observation is then skipped and may be retried.
func (e *Engine[K]) Observe() bool {
	if e.closed {
		return false
	}
	err := e.tracker.Attach()
	if errors.Is(err, ErrUnavailableContainer) {
		e.log.Debug("scroll container not available, skipping observation")
		return false
	}
	return err == nil
}

// Close stops observing the container and cancels the scrolling debounce.
// No recomputation happens afterwards.
func (e *Engine[K]) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.tracker.Close()
	if c, ok := e.sched.(interface{ Close() }); ok && e.ownSched {
		c.Close()
	}
}

// OnScroll feeds a scroll offset for hosts that push events themselves.
func (e *Engine[K]) OnScroll(offset float64) {
	if e.closed {
		return
	}
	e.tracker.Scroll(offset)
}

// OnResize feeds a viewport size for hosts that push events themselves.
func (e *Engine[K]) OnResize(size float64) {
	if e.closed {
		return
	}
	e.tracker.Resize(size)
}

// ReportMeasurement records the real height of the item at index. The index is
// resolved to a key with the current key function. A changed height is part of
// the window before ReportMeasurement returns.
//
// Reports that cannot be attributed to an item or carry an unusable size are
// dropped and returned as errors; they never touch the cache.
func (e *Engine[K]) ReportMeasurement(index int, size float64) error {
	if e.closed {
		Measurements.WithLabelValues(resultClosed).Inc()
		return ErrClosed
	}
	if index < 0 || index >= e.layout.Count {
		Measurements.WithLabelValues(resultMissingIdentity).Inc()
		err := errors.Wrapf(ErrMissingIdentity, "index %d outside [0, %d)", index, e.layout.Count)
		e.log.Warn("dropping measurement", "index", index, "size", size, "err", err)
		return err
	}
	if size < 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		Measurements.WithLabelValues(resultInvalid).Inc()
		err := errors.Wrapf(ErrInvalidMeasurement, "size %v for index %d", size, index)
		e.log.Warn("dropping measurement", "index", index, "size", size, "err", err)
		return err
	}

	key := e.layout.Key(index)
	if !e.cache.Record(key, size) {
		Measurements.WithLabelValues(resultUnchanged).Inc()
		return nil
	}
	Measurements.WithLabelValues(resultRecorded).Inc()
	e.recompute(TriggerMeasure)
	return nil
}

// SetItems replaces the collection. Measurements stay keyed by item key, so
// items that survive a reorder keep their heights.
func (e *Engine[K]) SetItems(count int, key func(int) K) error {
	if e.closed {
		return ErrClosed
	}
	l := e.layout
	l.Count = count
	l.Key = key
	if err := l.Validate(); err != nil {
		return err
	}
	e.layout = l
	e.recompute(TriggerConfig)
	return nil
}

// Window returns the latest computed window. Its slices are shared and must
// not be modified.
func (e *Engine[K]) Window() Window[K] { return e.window }

func (e *Engine[K]) TotalHeight() float64 { return e.window.TotalHeight }

func (e *Engine[K]) IsScrolling() bool { return e.tracker.State().IsScrolling }

func (e *Engine[K]) Viewport() Viewport { return e.tracker.State() }

func (e *Engine[K]) Count() int { return e.layout.Count }

// Scheduler returns the timer source driving the scrolling debounce.
func (e *Engine[K]) Scheduler() Scheduler { return e.sched }

// OffsetOf returns the offsetTop of the item at index as of the last window.
func (e *Engine[K]) OffsetOf(index int) (float64, bool) {
	if index < 0 || index >= len(e.window.Offsets) {
		return 0, false
	}
	return e.window.Offsets[index], true
}

// Measurement returns the recorded height of the item at index.
func (e *Engine[K]) Measurement(index int) (float64, bool) {
	if index < 0 || index >= e.layout.Count {
		return 0, false
	}
	return e.cache.Get(e.layout.Key(index))
}

// Measurements counts the keys with a recorded height.
func (e *Engine[K]) Measurements() int { return e.cache.Len() }

func (e *Engine[K]) handleViewport(tr Trigger) {
	if e.closed {
		return
	}
	if tr == TriggerIdle {
		// Geometry is unchanged; only the flag moved.
		e.notify(tr)
		return
	}
	e.recompute(tr)
}

func (e *Engine[K]) recompute(tr Trigger) {
	start := time.Now()
	w, err := Compute(e.layout, e.cache, e.tracker.State())
	if err != nil {
		e.log.Error("window computation failed", "trigger", tr.String(), "err", err)
		return
	}
	RecomputeDuration.Observe(time.Since(start).Seconds())
	Recomputations.WithLabelValues(tr.String()).Inc()
	e.window = w
	e.notify(tr)
}

func (e *Engine[K]) notify(tr Trigger) {
	if e.onChange != nil {
		e.onChange(tr)
	}
}
