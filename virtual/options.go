package virtual

import (
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/miosa/osa-vlist/logger"
)

const (
	DefaultOverscan       = 3 // items
	DefaultScrollingDelay = 0 // immediate
)

// Option is a functional option for New.
type Option func(*settings)

type settings struct {
	itemHeight     HeightFunc
	estimate       HeightFunc
	gap            float64
	overscan       int
	scrollingDelay time.Duration
	element        func() Element
	scheduler      Scheduler
	log            logger.Logger
	onChange       func(Trigger)
}

func defaultSettings() settings {
	return settings{
		overscan:       DefaultOverscan,
		scrollingDelay: DefaultScrollingDelay,
	}
}

// WithItemHeight sets the exact height of every item. It is used for items
// without a recorded measurement.
func WithItemHeight(fn HeightFunc) Option {
	return func(s *settings) { s.itemHeight = fn }
}

// WithEstimateItemHeight sets the provisional height used for items that are
// neither measured nor covered by WithItemHeight.
func WithEstimateItemHeight(fn HeightFunc) Option {
	return func(s *settings) { s.estimate = fn }
}

// WithGap sets the spacing between consecutive items.
func WithGap(gap float64) Option {
	return func(s *settings) { s.gap = gap }
}

// WithOverscan sets how many items past each edge of the visible range are
// rendered.
func WithOverscan(n int) Option {
	return func(s *settings) { s.overscan = n }
}

// WithScrollingDelay sets how long IsScrolling stays on after the last scroll.
func WithScrollingDelay(d time.Duration) Option {
	return func(s *settings) { s.scrollingDelay = d }
}

// WithScrollingElement sets the accessor for the scroll container. It is
// called whenever the engine needs the container and may return nil.
func WithScrollingElement(fn func() Element) Option {
	return func(s *settings) { s.element = fn }
}

// WithScheduler sets the timer source for the scrolling debounce.
func WithScheduler(sched Scheduler) Option {
	return func(s *settings) { s.scheduler = sched }
}

func WithLogger(l logger.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithChangeHandler registers fn to run after every state change, once the
// new window is available.
func WithChangeHandler(fn func(Trigger)) Option {
	return func(s *settings) { s.onChange = fn }
}

func (s settings) validate() error {
	switch {
	case s.itemHeight == nil && s.estimate == nil:
		return errors.Wrap(ErrInvalidConfiguration,
			"item height or its estimate is required, use WithItemHeight or WithEstimateItemHeight")
	case s.gap < 0 || math.IsNaN(s.gap) || math.IsInf(s.gap, 1):
		return errors.Wrapf(ErrInvalidConfiguration, "gap %v must be a non-negative number", s.gap)
	case s.overscan < 0:
		return errors.Wrapf(ErrInvalidConfiguration, "overscan %d is negative", s.overscan)
	case s.scrollingDelay < 0:
		return errors.Wrapf(ErrInvalidConfiguration, "scrolling delay %v is negative", s.scrollingDelay)
	}
	return nil
}
