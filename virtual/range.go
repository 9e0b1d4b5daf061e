package virtual

import (
	"math"

	"github.com/pkg/errors"
)

// HeightFunc returns a height for the item at index.
type HeightFunc func(index int) float64

// Layout describes the logical collection a window is computed over.
type Layout[K comparable] struct {
	Count int
	Key   func(index int) K

	// Exact is authoritative when no measurement is cached for the item.
	// Estimate is consulted only when Exact is nil.
	Exact    HeightFunc
	Estimate HeightFunc

	// Gap separates consecutive items; there is none before the first item
	// or after the last.
	Gap float64

	// Overscan extra items are included on each side of the visible range.
	Overscan int
}

// Validate reports ErrInvalidConfiguration for layouts Compute cannot run on.
func (l Layout[K]) Validate() error {
	switch {
	case l.Exact == nil && l.Estimate == nil:
		return errors.Wrap(ErrInvalidConfiguration, "item height or its estimate is required")
	case l.Key == nil:
		return errors.Wrap(ErrInvalidConfiguration, "item key function is required")
	case l.Count < 0:
		return errors.Wrapf(ErrInvalidConfiguration, "items count %d is negative", l.Count)
	case l.Gap < 0 || math.IsNaN(l.Gap) || math.IsInf(l.Gap, 1):
		return errors.Wrapf(ErrInvalidConfiguration, "gap %v must be a non-negative number", l.Gap)
	case l.Overscan < 0:
		return errors.Wrapf(ErrInvalidConfiguration, "overscan %d is negative", l.Overscan)
	}
	return nil
}

// height resolves the height of item i: a cached measurement first, then the
// exact height, then the estimate. Unusable values collapse to 0.
func (l Layout[K]) height(cache *MeasurementCache[K], i int) (h float64, measured bool) {
	if h, ok := cache.Get(l.Key(i)); ok {
		return h, true
	}
	if l.Exact != nil {
		h = l.Exact(i)
	} else {
		h = l.Estimate(i)
	}
	if !(h > 0) || math.IsInf(h, 1) {
		h = 0
	}
	return h, false
}

// Viewport is the geometric state of the scroll container.
type Viewport struct {
	ScrollOffset float64
	Size         float64
	IsScrolling  bool
}

// Row describes one item at one computation instant.
type Row[K comparable] struct {
	Key       K
	Index     int
	Height    float64
	OffsetTop float64
	Measured  bool
}

// Bottom is the offset of the row's trailing edge.
func (r Row[K]) Bottom() float64 { return r.OffsetTop + r.Height }

// Window is the result of one range computation.
type Window[K comparable] struct {
	// Rows is the inclusive slice [StartIndex, EndIndex], ordered by index.
	Rows []Row[K]

	// StartIndex and EndIndex are -1 when nothing is to be rendered.
	StartIndex int
	EndIndex   int

	// TotalHeight spans the whole collection including gaps, not just Rows.
	TotalHeight float64

	// Offsets holds the offsetTop of every item in the collection.
	Offsets []float64
}

func (w Window[K]) Empty() bool { return len(w.Rows) == 0 }

// Contains reports whether index is part of the rendered window.
func (w Window[K]) Contains(index int) bool {
	return !w.Empty() && index >= w.StartIndex && index <= w.EndIndex
}

// Compute walks the whole collection once and returns the window of items to
// render for vp. It is a pure function of its arguments; cache may be nil.
//
// The start of the window is the first item whose trailing edge is past
// vp.ScrollOffset; the end is the first item whose trailing edge reaches
// vp.ScrollOffset+vp.Size. Both are then widened by Overscan. A viewport with
// no size yet yields an empty window, though TotalHeight and Offsets are still
// filled in.
func Compute[K comparable](l Layout[K], cache *MeasurementCache[K], vp Viewport) (Window[K], error) {
	if err := l.Validate(); err != nil {
		return Window[K]{}, err
	}
	w := Window[K]{StartIndex: -1, EndIndex: -1}
	if l.Count == 0 {
		return w, nil
	}

	rangeStart := vp.ScrollOffset
	rangeEnd := vp.ScrollOffset + vp.Size
	laidOut := vp.Size > 0

	w.Offsets = make([]float64, l.Count)
	start, end := -1, -1
	var total float64
	for i := 0; i < l.Count; i++ {
		h, _ := l.height(cache, i)
		w.Offsets[i] = total
		bottom := total + h
		total = bottom
		if i < l.Count-1 {
			total += l.Gap
		}
		if !laidOut {
			continue
		}
		if start == -1 && bottom > rangeStart {
			start = i
		}
		// The start item may also be the end item. An item taller than the
		// viewport, or one ending exactly at its bottom edge, closes the range
		// by itself; the following item is not pulled in.
		if start != -1 && end == -1 && bottom >= rangeEnd {
			end = i
		}
	}
	w.TotalHeight = total

	if !laidOut || start == -1 {
		return w, nil
	}
	// The content ends above the bottom of the viewport.
	if end == -1 {
		end = l.Count - 1
	}
	start = max(0, start-l.Overscan)
	end = min(l.Count-1, end+l.Overscan)

	w.StartIndex, w.EndIndex = start, end
	w.Rows = make([]Row[K], 0, end-start+1)
	for i := start; i <= end; i++ {
		h, measured := l.height(cache, i)
		w.Rows = append(w.Rows, Row[K]{
			Key:       l.Key(i),
			Index:     i,
			Height:    h,
			OffsetTop: w.Offsets[i],
			Measured:  measured,
		})
	}
	return w, nil
}
