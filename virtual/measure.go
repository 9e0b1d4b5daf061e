package virtual

// MeasurementCache maps item keys to their last observed heights.
//
// Entries are never evicted: a key that scrolls out of the window keeps its
// height, so scrolling back to it does not fall back to the estimate.
// The zero value is not usable; construct with NewMeasurementCache.
type MeasurementCache[K comparable] struct {
	sizes map[K]float64
}

func NewMeasurementCache[K comparable]() *MeasurementCache[K] {
	return &MeasurementCache[K]{sizes: make(map[K]float64)}
}

// Get returns the recorded height for key.
func (c *MeasurementCache[K]) Get(key K) (float64, bool) {
	if c == nil {
		return 0, false
	}
	h, ok := c.sizes[key]
	return h, ok
}

// Record stores height for key and reports whether the stored value changed.
// Recording the value already present is a no-op.
func (c *MeasurementCache[K]) Record(key K, height float64) bool {
	if old, ok := c.sizes[key]; ok && old == height {
		return false
	}
	c.sizes[key] = height
	return true
}

func (c *MeasurementCache[K]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.sizes)
}
