package list

import "math"

// container is the scroll box the engine observes. Offsets and sizes are
// in terminal lines.
type container struct {
	offset float64
	size   float64

	next      int
	scrollFns map[int]func()
	resizeFns map[int]func(float64)
}

func newContainer() *container {
	return &container{
		scrollFns: make(map[int]func()),
		resizeFns: make(map[int]func(float64)),
	}
}

func (c *container) ScrollOffset() float64 { return c.offset }
func (c *container) ViewportSize() float64 { return c.size }

func (c *container) OnScroll(fn func()) func() {
	c.next++
	id := c.next
	c.scrollFns[id] = fn
	return func() { delete(c.scrollFns, id) }
}

func (c *container) OnResize(fn func(float64)) func() {
	c.next++
	id := c.next
	c.resizeFns[id] = fn
	return func() { delete(c.resizeFns, id) }
}

// scrollTo moves to offset clamped into [0, max] and reports whether the
// offset changed. Listeners only hear about real moves.
func (c *container) scrollTo(offset, max float64) bool {
	offset = math.Max(0, math.Min(offset, max))
	if offset == c.offset {
		return false
	}
	c.offset = offset
	for _, fn := range c.scrollFns {
		fn()
	}
	return true
}

func (c *container) resize(size float64) {
	if size == c.size {
		return
	}
	c.size = size
	for _, fn := range c.resizeFns {
		fn(size)
	}
}

// clamp pulls the offset back into [0, max] after the content changed size.
// Listeners hear it as a resize: the user did not scroll.
func (c *container) clamp(max float64) {
	offset := math.Max(0, math.Min(c.offset, max))
	if offset == c.offset {
		return
	}
	c.offset = offset
	for _, fn := range c.resizeFns {
		fn(c.size)
	}
}
