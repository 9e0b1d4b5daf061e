package virtual

// fakeElement is a scroll container driven directly by tests.
type fakeElement struct {
	offset float64
	size   float64

	next      int
	scrollFns map[int]func()
	resizeFns map[int]func(float64)
}

func newFakeElement(size float64) *fakeElement {
	return &fakeElement{
		size:      size,
		scrollFns: make(map[int]func()),
		resizeFns: make(map[int]func(float64)),
	}
}

func (f *fakeElement) ScrollOffset() float64 { return f.offset }
func (f *fakeElement) ViewportSize() float64 { return f.size }

func (f *fakeElement) OnScroll(fn func()) func() {
	f.next++
	id := f.next
	f.scrollFns[id] = fn
	return func() { delete(f.scrollFns, id) }
}

func (f *fakeElement) OnResize(fn func(float64)) func() {
	f.next++
	id := f.next
	f.resizeFns[id] = fn
	return func() { delete(f.resizeFns, id) }
}

func (f *fakeElement) scrollTo(offset float64) {
	f.offset = offset
	for _, fn := range f.scrollFns {
		fn()
	}
}

func (f *fakeElement) resize(size float64) {
	f.size = size
	for _, fn := range f.resizeFns {
		fn(size)
	}
}

func (f *fakeElement) listeners() int {
	return len(f.scrollFns) + len(f.resizeFns)
}
