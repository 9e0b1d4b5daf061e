package virtual

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type triggerLog []Trigger

func (l *triggerLog) record(tr Trigger) { *l = append(*l, tr) }

func TestTracker_AttachSeedsState(t *testing.T) {
	el := newFakeElement(800)
	el.offset = 40
	var log triggerLog
	tr := NewTracker(func() Element { return el }, NewManualScheduler(), 0, log.record)

	require.NoError(t, tr.Attach())
	assert.True(t, tr.Attached())
	assert.Equal(t, Viewport{ScrollOffset: 40, Size: 800}, tr.State())
	assert.Equal(t, 2, el.listeners())
	assert.Equal(t, triggerLog{TriggerResize}, log)

	// Attaching again to the same container changes nothing.
	require.NoError(t, tr.Attach())
	assert.Equal(t, 2, el.listeners())
	assert.Len(t, log, 1)
}

func TestTracker_UnavailableContainerIsSkipped(t *testing.T) {
	var el *fakeElement
	var log triggerLog
	tr := NewTracker(func() Element {
		if el == nil {
			return nil
		}
		return el
	}, NewManualScheduler(), 0, log.record)

	assert.ErrorIs(t, tr.Attach(), ErrUnavailableContainer)
	assert.False(t, tr.Attached())
	assert.Empty(t, log)

	el = newFakeElement(300)
	require.NoError(t, tr.Attach())
	assert.Equal(t, float64(300), tr.State().Size)
}

func TestTracker_NilAccessor(t *testing.T) {
	tr := NewTracker(nil, nil, 0, nil)
	assert.ErrorIs(t, tr.Attach(), ErrUnavailableContainer)
}

func TestTracker_ScrollEventsUpdateOffset(t *testing.T) {
	el := newFakeElement(100)
	var log triggerLog
	tr := NewTracker(func() Element { return el }, NewManualScheduler(), 0, log.record)
	require.NoError(t, tr.Attach())

	el.scrollTo(250)
	assert.Equal(t, float64(250), tr.State().ScrollOffset)
	assert.True(t, tr.State().IsScrolling)
	assert.Equal(t, TriggerScroll, log[len(log)-1])
}

func TestTracker_ResizeEvents(t *testing.T) {
	el := newFakeElement(100)
	var log triggerLog
	tr := NewTracker(func() Element { return el }, NewManualScheduler(), 0, log.record)
	require.NoError(t, tr.Attach())
	n := len(log)

	el.resize(100)
	assert.Len(t, log, n, "unchanged size must not notify")

	el.resize(640)
	assert.Equal(t, float64(640), tr.State().Size)
	assert.Equal(t, TriggerResize, log[len(log)-1])

	tr.Resize(-3)
	assert.Zero(t, tr.State().Size)
}

func TestTracker_ReflowMovesOffsetWithoutScrolling(t *testing.T) {
	el := newFakeElement(100)
	var log triggerLog
	tr := NewTracker(func() Element { return el }, NewManualScheduler(), time.Second, log.record)
	require.NoError(t, tr.Attach())

	el.offset = 40
	el.resize(100)

	assert.Equal(t, float64(40), tr.State().ScrollOffset)
	assert.False(t, tr.State().IsScrolling)
	assert.Equal(t, TriggerResize, log[len(log)-1])
}

func TestTracker_ScrollingDebounceResets(t *testing.T) {
	sched := NewManualScheduler()
	tr := NewTracker(nil, sched, 100*time.Millisecond, nil)

	tr.Scroll(10)
	sched.Advance(60 * time.Millisecond)
	assert.True(t, tr.State().IsScrolling)

	tr.Scroll(20)
	sched.Advance(60 * time.Millisecond)
	assert.True(t, tr.State().IsScrolling, "second scroll must restart the delay")
	assert.Equal(t, 1, sched.Pending())

	sched.Advance(40 * time.Millisecond)
	assert.False(t, tr.State().IsScrolling)
	assert.Equal(t, float64(20), tr.State().ScrollOffset)
}

func TestTracker_ZeroDelayClearsOnNextTick(t *testing.T) {
	sched := NewManualScheduler()
	var log triggerLog
	tr := NewTracker(nil, sched, 0, log.record)

	tr.Scroll(1)
	tr.Scroll(2)
	assert.True(t, tr.State().IsScrolling)

	sched.Advance(0)
	assert.False(t, tr.State().IsScrolling)
	assert.Equal(t, triggerLog{TriggerScroll, TriggerScroll, TriggerIdle}, log)
}

func TestTracker_NoSchedulerNeverRaisesFlag(t *testing.T) {
	tr := NewTracker(nil, nil, time.Second, nil)
	tr.Scroll(5)
	assert.False(t, tr.State().IsScrolling)
	assert.Equal(t, float64(5), tr.State().ScrollOffset)
}

func TestTracker_CloseDetachesAndCancels(t *testing.T) {
	el := newFakeElement(100)
	sched := NewManualScheduler()
	var log triggerLog
	tr := NewTracker(func() Element { return el }, sched, 50*time.Millisecond, log.record)
	require.NoError(t, tr.Attach())

	el.scrollTo(30)
	tr.Close()
	assert.Zero(t, el.listeners())
	assert.Zero(t, sched.Pending())

	n := len(log)
	sched.Advance(time.Second)
	tr.Scroll(99)
	tr.Resize(1)
	assert.Len(t, log, n)
	assert.ErrorIs(t, tr.Attach(), ErrClosed)
}

func TestTracker_ContainerVanishingStopsObservation(t *testing.T) {
	el := newFakeElement(100)
	present := true
	sched := NewManualScheduler()
	tr := NewTracker(func() Element {
		if !present {
			return nil
		}
		return el
	}, sched, 10*time.Millisecond, nil)
	require.NoError(t, tr.Attach())
	el.scrollTo(5)

	present = false
	el.scrollTo(50)
	assert.Equal(t, float64(5), tr.State().ScrollOffset)
	assert.False(t, tr.Attached())
	assert.Zero(t, el.listeners())
	assert.Zero(t, sched.Pending())
}

func TestTracker_ReplacedContainer(t *testing.T) {
	first := newFakeElement(100)
	second := newFakeElement(200)
	current := first
	tr := NewTracker(func() Element { return current }, NewManualScheduler(), 0, nil)
	require.NoError(t, tr.Attach())

	current = second
	require.NoError(t, tr.Attach())
	assert.Zero(t, first.listeners())
	assert.Equal(t, 2, second.listeners())
	assert.Equal(t, float64(200), tr.State().Size)
}
