package virtual

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualScheduler_RunsInDueOrder(t *testing.T) {
	s := NewManualScheduler()
	var got []string
	s.AfterFunc(20*time.Millisecond, func() { got = append(got, "b") })
	s.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	s.AfterFunc(20*time.Millisecond, func() { got = append(got, "c") })

	s.Advance(15 * time.Millisecond)
	assert.Equal(t, []string{"a"}, got)
	assert.Equal(t, 2, s.Pending())

	s.Advance(5 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Zero(t, s.Pending())
}

func TestManualScheduler_Stop(t *testing.T) {
	s := NewManualScheduler()
	ran := false
	stop := s.AfterFunc(0, func() { ran = true })
	stop()
	s.Advance(0)
	assert.False(t, ran)
}

func TestManualScheduler_TasksScheduledWhileAdvancing(t *testing.T) {
	s := NewManualScheduler()
	n := 0
	s.AfterFunc(0, func() {
		n++
		s.AfterFunc(0, func() { n++ })
	})
	s.Advance(0)
	assert.Equal(t, 2, n)
}

func TestLoopScheduler_DeliversOnChannel(t *testing.T) {
	s := NewLoopScheduler(1)
	ran := false
	s.AfterFunc(time.Millisecond, func() { ran = true })

	select {
	case fn := <-s.C():
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}
	require.True(t, ran)
}

func TestLoopScheduler_StoppedCallbackDoesNotRun(t *testing.T) {
	s := NewLoopScheduler(1)
	ran := false
	stop := s.AfterFunc(time.Hour, func() { ran = true })
	stop()

	select {
	case fn := <-s.C():
		fn()
	case <-time.After(20 * time.Millisecond):
	}
	assert.False(t, ran)
}

func TestLoopScheduler_CloseReleasesUndrainedTimers(t *testing.T) {
	before := runtime.NumGoroutine()
	s := NewLoopScheduler(1)
	for i := 0; i < 4; i++ {
		s.AfterFunc(0, func() {})
	}
	// One callback fits the buffer, the other three block on the send.
	require.Eventually(t, func() bool {
		return len(s.C()) == 1 && runtime.NumGoroutine() >= before+3
	}, 2*time.Second, 5*time.Millisecond)

	s.Close()
	s.Close()
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 2*time.Second, 5*time.Millisecond)
}

func TestLoopScheduler_TimerAfterCloseDoesNotBlock(t *testing.T) {
	before := runtime.NumGoroutine()
	s := NewLoopScheduler(0)
	s.Close()
	s.AfterFunc(0, func() {})
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 2*time.Second, 5*time.Millisecond)
}

func TestEngine_CloseReleasesDefaultScheduler(t *testing.T) {
	before := runtime.NumGoroutine()
	e, err := New(100, intKey,
		WithEstimateItemHeight(uniform(10)),
		WithScrollingDelay(time.Millisecond),
	)
	require.NoError(t, err)
	e.OnResize(50)
	for i := 1; i <= 5; i++ {
		e.OnScroll(float64(i * 10))
		time.Sleep(20 * time.Millisecond)
	}

	e.Close()
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 2*time.Second, 5*time.Millisecond)
}
