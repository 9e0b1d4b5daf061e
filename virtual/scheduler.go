package virtual

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs fn once after d has elapsed. fn must be invoked on the same
// event loop that drives the engine; the engine does no locking. The returned
// stop func cancels fn if it has not run yet.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (stop func())
}

// ManualScheduler is a Scheduler driven by Advance instead of wall time.
// Headless hosts and tests use it to step the scrolling debounce.
type ManualScheduler struct {
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) func() {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &manualTask{at: s.now + d, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return func() { t.stopped = true }
}

// Advance moves the clock forward by d and runs every task that became due,
// in due order. Tasks scheduled while advancing run too if they fall due.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.now += d
	for {
		t := s.next()
		if t == nil {
			return
		}
		t.fn()
	}
}

// Pending counts tasks that are scheduled and not stopped.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (s *ManualScheduler) next() *manualTask {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.stopped {
			live = append(live, t)
		}
	}
	s.tasks = live
	sort.Slice(s.tasks, func(i, j int) bool {
		if s.tasks[i].at != s.tasks[j].at {
			return s.tasks[i].at < s.tasks[j].at
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	if len(s.tasks) == 0 || s.tasks[0].at > s.now {
		return nil
	}
	t := s.tasks[0]
	s.tasks = s.tasks[1:]
	return t
}

// LoopScheduler arms wall-clock timers and hands expired callbacks to the
// owner through C. The owner runs them from its own loop:
//
//	for fn := range sched.C() {
//		fn()
//	}
//
// Close releases every timer that expires while nobody reads C.
type LoopScheduler struct {
	c    chan func()
	done chan struct{}
	once sync.Once
}

func NewLoopScheduler(buffer int) *LoopScheduler {
	return &LoopScheduler{c: make(chan func(), buffer), done: make(chan struct{})}
}

func (s *LoopScheduler) AfterFunc(d time.Duration, fn func()) func() {
	stopped := false
	t := time.AfterFunc(d, func() {
		select {
		case s.c <- func() {
			if !stopped {
				fn()
			}
		}:
		case <-s.done:
		}
	})
	return func() {
		stopped = true
		t.Stop()
	}
}

// C delivers expired callbacks.
func (s *LoopScheduler) C() <-chan func() { return s.c }

// Close drops all pending and future deliveries. It is safe to call more
// than once.
func (s *LoopScheduler) Close() {
	s.once.Do(func() { close(s.done) })
}
