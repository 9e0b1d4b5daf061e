package list

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// timerMsg fires a callback registered with a scheduler.
type timerMsg struct {
	owner *scheduler
	id    int
}

// scheduler implements virtual.Scheduler on top of tea.Tick so that timer
// callbacks run inside Update, on the program's event loop.
type scheduler struct {
	next    int
	fns     map[int]func()
	pending []tea.Cmd
}

func newScheduler() *scheduler {
	return &scheduler{fns: make(map[int]func())}
}

func (s *scheduler) AfterFunc(d time.Duration, fn func()) func() {
	s.next++
	id := s.next
	s.fns[id] = fn
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{owner: s, id: id}
	}))
	return func() { delete(s.fns, id) }
}

// fire runs the callback for id unless it was stopped. It reports whether
// anything ran.
func (s *scheduler) fire(id int) bool {
	fn, ok := s.fns[id]
	if !ok {
		return false
	}
	delete(s.fns, id)
	fn()
	return true
}

// flush returns the ticks armed since the last flush.
func (s *scheduler) flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

func (s *scheduler) armed() int { return len(s.fns) }
