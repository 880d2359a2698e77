package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/corgi-cli/internal/ports"
)

// activityMsg fires one scheduled activity.
type activityMsg struct {
	id uint64
}

// teaScheduler runs periodic activities on the Bubble Tea event loop.
// Every scheduled activity becomes a tea.Tick command; the model collects
// pending commands with flush after each update. Ticks for activities
// that were cancelled in the meantime are dropped on arrival.
type teaScheduler struct {
	next    uint64
	live    map[uint64]*teaActivity
	pending []tea.Cmd
}

type teaActivity struct {
	id       uint64
	interval time.Duration
	fn       func()
	sched    *teaScheduler
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{live: make(map[uint64]*teaActivity)}
}

// Every implements ports.Scheduler.
func (s *teaScheduler) Every(interval time.Duration, fn func()) ports.Handle {
	s.next++
	a := &teaActivity{id: s.next, interval: interval, fn: fn, sched: s}
	s.live[a.id] = a
	s.arm(a)
	return a
}

func (s *teaScheduler) arm(a *teaActivity) {
	id := a.id
	s.pending = append(s.pending, tea.Tick(a.interval, func(time.Time) tea.Msg {
		return activityMsg{id: id}
	}))
}

// dispatch runs a due activity and re-arms it unless it was cancelled.
func (s *teaScheduler) dispatch(id uint64) {
	a, ok := s.live[id]
	if !ok {
		return
	}
	a.fn()
	if _, still := s.live[id]; still {
		s.arm(a)
	}
}

// flush returns the commands armed since the last flush.
func (s *teaScheduler) flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Cancel implements ports.Handle.
func (a *teaActivity) Cancel() {
	delete(a.sched.live, a.id)
}

var _ ports.Scheduler = (*teaScheduler)(nil)
