package services

import (
	"time"

	"github.com/xvierd/corgi-cli/internal/ports"
)

// manualScheduler fires activities only when the test advances its clock.
type manualScheduler struct {
	now        time.Duration
	seq        int
	activities []*manualActivity
}

type manualActivity struct {
	interval  time.Duration
	next      time.Duration
	fn        func()
	seq       int
	cancelled bool
}

func (a *manualActivity) Cancel() { a.cancelled = true }

func (s *manualScheduler) Every(interval time.Duration, fn func()) ports.Handle {
	a := &manualActivity{interval: interval, next: s.now + interval, fn: fn, seq: s.seq}
	s.seq++
	s.activities = append(s.activities, a)
	return a
}

// Advance moves the clock forward, firing due activities in time order.
// Activities due at the same instant fire in creation order.
func (s *manualScheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		var due *manualActivity
		for _, a := range s.activities {
			if a.cancelled || a.next > end {
				continue
			}
			if due == nil || a.next < due.next || (a.next == due.next && a.seq < due.seq) {
				due = a
			}
		}
		if due == nil {
			break
		}
		s.now = due.next
		due.next += due.interval
		due.fn()
	}
	s.now = end
}

// Ticks advances by n tick intervals.
func (s *manualScheduler) Ticks(n int) {
	s.Advance(time.Duration(n) * TickInterval)
}

func (s *manualScheduler) live() int {
	n := 0
	for _, a := range s.activities {
		if !a.cancelled {
			n++
		}
	}
	return n
}

type glideCall struct {
	from, to float64
	d        time.Duration
	handle   *glideHandle
}

type glideHandle struct{ cancelled bool }

func (h *glideHandle) Cancel() { h.cancelled = true }

// recordingSurface implements every sink port and the settings source.
type recordingSurface struct {
	workMinutes  int
	breakMinutes int

	texts     []string
	enabled   map[ports.Control]bool
	track     float64
	positions []float64
	resets    int
	glides    []glideCall
}

func newRecordingSurface(track float64) *recordingSurface {
	return &recordingSurface{
		workMinutes:  25,
		breakMinutes: 5,
		enabled:      make(map[ports.Control]bool),
		track:        track,
	}
}

func (r *recordingSurface) surfaces() Surfaces {
	return Surfaces{Settings: r, Controls: r, Display: r, Motion: r}
}

func (r *recordingSurface) WorkMinutes() int  { return r.workMinutes }
func (r *recordingSurface) BreakMinutes() int { return r.breakMinutes }

func (r *recordingSurface) SetEnabled(c ports.Control, enabled bool) { r.enabled[c] = enabled }

func (r *recordingSurface) SetText(text string) { r.texts = append(r.texts, text) }

func (r *recordingSurface) TrackLength() float64 { return r.track }

func (r *recordingSurface) SetPosition(offset float64) {
	r.positions = append(r.positions, offset)
}

func (r *recordingSurface) ResetToOrigin() {
	r.resets++
	r.positions = append(r.positions, 0)
}

func (r *recordingSurface) Glide(from, to float64, d time.Duration) ports.Handle {
	h := &glideHandle{}
	r.glides = append(r.glides, glideCall{from: from, to: to, d: d, handle: h})
	return h
}

func (r *recordingSurface) text() string {
	if len(r.texts) == 0 {
		return ""
	}
	return r.texts[len(r.texts)-1]
}

func (r *recordingSurface) position() float64 {
	if len(r.positions) == 0 {
		return 0
	}
	return r.positions[len(r.positions)-1]
}

// withSeconds sets interval lengths below one minute for fast scenarios.
func withSeconds(work, brk int) Option {
	return func(c *TimerController) {
		c.workSeconds = work
		c.breakSeconds = brk
	}
}
