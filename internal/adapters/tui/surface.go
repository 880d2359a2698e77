package tui

import (
	"strconv"
	"time"

	"github.com/xvierd/corgi-cli/internal/domain"
	"github.com/xvierd/corgi-cli/internal/ports"
)

// surface is the terminal side of the controller: it stores what the
// controller pushes and serves the minutes typed into the settings fields.
type surface struct {
	text     string
	keys     *keyMap
	track    float64
	position float64
	glide    *glide
	now      func() time.Time

	workValue  string
	breakValue string
}

func newSurface(keys *keyMap, track float64, settings domain.Settings) *surface {
	return &surface{
		keys:       keys,
		track:      track,
		now:        time.Now,
		workValue:  strconv.Itoa(settings.WorkMinutes),
		breakValue: strconv.Itoa(settings.BreakMinutes),
	}
}

// WorkMinutes implements ports.SettingsSource.
func (s *surface) WorkMinutes() int { return domain.ParseMinutes(s.workValue) }

// BreakMinutes implements ports.SettingsSource.
func (s *surface) BreakMinutes() int { return domain.ParseMinutes(s.breakValue) }

// SetEnabled implements ports.ControlSurface by toggling the key binding,
// which also hides it from the help line.
func (s *surface) SetEnabled(c ports.Control, enabled bool) {
	if b := s.keys.binding(c); b != nil {
		b.SetEnabled(enabled)
	}
}

func (s *surface) enabled(c ports.Control) bool {
	b := s.keys.binding(c)
	return b != nil && b.Enabled()
}

// SetText implements ports.DisplaySink.
func (s *surface) SetText(text string) { s.text = text }

// TrackLength implements ports.MotionSink. The track is measured in cells.
func (s *surface) TrackLength() float64 { return s.track }

// SetPosition implements ports.MotionSink.
func (s *surface) SetPosition(offset float64) {
	s.glide = nil
	s.position = clamp(offset, 0, s.track)
}

// ResetToOrigin implements ports.MotionSink.
func (s *surface) ResetToOrigin() {
	s.glide = nil
	s.position = 0
}

// Glide implements ports.MotionSink.
func (s *surface) Glide(from, to float64, d time.Duration) ports.Handle {
	g := &glide{from: from, to: to, start: s.now(), d: d, s: s}
	s.glide = g
	s.position = clamp(from, 0, s.track)
	return g
}

// Position returns where the element is right now, advancing any glide.
func (s *surface) Position() float64 {
	if s.glide != nil {
		pos, done := s.glide.at(s.now())
		s.position = clamp(pos, 0, s.track)
		if done {
			s.glide = nil
		}
	}
	return s.position
}

func (s *surface) gliding() bool {
	return s.glide != nil
}

// glide is a linear transition evaluated lazily at render time.
type glide struct {
	from, to float64
	start    time.Time
	d        time.Duration
	s        *surface
}

func (g *glide) at(now time.Time) (float64, bool) {
	elapsed := now.Sub(g.start)
	if g.d <= 0 || elapsed >= g.d {
		return g.to, true
	}
	if elapsed <= 0 {
		return g.from, false
	}
	return g.from + (g.to-g.from)*float64(elapsed)/float64(g.d), false
}

// Cancel freezes the element at its current position.
func (g *glide) Cancel() {
	if g.s.glide != g {
		return
	}
	g.s.Position()
	g.s.glide = nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var (
	_ ports.SettingsSource = (*surface)(nil)
	_ ports.ControlSurface = (*surface)(nil)
	_ ports.DisplaySink    = (*surface)(nil)
	_ ports.MotionSink     = (*surface)(nil)
)
