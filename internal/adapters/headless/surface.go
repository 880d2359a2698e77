// Package headless hosts a timer controller without a terminal, for
// transports such as the MCP server.
package headless

import (
	"strconv"
	"time"

	"github.com/xvierd/corgi-cli/internal/domain"
	"github.com/xvierd/corgi-cli/internal/ports"
)

// Surface records what a controller pushes. It is only touched from the
// host's loop goroutine.
type Surface struct {
	text     string
	enabled  map[ports.Control]bool
	track    float64
	position float64
	glide    *glide
	now      func() time.Time

	workValue  string
	breakValue string
}

// NewSurface creates a surface with the given track length and settings.
func NewSurface(track float64, settings domain.Settings) *Surface {
	return &Surface{
		enabled:    make(map[ports.Control]bool, len(ports.Controls)),
		track:      track,
		now:        time.Now,
		workValue:  strconv.Itoa(settings.WorkMinutes),
		breakValue: strconv.Itoa(settings.BreakMinutes),
	}
}

func (s *Surface) WorkMinutes() int  { return domain.ParseMinutes(s.workValue) }
func (s *Surface) BreakMinutes() int { return domain.ParseMinutes(s.breakValue) }

func (s *Surface) SetEnabled(c ports.Control, enabled bool) { s.enabled[c] = enabled }
func (s *Surface) SetText(text string)                      { s.text = text }
func (s *Surface) TrackLength() float64                     { return s.track }

func (s *Surface) SetPosition(offset float64) {
	s.glide = nil
	s.position = offset
}

func (s *Surface) ResetToOrigin() {
	s.glide = nil
	s.position = 0
}

// Glide records a linear transition; positions are interpolated on read.
func (s *Surface) Glide(from, to float64, d time.Duration) ports.Handle {
	g := &glide{from: from, to: to, start: s.now(), d: d, s: s}
	s.glide = g
	s.position = from
	return g
}

func (s *Surface) currentPosition() float64 {
	if s.glide == nil {
		return s.position
	}
	elapsed := s.now().Sub(s.glide.start)
	if s.glide.d <= 0 || elapsed >= s.glide.d {
		s.position = s.glide.to
		s.glide = nil
		return s.position
	}
	if elapsed > 0 {
		frac := float64(elapsed) / float64(s.glide.d)
		s.position = s.glide.from + (s.glide.to-s.glide.from)*frac
	}
	return s.position
}

// State reports the surface contents.
func (s *Surface) State() ports.SurfaceState {
	enabled := make(map[ports.Control]bool, len(s.enabled))
	for c, on := range s.enabled {
		enabled[c] = on
	}
	return ports.SurfaceState{
		Display:  s.text,
		Position: s.currentPosition(),
		Track:    s.track,
		Enabled:  enabled,
	}
}

type glide struct {
	from, to float64
	start    time.Time
	d        time.Duration
	s        *Surface
}

// Cancel freezes the walker where it is.
func (g *glide) Cancel() {
	if g.s.glide != g {
		return
	}
	g.s.currentPosition()
	g.s.glide = nil
}

var (
	_ ports.SettingsSource = (*Surface)(nil)
	_ ports.ControlSurface = (*Surface)(nil)
	_ ports.DisplaySink    = (*Surface)(nil)
	_ ports.MotionSink     = (*Surface)(nil)
)
