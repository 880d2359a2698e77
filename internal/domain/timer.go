package domain

import (
	"errors"
	"fmt"
)

// Common domain errors.
var (
	ErrUnknownPreset     = errors.New("unknown preset")
	ErrInvalidMotionMode = errors.New("invalid motion mode")
)

// Settings holds the user-entered interval lengths in minutes.
type Settings struct {
	WorkMinutes  int
	BreakMinutes int
}

// DefaultSettings returns the classic 25/5 configuration.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:  25,
		BreakMinutes: 5,
	}
}

// MotionMode selects how the walking element is animated.
type MotionMode string

const (
	// MotionDiscrete moves the element with periodic position updates.
	MotionDiscrete MotionMode = "discrete"

	// MotionContinuous sets up a single interpolated glide per work interval.
	MotionContinuous MotionMode = "continuous"
)

// ValidateMotionMode checks if a string names a supported motion mode.
func ValidateMotionMode(s string) (MotionMode, error) {
	switch m := MotionMode(s); m {
	case MotionDiscrete, MotionContinuous:
		return m, nil
	}
	return "", fmt.Errorf("%w %q: must be one of discrete, continuous", ErrInvalidMotionMode, s)
}

// TimerState is a point-in-time snapshot of a timer controller.
type TimerState struct {
	ID           string
	Phase        Phase
	Remaining    int
	Running      bool
	WorkSeconds  int
	BreakSeconds int
}

// Display returns the remaining time as MM:SS.
func (s TimerState) Display() string {
	return FormatClock(s.Remaining)
}

// PhaseSeconds returns the configured length of the current phase.
func (s TimerState) PhaseSeconds() int {
	if s.Phase.IsWorking() {
		return s.WorkSeconds
	}
	return s.BreakSeconds
}

// Progress returns how far the current phase has advanced (0.0 to 1.0).
func (s TimerState) Progress() float64 {
	total := s.PhaseSeconds()
	if total <= 0 {
		return 1
	}
	done := total - s.Remaining
	if done <= 0 {
		return 0
	}
	if done >= total {
		return 1
	}
	return float64(done) / float64(total)
}

// StatusLabel returns "Running" or "Stopped".
func (s TimerState) StatusLabel() string {
	if s.Running {
		return "Running"
	}
	return "Stopped"
}
