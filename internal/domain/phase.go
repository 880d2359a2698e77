// Package domain contains the core entities of the corgi timer.
// These types describe the countdown and its phases and are independent
// of any terminal, transport or configuration concerns.
package domain

// Phase identifies which interval is currently counting down.
type Phase string

const (
	PhaseWorking Phase = "working"
	PhaseBreak   Phase = "break"
)

// Opposite returns the phase a completed countdown rolls over into.
func (p Phase) Opposite() Phase {
	if p == PhaseWorking {
		return PhaseBreak
	}
	return PhaseWorking
}

// IsWorking returns true for the work phase.
func (p Phase) IsWorking() bool {
	return p == PhaseWorking
}

// Label returns a human-readable label for the phase.
func (p Phase) Label() string {
	switch p {
	case PhaseWorking:
		return "Work"
	case PhaseBreak:
		return "Break"
	default:
		return "Unknown"
	}
}
