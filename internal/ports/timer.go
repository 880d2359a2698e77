// Package ports declares the boundaries between the timer controller and
// the hosts that embed it (Ports and Adapters pattern).
package ports

import "time"

// Control identifies one of the timer's user-facing triggers.
type Control int

const (
	ControlStart Control = iota
	ControlStop
	ControlReset
)

// Controls lists every control in display order.
var Controls = []Control{ControlStart, ControlStop, ControlReset}

// String returns the control's name.
func (c Control) String() string {
	switch c {
	case ControlStart:
		return "start"
	case ControlStop:
		return "stop"
	case ControlReset:
		return "reset"
	default:
		return "unknown"
	}
}

// SettingsSource provides the user-entered interval lengths.
// This is a driven port (read by the controller on construction and on
// change notifications).
type SettingsSource interface {
	// WorkMinutes returns the configured work interval in minutes.
	// Unparseable input is reported as 0.
	WorkMinutes() int

	// BreakMinutes returns the configured break interval in minutes.
	BreakMinutes() int
}

// ControlSurface reflects which triggers are currently usable.
type ControlSurface interface {
	SetEnabled(control Control, enabled bool)
}

// DisplaySink shows the remaining time.
type DisplaySink interface {
	// SetText receives the remaining time formatted as MM:SS.
	SetText(text string)
}

// MotionSink moves the visual element along its track.
type MotionSink interface {
	// TrackLength returns the maximum travel distance from the origin.
	TrackLength() float64

	// SetPosition places the element at an offset from the origin.
	SetPosition(offset float64)

	// ResetToOrigin returns the element to offset 0 and drops any glide
	// in progress.
	ResetToOrigin()

	// Glide starts a single linear transition from one offset to another
	// over d. Cancelling the returned handle freezes the element where it is.
	Glide(from, to float64, d time.Duration) Handle
}
