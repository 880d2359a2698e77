package services

import (
	"io"
	"log/slog"
	"time"

	"github.com/xvierd/corgi-cli/internal/domain"
	"github.com/xvierd/corgi-cli/internal/ports"
)

// TickInterval is how often the countdown advances.
const TickInterval = time.Second

// DefaultMotionFrames is the number of discrete position updates per work interval.
const DefaultMotionFrames = 100

// Surfaces groups the collaborators a controller drives.
type Surfaces struct {
	Settings ports.SettingsSource
	Controls ports.ControlSurface
	Display  ports.DisplaySink
	Motion   ports.MotionSink
}

// Option configures a TimerController.
type Option func(*TimerController)

// WithSettings sets the initial work and break lengths.
func WithSettings(s domain.Settings) Option {
	return func(c *TimerController) {
		c.workSeconds = domain.MinutesToSeconds(s.WorkMinutes)
		c.breakSeconds = domain.MinutesToSeconds(s.BreakMinutes)
	}
}

// WithMotionMode selects discrete or continuous motion.
func WithMotionMode(m domain.MotionMode) Option {
	return func(c *TimerController) {
		c.motionMode = m
	}
}

// WithMotionFrames sets the number of discrete motion updates per work interval.
func WithMotionFrames(n int) Option {
	return func(c *TimerController) {
		if n > 0 {
			c.motionFrames = n
		}
	}
}

// WithTickInterval changes how long one countdown second lasts.
// Motion is scaled to match.
func WithTickInterval(d time.Duration) Option {
	return func(c *TimerController) {
		if d > 0 {
			c.tickInterval = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *TimerController) {
		if l != nil {
			c.logger = l
		}
	}
}

// TimerController alternates work and break countdowns and keeps the
// walking element in step with the work countdown.
//
// A controller is not safe for concurrent use. All of its methods, and
// every callback it hands to its scheduler, must run on one logical thread.
type TimerController struct {
	id        string
	scheduler ports.Scheduler
	surfaces  Surfaces
	logger    *slog.Logger

	phase        domain.Phase
	remaining    int
	running      bool
	workSeconds  int
	breakSeconds int

	tickInterval time.Duration
	motionMode   domain.MotionMode
	motionFrames int
	motionFrame  int

	activities activitySet
}

// NewTimerController creates a stopped controller in the work phase and
// pushes the initial display text and control states to its surfaces.
func NewTimerController(scheduler ports.Scheduler, surfaces Surfaces, opts ...Option) *TimerController {
	defaults := domain.DefaultSettings()
	c := &TimerController{
		id:           domain.NewTimerID(),
		scheduler:    scheduler,
		surfaces:     surfaces,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		phase:        domain.PhaseWorking,
		workSeconds:  domain.MinutesToSeconds(defaults.WorkMinutes),
		breakSeconds: domain.MinutesToSeconds(defaults.BreakMinutes),
		tickInterval: TickInterval,
		motionMode:   domain.MotionDiscrete,
		motionFrames: DefaultMotionFrames,
		activities:   newActivitySet(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("timer", c.id)
	c.remaining = c.workSeconds

	c.refreshDisplay()
	c.refreshControls()
	return c
}

// ID returns the controller's unique identifier.
func (c *TimerController) ID() string {
	return c.id
}

// Snapshot returns the controller's current state.
func (c *TimerController) Snapshot() domain.TimerState {
	return domain.TimerState{
		ID:           c.id,
		Phase:        c.phase,
		Remaining:    c.remaining,
		Running:      c.running,
		WorkSeconds:  c.workSeconds,
		BreakSeconds: c.breakSeconds,
	}
}

// Running returns true while the countdown is ticking.
func (c *TimerController) Running() bool {
	return c.running
}

// Start begins counting down. It is a no-op while already running.
func (c *TimerController) Start() {
	if c.running {
		return
	}
	c.running = true
	c.refreshControls()

	c.surfaces.Motion.ResetToOrigin()
	c.activities.set(activityTick, c.scheduler.Every(c.tickInterval, c.tick))
	if c.phase.IsWorking() {
		c.startMotion()
	}

	c.logger.Debug("timer started", "phase", c.phase, "remaining", c.remaining)
}

// Stop pauses the countdown, keeping phase and remaining time.
// It is a no-op while stopped.
func (c *TimerController) Stop() {
	if !c.running {
		return
	}
	c.activities.cancelAll()
	c.running = false
	c.refreshControls()

	c.logger.Debug("timer stopped", "phase", c.phase, "remaining", c.remaining)
}

// Reset stops the countdown and returns to a full work interval.
func (c *TimerController) Reset() {
	c.Stop()
	c.remaining = c.workSeconds
	c.phase = domain.PhaseWorking
	c.refreshDisplay()

	c.activities.cancel(activityMotion)
	c.surfaces.Motion.ResetToOrigin()

	c.logger.Debug("timer reset", "remaining", c.remaining)
}

// WorkSettingChanged re-reads the work length. While stopped the countdown
// is reloaded from it, whatever the current phase.
func (c *TimerController) WorkSettingChanged() {
	c.workSeconds = domain.MinutesToSeconds(c.surfaces.Settings.WorkMinutes())
	if !c.running {
		c.remaining = c.workSeconds
		c.refreshDisplay()
	}
	c.logger.Debug("work length changed", "seconds", c.workSeconds)
}

// BreakSettingChanged re-reads the break length. The countdown itself is
// left alone; the display is refreshed only while stopped in the break phase.
func (c *TimerController) BreakSettingChanged() {
	c.breakSeconds = domain.MinutesToSeconds(c.surfaces.Settings.BreakMinutes())
	if !c.running && !c.phase.IsWorking() {
		c.refreshDisplay()
	}
	c.logger.Debug("break length changed", "seconds", c.breakSeconds)
}

// Close cancels every scheduled activity without touching the surfaces.
func (c *TimerController) Close() {
	c.activities.cancelAll()
	c.running = false
}

func (c *TimerController) tick() {
	if c.remaining > 0 {
		c.remaining--
		c.refreshDisplay()
		if c.remaining == 0 && c.phase.IsWorking() {
			c.finishMotion()
		}
		return
	}

	completed := c.phase
	c.phase = c.phase.Opposite()
	c.remaining = c.phaseSeconds(c.phase)
	c.refreshDisplay()

	c.activities.cancel(activityMotion)
	c.surfaces.Motion.ResetToOrigin()
	if c.phase.IsWorking() {
		c.startMotion()
	}

	c.logger.Info("phase complete", "completed", completed, "next", c.phase, "remaining", c.remaining)
}

func (c *TimerController) phaseSeconds(p domain.Phase) int {
	if p.IsWorking() {
		return c.workSeconds
	}
	return c.breakSeconds
}

// startMotion drives the element from the position matching the work time
// already spent to the end of the track, arriving when the countdown hits 0.
func (c *TimerController) startMotion() {
	track := c.surfaces.Motion.TrackLength()
	total := c.workSeconds
	if total <= 0 {
		c.surfaces.Motion.SetPosition(track)
		return
	}

	left := c.remaining
	if left > total {
		left = total
	}
	elapsed := total - left

	if c.motionMode == domain.MotionContinuous {
		from := track * float64(elapsed) / float64(total)
		h := c.surfaces.Motion.Glide(from, track, time.Duration(left)*c.tickInterval)
		c.activities.set(activityMotion, h)
		return
	}

	c.motionFrame = elapsed * c.motionFrames / total
	if c.motionFrame > 0 {
		c.surfaces.Motion.SetPosition(c.framePosition(track))
	}
	if c.motionFrame >= c.motionFrames {
		return
	}
	interval := time.Duration(total) * c.tickInterval / time.Duration(c.motionFrames)
	if interval <= 0 {
		interval = time.Millisecond
	}
	c.activities.set(activityMotion, c.scheduler.Every(interval, c.motionStep))
}

// finishMotion puts the element at the end of the track when the work
// countdown reaches zero. A schedule resumed mid-frame runs up to one
// frame behind the countdown.
func (c *TimerController) finishMotion() {
	c.activities.cancel(activityMotion)
	c.motionFrame = c.motionFrames
	c.surfaces.Motion.SetPosition(c.surfaces.Motion.TrackLength())
}

func (c *TimerController) motionStep() {
	c.motionFrame++
	track := c.surfaces.Motion.TrackLength()
	c.surfaces.Motion.SetPosition(c.framePosition(track))
	if c.motionFrame >= c.motionFrames {
		c.activities.cancel(activityMotion)
	}
}

func (c *TimerController) framePosition(track float64) float64 {
	if c.motionFrame >= c.motionFrames {
		return track
	}
	return track * float64(c.motionFrame) / float64(c.motionFrames)
}

func (c *TimerController) refreshDisplay() {
	c.surfaces.Display.SetText(domain.FormatClock(c.remaining))
}

func (c *TimerController) refreshControls() {
	c.surfaces.Controls.SetEnabled(ports.ControlStart, !c.running)
	c.surfaces.Controls.SetEnabled(ports.ControlStop, c.running)
	c.surfaces.Controls.SetEnabled(ports.ControlReset, !c.running)
}
