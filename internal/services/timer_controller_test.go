package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/corgi-cli/internal/domain"
	"github.com/xvierd/corgi-cli/internal/ports"
)

func newTestController(t *testing.T, opts ...Option) (*TimerController, *manualScheduler, *recordingSurface) {
	t.Helper()
	sched := &manualScheduler{}
	surface := newRecordingSurface(100)
	c := NewTimerController(sched, surface.surfaces(), opts...)
	return c, sched, surface
}

func TestNewTimerController_Defaults(t *testing.T) {
	c, sched, surface := newTestController(t)

	s := c.Snapshot()
	assert.Equal(t, domain.PhaseWorking, s.Phase)
	assert.Equal(t, 25*60, s.Remaining)
	assert.Equal(t, 25*60, s.WorkSeconds)
	assert.Equal(t, 5*60, s.BreakSeconds)
	assert.False(t, s.Running)
	assert.NotEmpty(t, c.ID())
	assert.Equal(t, c.ID(), s.ID)

	assert.Equal(t, "25:00", surface.text())
	assert.True(t, surface.enabled[ports.ControlStart])
	assert.False(t, surface.enabled[ports.ControlStop])
	assert.True(t, surface.enabled[ports.ControlReset])
	assert.Equal(t, 0, sched.live())
}

func TestNewTimerController_WithSettings(t *testing.T) {
	c, _, surface := newTestController(t, WithSettings(domain.Settings{WorkMinutes: 50, BreakMinutes: 10}))

	s := c.Snapshot()
	assert.Equal(t, 3000, s.Remaining)
	assert.Equal(t, 600, s.BreakSeconds)
	assert.Equal(t, "50:00", surface.text())
}

func TestTimerController_Start(t *testing.T) {
	c, sched, surface := newTestController(t)

	c.Start()

	assert.True(t, c.Running())
	assert.False(t, surface.enabled[ports.ControlStart])
	assert.True(t, surface.enabled[ports.ControlStop])
	assert.False(t, surface.enabled[ports.ControlReset])
	assert.Equal(t, 1, surface.resets, "start should return the element to its origin")
	assert.Equal(t, 2, sched.live(), "tick and motion should both be scheduled")
	assert.True(t, c.activities.active(activityTick))
	assert.True(t, c.activities.active(activityMotion))
}

func TestTimerController_StartWhileRunningIsNoop(t *testing.T) {
	c, sched, surface := newTestController(t)

	c.Start()
	sched.Ticks(3)
	before := c.Snapshot()
	scheduled := len(sched.activities)
	resets := surface.resets

	c.Start()

	assert.Equal(t, before, c.Snapshot())
	assert.Equal(t, scheduled, len(sched.activities), "no new activity should be created")
	assert.Equal(t, 2, sched.live())
	assert.Equal(t, resets, surface.resets)
}

func TestTimerController_TicksDecrement(t *testing.T) {
	c, sched, surface := newTestController(t, withSeconds(65, 30))
	assert.Equal(t, "01:05", surface.text())

	c.Start()
	sched.Ticks(60)

	assert.Equal(t, 5, c.Snapshot().Remaining)
	assert.Equal(t, "00:05", surface.text())
	assert.Equal(t, domain.PhaseWorking, c.Snapshot().Phase)
}

func TestTimerController_RolloverAfterDurationTicks(t *testing.T) {
	for _, minutes := range []int{0, 1, 2, 3} {
		t.Run(fmt.Sprintf("%d minutes", minutes), func(t *testing.T) {
			c, sched, _ := newTestController(t, WithSettings(domain.Settings{WorkMinutes: minutes, BreakMinutes: 1}))
			d := minutes * 60

			c.Start()
			sched.Ticks(d)

			s := c.Snapshot()
			require.Equal(t, 0, s.Remaining)
			require.Equal(t, domain.PhaseWorking, s.Phase)

			sched.Ticks(1)

			s = c.Snapshot()
			assert.Equal(t, domain.PhaseBreak, s.Phase)
			assert.Equal(t, 60, s.Remaining)
			assert.True(t, s.Running, "rollover keeps the timer running")
		})
	}
}

func TestTimerController_AlternatingPhases(t *testing.T) {
	c, sched, surface := newTestController(t, withSeconds(2, 1))
	c.Start()

	steps := []struct {
		phase     domain.Phase
		remaining int
	}{
		{domain.PhaseWorking, 1},
		{domain.PhaseWorking, 0},
		{domain.PhaseBreak, 1},
		{domain.PhaseBreak, 0},
		{domain.PhaseWorking, 2},
		{domain.PhaseWorking, 1},
	}

	for i, want := range steps {
		sched.Ticks(1)
		s := c.Snapshot()
		assert.Equal(t, want.phase, s.Phase, "tick %d phase", i+1)
		assert.Equal(t, want.remaining, s.Remaining, "tick %d remaining", i+1)
		assert.Equal(t, domain.FormatClock(want.remaining), surface.text(), "tick %d display", i+1)
	}
}

func TestTimerController_ZeroLengthPhaseCompletesOnNextTick(t *testing.T) {
	c, sched, surface := newTestController(t, withSeconds(3, 60))
	surface.workMinutes = 0
	c.WorkSettingChanged()
	assert.Equal(t, "00:00", surface.text())

	c.Start()
	sched.Ticks(1)

	assert.Equal(t, domain.PhaseBreak, c.Snapshot().Phase)
	assert.Equal(t, 60, c.Snapshot().Remaining)
}

func TestTimerController_Stop(t *testing.T) {
	c, sched, surface := newTestController(t, withSeconds(10, 5))
	c.Start()
	sched.Ticks(4)

	c.Stop()

	s := c.Snapshot()
	assert.False(t, s.Running)
	assert.Equal(t, 6, s.Remaining)
	assert.Equal(t, domain.PhaseWorking, s.Phase)
	assert.Equal(t, 0, sched.live(), "stop cancels tick and motion")
	assert.True(t, surface.enabled[ports.ControlStart])
	assert.False(t, surface.enabled[ports.ControlStop])
	assert.True(t, surface.enabled[ports.ControlReset])

	sched.Ticks(10)
	assert.Equal(t, 6, c.Snapshot().Remaining, "no ticks after stop")
}

func TestTimerController_StopIsIdempotent(t *testing.T) {
	c, sched, surface := newTestController(t, withSeconds(10, 5))
	c.Start()
	sched.Ticks(2)

	c.Stop()
	once := c.Snapshot()
	texts, positions := len(surface.texts), len(surface.positions)
	enabled := map[ports.Control]bool{}
	for k, v := range surface.enabled {
		enabled[k] = v
	}

	c.Stop()

	assert.Equal(t, once, c.Snapshot())
	assert.Equal(t, texts, len(surface.texts))
	assert.Equal(t, positions, len(surface.positions))
	assert.Equal(t, enabled, surface.enabled)
}

func TestTimerController_StopWhenNeverStarted(t *testing.T) {
	c, sched, _ := newTestController(t)
	before := c.Snapshot()

	c.Stop()

	assert.Equal(t, before, c.Snapshot())
	assert.Equal(t, 0, sched.live())
}

func TestTimerController_Reset(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *TimerController, s *manualScheduler)
	}{
		{"fresh", func(c *TimerController, s *manualScheduler) {}},
		{"running mid work", func(c *TimerController, s *manualScheduler) {
			c.Start()
			s.Ticks(3)
		}},
		{"running in break", func(c *TimerController, s *manualScheduler) {
			c.Start()
			s.Ticks(12)
		}},
		{"stopped in break", func(c *TimerController, s *manualScheduler) {
			c.Start()
			s.Ticks(13)
			c.Stop()
		}},
		{"reset twice", func(c *TimerController, s *manualScheduler) {
			c.Start()
			s.Ticks(2)
			c.Reset()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, sched, surface := newTestController(t, withSeconds(10, 5))
			tt.setup(c, sched)

			c.Reset()

			s := c.Snapshot()
			assert.Equal(t, domain.PhaseWorking, s.Phase)
			assert.Equal(t, 10, s.Remaining)
			assert.False(t, s.Running)
			assert.Equal(t, "00:10", surface.text())
			assert.Equal(t, 0.0, surface.position())
			assert.Equal(t, 0, sched.live())
			assert.True(t, surface.enabled[ports.ControlStart])
			assert.False(t, surface.enabled[ports.ControlStop])
		})
	}
}

func TestTimerController_RestartAfterReset(t *testing.T) {
	c, sched, _ := newTestController(t, withSeconds(10, 5))
	c.Start()
	sched.Ticks(3)
	c.Reset()

	c.Start()
	sched.Ticks(1)

	assert.True(t, c.Running())
	assert.Equal(t, 9, c.Snapshot().Remaining)
	assert.Equal(t, 2, sched.live())
}

func TestTimerController_StartInBreakHasNoMotion(t *testing.T) {
	c, sched, _ := newTestController(t, withSeconds(2, 5))
	c.Start()
	sched.Ticks(3)
	require.Equal(t, domain.PhaseBreak, c.Snapshot().Phase)
	assert.False(t, c.activities.active(activityMotion), "motion stops when the break begins")

	c.Stop()
	c.Start()

	assert.True(t, c.activities.active(activityTick))
	assert.False(t, c.activities.active(activityMotion))
	assert.Equal(t, 1, sched.live())
}

func TestTimerController_MotionIsLinearAndMonotonic(t *testing.T) {
	c, sched, surface := newTestController(t, WithSettings(domain.Settings{WorkMinutes: 2, BreakMinutes: 1}))
	c.Start()

	total := 120 * time.Second
	step := 200 * time.Millisecond
	prev := surface.position()
	for elapsed := step; elapsed <= total; elapsed += step {
		sched.Advance(step)
		pos := surface.position()
		require.GreaterOrEqual(t, pos, prev, "position went backwards at %v", elapsed)
		prev = pos

		ideal := surface.track * float64(elapsed) / float64(total)
		require.LessOrEqual(t, pos, ideal+1e-9, "element ahead of schedule at %v", elapsed)
		require.InDelta(t, ideal, pos, surface.track/float64(DefaultMotionFrames)+1e-9, "element lagging at %v", elapsed)
	}

	assert.Equal(t, surface.track, surface.position(), "element reaches the end exactly when work ends")
	assert.Equal(t, 0, c.Snapshot().Remaining)
	assert.False(t, c.activities.active(activityMotion), "motion finishes by itself")
}

func TestTimerController_MotionHalfway(t *testing.T) {
	c, sched, surface := newTestController(t, WithSettings(domain.Settings{WorkMinutes: 2, BreakMinutes: 1}))
	c.Start()

	sched.Advance(60 * time.Second)

	assert.InDelta(t, 50.0, surface.position(), 1e-9)
}

func TestTimerController_MotionRestartsForNextWorkInterval(t *testing.T) {
	c, sched, surface := newTestController(t, withSeconds(10, 2))
	c.Start()

	sched.Ticks(11)
	require.Equal(t, domain.PhaseBreak, c.Snapshot().Phase)
	assert.Equal(t, 0.0, surface.position(), "element returns to origin at rollover")
	assert.False(t, c.activities.active(activityMotion))

	sched.Ticks(3)
	require.Equal(t, domain.PhaseWorking, c.Snapshot().Phase)
	assert.True(t, c.activities.active(activityMotion))

	sched.Advance(5 * time.Second)
	assert.InDelta(t, 50.0, surface.position(), 1e-9)
}

func TestTimerController_ResumeKeepsMotionInStep(t *testing.T) {
	c, sched, surface := newTestController(t, withSeconds(100, 10))
	c.Start()
	sched.Ticks(40)
	c.Stop()
	paused := surface.position()
	assert.InDelta(t, 40.0, paused, 1e-9)

	resets := surface.resets
	c.Start()

	assert.Equal(t, resets+1, surface.resets)
	assert.InDelta(t, 40.0, surface.position(), 1e-9, "position matches work time already spent")

	sched.Ticks(60)
	assert.Equal(t, surface.track, surface.position())
	assert.Equal(t, 0, c.Snapshot().Remaining)
}

func TestTimerController_ResumeMidFrameReachesEnd(t *testing.T) {
	// 25 minutes over 100 frames is 15 seconds per frame; pausing after 20
	// seconds leaves the resumed schedule 5 seconds behind.
	c, sched, surface := newTestController(t, WithSettings(domain.Settings{WorkMinutes: 25, BreakMinutes: 5}))
	c.Start()
	sched.Ticks(20)
	c.Stop()
	c.Start()

	prev := surface.position()
	for i := 0; i < 1480; i++ {
		sched.Ticks(1)
		require.GreaterOrEqual(t, surface.position(), prev, "position went backwards at tick %d", i+1)
		prev = surface.position()
	}

	require.Equal(t, 0, c.Snapshot().Remaining)
	assert.Equal(t, surface.track, surface.position(), "element reaches the end when the countdown hits zero")
	assert.False(t, c.activities.active(activityMotion))

	sched.Ticks(1)
	assert.Equal(t, domain.PhaseBreak, c.Snapshot().Phase)
	assert.Equal(t, 0.0, surface.position())
}

func TestTimerController_ContinuousMotionEndsAtTrack(t *testing.T) {
	c, sched, surface := newTestController(t,
		withSeconds(10, 5),
		WithMotionMode(domain.MotionContinuous),
	)
	c.Start()
	sched.Ticks(3)
	c.Stop()
	c.Start()
	require.Len(t, surface.glides, 2)

	sched.Ticks(7)

	require.Equal(t, 0, c.Snapshot().Remaining)
	assert.True(t, surface.glides[1].handle.cancelled)
	assert.Equal(t, surface.track, surface.position())
}

func TestTimerController_ZeroWorkLengthMotion(t *testing.T) {
	c, _, surface := newTestController(t, withSeconds(0, 10))

	c.Start()

	assert.Equal(t, surface.track, surface.position())
	assert.False(t, c.activities.active(activityMotion))
}

func TestTimerController_ContinuousMotion(t *testing.T) {
	c, sched, surface := newTestController(t,
		withSeconds(100, 10),
		WithMotionMode(domain.MotionContinuous),
	)

	c.Start()
	require.Len(t, surface.glides, 1)
	g := surface.glides[0]
	assert.Equal(t, 0.0, g.from)
	assert.Equal(t, surface.track, g.to)
	assert.Equal(t, 100*time.Second, g.d)
	assert.Equal(t, 1, sched.live(), "a glide needs no scheduled frames")

	sched.Ticks(25)
	c.Stop()
	assert.True(t, g.handle.cancelled, "stop freezes the glide")

	c.Start()
	require.Len(t, surface.glides, 2)
	assert.InDelta(t, 25.0, surface.glides[1].from, 1e-9)
	assert.Equal(t, 75*time.Second, surface.glides[1].d)

	c.Reset()
	assert.True(t, surface.glides[1].handle.cancelled)
	assert.Equal(t, 0.0, surface.position())
}

func TestTimerController_WorkSettingChanged(t *testing.T) {
	t.Run("stopped reloads countdown", func(t *testing.T) {
		c, _, surface := newTestController(t)
		surface.workMinutes = 40

		c.WorkSettingChanged()

		assert.Equal(t, 2400, c.Snapshot().Remaining)
		assert.Equal(t, "40:00", surface.text())
	})

	t.Run("stopped in break still reloads from work", func(t *testing.T) {
		c, sched, surface := newTestController(t, withSeconds(2, 30))
		c.Start()
		sched.Ticks(3)
		c.Stop()
		require.Equal(t, domain.PhaseBreak, c.Snapshot().Phase)

		surface.workMinutes = 1
		c.WorkSettingChanged()

		assert.Equal(t, 60, c.Snapshot().Remaining)
		assert.Equal(t, domain.PhaseBreak, c.Snapshot().Phase)
	})

	t.Run("running keeps countdown", func(t *testing.T) {
		c, sched, surface := newTestController(t)
		c.Start()
		sched.Ticks(5)
		texts := len(surface.texts)

		surface.workMinutes = 10
		c.WorkSettingChanged()

		assert.Equal(t, 25*60-5, c.Snapshot().Remaining)
		assert.Equal(t, 600, c.Snapshot().WorkSeconds)
		assert.Equal(t, texts, len(surface.texts))
		assert.True(t, c.Running())
	})

	t.Run("unparseable input degrades to zero", func(t *testing.T) {
		c, sched, surface := newTestController(t)
		surface.workMinutes = domain.ParseMinutes("abc")

		c.WorkSettingChanged()
		assert.Equal(t, "00:00", surface.text())

		c.Start()
		sched.Ticks(1)
		assert.Equal(t, domain.PhaseBreak, c.Snapshot().Phase)
	})
}

func TestTimerController_BreakSettingChanged(t *testing.T) {
	t.Run("stopped in work only stores the length", func(t *testing.T) {
		c, _, surface := newTestController(t)
		texts := len(surface.texts)
		surface.breakMinutes = 15

		c.BreakSettingChanged()

		assert.Equal(t, 900, c.Snapshot().BreakSeconds)
		assert.Equal(t, 1500, c.Snapshot().Remaining)
		assert.Equal(t, texts, len(surface.texts), "display is not refreshed in the work phase")
	})

	t.Run("stopped in break refreshes display", func(t *testing.T) {
		c, sched, surface := newTestController(t, withSeconds(1, 30))
		c.Start()
		sched.Ticks(2)
		c.Stop()
		require.Equal(t, domain.PhaseBreak, c.Snapshot().Phase)
		texts := len(surface.texts)

		surface.breakMinutes = 2
		c.BreakSettingChanged()

		assert.Equal(t, texts+1, len(surface.texts))
		assert.Equal(t, 30, c.Snapshot().Remaining, "countdown itself is untouched")
	})

	t.Run("next break uses new length", func(t *testing.T) {
		c, sched, surface := newTestController(t, withSeconds(2, 30))
		c.Start()
		surface.breakMinutes = 1
		c.BreakSettingChanged()

		sched.Ticks(3)

		assert.Equal(t, domain.PhaseBreak, c.Snapshot().Phase)
		assert.Equal(t, 60, c.Snapshot().Remaining)
	})
}

func TestTimerController_IndependentInstances(t *testing.T) {
	a, schedA, surfaceA := newTestController(t, withSeconds(10, 5))
	b, schedB, surfaceB := newTestController(t, withSeconds(10, 5))
	require.NotEqual(t, a.ID(), b.ID())

	a.Start()
	b.Start()
	schedA.Ticks(4)
	b.Stop()
	schedB.Ticks(4)

	assert.Equal(t, 6, a.Snapshot().Remaining)
	assert.Equal(t, 10, b.Snapshot().Remaining)
	assert.Equal(t, "00:06", surfaceA.text())
	assert.Equal(t, "00:10", surfaceB.text())
	assert.Equal(t, 2, schedA.live())
	assert.Equal(t, 0, schedB.live())
}

func TestTimerController_Close(t *testing.T) {
	c, sched, _ := newTestController(t)
	c.Start()

	c.Close()

	assert.False(t, c.Running())
	assert.Equal(t, 0, sched.live())
}

func TestActivitySet(t *testing.T) {
	set := newActivitySet()
	first := &glideHandle{}
	second := &glideHandle{}

	set.set(activityTick, first)
	assert.True(t, set.active(activityTick))

	set.set(activityTick, second)
	assert.True(t, first.cancelled, "replacing a handle cancels the old one")
	assert.False(t, second.cancelled)

	set.set(activityMotion, &glideHandle{})
	set.cancelAll()
	assert.True(t, second.cancelled)
	assert.False(t, set.active(activityTick))
	assert.False(t, set.active(activityMotion))

	set.cancel(activityTick)
	set.set(activityMotion, nil)
	assert.False(t, set.active(activityMotion))
}

func TestTimerController_WithTickInterval(t *testing.T) {
	c, sched, surface := newTestController(t,
		withSeconds(10, 5),
		WithTickInterval(100*time.Millisecond),
		WithMotionFrames(10),
	)
	c.Start()

	sched.Advance(300 * time.Millisecond)
	assert.Equal(t, 7, c.Snapshot().Remaining)
	assert.InDelta(t, 30, surface.position(), 1e-9, "motion is scaled with the tick")
}
