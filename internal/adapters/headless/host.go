package headless

import (
	"context"
	"fmt"

	"github.com/xvierd/corgi-cli/internal/adapters/loop"
	"github.com/xvierd/corgi-cli/internal/domain"
	"github.com/xvierd/corgi-cli/internal/ports"
	"github.com/xvierd/corgi-cli/internal/services"
)

// Host runs one controller on a loop and serializes every call onto it.
type Host struct {
	loop       *loop.Loop
	surface    *Surface
	controller *services.TimerController
}

// NewHost creates a stopped timer on l. The loop must be running before
// any driver method is called.
func NewHost(l *loop.Loop, track float64, settings domain.Settings, opts ...services.Option) *Host {
	surface := NewSurface(track, settings)
	opts = append([]services.Option{services.WithSettings(settings)}, opts...)
	controller := services.NewTimerController(l, services.Surfaces{
		Settings: surface,
		Controls: surface,
		Display:  surface,
		Motion:   surface,
	}, opts...)

	return &Host{loop: l, surface: surface, controller: controller}
}

// ID returns the hosted controller's identifier.
func (h *Host) ID() string {
	return h.controller.ID()
}

func (h *Host) do(ctx context.Context, op string, fn func()) (ports.TimerReport, error) {
	var report ports.TimerReport
	err := h.loop.Do(ctx, func() {
		if fn != nil {
			fn()
		}
		report = ports.TimerReport{
			Timer:   h.controller.Snapshot(),
			Surface: h.surface.State(),
		}
	})
	if err != nil {
		return ports.TimerReport{}, fmt.Errorf("timer %s: %w", op, err)
	}
	return report, nil
}

func (h *Host) Start(ctx context.Context) (ports.TimerReport, error) {
	return h.do(ctx, "start", h.controller.Start)
}

func (h *Host) Stop(ctx context.Context) (ports.TimerReport, error) {
	return h.do(ctx, "stop", h.controller.Stop)
}

func (h *Host) Reset(ctx context.Context) (ports.TimerReport, error) {
	return h.do(ctx, "reset", h.controller.Reset)
}

// SetWorkMinutes stores raw as the work field and notifies the controller.
func (h *Host) SetWorkMinutes(ctx context.Context, raw string) (ports.TimerReport, error) {
	return h.do(ctx, "set work minutes", func() {
		h.surface.workValue = raw
		h.controller.WorkSettingChanged()
	})
}

// SetBreakMinutes stores raw as the break field and notifies the controller.
func (h *Host) SetBreakMinutes(ctx context.Context, raw string) (ports.TimerReport, error) {
	return h.do(ctx, "set break minutes", func() {
		h.surface.breakValue = raw
		h.controller.BreakSettingChanged()
	})
}

func (h *Host) State(ctx context.Context) (ports.TimerReport, error) {
	return h.do(ctx, "state", nil)
}

// Close cancels the controller's activities.
func (h *Host) Close(ctx context.Context) error {
	_, err := h.do(ctx, "close", h.controller.Close)
	return err
}

var _ ports.TimerDriver = (*Host)(nil)
