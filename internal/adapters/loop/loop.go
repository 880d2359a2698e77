// Package loop runs callbacks one at a time on a single goroutine, giving
// a timer controller the single-threaded world it expects outside a TUI.
package loop

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/xvierd/corgi-cli/internal/ports"
)

// ErrStopped is returned when work is posted to a loop that is no longer running.
var ErrStopped = errors.New("loop stopped")

// Loop is an event loop. Callbacks posted with Do and every activity
// created with Every run on the goroutine that called Run.
type Loop struct {
	work    chan func()
	done    chan struct{}
	running atomic.Bool
	once    sync.Once
	logger  *slog.Logger
}

// New creates a loop. A nil logger discards output.
func New(logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loop{
		work:   make(chan func()),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Run processes posted work until ctx is cancelled. It may be called once.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return errors.New("loop already running")
	}
	defer l.once.Do(func() { close(l.done) })

	l.logger.Debug("loop started")
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("loop stopped")
			return nil
		case fn := <-l.work:
			fn()
		}
	}
}

// Do runs fn on the loop and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		fn()
	}

	select {
	case l.work <- wrapped:
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrStopped
	}

	// fn runs synchronously on the loop, so it has finished before the
	// loop can close done.
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Every implements ports.Scheduler. The returned handle must be cancelled
// from the loop goroutine; once Cancel returns, fn is never called again.
func (l *Loop) Every(interval time.Duration, fn func()) ports.Handle {
	a := &activity{stop: make(chan struct{})}
	go a.run(l, interval, fn)
	return a
}

type activity struct {
	cancelled atomic.Bool
	stop      chan struct{}
}

func (a *activity) run(l *Loop, interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	fire := func() {
		if !a.cancelled.Load() {
			fn()
		}
	}
	for {
		select {
		case <-a.stop:
			return
		case <-l.done:
			return
		case <-ticker.C:
			select {
			case l.work <- fire:
			case <-a.stop:
				return
			case <-l.done:
				return
			}
		}
	}
}

// Cancel implements ports.Handle.
func (a *activity) Cancel() {
	if a.cancelled.CompareAndSwap(false, true) {
		close(a.stop)
	}
}

var _ ports.Scheduler = (*Loop)(nil)
