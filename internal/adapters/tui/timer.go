package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Timer runs a Model in a Bubble Tea program.
type Timer struct {
	program *tea.Program
	wg      sync.WaitGroup
}

// NewTimer creates a new TUI timer runner.
func NewTimer() *Timer {
	return &Timer{}
}

// Run shows the model and blocks until the user quits or ctx is cancelled.
// Inline models render in place; all others take over the alternate screen.
func (t *Timer) Run(ctx context.Context, model Model) error {
	opts := []tea.ProgramOption{}
	if !model.inline {
		opts = append(opts, tea.WithAltScreen())
	}

	t.program = tea.NewProgram(model, opts...)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle context cancellation
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		<-ctx.Done()
		t.program.Quit()
	}()

	final, err := t.program.Run()
	cancel()
	t.wg.Wait()

	if fm, ok := final.(Model); ok {
		fm.controller.Close()
	}
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// RunTimer is a convenience function to run the timer directly.
func RunTimer(ctx context.Context, opts Options) error {
	return NewTimer().Run(ctx, NewModel(opts))
}
