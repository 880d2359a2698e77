package ports

import (
	"context"

	"github.com/xvierd/corgi-cli/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error
}

// SurfaceState is what a headless host can report about its sinks.
type SurfaceState struct {
	Display  string
	Position float64
	Track    float64
	Enabled  map[Control]bool
}

// TimerReport pairs the controller snapshot with what its sinks show.
type TimerReport struct {
	Timer   domain.TimerState
	Surface SurfaceState
}

// TimerDriver lets a transport operate a timer hosted on another goroutine.
// Every method is serialized onto the host's event loop.
// This is a driven port (implemented by the headless host).
type TimerDriver interface {
	Start(ctx context.Context) (TimerReport, error)
	Stop(ctx context.Context) (TimerReport, error)
	Reset(ctx context.Context) (TimerReport, error)
	SetWorkMinutes(ctx context.Context, raw string) (TimerReport, error)
	SetBreakMinutes(ctx context.Context, raw string) (TimerReport, error)
	State(ctx context.Context) (TimerReport, error)
}
