// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/corgi-cli/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server *server.MCPServer
	driver ports.TimerDriver
	logger *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(driver ports.TimerDriver, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		driver: driver,
		logger: logger,
	}

	s.server = server.NewMCPServer(
		"corgi-timer",
		version,
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"timer_state",
			mcp.WithDescription("Get the work/break timer: phase, remaining time, running flag, walker position and which controls are enabled"),
		),
		s.handleState,
	)

	s.server.AddTool(
		mcp.NewTool(
			"timer_start",
			mcp.WithDescription("Start or resume the countdown. Does nothing while already running."),
		),
		s.handleStart,
	)

	s.server.AddTool(
		mcp.NewTool(
			"timer_stop",
			mcp.WithDescription("Pause the countdown, keeping phase and remaining time."),
		),
		s.handleStop,
	)

	s.server.AddTool(
		mcp.NewTool(
			"timer_reset",
			mcp.WithDescription("Stop the countdown and return to a full work interval."),
		),
		s.handleReset,
	)

	s.server.AddTool(
		mcp.NewTool(
			"timer_set_work_minutes",
			mcp.WithDescription("Change the work interval length. While stopped the countdown restarts from the new length."),
			mcp.WithString(
				"minutes",
				mcp.Required(),
				mcp.Description("Whole minutes. Anything that is not a non-negative integer counts as 0."),
			),
		),
		s.handleSetWorkMinutes,
	)

	s.server.AddTool(
		mcp.NewTool(
			"timer_set_break_minutes",
			mcp.WithDescription("Change the break interval length. Takes effect from the next break."),
			mcp.WithString(
				"minutes",
				mcp.Required(),
				mcp.Description("Whole minutes. Anything that is not a non-negative integer counts as 0."),
			),
		),
		s.handleSetBreakMinutes,
	)
}

// Start serves MCP requests over stdin and stdout until ctx is cancelled,
// Stop is called or stdin is closed.
func (s *Server) Start(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve is Start over arbitrary streams.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	stdio := server.NewStdioServer(s.server)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))

	err := stdio.Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Stop ends a running Serve. It is safe to call from any goroutine.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// HandleMessage processes one JSON-RPC message for an in-process client.
func (s *Server) HandleMessage(ctx context.Context, raw json.RawMessage) mcp.JSONRPCMessage {
	return s.server.HandleMessage(ctx, raw)
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

func (s *Server) handleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.respond("read timer", s.driver.State)(ctx)
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.respond("start timer", s.driver.Start)(ctx)
}

func (s *Server) handleStop(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.respond("stop timer", s.driver.Stop)(ctx)
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.respond("reset timer", s.driver.Reset)(ctx)
}

func (s *Server) handleSetWorkMinutes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := minutesArg(request)
	if err != nil {
		return mcp.NewToolResultError("minutes is required: " + err.Error()), nil
	}
	return s.respond("set work minutes", func(ctx context.Context) (ports.TimerReport, error) {
		return s.driver.SetWorkMinutes(ctx, raw)
	})(ctx)
}

func (s *Server) handleSetBreakMinutes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := minutesArg(request)
	if err != nil {
		return mcp.NewToolResultError("minutes is required: " + err.Error()), nil
	}
	return s.respond("set break minutes", func(ctx context.Context) (ports.TimerReport, error) {
		return s.driver.SetBreakMinutes(ctx, raw)
	})(ctx)
}

// minutesArg reads the minutes argument. Clients may send a JSON number
// even though the schema says string.
func minutesArg(request mcp.CallToolRequest) (string, error) {
	args := request.GetArguments()
	if v, ok := args["minutes"].(float64); ok {
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	return request.RequireString("minutes")
}

type operation func(ctx context.Context) (ports.TimerReport, error)

func (s *Server) respond(action string, op operation) func(ctx context.Context) (*mcp.CallToolResult, error) {
	return func(ctx context.Context) (*mcp.CallToolResult, error) {
		report, err := op(ctx)
		if err != nil {
			s.logger.Error("tool call failed", "action", action, "error", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", action, err)), nil
		}

		jsonData, err := json.MarshalIndent(reportJSON(report), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal timer: %w", err)
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func reportJSON(r ports.TimerReport) map[string]interface{} {
	controls := map[string]bool{}
	for _, c := range ports.Controls {
		controls[c.String()] = r.Surface.Enabled[c]
	}
	return map[string]interface{}{
		"id":            r.Timer.ID,
		"phase":         string(r.Timer.Phase),
		"running":       r.Timer.Running,
		"remaining":     r.Timer.Remaining,
		"display":       r.Surface.Display,
		"progress":      r.Timer.Progress(),
		"work_seconds":  r.Timer.WorkSeconds,
		"break_seconds": r.Timer.BreakSeconds,
		"position":      r.Surface.Position,
		"track_length":  r.Surface.Track,
		"controls":      controls,
	}
}
