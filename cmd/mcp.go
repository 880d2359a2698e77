package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/xvierd/corgi-cli/internal/adapters/headless"
	"github.com/xvierd/corgi-cli/internal/adapters/loop"
	"github.com/xvierd/corgi-cli/internal/adapters/mcp"
	"github.com/xvierd/corgi-cli/internal/ports"
	"golang.org/x/sync/errgroup"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server hosts one timer without a terminal UI and exposes its controls
(start, stop, reset, interval lengths) and its state as tools over stdio.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol
		errOut := cmd.ErrOrStderr()
		fmt.Fprintln(errOut, "Starting MCP server on stdio. Press Ctrl+C to stop.")

		l := loop.New(app.logger)
		host := headless.NewHost(l, float64(app.config.Motion.TrackLength), app.settings, controllerOptions()...)
		server := mcp.NewServer(host, Version, app.logger)

		app.logger.Info("mcp server started", "timer", host.ID())
		if err := serveMCP(setupSignalHandler(), l, host, server, app.logger); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

// serveMCP runs the timer loop and the handler until ctx is cancelled or
// either of them returns. Whichever ends first takes the other down.
func serveMCP(ctx context.Context, l *loop.Loop, host *headless.Host, handler ports.MCPHandler, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := l.Run(gctx)
		if serr := handler.Stop(); serr != nil {
			logger.Debug("stopping mcp handler", "error", serr)
		}
		return err
	})
	g.Go(func() error {
		defer cancel()
		err := handler.Start(gctx)
		if cerr := host.Close(context.Background()); cerr != nil {
			logger.Debug("closing timer", "error", cerr)
		}
		return err
	})
	return g.Wait()
}
