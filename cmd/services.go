package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/corgi-cli/internal/adapters/tui"
	"github.com/xvierd/corgi-cli/internal/config"
	"github.com/xvierd/corgi-cli/internal/domain"
	"github.com/xvierd/corgi-cli/internal/services"
)

// appDeps groups everything initialized at startup.
type appDeps struct {
	config   *config.Config
	settings domain.Settings
	title    string
	logger   *slog.Logger
	logFile  *os.File
}

// app holds all initialized dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// settingsOverrides carries the command-line timer flags.
type settingsOverrides struct {
	preset string
	work   *int
	brk    *int
}

// initializeServices loads configuration, applies flags and sets up logging.
func initializeServices(cmd *cobra.Command) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.config = cfg

	overrides := settingsOverrides{preset: presetFlag}
	if cmd.Flags().Changed("work") {
		overrides.work = &workFlag
	}
	if cmd.Flags().Changed("break") {
		overrides.brk = &breakFlag
	}
	app.settings, app.title, err = resolveSettings(cfg, overrides)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	if debugMode {
		level = "debug"
	}
	w, err := openLogOutput(cfg.Log.File, cmd.Name() == mcpCmd.Name())
	if err != nil {
		return err
	}
	app.logger, err = newLogger(w, level)
	if err != nil {
		return err
	}
	app.logger.Debug("services initialized",
		"work_minutes", app.settings.WorkMinutes,
		"break_minutes", app.settings.BreakMinutes,
		"motion", cfg.Motion.Mode)

	return nil
}

// resolveSettings picks interval lengths: explicit flags beat a preset,
// a preset beats the [timer] section.
func resolveSettings(cfg *config.Config, o settingsOverrides) (domain.Settings, string, error) {
	settings, err := cfg.Settings()
	if err != nil {
		return domain.Settings{}, "", err
	}

	title := ""
	if cfg.Timer.Preset != "" {
		if p, err := cfg.FindPreset(cfg.Timer.Preset); err == nil {
			title = p.Name
		}
	}

	if o.preset != "" {
		p, err := cfg.FindPreset(o.preset)
		if err != nil {
			return domain.Settings{}, "", err
		}
		settings = p.Settings()
		title = p.Name
	}

	if o.work != nil {
		if *o.work < 0 {
			return domain.Settings{}, "", errors.New("work minutes must not be negative")
		}
		settings.WorkMinutes = *o.work
		title = ""
	}
	if o.brk != nil {
		if *o.brk < 0 {
			return domain.Settings{}, "", errors.New("break minutes must not be negative")
		}
		settings.BreakMinutes = *o.brk
		title = ""
	}

	return settings, title, nil
}

// openLogOutput decides where logs go. The TUI owns the terminal, so logs
// only reach a file; the MCP server owns stdout, so it may use stderr.
func openLogOutput(file string, stderrOK bool) (io.Writer, error) {
	if file == "" && debugMode {
		dir, err := config.GetDataDir()
		if err != nil {
			return nil, err
		}
		file = filepath.Join(dir, "corgi.log")
	}
	if file == "" {
		if stderrOK {
			return os.Stderr, nil
		}
		return io.Discard, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	app.logFile = f
	return f, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// controllerOptions turns configuration into controller options.
// Interval lengths are passed separately.
func controllerOptions() []services.Option {
	return []services.Option{
		services.WithMotionMode(app.config.MotionMode()),
		services.WithMotionFrames(app.config.Motion.Frames),
		services.WithLogger(app.logger),
	}
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.logFile != nil {
		err := app.logFile.Close()
		app.logFile = nil
		return err
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// launchTUI starts the Bubbletea timer interface.
func launchTUI(autoStart bool) error {
	ctx := setupSignalHandler()
	err := tui.RunTimer(ctx, tui.Options{
		Settings:     app.settings,
		MotionMode:   app.config.MotionMode(),
		MotionFrames: app.config.Motion.Frames,
		TrackLength:  app.config.Motion.TrackLength,
		FrameRate:    time.Duration(app.config.Motion.FrameRate),
		Theme:        &app.config.Theme,
		Logger:       app.logger,
		Title:        app.title,
		Inline:       inlineMode,
		AutoStart:    autoStart,
	})
	if err != nil {
		return fmt.Errorf("timer error: %w", err)
	}
	return nil
}
