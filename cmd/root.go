// Package cmd provides the CLI commands for the corgi application.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	configPath   string
	jsonOutput   bool
	inlineMode   bool
	debugMode    bool
	presetFlag   string
	workFlag     int
	breakFlag    int
	logLevelFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "corgi",
	Short: "corgi - a work/break timer with a walking corgi",
	Long: `corgi alternates work and break countdowns in your terminal.
While you work, a corgi walks from one end of the track to the other and
reaches its bone exactly when the work interval ends.

Run "corgi" with no arguments to open a stopped timer, or "corgi start"
to begin counting right away.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTUI(false)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to the config file (default: ~/.corgi/config.toml)")
	flags.BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	flags.BoolVarP(&inlineMode, "inline", "i", false, "Compact inline timer (no fullscreen)")
	flags.BoolVar(&debugMode, "debug", false, "Write debug logs to ~/.corgi/corgi.log")
	flags.StringVarP(&presetFlag, "preset", "p", "", "Preset name; fuzzy matches are accepted")
	flags.IntVarP(&workFlag, "work", "w", 0, "Work interval in minutes")
	flags.IntVarP(&breakFlag, "break", "b", 0, "Break interval in minutes")
	flags.StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("corgi\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
}
