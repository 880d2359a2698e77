package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/corgi-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration corgi is running with, after defaults,
the config file and CORGI_* environment variables are merged. The TOML
output can be saved as ~/.corgi/config.toml and edited.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if jsonOutput {
			data, err := json.MarshalIndent(map[string]interface{}{
				"work_minutes":  app.settings.WorkMinutes,
				"break_minutes": app.settings.BreakMinutes,
				"preset":        app.title,
				"motion_mode":   string(app.config.MotionMode()),
				"motion_frames": app.config.Motion.Frames,
				"track_length":  app.config.Motion.TrackLength,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}
		return app.config.Encode(out)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			p, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			path = p
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
}
