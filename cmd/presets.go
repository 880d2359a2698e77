package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/corgi-cli/internal/config"
)

// presetsCmd lists the configured presets.
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List work/break presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printPresets(cmd, app.config.Presets)
	},
}

func printPresets(cmd *cobra.Command, presets []config.Preset) error {
	out := cmd.OutOrStdout()

	if jsonOutput {
		rows := make([]map[string]interface{}, 0, len(presets))
		for _, p := range presets {
			rows = append(rows, map[string]interface{}{
				"name":          p.Name,
				"work_minutes":  p.WorkMinutes,
				"break_minutes": p.BreakMinutes,
			})
		}
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal presets: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(presets) == 0 {
		fmt.Fprintln(out, "No presets configured.")
		return nil
	}
	for _, p := range presets {
		fmt.Fprintf(out, "  %-10s %3dm work  %3dm break\n", p.Name, p.WorkMinutes, p.BreakMinutes)
	}
	return nil
}
