package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xvierd/corgi-cli/internal/adapters/tui"
)

// pickCmd lets the user choose a preset interactively, then starts the timer.
var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose a preset and start the timer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		presets := app.config.Presets
		result := tui.RunPicker("Preset:", tui.PresetItems(presets), &app.config.Theme)
		if result.Aborted {
			return nil
		}

		chosen := presets[result.Index]
		app.settings = chosen.Settings()
		app.title = chosen.Name
		app.logger.Debug("preset picked", "preset", chosen.Name)

		return launchTUI(true)
	},
}
