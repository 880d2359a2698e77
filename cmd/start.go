package cmd

import (
	"github.com/spf13/cobra"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Open the timer and start counting down",
	Long: `Open the timer with the work countdown already running.
Interval lengths come from --work/--break, --preset or the config file.`,
	Example: `  corgi start
  corgi start --preset long
  corgi start -w 45 -b 15 --inline`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTUI(true)
	},
}
