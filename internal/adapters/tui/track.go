package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/corgi-cli/internal/config"
	"github.com/xvierd/corgi-cli/internal/domain"
)

// renderTrack draws the walker on a ground line of track cells with the
// goal at the far end. During a break the walker naps at the origin.
func renderTrack(position, track float64, phase domain.Phase, theme config.ThemeConfig) string {
	cells := int(track)
	if cells < 1 {
		cells = 1
	}
	col := int(math.Round(position))
	if col < 0 {
		col = 0
	}
	if col > cells {
		col = cells
	}

	walker := theme.IconWalker
	if !phase.IsWorking() {
		walker = theme.IconWalker + theme.IconRest
	}
	walkerWidth := lipgloss.Width(walker)
	goalWidth := lipgloss.Width(theme.IconGoal)

	gap := cells - col
	if !phase.IsWorking() {
		gap -= walkerWidth - lipgloss.Width(theme.IconWalker)
	}
	if gap < 0 {
		gap = 0
	}

	row := strings.Repeat(" ", col) + walker + strings.Repeat(" ", gap) + theme.IconGoal
	ground := strings.Repeat("▔", cells+lipgloss.Width(theme.IconWalker)+goalWidth)

	groundStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorTrack))
	return row + "\n" + groundStyle.Render(ground)
}
