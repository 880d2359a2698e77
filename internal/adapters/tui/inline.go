package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/xvierd/corgi-cli/internal/domain"
)

// getTerminalWidth returns the current terminal width, defaulting to 80.
func getTerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}

// viewInline renders a compact timer that stays in the scrollback.
func (m Model) viewInline() string {
	state := m.controller.Snapshot()
	accent := lipgloss.NewStyle().Foreground(m.phaseColor(state)).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	var b strings.Builder

	b.WriteString(accent.Render(fmt.Sprintf("  %s %s  %s", m.theme.IconApp, state.Phase.Label(), m.surface.text)))
	b.WriteString(dim.Render(fmt.Sprintf("  %s · work %s · break %s",
		state.StatusLabel(), minutesLabel(state.WorkSeconds/domain.SecondsPerMinute), minutesLabel(state.BreakSeconds/domain.SecondsPerMinute))))
	b.WriteString("\n")

	for _, line := range strings.Split(renderTrack(m.surface.Position(), m.surface.TrackLength(), state.Phase, m.theme), "\n") {
		b.WriteString("  " + line + "\n")
	}

	barWidth := m.width - 16
	if barWidth < 20 {
		barWidth = 20
	}
	b.WriteString("  " + m.progressBar(state, barWidth))
	b.WriteString(dim.Render(fmt.Sprintf("  %d%%", int(state.Progress()*100))))
	b.WriteString("\n")

	if m.focus != noFocus {
		b.WriteString("  " + m.inputs[fieldWork].View() + "  " + m.inputs[fieldBreak].View() + "\n")
	}
	b.WriteString("  " + m.helpView() + "\n")

	return b.String()
}
