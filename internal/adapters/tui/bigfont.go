package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// glyphHeight is the number of terminal rows a big glyph occupies.
const glyphHeight = 3

// glyphs holds half-block renderings of the clock characters.
var glyphs = map[rune][glyphHeight]string{
	'0': {"█▀█", "█ █", "▀▀▀"},
	'1': {"▀█ ", " █ ", "▀▀▀"},
	'2': {"▀▀█", "█▀▀", "▀▀▀"},
	'3': {"▀▀█", " ▀█", "▀▀▀"},
	'4': {"█ █", "▀▀█", "  ▀"},
	'5': {"█▀▀", "▀▀█", "▀▀▀"},
	'6': {"█▀▀", "█▀█", "▀▀▀"},
	'7': {"▀▀█", "  █", "  ▀"},
	'8': {"█▀█", "█▀█", "▀▀▀"},
	'9': {"█▀█", "▀▀█", "▀▀▀"},
	':': {"▄", " ", "▀"},
}

// minBigWidth is the narrowest terminal that gets the big clock.
const minBigWidth = 40

// renderBigTime draws a clock string such as "24:59" in big glyphs.
// Narrow terminals get a single bold line instead.
func renderBigTime(clock string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if width < minBigWidth {
		return style.Render(clock)
	}

	var rows [glyphHeight]strings.Builder
	first := true
	for _, ch := range clock {
		g, ok := glyphs[ch]
		if !ok {
			continue
		}
		for i := range rows {
			if !first {
				rows[i].WriteString(" ")
			}
			rows[i].WriteString(g[i])
		}
		first = false
	}

	out := make([]string, glyphHeight)
	for i := range rows {
		out[i] = style.Render(rows[i].String())
	}
	return strings.Join(out, "\n")
}
