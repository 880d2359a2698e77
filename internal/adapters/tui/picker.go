package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/corgi-cli/internal/config"
)

// PickerItem represents one option in the picker.
type PickerItem struct {
	Label string
	Desc  string
}

// PickerResult holds the outcome of a picker interaction.
type PickerResult struct {
	Index   int
	Aborted bool
}

// PresetItems turns presets into picker rows.
func PresetItems(presets []config.Preset) []PickerItem {
	items := make([]PickerItem, 0, len(presets))
	for _, p := range presets {
		items = append(items, PickerItem{
			Label: p.Name,
			Desc:  fmt.Sprintf("%s work · %s break", minutesLabel(p.WorkMinutes), minutesLabel(p.BreakMinutes)),
		})
	}
	return items
}

type pickerKeys struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Cancel key.Binding
}

func newPickerKeys() pickerKeys {
	return pickerKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "down")),
		Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Cancel: key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

func (k pickerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Choose, k.Cancel}
}

func (k pickerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type pickerModel struct {
	title   string
	items   []PickerItem
	cursor  int
	aborted bool
	keys    pickerKeys
	help    help.Model
	theme   config.ThemeConfig
}

func newPickerModel(title string, items []PickerItem, theme *config.ThemeConfig) pickerModel {
	return pickerModel{
		title: title,
		items: items,
		keys:  newPickerKeys(),
		help:  help.New(),
		theme: resolveTheme(theme),
	}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Choose):
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel):
		m.aborted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorWork)).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render(m.title) + "\n\n")
	for i, item := range m.items {
		row := fmt.Sprintf("%-8s %s", item.Label, item.Desc)
		if i == m.cursor {
			b.WriteString("  " + activeStyle.Render(m.theme.IconWalker+" "+row) + "\n")
			continue
		}
		b.WriteString("     " + dimStyle.Render(row) + "\n")
	}
	b.WriteString("\n  " + m.help.View(m.keys) + "\n")
	return b.String()
}

// RunPicker launches an interactive picker and returns the selected index.
func RunPicker(title string, items []PickerItem, theme *config.ThemeConfig) PickerResult {
	if len(items) == 0 {
		return PickerResult{Aborted: true}
	}
	result, err := tea.NewProgram(newPickerModel(title, items, theme)).Run()
	if err != nil {
		return PickerResult{Aborted: true}
	}
	final := result.(pickerModel)
	if final.aborted {
		return PickerResult{Aborted: true}
	}
	return PickerResult{Index: final.cursor}
}
