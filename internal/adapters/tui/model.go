// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/corgi-cli/internal/config"
	"github.com/xvierd/corgi-cli/internal/domain"
	"github.com/xvierd/corgi-cli/internal/services"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// frameMsg repaints a gliding walker.
type frameMsg time.Time

// DefaultFrameRate is the repaint interval while the walker glides.
const DefaultFrameRate = 100 * time.Millisecond

// Settings fields.
const (
	fieldWork = iota
	fieldBreak
	fieldCount
)

const noFocus = -1

// Options configures a Model.
type Options struct {
	Settings     domain.Settings
	MotionMode   domain.MotionMode
	MotionFrames int
	TrackLength  int
	FrameRate    time.Duration
	Theme        *config.ThemeConfig
	Logger       *slog.Logger
	Title        string
	Inline       bool
	AutoStart    bool
}

// Model hosts one timer controller on the Bubble Tea event loop.
type Model struct {
	controller *services.TimerController
	scheduler  *teaScheduler
	surface    *surface
	keys       *keyMap
	help       help.Model
	progress   progress.Model

	inputs    [fieldCount]textinput.Model
	committed [fieldCount]string
	focus     int

	width     int
	height    int
	inline    bool
	autoStart bool
	framing   bool
	frameRate time.Duration
	title     string
	theme     config.ThemeConfig
	logger    *slog.Logger
}

// NewModel creates a new TUI model with a stopped timer.
func NewModel(opts Options) Model {
	theme := resolveTheme(opts.Theme)
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	track := opts.TrackLength
	if track <= 0 {
		track = 40
	}
	frameRate := opts.FrameRate
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	settings := opts.Settings
	if settings == (domain.Settings{}) {
		settings = domain.DefaultSettings()
	}
	title := opts.Title
	if title == "" {
		title = "Corgi"
	}

	keys := newKeyMap()
	sched := newTeaScheduler()
	surf := newSurface(keys, float64(track), settings)

	m := Model{
		scheduler: sched,
		surface:   surf,
		keys:      keys,
		help:      help.New(),
		progress:  progress.New(progress.WithGradient(theme.WorkGradientStart, theme.WorkGradientEnd)),
		focus:     noFocus,
		inline:    opts.Inline,
		autoStart: opts.AutoStart,
		frameRate: frameRate,
		title:     title,
		theme:     theme,
		logger:    logger,
	}
	m.inputs[fieldWork] = newMinutesInput("work", surf.workValue)
	m.inputs[fieldBreak] = newMinutesInput("break", surf.breakValue)
	m.committed[fieldWork] = surf.workValue
	m.committed[fieldBreak] = surf.breakValue

	m.controller = services.NewTimerController(sched, services.Surfaces{
		Settings: surf,
		Controls: surf,
		Display:  surf,
		Motion:   surf,
	},
		services.WithSettings(settings),
		services.WithMotionMode(opts.MotionMode),
		services.WithMotionFrames(opts.MotionFrames),
		services.WithLogger(logger),
	)

	if opts.Inline {
		m.width = getTerminalWidth()
	}
	return m
}

func newMinutesInput(label, value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = label + " "
	ti.CharLimit = 4
	ti.Width = 4
	ti.Placeholder = "0"
	ti.SetValue(value)
	return ti
}

// Controller exposes the hosted controller.
func (m Model) Controller() *services.TimerController {
	return m.controller
}

// Init starts the timer when asked to and arms the first commands.
// Repaint frames start with the first update.
func (m Model) Init() tea.Cmd {
	if m.autoStart {
		m.controller.Start()
	}
	return m.scheduler.flush()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case activityMsg:
		m.scheduler.dispatch(msg.id)

	case frameMsg:
		m.framing = false

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.controller.Close()
			return m, tea.Quit
		}
		if m.focus != noFocus {
			cmds = append(cmds, m.updateInput(msg))
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.controller.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Start):
			m.controller.Start()
		case key.Matches(msg, m.keys.Stop):
			m.controller.Stop()
		case key.Matches(msg, m.keys.Reset):
			m.controller.Reset()
		case key.Matches(msg, m.keys.Edit):
			cmds = append(cmds, m.focusField(fieldWork))
		}
	}

	cmds = append(cmds, m.scheduler.flush())
	if cmd := m.frameCmd(); cmd != nil {
		m.framing = true
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// frameCmd schedules a repaint while the walker glides.
func (m Model) frameCmd() tea.Cmd {
	if m.framing || !m.surface.gliding() {
		return nil
	}
	return tea.Tick(m.frameRate, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) focusField(i int) tea.Cmd {
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.focus = i
	if i == noFocus {
		return nil
	}
	return m.inputs[i].Focus()
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.commit(m.focus)
		return m.focusField(noFocus)
	case tea.KeyTab:
		m.commit(m.focus)
		next := m.focus + 1
		if next >= fieldCount {
			next = noFocus
		}
		return m.focusField(next)
	case tea.KeyEsc:
		m.inputs[m.focus].SetValue(m.committed[m.focus])
		return m.focusField(noFocus)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

// commit hands a changed field to the controller.
func (m *Model) commit(field int) {
	value := m.inputs[field].Value()
	if value == m.committed[field] {
		return
	}
	m.committed[field] = value
	switch field {
	case fieldWork:
		m.surface.workValue = value
		m.controller.WorkSettingChanged()
	case fieldBreak:
		m.surface.breakValue = value
		m.controller.BreakSettingChanged()
	}
	m.logger.Debug("setting changed", "field", field, "value", value)
}

// phaseColor returns the color for the current phase, accounting for a stopped timer.
func (m Model) phaseColor(state domain.TimerState) lipgloss.Color {
	if !state.Running {
		return lipgloss.Color(m.theme.ColorStopped)
	}
	if state.Phase.IsWorking() {
		return lipgloss.Color(m.theme.ColorWork)
	}
	return lipgloss.Color(m.theme.ColorBreak)
}

func (m Model) progressBar(state domain.TimerState, width int) string {
	pbar := m.progress
	if !state.Phase.IsWorking() {
		pbar = progress.New(progress.WithGradient(m.theme.BreakGradientStart, m.theme.BreakGradientEnd))
	}
	pbar.Width = width
	return pbar.ViewAs(state.Progress())
}

func (m Model) helpView() string {
	if m.focus != noFocus {
		return m.help.View(editingKeyMap{})
	}
	return m.help.View(m.keys)
}

// View renders the model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inline {
		return m.viewInline()
	}

	state := m.controller.Snapshot()
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
	sections = append(sections, titleStyle.Render(fmt.Sprintf("%s %s", m.theme.IconApp, m.title)))

	statusStyle := lipgloss.NewStyle().Foreground(m.phaseColor(state))
	sections = append(sections, statusStyle.Render(fmt.Sprintf("%s · %s", state.Phase.Label(), state.StatusLabel())))

	sections = append(sections, "")
	sections = append(sections, renderBigTime(m.surface.text, m.phaseColor(state), m.width))

	sections = append(sections, "")
	sections = append(sections, renderTrack(m.surface.Position(), m.surface.TrackLength(), state.Phase, m.theme))

	sections = append(sections, "")
	barWidth := m.width - 4
	if barWidth > 60 {
		barWidth = 60
	}
	sections = append(sections, m.progressBar(state, barWidth))

	sections = append(sections, "")
	sections = append(sections, m.inputs[fieldWork].View()+"  "+m.inputs[fieldBreak].View())

	sections = append(sections, "")
	sections = append(sections, m.helpView())

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func minutesLabel(n int) string {
	return strconv.Itoa(n) + "m"
}
