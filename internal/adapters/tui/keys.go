package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/xvierd/corgi-cli/internal/ports"
)

type keyMap struct {
	Start key.Binding
	Stop  key.Binding
	Reset key.Binding
	Edit  key.Binding
	Quit  key.Binding
}

func newKeyMap() *keyMap {
	return &keyMap{
		Start: key.NewBinding(
			key.WithKeys("s", "enter"),
			key.WithHelp("s", "start"),
		),
		Stop: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "stop"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Edit: key.NewBinding(
			key.WithKeys("tab", "e"),
			key.WithHelp("tab", "edit minutes"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// binding returns the key binding behind a control.
func (k *keyMap) binding(c ports.Control) *key.Binding {
	switch c {
	case ports.ControlStart:
		return &k.Start
	case ports.ControlStop:
		return &k.Stop
	case ports.ControlReset:
		return &k.Reset
	}
	return nil
}

// ShortHelp implements help.KeyMap. Disabled bindings are skipped by the
// help view, so only usable controls are listed.
func (k *keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Reset, k.Edit, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k *keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Stop, k.Reset},
		{k.Edit, k.Quit},
	}
}

// editingKeyMap is shown while a minutes field has focus.
type editingKeyMap struct{}

var (
	commitKey = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply"))
	nextKey   = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field"))
	cancelKey = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
)

func (editingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{commitKey, nextKey, cancelKey}
}

func (editingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{commitKey, nextKey, cancelKey}}
}
