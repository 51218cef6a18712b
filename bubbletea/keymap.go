package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the history browser.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	PrevStep     key.Binding
	NextStep     key.Binding
	FirstStep    key.Binding
	LastStep     key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		PrevStep: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "previous step"),
		),
		NextStep: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next step"),
		),
		FirstStep: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first step"),
		),
		LastStep: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last step"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
