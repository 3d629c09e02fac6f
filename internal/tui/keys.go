package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the prompts.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Answers
	Submit key.Binding // Accept the current answer
	Yes    key.Binding
	No     key.Binding

	// General
	Cancel key.Binding // Abandon the question
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "no"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c", "ctrl+d"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
