package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/goals/internal/domain"
)

// Colors defines the color palette.
var Colors = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color

	// Record colors
	Goal      lipgloss.Color
	Objective lipgloss.Color
	Selected  lipgloss.Color

	// Status colors
	Todo      lipgloss.Color
	Done      lipgloss.Color
	Snoozed   lipgloss.Color
	Discarded lipgloss.Color
}{
	Primary: lipgloss.Color("#6C5CE7"), // Purple
	Muted:   lipgloss.Color("#636E72"), // Gray

	Goal:      lipgloss.Color("#A29BFE"), // Lavender
	Objective: lipgloss.Color("#FF7675"), // Salmon
	Selected:  lipgloss.Color("#FFEAA7"), // Yellow

	Todo:      lipgloss.Color("#74B9FF"), // Light blue
	Done:      lipgloss.Color("#00B894"), // Green
	Snoozed:   lipgloss.Color("#FDCB6E"), // Yellow
	Discarded: lipgloss.Color("#636E72"), // Gray
}

// Styles contains the lipgloss styles for prompts and output.
type Styles struct {
	// Output
	Title         lipgloss.Style
	Label         lipgloss.Style
	Key           lipgloss.Style
	GoalText      lipgloss.Style
	ObjectiveText lipgloss.Style
	TaskBullet    lipgloss.Style
	Empty         lipgloss.Style

	// Prompts
	Question lipgloss.Style
	Answer   lipgloss.Style
	Help     lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Option   lipgloss.Style

	// Status badges
	StatusTodo      lipgloss.Style
	StatusDone      lipgloss.Style
	StatusSnoozed   lipgloss.Style
	StatusDiscarded lipgloss.Style
}

// DefaultStyles returns the colored styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),
		Key: lipgloss.NewStyle().
			Bold(true),
		GoalText: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Goal),
		ObjectiveText: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Objective),
		TaskBullet: lipgloss.NewStyle().
			Foreground(Colors.Muted),
		Empty: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),

		Question: lipgloss.NewStyle().
			Bold(true),
		Answer: lipgloss.NewStyle().
			Foreground(Colors.Primary),
		Help: lipgloss.NewStyle().
			Foreground(Colors.Muted),
		Cursor: lipgloss.NewStyle().
			Foreground(Colors.Selected),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Selected),
		Option: lipgloss.NewStyle(),

		StatusTodo: lipgloss.NewStyle().
			Foreground(Colors.Todo),
		StatusDone: lipgloss.NewStyle().
			Foreground(Colors.Done),
		StatusSnoozed: lipgloss.NewStyle().
			Foreground(Colors.Snoozed),
		StatusDiscarded: lipgloss.NewStyle().
			Foreground(Colors.Discarded).
			Strikethrough(true),
	}
}

// PlainStyles returns styles that render text unchanged.
// Used for non-terminal output.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:           plain,
		Label:           plain,
		Key:             plain,
		GoalText:        plain,
		ObjectiveText:   plain,
		TaskBullet:      plain,
		Empty:           plain,
		Question:        plain,
		Answer:          plain,
		Help:            plain,
		Cursor:          plain,
		Selected:        plain,
		Option:          plain,
		StatusTodo:      plain,
		StatusDone:      plain,
		StatusSnoozed:   plain,
		StatusDiscarded: plain,
	}
}

// StatusStyle returns the style for a given status.
func (s Styles) StatusStyle(status domain.Status) lipgloss.Style {
	switch status {
	case domain.StatusDone:
		return s.StatusDone
	case domain.StatusSnoozed:
		return s.StatusSnoozed
	case domain.StatusDiscarded:
		return s.StatusDiscarded
	default:
		return s.StatusTodo
	}
}
