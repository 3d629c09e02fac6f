package domain

import "fmt"

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusTodo      Status = "T" // Created, not resolved yet
	StatusDone      Status = "D" // Finished
	StatusSnoozed   Status = "S" // Put aside until woken up again
	StatusDiscarded Status = "X" // Dropped without finishing
)

// transitions defines the allowed status transitions.
// Keeping a task as todo is a self-loop.
var transitions = map[Status][]Status{
	StatusTodo:      {StatusTodo, StatusSnoozed, StatusDiscarded, StatusDone},
	StatusSnoozed:   {StatusTodo, StatusDiscarded, StatusDone},
	StatusDone:      {},
	StatusDiscarded: {},
}

// CanTransitionTo returns true if the status can transition to the target status.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, ok := transitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusDiscarded
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusDone:
		return "Done"
	case StatusSnoozed:
		return "Snoozed"
	case StatusDiscarded:
		return "Discarded"
	default:
		return string(s)
	}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusDone, StatusSnoozed, StatusDiscarded:
		return true
	default:
		return false
	}
}

// ParseStatus accepts either the stored code ("T") or a name ("todo").
func ParseStatus(v string) (Status, error) {
	switch v {
	case "T", "todo":
		return StatusTodo, nil
	case "D", "done":
		return StatusDone, nil
	case "S", "snoozed":
		return StatusSnoozed, nil
	case "X", "discarded":
		return StatusDiscarded, nil
	}
	return "", fmt.Errorf("%q: %w", v, ErrInvalidStatus)
}

// Disposition is the user's decision for an unfinished task during reconciliation.
type Disposition int

const (
	DispositionMoveToToday Disposition = iota // Put on today's list
	DispositionDiscard                        // Drop the task
	DispositionSnooze                         // Keep as todo, decide another day
)

// AllDispositions returns the choices offered for an unfinished task.
func AllDispositions() []Disposition {
	return []Disposition{DispositionMoveToToday, DispositionDiscard, DispositionSnooze}
}

// Display returns a human-readable representation of the disposition.
func (d Disposition) Display() string {
	switch d {
	case DispositionMoveToToday:
		return "Move to today's list"
	case DispositionDiscard:
		return "Discard"
	case DispositionSnooze:
		return "Keep as todo (snooze)"
	default:
		return fmt.Sprintf("Disposition(%d)", int(d))
	}
}
