package domain

import "fmt"

// Task is a unit of work that persists across days until it is resolved.
// Fields are ordered to minimize memory padding.
type Task struct {
	Day    *DayKey // Day the task was created on or moved to (nil for legacy rows)
	Text   string  // Task text
	Status Status  // Current status
	ID     int64   // Storage-assigned identity (0 while draft)
	state  RecordState
}

// NewTask creates a draft todo task associated with the given day.
func NewTask(text string, day DayKey) *Task {
	d := day
	return &Task{
		Text:   text,
		Status: StatusTodo,
		Day:    &d,
		state:  StateDraft,
	}
}

// RestoreTask creates a task loaded from the store.
func RestoreTask(id int64, text string, status Status, day *DayKey) *Task {
	return &Task{
		ID:     id,
		Text:   text,
		Status: status,
		Day:    day,
		state:  StatePersisted,
	}
}

// State returns the record state.
func (t *Task) State() RecordState {
	return t.state
}

// IsPersisted returns true once the task has been written.
func (t *Task) IsPersisted() bool {
	return t.state == StatePersisted
}

// MarkPersisted records a successful insert and the identity it received.
func (t *Task) MarkPersisted(id int64) {
	t.ID = id
	t.state = StatePersisted
}

// TransitionTo changes the status if the transition is allowed.
func (t *Task) TransitionTo(target Status) error {
	if !t.Status.CanTransitionTo(target) {
		return fmt.Errorf("cannot move task from %s to %s: %w",
			t.Status.Display(), target.Display(), ErrInvalidTransition)
	}
	t.Status = target
	return nil
}

// AssignDay associates the task with a day's list.
func (t *Task) AssignDay(day DayKey) {
	d := day
	t.Day = &d
}

// IsOn returns true if the task is associated with the given day.
func (t *Task) IsOn(day DayKey) bool {
	return t.Day != nil && *t.Day == day
}

// TaskFilter specifies criteria for listing tasks.
// Fields are ordered to minimize memory padding.
type TaskFilter struct {
	Day      *DayKey  // nil = any day
	Statuses []Status // empty = any status
}

// Matches returns true if the task satisfies the filter.
func (f TaskFilter) Matches(t *Task) bool {
	if f.Day != nil && !t.IsOn(*f.Day) {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if t.Status == s {
			return true
		}
	}
	return false
}
