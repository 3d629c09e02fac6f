package domain

import "fmt"

// PeriodKey is the natural key of a period-scoped record.
type PeriodKey interface {
	comparable
	// Label returns a short display label (e.g. "#7").
	Label() string
	// Validate checks that the key is within calendar bounds.
	Validate() error
}

// WeekKey identifies a weekly goal by ISO week and week-based year.
type WeekKey struct {
	Week int
	Year int
}

// Label returns the display label of the week.
func (k WeekKey) Label() string {
	return fmt.Sprintf("#%d", k.Week)
}

// Validate checks the week is between 1 and 53.
func (k WeekKey) Validate() error {
	if k.Week < 1 || k.Week > 53 {
		return fmt.Errorf("week %d out of range 1-53: %w", k.Week, ErrInvalidPeriod)
	}
	if k.Year <= 0 {
		return fmt.Errorf("year %d: %w", k.Year, ErrInvalidPeriod)
	}
	return nil
}

// String implements fmt.Stringer.
func (k WeekKey) String() string {
	return fmt.Sprintf("%d-W%02d", k.Year, k.Week)
}

// DayKey identifies a daily objective by ordinal day and calendar year.
type DayKey struct {
	Day  int
	Year int
}

// Label returns the display label of the day.
func (k DayKey) Label() string {
	return fmt.Sprintf("#%d", k.Day)
}

// Validate checks the day is between 1 and 366.
func (k DayKey) Validate() error {
	if k.Day < 1 || k.Day > 366 {
		return fmt.Errorf("day %d out of range 1-366: %w", k.Day, ErrInvalidPeriod)
	}
	if k.Year <= 0 {
		return fmt.Errorf("year %d: %w", k.Year, ErrInvalidPeriod)
	}
	return nil
}

// String implements fmt.Stringer.
func (k DayKey) String() string {
	return fmt.Sprintf("%d-%03d", k.Year, k.Day)
}

// RecordState tells whether a record has been written to the store.
type RecordState int

const (
	StateDraft     RecordState = iota // Not yet written
	StatePersisted                    // Written (or loaded from the store)
)

// String implements fmt.Stringer.
func (s RecordState) String() string {
	if s == StatePersisted {
		return "persisted"
	}
	return "draft"
}

// PeriodRecord is a free-text record owned by a single period.
// The state only ever moves from draft to persisted.
type PeriodRecord[K PeriodKey] struct {
	Key   K
	Text  string
	state RecordState
}

// WeeklyGoal is the goal for an ISO week.
type WeeklyGoal = PeriodRecord[WeekKey]

// DailyObjective is today's objective towards the weekly goal.
type DailyObjective = PeriodRecord[DayKey]

// NewDraft creates a record that has not been written yet.
func NewDraft[K PeriodKey](key K, text string) *PeriodRecord[K] {
	return &PeriodRecord[K]{Key: key, Text: text, state: StateDraft}
}

// Restore creates a record loaded from the store.
func Restore[K PeriodKey](key K, text string) *PeriodRecord[K] {
	return &PeriodRecord[K]{Key: key, Text: text, state: StatePersisted}
}

// Revise returns a fresh draft for the same period with new text.
// Saving it replaces the stored text.
func (r *PeriodRecord[K]) Revise(text string) *PeriodRecord[K] {
	return NewDraft(r.Key, text)
}

// State returns the record state.
func (r *PeriodRecord[K]) State() RecordState {
	return r.state
}

// IsPersisted returns true once the record has been written.
func (r *PeriodRecord[K]) IsPersisted() bool {
	return r.state == StatePersisted
}

// MarkPersisted records a successful write.
func (r *PeriodRecord[K]) MarkPersisted() {
	r.state = StatePersisted
}

// String implements fmt.Stringer.
func (r *PeriodRecord[K]) String() string {
	return r.Text
}
