package domain

import "context"

// StoreInitializer provisions the persistent store.
type StoreInitializer interface {
	// Initialize creates every table (or ref namespace) that does not exist yet.
	// Safe to call on every start.
	Initialize() error
}

// PeriodRepository persists records keyed by a period.
type PeriodRepository[K PeriodKey] interface {
	// EnsureSchema creates the namespace for this record kind if absent.
	EnsureSchema() error

	// FindByKey returns the record for key. Returns nil if not found.
	FindByKey(key K) (*PeriodRecord[K], error)

	// Upsert inserts the record, replacing any record with the same key.
	Upsert(rec *PeriodRecord[K]) error
}

// WeeklyGoalRepository persists weekly goals.
type WeeklyGoalRepository = PeriodRepository[WeekKey]

// DailyObjectiveRepository persists daily objectives.
type DailyObjectiveRepository = PeriodRepository[DayKey]

// TaskRepository manages task persistence.
type TaskRepository interface {
	// EnsureSchema creates the task namespace if absent.
	EnsureSchema() error

	// Get retrieves a task by ID. Returns nil if not found.
	Get(id int64) (*Task, error)

	// List retrieves tasks matching the filter in insertion order.
	List(filter TaskFilter) ([]*Task, error)

	// Insert writes a new task and returns its assigned ID.
	Insert(task *Task) (int64, error)

	// Update writes the status and day of an existing task.
	Update(task *Task) error
}

// TextPrompt describes a free-text question.
type TextPrompt struct {
	Message string // Question shown to the user
	Help    string // Hint shown below the question
	Default string // Pre-filled answer (optional)
}

// ConfirmPrompt describes a yes/no question.
type ConfirmPrompt struct {
	Message string
	Help    string
	Default bool
}

// Prompter supplies answers from the user.
// Implementations return ErrInputClosed when no answer can be read.
type Prompter interface {
	// PromptText asks for a line of text.
	PromptText(ctx context.Context, p TextPrompt) (string, error)

	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, p ConfirmPrompt) (bool, error)

	// ChooseDisposition asks what to do with an unfinished task.
	ChooseDisposition(ctx context.Context, task *Task) (Disposition, error)
}

// Presenter displays entities. It never returns data to the caller.
type Presenter interface {
	// Header shows a section title.
	Header(title string)

	// WeeklyGoal shows the goal for a week.
	WeeklyGoal(goal *WeeklyGoal)

	// DailyObjective shows the objective for a day.
	DailyObjective(objective *DailyObjective)

	// Tasks shows a titled task list. An empty list is shown as such.
	Tasks(title string, tasks []*Task)

	// Info shows a plain message.
	Info(msg string)
}

// Logger provides logging functionality.
type Logger interface {
	// Debug logs a debug message.
	Debug(category, msg string)

	// Info logs an info message.
	Info(category, msg string)

	// Warn logs a warning message.
	Warn(category, msg string)

	// Error logs an error message.
	Error(category, msg string)
}

// NopLogger discards all log output.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, string) {}

// Info implements Logger.
func (NopLogger) Info(string, string) {}

// Warn implements Logger.
func (NopLogger) Warn(string, string) {}

// Error implements Logger.
func (NopLogger) Error(string, string) {}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the configuration merged over defaults.
	Load() (*Config, error)
}

// ConfigManager manages the configuration file.
type ConfigManager interface {
	// ConfigInfo returns information about the config file.
	ConfigInfo() ConfigInfo

	// InitConfig creates the config file with the default template.
	InitConfig(cfg *Config) error
}

// ConfigInfo holds information about a config file.
// Fields are ordered to minimize memory padding.
type ConfigInfo struct {
	Path    string // File path
	Content string // File content (empty if not exists)
	Exists  bool   // Whether the file exists
}
