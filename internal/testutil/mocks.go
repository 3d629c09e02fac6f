// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/runoshun/goals/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockPeriodRepository is a test double for domain.PeriodRepository.
// It counts writes so tests can assert that a record is written once.
// Fields are ordered to minimize memory padding.
type MockPeriodRepository[K domain.PeriodKey] struct {
	Records         map[K]string
	EnsureSchemaErr error
	FindErr         error
	UpsertErr       error
	UpsertCount     int
	FindCount       int
	SchemaCalls     int
}

// NewMockPeriodRepository creates a new MockPeriodRepository with an empty store.
func NewMockPeriodRepository[K domain.PeriodKey]() *MockPeriodRepository[K] {
	return &MockPeriodRepository[K]{
		Records: make(map[K]string),
	}
}

// NewMockWeeklyGoalRepository creates a mock repository for weekly goals.
func NewMockWeeklyGoalRepository() *MockPeriodRepository[domain.WeekKey] {
	return NewMockPeriodRepository[domain.WeekKey]()
}

// NewMockDailyObjectiveRepository creates a mock repository for daily objectives.
func NewMockDailyObjectiveRepository() *MockPeriodRepository[domain.DayKey] {
	return NewMockPeriodRepository[domain.DayKey]()
}

// Ensure the mocks implement the repository interfaces.
var (
	_ domain.WeeklyGoalRepository     = (*MockPeriodRepository[domain.WeekKey])(nil)
	_ domain.DailyObjectiveRepository = (*MockPeriodRepository[domain.DayKey])(nil)
)

// EnsureSchema records the call and returns the configured error.
func (m *MockPeriodRepository[K]) EnsureSchema() error {
	m.SchemaCalls++
	return m.EnsureSchemaErr
}

// FindByKey returns the stored record as it would come back from storage.
func (m *MockPeriodRepository[K]) FindByKey(key K) (*domain.PeriodRecord[K], error) {
	m.FindCount++
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	text, ok := m.Records[key]
	if !ok {
		return nil, nil
	}
	return domain.Restore(key, text), nil
}

// Upsert stores the record, replacing any record with the same key.
func (m *MockPeriodRepository[K]) Upsert(rec *domain.PeriodRecord[K]) error {
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	m.UpsertCount++
	m.Records[rec.Key] = rec.Text
	return nil
}

// MockTaskRepository is a test double for domain.TaskRepository.
// Stored tasks are copies, like rows in a real store.
// Fields are ordered to minimize memory padding.
type MockTaskRepository struct {
	Tasks           map[int64]*domain.Task
	InsertErrFor    map[string]error // keyed by task text
	UpdateErrFor    map[int64]error  // keyed by task ID
	EnsureSchemaErr error
	GetErr          error
	ListErr         error
	InsertErr       error
	UpdateErr       error
	NextIDN         int64
	InsertCount     int
	UpdateCount     int
}

// NewMockTaskRepository creates a new MockTaskRepository with initialized maps.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		Tasks:        make(map[int64]*domain.Task),
		InsertErrFor: make(map[string]error),
		UpdateErrFor: make(map[int64]error),
		NextIDN:      1,
	}
}

// Ensure MockTaskRepository implements domain.TaskRepository interface.
var _ domain.TaskRepository = (*MockTaskRepository)(nil)

// Seed stores a persisted task directly, bypassing the counters.
func (m *MockTaskRepository) Seed(text string, status domain.Status, day *domain.DayKey) *domain.Task {
	id := m.NextIDN
	m.NextIDN++
	task := domain.RestoreTask(id, text, status, day)
	m.Tasks[id] = copyTask(task)
	return task
}

// EnsureSchema returns the configured error.
func (m *MockTaskRepository) EnsureSchema() error {
	return m.EnsureSchemaErr
}

// Get retrieves a task by ID.
func (m *MockTaskRepository) Get(id int64) (*domain.Task, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	task, ok := m.Tasks[id]
	if !ok {
		return nil, nil
	}
	return copyTask(task), nil
}

// List returns tasks matching the filter ordered by ID.
func (m *MockTaskRepository) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	ids := make([]int64, 0, len(m.Tasks))
	for id := range m.Tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	tasks := make([]*domain.Task, 0, len(ids))
	for _, id := range ids {
		if t := m.Tasks[id]; filter.Matches(t) {
			tasks = append(tasks, copyTask(t))
		}
	}
	return tasks, nil
}

// Insert stores a new task and returns its ID.
func (m *MockTaskRepository) Insert(task *domain.Task) (int64, error) {
	if m.InsertErr != nil {
		return 0, m.InsertErr
	}
	if err := m.InsertErrFor[task.Text]; err != nil {
		return 0, err
	}
	m.InsertCount++
	id := m.NextIDN
	m.NextIDN++
	stored := copyTask(task)
	stored.MarkPersisted(id)
	m.Tasks[id] = stored
	return id, nil
}

// Update overwrites the stored status and day of an existing task.
func (m *MockTaskRepository) Update(task *domain.Task) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if err := m.UpdateErrFor[task.ID]; err != nil {
		return err
	}
	if _, ok := m.Tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	m.UpdateCount++
	m.Tasks[task.ID] = copyTask(task)
	return nil
}

func copyTask(t *domain.Task) *domain.Task {
	var day *domain.DayKey
	if t.Day != nil {
		d := *t.Day
		day = &d
	}
	if !t.IsPersisted() {
		c := domain.NewTask(t.Text, domain.DayKey{})
		c.Day = day
		c.Status = t.Status
		return c
	}
	return domain.RestoreTask(t.ID, t.Text, t.Status, day)
}

// MockStoreInitializer is a test double for domain.StoreInitializer.
type MockStoreInitializer struct {
	InitErr     error
	Initialized bool
}

// Ensure MockStoreInitializer implements domain.StoreInitializer interface.
var _ domain.StoreInitializer = (*MockStoreInitializer)(nil)

// Initialize records the call and returns the configured error.
func (m *MockStoreInitializer) Initialize() error {
	if m.InitErr != nil {
		return m.InitErr
	}
	m.Initialized = true
	return nil
}

// MockPrompter is a test double for domain.Prompter.
// Answers are consumed in order; once a queue is exhausted the prompter
// behaves like a closed input stream and returns domain.ErrInputClosed.
// Fields are ordered to minimize memory padding.
type MockPrompter struct {
	TextErr         error
	ConfirmErr      error
	DispositionErr  error
	Texts           []string
	Confirms        []bool
	Dispositions    []domain.Disposition
	TextPrompts     []domain.TextPrompt
	ConfirmPrompts  []domain.ConfirmPrompt
	DispositionAsks []string // texts of the tasks asked about
}

// NewMockPrompter creates a MockPrompter answering text prompts with texts.
func NewMockPrompter(texts ...string) *MockPrompter {
	return &MockPrompter{Texts: texts}
}

// Ensure MockPrompter implements domain.Prompter interface.
var _ domain.Prompter = (*MockPrompter)(nil)

// PromptText returns the next scripted text answer.
func (m *MockPrompter) PromptText(_ context.Context, p domain.TextPrompt) (string, error) {
	m.TextPrompts = append(m.TextPrompts, p)
	if m.TextErr != nil {
		return "", m.TextErr
	}
	if len(m.Texts) == 0 {
		return "", domain.ErrInputClosed
	}
	answer := m.Texts[0]
	m.Texts = m.Texts[1:]
	return answer, nil
}

// Confirm returns the next scripted confirmation.
func (m *MockPrompter) Confirm(_ context.Context, p domain.ConfirmPrompt) (bool, error) {
	m.ConfirmPrompts = append(m.ConfirmPrompts, p)
	if m.ConfirmErr != nil {
		return false, m.ConfirmErr
	}
	if len(m.Confirms) == 0 {
		return false, domain.ErrInputClosed
	}
	answer := m.Confirms[0]
	m.Confirms = m.Confirms[1:]
	return answer, nil
}

// ChooseDisposition returns the next scripted disposition.
func (m *MockPrompter) ChooseDisposition(_ context.Context, task *domain.Task) (domain.Disposition, error) {
	m.DispositionAsks = append(m.DispositionAsks, task.Text)
	if m.DispositionErr != nil {
		return 0, m.DispositionErr
	}
	if len(m.Dispositions) == 0 {
		return 0, domain.ErrInputClosed
	}
	d := m.Dispositions[0]
	m.Dispositions = m.Dispositions[1:]
	return d, nil
}

// PresentedList is a task list shown by MockPresenter.
type PresentedList struct {
	Title string
	Texts []string
}

// MockPresenter is a test double for domain.Presenter that records output.
type MockPresenter struct {
	Headers    []string
	Goals      []string
	Objectives []string
	Lists      []PresentedList
	Infos      []string
}

// Ensure MockPresenter implements domain.Presenter interface.
var _ domain.Presenter = (*MockPresenter)(nil)

// Header records the title.
func (m *MockPresenter) Header(title string) {
	m.Headers = append(m.Headers, title)
}

// WeeklyGoal records the goal text.
func (m *MockPresenter) WeeklyGoal(goal *domain.WeeklyGoal) {
	m.Goals = append(m.Goals, goal.Text)
}

// DailyObjective records the objective text.
func (m *MockPresenter) DailyObjective(objective *domain.DailyObjective) {
	m.Objectives = append(m.Objectives, objective.Text)
}

// Tasks records the list title and task texts.
func (m *MockPresenter) Tasks(title string, tasks []*domain.Task) {
	texts := make([]string, 0, len(tasks))
	for _, t := range tasks {
		texts = append(texts, t.Text)
	}
	m.Lists = append(m.Lists, PresentedList{Title: title, Texts: texts})
}

// Info records the message.
func (m *MockPresenter) Info(msg string) {
	m.Infos = append(m.Infos, msg)
}

// LogEntry is a message recorded by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
}

// MockLogger is a test double for domain.Logger that records entries.
type MockLogger struct {
	Entries []LogEntry
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

// Debug records a debug entry.
func (m *MockLogger) Debug(category, msg string) { m.add("debug", category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(category, msg string) { m.add("info", category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(category, msg string) { m.add("warn", category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(category, msg string) { m.add("error", category, msg) }

func (m *MockLogger) add(level, category, msg string) {
	m.Entries = append(m.Entries, LogEntry{Level: level, Category: category, Msg: msg})
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// NewMockConfigLoader creates a new MockConfigLoader returning defaults.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitErr    error
	LastConfig *domain.Config // config passed to the last InitConfig call
	Info       domain.ConfigInfo
	InitCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		Info: domain.ConfigInfo{
			Path:   "/home/test/.config/goals/config.toml",
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// ConfigInfo returns the configured config info.
func (m *MockConfigManager) ConfigInfo() domain.ConfigInfo {
	return m.Info
}

// InitConfig records the call and returns configured error.
func (m *MockConfigManager) InitConfig(cfg *domain.Config) error {
	m.InitCalled = true
	m.LastConfig = cfg
	return m.InitErr
}
