// Package jsonstore implements the repositories on a single JSON file.
package jsonstore

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"syscall"

	"github.com/runoshun/goals/internal/domain"
)

// storeData represents the JSON file structure.
// Fields are ordered to minimize memory padding.
type storeData struct {
	Weekly map[string]string    `json:"weekly"` // "<year>-<week>" → goal
	Daily  map[string]string    `json:"daily"`  // "<year>-<day>" → objective
	Tasks  map[string]*taskData `json:"tasks"`
	Meta   meta                 `json:"meta"`
}

// meta contains store metadata.
type meta struct {
	NextTaskID int64 `json:"nextTaskID"`
}

// taskData is the JSON representation of a task (without ID, which is the map key).
type taskData struct {
	Day    *int          `json:"day,omitempty"`
	Year   *int          `json:"year,omitempty"`
	Text   string        `json:"text"`
	Status domain.Status `json:"status"`
}

// Store keeps every record in one JSON file guarded by a lock file.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first write.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Ensure Store implements the domain interfaces.
var (
	_ domain.TaskRepository   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// Initialize creates an empty store file if it doesn't exist.
// An existing file is left untouched.
func (s *Store) Initialize() error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	_, err = os.Stat(s.path)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return storageErr("stat store file", err)
	}

	data, err := s.read()
	if err != nil {
		return err
	}
	return s.write(data)
}

// EnsureSchema creates the store file if absent.
func (s *Store) EnsureSchema() error {
	return s.Initialize()
}

// Get retrieves a task by ID. Returns nil if not found.
func (s *Store) Get(id int64) (*domain.Task, error) {
	var task *domain.Task
	err := s.withLock(func(data *storeData) error {
		t, ok := data.Tasks[taskKey(id)]
		if !ok {
			return nil
		}
		var err error
		task, err = t.toTask(id)
		return err
	})
	return task, err
}

// List retrieves tasks matching the filter, ordered by ID.
func (s *Store) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	tasks := []*domain.Task{}
	err := s.withLock(func(data *storeData) error {
		for key, t := range data.Tasks {
			id, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				return storageErr(fmt.Sprintf("task key %q", key), err)
			}
			task, err := t.toTask(id)
			if err != nil {
				return err
			}
			if filter.Matches(task) {
				tasks = append(tasks, task)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Sort by ID for consistent ordering
	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return tasks, nil
}

// Insert allocates the next ID and writes the task.
func (s *Store) Insert(task *domain.Task) (int64, error) {
	var id int64
	err := s.withLockWrite(func(data *storeData) error {
		id = data.Meta.NextTaskID
		data.Meta.NextTaskID++
		data.Tasks[taskKey(id)] = newTaskData(task)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update writes the status and day of an existing task.
func (s *Store) Update(task *domain.Task) error {
	return s.withLockWrite(func(data *storeData) error {
		current, ok := data.Tasks[taskKey(task.ID)]
		if !ok {
			return fmt.Errorf("update task #%d: %w", task.ID, domain.ErrTaskNotFound)
		}
		updated := newTaskData(task)
		updated.Text = current.Text
		data.Tasks[taskKey(task.ID)] = updated
		return nil
	})
}

func taskKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

func newTaskData(task *domain.Task) *taskData {
	data := &taskData{Text: task.Text, Status: task.Status}
	if task.Day != nil {
		day, year := task.Day.Day, task.Day.Year
		data.Day, data.Year = &day, &year
	}
	return data
}

func (d *taskData) toTask(id int64) (*domain.Task, error) {
	if !d.Status.IsValid() {
		return nil, storageErr(fmt.Sprintf("task #%d", id), fmt.Errorf("%w: %q", domain.ErrInvalidStatus, d.Status))
	}
	var day *domain.DayKey
	if d.Day != nil && d.Year != nil {
		day = &domain.DayKey{Day: *d.Day, Year: *d.Year}
	}
	return domain.RestoreTask(id, d.Text, d.Status, day), nil
}

// withLock executes fn with a shared (read) lock.
// A missing file reads as an empty store.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	// Ensure lock file directory exists
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, storageErr("create directory", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, storageErr("open lock file", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, storageErr("acquire lock", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*storeData, error) {
	data := &storeData{Meta: meta{NextTaskID: 1}}

	content, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, storageErr("read store file", err)
	default:
		if err := json.Unmarshal(content, data); err != nil {
			return nil, storageErr("parse "+s.path, err)
		}
	}

	// Ensure maps are initialized
	if data.Weekly == nil {
		data.Weekly = make(map[string]string)
	}
	if data.Daily == nil {
		data.Daily = make(map[string]string)
	}
	if data.Tasks == nil {
		data.Tasks = make(map[string]*taskData)
	}
	if data.Meta.NextTaskID < 1 {
		data.Meta.NextTaskID = nextTaskID(data.Tasks)
	}

	return data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return storageErr("marshal store data", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return storageErr("write temp file", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return storageErr("rename temp file", err)
	}

	return nil
}

// nextTaskID returns the maximum task ID plus one, or 1 if there are no tasks.
func nextTaskID(tasks map[string]*taskData) int64 {
	var maxID int64
	for key := range tasks {
		if id, err := strconv.ParseInt(key, 10, 64); err == nil && id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
}
