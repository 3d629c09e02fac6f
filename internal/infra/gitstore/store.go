// Package gitstore implements the repositories using Git plumbing (refs and blobs).
package gitstore

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/goals/internal/domain"
)

// Store keeps every record as a YAML blob pointed to by a ref.
//
// Data structure:
//
//	refs/<namespace>/
//	  meta                 → blob (nextTaskID)
//	  initialized          → marker blob
//	  weekly/<year>-<week> → blob (goal YAML)
//	  daily/<year>-<day>   → blob (objective YAML)
//	  tasks/<id>           → blob (task YAML)
type Store struct {
	repo      *git.Repository
	namespace string // e.g., "goals"
	mu        sync.RWMutex
}

// meta contains store metadata.
type meta struct {
	NextTaskID int64 `yaml:"nextTaskID"`
}

// periodData is the blob of a weekly goal or daily objective.
type periodData struct {
	Text string `yaml:"text"`
}

// taskData is the blob of a task. Day and Year are absent for tasks without a day.
type taskData struct {
	Day    *int   `yaml:"day,omitempty"`
	Year   *int   `yaml:"year,omitempty"`
	Text   string `yaml:"text"`
	Status string `yaml:"status"`
}

// New opens the repository at repoPath, creating a bare repository if none exists.
func New(repoPath, namespace string) (*Store, error) {
	repo, err := git.PlainOpen(repoPath)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = git.PlainInit(repoPath, true)
	}
	if err != nil {
		return nil, fmt.Errorf("open git repository %s: %w: %w", repoPath, domain.ErrStorageUnavailable, err)
	}
	return NewWithRepo(repo, namespace), nil
}

// NewWithRepo creates a new Store with an existing repository instance.
func NewWithRepo(repo *git.Repository, namespace string) *Store {
	if namespace == "" {
		namespace = domain.DefaultNamespace
	}
	return &Store{repo: repo, namespace: namespace}
}

// refPrefix returns the ref prefix for this namespace.
func (s *Store) refPrefix() string {
	return "refs/" + s.namespace + "/"
}

func (s *Store) taskRef(id int64) plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "tasks/" + strconv.FormatInt(id, 10))
}

func (s *Store) metaRef() plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "meta")
}

func (s *Store) initializedRef() plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "initialized")
}

// Ensure Store implements the domain interfaces.
var (
	_ domain.TaskRepository   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)

// Initialize writes the initialized marker and repairs the next task ID
// if it is behind the existing task refs.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	minNextID, err := s.calculateNextTaskID()
	if err != nil {
		return err
	}
	m, err := s.loadMeta()
	if err != nil {
		return err
	}
	if m.NextTaskID < minNextID {
		m.NextTaskID = minNextID
		if err := s.saveMeta(m); err != nil {
			return err
		}
	}

	_, err = s.repo.Reference(s.initializedRef(), true)
	if err == nil {
		return nil
	}
	if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return storageErr("check initialized ref", err)
	}
	return s.setRefBlob(s.initializedRef(), []byte("initialized"))
}

// EnsureSchema initializes the namespace if absent.
func (s *Store) EnsureSchema() error {
	return s.Initialize()
}

// Get retrieves a task by ID. Returns nil if not found.
func (s *Store) Get(id int64) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.getTaskLocked(id)
	if err != nil || data == nil {
		return nil, err
	}
	return data.toTask(id)
}

// List retrieves tasks matching the filter, ordered by ID.
func (s *Store) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := s.refPrefix() + "tasks/"
	refs, err := s.repo.References()
	if err != nil {
		return nil, storageErr("list refs", err)
	}

	tasks := []*domain.Task{}
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().String()
		if !strings.HasPrefix(name, prefix) {
			return nil
		}
		id, parseErr := strconv.ParseInt(strings.TrimPrefix(name, prefix), 10, 64)
		if parseErr != nil {
			return nil // Skip invalid refs
		}

		var data taskData
		if err := s.readYAML(ref.Hash(), &data); err != nil {
			return fmt.Errorf("read task #%d: %w", id, err)
		}
		task, err := data.toTask(id)
		if err != nil {
			return err
		}
		if filter.Matches(task) {
			tasks = append(tasks, task)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return tasks, nil
}

// Insert allocates the next ID and writes the task.
func (s *Store) Insert(task *domain.Task) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.loadMeta()
	if err != nil {
		return 0, err
	}
	id := m.NextTaskID
	m.NextTaskID++

	if err := s.writeYAML(s.taskRef(id), newTaskData(task)); err != nil {
		return 0, err
	}
	if err := s.saveMeta(m); err != nil {
		return 0, err
	}
	return id, nil
}

// Update writes the status and day of an existing task.
func (s *Store) Update(task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.getTaskLocked(task.ID)
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("update task #%d: %w", task.ID, domain.ErrTaskNotFound)
	}

	updated := newTaskData(task)
	updated.Text = data.Text
	return s.writeYAML(s.taskRef(task.ID), updated)
}

func (s *Store) getTaskLocked(id int64) (*taskData, error) {
	ref, err := s.repo.Reference(s.taskRef(id), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get task ref", err)
	}

	var data taskData
	if err := s.readYAML(ref.Hash(), &data); err != nil {
		return nil, fmt.Errorf("read task #%d: %w", id, err)
	}
	return &data, nil
}

func newTaskData(task *domain.Task) taskData {
	data := taskData{Text: task.Text, Status: string(task.Status)}
	if task.Day != nil {
		day, year := task.Day.Day, task.Day.Year
		data.Day, data.Year = &day, &year
	}
	return data
}

func (d taskData) toTask(id int64) (*domain.Task, error) {
	status := domain.Status(d.Status)
	if !status.IsValid() {
		return nil, storageErr(fmt.Sprintf("task #%d", id), fmt.Errorf("%w: %q", domain.ErrInvalidStatus, d.Status))
	}
	var day *domain.DayKey
	if d.Day != nil && d.Year != nil {
		day = &domain.DayKey{Day: *d.Day, Year: *d.Year}
	}
	return domain.RestoreTask(id, d.Text, status, day), nil
}

// loadMeta loads metadata from the meta ref.
// If the meta ref doesn't exist, NextTaskID is calculated from existing tasks.
func (s *Store) loadMeta() (*meta, error) {
	ref, err := s.repo.Reference(s.metaRef(), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		nextID, calcErr := s.calculateNextTaskID()
		if calcErr != nil {
			return nil, calcErr
		}
		return &meta{NextTaskID: nextID}, nil
	}
	if err != nil {
		return nil, storageErr("get meta ref", err)
	}

	var m meta
	if err := s.readYAML(ref.Hash(), &m); err != nil {
		return nil, fmt.Errorf("read meta: %w", err)
	}
	return &m, nil
}

// calculateNextTaskID returns the maximum task ID plus one, or 1 if there are no tasks.
func (s *Store) calculateNextTaskID() (int64, error) {
	iter, err := s.repo.References()
	if err != nil {
		return 0, storageErr("list refs", err)
	}

	var maxID int64
	prefix := s.refPrefix() + "tasks/"
	_ = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().String()
		if !strings.HasPrefix(name, prefix) {
			return nil
		}
		if id, parseErr := strconv.ParseInt(strings.TrimPrefix(name, prefix), 10, 64); parseErr == nil && id > maxID {
			maxID = id
		}
		return nil
	})
	return maxID + 1, nil
}

func (s *Store) saveMeta(m *meta) error {
	return s.writeYAML(s.metaRef(), m)
}

// writeYAML marshals v into a blob and points name at it.
func (s *Store) writeYAML(name plumbing.ReferenceName, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return storageErr(fmt.Sprintf("marshal %s", name), err)
	}
	return s.setRefBlob(name, data)
}

// readYAML decodes the blob at hash into v.
func (s *Store) readYAML(hash plumbing.Hash, v any) error {
	data, err := s.readBlob(hash)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return storageErr(fmt.Sprintf("decode blob %s", hash), err)
	}
	return nil
}

func (s *Store) setRefBlob(name plumbing.ReferenceName, data []byte) error {
	hash, err := s.writeBlob(data)
	if err != nil {
		return err
	}
	if err := s.repo.Storer.SetReference(plumbing.NewHashReference(name, hash)); err != nil {
		return storageErr("set ref "+name.String(), err)
	}
	return nil
}

// writeBlob writes data to a blob and returns the hash.
func (s *Store) writeBlob(data []byte) (plumbing.Hash, error) {
	obj := s.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, storageErr("create blob writer", err)
	}
	if _, writeErr := writer.Write(data); writeErr != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, storageErr("write blob", writeErr)
	}
	_ = writer.Close()

	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, storageErr("store blob", err)
	}
	return hash, nil
}

func (s *Store) readBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := s.repo.BlobObject(hash)
	if err != nil {
		return nil, storageErr("get blob", err)
	}
	reader, err := blob.Reader()
	if err != nil {
		return nil, storageErr("read blob", err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, storageErr("read blob data", err)
	}
	return data, nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
}
