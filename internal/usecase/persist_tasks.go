package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/goals/internal/domain"
	"github.com/runoshun/goals/internal/usecase/shared"
)

// PersistTasksInput contains the tasks to write.
type PersistTasksInput struct {
	Tasks []*domain.Task
}

// PersistTasksOutput contains the result of writing tasks.
type PersistTasksOutput struct {
	Inserted int // Number of drafts written
}

// PersistTasks inserts every draft task.
type PersistTasks struct {
	tasks  domain.TaskRepository
	logger domain.Logger
}

// NewPersistTasks creates a new PersistTasks use case.
func NewPersistTasks(tasks domain.TaskRepository, logger domain.Logger) *PersistTasks {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &PersistTasks{tasks: tasks, logger: logger}
}

// Execute writes the drafts in order. Persisted tasks are skipped.
// Each failure is reported as a *domain.TaskSaveError; tasks written before
// a failure stay written.
func (uc *PersistTasks) Execute(_ context.Context, in PersistTasksInput) (*PersistTasksOutput, error) {
	out := &PersistTasksOutput{}
	var errs []error

	for _, task := range in.Tasks {
		if task.IsPersisted() {
			continue
		}
		id, err := uc.tasks.Insert(task)
		if err != nil {
			uc.logger.Error("tasks", fmt.Sprintf("insert task %q: %v", task.Text, err))
			errs = append(errs, &domain.TaskSaveError{Text: task.Text, Err: shared.StorageError("insert task", err)})
			continue
		}
		task.MarkPersisted(id)
		out.Inserted++
	}

	if out.Inserted > 0 {
		uc.logger.Info("tasks", fmt.Sprintf("inserted %d task(s)", out.Inserted))
	}
	return out, errors.Join(errs...)
}
