package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/goals/internal/domain"
	"github.com/runoshun/goals/internal/usecase/shared"
)

// ResolveTaskInput contains the parameters for resolving a task.
type ResolveTaskInput struct {
	Status domain.Status // StatusDone or StatusDiscarded
	TaskID int64         // Task ID to resolve
}

// ResolveTaskOutput contains the result of resolving a task.
type ResolveTaskOutput struct {
	Task *domain.Task // The resolved task
}

// ResolveTask is the use case for finishing or discarding a task.
type ResolveTask struct {
	tasks domain.TaskRepository
}

// NewResolveTask creates a new ResolveTask use case.
func NewResolveTask(tasks domain.TaskRepository) *ResolveTask {
	return &ResolveTask{tasks: tasks}
}

// Execute moves the task to a terminal status.
func (uc *ResolveTask) Execute(_ context.Context, in ResolveTaskInput) (*ResolveTaskOutput, error) {
	if !in.Status.IsTerminal() {
		return nil, fmt.Errorf("resolve to %s: %w", in.Status.Display(), domain.ErrInvalidStatus)
	}

	if err := uc.tasks.EnsureSchema(); err != nil {
		return nil, shared.StorageError("ensure task schema", err)
	}

	task, err := shared.GetTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}

	if err := task.TransitionTo(in.Status); err != nil {
		return nil, err
	}

	if err := uc.tasks.Update(task); err != nil {
		return nil, shared.StorageError("save task", err)
	}

	return &ResolveTaskOutput{Task: task}, nil
}
