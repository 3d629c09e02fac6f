package usecase

import (
	"context"

	"github.com/runoshun/goals/internal/domain"
	"github.com/runoshun/goals/internal/usecase/shared"
)

// ListUnfinishedInput contains the parameters for listing unfinished tasks.
type ListUnfinishedInput struct{}

// ListUnfinishedOutput contains the unfinished tasks.
type ListUnfinishedOutput struct {
	Tasks []*domain.Task // ToDo tasks in insertion order (never nil)
}

// ListUnfinished returns every task still marked ToDo.
type ListUnfinished struct {
	tasks domain.TaskRepository
}

// NewListUnfinished creates a new ListUnfinished use case.
func NewListUnfinished(tasks domain.TaskRepository) *ListUnfinished {
	return &ListUnfinished{tasks: tasks}
}

// Execute lists ToDo tasks. An empty result is an empty slice.
func (uc *ListUnfinished) Execute(_ context.Context, _ ListUnfinishedInput) (*ListUnfinishedOutput, error) {
	tasks, err := uc.tasks.List(domain.TaskFilter{
		Statuses: []domain.Status{domain.StatusTodo},
	})
	if err != nil {
		return nil, shared.StorageError("list unfinished tasks", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return &ListUnfinishedOutput{Tasks: tasks}, nil
}

// ListTasksInput contains the parameters for listing tasks.
// Fields are ordered to minimize memory padding.
type ListTasksInput struct {
	Day             *domain.DayKey  // Only tasks on this day's list (nil = any day)
	Statuses        []domain.Status // Filter by status (empty = see IncludeTerminal)
	IncludeTerminal bool            // Include done and discarded tasks
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks []*domain.Task // List of tasks matching the filter
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	tasks domain.TaskRepository
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskRepository) *ListTasks {
	return &ListTasks{tasks: tasks}
}

// Execute lists tasks matching the given input criteria.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	if err := uc.tasks.EnsureSchema(); err != nil {
		return nil, shared.StorageError("ensure task schema", err)
	}

	filter := domain.TaskFilter{
		Day:      in.Day,
		Statuses: in.Statuses,
	}

	tasks, err := uc.tasks.List(filter)
	if err != nil {
		return nil, shared.StorageError("list tasks", err)
	}

	// Filter out terminal status tasks if not requested
	if len(in.Statuses) == 0 && !in.IncludeTerminal {
		tasks = filterActiveOnly(tasks)
	}

	return &ListTasksOutput{Tasks: tasks}, nil
}

// filterActiveOnly removes tasks with terminal status (done/discarded).
func filterActiveOnly(tasks []*domain.Task) []*domain.Task {
	result := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Status.IsTerminal() {
			result = append(result, t)
		}
	}
	return result
}
