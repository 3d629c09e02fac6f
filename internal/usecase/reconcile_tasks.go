package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/goals/internal/domain"
	"github.com/runoshun/goals/internal/usecase/shared"
)

// ReconcileTasksInput contains the parameters for reconciling unfinished tasks.
type ReconcileTasksInput struct {
	Unfinished []*domain.Task // Tasks to decide on, in presentation order
	Today      domain.DayKey  // Day the moved tasks are assigned to
}

// ReconcileTasksOutput contains the outcome of the decisions.
type ReconcileTasksOutput struct {
	Active    []*domain.Task // Moved to today's list, in input order
	Discarded []*domain.Task // Marked discarded
	Snoozed   []*domain.Task // Left as todo for another day
}

// ReconcileTasks asks the user what to do with each unfinished task.
type ReconcileTasks struct {
	tasks    domain.TaskRepository
	prompter domain.Prompter
	logger   domain.Logger
}

// NewReconcileTasks creates a new ReconcileTasks use case.
func NewReconcileTasks(tasks domain.TaskRepository, prompter domain.Prompter, logger domain.Logger) *ReconcileTasks {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &ReconcileTasks{
		tasks:    tasks,
		prompter: prompter,
		logger:   logger,
	}
}

// Execute walks the unfinished tasks in order.
//
// Storage failures for single tasks do not stop the pass; they are returned
// joined together with the full output. A prompter failure (for example a
// closed input stream) stops the pass and returns what was decided so far.
func (uc *ReconcileTasks) Execute(ctx context.Context, in ReconcileTasksInput) (*ReconcileTasksOutput, error) {
	out := &ReconcileTasksOutput{
		Active: make([]*domain.Task, 0, len(in.Unfinished)),
	}

	var errs []error
	for _, task := range in.Unfinished {
		choice, err := uc.prompter.ChooseDisposition(ctx, task)
		if err != nil {
			errs = append(errs, fmt.Errorf("choose disposition for %q: %w", task.Text, err))
			return out, errors.Join(errs...)
		}

		switch choice {
		case domain.DispositionMoveToToday:
			if err := task.TransitionTo(domain.StatusTodo); err != nil {
				errs = append(errs, err)
				continue
			}
			task.AssignDay(in.Today)
			if err := uc.update(task); err != nil {
				errs = append(errs, err)
			}
			out.Active = append(out.Active, task)

		case domain.DispositionDiscard:
			prev := task.Status
			if err := task.TransitionTo(domain.StatusDiscarded); err != nil {
				errs = append(errs, err)
				continue
			}
			if err := uc.update(task); err != nil {
				// Still unfinished in the store.
				task.Status = prev
				errs = append(errs, err)
				continue
			}
			out.Discarded = append(out.Discarded, task)

		case domain.DispositionSnooze:
			out.Snoozed = append(out.Snoozed, task)

		default:
			errs = append(errs, fmt.Errorf("unknown disposition %s for %q", choice.Display(), task.Text))
		}
	}

	return out, errors.Join(errs...)
}

func (uc *ReconcileTasks) update(task *domain.Task) error {
	if err := uc.tasks.Update(task); err != nil {
		uc.logger.Error("tasks", fmt.Sprintf("update task #%d: %v", task.ID, err))
		return &domain.TaskSaveError{Text: task.Text, Err: shared.StorageError("update task", err)}
	}
	uc.logger.Debug("tasks", fmt.Sprintf("task #%d is now %s", task.ID, task.Status.Display()))
	return nil
}
