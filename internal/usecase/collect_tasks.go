package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/runoshun/goals/internal/domain"
)

// CollectTasksInput contains the parameters for collecting new tasks.
type CollectTasksInput struct {
	Tasks []*domain.Task // Today's list so far
	Today domain.DayKey  // Day the new tasks belong to
}

// CollectTasksOutput contains today's list with the new tasks appended.
type CollectTasksOutput struct {
	Tasks []*domain.Task // Input list followed by the new drafts
	Added int            // Number of new drafts
}

// CollectTasks asks for new tasks until the user enters an empty line.
type CollectTasks struct {
	prompter domain.Prompter
}

// NewCollectTasks creates a new CollectTasks use case.
func NewCollectTasks(prompter domain.Prompter) *CollectTasks {
	return &CollectTasks{prompter: prompter}
}

// Execute collects draft tasks. Nothing is written.
// An empty answer or the end of input finishes the collection.
func (uc *CollectTasks) Execute(ctx context.Context, in CollectTasksInput) (*CollectTasksOutput, error) {
	tasks := make([]*domain.Task, 0, len(in.Tasks))
	tasks = append(tasks, in.Tasks...)
	out := &CollectTasksOutput{}

	for {
		answer, err := uc.prompter.PromptText(ctx, NewTaskPrompt)
		if errors.Is(err, domain.ErrInputClosed) {
			break
		}
		if err != nil {
			out.Tasks = tasks
			return out, fmt.Errorf("read task: %w", err)
		}

		text := strings.TrimSpace(answer)
		if text == "" {
			break
		}
		tasks = append(tasks, domain.NewTask(text, in.Today))
		out.Added++
	}

	out.Tasks = tasks
	return out, nil
}
