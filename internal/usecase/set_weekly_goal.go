package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/goals/internal/domain"
	"github.com/runoshun/goals/internal/usecase/shared"
)

// SetWeeklyGoalInput contains the parameters for setting this week's goal.
type SetWeeklyGoalInput struct {
	Calendar domain.CalendarKey // Resolved once by the caller
}

// SetWeeklyGoalOutput contains the result of setting the goal.
type SetWeeklyGoalOutput struct {
	Goal  *domain.WeeklyGoal // The goal as entered
	Saved bool               // False when the user cancelled
}

// SetWeeklyGoal asks for this week's goal, shows it back and stores it on confirmation.
// A stored goal for the same week is replaced.
type SetWeeklyGoal struct {
	goals     *shared.PeriodStore[domain.WeekKey]
	prompter  domain.Prompter
	presenter domain.Presenter
}

// NewSetWeeklyGoal creates a new SetWeeklyGoal use case.
func NewSetWeeklyGoal(
	goals *shared.PeriodStore[domain.WeekKey],
	prompter domain.Prompter,
	presenter domain.Presenter,
) *SetWeeklyGoal {
	return &SetWeeklyGoal{
		goals:     goals,
		prompter:  prompter,
		presenter: presenter,
	}
}

// Execute runs the prompt, present and confirm sequence.
func (uc *SetWeeklyGoal) Execute(ctx context.Context, in SetWeeklyGoalInput) (*SetWeeklyGoalOutput, error) {
	if err := uc.goals.EnsureSchema(); err != nil {
		return nil, err
	}

	key := in.Calendar.Week()
	current, err := uc.goals.FindByKey(key)
	if err != nil {
		return nil, err
	}

	prompt := WeeklyGoalPrompt
	if current != nil {
		prompt = withDefault(prompt, current.Text)
	}
	text, err := shared.PromptNonEmpty(ctx, uc.prompter, prompt)
	if err != nil {
		return nil, fmt.Errorf("read weekly goal: %w", err)
	}

	goal := domain.NewDraft(key, text)
	if current != nil {
		goal = current.Revise(text)
	}
	uc.presenter.WeeklyGoal(goal)

	if !confirm(ctx, uc.prompter, uc.presenter, ConfirmWeeklyGoalPrompt) {
		return &SetWeeklyGoalOutput{Goal: goal}, nil
	}
	if err := uc.goals.Save(goal); err != nil {
		return nil, err
	}
	return &SetWeeklyGoalOutput{Goal: goal, Saved: true}, nil
}

// confirm asks a yes/no question. Read failures count as a refusal.
func confirm(ctx context.Context, prompter domain.Prompter, presenter domain.Presenter, p domain.ConfirmPrompt) bool {
	ok, err := prompter.Confirm(ctx, p)
	if err != nil {
		presenter.Info(ConfirmErrorMessage)
		return false
	}
	if !ok {
		presenter.Info(CancelledMessage)
	}
	return ok
}
