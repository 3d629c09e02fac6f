package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/goals/internal/domain"
	"github.com/runoshun/goals/internal/usecase/shared"
)

// SetDailyObjectiveInput contains the parameters for setting today's objective.
type SetDailyObjectiveInput struct {
	Calendar domain.CalendarKey // Resolved once by the caller
}

// SetDailyObjectiveOutput contains the result of setting the objective.
type SetDailyObjectiveOutput struct {
	Goal      *domain.WeeklyGoal     // This week's goal the objective works towards
	Objective *domain.DailyObjective // The objective as entered
	Saved     bool                   // False when the user cancelled
}

// SetDailyObjective shows this week's goal, then asks for today's objective
// and stores it on confirmation.
type SetDailyObjective struct {
	goals      *shared.PeriodStore[domain.WeekKey]
	objectives *shared.PeriodStore[domain.DayKey]
	prompter   domain.Prompter
	presenter  domain.Presenter
}

// NewSetDailyObjective creates a new SetDailyObjective use case.
func NewSetDailyObjective(
	goals *shared.PeriodStore[domain.WeekKey],
	objectives *shared.PeriodStore[domain.DayKey],
	prompter domain.Prompter,
	presenter domain.Presenter,
) *SetDailyObjective {
	return &SetDailyObjective{
		goals:      goals,
		objectives: objectives,
		prompter:   prompter,
		presenter:  presenter,
	}
}

// Execute runs the sequence. A missing weekly goal is asked for and saved first.
func (uc *SetDailyObjective) Execute(ctx context.Context, in SetDailyObjectiveInput) (*SetDailyObjectiveOutput, error) {
	if err := uc.goals.EnsureSchema(); err != nil {
		return nil, err
	}
	if err := uc.objectives.EnsureSchema(); err != nil {
		return nil, err
	}

	goal, err := uc.goals.GetOrPrompt(ctx, in.Calendar.Week(), WeeklyGoalPrompt)
	if err != nil {
		return nil, err
	}
	if err := uc.goals.Save(goal); err != nil {
		return nil, err
	}
	uc.presenter.WeeklyGoal(goal)

	key := in.Calendar.Day()
	current, err := uc.objectives.FindByKey(key)
	if err != nil {
		return nil, err
	}

	prompt := DailyObjectivePrompt
	if current != nil {
		prompt = withDefault(prompt, current.Text)
	}
	text, err := shared.PromptNonEmpty(ctx, uc.prompter, prompt)
	if err != nil {
		return nil, fmt.Errorf("read daily objective: %w", err)
	}

	objective := domain.NewDraft(key, text)
	if current != nil {
		objective = current.Revise(text)
	}
	uc.presenter.DailyObjective(objective)

	out := &SetDailyObjectiveOutput{Goal: goal, Objective: objective}
	if !confirm(ctx, uc.prompter, uc.presenter, ConfirmDailyObjectivePrompt) {
		return out, nil
	}
	if err := uc.objectives.Save(objective); err != nil {
		return nil, err
	}
	out.Saved = true
	return out, nil
}
