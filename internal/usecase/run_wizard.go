package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/goals/internal/domain"
	"github.com/runoshun/goals/internal/usecase/shared"
)

// RunWizardInput contains the parameters for a wizard session.
type RunWizardInput struct{}

// RunWizardOutput contains what the session ended with.
// Fields are left nil for steps that were not reached.
type RunWizardOutput struct {
	Goal      *domain.WeeklyGoal
	Objective *domain.DailyObjective
	Today     []*domain.Task // Today's list after new tasks were added
	Calendar  domain.CalendarKey
}

// WizardDeps holds the collaborators of RunWizard.
type WizardDeps struct {
	Clock      domain.Clock
	Goals      *shared.PeriodStore[domain.WeekKey]
	Objectives *shared.PeriodStore[domain.DayKey]
	Tasks      domain.TaskRepository
	Unfinished *ListUnfinished
	Reconcile  *ReconcileTasks
	Collect    *CollectTasks
	Persist    *PersistTasks
	Presenter  domain.Presenter
	Logger     domain.Logger
}

// RunWizard is the interactive session: weekly goal, daily objective,
// review of unfinished tasks and entry of new ones.
type RunWizard struct {
	deps WizardDeps
}

// NewRunWizard creates a new RunWizard use case.
func NewRunWizard(deps WizardDeps) *RunWizard {
	if deps.Logger == nil {
		deps.Logger = domain.NopLogger{}
	}
	return &RunWizard{deps: deps}
}

// Execute runs the session. The calendar is resolved once at the start.
// Storage failures abort the session. Data persisted by earlier steps is kept.
func (uc *RunWizard) Execute(ctx context.Context, _ RunWizardInput) (*RunWizardOutput, error) {
	d := uc.deps
	out := &RunWizardOutput{Calendar: domain.ResolveCalendar(d.Clock.Now())}
	d.Logger.Info("wizard", fmt.Sprintf("session for week %v, day %v", out.Calendar.Week(), out.Calendar.Day()))

	d.Presenter.Header(WizardTitle)

	if err := uc.ensureSchema(); err != nil {
		return out, err
	}

	// Weekly goal
	goal, err := d.Goals.GetOrPrompt(ctx, out.Calendar.Week(), WeeklyGoalPrompt)
	if err != nil {
		return out, err
	}
	if err := d.Goals.Save(goal); err != nil {
		return out, err
	}
	out.Goal = goal
	d.Presenter.WeeklyGoal(goal)

	// Daily objective
	objective, err := d.Objectives.GetOrPrompt(ctx, out.Calendar.Day(), DailyObjectivePrompt)
	if err != nil {
		return out, err
	}
	if err := d.Objectives.Save(objective); err != nil {
		return out, err
	}
	out.Objective = objective
	d.Presenter.DailyObjective(objective)

	// Unfinished tasks
	unfinished, err := d.Unfinished.Execute(ctx, ListUnfinishedInput{})
	if err != nil {
		return out, err
	}
	today, pending := splitByDay(unfinished.Tasks, out.Calendar.Day())
	switch {
	case len(unfinished.Tasks) == 0:
		d.Presenter.Info(NoUnfinishedMessage)
	case len(pending) > 0:
		d.Presenter.Tasks(UnfinishedTasksTitle, pending)
	}

	reconciled, err := d.Reconcile.Execute(ctx, ReconcileTasksInput{
		Unfinished: pending,
		Today:      out.Calendar.Day(),
	})
	today = append(today, reconciled.Active...)
	out.Today = today
	if err != nil {
		return out, err
	}

	// New tasks
	collected, err := d.Collect.Execute(ctx, CollectTasksInput{
		Tasks: today,
		Today: out.Calendar.Day(),
	})
	if err != nil {
		return out, err
	}
	out.Today = collected.Tasks

	_, persistErr := d.Persist.Execute(ctx, PersistTasksInput{Tasks: collected.Tasks})
	d.Presenter.Tasks(TodayTasksTitle, collected.Tasks)
	if persistErr != nil {
		return out, persistErr
	}

	d.Logger.Info("wizard", fmt.Sprintf("session done with %d task(s) for today", len(out.Today)))
	return out, nil
}

func (uc *RunWizard) ensureSchema() error {
	if err := uc.deps.Goals.EnsureSchema(); err != nil {
		return err
	}
	if err := uc.deps.Objectives.EnsureSchema(); err != nil {
		return err
	}
	if err := uc.deps.Tasks.EnsureSchema(); err != nil {
		return shared.StorageError("ensure task schema", err)
	}
	return nil
}

// splitByDay separates tasks already on day's list from the ones to review.
func splitByDay(tasks []*domain.Task, day domain.DayKey) (onDay, others []*domain.Task) {
	onDay = make([]*domain.Task, 0, len(tasks))
	others = make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.IsOn(day) {
			onDay = append(onDay, t)
		} else {
			others = append(others, t)
		}
	}
	return onDay, others
}
