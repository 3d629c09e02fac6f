package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/goals/internal/domain"
	"github.com/runoshun/goals/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUnfinished(repo *testutil.MockTaskRepository, texts ...string) []*domain.Task {
	tasks := make([]*domain.Task, 0, len(texts))
	for _, text := range texts {
		tasks = append(tasks, repo.Seed(text, domain.StatusTodo, nil))
	}
	return tasks
}

func TestReconcileTasks_Execute(t *testing.T) {
	// Setup
	today := domain.DayKey{Day: 45, Year: 2025}
	repo := testutil.NewMockTaskRepository()
	unfinished := seedUnfinished(repo, "email client", "review PR", "write tests")
	prompter := testutil.NewMockPrompter()
	prompter.Dispositions = []domain.Disposition{
		domain.DispositionMoveToToday,
		domain.DispositionDiscard,
		domain.DispositionSnooze,
	}
	uc := NewReconcileTasks(repo, prompter, nil)

	// Execute
	out, err := uc.Execute(context.Background(), ReconcileTasksInput{
		Unfinished: unfinished,
		Today:      today,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"email client", "review PR", "write tests"}, prompter.DispositionAsks)

	require.Len(t, out.Active, 1)
	assert.Equal(t, "email client", out.Active[0].Text)
	assert.Equal(t, domain.StatusTodo, out.Active[0].Status)
	assert.True(t, out.Active[0].IsOn(today))
	require.Len(t, out.Discarded, 1)
	require.Len(t, out.Snoozed, 1)

	// Storage reflects the decisions
	assert.True(t, repo.Tasks[1].IsOn(today))
	assert.Equal(t, domain.StatusTodo, repo.Tasks[1].Status)
	assert.Equal(t, domain.StatusDiscarded, repo.Tasks[2].Status)
	assert.Equal(t, domain.StatusTodo, repo.Tasks[3].Status)
	assert.Nil(t, repo.Tasks[3].Day)
	assert.Equal(t, 2, repo.UpdateCount, "snooze issues no write")
}

func TestReconcileTasks_Execute_KeepsInputOrder(t *testing.T) {
	today := domain.DayKey{Day: 10, Year: 2025}
	repo := testutil.NewMockTaskRepository()
	unfinished := seedUnfinished(repo, "c", "a", "b")
	prompter := testutil.NewMockPrompter()
	prompter.Dispositions = []domain.Disposition{
		domain.DispositionMoveToToday,
		domain.DispositionMoveToToday,
		domain.DispositionMoveToToday,
	}

	out, err := NewReconcileTasks(repo, prompter, nil).Execute(context.Background(), ReconcileTasksInput{
		Unfinished: unfinished,
		Today:      today,
	})

	require.NoError(t, err)
	require.Len(t, out.Active, 3)
	assert.Equal(t, "c", out.Active[0].Text)
	assert.Equal(t, "a", out.Active[1].Text)
	assert.Equal(t, "b", out.Active[2].Text)
}

func TestReconcileTasks_Execute_Empty(t *testing.T) {
	prompter := testutil.NewMockPrompter()

	out, err := NewReconcileTasks(testutil.NewMockTaskRepository(), prompter, nil).
		Execute(context.Background(), ReconcileTasksInput{})

	require.NoError(t, err)
	assert.Empty(t, out.Active)
	assert.Empty(t, prompter.DispositionAsks)
}

func TestReconcileTasks_Execute_StorageErrorsAreCollected(t *testing.T) {
	// Setup
	today := domain.DayKey{Day: 45, Year: 2025}
	repo := testutil.NewMockTaskRepository()
	unfinished := seedUnfinished(repo, "email client", "review PR", "write tests")
	repo.UpdateErrFor[1] = errors.New("disk full")
	repo.UpdateErrFor[2] = errors.New("database is locked")
	prompter := testutil.NewMockPrompter()
	prompter.Dispositions = []domain.Disposition{
		domain.DispositionMoveToToday,
		domain.DispositionDiscard,
		domain.DispositionMoveToToday,
	}
	logger := &testutil.MockLogger{}
	uc := NewReconcileTasks(repo, prompter, logger)

	// Execute
	out, err := uc.Execute(context.Background(), ReconcileTasksInput{Unfinished: unfinished, Today: today})

	// Assert - every task was still asked about
	require.Error(t, err)
	assert.Len(t, prompter.DispositionAsks, 3)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "database is locked")

	var saveErr *domain.TaskSaveError
	require.ErrorAs(t, err, &saveErr)
	assert.Equal(t, "email client", saveErr.Text)

	require.Len(t, out.Active, 2)
	assert.Equal(t, 1, repo.UpdateCount)
	assert.True(t, repo.Tasks[3].IsOn(today))
	assert.Len(t, logger.Entries, 3)
}

func TestReconcileTasks_Execute_FailedDiscardKeepsStatus(t *testing.T) {
	// Setup
	repo := testutil.NewMockTaskRepository()
	unfinished := seedUnfinished(repo, "email client")
	repo.UpdateErr = errors.New("disk full")
	prompter := testutil.NewMockPrompter()
	prompter.Dispositions = []domain.Disposition{domain.DispositionDiscard}

	// Execute
	out, err := NewReconcileTasks(repo, prompter, nil).Execute(context.Background(), ReconcileTasksInput{
		Unfinished: unfinished,
		Today:      domain.DayKey{Day: 45, Year: 2025},
	})

	// Assert
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Empty(t, out.Discarded)
	assert.Equal(t, domain.StatusTodo, unfinished[0].Status)
	assert.Equal(t, domain.StatusTodo, repo.Tasks[1].Status)
}

func TestReconcileTasks_Execute_InputClosedStops(t *testing.T) {
	// Setup
	today := domain.DayKey{Day: 45, Year: 2025}
	repo := testutil.NewMockTaskRepository()
	unfinished := seedUnfinished(repo, "email client", "review PR", "write tests")
	prompter := testutil.NewMockPrompter()
	prompter.Dispositions = []domain.Disposition{domain.DispositionMoveToToday}
	uc := NewReconcileTasks(repo, prompter, nil)

	// Execute
	out, err := uc.Execute(context.Background(), ReconcileTasksInput{Unfinished: unfinished, Today: today})

	// Assert
	require.ErrorIs(t, err, domain.ErrInputClosed)
	assert.Len(t, prompter.DispositionAsks, 2, "stops at the first unanswered task")
	require.Len(t, out.Active, 1)
	assert.Equal(t, "email client", out.Active[0].Text)
	assert.Equal(t, domain.StatusTodo, repo.Tasks[2].Status)
}

func TestReconcileTasks_Execute_SnoozedTaskMovedToToday(t *testing.T) {
	today := domain.DayKey{Day: 45, Year: 2025}
	repo := testutil.NewMockTaskRepository()
	snoozed := repo.Seed("later", domain.StatusSnoozed, nil)
	prompter := testutil.NewMockPrompter()
	prompter.Dispositions = []domain.Disposition{domain.DispositionMoveToToday}

	out, err := NewReconcileTasks(repo, prompter, nil).Execute(context.Background(), ReconcileTasksInput{
		Unfinished: []*domain.Task{snoozed},
		Today:      today,
	})

	require.NoError(t, err)
	require.Len(t, out.Active, 1)
	assert.Equal(t, domain.StatusTodo, repo.Tasks[snoozed.ID].Status)
}

func TestReconcileTasks_Execute_UnknownDisposition(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	unfinished := seedUnfinished(repo, "a", "b")
	prompter := testutil.NewMockPrompter()
	prompter.Dispositions = []domain.Disposition{domain.Disposition(42), domain.DispositionDiscard}

	out, err := NewReconcileTasks(repo, prompter, nil).Execute(context.Background(), ReconcileTasksInput{
		Unfinished: unfinished,
		Today:      domain.DayKey{Day: 1, Year: 2025},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown disposition")
	assert.Len(t, out.Discarded, 1)
}
