package gitstore

import (
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/goals/internal/domain"
)

func setupTestRepo(t *testing.T) *git.Repository {
	t.Helper()

	repo, err := git.PlainInit(t.TempDir(), false)
	require.NoError(t, err)
	return repo
}

func TestNew_CreatesBareRepository(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "notes.git")

	store, err := New(dir, "")
	require.NoError(t, err)
	require.NoError(t, store.Initialize())

	// Reopening finds the same data
	reopened, err := New(dir, "")
	require.NoError(t, err)
	_, err = reopened.repo.Reference(reopened.initializedRef(), true)
	assert.NoError(t, err)
	assert.Equal(t, domain.DefaultNamespace, reopened.namespace)
}

func TestStore_Initialize(t *testing.T) {
	store := NewWithRepo(setupTestRepo(t), "goals-test")

	require.NoError(t, store.Initialize())
	// Second call should be idempotent
	require.NoError(t, store.Initialize())

	_, err := store.repo.Reference(store.initializedRef(), true)
	assert.NoError(t, err)
}

func TestStore_InsertAssignsSequentialIDs(t *testing.T) {
	store := NewWithRepo(setupTestRepo(t), "goals-test")
	day := domain.DayKey{Day: 45, Year: 2025}

	for want := int64(1); want <= 3; want++ {
		id, err := store.Insert(domain.NewTask("task", day))
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestStore_InsertAndGet(t *testing.T) {
	// Setup
	store := NewWithRepo(setupTestRepo(t), "goals-test")
	day := domain.DayKey{Day: 45, Year: 2025}

	// Execute
	id, err := store.Insert(domain.NewTask("email client", day))
	require.NoError(t, err)
	got, err := store.Get(id)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "email client", got.Text)
	assert.Equal(t, domain.StatusTodo, got.Status)
	assert.True(t, got.IsOn(day))
	assert.True(t, got.IsPersisted())

	// Get non-existent
	got, err = store.Get(999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Update(t *testing.T) {
	store := NewWithRepo(setupTestRepo(t), "goals-test")
	id, err := store.Insert(domain.NewTask("email client", domain.DayKey{Day: 44, Year: 2025}))
	require.NoError(t, err)

	task, err := store.Get(id)
	require.NoError(t, err)
	task.AssignDay(domain.DayKey{Day: 45, Year: 2025})
	require.NoError(t, task.TransitionTo(domain.StatusDone))
	require.NoError(t, store.Update(task))

	got, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, got.Status)
	assert.True(t, got.IsOn(domain.DayKey{Day: 45, Year: 2025}))
	assert.Equal(t, "email client", got.Text)
}

func TestStore_UpdateMissing(t *testing.T) {
	store := NewWithRepo(setupTestRepo(t), "goals-test")

	err := store.Update(domain.RestoreTask(7, "ghost", domain.StatusDone, nil))

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestStore_List(t *testing.T) {
	// Setup
	store := NewWithRepo(setupTestRepo(t), "goals-test")
	today := domain.DayKey{Day: 45, Year: 2025}
	yesterday := domain.DayKey{Day: 44, Year: 2025}
	for _, tc := range []struct {
		text   string
		status domain.Status
		day    domain.DayKey
	}{
		{"a", domain.StatusTodo, yesterday},
		{"b", domain.StatusDone, yesterday},
		{"c", domain.StatusTodo, today},
	} {
		task := domain.NewTask(tc.text, tc.day)
		task.Status = tc.status
		_, err := store.Insert(task)
		require.NoError(t, err)
	}
	// More than nine tasks so ref order differs from numeric order
	for i := 0; i < 8; i++ {
		_, err := store.Insert(domain.NewTask("filler", yesterday))
		require.NoError(t, err)
	}

	// Execute
	all, err := store.List(domain.TaskFilter{})
	require.NoError(t, err)
	todayOnly, err := store.List(domain.TaskFilter{Day: &today})
	require.NoError(t, err)
	done, err := store.List(domain.TaskFilter{Statuses: []domain.Status{domain.StatusDone}})
	require.NoError(t, err)

	// Assert
	require.Len(t, all, 11)
	for i, task := range all {
		assert.Equal(t, int64(i+1), task.ID)
	}
	require.Len(t, todayOnly, 1)
	assert.Equal(t, "c", todayOnly[0].Text)
	require.Len(t, done, 1)
	assert.Equal(t, "b", done[0].Text)
}

func TestStore_ListSkipsOtherNamespaces(t *testing.T) {
	repo := setupTestRepo(t)
	mine := NewWithRepo(repo, "goals-a")
	other := NewWithRepo(repo, "goals-b")

	_, err := mine.Insert(domain.NewTask("mine", domain.DayKey{Day: 1, Year: 2025}))
	require.NoError(t, err)
	_, err = other.Insert(domain.NewTask("other", domain.DayKey{Day: 1, Year: 2025}))
	require.NoError(t, err)

	tasks, err := mine.List(domain.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "mine", tasks[0].Text)
}

func TestStore_InitializeRepairsNextID(t *testing.T) {
	store := NewWithRepo(setupTestRepo(t), "goals-test")
	for i := 0; i < 3; i++ {
		_, err := store.Insert(domain.NewTask("task", domain.DayKey{Day: 1, Year: 2025}))
		require.NoError(t, err)
	}

	// Simulate a stale meta blob
	require.NoError(t, store.saveMeta(&meta{NextTaskID: 1}))
	require.NoError(t, store.Initialize())

	id, err := store.Insert(domain.NewTask("next", domain.DayKey{Day: 1, Year: 2025}))
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
}

func TestStore_CorruptTaskBlob(t *testing.T) {
	store := NewWithRepo(setupTestRepo(t), "goals-test")
	require.NoError(t, store.setRefBlob(store.taskRef(1), []byte("text: [unterminated")))

	_, err := store.Get(1)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.NotErrorIs(t, err, domain.ErrSchemaViolation)

	_, err = store.List(domain.TaskFilter{})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.NotErrorIs(t, err, domain.ErrSchemaViolation)
}

func TestStore_UnknownStatusCode(t *testing.T) {
	store := NewWithRepo(setupTestRepo(t), "goals-test")
	require.NoError(t, store.setRefBlob(store.taskRef(1), []byte("text: old\nstatus: P\n")))

	_, err := store.Get(1)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = store.List(domain.TaskFilter{})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestPeriodRepository_RoundTrip(t *testing.T) {
	// Setup
	store := NewWithRepo(setupTestRepo(t), "goals-test")
	goals := store.WeeklyGoals()
	key := domain.WeekKey{Week: 10, Year: 2024}

	// Execute
	require.NoError(t, goals.EnsureSchema())
	require.NoError(t, goals.Upsert(domain.NewDraft(key, "Ship v1")))
	got, err := goals.FindByKey(key)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ship v1", got.Text)
	assert.True(t, got.IsPersisted())

	_, err = store.repo.Reference(plumbing.ReferenceName("refs/goals-test/weekly/2024-10"), true)
	assert.NoError(t, err)

	missing, err := goals.FindByKey(domain.WeekKey{Week: 11, Year: 2024})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPeriodRepository_UpsertReplaces(t *testing.T) {
	goals := NewWithRepo(setupTestRepo(t), "goals-test").WeeklyGoals()
	key := domain.WeekKey{Week: 10, Year: 2024}

	require.NoError(t, goals.Upsert(domain.NewDraft(key, "Ship v1")))
	require.NoError(t, goals.Upsert(domain.NewDraft(key, "Ship v2")))

	got, err := goals.FindByKey(key)
	require.NoError(t, err)
	assert.Equal(t, "Ship v2", got.Text)
}

func TestPeriodRepository_DayOneOfTwoYears(t *testing.T) {
	objectives := NewWithRepo(setupTestRepo(t), "goals-test").DailyObjectives()

	require.NoError(t, objectives.Upsert(domain.NewDraft(domain.DayKey{Day: 1, Year: 2024}, "first")))
	require.NoError(t, objectives.Upsert(domain.NewDraft(domain.DayKey{Day: 1, Year: 2025}, "second")))

	a, err := objectives.FindByKey(domain.DayKey{Day: 1, Year: 2024})
	require.NoError(t, err)
	b, err := objectives.FindByKey(domain.DayKey{Day: 1, Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, "first", a.Text)
	assert.Equal(t, "second", b.Text)
}
