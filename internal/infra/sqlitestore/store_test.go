package sqlitestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/goals/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "goals.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Initialize())
	return db
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "goals.db")

	db, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.Equal(t, path, db.Path())
	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}

func TestOpen_Memory(t *testing.T) {
	db, err := Open(MemoryPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, db.Initialize())
	repo := NewWeeklyGoalRepository(db)
	require.NoError(t, repo.Upsert(domain.NewDraft(domain.WeekKey{Week: 1, Year: 2025}, "x")))
}

func TestInitialize_Idempotent(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Initialize())
	require.NoError(t, db.Initialize())

	cols, err := db.columns("tasks")
	require.NoError(t, err)
	assert.True(t, cols["day"])
	assert.True(t, cols["year"])
}

func TestWeeklyGoalRepository_RoundTrip(t *testing.T) {
	// Setup
	db := newTestDB(t)
	repo := NewWeeklyGoalRepository(db)
	key := domain.WeekKey{Week: 10, Year: 2024}

	// Execute
	require.NoError(t, repo.Upsert(domain.NewDraft(key, "Ship v1")))
	got, err := repo.FindByKey(key)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ship v1", got.Text)
	assert.Equal(t, key, got.Key)
	assert.True(t, got.IsPersisted())
}

func TestWeeklyGoalRepository_FindMissing(t *testing.T) {
	repo := NewWeeklyGoalRepository(newTestDB(t))

	got, err := repo.FindByKey(domain.WeekKey{Week: 11, Year: 2024})

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWeeklyGoalRepository_UpsertReplaces(t *testing.T) {
	db := newTestDB(t)
	repo := NewWeeklyGoalRepository(db)
	key := domain.WeekKey{Week: 10, Year: 2024}

	require.NoError(t, repo.Upsert(domain.NewDraft(key, "Ship v1")))
	require.NoError(t, repo.Upsert(domain.NewDraft(key, "Ship v2")))

	got, err := repo.FindByKey(key)
	require.NoError(t, err)
	assert.Equal(t, "Ship v2", got.Text)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM weekly_goals`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestDailyObjectiveRepository_DayOneOfTwoYears(t *testing.T) {
	repo := NewDailyObjectiveRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(domain.NewDraft(domain.DayKey{Day: 1, Year: 2024}, "first")))
	require.NoError(t, repo.Upsert(domain.NewDraft(domain.DayKey{Day: 1, Year: 2025}, "second")))

	a, err := repo.FindByKey(domain.DayKey{Day: 1, Year: 2024})
	require.NoError(t, err)
	b, err := repo.FindByKey(domain.DayKey{Day: 1, Year: 2025})
	require.NoError(t, err)

	assert.Equal(t, "first", a.Text)
	assert.Equal(t, "second", b.Text)
}

func TestPeriodRepository_EnsureSchemaOnFreshDB(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "goals.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewDailyObjectiveRepository(db)
	require.NoError(t, repo.EnsureSchema())
	require.NoError(t, repo.EnsureSchema())

	got, err := repo.FindByKey(domain.DayKey{Day: 45, Year: 2025})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPeriodRepository_ClosedDB(t *testing.T) {
	db := newTestDB(t)
	repo := NewWeeklyGoalRepository(db)
	require.NoError(t, db.Close())

	_, err := repo.FindByKey(domain.WeekKey{Week: 1, Year: 2025})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	err = repo.Upsert(domain.NewDraft(domain.WeekKey{Week: 1, Year: 2025}, "x"))
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestTaskRepository_InsertAssignsIncreasingIDs(t *testing.T) {
	repo := NewTaskRepository(newTestDB(t))
	day := domain.DayKey{Day: 45, Year: 2025}

	id1, err := repo.Insert(domain.NewTask("email client", day))
	require.NoError(t, err)
	id2, err := repo.Insert(domain.NewTask("write report", day))
	require.NoError(t, err)

	assert.Greater(t, id1, int64(0))
	assert.Greater(t, id2, id1)
}

func TestTaskRepository_GetAndUpdate(t *testing.T) {
	// Setup
	repo := NewTaskRepository(newTestDB(t))
	yesterday := domain.DayKey{Day: 44, Year: 2025}
	today := domain.DayKey{Day: 45, Year: 2025}
	id, err := repo.Insert(domain.NewTask("email client", yesterday))
	require.NoError(t, err)

	task, err := repo.Get(id)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "email client", task.Text)
	assert.Equal(t, domain.StatusTodo, task.Status)
	assert.True(t, task.IsOn(yesterday))

	// Execute
	task.AssignDay(today)
	require.NoError(t, task.TransitionTo(domain.StatusDone))
	require.NoError(t, repo.Update(task))

	// Assert
	got, err := repo.Get(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, got.Status)
	assert.True(t, got.IsOn(today))
}

func TestTaskRepository_GetMissing(t *testing.T) {
	repo := NewTaskRepository(newTestDB(t))

	task, err := repo.Get(99)

	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestTaskRepository_UpdateMissing(t *testing.T) {
	repo := NewTaskRepository(newTestDB(t))

	err := repo.Update(domain.RestoreTask(99, "ghost", domain.StatusDone, nil))

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestTaskRepository_UnknownStatusCode(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Exec(`INSERT INTO tasks (text, status) VALUES ('old task', 'P')`)
	require.NoError(t, err)
	repo := NewTaskRepository(db)

	_, err = repo.Get(1)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = repo.List(domain.TaskFilter{})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestTaskRepository_List(t *testing.T) {
	// Setup
	repo := NewTaskRepository(newTestDB(t))
	today := domain.DayKey{Day: 45, Year: 2025}
	yesterday := domain.DayKey{Day: 44, Year: 2025}

	insert := func(text string, status domain.Status, day domain.DayKey) {
		task := domain.NewTask(text, day)
		task.Status = status
		_, err := repo.Insert(task)
		require.NoError(t, err)
	}
	insert("a", domain.StatusTodo, yesterday)
	insert("b", domain.StatusDone, yesterday)
	insert("c", domain.StatusTodo, today)
	insert("d", domain.StatusDiscarded, today)

	tests := []struct {
		name   string
		filter domain.TaskFilter
		want   []string
	}{
		{"all in insertion order", domain.TaskFilter{}, []string{"a", "b", "c", "d"}},
		{"todo only", domain.TaskFilter{Statuses: []domain.Status{domain.StatusTodo}}, []string{"a", "c"}},
		{"today", domain.TaskFilter{Day: &today}, []string{"c", "d"}},
		{
			"today done or discarded",
			domain.TaskFilter{Day: &today, Statuses: []domain.Status{domain.StatusDone, domain.StatusDiscarded}},
			[]string{"d"},
		},
		{"snoozed none", domain.TaskFilter{Statuses: []domain.Status{domain.StatusSnoozed}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Execute
			tasks, err := repo.List(tt.filter)

			// Assert
			require.NoError(t, err)
			texts := make([]string, 0, len(tasks))
			for _, task := range tasks {
				texts = append(texts, task.Text)
			}
			assert.Equal(t, tt.want, texts)
		})
	}
}

func TestInitialize_MigratesLegacyTasksTable(t *testing.T) {
	// Setup: a tasks table without day columns and a row with NULL text
	db, err := Open(filepath.Join(t.TempDir(), "legacy.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(`CREATE TABLE tasks (
		id INTEGER PRIMARY KEY,
		text VARCHAR(255),
		status TEXT NOT NULL DEFAULT 'T'
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO tasks (text, status) VALUES ('old task', 'T'), (NULL, 'D')`)
	require.NoError(t, err)

	// Execute
	require.NoError(t, db.Initialize())

	// Assert
	repo := NewTaskRepository(db)
	tasks, err := repo.List(domain.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "old task", tasks[0].Text)
	assert.Nil(t, tasks[0].Day)
	assert.Equal(t, "", tasks[1].Text)
	assert.Equal(t, domain.StatusDone, tasks[1].Status)

	id, err := repo.Insert(domain.NewTask("new task", domain.DayKey{Day: 45, Year: 2025}))
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
}
