package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/runoshun/goals/internal/domain"
)

const tasksSchema = `CREATE TABLE IF NOT EXISTS tasks (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	text   TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'T',
	day    INTEGER DEFAULT NULL,
	year   INTEGER DEFAULT NULL
)`

// ensureTasksTable creates the tasks table and adds the day columns to
// tables created without them.
func (d *DB) ensureTasksTable() error {
	if _, err := d.Exec(tasksSchema); err != nil {
		return wrapErr("create table tasks", err)
	}

	cols, err := d.columns("tasks")
	if err != nil {
		return wrapErr("inspect table tasks", err)
	}
	for _, col := range []string{"day", "year"} {
		if cols[col] {
			continue
		}
		if _, err := d.Exec(fmt.Sprintf("ALTER TABLE tasks ADD COLUMN %s INTEGER DEFAULT NULL", col)); err != nil {
			return wrapErr("add column tasks."+col, err)
		}
	}
	return nil
}

// Ensure TaskRepository implements domain.TaskRepository.
var _ domain.TaskRepository = (*TaskRepository)(nil)

// TaskRepository stores tasks in the tasks table.
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// EnsureSchema creates the table if it does not exist.
func (r *TaskRepository) EnsureSchema() error {
	return r.db.ensureTasksTable()
}

// Get retrieves a task by ID. Returns nil if not found.
func (r *TaskRepository) Get(id int64) (*domain.Task, error) {
	row := r.db.QueryRow(`SELECT id, text, status, day, year FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("get task #%d", id), err)
	}
	return task, nil
}

// List retrieves tasks matching the filter in insertion order.
func (r *TaskRepository) List(filter domain.TaskFilter) ([]*domain.Task, error) {
	var (
		where []string
		args  []any
	)
	if len(filter.Statuses) > 0 {
		marks := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			marks = append(marks, "?")
			args = append(args, string(s))
		}
		where = append(where, "status IN ("+strings.Join(marks, ", ")+")")
	}
	if filter.Day != nil {
		where = append(where, "day = ? AND year = ?")
		args = append(args, filter.Day.Day, filter.Day.Year)
	}

	query := `SELECT id, text, status, day, year FROM tasks`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, wrapErr("list tasks", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, wrapErr("scan task", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list tasks", err)
	}
	return tasks, nil
}

// Insert writes a new task and returns its assigned ID.
func (r *TaskRepository) Insert(task *domain.Task) (int64, error) {
	day, year := dayArgs(task.Day)
	res, err := r.db.Exec(
		`INSERT INTO tasks (text, status, day, year) VALUES (?, ?, ?, ?)`,
		task.Text, string(task.Status), day, year,
	)
	if err != nil {
		return 0, wrapErr("insert task", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, wrapErr("insert task", err)
	}
	return id, nil
}

// Update writes the status and day of an existing task.
func (r *TaskRepository) Update(task *domain.Task) error {
	day, year := dayArgs(task.Day)
	res, err := r.db.Exec(
		`UPDATE tasks SET status = ?, day = ?, year = ? WHERE id = ?`,
		string(task.Status), day, year, task.ID,
	)
	if err != nil {
		return wrapErr(fmt.Sprintf("update task #%d", task.ID), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr(fmt.Sprintf("update task #%d", task.ID), err)
	}
	if n == 0 {
		return fmt.Errorf("update task #%d: %w", task.ID, domain.ErrTaskNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one row. Legacy rows may have a NULL text and no day.
func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		id     int64
		text   sql.NullString
		status string
		day    sql.NullInt64
		year   sql.NullInt64
	)
	if err := row.Scan(&id, &text, &status, &day, &year); err != nil {
		return nil, err
	}
	if !domain.Status(status).IsValid() {
		return nil, fmt.Errorf("task #%d: %w: %q", id, domain.ErrInvalidStatus, status)
	}

	var key *domain.DayKey
	if day.Valid && year.Valid {
		key = &domain.DayKey{Day: int(day.Int64), Year: int(year.Int64)}
	}
	return domain.RestoreTask(id, text.String, domain.Status(status), key), nil
}

func dayArgs(day *domain.DayKey) (any, any) {
	if day == nil {
		return nil, nil
	}
	return day.Day, day.Year
}
