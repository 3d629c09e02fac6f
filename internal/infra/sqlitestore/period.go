package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/runoshun/goals/internal/domain"
)

// periodTable describes the table of one period-scoped record kind.
type periodTable struct {
	name   string
	schema string
	find   string
	upsert string
}

var weeklyGoalsTable = periodTable{
	name: "weekly_goals",
	schema: `CREATE TABLE IF NOT EXISTS weekly_goals (
		id   INTEGER PRIMARY KEY,
		text TEXT NOT NULL,
		week INTEGER NOT NULL,
		year INTEGER NOT NULL,
		UNIQUE (week, year)
	)`,
	find:   `SELECT text FROM weekly_goals WHERE week = ? AND year = ?`,
	upsert: `INSERT OR REPLACE INTO weekly_goals (text, week, year) VALUES (?, ?, ?)`,
}

var dailyObjectivesTable = periodTable{
	name: "daily_objectives",
	schema: `CREATE TABLE IF NOT EXISTS daily_objectives (
		id   INTEGER PRIMARY KEY,
		text TEXT NOT NULL,
		day  INTEGER NOT NULL,
		year INTEGER NOT NULL,
		UNIQUE (day, year)
	)`,
	find:   `SELECT text FROM daily_objectives WHERE day = ? AND year = ?`,
	upsert: `INSERT OR REPLACE INTO daily_objectives (text, day, year) VALUES (?, ?, ?)`,
}

// PeriodRepository stores records keyed by a period in one table.
type PeriodRepository[K domain.PeriodKey] struct {
	db      *DB
	keyArgs func(K) []any
	table   periodTable
}

// Ensure the repositories implement the domain interfaces.
var (
	_ domain.WeeklyGoalRepository     = (*PeriodRepository[domain.WeekKey])(nil)
	_ domain.DailyObjectiveRepository = (*PeriodRepository[domain.DayKey])(nil)
)

// NewWeeklyGoalRepository creates the repository for the weekly_goals table.
func NewWeeklyGoalRepository(db *DB) *PeriodRepository[domain.WeekKey] {
	return &PeriodRepository[domain.WeekKey]{
		db:      db,
		table:   weeklyGoalsTable,
		keyArgs: func(k domain.WeekKey) []any { return []any{k.Week, k.Year} },
	}
}

// NewDailyObjectiveRepository creates the repository for the daily_objectives table.
func NewDailyObjectiveRepository(db *DB) *PeriodRepository[domain.DayKey] {
	return &PeriodRepository[domain.DayKey]{
		db:      db,
		table:   dailyObjectivesTable,
		keyArgs: func(k domain.DayKey) []any { return []any{k.Day, k.Year} },
	}
}

// EnsureSchema creates the table if it does not exist.
func (r *PeriodRepository[K]) EnsureSchema() error {
	return r.db.ensurePeriodTable(r.table)
}

// FindByKey returns the record for key, or nil if there is none.
func (r *PeriodRepository[K]) FindByKey(key K) (*domain.PeriodRecord[K], error) {
	var text string
	err := r.db.QueryRow(r.table.find, r.keyArgs(key)...).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("find %s %v", r.table.name, key), err)
	}
	return domain.Restore(key, text), nil
}

// Upsert inserts the record, replacing the row with the same key.
func (r *PeriodRepository[K]) Upsert(rec *domain.PeriodRecord[K]) error {
	args := append([]any{rec.Text}, r.keyArgs(rec.Key)...)
	if _, err := r.db.Exec(r.table.upsert, args...); err != nil {
		return wrapErr(fmt.Sprintf("upsert %s %v", r.table.name, rec.Key), err)
	}
	return nil
}
