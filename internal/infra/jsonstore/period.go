package jsonstore

import (
	"fmt"

	"github.com/runoshun/goals/internal/domain"
)

// PeriodRepository stores records keyed by a period in one section of the file.
type PeriodRepository[K domain.PeriodKey] struct {
	store   *Store
	section func(*storeData) map[string]string
	keyName func(K) string
}

// Ensure the repositories implement the domain interfaces.
var (
	_ domain.WeeklyGoalRepository     = (*PeriodRepository[domain.WeekKey])(nil)
	_ domain.DailyObjectiveRepository = (*PeriodRepository[domain.DayKey])(nil)
)

// WeeklyGoals returns the weekly goal repository backed by this store.
func (s *Store) WeeklyGoals() *PeriodRepository[domain.WeekKey] {
	return &PeriodRepository[domain.WeekKey]{
		store:   s,
		section: func(d *storeData) map[string]string { return d.Weekly },
		keyName: func(k domain.WeekKey) string { return fmt.Sprintf("%d-%d", k.Year, k.Week) },
	}
}

// DailyObjectives returns the daily objective repository backed by this store.
func (s *Store) DailyObjectives() *PeriodRepository[domain.DayKey] {
	return &PeriodRepository[domain.DayKey]{
		store:   s,
		section: func(d *storeData) map[string]string { return d.Daily },
		keyName: func(k domain.DayKey) string { return fmt.Sprintf("%d-%d", k.Year, k.Day) },
	}
}

// EnsureSchema creates the store file if absent.
func (r *PeriodRepository[K]) EnsureSchema() error {
	return r.store.Initialize()
}

// FindByKey returns the record for key, or nil if there is none.
func (r *PeriodRepository[K]) FindByKey(key K) (*domain.PeriodRecord[K], error) {
	var rec *domain.PeriodRecord[K]
	err := r.store.withLock(func(data *storeData) error {
		if text, ok := r.section(data)[r.keyName(key)]; ok {
			rec = domain.Restore(key, text)
		}
		return nil
	})
	return rec, err
}

// Upsert writes the record, replacing any record with the same key.
func (r *PeriodRepository[K]) Upsert(rec *domain.PeriodRecord[K]) error {
	return r.store.withLockWrite(func(data *storeData) error {
		r.section(data)[r.keyName(rec.Key)] = rec.Text
		return nil
	})
}
