package gitstore

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/runoshun/goals/internal/domain"
)

// PeriodRepository stores records keyed by a period under one ref directory.
type PeriodRepository[K domain.PeriodKey] struct {
	store   *Store
	refName func(K) string
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
		refName: func(k domain.WeekKey) string { return fmt.Sprintf("weekly/%d-%d", k.Year, k.Week) },
	}
}

// DailyObjectives returns the daily objective repository backed by this store.
func (s *Store) DailyObjectives() *PeriodRepository[domain.DayKey] {
	return &PeriodRepository[domain.DayKey]{
		store:   s,
		refName: func(k domain.DayKey) string { return fmt.Sprintf("daily/%d-%d", k.Year, k.Day) },
	}
}

func (r *PeriodRepository[K]) ref(key K) plumbing.ReferenceName {
	return plumbing.ReferenceName(r.store.refPrefix() + r.refName(key))
}

// EnsureSchema initializes the namespace if absent.
func (r *PeriodRepository[K]) EnsureSchema() error {
	return r.store.Initialize()
}

// FindByKey returns the record for key, or nil if there is none.
func (r *PeriodRepository[K]) FindByKey(key K) (*domain.PeriodRecord[K], error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ref, err := r.store.repo.Reference(r.ref(key), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get ref "+r.ref(key).String(), err)
	}

	var data periodData
	if err := r.store.readYAML(ref.Hash(), &data); err != nil {
		return nil, fmt.Errorf("read %s: %w", r.ref(key), err)
	}
	return domain.Restore(key, data.Text), nil
}

// Upsert points the key's ref at a new blob, replacing any previous record.
func (r *PeriodRepository[K]) Upsert(rec *domain.PeriodRecord[K]) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.store.writeYAML(r.ref(rec.Key), periodData{Text: rec.Text})
}
