package shared

import (
	"context"
	"fmt"

	"github.com/runoshun/goals/internal/domain"
)

// PeriodStore implements get-or-create for records keyed by a period.
// A persisted record is never written again, so saving twice costs one write.
type PeriodStore[K domain.PeriodKey] struct {
	repo     domain.PeriodRepository[K]
	prompter domain.Prompter
	logger   domain.Logger
	kind     string
}

// NewPeriodStore creates a new PeriodStore.
// kind names the record in errors and logs (e.g. "weekly goal").
func NewPeriodStore[K domain.PeriodKey](
	kind string,
	repo domain.PeriodRepository[K],
	prompter domain.Prompter,
	logger domain.Logger,
) *PeriodStore[K] {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &PeriodStore[K]{
		repo:     repo,
		prompter: prompter,
		logger:   logger,
		kind:     kind,
	}
}

// NewWeeklyGoalStore creates a PeriodStore for weekly goals.
func NewWeeklyGoalStore(repo domain.WeeklyGoalRepository, prompter domain.Prompter, logger domain.Logger) *PeriodStore[domain.WeekKey] {
	return NewPeriodStore[domain.WeekKey]("weekly goal", repo, prompter, logger)
}

// NewDailyObjectiveStore creates a PeriodStore for daily objectives.
func NewDailyObjectiveStore(repo domain.DailyObjectiveRepository, prompter domain.Prompter, logger domain.Logger) *PeriodStore[domain.DayKey] {
	return NewPeriodStore[domain.DayKey]("daily objective", repo, prompter, logger)
}

// EnsureSchema creates the storage namespace for this record kind if absent.
func (s *PeriodStore[K]) EnsureSchema() error {
	if err := s.repo.EnsureSchema(); err != nil {
		return StorageError("ensure "+s.kind+" schema", err)
	}
	return nil
}

// FindByKey returns the persisted record for key, or nil when none exists.
func (s *PeriodStore[K]) FindByKey(key K) (*domain.PeriodRecord[K], error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	rec, err := s.repo.FindByKey(key)
	if err != nil {
		return nil, StorageError("find "+s.kind, err)
	}
	if rec == nil {
		return nil, nil
	}
	rec.MarkPersisted()
	return rec, nil
}

// GetOrPrompt returns the stored record for key. When none exists the user is
// asked for the text and a draft is returned. It never writes.
func (s *PeriodStore[K]) GetOrPrompt(ctx context.Context, key K, prompt domain.TextPrompt) (*domain.PeriodRecord[K], error) {
	rec, err := s.FindByKey(key)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		s.logger.Debug("store", fmt.Sprintf("found %s %v", s.kind, key))
		return rec, nil
	}

	text, err := PromptNonEmpty(ctx, s.prompter, prompt)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.kind, err)
	}
	return domain.NewDraft(key, text), nil
}

// Save writes a draft record and marks it persisted.
// A persisted record is left alone: no write is issued even if its text changed.
// On failure the record stays a draft so the call can be retried.
func (s *PeriodStore[K]) Save(rec *domain.PeriodRecord[K]) error {
	if rec.IsPersisted() {
		return nil
	}
	if err := rec.Key.Validate(); err != nil {
		return err
	}
	if err := s.repo.Upsert(rec); err != nil {
		s.logger.Error("store", fmt.Sprintf("save %s %v: %v", s.kind, rec.Key, err))
		return StorageError("save "+s.kind, err)
	}
	rec.MarkPersisted()
	s.logger.Info("store", fmt.Sprintf("saved %s %v", s.kind, rec.Key))
	return nil
}
