package shared

import (
	"errors"
	"fmt"

	"github.com/runoshun/goals/internal/domain"
)

// StorageError adds operation context to a repository error.
// Errors that do not already carry ErrSchemaViolation or ErrStorageUnavailable
// are tagged with ErrStorageUnavailable so callers can test with errors.Is.
func StorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrSchemaViolation) || errors.Is(err, domain.ErrStorageUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
}
