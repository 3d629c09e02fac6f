package domain

import "errors"

// Domain errors.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrSchemaViolation    = errors.New("uniqueness constraint violated")
	ErrInputClosed        = errors.New("input closed")
	ErrEmptyText          = errors.New("text cannot be empty")
	ErrInvalidPeriod      = errors.New("invalid period")
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrConfigExists       = errors.New("config file already exists")
	ErrUnknownStore       = errors.New("unknown store type")
)

// TaskSaveError reports a storage failure for a single task in a batch.
type TaskSaveError struct {
	Err  error
	Text string
}

// Error implements error.
func (e *TaskSaveError) Error() string {
	return "save task " + `"` + e.Text + `": ` + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *TaskSaveError) Unwrap() error {
	return e.Err
}
