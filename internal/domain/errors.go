package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)

// Commit and dispatch failures.
var (
	// ErrCommitFailed marks a failure of a store's commit primitive. Store
	// adapters wrap their errors with it; the coordinator returns store
	// errors as-is, so callers see exactly what the store produced.
	ErrCommitFailed = errors.New("commit failed")

	// ErrRollbackFailed marks a failed rollback after a failed commit. The
	// persistence context may be inconsistent and should not be reused.
	ErrRollbackFailed = errors.New("rollback failed")

	// ErrReentrantWait is returned when a synchronous dispatch is attempted
	// from work already running on the same owning execution context.
	// Waiting would deadlock the owner, so the call fails without running.
	ErrReentrantWait = errors.New("synchronous dispatch from owning execution context")

	// ErrExecutorClosed is returned when work is submitted to an execution
	// context that has been closed.
	ErrExecutorClosed = errors.New("execution context closed")

	// ErrWorkPanicked wraps a panic recovered while running dispatched work.
	ErrWorkPanicked = errors.New("work panicked")
)

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr) to
// access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// RollbackError reports a commit failure whose compensating rollback also
// failed. errors.Is matches ErrRollbackFailed as well as both causes.
type RollbackError struct {
	Commit   error
	Rollback error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("%s: %v (after commit error: %v)", ErrRollbackFailed.Error(), e.Rollback, e.Commit)
}

func (e *RollbackError) Unwrap() []error {
	return []error{ErrRollbackFailed, e.Commit, e.Rollback}
}
