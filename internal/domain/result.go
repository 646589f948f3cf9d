package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommitResult is the outcome of one commit attempt. It is either a success
// or a failure carrying the error returned by the store, unmodified.
//
// A successful result whose Committed method returns false is a no-op: the
// context had no pending changes and the store was not asked to commit.
type CommitResult struct {
	id          uuid.UUID
	context     string
	err         error
	committed   bool
	completedAt time.Time
}

// Succeeded builds a success result. committed is false when the attempt
// found nothing to commit.
func Succeeded(id uuid.UUID, context string, committed bool) CommitResult {
	return CommitResult{
		id:          id,
		context:     context,
		committed:   committed,
		completedAt: time.Now().UTC(),
	}
}

// Failed builds a failure result for err.
func Failed(id uuid.UUID, context string, err error) CommitResult {
	return CommitResult{
		id:          id,
		context:     context,
		err:         err,
		completedAt: time.Now().UTC(),
	}
}

// ID returns the attempt identifier, shared with the attempt's log entries
// and trace span.
func (r CommitResult) ID() uuid.UUID { return r.id }

// Context returns the name of the persistence context the attempt ran on.
func (r CommitResult) Context() string { return r.context }

// Err returns the failure cause, or nil on success.
func (r CommitResult) Err() error { return r.err }

// IsSuccess reports whether the attempt succeeded (including no-ops).
func (r CommitResult) IsSuccess() bool { return r.err == nil }

// Committed reports whether the store's commit primitive ran and succeeded.
func (r CommitResult) Committed() bool { return r.committed }

// CompletedAt returns when the attempt finished, in UTC.
func (r CommitResult) CompletedAt() time.Time { return r.completedAt }
