package ports

import (
	"context"
)

// CommitStats is a snapshot of commit coordinator counters.
type CommitStats struct {
	Commits           int64 `json:"commits"`
	NoOps             int64 `json:"no_ops"`
	Failures          int64 `json:"failures"`
	Rollbacks         int64 `json:"rollbacks"`
	RollbackFailures  int64 `json:"rollback_failures"`
	Overflows         int64 `json:"overflows"`
	CoalescedRequests int64 `json:"coalesced_requests"`
	Rounds            int64 `json:"rounds"`
}

// ObjectService defines the service port for object graph operations.
// Implemented by the application layer; called by inbound adapters (handlers).
// Mutations are applied on the graph's owning execution context and committed
// through the coalesced commit path.
type ObjectService interface {
	// Put stores data under key and schedules a coalesced commit.
	// Returns domain.ErrValidation if key is empty.
	Put(ctx context.Context, key string, data []byte) error

	// Delete removes key and schedules a coalesced commit.
	// Returns domain.ErrNotFound if key does not exist.
	Delete(ctx context.Context, key string) error

	// Get returns the object stored under key, including uncommitted changes.
	// Returns domain.ErrNotFound if key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Commit forces a synchronous commit-or-rollback of pending changes.
	Commit(ctx context.Context) error

	// Flush waits until every scheduled coalesced commit has finished.
	Flush(ctx context.Context) error

	// Stats returns the commit coordinator counters and the current
	// pending change count.
	Stats(ctx context.Context) (CommitStats, int)
}
