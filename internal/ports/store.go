package ports

import "context"

// Store is the change-tracking surface of an object graph that the commit
// coordinator drives. Except where noted, methods are called only from the
// owning execution context of the persistence context that holds the store.
type Store interface {
	// HasPendingChanges reports whether any insert, update, or delete has
	// been recorded since the last commit or rollback.
	HasPendingChanges() bool

	// PendingChangeCount returns inserted + updated + deleted object
	// counts. It must be safe to call from any goroutine: the coalesced
	// commit path reads it on the caller's goroutine to decide whether to
	// bypass coalescing.
	PendingChangeCount() int

	// Commit persists all pending changes atomically. On failure the
	// pending changes are left in place.
	Commit(ctx context.Context) error

	// Rollback discards all pending changes, restoring the last committed
	// state.
	Rollback(ctx context.Context) error
}

// ObjectGraph is a Store that also exposes key/value object mutation.
// It is implemented by the memory and sqlite store adapters.
type ObjectGraph interface {
	Store

	// Put inserts or updates the object stored under key.
	Put(ctx context.Context, key string, data []byte) error

	// Delete removes the object stored under key.
	// Returns domain.ErrNotFound if no object is visible under key.
	Delete(ctx context.Context, key string) error

	// Get returns the object visible under key, including pending changes.
	// Returns domain.ErrNotFound if no object is visible under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Count returns the number of committed objects. Pending changes are
	// not included.
	Count(ctx context.Context) (int, error)
}
