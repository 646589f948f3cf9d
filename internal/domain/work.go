package domain

import "context"

// Work is a unit of work executed on a persistence context's owning
// execution context. The context passed to Work identifies the owner, so
// nested synchronous dispatch from inside Work can be detected.
type Work func(ctx context.Context) error

// WorkOf is the value-returning form of Work used by synchronous dispatch.
type WorkOf[T any] func(ctx context.Context) (T, error)
