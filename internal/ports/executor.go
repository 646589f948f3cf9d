package ports

import "context"

// Executor is a serial execution context: submitted work runs one item at a
// time, in submission order, never concurrently with itself.
type Executor interface {
	// Name identifies the execution context in logs and metrics.
	Name() string

	// Submit enqueues work without blocking. The context handed to work
	// carries the values of ctx but not its cancellation, and is
	// recognized by Owns. Returns domain.ErrExecutorClosed after Close.
	Submit(ctx context.Context, work func(ctx context.Context)) error

	// Owns reports whether ctx was handed out by this executor, i.e. the
	// caller is running as work on it.
	Owns(ctx context.Context) bool
}
