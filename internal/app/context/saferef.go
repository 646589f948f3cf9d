package appctx

import "sync"

// SafeRef guards a value that is read and written from many goroutines,
// such as coordinator counters updated on every owner and read by the
// stats endpoint. Get copies the value out under a read lock; Update
// mutates it in place under the write lock.
type SafeRef[T any] struct {
	mu  sync.RWMutex
	val T
}

// NewRef returns a SafeRef holding val.
func NewRef[T any](val T) *SafeRef[T] {
	return &SafeRef[T]{val: val}
}

// Get returns a copy of the guarded value.
func (r *SafeRef[T]) Get() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.val
}

// Update calls fn with a pointer to the guarded value while holding the
// write lock. fn must not call back into r.
func (r *SafeRef[T]) Update(fn func(*T)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.val)
}
