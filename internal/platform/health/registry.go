// Package health provides a thread-safe health check registry for the
// components the service depends on: the object store, its circuit breaker,
// and the serial execution contexts that own persistence contexts. The
// registry is used by the readiness endpoint to decide whether the service
// can accept traffic.
package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen11/commit-coordinator/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.HealthRegistry = (*Registry)(nil)
	_ ports.HealthChecker  = CheckFunc{}
)

// Registry is a thread-safe implementation of [ports.HealthRegistry].
// Checks run concurrently on each readiness request, each bounded by the
// registry's per-check timeout.
type Registry struct {
	timeout time.Duration

	mu       sync.RWMutex
	checkers []ports.HealthChecker
}

// Option configures a Registry.
type Option func(*Registry)

// WithCheckTimeout bounds every individual health check. Zero disables the
// bound, leaving only the caller's context deadline.
func WithCheckTimeout(d time.Duration) Option {
	return func(r *Registry) {
		r.timeout = d
	}
}

// New creates an empty health check registry.
func New(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a health checker to the registry. Safe for concurrent use.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers = append(r.checkers, checker)
}

// CheckAll executes all registered health checks concurrently and returns
// results keyed by checker name. Nil values indicate healthy components.
// When two checkers share a name, the one registered last wins.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := make([]ports.HealthChecker, len(r.checkers))
	copy(checkers, r.checkers)
	r.mu.RUnlock()

	errs := make([]error, len(checkers))
	var g errgroup.Group
	for i, c := range checkers {
		g.Go(func() error {
			errs[i] = r.check(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	results := make(map[string]error, len(checkers))
	for i, c := range checkers {
		results[c.Name()] = errs[i]
	}
	return results
}

func (r *Registry) check(ctx context.Context, c ports.HealthChecker) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return c.HealthCheck(ctx)
}

// CheckFunc adapts a function to [ports.HealthChecker].
type CheckFunc struct {
	CheckName string
	Fn        func(ctx context.Context) error
}

// Name returns CheckName.
func (f CheckFunc) Name() string { return f.CheckName }

// HealthCheck calls Fn.
func (f CheckFunc) HealthCheck(ctx context.Context) error { return f.Fn(ctx) }
