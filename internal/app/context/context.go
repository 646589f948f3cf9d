// Package appctx binds object graphs to their owning execution context and
// coordinates their commits.
//
// A PersistenceContext pairs a ports.Store with an execution affinity. All
// mutation and every commit or rollback of the store happen on the owner:
// the calling goroutine for Confinement, or a serial execution context for
// PrivateSerial and MainSerial.
//
//	pc, err := appctx.New("orders", domain.AffinityPrivateSerial, graph, serial.New("orders", logger))
//
//	// Mutate on the owner.
//	err = pc.PerformAndWait(ctx, func(ctx context.Context) error {
//	    return graph.Put(ctx, "order:1", data)
//	})
//
//	// Commit, coalescing with other callers sharing g.
//	coord.CommitOrRollbackCoalesced(ctx, pc, g, 0, func(err error) { ... })
//
// The Coordinator implements the commit operations; RunSync and RunAsync
// implement affinity dispatch and are usable for any work.
package appctx

import (
	"context"
	"errors"
	"fmt"

	"github.com/jsamuelsen11/commit-coordinator/internal/domain"
	"github.com/jsamuelsen11/commit-coordinator/internal/ports"
)

// ErrNilStore is returned by New when no store is given.
var ErrNilStore = errors.New("appctx: nil store")

// ErrOwnerMismatch is returned by New when the owner does not fit the
// affinity: serial affinities need an owner, Confinement must not have one.
var ErrOwnerMismatch = errors.New("appctx: owner does not match affinity")

// PersistenceContext is an object graph bound to an execution affinity.
// It is created by application wiring and is safe to share between
// goroutines; the store itself is only touched on the owner.
type PersistenceContext struct {
	name     string
	affinity domain.Affinity
	store    ports.Store
	owner    ports.Executor
}

// New creates a PersistenceContext. owner must be nil for
// AffinityConfinement and non-nil for the serial affinities.
func New(name string, affinity domain.Affinity, store ports.Store, owner ports.Executor) (*PersistenceContext, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if !affinity.IsValid() {
		return nil, fmt.Errorf("appctx: context %q: invalid affinity %s", name, affinity)
	}
	if affinity.IsSerial() != (owner != nil) {
		return nil, fmt.Errorf("%w: context %q has affinity %s", ErrOwnerMismatch, name, affinity)
	}
	return &PersistenceContext{
		name:     name,
		affinity: affinity,
		store:    store,
		owner:    owner,
	}, nil
}

// Name returns the context name used in logs, spans, and results.
func (pc *PersistenceContext) Name() string { return pc.name }

// Affinity returns the execution affinity.
func (pc *PersistenceContext) Affinity() domain.Affinity { return pc.affinity }

// Store returns the underlying store. Callers must only mutate it on the
// owner, via Perform or PerformAndWait.
func (pc *PersistenceContext) Store() ports.Store { return pc.store }

// Owner returns the owning execution context, or nil for Confinement.
func (pc *PersistenceContext) Owner() ports.Executor { return pc.owner }

// PendingChangeCount returns the store's current pending change count.
// Safe to call from any goroutine.
func (pc *PersistenceContext) PendingChangeCount() int {
	return pc.store.PendingChangeCount()
}

// Perform runs work on the owner without waiting. done, if non-nil,
// receives the work's error; see RunAsync.
func (pc *PersistenceContext) Perform(ctx context.Context, work domain.Work, done func(error)) {
	RunAsync(ctx, pc, work, done)
}

// PerformAndWait runs work on the owner and waits for it; see RunSync.
func (pc *PersistenceContext) PerformAndWait(ctx context.Context, work domain.Work) error {
	_, err := RunSync(ctx, pc, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, work(ctx)
	})
	return err
}
