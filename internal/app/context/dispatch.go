package appctx

import (
	"context"
	"fmt"

	"github.com/jsamuelsen11/commit-coordinator/internal/domain"
	"github.com/jsamuelsen11/commit-coordinator/internal/ports"
)

// RunSync executes work on pc's owner and returns its result.
//
// For Confinement, work runs inline on the calling goroutine. For the
// serial affinities, work is submitted to the owner and the caller blocks
// until it has run. Once submitted, work runs to completion; the wait does
// not observe ctx cancellation.
//
// A panic in work is returned as an error wrapping domain.ErrWorkPanicked.
// If ctx was handed out by the owner itself (the caller is already running
// as work on it), RunSync returns domain.ErrReentrantWait without running
// work: waiting on the owner from the owner would never finish.
func RunSync[T any](ctx context.Context, pc *PersistenceContext, work domain.WorkOf[T]) (T, error) {
	switch pc.affinity {
	case domain.AffinityConfinement:
		return call(ctx, work)
	case domain.AffinityPrivateSerial, domain.AffinityMainSerial:
		return runOnOwnerAndWait(ctx, pc.owner, work)
	default:
		var zero T
		return zero, fmt.Errorf("appctx: context %q: invalid affinity %s", pc.name, pc.affinity)
	}
}

// RunAsync executes work on pc's owner without waiting for it.
//
// For Confinement, work runs inline and done is invoked before RunAsync
// returns. For the serial affinities, work and then done run later on the
// owner, after all work previously submitted to it. If the owner rejects
// the submission, done receives the error on the calling goroutine.
// done may be nil.
func RunAsync(ctx context.Context, pc *PersistenceContext, work domain.Work, done func(error)) {
	if done == nil {
		done = func(error) {}
	}

	switch pc.affinity {
	case domain.AffinityConfinement:
		done(callWork(ctx, work))
	case domain.AffinityPrivateSerial, domain.AffinityMainSerial:
		err := pc.owner.Submit(ctx, func(ctx context.Context) {
			done(callWork(ctx, work))
		})
		if err != nil {
			done(err)
		}
	default:
		done(fmt.Errorf("appctx: context %q: invalid affinity %s", pc.name, pc.affinity))
	}
}

type outcome[T any] struct {
	val T
	err error
}

func runOnOwnerAndWait[T any](ctx context.Context, owner ports.Executor, work domain.WorkOf[T]) (T, error) {
	var zero T
	if owner.Owns(ctx) {
		return zero, fmt.Errorf("executor %s: %w", owner.Name(), domain.ErrReentrantWait)
	}

	ch := make(chan outcome[T], 1)
	err := owner.Submit(ctx, func(ctx context.Context) {
		v, err := call(ctx, work)
		ch <- outcome[T]{val: v, err: err}
	})
	if err != nil {
		return zero, err
	}

	o := <-ch
	return o.val, o.err
}

// call runs work, converting a panic into an error.
func call[T any](ctx context.Context, work domain.WorkOf[T]) (val T, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%w: %v", domain.ErrWorkPanicked, v)
		}
	}()
	return work(ctx)
}

func callWork(ctx context.Context, work domain.Work) error {
	_, err := call(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, work(ctx)
	})
	return err
}
