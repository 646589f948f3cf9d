package appctx

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/commit-coordinator/internal/platform/group"
	"github.com/jsamuelsen11/commit-coordinator/internal/platform/telemetry"
	"github.com/jsamuelsen11/commit-coordinator/internal/ports"
)

// CommitOrRollbackCoalesced schedules a commit-or-rollback of pc that is
// shared with every other caller using the same group g.
//
// If pc already has maxChangedObjects or more pending changes, coalescing
// is bypassed and CommitOrRollback runs synchronously on the calling
// goroutine. A non-positive maxChangedObjects selects the coordinator
// default (DefaultMaxChangedObjects unless configured).
//
// Otherwise a notification is registered on g and runs on the background
// execution context once g has no outstanding entries. The notification
// enters g, so the round stays open while the commit runs, and submits to
// pc's owner a unit of work that commits only if pc still has pending
// changes, rolling back on failure. Many callers within one round
// therefore produce a single commit; the others find the context clean.
//
// Errors are never returned. Every failure is passed to onError, which
// may be nil and may run on any goroutine.
func (c *Coordinator) CommitOrRollbackCoalesced(
	ctx context.Context,
	pc *PersistenceContext,
	g *group.Group,
	maxChangedObjects int,
	onError func(error),
) {
	if maxChangedObjects <= 0 {
		maxChangedObjects = c.maxChanged
	}

	report := func(err error) {
		if onError != nil {
			onError(err)
		}
	}

	if pending := pc.PendingChangeCount(); pending >= maxChangedObjects {
		c.stats.Update(func(s *ports.CommitStats) { s.Overflows++ })
		c.recordCoalesce(ctx, pc, telemetry.PathOverflow)
		c.logger.DebugContext(ctx, "pending changes over threshold, committing immediately",
			slog.String("context", pc.name),
			slog.Int("pending_changes", pending),
			slog.Int("max_changed_objects", maxChangedObjects),
		)
		if err := c.CommitOrRollback(ctx, pc); err != nil {
			report(err)
		}
		return
	}

	c.stats.Update(func(s *ports.CommitStats) { s.CoalescedRequests++ })
	c.recordCoalesce(ctx, pc, telemetry.PathCoalesced)
	c.inflight.Enter()

	round, err := g.Notify(ctx, c.background, func(ctx context.Context) {
		g.Enter()
		c.stats.Update(func(s *ports.CommitStats) { s.Rounds++ })

		id := uuid.New()
		RunAsync(ctx, pc, func(ctx context.Context) error {
			return c.commitOrRollbackOnOwner(ctx, pc, id)
		}, func(err error) {
			defer c.inflight.Leave()
			defer g.Leave()
			if err != nil {
				report(err)
			}
		})
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "scheduling coalesced commit failed",
			slog.String("operation", "Coordinator.CommitOrRollbackCoalesced"),
			slog.String("context", pc.name),
			slog.Any("error", err),
		)
		c.inflight.Leave()
		report(err)
		return
	}

	c.logger.DebugContext(ctx, "coalesced commit scheduled",
		slog.String("context", pc.name),
		slog.String("round", round.String()),
	)
}

// Drain waits until every coalesced commit scheduled before the call has
// run on its owner, or until ctx is done.
func (c *Coordinator) Drain(ctx context.Context) error {
	return c.inflight.Wait(ctx)
}

func (c *Coordinator) recordCoalesce(ctx context.Context, pc *PersistenceContext, path string) {
	if c.metrics == nil {
		return
	}
	c.metrics.CoalesceRequestTotal.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrContext.String(pc.name),
		telemetry.AttrCoalescePath.String(path),
	))
}
