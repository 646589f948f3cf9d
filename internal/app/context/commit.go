package appctx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen11/commit-coordinator/internal/domain"
	"github.com/jsamuelsen11/commit-coordinator/internal/platform/group"
	"github.com/jsamuelsen11/commit-coordinator/internal/platform/telemetry"
	"github.com/jsamuelsen11/commit-coordinator/internal/ports"
)

// DefaultMaxChangedObjects is the pending change count at which
// CommitOrRollbackCoalesced stops coalescing and commits immediately.
const DefaultMaxChangedObjects = 100

const defaultFlushConcurrency = 4

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithMaxChangedObjects sets the default coalescing threshold used when
// CommitOrRollbackCoalesced is called with a non-positive threshold.
func WithMaxChangedObjects(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.maxChanged = n
		}
	}
}

// WithFlushConcurrency bounds how many contexts FlushAll commits at once.
func WithFlushConcurrency(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.flushConcurrency = n
		}
	}
}

// WithMetrics enables metric recording.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}

// Coordinator implements the commit operations for persistence contexts.
// It holds no per-context state and may serve any number of contexts
// concurrently. All store access goes through affinity dispatch, so the
// coordinator itself takes no locks around stores.
type Coordinator struct {
	background       ports.Executor
	maxChanged       int
	flushConcurrency int
	logger           *slog.Logger
	metrics          *telemetry.Metrics
	stats            *SafeRef[ports.CommitStats]

	// inflight counts coalesced requests whose owner-side work has not
	// finished yet.
	inflight *group.Group
}

// NewCoordinator creates a Coordinator. background is the shared execution
// context on which coalescing group notifications run. If logger is nil,
// a discard logger is used.
func NewCoordinator(background ports.Executor, logger *slog.Logger, opts ...Option) *Coordinator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Coordinator{
		background:       background,
		maxChanged:       DefaultMaxChangedObjects,
		flushConcurrency: defaultFlushConcurrency,
		logger:           logger,
		stats:            NewRef(ports.CommitStats{}),
		inflight:         group.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxChangedObjects returns the default coalescing threshold.
func (c *Coordinator) MaxChangedObjects() int {
	return c.maxChanged
}

// Stats returns a snapshot of the coordinator counters.
func (c *Coordinator) Stats() ports.CommitStats {
	return c.stats.Get()
}

// CommitAndWait commits pc's pending changes on its owner and waits for
// the outcome. A context without pending changes succeeds without calling
// the store. A store error is returned as-is.
func (c *Coordinator) CommitAndWait(ctx context.Context, pc *PersistenceContext) error {
	id := uuid.New()
	_, err := RunSync(ctx, pc, func(ctx context.Context) (bool, error) {
		return c.commitOnOwner(ctx, pc, id)
	})
	return err
}

// Commit is the asynchronous form of CommitAndWait. It never fails
// synchronously: the outcome is delivered to completion, on the owner (or
// inline, before Commit returns, for Confinement). With a nil completion,
// failures are dropped; callers that need errors must pass a completion.
func (c *Coordinator) Commit(ctx context.Context, pc *PersistenceContext, completion func(domain.CommitResult)) {
	id := uuid.New()
	var committed bool

	RunAsync(ctx, pc, func(ctx context.Context) error {
		var err error
		committed, err = c.commitOnOwner(ctx, pc, id)
		return err
	}, func(err error) {
		if completion == nil {
			if err != nil {
				c.logger.DebugContext(ctx, "commit failure dropped, no completion supplied",
					slog.String("operation", "Coordinator.Commit"),
					slog.String("context", pc.name),
					slog.String("attempt", id.String()),
					slog.Any("error", err),
				)
			}
			return
		}
		if err != nil {
			completion(domain.Failed(id, pc.name, err))
			return
		}
		completion(domain.Succeeded(id, pc.name, committed))
	})
}

// CommitAsync is Commit with the outcome delivered on a channel. The
// channel is buffered and receives exactly one result.
func (c *Coordinator) CommitAsync(ctx context.Context, pc *PersistenceContext) <-chan domain.CommitResult {
	ch := make(chan domain.CommitResult, 1)
	c.Commit(ctx, pc, func(r domain.CommitResult) {
		ch <- r
	})
	return ch
}

// CommitOrRollback commits like CommitAndWait and, if the commit fails,
// rolls the store back once and returns the commit error. Commit and
// rollback run in the same unit of work on the owner.
//
// If the rollback also fails, the returned error is a *domain.RollbackError
// matching domain.ErrRollbackFailed and the commit error.
//
// Rollback is only attempted once the work reaches the owner. If it never
// does, because the caller is already waiting on that owner
// (domain.ErrReentrantWait) or the owner is closed
// (domain.ErrExecutorClosed), that error is returned and pending changes
// are left untouched.
func (c *Coordinator) CommitOrRollback(ctx context.Context, pc *PersistenceContext) error {
	id := uuid.New()
	_, err := RunSync(ctx, pc, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.commitOrRollbackOnOwner(ctx, pc, id)
	})
	return err
}

// FlushAll runs CommitOrRollback on every context, at most the configured
// flush concurrency at a time, and returns all failures joined.
func (c *Coordinator) FlushAll(ctx context.Context, contexts ...*PersistenceContext) error {
	errs := make([]error, len(contexts))

	var g errgroup.Group
	g.SetLimit(c.flushConcurrency)
	for i, pc := range contexts {
		g.Go(func() error {
			if err := c.CommitOrRollback(ctx, pc); err != nil {
				errs[i] = fmt.Errorf("flushing %s: %w", pc.name, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// commitOrRollbackOnOwner must run on pc's owner.
func (c *Coordinator) commitOrRollbackOnOwner(ctx context.Context, pc *PersistenceContext, id uuid.UUID) error {
	_, err := c.commitOnOwner(ctx, pc, id)
	if err == nil {
		return nil
	}
	return c.rollbackOnOwner(ctx, pc, id, err)
}

// commitOnOwner is the shared commit flow. It must run on pc's owner.
// committed is false for a no-op.
func (c *Coordinator) commitOnOwner(ctx context.Context, pc *PersistenceContext, id uuid.UUID) (committed bool, err error) {
	if !pc.store.HasPendingChanges() {
		c.stats.Update(func(s *ports.CommitStats) { s.NoOps++ })
		c.recordCommit(ctx, pc, telemetry.ResultNoOp, 0)
		return false, nil
	}

	pending := pc.store.PendingChangeCount()
	ctx, span := otel.GetTracerProvider().Tracer("appctx").Start(ctx, "persistence.commit",
		trace.WithAttributes(
			telemetry.AttrContext.String(pc.name),
			telemetry.AttrAffinity.String(pc.affinity.String()),
			telemetry.AttrPendingCount.Int(pending),
			attribute.String("commit.attempt", id.String()),
		),
	)
	defer span.End()

	start := time.Now()
	_, err = call(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, pc.store.Commit(ctx)
	})
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.stats.Update(func(s *ports.CommitStats) { s.Failures++ })
		c.recordCommit(ctx, pc, telemetry.ResultFailure, elapsed)
		c.logger.ErrorContext(ctx, "commit failed",
			slog.String("operation", "Coordinator.commit"),
			slog.String("context", pc.name),
			slog.String("attempt", id.String()),
			slog.Int("pending_changes", pending),
			slog.Any("error", err),
		)
		return false, err
	}

	c.stats.Update(func(s *ports.CommitStats) { s.Commits++ })
	c.recordCommit(ctx, pc, telemetry.ResultSuccess, elapsed)
	c.logger.DebugContext(ctx, "committed",
		slog.String("context", pc.name),
		slog.String("attempt", id.String()),
		slog.Int("pending_changes", pending),
		slog.Duration("duration", elapsed),
	)
	return true, nil
}

// rollbackOnOwner must run on pc's owner.
func (c *Coordinator) rollbackOnOwner(ctx context.Context, pc *PersistenceContext, id uuid.UUID, commitErr error) error {
	_, rbErr := call(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, pc.store.Rollback(ctx)
	})
	if rbErr != nil {
		c.stats.Update(func(s *ports.CommitStats) { s.RollbackFailures++ })
		c.recordRollback(ctx, pc, telemetry.ResultFailure)
		c.logger.ErrorContext(ctx, "rollback failed, context may be inconsistent",
			slog.String("operation", "Coordinator.rollback"),
			slog.String("context", pc.name),
			slog.String("attempt", id.String()),
			slog.Any("commit_error", commitErr),
			slog.Any("error", rbErr),
		)
		return &domain.RollbackError{Commit: commitErr, Rollback: rbErr}
	}

	c.stats.Update(func(s *ports.CommitStats) { s.Rollbacks++ })
	c.recordRollback(ctx, pc, telemetry.ResultSuccess)
	c.logger.InfoContext(ctx, "rolled back after failed commit",
		slog.String("context", pc.name),
		slog.String("attempt", id.String()),
	)
	return commitErr
}

func (c *Coordinator) recordCommit(ctx context.Context, pc *PersistenceContext, result string, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(
		telemetry.AttrContext.String(pc.name),
		telemetry.AttrResult.String(result),
	)
	c.metrics.CommitTotal.Add(ctx, 1, attrs)
	if result != telemetry.ResultNoOp {
		c.metrics.CommitDuration.Record(ctx, elapsed.Seconds(), attrs)
	}
}

func (c *Coordinator) recordRollback(ctx context.Context, pc *PersistenceContext, result string) {
	if c.metrics == nil {
		return
	}
	c.metrics.RollbackTotal.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrContext.String(pc.name),
		telemetry.AttrResult.String(result),
	))
}
