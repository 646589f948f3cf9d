// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	appctx "github.com/jsamuelsen11/commit-coordinator/internal/app/context"
	"github.com/jsamuelsen11/commit-coordinator/internal/domain"
	"github.com/jsamuelsen11/commit-coordinator/internal/platform/group"
	"github.com/jsamuelsen11/commit-coordinator/internal/ports"
)

// Compile-time check that ObjectService implements ports.ObjectService.
var _ ports.ObjectService = (*ObjectService)(nil)

// ErrNotObjectGraph is returned by NewObjectService when the persistence
// context's store does not expose object mutation.
var ErrNotObjectGraph = errors.New("store is not an object graph")

// ErrConfinedContext is returned by NewObjectService for a Confinement
// context. The service is called from many goroutines at once, and only a
// serial owner orders their mutations and commits.
var ErrConfinedContext = errors.New("object service requires a serial persistence context")

// ObjectService implements ports.ObjectService on top of one persistence
// context. Mutations run on the context's owner and are followed by a
// coalesced commit, so a burst of writes from many requests results in a
// handful of commits rather than one per request.
type ObjectService struct {
	pc     *appctx.PersistenceContext
	graph  ports.ObjectGraph
	coord  *appctx.Coordinator
	group  *group.Group
	logger *slog.Logger
}

// NewObjectService creates an ObjectService. If logger is nil, a discard
// logger is used.
func NewObjectService(pc *appctx.PersistenceContext, coord *appctx.Coordinator, logger *slog.Logger) (*ObjectService, error) {
	graph, ok := pc.Store().(ports.ObjectGraph)
	if !ok {
		return nil, fmt.Errorf("context %s: %w", pc.Name(), ErrNotObjectGraph)
	}
	if !pc.Affinity().IsSerial() {
		return nil, fmt.Errorf("context %s: %w", pc.Name(), ErrConfinedContext)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ObjectService{
		pc:     pc,
		graph:  graph,
		coord:  coord,
		group:  group.New(),
		logger: logger,
	}, nil
}

// Context returns the persistence context the service writes to.
func (s *ObjectService) Context() *appctx.PersistenceContext {
	return s.pc
}

// Put stores data under key and schedules a coalesced commit.
func (s *ObjectService) Put(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return &domain.ValidationError{Fields: map[string]string{"key": "must not be empty"}}
	}

	err := s.pc.PerformAndWait(ctx, func(ctx context.Context) error {
		return s.graph.Put(ctx, key, data)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to put object",
			slog.String("operation", "Put"),
			slog.String("key", key),
			slog.Any("error", err),
		)
		return err
	}

	s.scheduleCommit(ctx)
	return nil
}

// Delete removes key and schedules a coalesced commit.
func (s *ObjectService) Delete(ctx context.Context, key string) error {
	err := s.pc.PerformAndWait(ctx, func(ctx context.Context) error {
		return s.graph.Delete(ctx, key)
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.ErrorContext(ctx, "failed to delete object",
				slog.String("operation", "Delete"),
				slog.String("key", key),
				slog.Any("error", err),
			)
		}
		return err
	}

	s.scheduleCommit(ctx)
	return nil
}

// Get returns the object under key as currently seen on the owner.
func (s *ObjectService) Get(ctx context.Context, key string) ([]byte, error) {
	return appctx.RunSync(ctx, s.pc, func(ctx context.Context) ([]byte, error) {
		return s.graph.Get(ctx, key)
	})
}

// Commit forces a commit-or-rollback of everything pending.
func (s *ObjectService) Commit(ctx context.Context) error {
	s.logger.InfoContext(ctx, "explicit commit requested",
		slog.String("context", s.pc.Name()),
		slog.Int("pending_changes", s.pc.PendingChangeCount()),
	)
	return s.coord.CommitOrRollback(ctx, s.pc)
}

// Flush waits until every coalesced commit scheduled so far has run.
func (s *ObjectService) Flush(ctx context.Context) error {
	return s.coord.Drain(ctx)
}

// Stats returns coordinator counters and the current pending change count.
func (s *ObjectService) Stats(_ context.Context) (ports.CommitStats, int) {
	return s.coord.Stats(), s.pc.PendingChangeCount()
}

func (s *ObjectService) scheduleCommit(ctx context.Context) {
	s.coord.CommitOrRollbackCoalesced(ctx, s.pc, s.group, 0, func(err error) {
		s.logger.ErrorContext(ctx, "coalesced commit failed, changes rolled back",
			slog.String("operation", "scheduleCommit"),
			slog.String("context", s.pc.Name()),
			slog.Any("error", err),
		)
	})
}
