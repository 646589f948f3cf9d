// Package serial provides serial execution contexts: FIFO work queues, each
// drained by a single dedicated goroutine. A Queue is the owner of every
// persistence context bound to it; work submitted to the same Queue never
// runs concurrently and runs in submission order.
//
// Construction and shutdown:
//
//	q := serial.New("main", logger)
//	defer q.Close(ctx)
//
// Work receives a context that Owns recognizes, which lets the dispatcher
// detect a synchronous wait issued from the queue's own goroutine:
//
//	_ = q.Submit(ctx, func(ctx context.Context) {
//	    q.Owns(ctx) // true
//	})
package serial

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/jsamuelsen11/commit-coordinator/internal/domain"
	"github.com/jsamuelsen11/commit-coordinator/internal/ports"
)

// Compile-time interface check.
var _ ports.Executor = (*Queue)(nil)

// ownerKey is the context key under which a Queue marks the contexts it
// hands to work.
type ownerKey struct{}

type task struct {
	ctx  context.Context
	work func(ctx context.Context)
}

// Queue is an unbounded FIFO serial execution context. Submit never blocks;
// a single goroutine started by New runs queued work one item at a time.
type Queue struct {
	name   string
	logger *slog.Logger

	mu      sync.Mutex
	pending []task
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// New creates a Queue and starts its worker goroutine. If logger is nil,
// a discard logger is used.
func New(name string, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	q := &Queue{
		name:   name,
		logger: logger.With(slog.String("queue", name)),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go q.loop()
	return q
}

// Name returns the queue name.
func (q *Queue) Name() string {
	return q.name
}

// Submit enqueues work. The context passed to work keeps the values of ctx
// (logger, trace span) but is detached from its cancellation: queued work
// always runs to completion.
//
// Returns domain.ErrExecutorClosed once Close has been called.
func (q *Queue) Submit(ctx context.Context, work func(ctx context.Context)) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return fmt.Errorf("queue %s: %w", q.name, domain.ErrExecutorClosed)
	}
	q.pending = append(q.pending, task{
		ctx:  context.WithValue(context.WithoutCancel(ctx), ownerKey{}, q),
		work: work,
	})
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return nil
}

// Owns reports whether ctx was handed to work by this queue.
func (q *Queue) Owns(ctx context.Context) bool {
	owner, ok := ctx.Value(ownerKey{}).(*Queue)
	return ok && owner == q
}

// Len returns the number of queued work items not yet started.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// HealthCheck submits a no-op and waits for it to run. It fails when the
// queue is closed or when ctx is done first, which means the worker is
// stuck or too far behind.
func (q *Queue) HealthCheck(ctx context.Context) error {
	ran := make(chan struct{})
	if err := q.Submit(ctx, func(context.Context) { close(ran) }); err != nil {
		return err
	}
	select {
	case <-ran:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("queue %s: %d tasks behind: %w", q.name, q.Len(), ctx.Err())
	}
}

// Close stops accepting work and waits until everything already queued has
// run, or until ctx is done. Close is idempotent.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("closing queue %s: %w", q.name, ctx.Err())
	}
}

func (q *Queue) loop() {
	defer close(q.done)

	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			closed := q.closed
			q.mu.Unlock()
			if closed {
				return
			}
			<-q.wake
			continue
		}
		t := q.pending[0]
		q.pending[0] = task{}
		q.pending = q.pending[1:]
		q.mu.Unlock()

		q.run(t)
	}
}

// run executes one task. A panic is logged and swallowed so that the queue
// keeps serving later work; callers that need the panic as an error wrap
// their work (the dispatcher does).
func (q *Queue) run(t task) {
	defer func() {
		if v := recover(); v != nil {
			q.logger.ErrorContext(t.ctx, "panic recovered in queued work",
				slog.String("operation", "Queue.run"),
				slog.String("panic", fmt.Sprint(v)),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	t.work(t.ctx)
}
