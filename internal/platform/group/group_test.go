package group_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jsamuelsen11/commit-coordinator/internal/domain"
	"github.com/jsamuelsen11/commit-coordinator/internal/platform/group"
	"github.com/jsamuelsen11/commit-coordinator/internal/platform/serial"
)

func newQueue(t *testing.T) *serial.Queue {
	t.Helper()
	q := serial.New("notify", nil)
	t.Cleanup(func() { _ = q.Close(context.Background()) })
	return q
}

// --- Notify tests ---

func TestNotify_IdleGroupFiresImmediately(t *testing.T) {
	t.Parallel()

	g := group.New()
	q := newQueue(t)
	fired := make(chan struct{})

	if _, err := g.Notify(context.Background(), q, func(context.Context) { close(fired) }); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("notification did not fire on an idle group")
	}
}

func TestNotify_DeferredUntilLastLeave(t *testing.T) {
	t.Parallel()

	g := group.New()
	q := newQueue(t)
	var fired atomic.Int32

	g.Enter()
	g.Enter()
	for range 3 {
		_, _ = g.Notify(context.Background(), q, func(context.Context) { fired.Add(1) })
	}

	g.Leave()
	_ = q.Close(context.Background())
	if fired.Load() != 0 {
		t.Fatalf("fired %d notifications with one entry outstanding, want 0", fired.Load())
	}

	q2 := newQueue(t)
	done := make(chan struct{})
	_, _ = g.Notify(context.Background(), q2, func(context.Context) { close(done) })
	g.Leave()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("notification did not fire after the last Leave")
	}
	// The first three were registered against a closed queue and fall back
	// to their own goroutines.
	deadline := time.Now().Add(5 * time.Second)
	for fired.Load() != 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if fired.Load() != 3 {
		t.Fatalf("fired %d deferred notifications, want 3", fired.Load())
	}
}

func TestNotify_ClosedExecutorWhenIdle(t *testing.T) {
	t.Parallel()

	g := group.New()
	q := serial.New("closed", nil)
	_ = q.Close(context.Background())

	_, err := g.Notify(context.Background(), q, func(context.Context) {})
	if !errors.Is(err, domain.ErrExecutorClosed) {
		t.Fatalf("Notify() = %v, want ErrExecutorClosed", err)
	}
}

func TestNotify_RoundChangesOnDrain(t *testing.T) {
	t.Parallel()

	g := group.New()
	q := newQueue(t)

	g.Enter()
	r1, _ := g.Notify(context.Background(), q, func(context.Context) {})
	r2, _ := g.Notify(context.Background(), q, func(context.Context) {})
	if r1 != r2 {
		t.Fatal("notifications in the same open round got different identifiers")
	}
	g.Leave()

	r3, err := g.Notify(context.Background(), q, func(context.Context) {})
	if err != nil {
		t.Fatalf("Notify() on idle group error = %v", err)
	}
	if r3 == r1 {
		t.Fatal("round identifier unchanged after drain")
	}
}

// --- Enter/Leave tests ---

func TestLeave_Unbalanced(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("Leave without Enter did not panic")
		}
	}()
	group.New().Leave()
}

func TestOutstanding(t *testing.T) {
	t.Parallel()

	g := group.New()
	var wg sync.WaitGroup
	for range 50 {
		wg.Go(g.Enter)
	}
	wg.Wait()

	if got := g.Outstanding(); got != 50 {
		t.Fatalf("Outstanding() = %d, want 50", got)
	}
	for range 50 {
		g.Leave()
	}
	if got := g.Outstanding(); got != 0 {
		t.Fatalf("Outstanding() = %d, want 0", got)
	}
}

// --- Wait tests ---

func TestWait_ReleasedAfterNotificationsSubmitted(t *testing.T) {
	t.Parallel()

	g := group.New()
	q := newQueue(t)
	var fired atomic.Bool

	g.Enter()
	_, _ = g.Notify(context.Background(), q, func(context.Context) { fired.Store(true) })

	waited := make(chan error, 1)
	go func() { waited <- g.Wait(context.Background()) }()

	g.Leave()
	if err := <-waited; err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	_ = q.Close(context.Background())
	if !fired.Load() {
		t.Fatal("notification did not run")
	}
}

func TestWait_IdleReturnsImmediately(t *testing.T) {
	t.Parallel()

	if err := group.New().Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
}

func TestWait_HonoursContext(t *testing.T) {
	t.Parallel()

	g := group.New()
	g.Enter()
	defer g.Leave()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := g.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Wait() = %v, want deadline exceeded", err)
	}
}
