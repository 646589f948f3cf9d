package health_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/commit-coordinator/internal/platform/health"
	"github.com/jsamuelsen11/commit-coordinator/mocks"
)

func TestCheckAll_Empty(t *testing.T) {
	t.Parallel()

	results := health.New().CheckAll(context.Background())

	if results == nil {
		t.Fatal("expected non-nil map, got nil")
	}
	if len(results) != 0 {
		t.Errorf("expected empty map, got %d entries", len(results))
	}
}

func TestCheckAll_MixedHealth(t *testing.T) {
	t.Parallel()

	healthy := mocks.NewMockHealthChecker(t)
	healthy.EXPECT().Name().Return("store")
	healthy.EXPECT().HealthCheck(mock.Anything).Return(nil)

	breakerErr := errors.New("objects: failing (circuit breaker open)")
	unhealthy := mocks.NewMockHealthChecker(t)
	unhealthy.EXPECT().Name().Return("objects")
	unhealthy.EXPECT().HealthCheck(mock.Anything).Return(breakerErr)

	r := health.New()
	r.Register(healthy)
	r.Register(unhealthy)

	results := r.CheckAll(context.Background())

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results["store"] != nil {
		t.Errorf("store check = %v, want nil", results["store"])
	}
	if !errors.Is(results["objects"], breakerErr) {
		t.Errorf("objects check = %v, want %v", results["objects"], breakerErr)
	}
}

func TestCheckAll_ContextPropagated(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	checker := mocks.NewMockHealthChecker(t)
	checker.EXPECT().Name().Return("store")
	checker.EXPECT().HealthCheck(mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() != nil
	})).Return(context.Canceled)

	r := health.New()
	r.Register(checker)

	if err := r.CheckAll(ctx)["store"]; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCheckAll_PerCheckTimeout(t *testing.T) {
	t.Parallel()

	r := health.New(health.WithCheckTimeout(10 * time.Millisecond))
	r.Register(health.CheckFunc{CheckName: "slow", Fn: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}})
	r.Register(health.CheckFunc{CheckName: "fast", Fn: func(context.Context) error { return nil }})

	results := r.CheckAll(context.Background())

	if !errors.Is(results["slow"], context.DeadlineExceeded) {
		t.Errorf("slow check = %v, want deadline exceeded", results["slow"])
	}
	if results["fast"] != nil {
		t.Errorf("fast check = %v, want nil", results["fast"])
	}
}

func TestCheckAll_DuplicateNames_LastWriteWins(t *testing.T) {
	t.Parallel()

	secondErr := errors.New("second failure")

	r := health.New()
	r.Register(health.CheckFunc{CheckName: "queue", Fn: func(context.Context) error { return nil }})
	r.Register(health.CheckFunc{CheckName: "queue", Fn: func(context.Context) error { return secondErr }})

	results := r.CheckAll(context.Background())

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !errors.Is(results["queue"], secondErr) {
		t.Errorf("queue check = %v, want %v (from last registered checker)", results["queue"], secondErr)
	}
}

func TestCheckAll_ConcurrentSafety(t *testing.T) {
	t.Parallel()

	r := health.New()

	var wg sync.WaitGroup
	for i := range 50 {
		if i%2 == 0 {
			wg.Go(func() {
				r.Register(health.CheckFunc{CheckName: "checker", Fn: func(context.Context) error { return nil }})
			})
		} else {
			wg.Go(func() {
				r.CheckAll(context.Background())
			})
		}
	}
	wg.Wait()
}
