package breaker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/commit-coordinator/internal/adapters/store/breaker"
	"github.com/jsamuelsen11/commit-coordinator/internal/adapters/store/memory"
	"github.com/jsamuelsen11/commit-coordinator/internal/domain"
	"github.com/jsamuelsen11/commit-coordinator/internal/platform/config"
)

var errRejected = errors.New("rejected")

func newFailingStore(t *testing.T, fail *bool) *breaker.Store {
	t.Helper()
	graph := memory.New("test", memory.WithValidator(func(string, []byte) error {
		if *fail {
			return errRejected
		}
		return nil
	}))
	return breaker.New(graph, "objects", config.CircuitBreakerConfig{
		Enabled:       true,
		MaxFailures:   2,
		Timeout:       time.Hour,
		HalfOpenLimit: 1,
	}, nil)
}

func TestStore_PassesThroughSuccess(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fail := false
	s := newFailingStore(t, &fail)

	require.NoError(t, s.Put(ctx, "a", []byte("1")))
	assert.Equal(t, 1, s.PendingChangeCount())
	require.NoError(t, s.Commit(ctx))
	assert.False(t, s.HasPendingChanges())
	require.NoError(t, s.HealthCheck(ctx))
	assert.Equal(t, "objects", s.Name())
}

func TestStore_OpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fail := true
	s := newFailingStore(t, &fail)
	require.NoError(t, s.Put(ctx, "a", []byte("1")))

	for range 2 {
		err := s.Commit(ctx)
		require.ErrorIs(t, err, domain.ErrCommitFailed, "store errors pass through unchanged")
		require.ErrorIs(t, err, errRejected)
	}
	require.ErrorContains(t, s.HealthCheck(ctx), "circuit breaker open")

	fail = false
	err := s.Commit(ctx)
	require.ErrorIs(t, err, domain.ErrUnavailable)
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 1, s.PendingChangeCount(), "rejected commit leaves changes pending")

	require.Error(t, s.HealthCheck(ctx))
}
