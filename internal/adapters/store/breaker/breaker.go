// Package breaker decorates an object graph with a circuit breaker around
// its commit primitive. After repeated commit failures the breaker opens
// and commits fail fast with domain.ErrUnavailable until the breaker's
// timeout elapses; the coordinator then rolls the pending changes back as
// for any other commit failure.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/sony/gobreaker/v2"

	"github.com/jsamuelsen11/commit-coordinator/internal/domain"
	"github.com/jsamuelsen11/commit-coordinator/internal/platform/config"
	"github.com/jsamuelsen11/commit-coordinator/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.ObjectGraph   = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// Store wraps a ports.ObjectGraph. Every method except Commit is passed
// through unchanged.
type Store struct {
	ports.ObjectGraph

	name    string
	breaker *gobreaker.CircuitBreaker[struct{}]
}

// New wraps graph with a circuit breaker configured from cfg.
func New(graph ports.ObjectGraph, name string, cfg config.CircuitBreakerConfig, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: toUint32(cfg.HalfOpenLimit),
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("store circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &Store{
		ObjectGraph: graph,
		name:        name,
		breaker:     cb,
	}
}

// Commit runs the wrapped store's Commit through the circuit breaker.
// Errors from the wrapped store are returned unchanged; a rejected call
// returns an error matching domain.ErrUnavailable.
func (s *Store) Commit(ctx context.Context) error {
	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, s.ObjectGraph.Commit(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("store %s: %w: %w", s.name, domain.ErrUnavailable, err)
	}
	return err
}

// Name returns the breaker name, used as the health check key.
func (s *Store) Name() string {
	return s.name
}

// HealthCheck reports the breaker state: closed is healthy, half-open is
// degraded, open is failing.
func (s *Store) HealthCheck(_ context.Context) error {
	state := s.breaker.State()
	switch state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", s.name)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", s.name)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", s.name, state)
	}
}

func toUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	if n > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(n)
}
