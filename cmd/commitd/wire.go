package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/commit-coordinator/internal/adapters/http"
	"github.com/jsamuelsen11/commit-coordinator/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/commit-coordinator/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/commit-coordinator/internal/adapters/store/breaker"
	"github.com/jsamuelsen11/commit-coordinator/internal/adapters/store/memory"
	"github.com/jsamuelsen11/commit-coordinator/internal/adapters/store/sqlite"
	"github.com/jsamuelsen11/commit-coordinator/internal/app"
	appctx "github.com/jsamuelsen11/commit-coordinator/internal/app/context"
	"github.com/jsamuelsen11/commit-coordinator/internal/domain"
	"github.com/jsamuelsen11/commit-coordinator/internal/platform/config"
	"github.com/jsamuelsen11/commit-coordinator/internal/platform/health"
	"github.com/jsamuelsen11/commit-coordinator/internal/platform/serial"
	"github.com/jsamuelsen11/commit-coordinator/internal/platform/telemetry"
	"github.com/jsamuelsen11/commit-coordinator/internal/ports"
)

const (
	objectsContextName = "objects"
	healthCheckTimeout = 2 * time.Second
)

// executors owns the serial execution contexts of the process.
type executors struct {
	main       *serial.Queue
	background *serial.Queue
	// private is nil unless the store is bound to AffinityPrivateSerial.
	private *serial.Queue
}

func newExecutors(affinity domain.Affinity, logger *slog.Logger) *executors {
	e := &executors{
		main:       serial.New("main", logger),
		background: serial.New("background", logger),
	}
	if affinity == domain.AffinityPrivateSerial {
		e.private = serial.New(objectsContextName, logger)
	}
	return e
}

// owner returns the execution context for affinity, or nil for Confinement.
func (e *executors) owner(affinity domain.Affinity) ports.Executor {
	switch affinity {
	case domain.AffinityMainSerial:
		return e.main
	case domain.AffinityPrivateSerial:
		return e.private
	default:
		return nil
	}
}

func (e *executors) queues() []*serial.Queue {
	qs := []*serial.Queue{e.main, e.background}
	if e.private != nil {
		qs = append(qs, e.private)
	}
	return qs
}

// backlog reports the number of tasks queued on each execution context.
func (e *executors) backlog() map[string]int {
	qs := e.queues()
	out := make(map[string]int, len(qs))
	for _, q := range qs {
		out[q.Name()] = q.Len()
	}
	return out
}

// Close closes the owning queues before the background queue, so group
// notifications triggered by their last commits still have somewhere to run.
func (e *executors) Close(ctx context.Context) error {
	var errs []error
	if e.private != nil {
		errs = append(errs, e.private.Close(ctx))
	}
	errs = append(errs, e.main.Close(ctx), e.background.Close(ctx))
	return errors.Join(errs...)
}

// objectStore is the configured object graph plus the pieces of it that
// report health or need closing.
type objectStore struct {
	graph    ports.ObjectGraph
	checkers []ports.HealthChecker
	db       *sqlite.Store
}

func openStore(cfg config.StoreConfig, logger *slog.Logger) (*objectStore, error) {
	s := &objectStore{}

	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Path,
			sqlite.WithName(objectsContextName),
			sqlite.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store %s: %w", cfg.Path, err)
		}
		s.graph, s.db = db, db
		s.checkers = append(s.checkers, db)
	default:
		s.graph = memory.New(objectsContextName, memory.WithLogger(logger))
	}

	if cfg.CircuitBreaker.Enabled {
		b := breaker.New(s.graph, "breaker:"+objectsContextName, cfg.CircuitBreaker, logger)
		s.graph = b
		s.checkers = append(s.checkers, b)
	}
	return s, nil
}

// Close closes the database, if any.
func (s *objectStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func registerHealthCheckers(registry ports.HealthRegistry, execs *executors, store *objectStore) {
	for _, c := range store.checkers {
		registry.Register(c)
	}
	for _, q := range execs.queues() {
		registry.Register(health.CheckFunc{
			CheckName: "queue:" + q.Name(),
			Fn:        q.HealthCheck,
		})
	}
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(_ do.Injector) (*executors, error) {
		affinity, err := domain.ParseAffinity(cfg.Store.Affinity)
		if err != nil {
			return nil, err
		}
		return newExecutors(affinity, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (*objectStore, error) {
		return openStore(cfg.Store, logger)
	})

	do.Provide(injector, func(i do.Injector) (*appctx.Coordinator, error) {
		execs := do.MustInvoke[*executors](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return appctx.NewCoordinator(execs.background, logger,
			appctx.WithMaxChangedObjects(cfg.Coordinator.MaxChangedObjects),
			appctx.WithFlushConcurrency(cfg.Coordinator.FlushConcurrency),
			appctx.WithMetrics(metrics),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*appctx.PersistenceContext, error) {
		affinity, err := domain.ParseAffinity(cfg.Store.Affinity)
		if err != nil {
			return nil, err
		}
		execs := do.MustInvoke[*executors](i)
		store := do.MustInvoke[*objectStore](i)
		return appctx.New(objectsContextName, affinity, store.graph, execs.owner(affinity))
	})

	do.Provide(injector, func(i do.Injector) (*app.ObjectService, error) {
		pc := do.MustInvoke[*appctx.PersistenceContext](i)
		coord := do.MustInvoke[*appctx.Coordinator](i)
		return app.NewObjectService(pc, coord, logger)
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(health.WithCheckTimeout(healthCheckTimeout)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.ObjectHandler, error) {
		svc := do.MustInvoke[*app.ObjectService](i)
		return handlers.NewObjectHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		execs := do.MustInvoke[*executors](i)
		return handlers.NewHealthHandler(registry, handlers.WithBacklog(execs.backlog)), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		objH := do.MustInvoke[*handlers.ObjectHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(objH, healthH,
			middleware.CommitRateLimit(cfg.Server.CommitRateLimit),
			middleware.Standard(logger, metrics)...,
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		svc := do.MustInvoke[*app.ObjectService](i)
		return adapthttp.NewServer(cfg.Server, handler, logger,
			adapthttp.WithDrainHook("coalesced commits", svc.Flush),
		), nil
	})
}
