// Package main is the entry point for commitd. It wires all dependencies
// using samber/do v2, starts the HTTP server, and on SIGINT/SIGTERM drains
// requests, flushes pending commits, and closes the execution contexts.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	adapthttp "github.com/jsamuelsen11/commit-coordinator/internal/adapters/http"
	"github.com/jsamuelsen11/commit-coordinator/internal/app"
	appctx "github.com/jsamuelsen11/commit-coordinator/internal/app/context"
	"github.com/jsamuelsen11/commit-coordinator/internal/platform/config"
	"github.com/jsamuelsen11/commit-coordinator/internal/platform/logging"
	"github.com/jsamuelsen11/commit-coordinator/internal/platform/telemetry"
	"github.com/jsamuelsen11/commit-coordinator/internal/ports"
)

const otelShutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	execs := do.MustInvoke[*executors](injector)
	store := do.MustInvoke[*objectStore](injector)
	registerHealthCheckers(do.MustInvoke[ports.HealthRegistry](injector), execs, store)

	svc := do.MustInvoke[*app.ObjectService](injector)
	committed, err := store.graph.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting committed objects: %w", err)
	}
	logger.Info("persistence context ready",
		slog.String("context", svc.Context().Name()),
		slog.String("affinity", svc.Context().Affinity().String()),
		slog.String("driver", cfg.Store.Driver),
		slog.Int("committed_objects", committed),
		slog.Int("max_changed_objects", do.MustInvoke[*appctx.Coordinator](injector).MaxChangedObjects()),
	)

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		runErr = fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Coordinator.ShutdownTimeout)
	defer cancel()

	// Drain HTTP requests, then the coalesced commits they scheduled, so no
	// new mutations arrive during the final flush.
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}
	if runErr == nil {
		<-serverErr
	}

	if err := flushAndClose(shutdownCtx, logger, do.MustInvoke[*appctx.Coordinator](injector), svc.Context(), execs, store); err != nil {
		logger.Error("persistence shutdown error", slog.Any("error", err))
	}

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return runErr
}

// flushAndClose commits whatever is still pending in pc, then closes the
// execution contexts and the store.
func flushAndClose(
	ctx context.Context,
	logger *slog.Logger,
	coord *appctx.Coordinator,
	pc *appctx.PersistenceContext,
	execs *executors,
	store *objectStore,
) error {
	var errs []error

	logger.Info("flushing persistence contexts",
		slog.String("context", pc.Name()),
		slog.Int("pending_changes", pc.PendingChangeCount()),
	)
	if err := coord.FlushAll(ctx, pc); err != nil {
		errs = append(errs, err)
	}

	if err := execs.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	committed, err := store.graph.Count(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("counting committed objects: %w", err))
	}
	if err := store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing store: %w", err))
	}

	stats := coord.Stats()
	logger.Info("commit statistics",
		slog.Int("committed_objects", committed),
		slog.Int64("commits", stats.Commits),
		slog.Int64("no_ops", stats.NoOps),
		slog.Int64("failures", stats.Failures),
		slog.Int64("rollbacks", stats.Rollbacks),
		slog.Int64("rounds", stats.Rounds),
		slog.Int64("coalesced_requests", stats.CoalescedRequests),
	)

	return errors.Join(errs...)
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp, cfg.Telemetry.ServiceName)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}
