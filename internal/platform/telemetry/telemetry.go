// Package telemetry provides OpenTelemetry tracer and meter initialization
// with support for stdout (development) and OTLP/HTTP (production) exporters.
//
// Tracer initialization:
//
//	tp, err := telemetry.InitTracer(ctx, "commitd", telemetry.ExporterStdout, "")
//	defer tp.Shutdown(ctx)
//
// Meter initialization:
//
//	mp, err := telemetry.InitMeter(ctx, "commitd", telemetry.ExporterStdout, "")
//	defer mp.Shutdown(ctx)
//
// Pre-registered metrics:
//
//	metrics, err := telemetry.NewMetrics(mp, "commitd")
//	metrics.CommitTotal.Add(ctx, 1, ...)
//
// A nil *Metrics is valid everywhere it is accepted and records nothing.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// Supported exporter names.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Attribute keys for metric labels and span attributes.
var (
	AttrHTTPMethod   = attribute.Key("http.method")
	AttrHTTPStatus   = attribute.Key("http.status_code")
	AttrHTTPRoute    = attribute.Key("http.route")
	AttrResult       = attribute.Key("result")
	AttrContext      = attribute.Key("persistence.context")
	AttrAffinity     = attribute.Key("persistence.affinity")
	AttrPendingCount = attribute.Key("persistence.pending_changes")
	AttrCoalescePath = attribute.Key("coalesce.path")
)

// Metric result and path values.
const (
	ResultSuccess = "success"
	ResultNoOp    = "noop"
	ResultFailure = "failure"
	ResultError   = "error"
	PathCoalesced = "coalesced"
	PathOverflow  = "overflow"
)

// scopeNameSuffix is appended to the service name to form the meter scope.
const scopeNameSuffix = "/persistence"

// Metrics holds pre-registered OpenTelemetry metric instruments.
type Metrics struct {
	CommitDuration        metric.Float64Histogram
	CommitTotal           metric.Int64Counter
	RollbackTotal         metric.Int64Counter
	CoalesceRequestTotal  metric.Int64Counter
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	ServerPanicTotal      metric.Int64Counter
}

// errUnsupportedExporter is returned for exporter names other than
// ExporterStdout and ExporterOTLP.
var errUnsupportedExporter = errors.New("unsupported exporter")

// InitTracer creates and registers a global TracerProvider.
//
// The exporter parameter selects the span exporter: ExporterOTLP uses
// OTLP/HTTP with the given endpoint; ExporterStdout uses a pretty-printed
// stdout exporter for development.
//
// The returned TracerProvider must be shut down when the application exits.
func InitTracer(ctx context.Context, serviceName, exporter, endpoint string) (*sdktrace.TracerProvider, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	spanExporter, err := newSpanExporter(ctx, exporter, endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, nil
}

// InitMeter creates and registers a global MeterProvider.
//
// The exporter parameter selects the metric exporter the same way as
// InitTracer.
//
// The returned MeterProvider must be shut down when the application exits.
func InitMeter(ctx context.Context, serviceName, exporter, endpoint string) (*sdkmetric.MeterProvider, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	metricExporter, err := newMetricExporter(ctx, exporter, endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	return mp, nil
}

// NewMetrics creates and registers all metric instruments using the given
// MeterProvider. The meter is scoped to serviceName.
func NewMetrics(mp metric.MeterProvider, serviceName string) (*Metrics, error) {
	meter := mp.Meter(serviceName + scopeNameSuffix)

	commitDuration, err := meter.Float64Histogram(
		"persistence.commit.duration",
		metric.WithDescription("Duration of store commit primitives"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating persistence.commit.duration: %w", err)
	}

	commitTotal, err := meter.Int64Counter(
		"persistence.commit.total",
		metric.WithDescription("Commit attempts by result (success, noop, failure)"),
		metric.WithUnit("{commit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating persistence.commit.total: %w", err)
	}

	rollbackTotal, err := meter.Int64Counter(
		"persistence.rollback.total",
		metric.WithDescription("Rollbacks after failed commits by result"),
		metric.WithUnit("{rollback}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating persistence.rollback.total: %w", err)
	}

	coalesceTotal, err := meter.Int64Counter(
		"persistence.coalesce.request.total",
		metric.WithDescription("Coalesced commit requests by path (coalesced, overflow)"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating persistence.coalesce.request.total: %w", err)
	}

	serverDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("Duration of incoming HTTP requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.server.request.duration: %w", err)
	}

	serverTotal, err := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of incoming HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.server.request.total: %w", err)
	}

	serverPanics, err := meter.Int64Counter(
		"http.server.panic.total",
		metric.WithDescription("Handler panics recovered by the server, by route"),
		metric.WithUnit("{panic}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.server.panic.total: %w", err)
	}

	return &Metrics{
		CommitDuration:        commitDuration,
		CommitTotal:           commitTotal,
		RollbackTotal:         rollbackTotal,
		CoalesceRequestTotal:  coalesceTotal,
		ServerRequestDuration: serverDuration,
		ServerRequestTotal:    serverTotal,
		ServerPanicTotal:      serverPanics,
	}, nil
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}

func newSpanExporter(ctx context.Context, exporter, endpoint string) (sdktrace.SpanExporter, error) {
	switch exporter {
	case ExporterOTLP:
		if endpoint == "" {
			return nil, errors.New("otlp exporter requires an endpoint")
		}
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(hostPort(endpoint))}
		if !isHTTPS(endpoint) {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedExporter, exporter)
	}
}

func newMetricExporter(ctx context.Context, exporter, endpoint string) (sdkmetric.Exporter, error) {
	switch exporter {
	case ExporterOTLP:
		if endpoint == "" {
			return nil, errors.New("otlp exporter requires an endpoint")
		}
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(hostPort(endpoint))}
		if !isHTTPS(endpoint) {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		return otlpmetrichttp.New(ctx, opts...)
	case ExporterStdout:
		return stdoutmetric.New()
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedExporter, exporter)
	}
}

// hostPort extracts the host:port from a URL string
// (e.g., "http://otel-collector:4318" -> "otel-collector:4318").
func hostPort(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Host
}

// isHTTPS returns true if the endpoint URL uses the https scheme.
func isHTTPS(endpoint string) bool {
	u, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	return u.Scheme == "https"
}
