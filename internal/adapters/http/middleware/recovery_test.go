package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jsamuelsen11/commit-coordinator/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/commit-coordinator/internal/platform/telemetry"
)

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// newTestMetrics returns metrics backed by a manual reader.
func newTestMetrics(t *testing.T) (*telemetry.Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	metrics, err := telemetry.NewMetrics(mp, "test")
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}
	return metrics, reader
}

// panicCounts returns http.server.panic.total data points keyed by route.
func panicCounts(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http.server.panic.total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("http.server.panic.total data = %#v, want int64 sum", m.Data)
			}
			for _, dp := range sum.DataPoints {
				route, _ := dp.Attributes.Value(telemetry.AttrHTTPRoute)
				out[route.AsString()] += dp.Value
			}
		}
	}
	return out
}

func TestRecovery_PassesThroughWithoutPanic(t *testing.T) {
	t.Parallel()

	metrics, reader := newTestMetrics(t)
	handler := middleware.Recovery(discardLogger(), metrics)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/objects/a", http.NoBody))

	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusAccepted)
	}
	if got := panicCounts(t, reader); len(got) != 0 {
		t.Errorf("panic counts = %v, want none", got)
	}
}

func TestRecovery_WritesProblemAndCountsRoute(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	metrics, reader := newTestMetrics(t)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(testLogger(&buf), metrics))
	r.Put("/api/v1/objects/{key}", func(http.ResponseWriter, *http.Request) {
		panic("graph exploded")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/objects/orders:17", http.NoBody))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	if body["detail"] != "internal server error" {
		t.Errorf("detail = %v, want the generic message", body["detail"])
	}
	if strings.Contains(rec.Body.String(), "graph exploded") {
		t.Error("panic value leaked into the response")
	}

	logOutput := buf.String()
	for _, want := range []string{"panic recovered", "graph exploded", "goroutine", "route=/api/v1/objects/{key}"} {
		if !strings.Contains(logOutput, want) {
			t.Errorf("log output missing %q", want)
		}
	}

	if got := panicCounts(t, reader)["/api/v1/objects/{key}"]; got != 1 {
		t.Errorf("panic count for route = %d, want 1", got)
	}
}

func TestRecovery_NilMetrics(t *testing.T) {
	t.Parallel()

	handler := middleware.Recovery(discardLogger(), nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(42)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats", http.NoBody))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestRecovery_KeepsStatusOnceHeadersSent(t *testing.T) {
	t.Parallel()

	handler := middleware.Recovery(discardLogger(), nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"key":"a"`))
		panic("late panic")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/objects/a", http.NoBody))

	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusAccepted)
	}
	if strings.Contains(rec.Body.String(), "problem") || strings.Contains(rec.Body.String(), "Internal Server Error") {
		t.Errorf("body = %q, want no problem document appended", rec.Body.String())
	}
}

func TestRecovery_ReraisesAbortHandler(t *testing.T) {
	t.Parallel()

	metrics, reader := newTestMetrics(t)
	handler := middleware.Recovery(discardLogger(), metrics)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if v := recover(); v != http.ErrAbortHandler {
			t.Errorf("recovered %v, want http.ErrAbortHandler", v)
		}
		if got := panicCounts(t, reader); len(got) != 0 {
			t.Errorf("panic counts = %v, want aborts not counted", got)
		}
	}()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/stats", http.NoBody))
	t.Error("ServeHTTP returned, want the abort to propagate")
}
