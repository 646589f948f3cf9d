package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/jsamuelsen11/commit-coordinator/internal/platform/telemetry"
)

// Standard returns the global middleware of the object API, outermost
// first. Recovery is outermost so it also catches panics raised by the
// other middleware.
func Standard(logger *slog.Logger, metrics *telemetry.Metrics) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		Recovery(logger, metrics),
		RequestID(),
		OpenTelemetry(metrics),
		Logging(logger),
	}
}

// Chain composes middleware into one. The first argument is outermost:
//
//	Chain(Recovery, RequestID, Logging)(handler)
//
// is Recovery(RequestID(Logging(handler))).
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		for _, mw := range slices.Backward(middlewares) {
			handler = mw(handler)
		}
		return handler
	}
}
