// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/commit-coordinator/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/commit-coordinator/internal/adapters/http/middleware"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given. commitLimit guards
// POST /api/v1/commit only; nil leaves the route unguarded.
func NewRouter(
	objectHandler *handlers.ObjectHandler,
	healthHandler *handlers.HealthHandler,
	commitLimit func(http.Handler) http.Handler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	if len(middlewares) > 0 {
		r.Use(middleware.Chain(middlewares...))
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/stats", objectHandler.Stats)
		if commitLimit != nil {
			r.With(commitLimit).Post("/commit", objectHandler.Commit)
		} else {
			r.Post("/commit", objectHandler.Commit)
		}

		r.Get("/objects/{key}", objectHandler.GetObject)
		r.Put("/objects/{key}", objectHandler.PutObject)
		r.Delete("/objects/{key}", objectHandler.DeleteObject)
	})

	return r
}
