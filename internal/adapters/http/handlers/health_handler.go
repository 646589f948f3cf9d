package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/commit-coordinator/internal/ports"
)

const (
	statusOK       = "ok"
	statusReady    = "ready"
	statusNotReady = "not_ready"
)

// ReadinessResponse is the body of GET /health/ready. Backlog maps each
// execution context to the number of tasks queued on it and is omitted
// when no backlog source is configured.
type ReadinessResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Backlog map[string]int    `json:"backlog,omitempty"`
}

// HealthOption configures a HealthHandler.
type HealthOption func(*HealthHandler)

// WithBacklog sets the source of per-queue backlog reported by readiness.
func WithBacklog(fn func() map[string]int) HealthOption {
	return func(h *HealthHandler) {
		h.backlog = fn
	}
}

// HealthHandler handles liveness and readiness HTTP endpoints.
type HealthHandler struct {
	registry ports.HealthRegistry
	backlog  func() map[string]int
}

// NewHealthHandler creates a new HealthHandler with the given health registry.
func NewHealthHandler(registry ports.HealthRegistry, opts ...HealthOption) *HealthHandler {
	h := &HealthHandler{registry: registry}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Liveness handles GET /health/live. Always returns 200 OK.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": statusOK})
}

// Readiness handles GET /health/ready. Returns 200 if every check passes
// and 503 otherwise. A queue that is merely behind is reported in the
// backlog without failing readiness; its health check fails only when a
// no-op cannot get through within the check timeout.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	results := h.registry.CheckAll(r.Context())

	resp := ReadinessResponse{
		Status: statusReady,
		Checks: make(map[string]string, len(results)),
	}
	for name, err := range results {
		if err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = statusNotReady
			continue
		}
		resp.Checks[name] = statusOK
	}
	if h.backlog != nil {
		resp.Backlog = h.backlog()
	}

	code := http.StatusOK
	if resp.Status != statusReady {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}
