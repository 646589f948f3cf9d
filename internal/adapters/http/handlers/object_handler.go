package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/commit-coordinator/internal/adapters/http/dto"
	"github.com/jsamuelsen11/commit-coordinator/internal/ports"
)

const statusCommitted = "committed"

// ObjectHandler handles HTTP requests against the object graph.
type ObjectHandler struct {
	svc ports.ObjectService
}

// NewObjectHandler creates a new ObjectHandler with the given service port.
func NewObjectHandler(svc ports.ObjectService) *ObjectHandler {
	return &ObjectHandler{svc: svc}
}

// GetObject handles GET /api/v1/objects/{key}.
func (h *ObjectHandler) GetObject(w http.ResponseWriter, r *http.Request) {
	key, err := objectKey(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	data, err := h.svc.Get(r.Context(), key)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToObjectResponse(key, data))
}

// PutObject handles PUT /api/v1/objects/{key}. The change is applied on the
// graph's owner and committed asynchronously with other recent writes.
func (h *ObjectHandler) PutObject(w http.ResponseWriter, r *http.Request) {
	key, err := objectKey(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.PutObjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.Put(r.Context(), key, req.Data); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, dto.ToObjectResponse(key, req.Data))
}

// DeleteObject handles DELETE /api/v1/objects/{key}.
func (h *ObjectHandler) DeleteObject(w http.ResponseWriter, r *http.Request) {
	key, err := objectKey(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), key); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// Commit handles POST /api/v1/commit. Pending changes are committed
// synchronously and rolled back if the commit fails.
func (h *ObjectHandler) Commit(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Commit(r.Context()); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	_, pending := h.svc.Stats(r.Context())
	writeJSON(w, http.StatusOK, dto.CommitResponse{
		Status:         statusCommitted,
		PendingChanges: pending,
	})
}

// Stats handles GET /api/v1/stats.
func (h *ObjectHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, pending := h.svc.Stats(r.Context())
	writeJSON(w, http.StatusOK, dto.ToStatsResponse(stats, pending))
}
