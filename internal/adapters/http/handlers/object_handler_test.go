package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/commit-coordinator/internal/adapters/http/dto"
	"github.com/jsamuelsen11/commit-coordinator/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/commit-coordinator/internal/domain"
	"github.com/jsamuelsen11/commit-coordinator/internal/ports"
	"github.com/jsamuelsen11/commit-coordinator/mocks"
)

func newObjectHandler(t *testing.T) (*handlers.ObjectHandler, *mocks.MockObjectService) {
	t.Helper()
	svc := mocks.NewMockObjectService(t)
	return handlers.NewObjectHandler(svc), svc
}

// --- GetObject ---

func TestGetObject_Success(t *testing.T) {
	t.Parallel()
	h, svc := newObjectHandler(t)

	svc.EXPECT().Get(mock.Anything, "widget").Return([]byte(`{"size":3}`), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/objects/widget", nil)
	h.GetObject(rec, withChiParams(req, map[string]string{"key": "widget"}))

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.ObjectResponse](t, rec)
	if resp.Key != "widget" {
		t.Errorf("Key = %q, want %q", resp.Key, "widget")
	}
	if string(resp.Data) != `{"size":3}` {
		t.Errorf("Data = %s, want %s", resp.Data, `{"size":3}`)
	}
}

func TestGetObject_NotFound(t *testing.T) {
	t.Parallel()
	h, svc := newObjectHandler(t)

	svc.EXPECT().Get(mock.Anything, "missing").Return(nil, fmt.Errorf("get %q: %w", "missing", domain.ErrNotFound))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/objects/missing", nil)
	h.GetObject(rec, withChiParams(req, map[string]string{"key": "missing"}))

	requireStatus(t, rec, http.StatusNotFound)
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/problem+json")
	}
}

func TestGetObject_EmptyKey(t *testing.T) {
	t.Parallel()
	h, _ := newObjectHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/objects/", nil)
	h.GetObject(rec, withChiParams(req, map[string]string{"key": ""}))

	requireStatus(t, rec, http.StatusBadRequest)
}

// --- PutObject ---

func TestPutObject_Success(t *testing.T) {
	t.Parallel()
	h, svc := newObjectHandler(t)

	svc.EXPECT().Put(mock.Anything, "widget", []byte(`{"size":3}`)).Return(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/objects/widget",
		strings.NewReader(`{"data":{"size":3}}`))
	h.PutObject(rec, withChiParams(req, map[string]string{"key": "widget"}))

	requireStatus(t, rec, http.StatusAccepted)
	resp := decodeJSON[dto.ObjectResponse](t, rec)
	if resp.Key != "widget" {
		t.Errorf("Key = %q, want %q", resp.Key, "widget")
	}
}

func TestPutObject_InvalidJSON(t *testing.T) {
	t.Parallel()
	h, _ := newObjectHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/objects/widget", strings.NewReader("{bad"))
	h.PutObject(rec, withChiParams(req, map[string]string{"key": "widget"}))

	requireStatus(t, rec, http.StatusBadRequest)
}

func TestPutObject_MissingData(t *testing.T) {
	t.Parallel()
	h, _ := newObjectHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/objects/widget",
		jsonBody(t, map[string]any{"other": 1}))
	h.PutObject(rec, withChiParams(req, map[string]string{"key": "widget"}))

	requireStatus(t, rec, http.StatusBadRequest)
	resp := decodeJSON[dto.ErrorResponse](t, rec)
	if len(resp.Errors) != 1 || resp.Errors[0].Location != "body.data" {
		t.Errorf("Errors = %+v, want one entry for body.data", resp.Errors)
	}
}

func TestPutObject_ServiceUnavailable(t *testing.T) {
	t.Parallel()
	h, svc := newObjectHandler(t)

	svc.EXPECT().Put(mock.Anything, "widget", mock.Anything).Return(domain.ErrExecutorClosed)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/objects/widget", strings.NewReader(`{"data":1}`))
	h.PutObject(rec, withChiParams(req, map[string]string{"key": "widget"}))

	requireStatus(t, rec, http.StatusServiceUnavailable)
}

// --- DeleteObject ---

func TestDeleteObject_Success(t *testing.T) {
	t.Parallel()
	h, svc := newObjectHandler(t)

	svc.EXPECT().Delete(mock.Anything, "widget").Return(nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/objects/widget", nil)
	h.DeleteObject(rec, withChiParams(req, map[string]string{"key": "widget"}))

	requireStatus(t, rec, http.StatusAccepted)
}

func TestDeleteObject_NotFound(t *testing.T) {
	t.Parallel()
	h, svc := newObjectHandler(t)

	svc.EXPECT().Delete(mock.Anything, "widget").Return(domain.ErrNotFound)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/objects/widget", nil)
	h.DeleteObject(rec, withChiParams(req, map[string]string{"key": "widget"}))

	requireStatus(t, rec, http.StatusNotFound)
}

// --- Commit ---

func TestCommit_Success(t *testing.T) {
	t.Parallel()
	h, svc := newObjectHandler(t)

	svc.EXPECT().Commit(mock.Anything).Return(nil)
	svc.EXPECT().Stats(mock.Anything).Return(ports.CommitStats{Commits: 1}, 0)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/commit", nil)
	h.Commit(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.CommitResponse](t, rec)
	if resp.Status != "committed" {
		t.Errorf("Status = %q, want %q", resp.Status, "committed")
	}
	if resp.PendingChanges != 0 {
		t.Errorf("PendingChanges = %d, want 0", resp.PendingChanges)
	}
}

func TestCommit_RejectedChanges(t *testing.T) {
	t.Parallel()
	h, svc := newObjectHandler(t)

	svc.EXPECT().Commit(mock.Anything).Return(
		fmt.Errorf("%w: graph objects: insert %q: %w", domain.ErrCommitFailed, "widget", errors.New("too large")),
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/commit", nil)
	h.Commit(rec, req)

	requireStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestCommit_RollbackFailed(t *testing.T) {
	t.Parallel()
	h, svc := newObjectHandler(t)

	svc.EXPECT().Commit(mock.Anything).Return(&domain.RollbackError{
		Commit:   domain.ErrCommitFailed,
		Rollback: errors.New("disk gone"),
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/commit", nil)
	h.Commit(rec, req)

	requireStatus(t, rec, http.StatusInternalServerError)
}

// --- Stats ---

func TestStats_Success(t *testing.T) {
	t.Parallel()
	h, svc := newObjectHandler(t)

	svc.EXPECT().Stats(mock.Anything).Return(ports.CommitStats{
		Commits:           4,
		Rounds:            2,
		CoalescedRequests: 9,
	}, 3)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	h.Stats(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.StatsResponse](t, rec)
	if resp.Commits != 4 || resp.Rounds != 2 || resp.CoalescedRequests != 9 {
		t.Errorf("stats = %+v, want commits=4 rounds=2 coalesced=9", resp.CommitStats)
	}
	if resp.PendingChanges != 3 {
		t.Errorf("PendingChanges = %d, want 3", resp.PendingChanges)
	}
}
