// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"encoding/json"

	"github.com/jsamuelsen11/commit-coordinator/internal/ports"
)

// ObjectResponse represents a single stored object in HTTP responses.
type ObjectResponse struct {
	Key  string          `json:"key"`
	Data json.RawMessage `json:"data"`
}

// ToObjectResponse builds an ObjectResponse. Payloads that are not valid
// JSON are returned as a JSON string so the response body stays well formed.
func ToObjectResponse(key string, data []byte) ObjectResponse {
	if json.Valid(data) {
		return ObjectResponse{Key: key, Data: data}
	}
	quoted, _ := json.Marshal(string(data))
	return ObjectResponse{Key: key, Data: quoted}
}

// StatsResponse reports commit coordinator counters together with the
// number of changes still pending in the object graph.
type StatsResponse struct {
	ports.CommitStats
	PendingChanges int `json:"pending_changes"`
}

// ToStatsResponse converts coordinator stats into an HTTP response DTO.
func ToStatsResponse(stats ports.CommitStats, pending int) StatsResponse {
	return StatsResponse{CommitStats: stats, PendingChanges: pending}
}

// CommitResponse is returned by the explicit commit endpoint.
type CommitResponse struct {
	Status         string `json:"status"`
	PendingChanges int    `json:"pending_changes"`
}
