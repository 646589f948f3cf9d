package dto

import (
	"bytes"
	"encoding/json"

	"github.com/jsamuelsen11/commit-coordinator/internal/domain"
)

const msgRequired = "is required"

// PutObjectRequest represents the JSON body for storing an object.
// Data is kept as raw JSON and stored byte-for-byte.
type PutObjectRequest struct {
	Data json.RawMessage `json:"data"`
}

// Validate checks that a non-null payload was supplied.
// Returns a *domain.ValidationError if any checks fail.
func (r *PutObjectRequest) Validate() error {
	trimmed := bytes.TrimSpace(r.Data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &domain.ValidationError{Fields: map[string]string{"data": msgRequired}}
	}
	return nil
}
