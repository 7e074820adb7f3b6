package util

import "github.com/google/uuid"

// NewRequestID returns a fresh identifier attached to outbound requests so
// server logs can be correlated with client actions.
func NewRequestID() string {
	return uuid.NewString()
}
