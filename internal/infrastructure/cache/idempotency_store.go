package cache

import (
	"context"
	"time"
)

// StoredResponse is the recorded outcome of a completed write operation.
// Replaying the same operation ID returns this instead of re-executing.
type StoredResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// IdempotencyStore records responses keyed by operation ID so that queued
// writes replayed after an offline period are applied exactly once.
type IdempotencyStore interface {
	// Get returns the stored response for an operation ID, or nil if the
	// operation has not been seen.
	Get(ctx context.Context, operationID string) (*StoredResponse, error)

	// Put records the response of a completed operation with a TTL. After
	// the TTL the same operation ID would execute again.
	Put(ctx context.Context, operationID string, response StoredResponse, ttl time.Duration) error

	// Close releases the store's resources
	Close() error
}
