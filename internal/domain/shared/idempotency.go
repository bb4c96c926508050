package shared

import (
	"context"
	"time"
)

// IdempotencyStore tracks keys that have already been acted on so retried
// requests are absorbed instead of repeated.
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL.
	// Returns true if the key was newly marked, false if it already existed.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key has already been processed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release removes a key so the operation can be retried before the TTL
	// lapses, e.g. after the guarded operation failed.
	Release(ctx context.Context, key string) error

	// Close releases resources held by the store
	Close() error
}
