package storage

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when the key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// Store defines the keyed-storage operations the application needs,
// following hexagonal architecture. This is a port that can be implemented
// by different providers (Redis, Memcached, etc.).
//
// Concurrency control for load-mutate-save sequences is delegated to the
// backing store; Store implementations make no atomicity promises across
// separate calls.
type Store interface {
	// Get retrieves a value by key.
	// Returns ErrKeyNotFound (wrapped) if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under the given key with the specified TTL.
	// TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Increment atomically increments the integer stored at key and
	// returns the new value. A missing key counts as 0.
	Increment(ctx context.Context, key string) (int64, error)

	// AddToSet adds a member to the set stored at key.
	AddToSet(ctx context.Context, key, member string) error

	// RemoveFromSet removes a member from the set stored at key.
	RemoveFromSet(ctx context.Context, key, member string) error

	// SetMembers returns all members of the set stored at key.
	// A missing key yields an empty slice.
	SetMembers(ctx context.Context, key string) ([]string, error)

	// Ping checks if the storage service is reachable.
	Ping(ctx context.Context) error

	// Close closes the storage connection.
	Close() error
}
