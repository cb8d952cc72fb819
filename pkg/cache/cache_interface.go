package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer.
// Implementations: Redis for cross-process caching, Memory for
// in-process request memoization. Both are injectable so tests can
// substitute a fake clock.
type Cache interface {
	// Get reads the value stored under key and unmarshals it into dest.
	// found = false means cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

// GetOrCompute returns the cached value under key when it is still within
// its TTL, otherwise invokes compute, stores the result and returns it.
// Compute errors are returned as-is and nothing is stored.
func GetOrCompute[T any](ctx context.Context, c Cache, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	var cached T
	if found, err := c.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	value, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}

	// A failed store must not fail the request.
	_ = c.Set(ctx, key, value, ttl)

	return value, nil
}
