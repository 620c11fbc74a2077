// Package cachemanager provides a generic TTL cache over go-cache plus
// a read-through wrapper for memoizing expensive lookups.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is the caching contract read-side consumers depend on.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
