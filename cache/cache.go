package cache

import (
	"context"
	"time"
)

// Cache is an abstraction over a time-bounded key-value store
type Cache interface {
	// Get fetches the value for the given key, if present and not expired
	Get(context.Context, string) ([]byte, bool, error)

	// Set stores the value under the given key for the given TTL
	Set(context.Context, string, []byte, time.Duration) error
}

// Backend is the cache backend kind
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
)

func (b Backend) String() string {
	return string(b)
}
