package cache

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

// Memo memoizes fetch results in a Cache, collapsing concurrent
// first-access calls for the same key
type Memo struct {
	cache  Cache
	logger *slog.Logger

	group singleflight.Group
}

// NewMemo creates a new memoizer on top of the given cache
func NewMemo(c Cache, logger *slog.Logger) *Memo {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Memo{
		cache:  c,
		logger: logger,
	}
}

// Memoize returns the cached value for key, or calls fn and caches its
// result for ttl. Errors returned by fn are never cached.
// Cache failures are logged, and the call falls through to fn
func Memoize[T any](
	ctx context.Context,
	m *Memo,
	key string,
	ttl time.Duration,
	fn func(context.Context) (T, error),
) (T, error) {
	return MemoizeFunc(ctx, m, key, func(ctx context.Context) (T, time.Duration, error) {
		v, err := fn(ctx)

		return v, ttl, err
	})
}

// MemoizeFunc is Memoize with the TTL chosen by fn for each result.
// A non-positive TTL skips caching the result.
// Concurrent callers of the same key share a single fn call, detached from
// their cancellation: each caller stops waiting when its own ctx is done,
// while the shared call keeps running for the others
func MemoizeFunc[T any](
	ctx context.Context,
	m *Memo,
	key string,
	fn func(context.Context) (T, time.Duration, error),
) (T, error) {
	if v, ok := lookup[T](ctx, m, key); ok {
		return v, nil
	}

	// Values are kept, deadline and cancellation are not. fn is expected
	// to bound its own blocking calls
	detached := context.WithoutCancel(ctx)

	ch := m.group.DoChan(key, func() (any, error) {
		// Another caller may have populated the key in the meantime
		if v, ok := lookup[T](detached, m, key); ok {
			return v, nil
		}

		v, ttl, err := fn(detached)
		if err != nil {
			return v, err
		}

		if ttl > 0 {
			m.save(detached, key, v, ttl)
		}

		return v, nil
	})

	select {
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	case res := <-ch:
		v, _ := res.Val.(T)

		return v, res.Err
	}
}

func (m *Memo) save(ctx context.Context, key string, v any, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		m.logger.Warn(
			"unable to encode cache value",
			"key", key,
			"err", err,
		)

		return
	}

	if err = m.cache.Set(ctx, key, raw, ttl); err != nil {
		m.logger.Warn(
			"unable to save cache value",
			"key", key,
			"err", err,
		)
	}
}

func lookup[T any](ctx context.Context, m *Memo, key string) (T, bool) {
	var v T

	raw, ok, err := m.cache.Get(ctx, key)
	if err != nil {
		m.logger.Warn(
			"unable to read cache value",
			"key", key,
			"err", err,
		)

		return v, false
	}

	if !ok {
		return v, false
	}

	if err = json.Unmarshal(raw, &v); err != nil {
		m.logger.Warn(
			"unable to decode cache value",
			"key", key,
			"err", err,
		)

		return v, false
	}

	return v, true
}
