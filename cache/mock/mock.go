package mock

import (
	"context"
	"time"
)

type (
	GetDelegate func(context.Context, string) ([]byte, bool, error)
	SetDelegate func(context.Context, string, []byte, time.Duration) error
)

type Cache struct {
	GetFn GetDelegate
	SetFn SetDelegate
}

func (m *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}

	return nil, false, nil
}

func (m *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFn != nil {
		return m.SetFn(ctx, key, value, ttl)
	}

	return nil
}
