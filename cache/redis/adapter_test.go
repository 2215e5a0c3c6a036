package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: srv.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
	})

	return NewCache(client, DefaultPrefix), srv
}

func TestCache_GetSet(t *testing.T) {
	t.Parallel()

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		c, _ := newTestCache(t)

		_, ok, err := c.Get(context.Background(), "nope")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("prefixed value", func(t *testing.T) {
		t.Parallel()

		c, srv := newTestCache(t)

		require.NoError(t, c.Set(context.Background(), "ratios", []byte(`[1]`), time.Hour))

		v, ok, err := c.Get(context.Background(), "ratios")

		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte(`[1]`), v)

		assert.True(t, srv.Exists(DefaultPrefix+"ratios"))
		assert.Equal(t, time.Hour, srv.TTL(DefaultPrefix+"ratios"))
	})

	t.Run("value expires", func(t *testing.T) {
		t.Parallel()

		c, srv := newTestCache(t)

		require.NoError(t, c.Set(context.Background(), "quotes", []byte("x"), time.Minute))

		srv.FastForward(time.Minute + time.Second)

		_, ok, err := c.Get(context.Background(), "quotes")

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("server unavailable", func(t *testing.T) {
		t.Parallel()

		client := redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 100 * time.Millisecond,
			MaxRetries:  -1,
		})

		t.Cleanup(func() {
			_ = client.Close()
		})

		c := NewCache(client, DefaultPrefix)

		_, _, err := c.Get(context.Background(), "k")
		assert.Error(t, err)

		assert.Error(t, c.Set(context.Background(), "k", []byte("v"), time.Minute))
	})
}

func TestCache_Connect(t *testing.T) {
	t.Parallel()

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()

		_, err := Connect(context.Background(), "nope://")

		assert.Error(t, err)
	})

	t.Run("reachable server", func(t *testing.T) {
		t.Parallel()

		srv := miniredis.RunT(t)

		client, err := Connect(context.Background(), "redis://"+srv.Addr()+"/0")
		require.NoError(t, err)

		assert.NoError(t, client.Close())
	})
}
