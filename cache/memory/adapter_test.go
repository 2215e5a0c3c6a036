package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetSet(t *testing.T) {
	t.Parallel()

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		c := NewCache()

		v, ok, err := c.Get(context.Background(), "nope")

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("value within ttl", func(t *testing.T) {
		t.Parallel()

		c := NewCache()

		require.NoError(t, c.Set(context.Background(), "k", []byte("v"), time.Minute))

		v, ok, err := c.Get(context.Background(), "k")

		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("v"), v)
	})

	t.Run("value expires", func(t *testing.T) {
		t.Parallel()

		var (
			c   = NewCache()
			now = time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)
		)

		c.now = func() time.Time {
			return now
		}

		require.NoError(t, c.Set(context.Background(), "k", []byte("v"), time.Minute))

		now = now.Add(time.Minute)

		_, ok, err := c.Get(context.Background(), "k")

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("last write wins", func(t *testing.T) {
		t.Parallel()

		c := NewCache()

		require.NoError(t, c.Set(context.Background(), "k", []byte("a"), time.Minute))
		require.NoError(t, c.Set(context.Background(), "k", []byte("b"), time.Minute))

		v, ok, err := c.Get(context.Background(), "k")

		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("b"), v)
	})

	t.Run("stored value is copied", func(t *testing.T) {
		t.Parallel()

		var (
			c   = NewCache()
			raw = []byte("abc")
		)

		require.NoError(t, c.Set(context.Background(), "k", raw, time.Minute))

		raw[0] = 'x'

		v, _, err := c.Get(context.Background(), "k")

		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), v)
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()

		var (
			c  = NewCache()
			wg sync.WaitGroup
		)

		for i := 0; i < 50; i++ {
			wg.Add(1)

			go func() {
				defer wg.Done()

				_ = c.Set(context.Background(), "k", []byte("v"), time.Minute)
				_, _, _ = c.Get(context.Background(), "k")
			}()
		}

		wg.Wait()

		assert.Equal(t, 1, c.Len())
	})
}
