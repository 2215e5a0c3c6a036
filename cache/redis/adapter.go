package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix is the key namespace used for all cached entries
const DefaultPrefix = "cedears:"

// Cache is a Redis-backed, TTL-bounded cache
type Cache struct {
	client *redis.Client
	prefix string
}

// NewCache creates a new Redis cache on top of the given client
func NewCache(client *redis.Client, prefix string) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
	}
}

// Connect opens a Redis client from the given URL (redis://[:pass@]host:port/db)
// and verifies the server is reachable
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("unable to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancelFn := context.WithTimeout(ctx, time.Second*5)
	defer cancelFn()

	if err = client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("unable to reach redis (ping): %w", err)
	}

	return client, nil
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("unable to get cache key: %w", err)
	}

	return v, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("unable to set cache key: %w", err)
	}

	return nil
}
