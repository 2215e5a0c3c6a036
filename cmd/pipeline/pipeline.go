package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jjo/stocks/cache"
	"github.com/jjo/stocks/cache/memory"
	"github.com/jjo/stocks/cache/redis"
	"github.com/jjo/stocks/ccl"
	"github.com/jjo/stocks/cmd/env"
	"github.com/jjo/stocks/server/config"
	"github.com/jjo/stocks/source"
)

// New wires the CCL pipeline on top of the upstream sources,
// memoized in the given cache
func New(cfg config.PipelineConfig, c cache.Cache, logger *slog.Logger) (*ccl.Pipeline, error) {
	if err := config.ValidatePipelineConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid pipeline configuration, %w", err)
	}

	client := source.NewClient(
		source.WithLogger(logger),
		source.WithConcurrencyLimit(cfg.ConcurrencyLimit),
		source.WithRequestsPerSecond(cfg.RequestsPerSecond),
	)

	sources := source.NewSources(
		client,
		cache.NewMemo(c, logger),
		source.WithSourcesLogger(logger),
	)

	p, err := ccl.New(
		sources,
		ccl.WithLogger(logger),
		ccl.WithVolumeQuantile(cfg.VolumeQuantile),
		ccl.WithNoFilter(cfg.NoFilter),
		ccl.WithTickers(cfg.Tickers),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create pipeline, %w", err)
	}

	return p, nil
}

// NewCache creates the configured cache backend. The returned
// closer releases the backend connection, if any
func NewCache(
	ctx context.Context,
	cfg *config.CacheConfig,
	logger *slog.Logger,
) (cache.Cache, func(), error) {
	switch cfg.Backend {
	case cache.BackendMemory, "":
		return memory.NewCache(), func() {}, nil
	case cache.BackendRedis:
		url := cfg.RedisURL
		if url == "" {
			url = os.Getenv(env.Prefix + env.RedisURLSuffix)
		}

		if url == "" {
			return nil, nil, fmt.Errorf("missing %s", env.Prefix+env.RedisURLSuffix)
		}

		cfg.RedisURL = url

		client, err := redis.Connect(ctx, url)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to connect to redis, %w", err)
		}

		logger.Info("redis ping success")

		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.Error(
					"unable to gracefully close redis connection",
					"err", err,
				)
			}
		}

		return redis.NewCache(client, redis.DefaultPrefix), closeFn, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
