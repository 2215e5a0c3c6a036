package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/pelletier/go-toml"

	"github.com/jjo/stocks/cache"
)

const (
	DefaultListenAddress     = "0.0.0.0:8545"
	DefaultVolumeQuantile    = 0.75
	DefaultConcurrencyLimit  = 20
	DefaultRefreshMinSeconds = 60
	DefaultRefreshMaxSeconds = 90
)

var (
	ErrInvalidListenAddress    = errors.New("invalid listen address")
	ErrInvalidVolumeQuantile   = errors.New("invalid volume quantile (must be within [0, 1])")
	ErrInvalidConcurrencyLimit = errors.New("invalid concurrency limit (must be positive)")
	ErrInvalidRequestRate      = errors.New("invalid requests per second (must be non-negative)")
	ErrInvalidCacheBackend     = errors.New("invalid cache backend")
	ErrMissingRedisURL         = errors.New("missing redis URL")
	ErrInvalidRefreshInterval  = errors.New("invalid refresh interval")
)

var listenAddressRegex = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}:\d+$`)

// Config defines the base-level service configuration
type Config struct {
	// The associated CORS config, if any
	CORSConfig *CORS `toml:"cors_config"`

	// The address at which the server will be served.
	// Format should be: <IP>:<PORT>
	ListenAddress string `toml:"listen_address"`

	Pipeline PipelineConfig `toml:"pipeline"`
	Cache    CacheConfig    `toml:"cache"`
	Refresh  RefreshConfig  `toml:"refresh"`
}

// PipelineConfig defines the CCL pipeline configuration
type PipelineConfig struct {
	// Local tickers always included, regardless of liquidity
	Tickers []string `toml:"tickers"`

	// The liquidity filter quantile, within [0, 1]
	VolumeQuantile float64 `toml:"volume_quantile"`

	// The maximum number of in-flight upstream requests
	ConcurrencyLimit int `toml:"concurrency_limit"`

	// Upstream request pacing. 0 means unlimited
	RequestsPerSecond float64 `toml:"requests_per_second"`

	// Bypasses the liquidity filter
	NoFilter bool `toml:"no_filter"`
}

// CacheConfig defines the fetch cache configuration
type CacheConfig struct {
	Backend  cache.Backend `toml:"cache_backend"`
	RedisURL string        `toml:"redis_url"`
}

// RefreshConfig defines the background refresh interval bounds, in seconds
type RefreshConfig struct {
	MinSeconds int `toml:"refresh_min"`
	MaxSeconds int `toml:"refresh_max"`
}

// DefaultConfig returns the default service configuration
func DefaultConfig() *Config {
	return &Config{
		ListenAddress: DefaultListenAddress,
		CORSConfig:    DefaultCORSConfig(),
		Pipeline: PipelineConfig{
			VolumeQuantile:   DefaultVolumeQuantile,
			ConcurrencyLimit: DefaultConcurrencyLimit,
		},
		Cache: CacheConfig{
			Backend: cache.BackendMemory,
		},
		Refresh: RefreshConfig{
			MinSeconds: DefaultRefreshMinSeconds,
			MaxSeconds: DefaultRefreshMaxSeconds,
		},
	}
}

// ValidateConfig validates the service configuration
func ValidateConfig(config *Config) error {
	// Validate the listen address
	if !listenAddressRegex.MatchString(config.ListenAddress) {
		return ErrInvalidListenAddress
	}

	if err := validatePipeline(config.Pipeline); err != nil {
		return err
	}

	// Validate the cache backend
	switch config.Cache.Backend {
	case cache.BackendMemory:
	case cache.BackendRedis:
		if config.Cache.RedisURL == "" {
			return ErrMissingRedisURL
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCacheBackend, config.Cache.Backend)
	}

	// Validate the refresh interval
	if config.Refresh.MinSeconds <= 0 || config.Refresh.MaxSeconds < config.Refresh.MinSeconds {
		return ErrInvalidRefreshInterval
	}

	return nil
}

// ValidatePipelineConfig validates the pipeline section on its own,
// for one-shot runs that never serve
func ValidatePipelineConfig(config PipelineConfig) error {
	return validatePipeline(config)
}

func validatePipeline(config PipelineConfig) error {
	if config.VolumeQuantile < 0 || config.VolumeQuantile > 1 {
		return ErrInvalidVolumeQuantile
	}

	if config.ConcurrencyLimit <= 0 {
		return ErrInvalidConcurrencyLimit
	}

	if config.RequestsPerSecond < 0 {
		return ErrInvalidRequestRate
	}

	return nil
}

// Read reads the configuration from the given path.
// Keys missing from the file keep their default values
func Read(path string) (*Config, error) {
	// Read the config file
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse it
	cfg := DefaultConfig()

	if err := toml.Unmarshal(content, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
