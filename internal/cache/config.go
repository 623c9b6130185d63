package cache

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/pkg/config/env"
)

type Backend string

const (
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
	BackendNone   Backend = "none"
)

type Config struct {
	Backend    Backend
	RedisURL   string
	MemorySize int
	OpTimeout  time.Duration
}

func LoadEnv() (*Config, error) {
	cfg := &Config{
		Backend:  Backend(env.String("CACHE_BACKEND", string(BackendMemory))),
		RedisURL: env.String("REDIS_URL", ""),
	}

	switch cfg.Backend {
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL must be set when CACHE_BACKEND=%s", BackendRedis)
		}
	case BackendMemory, BackendNone:
	default:
		return nil, fmt.Errorf(
			"invalid CACHE_BACKEND value: %s, expected one of %v",
			cfg.Backend,
			[]Backend{BackendRedis, BackendMemory, BackendNone})
	}

	var err error
	if cfg.MemorySize, err = env.Int("CACHE_MEMORY_SIZE", DefaultMemorySize); err != nil {
		return nil, err
	}
	if cfg.MemorySize <= 0 {
		return nil, fmt.Errorf("invalid CACHE_MEMORY_SIZE value %d: must be positive", cfg.MemorySize)
	}
	if cfg.OpTimeout, err = env.Duration("CACHE_OP_TIMEOUT", DefaultOpTimeout); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewStore builds the backend selected by cfg.
func NewStore(cfg *Config) (Store, error) {
	switch cfg.Backend {
	case BackendRedis:
		slog.Info("Using redis cache backend")
		return NewRedisStore(cfg.RedisURL)
	case BackendMemory:
		slog.Info("Using in-memory cache backend", "size", cfg.MemorySize)
		return NewMemoryStore(cfg.MemorySize)
	default:
		slog.Info("Caching disabled")
		return NopStore{}, nil
	}
}
