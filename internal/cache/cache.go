package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/metrics"
)

// ErrMiss is returned by a Store when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

const DefaultOpTimeout = 150 * time.Millisecond

// Store is a string-keyed byte store with per-entry TTL.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache is the JSON facade over a Store used by the request paths.
// It never returns errors: an unreachable, slow or corrupt backend reads as a miss.
type Cache struct {
	store     Store
	opTimeout time.Duration
}

type Option func(*Cache)

func WithOpTimeout(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.opTimeout = d
		}
	}
}

func New(store Store, opts ...Option) *Cache {
	if store == nil {
		store = NopStore{}
	}
	c := &Cache{
		store:     store,
		opTimeout: DefaultOpTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get decodes the value stored under key into dst and reports whether it did.
func (c *Cache) Get(ctx context.Context, key string, dst any) bool {
	ns := namespace(key)

	opCtx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	raw, err := c.store.Get(opCtx, key)
	if err != nil {
		if errors.Is(err, ErrMiss) {
			metrics.CacheRequests.WithLabelValues(ns, metrics.ResultMiss).Inc()
			return false
		}
		metrics.CacheRequests.WithLabelValues(ns, metrics.ResultError).Inc()
		slog.Warn("Cache get failed, treating as miss", "key", key, "error", err)
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		metrics.CacheRequests.WithLabelValues(ns, metrics.ResultError).Inc()
		slog.Warn("Cached value could not be decoded, treating as miss", "key", key, "error", err)
		return false
	}

	metrics.CacheRequests.WithLabelValues(ns, metrics.ResultHit).Inc()
	return true
}

// Set stores value under key for ttl. Failures are logged and dropped.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Warn("Cache value could not be encoded", "key", key, "error", err)
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	if err := c.store.Set(opCtx, key, raw, ttl); err != nil {
		slog.Warn("Cache set failed", "key", key, "error", err)
	}
}

func namespace(key string) string {
	ns, _, found := strings.Cut(key, ":")
	if !found {
		return "default"
	}
	return ns
}

// NopStore is the backend used when caching is disabled.
type NopStore struct{}

func (NopStore) Get(context.Context, string) ([]byte, error) {
	return nil, ErrMiss
}

func (NopStore) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

var _ Store = NopStore{}
