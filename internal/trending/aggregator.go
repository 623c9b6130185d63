package trending

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/metrics"
)

const DefaultRefreshInterval = 5 * time.Minute

type ArticleSource interface {
	ArticleLocations(ctx context.Context) ([]domain.ArticleLocation, error)
}

type EventSource interface {
	EventsSince(ctx context.Context, since time.Time) ([]domain.EventSample, error)
}

// Aggregator rebuilds the trending snapshot from scratch on a fixed cycle.
type Aggregator struct {
	articles ArticleSource
	events   EventSource
	store    *SnapshotStore
	scorer   Scorer
	interval time.Duration
	now      func() time.Time

	// mu serialises rebuilds; readers go through store and never take it.
	mu sync.Mutex
}

type AggregatorOption func(*Aggregator)

func WithScorer(s Scorer) AggregatorOption {
	return func(a *Aggregator) {
		a.scorer = s
	}
}

func WithRefreshInterval(d time.Duration) AggregatorOption {
	return func(a *Aggregator) {
		if d > 0 {
			a.interval = d
		}
	}
}

func WithClock(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) {
		a.now = now
	}
}

func NewAggregator(articles ArticleSource, events EventSource, store *SnapshotStore, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		articles: articles,
		events:   events,
		store:    store,
		scorer:   DefaultScorer(),
		interval: DefaultRefreshInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Refresh recomputes every article's score and publishes the result. On error
// the previously published snapshot stays current.
func (a *Aggregator) Refresh(ctx context.Context) (*Snapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	start := time.Now()
	now := a.now()

	articles, err := a.articles.ArticleLocations(ctx)
	if err != nil {
		metrics.TrendingRefreshFailures.Inc()
		return nil, fmt.Errorf("failed to load articles: %w", err)
	}

	events, err := a.events.EventsSince(ctx, now.Add(-a.scorer.Window))
	if err != nil {
		metrics.TrendingRefreshFailures.Inc()
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	entries := a.scorer.Compute(articles, events, now)
	snap := a.store.Publish(entries, now)

	metrics.TrendingRefreshDuration.Observe(time.Since(start).Seconds())
	metrics.TrendingSnapshotArticles.Set(float64(len(entries)))
	metrics.TrendingSnapshotVersion.Set(float64(snap.Version))

	slog.Info("Trending snapshot refreshed",
		"version", snap.Version,
		"articles", len(entries),
		"events", len(events),
		"took", time.Since(start))

	return snap, nil
}

// Run refreshes immediately and then on every tick until ctx is cancelled.
func (a *Aggregator) Run(ctx context.Context) {
	slog.Info("Starting trending aggregator", "interval", a.interval)

	a.refreshLogged(ctx)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Trending aggregator stopped")
			return
		case <-ticker.C:
			a.refreshLogged(ctx)
		}
	}
}

func (a *Aggregator) refreshLogged(ctx context.Context) {
	if _, err := a.Refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error("Trending refresh failed, keeping previous snapshot",
			"error", err,
			"version", a.store.Current().Version)
	}
}
