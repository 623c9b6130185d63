package trending

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/apperr"
	"github.com/DjordjeVuckovic/news-pulse/internal/cache"
	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/geo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRanker struct {
	calls   atomic.Int32
	version uint64
	err     error
	gate    chan struct{}
}

func (r *countingRanker) Top(_ context.Context, req Request) ([]domain.RankedArticle, uint64, error) {
	r.calls.Add(1)
	if r.gate != nil {
		<-r.gate
	}
	if r.err != nil {
		return nil, 0, r.err
	}
	return []domain.RankedArticle{{Article: domain.Article{ID: uuid.New(), Location: req.Location}, TrendingScore: 1}}, r.version, nil
}

func newMemoryCache(t *testing.T) *cache.Cache {
	t.Helper()
	store, err := cache.NewMemoryStore(100)
	require.NoError(t, err)
	return cache.New(store)
}

func TestService_CachesByBucket(t *testing.T) {
	ranker := &countingRanker{version: 1}
	svc := NewService(ranker, newMemoryCache(t), geo.DefaultPrecision)

	first, err := svc.Trending(context.Background(), Request{Location: geo.Point{Lat: 44.8171, Lon: 20.4561}})
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, "44.82:20.46", first.Bucket)

	second, err := svc.Trending(context.Background(), Request{Location: geo.Point{Lat: 44.8174, Lon: 20.4558}})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Articles[0].Article.ID, second.Articles[0].Article.ID)
	assert.Equal(t, int32(1), ranker.calls.Load())
}

func TestService_RejectsMalformedRequest(t *testing.T) {
	tests := map[string]Request{
		"nan latitude":       {Location: geo.Point{Lat: math.NaN(), Lon: 20}},
		"infinite longitude": {Location: geo.Point{Lat: 44, Lon: math.Inf(1)}},
		"latitude too large": {Location: geo.Point{Lat: 91, Lon: 20}},
		"negative radius":    {Location: geo.Point{Lat: 44, Lon: 20}, RadiusMeters: -1},
		"nan radius":         {Location: geo.Point{Lat: 44, Lon: 20}, RadiusMeters: math.NaN()},
	}
	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			ranker := &countingRanker{version: 1}
			svc := NewService(ranker, newMemoryCache(t), geo.DefaultPrecision)

			_, err := svc.Trending(context.Background(), req)

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Zero(t, ranker.calls.Load())
		})
	}
}

func TestService_LimitAndRadiusPartitionTheCache(t *testing.T) {
	ranker := &countingRanker{version: 1}
	svc := NewService(ranker, newMemoryCache(t), geo.DefaultPrecision)
	loc := geo.Point{Lat: 10, Lon: 10}

	_, err := svc.Trending(context.Background(), Request{Location: loc, Limit: 5})
	require.NoError(t, err)
	_, err = svc.Trending(context.Background(), Request{Location: loc, Limit: 10})
	require.NoError(t, err)
	_, err = svc.Trending(context.Background(), Request{Location: loc, Limit: 5, RadiusMeters: 1000})
	require.NoError(t, err)
	_, err = svc.Trending(context.Background(), Request{Location: loc})
	require.NoError(t, err)

	assert.Equal(t, int32(3), ranker.calls.Load())
}

func TestService_UnpublishedSnapshotIsNotCached(t *testing.T) {
	ranker := &countingRanker{version: 0}
	svc := NewService(ranker, newMemoryCache(t), geo.DefaultPrecision)

	for i := 0; i < 2; i++ {
		_, err := svc.Trending(context.Background(), Request{Location: geo.Point{}})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), ranker.calls.Load())
}

func TestService_ErrorIsReturnedAndNotCached(t *testing.T) {
	ranker := &countingRanker{err: errors.New("db down")}
	svc := NewService(ranker, newMemoryCache(t), geo.DefaultPrecision)

	_, err := svc.Trending(context.Background(), Request{Location: geo.Point{}})
	require.Error(t, err)

	ranker.err = nil
	ranker.version = 1
	resp, err := svc.Trending(context.Background(), Request{Location: geo.Point{}})
	require.NoError(t, err)
	assert.False(t, resp.Cached)
}

func TestService_ConcurrentMissesCollapse(t *testing.T) {
	ranker := &countingRanker{version: 1, gate: make(chan struct{})}
	svc := NewService(ranker, cache.New(nil), geo.DefaultPrecision)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Trending(context.Background(), Request{Location: geo.Point{Lat: 1, Lon: 1}})
			assert.NoError(t, err)
		}()
	}

	require.Eventually(t, func() bool { return ranker.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(ranker.gate)
	wg.Wait()

	assert.Less(t, ranker.calls.Load(), int32(10))
}
