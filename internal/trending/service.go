package trending

import (
	"context"
	"math"

	"github.com/DjordjeVuckovic/news-pulse/internal/apperr"
	"github.com/DjordjeVuckovic/news-pulse/internal/cache"
	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/geo"
	"golang.org/x/sync/singleflight"
)

type Ranker interface {
	Top(ctx context.Context, req Request) ([]domain.RankedArticle, uint64, error)
}

type Response struct {
	Articles        []domain.RankedArticle `json:"articles"`
	Bucket          string                 `json:"bucket"`
	SnapshotVersion uint64                 `json:"snapshotVersion"`
	Cached          bool                   `json:"cached"`
}

// Service is the cached entry point for trending lookups. Results are shared
// by every reader in the same geo bucket for cache.TrendingTTL.
type Service struct {
	ranker    Ranker
	cache     *cache.Cache
	precision int
	group     singleflight.Group
}

func NewService(ranker Ranker, c *cache.Cache, precision int) *Service {
	if c == nil {
		c = cache.New(nil)
	}
	return &Service{
		ranker:    ranker,
		cache:     c,
		precision: precision,
	}
}

func (s *Service) Trending(ctx context.Context, req Request) (Response, error) {
	if err := req.Location.Validate(); err != nil {
		return Response{}, apperr.NewValidationWrap("invalid location", err)
	}
	if math.IsNaN(req.RadiusMeters) || req.RadiusMeters < 0 {
		return Response{}, apperr.NewValidation("radius must not be negative")
	}

	req.Limit = ClampLimit(req.Limit)
	bucket := geo.Bucket(req.Location.Lat, req.Location.Lon, s.precision)
	key := cache.TrendingKey(bucket, req.Limit, req.RadiusMeters)

	var cached Response
	if s.cache.Get(ctx, key, &cached) {
		cached.Cached = true
		return cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		articles, version, err := s.ranker.Top(ctx, req)
		if err != nil {
			return Response{}, err
		}
		resp := Response{
			Articles:        articles,
			Bucket:          bucket,
			SnapshotVersion: version,
		}
		// an unpublished snapshot would pin an empty answer for the whole TTL
		if version > 0 {
			s.cache.Set(ctx, key, resp, cache.TrendingTTL)
		}
		return resp, nil
	})
	if err != nil {
		return Response{}, err
	}
	return v.(Response), nil
}
