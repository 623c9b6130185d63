package trending

import (
	"context"
	"fmt"
	"sort"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/geo"
	"github.com/DjordjeVuckovic/news-pulse/pkg/utils"
	"github.com/google/uuid"
)

const (
	DefaultLimit = 5
	MaxLimit     = 50
)

type ArticleHydrator interface {
	ArticlesByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Article, error)
}

type Request struct {
	Location geo.Point
	Limit    int
	// RadiusMeters drops articles farther than this from Location. Zero means unbounded.
	RadiusMeters float64
}

// Resolver ranks the current snapshot for one reader location.
type Resolver struct {
	snapshots     *SnapshotStore
	articles      ArticleHydrator
	distanceScale float64
}

func NewResolver(snapshots *SnapshotStore, articles ArticleHydrator, distanceScale float64) *Resolver {
	if distanceScale <= 0 {
		distanceScale = DefaultDistanceScale
	}
	return &Resolver{
		snapshots:     snapshots,
		articles:      articles,
		distanceScale: distanceScale,
	}
}

type candidate struct {
	entry    Entry
	distance float64
	blended  float64
}

// Top returns up to req.Limit articles ordered by blended score. It reads the
// current snapshot only.
func (r *Resolver) Top(ctx context.Context, req Request) ([]domain.RankedArticle, uint64, error) {
	limit := ClampLimit(req.Limit)
	snap := r.snapshots.Current()

	candidates := make([]candidate, 0, len(snap.Entries))
	for _, e := range snap.Entries {
		d := geo.Distance(req.Location, e.Location)
		if req.RadiusMeters > 0 && d > req.RadiusMeters {
			continue
		}
		candidates = append(candidates, candidate{
			entry:    e,
			distance: d,
			blended:  Blend(e.Score, d, r.distanceScale),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].blended > candidates[j].blended
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	if len(candidates) == 0 {
		return []domain.RankedArticle{}, snap.Version, nil
	}

	ids := make([]uuid.UUID, len(candidates))
	for i, c := range candidates {
		ids[i] = c.entry.ArticleID
	}
	articles, err := r.articles.ArticlesByIDs(ctx, ids)
	if err != nil {
		return nil, snap.Version, fmt.Errorf("failed to load trending articles: %w", err)
	}

	byID := make(map[uuid.UUID]domain.Article, len(articles))
	for _, a := range articles {
		byID[a.ID] = a
	}

	ranked := make([]domain.RankedArticle, 0, len(candidates))
	for _, c := range candidates {
		a, ok := byID[c.entry.ArticleID]
		if !ok {
			continue
		}
		ranked = append(ranked, domain.RankedArticle{
			Article:        a,
			TrendingScore:  utils.RoundDecimal(c.entry.Score, domain.ScoreDecimalPlaces),
			BlendedScore:   utils.RoundDecimal(c.blended, domain.ScoreDecimalPlaces),
			DistanceMeters: utils.RoundDecimal(c.distance, 1),
		})
	}
	return ranked, snap.Version, nil
}

// ClampLimit applies the default for non-positive limits and caps at MaxLimit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
