//go:build integration

package es

import (
	"context"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/geo"
	pkgtesting "github.com/DjordjeVuckovic/news-pulse/pkg/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_IndexAndSearch(t *testing.T) {
	ctx := context.Background()
	container := pkgtesting.NewESContainer(ctx, t)
	cfg := ClientConfig{Addresses: container.Addresses(), IndexName: "news_articles_test"}

	indexer, err := NewIndexer(ctx, cfg)
	require.NoError(t, err)

	target := uuid.New()
	err = indexer.SaveBulk(ctx, []domain.Article{
		{ID: target, Title: "Heatwave grips Europe", Description: "Record temperatures", URL: "https://example.com/1", PublishedAt: time.Now(), Location: geo.Point{Lat: 48.8, Lon: 2.3}},
		{ID: uuid.New(), Title: "Football final", Description: "A late winner", URL: "https://example.com/2", PublishedAt: time.Now(), Location: geo.Point{Lat: 51.5, Lon: -0.1}},
	})
	require.NoError(t, err)

	_, err = indexer.client.Indices.Refresh().Index(cfg.IndexName).Do(ctx)
	require.NoError(t, err)

	searcher, err := NewSearcher(cfg)
	require.NoError(t, err)

	got, err := searcher.SearchFullText(ctx, "heatwave temperatures", 5)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, target, got[0].ID)
}
