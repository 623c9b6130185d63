package in_mem

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/apperr"
	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/geo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) (*Store, []domain.Article) {
	t.Helper()
	articles := []domain.Article{
		{ID: uuid.New(), Title: "Elon Musk unveils rocket", Description: "SpaceX news", RelevanceScore: 0.9},
		{ID: uuid.New(), Title: "Belgrade marathon", Description: "Runners flood the streets", RelevanceScore: 0.3},
		{ID: uuid.New(), Title: "Model rocket club", Description: "Weekend fun", RelevanceScore: 0.5},
	}
	s := NewStore()
	require.NoError(t, s.SaveBulk(context.Background(), articles))
	return s, articles
}

func TestStore_SearchKeywords(t *testing.T) {
	s, articles := seeded(t)

	got, err := s.SearchKeywords(context.Background(), []string{"ROCKET", "runners"}, 5)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, articles[0].ID, got[0].ID)
	assert.Equal(t, articles[2].ID, got[1].ID)
	assert.Equal(t, articles[1].ID, got[2].ID)

	got, err = s.SearchKeywords(context.Background(), []string{"rocket"}, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, articles[0].ID, got[0].ID)
}

func TestStore_SearchKeywords_NoMatchIsEmptyNotNil(t *testing.T) {
	s, _ := seeded(t)

	got, err := s.SearchKeywords(context.Background(), []string{"volcano"}, 5)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStore_SearchFullText_TitleOutranksDescription(t *testing.T) {
	s := NewStore()
	inTitle := domain.Article{ID: uuid.New(), Title: "Storm warning", Description: "Coast"}
	inDesc := domain.Article{ID: uuid.New(), Title: "Weather", Description: "A storm is coming"}
	require.NoError(t, s.SaveBulk(context.Background(), []domain.Article{inDesc, inTitle}))

	got, err := s.SearchFullText(context.Background(), "storm!", 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, inTitle.ID, got[0].ID)
}

func TestStore_Append_UnknownArticle(t *testing.T) {
	s, _ := seeded(t)

	err := s.Append(context.Background(), domain.UserEvent{ID: uuid.New(), Kind: domain.EventView, ArticleID: uuid.New(), CreatedAt: time.Now()})

	var refErr *apperr.InvalidReferenceError
	require.ErrorAs(t, err, &refErr)

	events, err := s.EventsSince(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestStore_EventsSince(t *testing.T) {
	s, articles := seeded(t)
	now := time.Now()

	for _, created := range []time.Time{now.Add(-48 * time.Hour), now.Add(-time.Hour), now} {
		require.NoError(t, s.Append(context.Background(), domain.UserEvent{
			ID: uuid.New(), Kind: domain.EventClick, ArticleID: articles[0].ID, CreatedAt: created,
		}))
	}

	got, err := s.EventsSince(context.Background(), now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestStore_ArticleLocations_SortedByID(t *testing.T) {
	s, _ := seeded(t)
	_, err := s.Save(context.Background(), domain.Article{Title: "x", Location: geo.Point{Lat: 1, Lon: 2}})
	require.NoError(t, err)

	locations, err := s.ArticleLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, locations, 4)
	for i := 1; i < len(locations); i++ {
		assert.Less(t, locations[i-1].ID.String(), locations[i].ID.String())
	}
}

func TestStore_ConcurrentAppend(t *testing.T) {
	s, articles := seeded(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Append(context.Background(), domain.UserEvent{ID: uuid.New(), Kind: domain.EventView, ArticleID: articles[1].ID, CreatedAt: time.Now()})
		}()
	}
	wg.Wait()

	got, err := s.EventsSince(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Len(t, got, 50)
}
