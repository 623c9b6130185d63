package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var articleInsertColumns = []string{
	"id", "title", "description", "url", "published_at", "source_name",
	"categories", "relevance_score", "latitude", "longitude",
}

type Indexer struct {
	db DB
}

func NewIndexer(pool *ConnectionPool) *Indexer {
	return &Indexer{db: pool.conn}
}

func NewIndexerWithDB(db DB) *Indexer {
	return &Indexer{db: db}
}

func (s *Indexer) Save(ctx context.Context, article domain.Article) (uuid.UUID, error) {
	article = withDefaults(article, time.Now())

	cmd := `
        INSERT INTO articles (id, title, description, url, published_at, source_name, categories, relevance_score, latitude, longitude)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id;
    `
	var id uuid.UUID
	err := s.db.QueryRow(ctx, cmd, articleRow(article)...).Scan(&id)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to insert article: %w", err)
	}

	return id, nil
}

func (s *Indexer) SaveBulk(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	rows := make([][]any, len(articles))
	now := time.Now()
	for i, a := range articles {
		rows[i] = articleRow(withDefaults(a, now))
	}

	_, err := s.db.CopyFrom(
		ctx,
		pgx.Identifier{"articles"},
		articleInsertColumns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert articles: %w", err)
	}
	return nil
}

func withDefaults(a domain.Article, now time.Time) domain.Article {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.PublishedAt.IsZero() {
		a.PublishedAt = now
	}
	if a.Categories == nil {
		a.Categories = []string{}
	}
	a.RelevanceScore = domain.ClampRelevance(a.RelevanceScore)
	return a
}

func articleRow(a domain.Article) []any {
	return []any{
		a.ID,
		a.Title,
		a.Description,
		a.URL,
		a.PublishedAt,
		a.SourceName,
		a.Categories,
		a.RelevanceScore,
		a.Location.Lat,
		a.Location.Lon,
	}
}

var _ storage.Indexer = (*Indexer)(nil)
