package pg

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"github.com/google/uuid"
)

type ArticleStore struct {
	db DB
}

func NewArticleStore(pool *ConnectionPool) *ArticleStore {
	return &ArticleStore{db: pool.conn}
}

func NewArticleStoreWithDB(db DB) *ArticleStore {
	return &ArticleStore{db: db}
}

func (s *ArticleStore) ArticlesByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Article, error) {
	if len(ids) == 0 {
		return []domain.Article{}, nil
	}

	sql := `SELECT ` + articleColumns + ` FROM articles WHERE id = ANY($1)`
	rows, err := s.db.Query(ctx, sql, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles by id: %w", err)
	}

	found, err := collectArticles(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]domain.Article, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}

	ordered := make([]domain.Article, 0, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			ordered = append(ordered, a)
		}
	}
	return ordered, nil
}

func (s *ArticleStore) ArticleLocations(ctx context.Context) ([]domain.ArticleLocation, error) {
	rows, err := s.db.Query(ctx, `SELECT id, latitude, longitude FROM articles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query article locations: %w", err)
	}
	defer rows.Close()

	var locations []domain.ArticleLocation
	for rows.Next() {
		var l domain.ArticleLocation
		if err := rows.Scan(&l.ID, &l.Location.Lat, &l.Location.Lon); err != nil {
			return nil, fmt.Errorf("failed to scan article location: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return locations, nil
}

// SearchKeywords matches each keyword as a case-insensitive substring of the
// title or description and returns the union ordered by relevance score.
func (s *ArticleStore) SearchKeywords(ctx context.Context, keywords []string, limit int) ([]domain.Article, error) {
	keywords = storage.NormalizeKeywords(keywords)
	if len(keywords) == 0 {
		return []domain.Article{}, nil
	}

	patterns := make([]string, len(keywords))
	for i, kw := range keywords {
		patterns[i] = "%" + escapeLike(kw) + "%"
	}

	slog.Debug("Executing pg keyword search", "patterns", patterns, "limit", limit)

	sql := `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE title ILIKE ANY($1) OR description ILIKE ANY($1)
		ORDER BY relevance_score DESC, id
		LIMIT $2
	`
	rows, err := s.db.Query(ctx, sql, patterns, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute keyword search: %w", err)
	}
	return collectArticles(rows)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var (
	_ storage.ArticleReader   = (*ArticleStore)(nil)
	_ storage.KeywordSearcher = (*ArticleStore)(nil)
)
