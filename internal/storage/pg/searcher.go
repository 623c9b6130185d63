package pg

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
)

// Searcher ranks articles against the generated search_vector column.
type Searcher struct {
	db DB
}

func NewSearcher(pool *ConnectionPool) *Searcher {
	return &Searcher{db: pool.conn}
}

func NewSearcherWithDB(db DB) *Searcher {
	return &Searcher{db: db}
}

func (r *Searcher) SearchFullText(ctx context.Context, query string, limit int) ([]domain.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Article{}, nil
	}

	slog.Info("Executing pg full-text search", "query", query, "limit", limit)

	sql := `
		SELECT ` + articleColumns + `,
			ts_rank(search_vector, plainto_tsquery('english', $1)) AS rank
		FROM articles
		WHERE search_vector @@ plainto_tsquery('english', $1)
		ORDER BY rank DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, sql, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer rows.Close()

	articles := make([]domain.Article, 0)
	for rows.Next() {
		var rank float64
		a, err := scanArticle(rows, &rank)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	slog.Info("PG search results fetched", "matches", len(articles))
	return articles, nil
}

var _ storage.FullTextSearcher = (*Searcher)(nil)
