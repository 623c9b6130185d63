package pg

import (
	"fmt"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/jackc/pgx/v5"
)

const articleColumns = `id, title, description, url, published_at, source_name, categories, relevance_score, latitude, longitude`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner, extra ...any) (domain.Article, error) {
	var a domain.Article
	dest := []any{
		&a.ID,
		&a.Title,
		&a.Description,
		&a.URL,
		&a.PublishedAt,
		&a.SourceName,
		&a.Categories,
		&a.RelevanceScore,
		&a.Location.Lat,
		&a.Location.Lon,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return domain.Article{}, fmt.Errorf("failed to scan article: %w", err)
	}
	return a, nil
}

func collectArticles(rows pgx.Rows) ([]domain.Article, error) {
	defer rows.Close()

	articles := make([]domain.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return articles, nil
}
