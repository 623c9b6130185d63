package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/operator"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
)

// searchFields boosts title matches over description matches.
var searchFields = []string{"title^2", "description"}

type Searcher struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewSearcher(config ClientConfig) (*Searcher, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return &Searcher{
		client:    client,
		indexName: config.IndexName,
	}, nil
}

// SearchFullText runs a BM25 multi_match over title and description.
func (r *Searcher) SearchFullText(ctx context.Context, query string, limit int) ([]domain.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Article{}, nil
	}

	slog.Info("Executing es multi_match search", "query", query, "fields", searchFields, "limit", limit)

	or := operator.Or
	sortOrderDesc := sortorder.Desc
	res, err := r.client.Search().
		Index(r.indexName).
		Query(&types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:    query,
				Fields:   searchFields,
				Operator: &or,
			},
		}).
		Size(limit).
		TrackScores(true).
		Sort(
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"_score": {Order: &sortOrderDesc},
				},
			},
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"id": {Order: &sortOrderDesc},
				},
			},
		).
		Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch query failed", "error", err, "query", query)
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}

	articles, err := mapHits(res.Hits.Hits)
	if err != nil {
		return nil, fmt.Errorf("failed to map search results: %w", err)
	}

	slog.Info("ES search results fetched", "returned_count", len(articles))
	return articles, nil
}

func mapHits(hits []types.Hit) ([]domain.Article, error) {
	articles := make([]domain.Article, 0, len(hits))
	for _, hit := range hits {
		var doc ArticleDocument
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
		article, err := doc.toArticle()
		if err != nil {
			return nil, fmt.Errorf("invalid document id %q: %w", doc.ID, err)
		}
		articles = append(articles, article)
	}
	return articles, nil
}

var _ storage.FullTextSearcher = (*Searcher)(nil)
