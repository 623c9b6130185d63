package query

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
)

const (
	StrategyKeyword  = "keyword"
	StrategyFullText = "full_text"
	StrategyNone     = "none"
)

// Strategy is one step of the candidate search chain. Returning no articles
// hands over to the next strategy.
type Strategy interface {
	Name() string
	Find(ctx context.Context, text string, analysis domain.QueryAnalysis, limit int) ([]domain.Article, error)
}

// KeywordStrategy matches the oracle's keywords as substrings of title or description.
type KeywordStrategy struct {
	searcher storage.KeywordSearcher
}

func NewKeywordStrategy(searcher storage.KeywordSearcher) *KeywordStrategy {
	return &KeywordStrategy{searcher: searcher}
}

func (s *KeywordStrategy) Name() string {
	return StrategyKeyword
}

func (s *KeywordStrategy) Find(ctx context.Context, _ string, analysis domain.QueryAnalysis, limit int) ([]domain.Article, error) {
	if len(analysis.Keywords) == 0 {
		return nil, nil
	}
	articles, err := s.searcher.SearchKeywords(ctx, analysis.Keywords, limit)
	if err != nil {
		return nil, fmt.Errorf("keyword search failed: %w", err)
	}
	return articles, nil
}

// FullTextStrategy runs the raw query text against the full-text index.
type FullTextStrategy struct {
	searcher storage.FullTextSearcher
}

func NewFullTextStrategy(searcher storage.FullTextSearcher) *FullTextStrategy {
	return &FullTextStrategy{searcher: searcher}
}

func (s *FullTextStrategy) Name() string {
	return StrategyFullText
}

func (s *FullTextStrategy) Find(ctx context.Context, text string, _ domain.QueryAnalysis, limit int) ([]domain.Article, error) {
	articles, err := s.searcher.SearchFullText(ctx, text, limit)
	if err != nil {
		return nil, fmt.Errorf("full-text search failed: %w", err)
	}
	return articles, nil
}
