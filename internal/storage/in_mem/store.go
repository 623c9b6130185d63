package in_mem

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/DjordjeVuckovic/news-pulse/internal/apperr"
	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"github.com/google/uuid"
)

// Store keeps articles and events in process memory. It backs local runs and
// tests; all methods are safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	articles map[uuid.UUID]domain.Article
	events   []domain.UserEvent
}

func NewStore() *Store {
	return &Store{
		articles: make(map[uuid.UUID]domain.Article),
	}
}

func (s *Store) Save(_ context.Context, article domain.Article) (uuid.UUID, error) {
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	article.RelevanceScore = domain.ClampRelevance(article.RelevanceScore)

	s.mu.Lock()
	s.articles[article.ID] = article
	s.mu.Unlock()

	return article.ID, nil
}

func (s *Store) SaveBulk(ctx context.Context, articles []domain.Article) error {
	for _, a := range articles {
		if _, err := s.Save(ctx, a); err != nil {
			return err
		}
	}
	slog.Debug("Saved articles to in-memory storage", "count", len(articles))
	return nil
}

func (s *Store) ArticlesByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Article, 0, len(ids))
	for _, id := range ids {
		if a, ok := s.articles[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Store) ArticleLocations(_ context.Context) ([]domain.ArticleLocation, error) {
	s.mu.RLock()
	locations := make([]domain.ArticleLocation, 0, len(s.articles))
	for id, a := range s.articles {
		locations = append(locations, domain.ArticleLocation{ID: id, Location: a.Location})
	}
	s.mu.RUnlock()

	sort.Slice(locations, func(i, j int) bool {
		return locations[i].ID.String() < locations[j].ID.String()
	})
	return locations, nil
}

func (s *Store) Append(_ context.Context, event domain.UserEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.articles[event.ArticleID]; !ok {
		return apperr.NewInvalidReference("article", event.ArticleID.String())
	}
	s.events = append(s.events, event)
	return nil
}

func (s *Store) EventsSince(_ context.Context, since time.Time) ([]domain.EventSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var samples []domain.EventSample
	for _, e := range s.events {
		if e.CreatedAt.Before(since) {
			continue
		}
		samples = append(samples, domain.EventSample{
			ArticleID: e.ArticleID,
			Kind:      e.Kind,
			CreatedAt: e.CreatedAt,
		})
	}
	return samples, nil
}

func (s *Store) SearchKeywords(_ context.Context, keywords []string, limit int) ([]domain.Article, error) {
	keywords = storage.NormalizeKeywords(keywords)
	if len(keywords) == 0 {
		return []domain.Article{}, nil
	}

	s.mu.RLock()
	var matches []domain.Article
	for _, a := range s.articles {
		title, desc := strings.ToLower(a.Title), strings.ToLower(a.Description)
		for _, kw := range keywords {
			if strings.Contains(title, kw) || strings.Contains(desc, kw) {
				matches = append(matches, a)
				break
			}
		}
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].RelevanceScore != matches[j].RelevanceScore {
			return matches[i].RelevanceScore > matches[j].RelevanceScore
		}
		return matches[i].ID.String() < matches[j].ID.String()
	})
	return truncate(matches, limit), nil
}

// SearchFullText scores articles by query term overlap, counting title hits
// twice as heavily as description hits.
func (s *Store) SearchFullText(_ context.Context, query string, limit int) ([]domain.Article, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return []domain.Article{}, nil
	}

	type scored struct {
		article domain.Article
		rank    int
	}

	s.mu.RLock()
	var hits []scored
	for _, a := range s.articles {
		title, desc := termSet(a.Title), termSet(a.Description)
		rank := 0
		for _, t := range terms {
			if title[t] {
				rank += 2
			}
			if desc[t] {
				rank++
			}
		}
		if rank > 0 {
			hits = append(hits, scored{article: a, rank: rank})
		}
	}
	s.mu.RUnlock()

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].rank != hits[j].rank {
			return hits[i].rank > hits[j].rank
		}
		return hits[i].article.ID.String() > hits[j].article.ID.String()
	})

	out := make([]domain.Article, len(hits))
	for i, h := range hits {
		out[i] = h.article
	}
	return truncate(out, limit), nil
}

func tokenize(text string) []string {
	return storage.NormalizeKeywords(strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}))
}

func termSet(text string) map[string]bool {
	terms := tokenize(text)
	set := make(map[string]bool, len(terms))
	for _, t := range terms {
		set[t] = true
	}
	return set
}

func truncate(articles []domain.Article, limit int) []domain.Article {
	if articles == nil {
		return []domain.Article{}
	}
	if limit > 0 && len(articles) > limit {
		return articles[:limit]
	}
	return articles
}

var (
	_ storage.ArticleReader    = (*Store)(nil)
	_ storage.EventStore       = (*Store)(nil)
	_ storage.KeywordSearcher  = (*Store)(nil)
	_ storage.FullTextSearcher = (*Store)(nil)
	_ storage.Indexer          = (*Store)(nil)
)
