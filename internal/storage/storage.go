package storage

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/google/uuid"
)

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	InMem Type = "in_mem"
)

// ArticleReader serves read-mostly article lookups.
type ArticleReader interface {
	// ArticlesByIDs returns the articles in the order of ids, skipping unknown ids.
	ArticlesByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Article, error)
	// ArticleLocations lists every article with its location, ordered by id.
	ArticleLocations(ctx context.Context) ([]domain.ArticleLocation, error)
}

// EventStore is the append-only log of user interaction events.
type EventStore interface {
	// Append persists event. It returns *apperr.InvalidReferenceError when the
	// referenced article does not exist, in which case nothing is written.
	Append(ctx context.Context, event domain.UserEvent) error
	// EventsSince returns every event created at or after since.
	EventsSince(ctx context.Context, since time.Time) ([]domain.EventSample, error)
}

// KeywordSearcher finds articles whose title or description contains any of
// the keywords, case-insensitively, ordered by static relevance.
type KeywordSearcher interface {
	SearchKeywords(ctx context.Context, keywords []string, limit int) ([]domain.Article, error)
}

// FullTextSearcher runs a relevance ranked search over the precomputed
// title+description index.
type FullTextSearcher interface {
	SearchFullText(ctx context.Context, query string, limit int) ([]domain.Article, error)
}

type Indexer interface {
	Save(ctx context.Context, article domain.Article) (uuid.UUID, error)
	SaveBulk(ctx context.Context, articles []domain.Article) error
}

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}
