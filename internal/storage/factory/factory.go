package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage/es"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage/pg"
	"github.com/DjordjeVuckovic/news-pulse/pkg/server"
)

// Stores bundles the storage ports the service depends on.
type Stores struct {
	Articles storage.ArticleReader
	Events   storage.EventStore
	Keywords storage.KeywordSearcher
	FullText storage.FullTextSearcher
	Indexer  storage.Indexer
	Health   []server.HealthChecker

	closers []func()
}

func (s *Stores) Close() {
	for _, c := range s.closers {
		c()
	}
}

// Open connects the configured backends.
func Open(ctx context.Context, cfg *StorageConfig) (*Stores, error) {
	stores := &Stores{}

	switch cfg.Type {
	case storage.PG:
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		articles := pg.NewArticleStore(pool)
		stores.Articles = articles
		stores.Keywords = articles
		stores.Events = pg.NewEventStore(pool)
		stores.FullText = pg.NewSearcher(pool)
		stores.Indexer = pg.NewIndexer(pool)
		stores.Health = append(stores.Health, pg.NewHealthChecker(pool))
		stores.closers = append(stores.closers, pool.Close)

	case storage.InMem:
		mem := in_mem.NewStore()
		stores.Articles = mem
		stores.Keywords = mem
		stores.Events = mem
		stores.FullText = mem
		stores.Indexer = mem

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}

	if cfg.Search == storage.ES {
		searcher, err := es.NewSearcher(*cfg.Es)
		if err != nil {
			stores.Close()
			return nil, err
		}
		stores.FullText = searcher

		hc, err := es.NewHealthChecker(*cfg.Es)
		if err != nil {
			stores.Close()
			return nil, err
		}
		stores.Health = append(stores.Health, hc)
	}

	slog.Info("Storage opened", "type", cfg.Type, "search", cfg.Search)
	return stores, nil
}

// NewIndexer builds the writer used by the importer for the given backend.
func NewIndexer(ctx context.Context, storageType storage.Type, cfg *StorageConfig) (storage.Indexer, func(), error) {
	switch storageType {
	case storage.PG:
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		return pg.NewIndexer(pool), pool.Close, nil

	case storage.ES:
		indexer, err := es.NewIndexer(ctx, *cfg.Es)
		if err != nil {
			return nil, nil, err
		}
		return indexer, func() {}, nil

	case storage.InMem:
		return in_mem.NewStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), storageType)
	}
}
