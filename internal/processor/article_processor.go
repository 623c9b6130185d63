package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/collector"
	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"github.com/google/uuid"
)

const defaultBatchSize = 1000

type Pipeline interface {
	Run(ctx context.Context) (Stats, error)
}

type BulkOptions struct {
	Enabled bool
	Size    int
}

type PipelineConfig struct {
	Name string
	Bulk *BulkOptions
}

// Stats counts articles, not batches, except for Batches itself.
type Stats struct {
	Processed int
	Failed    int
	Batches   int
}

// ArticlePipeline moves collected articles into one or more indexers. Every
// indexer receives the same article ids.
type ArticlePipeline struct {
	collector collector.Collector[domain.Article]
	indexers  []storage.Indexer
	config    *PipelineConfig
	now       func() time.Time
}

type PipelineOption func(pipeline *ArticlePipeline)

func WithBulk(size int) PipelineOption {
	return func(pipeline *ArticlePipeline) {
		if size <= 0 {
			size = defaultBatchSize
		}
		pipeline.config.Bulk = &BulkOptions{Enabled: true, Size: size}
	}
}

func WithName(name string) PipelineOption {
	return func(pipeline *ArticlePipeline) {
		pipeline.config.Name = name
	}
}

func NewPipeline(c collector.Collector[domain.Article], indexers []storage.Indexer, opts ...PipelineOption) *ArticlePipeline {
	p := &ArticlePipeline{
		collector: c,
		indexers:  indexers,
		config: &PipelineConfig{
			Name: "article-pipeline",
			Bulk: &BulkOptions{
				Enabled: false,
				Size:    defaultBatchSize,
			},
		},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *ArticlePipeline) Run(ctx context.Context) (Stats, error) {
	if len(p.indexers) == 0 {
		return Stats{}, errors.New("pipeline has no indexers")
	}

	start := p.now()
	slog.Info("Starting pipeline run",
		"pipeline", p.config.Name,
		"indexers", len(p.indexers),
		"bulk_enabled", p.config.Bulk.Enabled,
		"batch_size", p.config.Bulk.Size,
	)

	results, err := p.collector.Collect(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("collect articles: %w", err)
	}

	var (
		stats  Stats
		runErr error
	)
	if p.config.Bulk.Enabled {
		stats, runErr = p.processBatch(ctx, results)
	} else {
		stats, runErr = p.processBasic(ctx, results)
	}

	slog.Info("Pipeline run completed",
		"pipeline", p.config.Name,
		"duration", time.Since(start),
		"processed", stats.Processed,
		"failed", stats.Failed,
		"batches", stats.Batches,
		"error", runErr,
	)

	return stats, runErr
}

// prepare assigns the id and defaults up front so every indexer stores the same row.
func (p *ArticlePipeline) prepare(a domain.Article) domain.Article {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.PublishedAt.IsZero() {
		a.PublishedAt = p.now().UTC()
	}
	a.RelevanceScore = domain.ClampRelevance(a.RelevanceScore)
	return a
}

func (p *ArticlePipeline) save(ctx context.Context, a domain.Article) error {
	var errs []error
	for _, idx := range p.indexers {
		if _, err := idx.Save(ctx, a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *ArticlePipeline) saveBulk(ctx context.Context, articles []domain.Article) error {
	var errs []error
	for _, idx := range p.indexers {
		if err := idx.SaveBulk(ctx, articles); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *ArticlePipeline) processBasic(ctx context.Context, results <-chan collector.Result[domain.Article]) (Stats, error) {
	var stats Stats

	for {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		case res, ok := <-results:
			if !ok {
				return stats, nil
			}

			if res.Err != nil {
				slog.Warn("Skipping record", "error", res.Err, "pipeline", p.config.Name)
				stats.Failed++
				continue
			}

			article := p.prepare(res.Result)
			if err := p.save(ctx, article); err != nil {
				slog.Error("Error saving article",
					"error", err,
					"pipeline", p.config.Name,
					"title", article.Title,
				)
				stats.Failed++
				continue
			}
			slog.Debug("Article saved", "id", article.ID, "pipeline", p.config.Name)
			stats.Processed++
		}
	}
}

func (p *ArticlePipeline) processBatch(ctx context.Context, results <-chan collector.Result[domain.Article]) (Stats, error) {
	var stats Stats
	articles := make([]domain.Article, 0, p.config.Bulk.Size)

	flush := func() {
		if len(articles) == 0 {
			return
		}
		if err := p.saveBulk(ctx, articles); err != nil {
			slog.Error("Error saving bulk articles",
				"error", err,
				"count", len(articles),
				"pipeline", p.config.Name,
			)
			stats.Failed += len(articles)
		} else {
			stats.Processed += len(articles)
			stats.Batches++
			slog.Info("Bulk articles saved",
				"count", len(articles),
				"pipeline", p.config.Name,
				"batch", stats.Batches,
			)
		}
		articles = articles[:0]
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("Pipeline context cancelled",
				"pipeline", p.config.Name,
				"pending_batch", len(articles),
			)
			return stats, ctx.Err()
		case res, ok := <-results:
			if !ok {
				flush()
				return stats, nil
			}

			if res.Err != nil {
				slog.Warn("Skipping record", "error", res.Err, "pipeline", p.config.Name)
				stats.Failed++
				continue
			}

			articles = append(articles, p.prepare(res.Result))
			if len(articles) >= p.config.Bulk.Size {
				flush()
			}
		}
	}
}
