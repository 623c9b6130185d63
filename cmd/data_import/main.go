package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/news-pulse/internal/collector"
	"github.com/DjordjeVuckovic/news-pulse/internal/processor"
	"github.com/DjordjeVuckovic/news-pulse/internal/reader"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage/factory"
)

func main() {
	cfg, err := NewAppConfig().Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *DataImportConfig) error {
	mappingFile, err := os.Open(cfg.DataMappingPath)
	if err != nil {
		return fmt.Errorf("open mapping: %w", err)
	}
	defer mappingFile.Close()

	mappingCfg, err := reader.NewYAMLConfigLoader(mappingFile).Load(true)
	if err != nil {
		return fmt.Errorf("load mapping: %w", err)
	}
	mapper, err := reader.NewArticleMapper(mappingCfg)
	if err != nil {
		return err
	}

	dataFile, err := os.Open(cfg.DatasetPath)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer dataFile.Close()

	c := collector.NewArticleCollector(reader.NewCSVReader(dataFile), mapper)
	c.Workers = cfg.Workers

	indexers, closeAll, err := newIndexers(ctx, cfg.StorageConfig)
	if err != nil {
		return err
	}
	defer closeAll()

	opts := []processor.PipelineOption{processor.WithName(mappingCfg.Dataset)}
	if cfg.BulkOptions.Enabled {
		opts = append(opts, processor.WithBulk(cfg.BulkOptions.Size))
	}

	stats, err := processor.NewPipeline(c, indexers, opts...).Run(ctx)
	if err != nil {
		return err
	}
	slog.Info("Import finished", "processed", stats.Processed, "failed", stats.Failed)
	return nil
}

// newIndexers writes to the primary store and, when search runs on
// Elasticsearch, to the search index as well.
func newIndexers(ctx context.Context, cfg *factory.StorageConfig) ([]storage.Indexer, func(), error) {
	types := []storage.Type{cfg.Type}
	if cfg.Search != cfg.Type {
		types = append(types, cfg.Search)
	}

	var (
		indexers []storage.Indexer
		closers  []func()
	)
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	for _, t := range types {
		slog.Info("Creating indexer", "storageType", t)
		idx, closer, err := factory.NewIndexer(ctx, t, cfg)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("create %s indexer: %w", t, err)
		}
		indexers = append(indexers, idx)
		closers = append(closers, closer)
	}

	return indexers, closeAll, nil
}
