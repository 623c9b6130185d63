package es

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/google/uuid"
)

const maxReportedFailures = 5

// Indexer writes articles into the search index, creating it on first use.
type Indexer struct {
	client       *elasticsearch.TypedClient
	indexName    string
	bulk         BulkConfig
	indexBuilder *IndexBuilder
}

func NewIndexer(ctx context.Context, config ClientConfig) (*Indexer, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	indexer := &Indexer{
		client:       client,
		indexName:    config.IndexName,
		bulk:         config.Bulk.withDefaults(),
		indexBuilder: NewIndexBuilder(),
	}
	if err := indexer.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}
	return indexer, nil
}

func (e *Indexer) Save(ctx context.Context, article domain.Article) (uuid.UUID, error) {
	doc := e.indexBuilder.toDocument(article, time.Now())

	if _, err := e.client.Index(e.indexName).Id(doc.ID).Document(doc).Do(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("index article %s: %w", doc.ID, err)
	}
	return uuid.Parse(doc.ID)
}

// bulkReport counts outcomes reported by the bulk indexer workers.
type bulkReport struct {
	mu       sync.Mutex
	indexed  int
	failed   int
	failures []error
}

func (r *bulkReport) ok() {
	r.mu.Lock()
	r.indexed++
	r.mu.Unlock()
}

func (r *bulkReport) fail(id string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed++
	if len(r.failures) < maxReportedFailures {
		r.failures = append(r.failures, fmt.Errorf("article %s: %w", id, err))
	}
}

func (r *bulkReport) err(total int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failed == 0 {
		return nil
	}
	return errors.Join(append([]error{fmt.Errorf("%d of %d articles not indexed", r.failed, total)}, r.failures...)...)
}

func itemError(res esutil.BulkIndexerResponseItem, err error) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("status %d: %s: %s", res.Status, res.Error.Type, res.Error.Reason)
}

func (e *Indexer) SaveBulk(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         e.indexName,
		Client:        e.client,
		NumWorkers:    e.bulk.Workers,
		FlushBytes:    e.bulk.FlushBytes,
		FlushInterval: e.bulk.FlushInterval,
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	report := &bulkReport{}
	now := time.Now()
	for _, article := range articles {
		doc := e.indexBuilder.toDocument(article, now)
		body, err := json.Marshal(doc)
		if err != nil {
			report.fail(doc.ID, err)
			continue
		}
		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(body),
			OnSuccess: func(context.Context, esutil.BulkIndexerItem, esutil.BulkIndexerResponseItem) {
				report.ok()
			},
			OnFailure: func(_ context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				report.fail(item.DocumentID, itemError(res, err))
			},
		})
		if err != nil {
			report.fail(doc.ID, err)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	stats := bi.Stats()
	slog.Info("Articles bulk indexed",
		"index", e.indexName,
		"indexed", report.indexed,
		"failed", report.failed,
		"requests", stats.NumRequests,
		"flushedBytes", stats.FlushedBytes)

	return report.err(len(articles))
}

func (e *Indexer) EnsureIndex(ctx context.Context) error {
	exists, err := e.client.Indices.Exists(e.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		slog.Debug("Search index present", "index", e.indexName)
		return nil
	}

	settings := e.indexBuilder.buildSettings()
	mappings := e.indexBuilder.buildMapping()
	res, err := e.client.Indices.Create(e.indexName).
		Settings(&settings).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	if !res.Acknowledged {
		return fmt.Errorf("creation of index %s was not acknowledged", e.indexName)
	}

	slog.Info("Search index created", "index", e.indexName)
	return nil
}

var _ storage.Indexer = (*Indexer)(nil)
