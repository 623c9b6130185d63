package es

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/pkg/config/env"
	"github.com/DjordjeVuckovic/news-pulse/pkg/utils"
	"github.com/elastic/go-elasticsearch/v8"
)

const DefaultIndexName = "news_articles"

type ClientConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
	Bulk      BulkConfig
}

// BulkConfig tunes esutil.BulkIndexer. Zero values fall back to defaults.
type BulkConfig struct {
	Workers       int
	FlushBytes    int
	FlushInterval time.Duration
}

func (b BulkConfig) withDefaults() BulkConfig {
	if b.Workers <= 0 {
		b.Workers = 4
	}
	if b.FlushBytes <= 0 {
		b.FlushBytes = 5e+6
	}
	if b.FlushInterval <= 0 {
		b.FlushInterval = 30 * time.Second
	}
	return b
}

func LoadClientConfigFromEnv() (ClientConfig, error) {
	cfg := ClientConfig{
		Addresses: utils.RemoveEmptyStrings(strings.Split(env.String("ES_ADDRESSES", "http://localhost:9200"), ",")),
		IndexName: env.String("ES_INDEX_NAME", DefaultIndexName),
		Username:  env.String("ES_USERNAME", ""),
		Password:  env.String("ES_PASSWORD", ""),
	}

	var err error
	if cfg.Bulk.Workers, err = env.Int("ES_BULK_WORKERS", 0); err != nil {
		return ClientConfig{}, err
	}
	if cfg.Bulk.FlushInterval, err = env.Duration("ES_BULK_FLUSH_INTERVAL", 30*time.Second); err != nil {
		return ClientConfig{}, err
	}
	return cfg, nil
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	return elasticsearch.NewTypedClient(cfg)
}

type HealthChecker struct {
	client *elasticsearch.TypedClient
}

func NewHealthChecker(config ClientConfig) (*HealthChecker, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, err
	}
	return &HealthChecker{client: client}, nil
}

func (hc *HealthChecker) Name() string {
	return "elasticsearch"
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	ok, err := hc.client.Ping().Do(ctx)
	if err != nil {
		slog.Warn("Elasticsearch health check failed", "error", err)
		return false
	}
	return ok
}
