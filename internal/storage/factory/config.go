package factory

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage/es"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage/pg"
)

type StorageConfig struct {
	storage.Type
	// Search selects the full-text provider. It defaults to Type.
	Search storage.Type
	Pg     *pg.PoolConfig
	Es     *es.ClientConfig
}

func LoadEnv() (*StorageConfig, error) {
	storageType := storage.Type(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		slog.Error("STORAGE_TYPE environment variable is not set")
		return nil, fmt.Errorf("STORAGE_TYPE environment variable is not set")
	}
	if storageType != storage.PG && storageType != storage.InMem {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", storageType)
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			storageType,
			[]storage.Type{storage.PG, storage.InMem})
	}

	search := storage.Type(os.Getenv("SEARCH_BACKEND"))
	if search == "" {
		search = storageType
	}
	switch {
	case search == storage.ES:
	case search == storageType:
	default:
		return nil, fmt.Errorf(
			"invalid SEARCH_BACKEND value: %s, expected %s or %s", search, storageType, storage.ES)
	}

	var pgCfg *pg.PoolConfig
	if storageType == storage.PG {
		pgCfg = &pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if pgCfg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PG_CONNECTION_STRING environment variable is not set")
		}
	}

	var esCfg *es.ClientConfig
	if search == storage.ES {
		cfg, err := es.LoadClientConfigFromEnv()
		if err != nil {
			return nil, err
		}
		if len(cfg.Addresses) == 0 || cfg.IndexName == "" {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", cfg.Addresses, "indexName", cfg.IndexName)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses or index name is missing")
		}
		esCfg = &cfg
	}

	return &StorageConfig{
		Type:   storageType,
		Search: search,
		Pg:     pgCfg,
		Es:     esCfg,
	}, nil
}
