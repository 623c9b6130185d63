package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/news-pulse/internal/storage/factory"
	"github.com/DjordjeVuckovic/news-pulse/pkg/config/env"
)

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type AppConfig struct {
	ENV string
}

type DataImportConfig struct {
	DatasetPath     string
	DataMappingPath string
	Workers         int
	BulkOptions     struct {
		Enabled bool
		Size    int
	}
	StorageConfig *factory.StorageConfig
}

func (as *AppConfig) Load() (*DataImportConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/data_import/.env")
	if err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("storage config: %w", err)
	}

	cfg := &DataImportConfig{
		DatasetPath:     os.Getenv("DATASET_PATH"),
		DataMappingPath: env.String("MAPPING_CONFIG_PATH", "cmd/data_import/config/mapping.yaml"),
		StorageConfig:   storageCfg,
	}
	if cfg.DatasetPath == "" {
		return nil, fmt.Errorf("DATASET_PATH environment variable is not set")
	}

	if cfg.Workers, err = env.Int("IMPORT_WORKERS", 10); err != nil {
		return nil, err
	}
	if cfg.BulkOptions.Enabled, err = env.Bool("BULK_ENABLED", true); err != nil {
		return nil, err
	}
	if cfg.BulkOptions.Size, err = env.Int("BULK_SIZE", 5_000); err != nil {
		return nil, err
	}

	return cfg, nil
}
