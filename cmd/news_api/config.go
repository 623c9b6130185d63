package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/news-pulse/internal/cache"
	"github.com/DjordjeVuckovic/news-pulse/internal/llm"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage/factory"
	"github.com/DjordjeVuckovic/news-pulse/internal/trending"
	"github.com/DjordjeVuckovic/news-pulse/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type NewsApiConfig struct {
	LogLevel      slog.Level
	StorageConfig *factory.StorageConfig
	CacheConfig   *cache.Config
	LLMConfig     *llm.Config
	Trending      trending.Config
}

func (as *AppConfig) Load() (*NewsApiConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/news_api/.env")
	if err != nil {
		slog.Info("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(env.String("LOG_LEVEL", "INFO"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("storage config: %w", err)
	}

	cacheCfg, err := cache.LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("cache config: %w", err)
	}

	llmCfg, err := llm.LoadConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("llm config: %w", err)
	}

	trendingCfg, err := trending.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("trending config: %w", err)
	}

	return &NewsApiConfig{
		LogLevel:      level,
		StorageConfig: storageCfg,
		CacheConfig:   cacheCfg,
		LLMConfig:     llmCfg,
		Trending:      trendingCfg,
	}, nil
}
