// Package main News Pulse API
// @title News Pulse API
// @version 1.0
// @description Location-aware trending news and natural-language news queries
// @contact.name API Support
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	_ "github.com/DjordjeVuckovic/news-pulse/docs"
	"github.com/DjordjeVuckovic/news-pulse/internal/api/router"
	apiserver "github.com/DjordjeVuckovic/news-pulse/internal/api/server"
	"github.com/DjordjeVuckovic/news-pulse/internal/cache"
	"github.com/DjordjeVuckovic/news-pulse/internal/events"
	"github.com/DjordjeVuckovic/news-pulse/internal/llm"
	"github.com/DjordjeVuckovic/news-pulse/internal/query"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage/factory"
	"github.com/DjordjeVuckovic/news-pulse/internal/trending"
	pkgserver "github.com/DjordjeVuckovic/news-pulse/pkg/server"
	"github.com/labstack/echo/v4"
)

func main() {
	cfg, err := NewAppConfig().Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(cfg.LogLevel)

	sCfg, err := apiserver.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	stores, err := factory.Open(ctx, cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to open storage", "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	cacheStore, err := cache.NewStore(cfg.CacheConfig)
	if err != nil {
		slog.Error("Failed to create cache store", "error", err)
		os.Exit(1)
	}
	if closer, ok := cacheStore.(io.Closer); ok {
		defer closer.Close()
	}
	c := cache.New(cacheStore, cache.WithOpTimeout(cfg.CacheConfig.OpTimeout))

	healthCheckers := append([]pkgserver.HealthChecker{pkgserver.NewOkHealthChecker()}, stores.Health...)
	if hc, ok := cacheStore.(pkgserver.HealthChecker); ok {
		healthCheckers = append(healthCheckers, hc)
	}

	s := apiserver.New(sCfg, healthCheckers...).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupValidator(router.NewValidator()).
		SetupHealthChecks("/health").
		SetupMetrics("/metrics").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "News Pulse API is running")
	})

	analyzeClient, err := llm.NewClient(cfg.LLMConfig, llm.AnalyzeBreaker)
	if err != nil {
		slog.Error("Failed to create LLM client", "error", err)
		os.Exit(1)
	}
	summarizeClient, err := llm.NewClient(cfg.LLMConfig, llm.SummarizeBreaker)
	if err != nil {
		slog.Error("Failed to create LLM client", "error", err)
		os.Exit(1)
	}

	snapshots := trending.NewSnapshotStore()
	aggregator := trending.NewAggregator(stores.Articles, stores.Events, snapshots,
		trending.WithScorer(cfg.Trending.Scorer()),
		trending.WithRefreshInterval(cfg.Trending.RefreshInterval),
	)
	go aggregator.Run(s.Context())

	trendingService := trending.NewService(
		trending.NewResolver(snapshots, stores.Articles, cfg.Trending.DistanceScale),
		c,
		cfg.Trending.BucketPrecision,
	)

	pipeline := query.NewPipeline(
		llm.NewAnalyzer(analyzeClient, cfg.LLMConfig.Model),
		llm.NewSummarizer(summarizeClient, cfg.LLMConfig.Model),
		query.DefaultStrategies(stores.Keywords, stores.FullText),
		query.WithAnalyzeTimeout(cfg.LLMConfig.AnalyzeTimeout),
		query.WithSummaryTimeout(cfg.LLMConfig.SummaryTimeout),
		query.WithCache(c),
	)

	v1 := s.Echo.Group("/api/v1")
	router.NewTrendingRouter(v1, trendingService).Bind()
	router.NewQueryRouter(v1, pipeline).Bind()
	router.NewEventRouter(v1, events.NewRecorder(stores.Events)).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
