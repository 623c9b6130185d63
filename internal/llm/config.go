package llm

import (
	"errors"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/pkg/config/env"
)

const (
	defaultModel          = "llama3.2"
	defaultAnalyzeTimeout = 10 * time.Second
	defaultSummaryTimeout = 10 * time.Second
)

type Config struct {
	BaseURL        string
	Model          string
	AnalyzeTimeout time.Duration
	SummaryTimeout time.Duration
	Breaker        BreakerConfig
}

func LoadConfigFromEnv() (*Config, error) {
	baseUrl := env.String("LLM_BASE_URL", "")
	if baseUrl == "" {
		return nil, errors.New("LLM_BASE_URL environment variable not set")
	}

	cfg := &Config{
		BaseURL: baseUrl,
		Model:   env.String("LLM_MODEL", defaultModel),
		Breaker: BreakerConfig{MaxRequests: 1},
	}

	var err error
	if cfg.AnalyzeTimeout, err = env.Duration("LLM_ANALYZE_TIMEOUT", defaultAnalyzeTimeout); err != nil {
		return nil, err
	}
	if cfg.SummaryTimeout, err = env.Duration("LLM_SUMMARY_TIMEOUT", defaultSummaryTimeout); err != nil {
		return nil, err
	}
	if cfg.Breaker.Cooldown, err = env.Duration("LLM_BREAKER_COOLDOWN", 30*time.Second); err != nil {
		return nil, err
	}
	failures, err := env.Int("LLM_BREAKER_FAILURES", 5)
	if err != nil {
		return nil, err
	}
	if failures < 1 {
		return nil, errors.New("LLM_BREAKER_FAILURES must be at least 1")
	}
	cfg.Breaker.FailureThreshold = uint32(failures)

	return cfg, nil
}

const (
	AnalyzeBreaker   = "llm-analyze"
	SummarizeBreaker = "llm-summarize"
)

// NewClient builds a client with its own breaker named name. The analyzer and
// the summarizer must not share a breaker.
func NewClient(cfg *Config, name string) (*OllamaClient, error) {
	bc := cfg.Breaker
	bc.Name = name
	return NewOllamaClient(cfg.BaseURL, WithBreaker(NewCircuitBreaker(bc)))
}
