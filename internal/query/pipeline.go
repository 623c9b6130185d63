package query

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/apperr"
	"github.com/DjordjeVuckovic/news-pulse/internal/cache"
	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/geo"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"golang.org/x/sync/errgroup"
)

const (
	MaxResults         = 5
	SummaryPlaceholder = "Summary unavailable."

	DefaultAnalyzeTimeout = 10 * time.Second
	DefaultSummaryTimeout = 10 * time.Second
)

// Analyzer is the language-understanding oracle.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (domain.QueryAnalysis, error)
}

// Summarizer is the one-sentence summarization oracle.
type Summarizer interface {
	Summarize(ctx context.Context, article domain.Article) (string, error)
}

type Request struct {
	Text     string
	Location *geo.Point
}

// Pipeline resolves free text into at most MaxResults summarized articles.
type Pipeline struct {
	analyzer       Analyzer
	summarizer     Summarizer
	strategies     []Strategy
	cache          *cache.Cache
	analyzeTimeout time.Duration
	summaryTimeout time.Duration
}

type Option func(*Pipeline)

func WithAnalyzeTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.analyzeTimeout = d
		}
	}
}

func WithSummaryTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.summaryTimeout = d
		}
	}
}

func WithCache(c *cache.Cache) Option {
	return func(p *Pipeline) {
		if c != nil {
			p.cache = c
		}
	}
}

func NewPipeline(analyzer Analyzer, summarizer Summarizer, strategies []Strategy, opts ...Option) *Pipeline {
	p := &Pipeline{
		analyzer:       analyzer,
		summarizer:     summarizer,
		strategies:     strategies,
		cache:          cache.New(nil),
		analyzeTimeout: DefaultAnalyzeTimeout,
		summaryTimeout: DefaultSummaryTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DefaultStrategies is the keyword-then-full-text chain.
func DefaultStrategies(keywords storage.KeywordSearcher, fullText storage.FullTextSearcher) []Strategy {
	return []Strategy{
		NewKeywordStrategy(keywords),
		NewFullTextStrategy(fullText),
	}
}

func (p *Pipeline) Resolve(ctx context.Context, req Request) (domain.QueryResult, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return domain.QueryResult{}, apperr.NewValidation("query text is required")
	}
	if req.Location != nil {
		if err := req.Location.Validate(); err != nil {
			return domain.QueryResult{}, apperr.NewValidationWrap("invalid location", err)
		}
	}

	key := cache.QueryFingerprint(text, req.Location)
	var cached domain.QueryResult
	if p.cache.Get(ctx, key, &cached) {
		cached.Cached = true
		return cached, nil
	}

	analysis, err := p.analyze(ctx, text)
	if err != nil {
		return domain.QueryResult{}, err
	}

	strategy, articles, err := p.search(ctx, text, analysis)
	if err != nil {
		return domain.QueryResult{}, err
	}

	result := domain.QueryResult{
		Query:    text,
		Intents:  analysis.Intents,
		Entities: analysis.Entities,
		Keywords: analysis.Keywords,
		Strategy: strategy,
		Articles: p.summarize(ctx, articles),
	}

	p.cache.Set(ctx, key, result, cache.QueryTTL)

	slog.Info("Query resolved",
		"strategy", strategy,
		"intents", analysis.Intents,
		"keywords", analysis.Keywords,
		"results", len(result.Articles))

	return result, nil
}

func (p *Pipeline) analyze(ctx context.Context, text string) (domain.QueryAnalysis, error) {
	actx, cancel := context.WithTimeout(ctx, p.analyzeTimeout)
	defer cancel()

	analysis, err := p.analyzer.Analyze(actx, text)
	if err != nil {
		var oracleErr *apperr.OracleError
		if errors.As(err, &oracleErr) {
			return domain.QueryAnalysis{}, err
		}
		return domain.QueryAnalysis{}, apperr.NewOracle("analyze", err)
	}
	return sanitize(analysis), nil
}

// search walks the strategies in order and stops at the first that finds anything.
func (p *Pipeline) search(ctx context.Context, text string, analysis domain.QueryAnalysis) (string, []domain.Article, error) {
	for _, s := range p.strategies {
		articles, err := s.Find(ctx, text, analysis, MaxResults)
		if err != nil {
			return "", nil, err
		}
		if len(articles) > 0 {
			if len(articles) > MaxResults {
				articles = articles[:MaxResults]
			}
			return s.Name(), articles, nil
		}
		slog.Debug("Query strategy found nothing, falling back", "strategy", s.Name())
	}
	return StrategyNone, nil, nil
}

func (p *Pipeline) summarize(ctx context.Context, articles []domain.Article) []domain.SummarizedArticle {
	out := make([]domain.SummarizedArticle, len(articles))

	var g errgroup.Group
	for i, a := range articles {
		g.Go(func() error {
			out[i] = domain.SummarizedArticle{Article: a, Summary: p.summary(ctx, a)}
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (p *Pipeline) summary(ctx context.Context, a domain.Article) string {
	key := cache.SummaryKey(a.ID)

	var cached string
	if p.cache.Get(ctx, key, &cached) {
		return cached
	}

	sctx, cancel := context.WithTimeout(ctx, p.summaryTimeout)
	defer cancel()

	s, err := p.summarizer.Summarize(sctx, a)
	s = strings.TrimSpace(s)
	if err != nil || s == "" {
		slog.Warn("Summary unavailable, using placeholder", "article_id", a.ID, "error", err)
		return SummaryPlaceholder
	}

	p.cache.Set(ctx, key, s, cache.SummaryTTL)
	return s
}

func sanitize(a domain.QueryAnalysis) domain.QueryAnalysis {
	intents := make([]domain.Intent, 0, len(a.Intents))
	seen := make(map[domain.Intent]bool, len(a.Intents))
	for _, in := range a.Intents {
		in = domain.Intent(strings.ToLower(strings.TrimSpace(string(in))))
		if !domain.KnownIntents[in] || seen[in] {
			continue
		}
		seen[in] = true
		intents = append(intents, in)
	}

	entities := make(map[string]string, len(a.Entities))
	for k, v := range a.Entities {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" && v != "" {
			entities[k] = v
		}
	}

	return domain.QueryAnalysis{
		Intents:  intents,
		Entities: entities,
		Keywords: storage.NormalizeKeywords(a.Keywords),
	}
}
