package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/news-pulse/internal/apperr"
	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/metrics"
)

const (
	opAnalyze   = "analyze"
	opSummarize = "summarize"
)

const analyzePrompt = `You classify news search queries.
Return JSON with:
- "intents": one or more of "nearby", "category", "source", "search"
- "entities": an object of extracted entities such as person, place, organization, category or source
- "keywords": short lowercase search terms taken from the query, without stop words
Answer with JSON only.`

var analysisFormat = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"intents": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "string",
				"enum": []string{
					string(domain.IntentNearby),
					string(domain.IntentCategory),
					string(domain.IntentSource),
					string(domain.IntentSearch),
				},
			},
		},
		"entities": map[string]any{
			"type":                 "object",
			"additionalProperties": map[string]any{"type": "string"},
		},
		"keywords": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
	"required": []string{"intents", "entities", "keywords"},
}

// Analyzer extracts intents, entities and keywords from a free-text query.
type Analyzer struct {
	client Client
	model  string
}

func NewAnalyzer(client Client, model string) *Analyzer {
	if model == "" {
		model = defaultModel
	}
	return &Analyzer{client: client, model: model}
}

func (a *Analyzer) Analyze(ctx context.Context, text string) (domain.QueryAnalysis, error) {
	resp, err := a.client.Chat(ctx, ChatRequest{
		Model: a.model,
		Messages: []Message{
			{Role: RoleSystem, Content: analyzePrompt},
			{Role: RoleUser, Content: strings.TrimSpace(text)},
		},
		Format:  analysisFormat,
		Options: map[string]any{"temperature": 0.0},
	})
	if err != nil {
		metrics.OracleCalls.WithLabelValues(opAnalyze, metrics.OutcomeError).Inc()
		return domain.QueryAnalysis{}, apperr.NewOracle(opAnalyze, err)
	}

	analysis, err := parseAnalysis(resp.Message.Content)
	if err != nil {
		metrics.OracleCalls.WithLabelValues(opAnalyze, metrics.OutcomeError).Inc()
		slog.Warn("LLM returned malformed analysis", "error", err, "content", resp.Message.Content)
		return domain.QueryAnalysis{}, apperr.NewOracle(opAnalyze, err)
	}

	metrics.OracleCalls.WithLabelValues(opAnalyze, metrics.OutcomeOK).Inc()
	return analysis, nil
}

// parseAnalysis tolerates models that wrap the JSON object in prose or code fences.
func parseAnalysis(content string) (domain.QueryAnalysis, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return domain.QueryAnalysis{}, fmt.Errorf("no JSON object in response")
	}

	var analysis domain.QueryAnalysis
	if err := json.Unmarshal([]byte(content[start:end+1]), &analysis); err != nil {
		return domain.QueryAnalysis{}, fmt.Errorf("decode analysis: %w", err)
	}
	if analysis.Entities == nil {
		analysis.Entities = map[string]string{}
	}
	return analysis, nil
}
