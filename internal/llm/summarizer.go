package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/metrics"
)

const summarizePrompt = `Summarize the news article in exactly one short sentence. Reply with the sentence only.`

type Summarizer struct {
	client Client
	model  string
}

func NewSummarizer(client Client, model string) *Summarizer {
	if model == "" {
		model = defaultModel
	}
	return &Summarizer{client: client, model: model}
}

func (s *Summarizer) Summarize(ctx context.Context, article domain.Article) (string, error) {
	resp, err := s.client.Chat(ctx, ChatRequest{
		Model: s.model,
		Messages: []Message{
			{Role: RoleSystem, Content: summarizePrompt},
			{Role: RoleUser, Content: articlePrompt(article)},
		},
		Options: map[string]any{"temperature": 0.2},
	})
	if err != nil {
		metrics.OracleCalls.WithLabelValues(opSummarize, metrics.OutcomeError).Inc()
		return "", fmt.Errorf("summarize article %s: %w", article.ID, err)
	}

	summary := firstSentence(resp.Message.Content)
	if summary == "" {
		metrics.OracleCalls.WithLabelValues(opSummarize, metrics.OutcomeError).Inc()
		return "", errors.New("empty summary")
	}

	metrics.OracleCalls.WithLabelValues(opSummarize, metrics.OutcomeOK).Inc()
	return summary, nil
}

func articlePrompt(a domain.Article) string {
	var b strings.Builder
	b.WriteString("Title: ")
	b.WriteString(strings.TrimSpace(a.Title))
	if d := strings.TrimSpace(a.Description); d != "" {
		b.WriteString("\nDescription: ")
		b.WriteString(d)
	}
	if a.SourceName != "" {
		b.WriteString("\nSource: ")
		b.WriteString(a.SourceName)
	}
	return b.String()
}

var abbreviations = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {}, "st": {}, "jr": {}, "sr": {},
	"gen": {}, "gov": {}, "sen": {}, "rep": {}, "inc": {}, "co": {}, "corp": {},
	"ltd": {}, "vs": {}, "no": {}, "jan": {}, "feb": {}, "aug": {}, "sept": {},
	"oct": {}, "nov": {}, "dec": {},
}

// firstSentence keeps the reply to one line and one sentence. A period only
// ends the sentence when the next word is capitalised and the word before it
// is not an abbreviation.
func firstSentence(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '.' && c != '!' && c != '?' {
			continue
		}
		if i+1 == len(s) {
			return s
		}
		if s[i+1] != ' ' {
			continue
		}
		if c == '.' && (isAbbreviation(s[:i]) || !startsUpper(strings.TrimLeft(s[i+1:], " "))) {
			continue
		}
		return s[:i+1]
	}
	return s
}

func isAbbreviation(before string) bool {
	word := before[strings.LastIndexByte(before, ' ')+1:]
	if strings.Contains(word, ".") {
		return true
	}
	if r, size := utf8.DecodeRuneInString(word); size == len(word) && unicode.IsUpper(r) {
		return true
	}
	_, ok := abbreviations[strings.ToLower(word)]
	return ok
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
