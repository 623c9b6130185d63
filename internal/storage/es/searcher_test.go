package es

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/geo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeES(t *testing.T, body string, seen *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if seen != nil {
			*seen = r.URL.Path + " " + string(raw)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSearcher_SearchFullText(t *testing.T) {
	id := uuid.New()
	source := fmt.Sprintf(`{"id":%q,"title":"Climate summit","description":"Leaders meet","url":"https://example.com","published_at":"2025-03-01T10:00:00Z","source_name":"wire","categories":["world"],"relevance_score":0.8,"location":{"lat":44.8,"lon":20.4}}`, id)
	body := fmt.Sprintf(`{"took":1,"timed_out":false,"_shards":{"total":1,"successful":1,"skipped":0,"failed":0},"hits":{"total":{"value":1,"relation":"eq"},"max_score":1.5,"hits":[{"_index":"news_articles","_id":%q,"_score":1.5,"_source":%s}]}}`, id, source)

	var seen string
	srv := fakeES(t, body, &seen)

	searcher, err := NewSearcher(ClientConfig{Addresses: []string{srv.URL}, IndexName: "news_articles"})
	require.NoError(t, err)

	articles, err := searcher.SearchFullText(context.Background(), "climate", 5)

	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, id, articles[0].ID)
	assert.Equal(t, "Climate summit", articles[0].Title)
	assert.Equal(t, []string{"world"}, articles[0].Categories)
	assert.Equal(t, geo.Point{Lat: 44.8, Lon: 20.4}, articles[0].Location)

	assert.True(t, strings.HasPrefix(seen, "/news_articles/_search"))
	assert.Contains(t, seen, `"multi_match"`)
	assert.Contains(t, seen, `"title^2"`)
}

func TestSearcher_SearchFullText_BlankQuerySkipsRequest(t *testing.T) {
	var seen string
	srv := fakeES(t, `{}`, &seen)

	searcher, err := NewSearcher(ClientConfig{Addresses: []string{srv.URL}, IndexName: "news_articles"})
	require.NoError(t, err)

	articles, err := searcher.SearchFullText(context.Background(), "  ", 5)

	require.NoError(t, err)
	assert.Empty(t, articles)
	assert.Empty(t, seen)
}

func TestIndexBuilder_DocumentRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	article := domain.Article{
		ID:             uuid.New(),
		Title:          "Title",
		URL:            "https://example.com",
		PublishedAt:    now,
		RelevanceScore: 1.4,
		Location:       geo.Point{Lat: -33.9, Lon: 151.2},
	}

	doc := NewIndexBuilder().toDocument(article, now)
	assert.Equal(t, article.ID.String(), doc.ID)
	assert.Equal(t, 1.0, doc.RelevanceScore)
	assert.NotNil(t, doc.Categories)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"location":{"lat":-33.9,"lon":151.2}`)

	back, err := doc.toArticle()
	require.NoError(t, err)
	assert.Equal(t, article.ID, back.ID)
	assert.Equal(t, article.Location, back.Location)
}

func TestIndexBuilder_AssignsMissingID(t *testing.T) {
	doc := NewIndexBuilder().toDocument(domain.Article{Title: "x"}, time.Now())
	_, err := uuid.Parse(doc.ID)
	require.NoError(t, err)
}
