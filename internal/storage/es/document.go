package es

import (
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/geo"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"
)

type GeoLocation struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ArticleDocument is the indexed form of domain.Article.
type ArticleDocument struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	URL            string      `json:"url"`
	PublishedAt    time.Time   `json:"published_at"`
	SourceName     string      `json:"source_name"`
	Categories     []string    `json:"categories"`
	RelevanceScore float64     `json:"relevance_score"`
	Location       GeoLocation `json:"location"`
	IndexedAt      time.Time   `json:"indexed_at"`
}

const textAnalyzer = "news_analyzer"

type IndexBuilder struct{}

func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{}
}

func (b *IndexBuilder) toDocument(article domain.Article, now time.Time) ArticleDocument {
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	categories := article.Categories
	if categories == nil {
		categories = []string{}
	}
	return ArticleDocument{
		ID:             article.ID.String(),
		Title:          article.Title,
		Description:    article.Description,
		URL:            article.URL,
		PublishedAt:    article.PublishedAt,
		SourceName:     article.SourceName,
		Categories:     categories,
		RelevanceScore: domain.ClampRelevance(article.RelevanceScore),
		Location:       GeoLocation{Lat: article.Location.Lat, Lon: article.Location.Lon},
		IndexedAt:      now,
	}
}

func (d ArticleDocument) toArticle() (domain.Article, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Article{}, err
	}
	return domain.Article{
		ID:             id,
		Title:          d.Title,
		Description:    d.Description,
		URL:            d.URL,
		PublishedAt:    d.PublishedAt,
		SourceName:     d.SourceName,
		Categories:     d.Categories,
		RelevanceScore: d.RelevanceScore,
		Location:       geo.Point{Lat: d.Location.Lat, Lon: d.Location.Lon},
	}, nil
}

func (b *IndexBuilder) buildSettings() types.IndexSettings {
	return types.IndexSettings{
		Analysis: &types.IndexSettingsAnalysis{
			Analyzer: map[string]types.Analyzer{
				textAnalyzer: types.StandardAnalyzer{
					Stopwords: []string{"_english_"},
				},
			},
		},
	}
}

func (b *IndexBuilder) buildMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			"id":              types.NewKeywordProperty(),
			"title":           b.createTextPropertyWithKeyword(textAnalyzer),
			"description":     b.createTextProperty(textAnalyzer),
			"url":             types.NewKeywordProperty(),
			"published_at":    types.NewDateProperty(),
			"source_name":     b.createTextPropertyWithKeyword(""),
			"categories":      types.NewKeywordProperty(),
			"relevance_score": types.NewDoubleNumberProperty(),
			"location":        types.NewGeoPointProperty(),
			"indexed_at":      types.NewDateProperty(),
		},
	}
}

func (b *IndexBuilder) createTextProperty(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	return textProp
}

func (b *IndexBuilder) createTextPropertyWithKeyword(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	textProp.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}
	return textProp
}
