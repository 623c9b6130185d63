package domain

import (
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/geo"
	"github.com/google/uuid"
)

type Article struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	URL            string    `json:"url" format:"uri"`
	PublishedAt    time.Time `json:"publishedAt"`
	SourceName     string    `json:"sourceName,omitempty"`
	Categories     []string  `json:"categories,omitempty"`
	RelevanceScore float64   `json:"relevanceScore"`
	Location       geo.Point `json:"location"`
}

// ArticleLocation is the slice of an Article the trending aggregator needs.
type ArticleLocation struct {
	ID       uuid.UUID
	Location geo.Point
}

// ClampRelevance keeps the static relevance score inside [0,1].
func ClampRelevance(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
