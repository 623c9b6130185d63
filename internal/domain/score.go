package domain

const ScoreDecimalPlaces = 4

// RankedArticle is an Article placed by the personalised trending ranking.
type RankedArticle struct {
	Article        Article `json:"article"`
	TrendingScore  float64 `json:"trendingScore"`
	BlendedScore   float64 `json:"blendedScore"`
	DistanceMeters float64 `json:"distanceMeters"`
}
