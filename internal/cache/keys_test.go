package cache

import (
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/news-pulse/internal/geo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestQueryFingerprint(t *testing.T) {
	belgrade := geo.NewPoint(44.8125, 20.4612)

	a := QueryFingerprint("Floods near me", &belgrade)
	b := QueryFingerprint("  floods   near ME ", &belgrade)
	noLoc := QueryFingerprint("Floods near me", nil)
	elsewhere := QueryFingerprint("Floods near me", &geo.Point{Lat: 1, Lon: 2})

	assert.True(t, strings.HasPrefix(a, "ai_query:"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, noLoc)
	assert.NotEqual(t, a, elsewhere)
}

func TestTrendingKey(t *testing.T) {
	assert.Equal(t, "trending:44.81:20.46:5:0", TrendingKey("44.81:20.46", 5, 0))
	assert.Equal(t, "trending:44.81:20.46:10:2500", TrendingKey("44.81:20.46", 10, 2500))
}

func TestSummaryKey(t *testing.T) {
	id := uuid.MustParse("6f1c2a7e-4c0b-4f3e-9a55-0d7f5b1c2e11")
	assert.Equal(t, "summary:6f1c2a7e-4c0b-4f3e-9a55-0d7f5b1c2e11", SummaryKey(id))
}
