package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/geo"
	"github.com/google/uuid"
)

const (
	TrendingTTL = 300 * time.Second
	QueryTTL    = 3600 * time.Second
	SummaryTTL  = 86400 * time.Second
)

const (
	trendingPrefix = "trending"
	queryPrefix    = "ai_query"
	summaryPrefix  = "summary"
)

// TrendingKey partitions trending results by geo bucket and request shape.
func TrendingKey(bucket string, limit int, radiusMeters float64) string {
	return fmt.Sprintf("%s:%s:%d:%s", trendingPrefix, bucket, limit, strconv.FormatFloat(radiusMeters, 'f', -1, 64))
}

// QueryFingerprint derives the cache key of a natural-language query from its
// text and the optional caller location.
func QueryFingerprint(text string, loc *geo.Point) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(text), " "))

	lat, lon := "-", "-"
	if loc != nil {
		lat = strconv.FormatFloat(loc.Lat, 'f', -1, 64)
		lon = strconv.FormatFloat(loc.Lon, 'f', -1, 64)
	}

	sum := sha256.Sum256([]byte(normalized + "|" + lat + "|" + lon))
	return queryPrefix + ":" + hex.EncodeToString(sum[:])
}

func SummaryKey(articleID uuid.UUID) string {
	return summaryPrefix + ":" + articleID.String()
}
