package geo

import (
	"math"
	"strconv"
)

// DefaultPrecision yields buckets of roughly 1.1km x 1.1km at the equator.
const DefaultPrecision = 2

// Bucket maps a coordinate pair to a cache partition key of the form "lat:lon",
// each component fixed to precision decimal digits.
//
// Rounding is half away from zero. Buckets shrink in longitude towards the
// poles; callers use this as a locality heuristic only.
func Bucket(lat, lon float64, precision int) string {
	if precision < 0 {
		precision = DefaultPrecision
	}
	return fixed(lat, precision) + ":" + fixed(lon, precision)
}

// BucketOf is Bucket for a Point at DefaultPrecision.
func BucketOf(p Point) string {
	return Bucket(p.Lat, p.Lon, DefaultPrecision)
}

func fixed(v float64, precision int) string {
	pow := math.Pow10(precision)
	r := math.Round(v*pow) / pow
	if r == 0 {
		// -0 and +0 share a bucket
		r = 0
	}
	return strconv.FormatFloat(r, 'f', precision, 64)
}
