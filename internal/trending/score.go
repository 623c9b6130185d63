package trending

import (
	"bytes"
	"math"
	"sort"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/geo"
	"github.com/google/uuid"
)

const (
	DefaultWindow     = 24 * time.Hour
	DefaultDecayScale = 43200 * time.Second
	// DefaultDistanceScale is the e-folding distance of the blended score in meters.
	DefaultDistanceScale = 50000.0
)

// Weights maps an event kind to its contribution before decay.
type Weights map[domain.EventKind]float64

func DefaultWeights() Weights {
	return Weights{
		domain.EventClick: 1.5,
		domain.EventView:  1.0,
	}
}

// Scorer turns raw events into per-article trending scores.
type Scorer struct {
	Weights    Weights
	Window     time.Duration
	DecayScale time.Duration
}

func DefaultScorer() Scorer {
	return Scorer{
		Weights:    DefaultWeights(),
		Window:     DefaultWindow,
		DecayScale: DefaultDecayScale,
	}
}

// Decay is the multiplier applied to an event of the given age.
// Future timestamps count as age zero.
func (s Scorer) Decay(age time.Duration) float64 {
	if age < 0 {
		age = 0
	}
	return math.Exp(-age.Seconds() / s.DecayScale.Seconds())
}

// Compute returns one entry per article, sorted by score descending then by
// article id. Articles without events in the window score 0. Events that
// reference unknown articles or fall outside the window are ignored.
func (s Scorer) Compute(articles []domain.ArticleLocation, events []domain.EventSample, now time.Time) []Entry {
	entries := make([]Entry, len(articles))
	index := make(map[uuid.UUID]int, len(articles))
	for i, a := range articles {
		entries[i] = Entry{ArticleID: a.ID, Location: a.Location}
		index[a.ID] = i
	}

	for _, e := range events {
		i, ok := index[e.ArticleID]
		if !ok {
			continue
		}
		age := now.Sub(e.CreatedAt)
		if age > s.Window {
			continue
		}
		entries[i].Score += s.Weights[e.Kind] * s.Decay(age)
	}

	sortEntries(entries)
	return entries
}

// Blend attenuates a trending score by the distance to the reader.
func Blend(score, distanceMeters, distanceScale float64) float64 {
	return score * math.Exp(-distanceMeters/distanceScale)
}

type Entry struct {
	ArticleID uuid.UUID `json:"articleId"`
	Location  geo.Point `json:"location"`
	Score     float64   `json:"score"`
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return bytes.Compare(entries[i].ArticleID[:], entries[j].ArticleID[:]) < 0
	})
}
