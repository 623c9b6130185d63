package trending

import (
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/geo"
	"github.com/DjordjeVuckovic/news-pulse/pkg/config/env"
)

type Config struct {
	RefreshInterval time.Duration
	Window          time.Duration
	DecayScale      time.Duration
	DistanceScale   float64
	BucketPrecision int
}

func LoadConfig() (Config, error) {
	var (
		cfg Config
		err error
	)
	if cfg.RefreshInterval, err = env.Duration("TRENDING_REFRESH_INTERVAL", DefaultRefreshInterval); err != nil {
		return Config{}, err
	}
	if cfg.Window, err = env.Duration("TRENDING_WINDOW", DefaultWindow); err != nil {
		return Config{}, err
	}
	if cfg.DecayScale, err = env.Duration("TRENDING_DECAY_SCALE", DefaultDecayScale); err != nil {
		return Config{}, err
	}
	if cfg.DistanceScale, err = env.Float("TRENDING_DISTANCE_SCALE_METERS", DefaultDistanceScale); err != nil {
		return Config{}, err
	}
	if cfg.BucketPrecision, err = env.Int("GEO_BUCKET_PRECISION", geo.DefaultPrecision); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Scorer() Scorer {
	return Scorer{
		Weights:    DefaultWeights(),
		Window:     c.Window,
		DecayScale: c.DecayScale,
	}
}
