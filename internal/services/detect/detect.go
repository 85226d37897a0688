package detect

import (
	"EdgeScan/internal/domain/models"
)

// Detector is a pure function from a point-in-time series to zero or more
// situations. Detectors never read beyond the last bar of the slice they are
// given, never fail on short input (they return an empty result instead) and
// are deterministic for identical input.
type Detector func(*models.MarketSeries, Config) []models.Situation

// Structural lists the pivot-based reversal detectors (PRIMARY priority).
func Structural() []Detector {
	return []Detector{
		DetectDoubleBottom,
		DetectInverseHS,
		DetectBullFlag,
		DetectHigherLows,
	}
}

// Statistical lists the threshold/percentile regime detectors (SECONDARY).
func Statistical() []Detector {
	return []Detector{
		DetectMomentumRegimes,
		DetectVolatilityRegimes,
		DetectVolumeSurges,
		DetectGaps,
		DetectRangeExtremes,
		DetectCalendar,
	}
}

// All runs every registered detector, structural first, and returns the
// detected situations keyed by name.
func All(s *models.MarketSeries, cfg Config) map[string]models.Situation {
	out := make(map[string]models.Situation)
	for _, d := range Structural() {
		for _, sit := range d(s, cfg) {
			out[sit.Name] = sit
		}
	}
	for _, d := range Statistical() {
		for _, sit := range d(s, cfg) {
			out[sit.Name] = sit
		}
	}
	return out
}
