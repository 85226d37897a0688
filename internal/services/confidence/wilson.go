// Package confidence provides closed-form interval estimates for observed
// proportions.
package confidence

import (
	"math"

	"EdgeScan/internal/domain/models"
)

// zTable maps a confidence level in percent to its two-sided critical value.
// Unknown levels fall back to 95%.
var zTable = map[int]float64{
	90: 1.645,
	95: 1.96,
	99: 2.576,
}

// WilsonScoreInterval returns the Wilson score interval for an observed
// proportion. Unlike the normal approximation its bounds never leave [0,1],
// which keeps it honest on small trial counts. Zero trials yield a zero
// interval.
func WilsonScoreInterval(successes, trials int, level int) models.ConfidenceInterval {
	if trials <= 0 {
		return models.ConfidenceInterval{}
	}
	z, ok := zTable[level]
	if !ok {
		z = zTable[95]
	}

	n := float64(trials)
	p := float64(successes) / n
	z2 := z * z

	denom := 1 + z2/n
	center := (p + z2/(2*n)) / denom
	margin := z / denom * math.Sqrt(p*(1-p)/n+z2/(4*n*n))

	return models.ConfidenceInterval{
		Lower: math.Max(0, center-margin),
		Point: p,
		Upper: math.Min(1, center+margin),
	}
}
