// Package robust judges whether a pattern's forward-return record is
// trustworthy enough to act on, and computes shrinkage statistics that stay
// meaningful for small samples.
package robust

import (
	"math"

	"EdgeScan/internal/domain/models"
	"EdgeScan/internal/services/confidence"
	"EdgeScan/internal/services/outcome"
	"EdgeScan/internal/services/stat"
)

// priorWeight is the pseudo-observation count behind the 50% win-rate prior
// used to smooth small-sample win rates.
const priorWeight = 10.0

// largeSample is the occurrence count at which sample-size confidence
// saturates at 1.
const largeSample = 100.0

// Config holds the evaluator's significance thresholds.
type Config struct {
	MinOccurrences int     `yaml:"min_occurrences" default:"5" validate:"gte=1"`
	MinConfidence  float64 `yaml:"min_confidence" default:"0.6" validate:"gt=0,lt=1"`
}

// Evaluator scores pattern evidence against configured thresholds.
type Evaluator struct {
	cfg Config
}

func NewEvaluator(cfg Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Evaluate runs the significance state machine over a forward-return sample.
// Fewer occurrences than MinOccurrences is terminal insufficient data: all
// derived scores stay zero and the pattern is not significant.
func (e *Evaluator) Evaluate(patternID string, returns []float64) models.PatternEvaluation {
	ev := models.PatternEvaluation{
		PatternID:       patternID,
		OccurrenceCount: len(returns),
	}
	if len(returns) < e.cfg.MinOccurrences {
		return ev
	}

	ev.MeanReturn = stat.Mean(returns)
	ev.StdReturn = stat.Std(returns)
	ev.WinRate = winRate(returns)
	ev.MaxDrawdown = outcome.Analyze(returns).MaxDrawdown
	ev.StabilityScore = e.stability(returns)
	ev.StatisticalStrength = e.strength(returns, ev.MeanReturn, ev.StdReturn)
	ev.IsSignificant = ev.StabilityScore >= e.cfg.MinConfidence &&
		ev.StatisticalStrength >= e.cfg.MinConfidence

	return ev
}

// stability splits the sample into up to 4 time-ordered sub-periods and
// measures how much the sub-period means agree. Samples too small to split
// meaningfully get a neutral 0.5.
func (e *Evaluator) stability(returns []float64) float64 {
	if len(returns) < 2*e.cfg.MinOccurrences {
		return 0.5
	}
	parts := 4
	if len(returns) < parts {
		parts = len(returns)
	}
	size := len(returns) / parts

	means := make([]float64, 0, parts)
	absMeans := make([]float64, 0, parts)
	for p := 0; p < parts; p++ {
		lo := p * size
		hi := lo + size
		if p == parts-1 {
			hi = len(returns)
		}
		m := stat.Mean(returns[lo:hi])
		means = append(means, m)
		absMeans = append(absMeans, math.Abs(m))
	}

	scale := stat.Mean(absMeans)
	if scale == 0 {
		// every sub-period mean is exactly zero: no directional evidence
		// to agree on, scored as fully unstable
		return 0
	}
	return math.Max(0, 1-stat.Std(means)/scale)
}

// strength averages a saturating sample-size confidence with a consistency
// term based on the standard error of the mean.
func (e *Evaluator) strength(returns []float64, mean, std float64) float64 {
	n := float64(len(returns))
	sizeConf := math.Min(1, n/(3*float64(e.cfg.MinOccurrences)))

	consistency := 0.3
	if mean != 0 {
		se := std / math.Sqrt(n)
		consistency = math.Max(0, 1-se/math.Abs(mean))
	}
	return (sizeConf + consistency) / 2
}

// RobustStats computes the shrinkage statistics that are reported for every
// pattern regardless of significance, so downstream ranking has no hard
// cliff at the significance threshold.
func (e *Evaluator) RobustStats(returns []float64) models.RobustStatistics {
	base := outcome.Analyze(returns)
	rs := models.RobustStatistics{OutcomeStatistics: base}
	if base.SampleSize == 0 {
		rs.PValue = 1
		return rs
	}

	n := float64(base.SampleSize)
	wins := int(math.Round(base.WinRate * n))

	rs.AdjustedWinRate = (float64(wins) + priorWeight*0.5) / (n + priorWeight)
	rs.SampleSizeFactor = math.Min(1, n/largeSample)
	if base.Std > 0 {
		rs.ReturnConsistency = base.Mean / base.Std
	}
	rs.PValue = pValueAgainstZero(base.Mean, base.Std, base.SampleSize)

	ci := confidence.WilsonScoreInterval(wins, base.SampleSize, 95)
	rs.PessimisticEV = ci.Lower*base.AvgWin - (1-ci.Lower)*base.AvgLoss

	rs.RobustScore = robustScore(rs)
	return rs
}

// pValueAgainstZero is a two-sided one-sample test of the mean against zero
// using the normal approximation. Degenerate samples return 1.
func pValueAgainstZero(mean, std float64, n int) float64 {
	if n < 2 || std == 0 {
		return 1
	}
	t := mean / (std / math.Sqrt(float64(n)))
	return 2 * (1 - stat.NormalCDF(math.Abs(t)))
}

// robustScore linearly combines the shrinkage quantities into a 0-100 rank.
// The weights are fixed so that large, consistent, significant samples land
// near 100 and small or noisy ones near 0.
func robustScore(rs models.RobustStatistics) float64 {
	score := 0.0
	score += 0.30 * rs.SampleSizeFactor
	score += 0.25 * stat.Clamp(rs.AdjustedWinRate, 0, 1)
	score += 0.25 * (1 - stat.Clamp(rs.PValue, 0, 1))
	score += 0.20 * stat.Clamp(rs.ReturnConsistency, 0, 1)
	return stat.Clamp(score*100, 0, 100)
}

func winRate(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	wins := 0
	for _, r := range returns {
		if r > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(returns))
}
