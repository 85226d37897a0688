// Package outcome turns situation occurrence indices into forward-return
// samples and summarizes their distribution.
package outcome

import (
	"EdgeScan/internal/domain/models"
	"EdgeScan/internal/services/stat"
)

// ForwardReturns computes the simple forward return over the given horizon
// for every occurrence index. Indices whose horizon would run past the end
// of the series are dropped, so the sample silently shrinks near the right
// edge instead of being zero-filled.
func ForwardReturns(s *models.MarketSeries, indices []int, horizon int) []float64 {
	if s == nil || horizon <= 0 {
		return nil
	}
	n := s.Len()
	out := make([]float64, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i+horizon >= n {
			continue
		}
		entry := s.Close(i)
		if entry <= 0 {
			continue
		}
		out = append(out, (s.Close(i+horizon)-entry)/entry)
	}
	return out
}

// Analyze summarizes a forward-return sample. An empty sample yields the
// zero value with SampleSize 0.
func Analyze(returns []float64) models.OutcomeStatistics {
	if len(returns) == 0 {
		return models.OutcomeStatistics{}
	}

	min, max := returns[0], returns[0]
	var wins, losses []float64
	for _, r := range returns {
		if r < min {
			min = r
		}
		if r > max {
			max = r
		}
		if r > 0 {
			wins = append(wins, r)
		} else if r < 0 {
			losses = append(losses, r)
		}
	}

	grossWin, grossLoss := 0.0, 0.0
	for _, w := range wins {
		grossWin += w
	}
	for _, l := range losses {
		grossLoss += -l
	}
	profitFactor := 0.0
	if grossLoss > 0 {
		profitFactor = grossWin / grossLoss
	}

	avgLoss := 0.0
	if len(losses) > 0 {
		avgLoss = -stat.Mean(losses) // reported as a positive magnitude
	}

	return models.OutcomeStatistics{
		Mean:         stat.Mean(returns),
		Median:       stat.Median(returns),
		Std:          stat.Std(returns),
		Skewness:     stat.Skewness(returns),
		Kurtosis:     stat.Kurtosis(returns),
		Min:          min,
		Max:          max,
		Percentile5:  stat.Percentile(returns, 5),
		Percentile25: stat.Percentile(returns, 25),
		Percentile75: stat.Percentile(returns, 75),
		Percentile95: stat.Percentile(returns, 95),
		WinRate:      float64(len(wins)) / float64(len(returns)),
		AvgWin:       stat.Mean(wins),
		AvgLoss:      avgLoss,
		ProfitFactor: profitFactor,
		MaxDrawdown:  maxDrawdown(returns),
		SampleSize:   len(returns),
	}
}

// maxDrawdown treats the return sample, in order, as a sequence of trade
// outcomes compounding an equity curve and reports the deepest peak-to-trough
// loss as a positive fraction.
func maxDrawdown(returns []float64) float64 {
	equity, peak, worst := 1.0, 1.0, 0.0
	for _, r := range returns {
		equity *= 1 + r
		if equity > peak {
			peak = equity
		}
		if dd := (peak - equity) / peak; dd > worst {
			worst = dd
		}
	}
	return worst
}
