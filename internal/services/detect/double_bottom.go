package detect

import (
	"fmt"
	"math"

	"EdgeScan/internal/domain/models"
)

// DetectDoubleBottom finds the most recent qualifying W-shaped reversal.
// Only one occurrence is reported per series: the detector is meant to be
// invoked on a point-in-time slice each day, so historical matches surface
// through replay, not through a single call.
//
// Qualification, in order: pivot lows at least MinPairSpacing bars apart,
// second low within PairTolerance of the first, a reaction high between them
// bouncing at least MinBouncePct off the first low, and a prior decline
// anchored at the first low. Returns an empty slice when nothing qualifies.
func DetectDoubleBottom(s *models.MarketSeries, cfg Config) []models.Situation {
	lows := PivotLows(s, cfg.PivotWindow)
	if len(lows) < 2 {
		return nil
	}

	var best *models.DoubleBottomDetails
	for j := len(lows) - 1; j >= 1; j-- {
		for i := j - 1; i >= 0; i-- {
			low1, low2 := lows[i], lows[j]
			if low2.Index-low1.Index < cfg.MinPairSpacing {
				continue
			}
			if math.Abs(low2.Price-low1.Price)/low1.Price > cfg.PairTolerance {
				continue
			}
			reactionHigh, reactionIdx := maxCloseBetween(s, low1.Index, low2.Index)
			if reactionIdx < 0 {
				continue
			}
			bounce := (reactionHigh - low1.Price) / low1.Price
			if bounce < cfg.MinBouncePct {
				continue
			}
			decline, ok := priorDecline(s, low1.Index, cfg)
			if !ok {
				continue
			}
			volumeDeclining := low2.Volume < low1.Volume
			if cfg.RequireVolumeDrop && !volumeDeclining {
				continue
			}

			d := &models.DoubleBottomDetails{
				FirstLowIndex:   low1.Index,
				SecondLowIndex:  low2.Index,
				FirstLowPrice:   low1.Price,
				SecondLowPrice:  low2.Price,
				ReactionHigh:    reactionHigh,
				DeclinePct:      decline,
				BouncePct:       bounce,
				VolumeDeclining: volumeDeclining,
				TriggerIndex:    -1,
			}
			markBreakout(s, d, cfg)
			best = d
			break
		}
		if best != nil {
			break
		}
	}
	if best == nil {
		return nil
	}

	return []models.Situation{{
		Name:     string(models.KindDoubleBottom),
		Kind:     models.KindDoubleBottom,
		Priority: models.PriorityPrimary,
		Indices:  []int{best.SecondLowIndex},
		Description: fmt.Sprintf("double bottom at %.2f/%.2f after %.1f%% decline, reaction high %.2f",
			best.FirstLowPrice, best.SecondLowPrice, best.DeclinePct*100, best.ReactionHigh),
		Details: *best,
	}}
}

// maxCloseBetween returns the highest close strictly between two indices.
func maxCloseBetween(s *models.MarketSeries, from, to int) (float64, int) {
	maxP, maxI := 0.0, -1
	for i := from + 1; i < to; i++ {
		if s.Close(i) > maxP {
			maxP, maxI = s.Close(i), i
		}
	}
	return maxP, maxI
}

// markBreakout flags the first close above the reaction high after the
// second low, and whether that bar traded on elevated volume relative to its
// trailing average.
func markBreakout(s *models.MarketSeries, d *models.DoubleBottomDetails, cfg Config) {
	for k := d.SecondLowIndex + 1; k < s.Len(); k++ {
		if s.Close(k) <= d.ReactionHigh {
			continue
		}
		d.Triggered = true
		d.TriggerIndex = k
		avg := trailingVolumeAvg(s, k, cfg.VolumeAvgWindow)
		d.HighVolumeBreakout = avg > 0 && s.Volume(k) > cfg.BreakoutVolumeRatio*avg
		return
	}
}

func trailingVolumeAvg(s *models.MarketSeries, idx, window int) float64 {
	start := idx - window
	if start < 0 {
		start = 0
	}
	if idx <= start {
		return 0
	}
	sum := 0.0
	for i := start; i < idx; i++ {
		sum += s.Volume(i)
	}
	return sum / float64(idx-start)
}
