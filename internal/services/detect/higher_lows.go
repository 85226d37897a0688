package detect

import (
	"fmt"

	"EdgeScan/internal/domain/models"
)

// DetectHigherLows reports a reversal base of three or more pivot lows with
// non-decreasing prices inside the most recent PatternWindow bars, anchored
// by a qualifying decline into the first low.
func DetectHigherLows(s *models.MarketSeries, cfg Config) []models.Situation {
	n := s.Len()
	if n < cfg.PatternWindow {
		return nil
	}
	windowStart := n - cfg.PatternWindow

	var lows []Pivot
	for _, p := range PivotLows(s, cfg.PivotWindow) {
		if p.Index >= windowStart {
			lows = append(lows, p)
		}
	}
	if len(lows) < 3 {
		return nil
	}
	for i := 1; i < len(lows); i++ {
		if lows[i].Price < lows[i-1].Price {
			return nil
		}
	}
	decline, ok := priorDecline(s, lows[0].Index, cfg)
	if !ok {
		return nil
	}

	indices := make([]int, len(lows))
	prices := make([]float64, len(lows))
	for i, p := range lows {
		indices[i] = p.Index
		prices[i] = p.Price
	}

	return []models.Situation{{
		Name:        string(models.KindHigherLows),
		Kind:        models.KindHigherLows,
		Priority:    models.PriorityPrimary,
		Indices:     []int{lows[len(lows)-1].Index},
		Description: fmt.Sprintf("%d rising lows from %.2f after %.1f%% decline", len(lows), lows[0].Price, decline*100),
		Details: models.HigherLowsDetails{
			LowIndices: indices,
			LowPrices:  prices,
			DeclinePct: decline,
		},
	}}
}
