package detect

import (
	"fmt"
	"math"

	"EdgeScan/internal/domain/models"
)

// DetectInverseHS finds an inverse head-and-shoulders base inside the most
// recent PatternWindow bars: at least three local minima, the global minimum
// (head) lower than two bracketing shoulders whose prices sit within
// ShoulderTolerance of each other, with a qualifying decline into the head.
func DetectInverseHS(s *models.MarketSeries, cfg Config) []models.Situation {
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

	head := lows[0]
	for _, p := range lows[1:] {
		if p.Price < head.Price {
			head = p
		}
	}

	// Best bracketing shoulder pair: minimal relative spread.
	bestSpread := math.Inf(1)
	var left, right Pivot
	for _, l := range lows {
		if l.Index >= head.Index || l.Price <= head.Price {
			continue
		}
		for _, r := range lows {
			if r.Index <= head.Index || r.Price <= head.Price {
				continue
			}
			spread := math.Abs(l.Price-r.Price) / math.Min(l.Price, r.Price)
			if spread < bestSpread {
				bestSpread = spread
				left, right = l, r
			}
		}
	}
	if math.IsInf(bestSpread, 1) || bestSpread > cfg.ShoulderTolerance {
		return nil
	}
	decline, ok := priorDecline(s, head.Index, cfg)
	if !ok {
		return nil
	}

	return []models.Situation{{
		Name:     string(models.KindInverseHS),
		Kind:     models.KindInverseHS,
		Priority: models.PriorityPrimary,
		Indices:  []int{head.Index},
		Description: fmt.Sprintf("inverse head-and-shoulders, head %.2f between shoulders %.2f/%.2f",
			head.Price, left.Price, right.Price),
		Details: models.InverseHSDetails{
			HeadIndex:          head.Index,
			HeadPrice:          head.Price,
			LeftShoulderIndex:  left.Index,
			RightShoulderIndex: right.Index,
			ShoulderSpreadPct:  bestSpread,
			DeclinePct:         decline,
		},
	}}
}
