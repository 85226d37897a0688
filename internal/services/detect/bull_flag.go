package detect

import (
	"fmt"

	"EdgeScan/internal/domain/models"
	"EdgeScan/internal/services/stat"
)

// DetectBullFlag reports a volatility-contracting consolidation following a
// qualifying decline. The consolidation is the trailing FlagMinBars bars; its
// coefficient of variation must shrink to at most FlagCVRatio of the CV over
// the 20-bar decline segment that precedes it.
func DetectBullFlag(s *models.MarketSeries, cfg Config) []models.Situation {
	const declineBars = 20
	n := s.Len()
	if n < cfg.FlagMinBars+declineBars {
		return nil
	}

	consolStart := n - cfg.FlagMinBars
	declineStart := consolStart - declineBars

	decline, ok := priorDecline(s, consolStart, cfg)
	if !ok {
		return nil
	}
	// The segment into the flag has to be an actual decline, not a drift.
	if s.Close(consolStart-1) >= s.Close(declineStart) {
		return nil
	}

	declineCV := stat.CoefficientOfVariation(closesBetween(s, declineStart, consolStart))
	consolCV := stat.CoefficientOfVariation(closesBetween(s, consolStart, n))
	if declineCV <= 0 || consolCV > cfg.FlagCVRatio*declineCV {
		return nil
	}

	return []models.Situation{{
		Name:     string(models.KindBullFlag),
		Kind:     models.KindBullFlag,
		Priority: models.PriorityPrimary,
		Indices:  []int{n - 1},
		Description: fmt.Sprintf("flag after %.1f%% decline, volatility contracted %.0f%%",
			decline*100, (1-consolCV/declineCV)*100),
		Details: models.BullFlagDetails{
			ConsolidationStart: consolStart,
			ConsolidationEnd:   n - 1,
			DeclinePct:         decline,
			DeclineCV:          declineCV,
			ConsolidationCV:    consolCV,
		},
	}}
}

func closesBetween(s *models.MarketSeries, from, to int) []float64 {
	out := make([]float64, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, s.Close(i))
	}
	return out
}
