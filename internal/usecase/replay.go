package usecase

import (
	"EdgeScan/internal/domain/models"
	"EdgeScan/internal/services/detect"
)

// ReplayStructural rebuilds the historical occurrences of every structural
// pattern by walking point-in-time prefixes of the series and recording the
// bar at which each occurrence first became detectable. Structural detectors
// only report their most recent match per slice, so this replay is what turns
// "the pattern is present today" into a forward-testable sample with no
// lookahead: the recorded index is the earliest bar an observer scanning
// daily could have acted on. Replay runs on the backtest tolerance so
// retests a few percent off the first low still enter the sample.
func ReplayStructural(s *models.MarketSeries, cfg detect.Config) map[string][]int {
	cfg = cfg.Backtest()
	warmup := cfg.LookbackWindow + 2*cfg.PivotWindow
	if warmup < cfg.PatternWindow {
		warmup = cfg.PatternWindow
	}

	seen := make(map[string]map[int]bool)
	occ := make(map[string][]int)

	for t := warmup; t <= s.Len(); t++ {
		slice := s.SliceTo(t)
		for _, d := range detect.Structural() {
			for _, sit := range d(slice, cfg) {
				a := anchorOf(sit)
				if seen[sit.Name] == nil {
					seen[sit.Name] = make(map[int]bool)
				}
				if seen[sit.Name][a] {
					continue
				}
				seen[sit.Name][a] = true
				occ[sit.Name] = append(occ[sit.Name], t-1)
			}
		}
	}
	return occ
}

// anchorOf returns the index that identifies a structural occurrence across
// successive slices. Most detectors anchor on a pivot bar already; the bull
// flag reports the live bar, so its consolidation start is used instead.
func anchorOf(sit models.Situation) int {
	if d, ok := sit.Details.(models.BullFlagDetails); ok {
		return d.ConsolidationStart
	}
	if len(sit.Indices) > 0 {
		return sit.Indices[0]
	}
	return -1
}
