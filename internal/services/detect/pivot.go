package detect

import (
	"EdgeScan/internal/domain/models"
)

// Pivot is a local price extremum: a bar whose close is the minimum (or
// maximum) over the symmetric window [i-w, i+w].
type Pivot struct {
	Index  int
	Price  float64
	Volume float64
}

// PivotLows returns all local lows ordered by index. Bars closer than w to
// either edge cannot be confirmed and are skipped; fewer than 2w+1 bars
// yields nil.
func PivotLows(s *models.MarketSeries, w int) []Pivot {
	return pivots(s, w, false)
}

// PivotHighs returns all local highs ordered by index.
func PivotHighs(s *models.MarketSeries, w int) []Pivot {
	return pivots(s, w, true)
}

func pivots(s *models.MarketSeries, w int, highs bool) []Pivot {
	n := s.Len()
	if w < 1 || n < 2*w+1 {
		return nil
	}
	out := make([]Pivot, 0, n/(w+1))
	for i := w; i < n-w; i++ {
		p := s.Close(i)
		extremum := true
		for j := i - w; j <= i+w; j++ {
			if j == i {
				continue
			}
			if highs && s.Close(j) > p {
				extremum = false
				break
			}
			if !highs && s.Close(j) < p {
				extremum = false
				break
			}
		}
		if extremum {
			out = append(out, Pivot{Index: i, Price: p, Volume: s.Volume(i)})
		}
	}
	return out
}

// priorDecline measures the decline from the lookback-window maximum into the
// candidate pivot. It returns the (negative) decline fraction and whether the
// decline qualifies per cfg.MinDeclinePct. Reversal patterns that fail this
// test are discarded before any pattern-specific logic runs; it is what keeps
// the structural detectors from chasing tops.
func priorDecline(s *models.MarketSeries, pivot int, cfg Config) (float64, bool) {
	if pivot <= 0 || pivot >= s.Len() {
		return 0, false
	}
	start := pivot - cfg.LookbackWindow
	if start < 0 {
		start = 0
	}
	maxClose := 0.0
	for i := start; i < pivot; i++ {
		if s.Close(i) > maxClose {
			maxClose = s.Close(i)
		}
	}
	if maxClose <= 0 {
		return 0, false
	}
	decline := (s.Close(pivot) - maxClose) / maxClose
	return decline, decline <= -cfg.MinDeclinePct
}
