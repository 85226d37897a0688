package detect

import (
	"fmt"
	"math"
	"strings"
	"time"

	"EdgeScan/internal/domain/models"
	"EdgeScan/internal/services/stat"
)

// Statistical detectors are threshold/percentile rules over momentum,
// volatility, volume, gaps, range extremes and calendar fields. Unlike the
// structural detectors they report every bar on which the condition held, so
// their situations come with usable sample sizes out of the box.

// DetectMomentumRegimes tags bars whose trailing MomentumWindow return
// crosses ±MomentumThreshold.
func DetectMomentumRegimes(s *models.MarketSeries, cfg Config) []models.Situation {
	n := s.Len()
	if n <= cfg.MomentumWindow {
		return nil
	}
	var up, down []int
	for i := cfg.MomentumWindow; i < n; i++ {
		r := (s.Close(i) - s.Close(i-cfg.MomentumWindow)) / s.Close(i-cfg.MomentumWindow)
		switch {
		case r >= cfg.MomentumThreshold:
			up = append(up, i)
		case r <= -cfg.MomentumThreshold:
			down = append(down, i)
		}
	}
	var out []models.Situation
	if len(up) > 0 {
		out = append(out, regimeSituation("momentum_up", models.KindMomentumRegime, up,
			fmt.Sprintf("trailing %d-bar return above %.0f%%", cfg.MomentumWindow, cfg.MomentumThreshold*100),
			models.RegimeDetails{Rule: "momentum_up", Threshold: cfg.MomentumThreshold, Window: cfg.MomentumWindow}))
	}
	if len(down) > 0 {
		out = append(out, regimeSituation("momentum_down", models.KindMomentumRegime, down,
			fmt.Sprintf("trailing %d-bar return below -%.0f%%", cfg.MomentumWindow, cfg.MomentumThreshold*100),
			models.RegimeDetails{Rule: "momentum_down", Threshold: -cfg.MomentumThreshold, Window: cfg.MomentumWindow}))
	}
	return out
}

// DetectVolatilityRegimes tags bars whose rolling return volatility sits in
// the top (VolPercentile) or bottom (100-VolPercentile) tail of the series'
// own rolling-volatility distribution.
func DetectVolatilityRegimes(s *models.MarketSeries, cfg Config) []models.Situation {
	rets := s.Returns()
	if len(rets) <= cfg.VolWindow {
		return nil
	}
	// rolling[i] is aligned to bar i+1 (return i belongs to bar i+1)
	rolling := make([]float64, 0, len(rets)-cfg.VolWindow+1)
	for i := cfg.VolWindow; i <= len(rets); i++ {
		rolling = append(rolling, stat.Std(rets[i-cfg.VolWindow:i]))
	}
	hi := stat.Percentile(rolling, cfg.VolPercentile)
	lo := stat.Percentile(rolling, 100-cfg.VolPercentile)

	var high, quiet []int
	for k, v := range rolling {
		barIdx := k + cfg.VolWindow // bar the window ends on
		if v >= hi {
			high = append(high, barIdx)
		} else if v <= lo {
			quiet = append(quiet, barIdx)
		}
	}
	var out []models.Situation
	if len(high) > 0 {
		out = append(out, regimeSituation("high_volatility", models.KindVolatilityRegime, high,
			fmt.Sprintf("rolling %d-bar volatility above its %.0fth percentile", cfg.VolWindow, cfg.VolPercentile),
			models.RegimeDetails{Rule: "high_volatility", Threshold: hi, Window: cfg.VolWindow}))
	}
	if len(quiet) > 0 {
		out = append(out, regimeSituation("low_volatility", models.KindVolatilityRegime, quiet,
			fmt.Sprintf("rolling %d-bar volatility below its %.0fth percentile", cfg.VolWindow, 100-cfg.VolPercentile),
			models.RegimeDetails{Rule: "low_volatility", Threshold: lo, Window: cfg.VolWindow}))
	}
	return out
}

// DetectVolumeSurges tags bars trading above VolumeSurgeRatio times their
// trailing average volume.
func DetectVolumeSurges(s *models.MarketSeries, cfg Config) []models.Situation {
	n := s.Len()
	if n <= cfg.VolumeAvgWindow {
		return nil
	}
	var hits []int
	for i := cfg.VolumeAvgWindow; i < n; i++ {
		avg := trailingVolumeAvg(s, i, cfg.VolumeAvgWindow)
		if avg > 0 && s.Volume(i) > cfg.VolumeSurgeRatio*avg {
			hits = append(hits, i)
		}
	}
	if len(hits) == 0 {
		return nil
	}
	return []models.Situation{regimeSituation("volume_surge", models.KindVolumeSurge, hits,
		fmt.Sprintf("volume above %.1fx its %d-bar average", cfg.VolumeSurgeRatio, cfg.VolumeAvgWindow),
		models.RegimeDetails{Rule: "volume_surge", Threshold: cfg.VolumeSurgeRatio, Window: cfg.VolumeAvgWindow})}
}

// DetectGaps tags opening gaps beyond GapThreshold in either direction.
func DetectGaps(s *models.MarketSeries, cfg Config) []models.Situation {
	n := s.Len()
	if n < 2 {
		return nil
	}
	var ups, downs []int
	for i := 1; i < n; i++ {
		gap := (s.Open(i) - s.Close(i-1)) / s.Close(i-1)
		if gap >= cfg.GapThreshold {
			ups = append(ups, i)
		} else if gap <= -cfg.GapThreshold {
			downs = append(downs, i)
		}
	}
	var out []models.Situation
	if len(ups) > 0 {
		out = append(out, regimeSituation("gap_up", models.KindGap, ups,
			fmt.Sprintf("open gapped up at least %.1f%%", cfg.GapThreshold*100),
			models.RegimeDetails{Rule: "gap_up", Threshold: cfg.GapThreshold}))
	}
	if len(downs) > 0 {
		out = append(out, regimeSituation("gap_down", models.KindGap, downs,
			fmt.Sprintf("open gapped down at least %.1f%%", cfg.GapThreshold*100),
			models.RegimeDetails{Rule: "gap_down", Threshold: -cfg.GapThreshold}))
	}
	return out
}

// DetectRangeExtremes tags fresh RangeWindow-bar highs and lows.
func DetectRangeExtremes(s *models.MarketSeries, cfg Config) []models.Situation {
	n := s.Len()
	if n <= cfg.RangeWindow {
		return nil
	}
	var highs, lows []int
	for i := cfg.RangeWindow; i < n; i++ {
		maxPrev, minPrev := math.Inf(-1), math.Inf(1)
		for j := i - cfg.RangeWindow; j < i; j++ {
			if s.Close(j) > maxPrev {
				maxPrev = s.Close(j)
			}
			if s.Close(j) < minPrev {
				minPrev = s.Close(j)
			}
		}
		if s.Close(i) > maxPrev {
			highs = append(highs, i)
		} else if s.Close(i) < minPrev {
			lows = append(lows, i)
		}
	}
	var out []models.Situation
	if len(highs) > 0 {
		out = append(out, regimeSituation("new_high", models.KindRangeExtreme, highs,
			fmt.Sprintf("fresh %d-bar closing high", cfg.RangeWindow),
			models.RegimeDetails{Rule: "new_high", Window: cfg.RangeWindow}))
	}
	if len(lows) > 0 {
		out = append(out, regimeSituation("new_low", models.KindRangeExtreme, lows,
			fmt.Sprintf("fresh %d-bar closing low", cfg.RangeWindow),
			models.RegimeDetails{Rule: "new_low", Window: cfg.RangeWindow}))
	}
	return out
}

// DetectCalendar tags day-of-week, calendar-month and quarter-boundary bars.
func DetectCalendar(s *models.MarketSeries, cfg Config) []models.Situation {
	n := s.Len()
	if n < 2 {
		return nil
	}
	weekdays := make(map[time.Weekday][]int)
	months := make(map[time.Month][]int)
	var quarterStarts []int
	for i := 0; i < n; i++ {
		ts := s.Timestamp(i)
		weekdays[ts.Weekday()] = append(weekdays[ts.Weekday()], i)
		months[ts.Month()] = append(months[ts.Month()], i)
		if i > 0 && isQuarterStart(ts.Month()) && s.Timestamp(i-1).Month() != ts.Month() {
			quarterStarts = append(quarterStarts, i)
		}
	}

	var out []models.Situation
	for wd := time.Monday; wd <= time.Friday; wd++ {
		indices := weekdays[wd]
		if len(indices) == 0 {
			continue
		}
		name := strings.ToLower(wd.String())
		out = append(out, regimeSituation(name, models.KindCalendar, indices,
			wd.String()+" sessions", models.RegimeDetails{Rule: name}))
	}
	for m := time.January; m <= time.December; m++ {
		indices := months[m]
		if len(indices) == 0 {
			continue
		}
		name := "month_" + strings.ToLower(m.String())
		out = append(out, regimeSituation(name, models.KindCalendar, indices,
			m.String()+" sessions", models.RegimeDetails{Rule: name}))
	}
	if len(quarterStarts) > 0 {
		out = append(out, regimeSituation("quarter_start", models.KindCalendar, quarterStarts,
			"first session of a quarter", models.RegimeDetails{Rule: "quarter_start"}))
	}
	return out
}

func isQuarterStart(m time.Month) bool {
	return m == time.January || m == time.April || m == time.July || m == time.October
}

func regimeSituation(name string, kind models.SituationKind, indices []int, desc string, details models.RegimeDetails) models.Situation {
	return models.Situation{
		Name:        name,
		Kind:        kind,
		Priority:    models.PrioritySecondary,
		Indices:     indices,
		Description: desc,
		Details:     details,
	}
}
