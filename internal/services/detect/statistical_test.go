package detect

import (
	"testing"
	"time"

	"EdgeScan/internal/domain/models"
)

func TestDetectMomentumRegimes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MomentumWindow = 5
	cfg.MomentumThreshold = 0.10

	closes := []float64{100, 100, 100, 100, 100, 100, 120, 120, 120, 120, 120, 120}
	sits := DetectMomentumRegimes(seriesFromCloses(t, closes), cfg)

	up := findSituation(t, sits, "momentum_up")
	if up.Priority != models.PrioritySecondary {
		t.Fatalf("expected secondary priority, got %v", up.Priority)
	}
	want := []int{6, 7, 8, 9, 10}
	if len(up.Indices) != len(want) {
		t.Fatalf("unexpected indices %v", up.Indices)
	}
	for i, idx := range want {
		if up.Indices[i] != idx {
			t.Fatalf("unexpected indices %v, want %v", up.Indices, want)
		}
	}
	if hasSituation(sits, "momentum_down") {
		t.Fatalf("unexpected down regime in an up move")
	}
}

func TestDetectMomentumRegimesDown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MomentumWindow = 5
	cfg.MomentumThreshold = 0.10

	closes := []float64{120, 120, 120, 120, 120, 120, 100, 100, 100, 100, 100, 100}
	sits := DetectMomentumRegimes(seriesFromCloses(t, closes), cfg)

	if !hasSituation(sits, "momentum_down") {
		t.Fatalf("expected down regime")
	}
	if hasSituation(sits, "momentum_up") {
		t.Fatalf("unexpected up regime in a down move")
	}
}

func TestDetectVolumeSurges(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VolumeAvgWindow = 5
	cfg.VolumeSurgeRatio = 2.0

	closes := make([]float64, 10)
	volumes := make([]float64, 10)
	for i := range closes {
		closes[i] = 100
		volumes[i] = 1000
	}
	volumes[7] = 5000

	sits := DetectVolumeSurges(seriesWithVolumes(t, closes, volumes), cfg)
	surge := findSituation(t, sits, "volume_surge")
	if len(surge.Indices) != 1 || surge.Indices[0] != 7 {
		t.Fatalf("unexpected surge indices %v", surge.Indices)
	}
}

func TestDetectGaps(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, 10)
	for i := range bars {
		open := 100.0
		switch i {
		case 3:
			open = 105 // +5% over prior close
		case 6:
			open = 95 // -5%
		}
		bars[i] = models.Bar{
			Timestamp: base.AddDate(0, 0, i),
			Open:      open, High: 106, Low: 94, Close: 100,
			Volume: 1000,
		}
	}
	s, err := models.NewMarketSeries("TEST", bars)
	if err != nil {
		t.Fatalf("series: %v", err)
	}

	sits := DetectGaps(s, DefaultConfig())
	up := findSituation(t, sits, "gap_up")
	if len(up.Indices) != 1 || up.Indices[0] != 3 {
		t.Fatalf("unexpected gap_up indices %v", up.Indices)
	}
	down := findSituation(t, sits, "gap_down")
	if len(down.Indices) != 1 || down.Indices[0] != 6 {
		t.Fatalf("unexpected gap_down indices %v", down.Indices)
	}
}

func TestDetectRangeExtremes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RangeWindow = 5

	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	sits := DetectRangeExtremes(seriesFromCloses(t, closes), cfg)

	highs := findSituation(t, sits, "new_high")
	if len(highs.Indices) != 5 || highs.Indices[0] != 5 {
		t.Fatalf("unexpected new_high indices %v", highs.Indices)
	}
	if hasSituation(sits, "new_low") {
		t.Fatalf("unexpected new_low in an uptrend")
	}
}

func TestDetectVolatilityRegimes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VolWindow = 5
	cfg.VolPercentile = 80

	closes := make([]float64, 40)
	for i := range closes {
		if i < 30 {
			closes[i] = 100 + 0.05*float64(i%2) // calm
		} else {
			closes[i] = 100 + 10*float64(i%2) // wild
		}
	}
	sits := DetectVolatilityRegimes(seriesFromCloses(t, closes), cfg)

	high := findSituation(t, sits, "high_volatility")
	for _, idx := range high.Indices {
		if idx < 30 {
			t.Fatalf("calm bar %d tagged as high volatility", idx)
		}
	}
}

func TestDetectCalendar(t *testing.T) {
	// ten business days starting Monday 2024-01-01
	days := []time.Time{}
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for len(days) < 10 {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days = append(days, d)
		}
		d = d.AddDate(0, 0, 1)
	}
	bars := make([]models.Bar, len(days))
	for i, ts := range days {
		bars[i] = models.Bar{Timestamp: ts, Open: 100, High: 101, Low: 99, Close: 100, Volume: 1000}
	}
	s, err := models.NewMarketSeries("TEST", bars)
	if err != nil {
		t.Fatalf("series: %v", err)
	}

	sits := DetectCalendar(s, DefaultConfig())
	mon := findSituation(t, sits, "monday")
	if len(mon.Indices) != 2 || mon.Indices[0] != 0 || mon.Indices[1] != 5 {
		t.Fatalf("unexpected monday indices %v", mon.Indices)
	}
	fri := findSituation(t, sits, "friday")
	if len(fri.Indices) != 2 || fri.Indices[0] != 4 || fri.Indices[1] != 9 {
		t.Fatalf("unexpected friday indices %v", fri.Indices)
	}
	if hasSituation(sits, "quarter_start") {
		t.Fatalf("no month boundary in the sample, quarter_start must be absent")
	}
	wed := findSituation(t, sits, "wednesday")
	if len(wed.Indices) != 2 || wed.Indices[0] != 2 || wed.Indices[1] != 7 {
		t.Fatalf("unexpected wednesday indices %v", wed.Indices)
	}
}

func TestDetectCalendarMonths(t *testing.T) {
	// ten business days spanning late January into February 2024
	days := []time.Time{}
	d := time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC)
	for len(days) < 10 {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days = append(days, d)
		}
		d = d.AddDate(0, 0, 1)
	}
	bars := make([]models.Bar, len(days))
	for i, ts := range days {
		bars[i] = models.Bar{Timestamp: ts, Open: 100, High: 101, Low: 99, Close: 100, Volume: 1000}
	}
	s, err := models.NewMarketSeries("TEST", bars)
	if err != nil {
		t.Fatalf("series: %v", err)
	}

	sits := DetectCalendar(s, DefaultConfig())
	jan := findSituation(t, sits, "month_january")
	feb := findSituation(t, sits, "month_february")
	for _, i := range jan.Indices {
		if s.Timestamp(i).Month() != time.January {
			t.Fatalf("bar %d tagged january but falls in %s", i, s.Timestamp(i).Month())
		}
	}
	for _, i := range feb.Indices {
		if s.Timestamp(i).Month() != time.February {
			t.Fatalf("bar %d tagged february but falls in %s", i, s.Timestamp(i).Month())
		}
	}
	if len(jan.Indices)+len(feb.Indices) != s.Len() {
		t.Fatalf("every bar belongs to exactly one month, got %v and %v", jan.Indices, feb.Indices)
	}
	if hasSituation(sits, "month_march") {
		t.Fatalf("no march bars in the sample, month_march must be absent")
	}
}
