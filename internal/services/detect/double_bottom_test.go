package detect

import (
	"math"
	"testing"

	"EdgeScan/internal/domain/models"
)

func doubleBottomSeries(t *testing.T) *models.MarketSeries {
	t.Helper()
	closes := doubleBottomCloses()
	volumes := make([]float64, len(closes))
	for i := range volumes {
		volumes[i] = 1000
	}
	volumes[40] = 1500 // first low on heavier volume
	volumes[85] = 2500 // breakout volume
	return seriesWithVolumes(t, closes, volumes)
}

func TestDetectDoubleBottom(t *testing.T) {
	sits := DetectDoubleBottom(doubleBottomSeries(t), DefaultConfig())
	if len(sits) != 1 {
		t.Fatalf("expected one situation, got %d", len(sits))
	}
	sit := sits[0]
	if sit.Kind != models.KindDoubleBottom || sit.Priority != models.PriorityPrimary {
		t.Fatalf("unexpected situation %+v", sit)
	}
	if len(sit.Indices) != 1 || sit.Indices[0] != 70 {
		t.Fatalf("expected anchor at second low 70, got %v", sit.Indices)
	}

	d, ok := sit.Details.(models.DoubleBottomDetails)
	if !ok {
		t.Fatalf("unexpected details type %T", sit.Details)
	}
	if d.FirstLowIndex != 40 || d.SecondLowIndex != 70 {
		t.Fatalf("unexpected low indices %d/%d", d.FirstLowIndex, d.SecondLowIndex)
	}
	if d.ReactionHigh != 88 {
		t.Fatalf("unexpected reaction high %v", d.ReactionHigh)
	}
	if math.Abs(d.BouncePct-0.10) > 1e-12 {
		t.Fatalf("unexpected bounce %v", d.BouncePct)
	}
	if math.Abs(d.DeclinePct-(-0.20)) > 1e-12 {
		t.Fatalf("unexpected decline %v", d.DeclinePct)
	}
	if !d.VolumeDeclining {
		t.Fatalf("expected declining volume into the second low")
	}
	if !d.Triggered || d.TriggerIndex != 85 {
		t.Fatalf("expected breakout at bar 85, got triggered=%v index=%d", d.Triggered, d.TriggerIndex)
	}
	if !d.HighVolumeBreakout {
		t.Fatalf("expected high volume breakout")
	}
}

func TestDetectDoubleBottomBeforeBreakout(t *testing.T) {
	// up to bar 80 the W is complete but the reaction high is untouched
	sits := DetectDoubleBottom(doubleBottomSeries(t).SliceTo(80), DefaultConfig())
	if len(sits) != 1 {
		t.Fatalf("expected one situation, got %d", len(sits))
	}
	d := sits[0].Details.(models.DoubleBottomDetails)
	if d.Triggered || d.TriggerIndex != -1 {
		t.Fatalf("expected untriggered pattern, got %+v", d)
	}
}

func TestDetectDoubleBottomRejectsShallowBounce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinBouncePct = 0.20
	if sits := DetectDoubleBottom(doubleBottomSeries(t), cfg); len(sits) != 0 {
		t.Fatalf("expected rejection for shallow bounce, got %v", sits)
	}
}

func TestDetectDoubleBottomRejectsWidePair(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PairTolerance = 0.005 // 80 vs 81 is a 1.25% spread
	if sits := DetectDoubleBottom(doubleBottomSeries(t), cfg); len(sits) != 0 {
		t.Fatalf("expected rejection for asymmetric lows, got %v", sits)
	}
}

func TestDetectDoubleBottomRequireVolumeDrop(t *testing.T) {
	closes := doubleBottomCloses()
	volumes := make([]float64, len(closes))
	for i := range volumes {
		volumes[i] = 1000 // flat volume: no exhaustion signature
	}
	s := seriesWithVolumes(t, closes, volumes)

	cfg := DefaultConfig()
	cfg.RequireVolumeDrop = true
	if sits := DetectDoubleBottom(s, cfg); len(sits) != 0 {
		t.Fatalf("expected rejection without volume drop, got %v", sits)
	}
}

func TestDetectDoubleBottomTooFewPivots(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	if sits := DetectDoubleBottom(seriesFromCloses(t, closes), DefaultConfig()); len(sits) != 0 {
		t.Fatalf("expected no detection in a monotone series, got %v", sits)
	}
}
