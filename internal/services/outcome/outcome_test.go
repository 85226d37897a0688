package outcome

import (
	"math"
	"testing"
	"time"

	"EdgeScan/internal/domain/models"
)

func linearSeries(t *testing.T, n int) *models.MarketSeries {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, n)
	for i := 0; i < n; i++ {
		c := float64(100 + i)
		bars[i] = models.Bar{
			Timestamp: base.AddDate(0, 0, i),
			Open:      c, High: c + 1, Low: c - 1, Close: c,
			Volume: 1000,
		}
	}
	s, err := models.NewMarketSeries("TEST", bars)
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	return s
}

func approx(t *testing.T, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestForwardReturnsTruncatesRightEdge(t *testing.T) {
	s := linearSeries(t, 100)

	rets := ForwardReturns(s, []int{0, 78, 90}, 21)
	if len(rets) != 2 {
		t.Fatalf("expected 2 returns (index 90 dropped), got %d", len(rets))
	}
	approx(t, rets[0], 21.0/100, 1e-12)
	approx(t, rets[1], 21.0/178, 1e-12)
}

func TestForwardReturnsBadInput(t *testing.T) {
	s := linearSeries(t, 10)
	if got := ForwardReturns(nil, []int{0}, 1); got != nil {
		t.Fatalf("expected nil for nil series")
	}
	if got := ForwardReturns(s, []int{0}, 0); got != nil {
		t.Fatalf("expected nil for non-positive horizon")
	}
	if got := ForwardReturns(s, []int{-3, 9}, 1); len(got) != 0 {
		t.Fatalf("expected out-of-range indices dropped, got %v", got)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	stats := Analyze(nil)
	if stats.SampleSize != 0 {
		t.Fatalf("expected zero sample size")
	}
	if stats.Mean != 0 || stats.WinRate != 0 || stats.MaxDrawdown != 0 {
		t.Fatalf("expected zero value, got %+v", stats)
	}
}

func TestAnalyze(t *testing.T) {
	returns := []float64{0.1, -0.05, 0.2, -0.1, 0.05}
	stats := Analyze(returns)

	if stats.SampleSize != 5 {
		t.Fatalf("unexpected sample size %d", stats.SampleSize)
	}
	approx(t, stats.Mean, 0.04, 1e-12)
	approx(t, stats.WinRate, 0.6, 1e-12)
	approx(t, stats.AvgWin, 0.35/3, 1e-12)
	approx(t, stats.AvgLoss, 0.075, 1e-12) // positive magnitude
	approx(t, stats.ProfitFactor, 0.35/0.15, 1e-9)
	approx(t, stats.Min, -0.1, 0)
	approx(t, stats.Max, 0.2, 0)
	// equity path peaks at 1.1*0.95*1.2, the -10% trade is the deepest loss
	approx(t, stats.MaxDrawdown, 0.1, 1e-9)
}

func TestAnalyzeZeroReturnsAreNotWins(t *testing.T) {
	stats := Analyze([]float64{0, 0, 0.1})
	approx(t, stats.WinRate, 1.0/3, 1e-12)
	if stats.AvgLoss != 0 {
		t.Fatalf("expected zero avg loss, got %v", stats.AvgLoss)
	}
	if stats.ProfitFactor != 0 {
		t.Fatalf("expected zero profit factor without losses, got %v", stats.ProfitFactor)
	}
}
