package robust

import (
	"math"
	"testing"
)

func testConfig() Config {
	return Config{MinOccurrences: 5, MinConfidence: 0.6}
}

func TestEvaluateInsufficientData(t *testing.T) {
	e := NewEvaluator(testConfig())
	ev := e.Evaluate("p", []float64{0.05, 0.04, 0.06})

	if ev.OccurrenceCount != 3 {
		t.Fatalf("unexpected count %d", ev.OccurrenceCount)
	}
	if ev.IsSignificant {
		t.Fatalf("expected not significant below MinOccurrences")
	}
	if ev.MeanReturn != 0 || ev.StabilityScore != 0 || ev.StatisticalStrength != 0 {
		t.Fatalf("expected zeroed scores for insufficient data, got %+v", ev)
	}
}

func TestEvaluateConsistentSampleIsSignificant(t *testing.T) {
	e := NewEvaluator(testConfig())

	returns := make([]float64, 40)
	for i := range returns {
		returns[i] = 0.02
		if i%2 == 1 {
			returns[i] = 0.021
		}
	}
	ev := e.Evaluate("p", returns)

	if !ev.IsSignificant {
		t.Fatalf("expected significant, got %+v", ev)
	}
	if ev.StabilityScore < 0.9 {
		t.Fatalf("expected high stability, got %v", ev.StabilityScore)
	}
	if ev.StatisticalStrength < 0.9 {
		t.Fatalf("expected high strength, got %v", ev.StatisticalStrength)
	}
	if math.Abs(ev.WinRate-1) > 1e-12 {
		t.Fatalf("expected unit win rate, got %v", ev.WinRate)
	}
}

func TestEvaluateAllZeroReturnsAreUnstable(t *testing.T) {
	e := NewEvaluator(testConfig())

	ev := e.Evaluate("p", make([]float64, 20))

	if ev.StabilityScore != 0 {
		t.Fatalf("expected zero stability for an all-zero sample, got %v", ev.StabilityScore)
	}
	if ev.IsSignificant {
		t.Fatalf("an all-zero sample must not be significant: %+v", ev)
	}
}

func TestEvaluateSignFlipsAreNotStable(t *testing.T) {
	e := NewEvaluator(testConfig())

	// quarters alternate between strongly positive and strongly negative means
	returns := make([]float64, 40)
	for i := range returns {
		if (i/10)%2 == 0 {
			returns[i] = 0.05
		} else {
			returns[i] = -0.05
		}
	}
	ev := e.Evaluate("p", returns)

	if ev.StabilityScore > 0.5 {
		t.Fatalf("expected low stability for regime flips, got %v", ev.StabilityScore)
	}
	if ev.IsSignificant {
		t.Fatalf("expected not significant, got %+v", ev)
	}
}

func TestStrengthGrowsWithSampleSize(t *testing.T) {
	e := NewEvaluator(testConfig())

	constant := func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = 0.01
		}
		return out
	}

	small := e.Evaluate("p", constant(8)).StatisticalStrength
	large := e.Evaluate("p", constant(30)).StatisticalStrength
	if large <= small {
		t.Fatalf("expected strength to grow with n: %v vs %v", small, large)
	}
}

func TestRobustStatsEmpty(t *testing.T) {
	e := NewEvaluator(testConfig())
	rs := e.RobustStats(nil)

	if rs.SampleSize != 0 {
		t.Fatalf("unexpected sample size %d", rs.SampleSize)
	}
	if rs.PValue != 1 {
		t.Fatalf("expected p-value 1 for empty sample, got %v", rs.PValue)
	}
	if rs.RobustScore != 0 {
		t.Fatalf("expected zero score, got %v", rs.RobustScore)
	}
}

func TestRobustStatsShrinkage(t *testing.T) {
	e := NewEvaluator(testConfig())

	// 4 of 5 winners: the raw 80% win rate must shrink toward 50%
	rs := e.RobustStats([]float64{0.02, 0.01, 0.03, -0.01, 0.02})

	if rs.AdjustedWinRate >= rs.WinRate {
		t.Fatalf("expected shrinkage below raw win rate: %v vs %v", rs.AdjustedWinRate, rs.WinRate)
	}
	if rs.AdjustedWinRate <= 0.5 {
		t.Fatalf("expected adjusted rate above prior: %v", rs.AdjustedWinRate)
	}
	want := (4 + 10*0.5) / (5 + 10.0)
	if math.Abs(rs.AdjustedWinRate-want) > 1e-12 {
		t.Fatalf("adjusted win rate %v, want %v", rs.AdjustedWinRate, want)
	}
	if math.Abs(rs.SampleSizeFactor-0.05) > 1e-12 {
		t.Fatalf("sample size factor %v, want 0.05", rs.SampleSizeFactor)
	}
}

func TestRobustStatsLargeConsistentSampleScoresHigh(t *testing.T) {
	e := NewEvaluator(testConfig())

	returns := make([]float64, 120)
	for i := range returns {
		returns[i] = 0.015
		if i%2 == 1 {
			returns[i] = 0.025
		}
	}
	rs := e.RobustStats(returns)

	if rs.SampleSizeFactor != 1 {
		t.Fatalf("expected saturated size factor, got %v", rs.SampleSizeFactor)
	}
	if rs.PValue > 0.01 {
		t.Fatalf("expected tiny p-value, got %v", rs.PValue)
	}
	if rs.RobustScore < 70 {
		t.Fatalf("expected high robust score, got %v", rs.RobustScore)
	}
	if rs.PessimisticEV <= 0 {
		t.Fatalf("expected positive pessimistic EV, got %v", rs.PessimisticEV)
	}
}

func TestPValueAgainstZero(t *testing.T) {
	if got := pValueAgainstZero(0.05, 0, 10); got != 1 {
		t.Fatalf("expected 1 for degenerate std, got %v", got)
	}
	if got := pValueAgainstZero(0.05, 0.1, 1); got != 1 {
		t.Fatalf("expected 1 for n<2, got %v", got)
	}
	strong := pValueAgainstZero(0.05, 0.01, 50)
	weak := pValueAgainstZero(0.001, 0.05, 50)
	if strong >= weak {
		t.Fatalf("expected stronger evidence to yield smaller p: %v vs %v", strong, weak)
	}
}
