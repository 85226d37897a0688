package shuffle

import (
	"testing"
)

func testConfig() Config {
	return Config{NPermutations: 1000, Seed: 42}
}

func TestTestEmptyInput(t *testing.T) {
	tester := NewTester(testConfig())

	for _, c := range []struct {
		name              string
		returns, baseline []float64
	}{
		{"empty returns", nil, []float64{0.01, 0.02}},
		{"empty baseline", []float64{0.01}, nil},
	} {
		got := tester.Test(c.returns, c.baseline)
		if got.PercentileRank != 50 || got.PValue != 1 {
			t.Fatalf("%s: expected neutral result, got %+v", c.name, got)
		}
		if got.IsBetterThanRandom {
			t.Fatalf("%s: expected not better than random", c.name)
		}
	}
}

func TestTestDeterministic(t *testing.T) {
	tester := NewTester(testConfig())

	returns := []float64{0.02, -0.01, 0.03}
	baseline := make([]float64, 200)
	for i := range baseline {
		baseline[i] = float64(i%21-10) / 1000 // -0.010 .. 0.010
	}

	first := tester.Test(returns, baseline)
	second := tester.Test(returns, baseline)
	if first != second {
		t.Fatalf("expected identical results: %+v vs %+v", first, second)
	}
}

func TestTestClearlyBetterThanRandom(t *testing.T) {
	tester := NewTester(testConfig())

	returns := []float64{0.05, 0.05, 0.05}
	baseline := make([]float64, 500)
	for i := range baseline {
		baseline[i] = -0.01
	}

	got := tester.Test(returns, baseline)
	if got.PercentileRank != 100 {
		t.Fatalf("expected rank 100, got %v", got.PercentileRank)
	}
	if got.PValue != 0 {
		t.Fatalf("expected p-value 0, got %v", got.PValue)
	}
	if !got.IsBetterThanRandom {
		t.Fatalf("expected better than random")
	}
}

func TestTestShortSideDirection(t *testing.T) {
	tester := NewTester(testConfig())

	// a negative-mean sample against a positive baseline is extreme on the
	// downside and must rank high, not low
	returns := []float64{-0.05, -0.05}
	baseline := make([]float64, 300)
	for i := range baseline {
		baseline[i] = 0.01
	}

	got := tester.Test(returns, baseline)
	if got.PercentileRank != 100 {
		t.Fatalf("expected rank 100 for short-side pattern, got %v", got.PercentileRank)
	}
	if !got.IsBetterThanRandom {
		t.Fatalf("expected better than random")
	}
}

func TestTestOwnPopulationRanksNearMiddle(t *testing.T) {
	tester := NewTester(testConfig())

	baseline := make([]float64, 1000)
	for i := range baseline {
		baseline[i] = 0.01
		if i%2 == 0 {
			baseline[i] = -0.01
		}
	}

	got := tester.Test([]float64{0}, baseline)
	if got.PercentileRank < 30 || got.PercentileRank > 70 {
		t.Fatalf("expected middling rank for a chance-level sample, got %v", got.PercentileRank)
	}
	if got.IsBetterThanRandom {
		t.Fatalf("expected not better than random")
	}
}

func TestTestWithReplacementWhenBaselineSmall(t *testing.T) {
	tester := NewTester(Config{NPermutations: 100, Seed: 7})

	// baseline smaller than the sample forces replacement sampling
	got := tester.Test([]float64{0.01, 0.02, 0.03, 0.04}, []float64{-0.01, 0.0})
	if got.NPermutations != 100 {
		t.Fatalf("unexpected permutation count %d", got.NPermutations)
	}
	if got.PercentileRank != 100 {
		t.Fatalf("expected rank 100, got %v", got.PercentileRank)
	}
}
