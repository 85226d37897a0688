package repository

import "testing"

func TestIsValidPeriod(t *testing.T) {
	for _, p := range []Period{Period6M, Period1Y, Period2Y, Period5Y, PeriodMax} {
		if !IsValidPeriod(p) {
			t.Fatalf("%s should be valid", p)
		}
	}
	if IsValidPeriod("3w") {
		t.Fatalf("3w should be invalid")
	}
}

func TestNormalizePeriod(t *testing.T) {
	if got := NormalizePeriod(""); got != Period2Y {
		t.Fatalf("empty should default to 2y, got %s", got)
	}
	if got := NormalizePeriod("bogus"); got != Period2Y {
		t.Fatalf("bogus should default to 2y, got %s", got)
	}
	if got := NormalizePeriod("5y"); got != Period5Y {
		t.Fatalf("unexpected %s", got)
	}
}

func TestApproxBars(t *testing.T) {
	cases := map[Period]int{
		Period6M:  126,
		Period1Y:  252,
		Period2Y:  504,
		Period5Y:  1260,
		PeriodMax: 10000,
	}
	for p, want := range cases {
		if got := p.ApproxBars(); got != want {
			t.Fatalf("%s: got %d, want %d", p, got, want)
		}
	}
	if got := Period("junk").ApproxBars(); got != 504 {
		t.Fatalf("unknown period should fall back to 504, got %d", got)
	}
}
