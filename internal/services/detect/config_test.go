package detect

import "testing"

func TestBacktestWidensPairToleranceOnly(t *testing.T) {
	live := DefaultConfig()
	bt := live.Backtest()

	if bt.PairTolerance != 0.05 {
		t.Fatalf("expected replay tolerance 0.05, got %v", bt.PairTolerance)
	}
	bt.PairTolerance = live.PairTolerance
	if bt != live {
		t.Fatalf("only the pair tolerance may change: %+v vs %+v", bt, live)
	}
}

func TestBacktestKeepsWiderOperatorTolerance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PairTolerance = 0.08

	if got := cfg.Backtest().PairTolerance; got != 0.08 {
		t.Fatalf("replay must not narrow a wider tolerance, got %v", got)
	}
}
