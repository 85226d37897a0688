package repository

// Period is the lookback span requested from the series provider.
type Period string

const (
	Period6M  Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
	Period5Y  Period = "5y"
	PeriodMax Period = "max"
)

// IsValidPeriod returns true if p is a supported lookback span.
func IsValidPeriod(p Period) bool {
	switch p {
	case Period6M, Period1Y, Period2Y, Period5Y, PeriodMax:
		return true
	default:
		return false
	}
}

// DefaultPeriod returns the default lookback span.
func DefaultPeriod() Period { return Period2Y }

// NormalizePeriod converts a raw string to a valid period (or default).
func NormalizePeriod(s string) Period {
	if s == "" {
		return DefaultPeriod()
	}
	p := Period(s)
	if IsValidPeriod(p) {
		return p
	}
	return DefaultPeriod()
}

// ApproxBars returns the rough number of daily bars a period spans, used for
// provider request sizing.
func (p Period) ApproxBars() int {
	switch p {
	case Period6M:
		return 126
	case Period1Y:
		return 252
	case Period2Y:
		return 504
	case Period5Y:
		return 1260
	case PeriodMax:
		return 10000
	default:
		return 504
	}
}
