package detect

// Config carries every detector knob. Defaults mirror the daily-bar scale the
// screener runs on; callers construct it from application config.
type Config struct {
	// Pivot / prior-decline qualification
	PivotWindow    int     // symmetric window half-width for local extrema
	LookbackWindow int     // bars scanned for the pre-pattern decline
	MinDeclinePct  float64 // required decline from lookback max, e.g. 0.10

	// Double bottom
	PairTolerance       float64 // max relative distance between the two lows
	MinBouncePct        float64 // required reaction-high bounce off the first low
	MinPairSpacing      int     // min bars between the two lows
	BreakoutVolumeRatio float64 // breakout volume vs trailing average
	VolumeAvgWindow     int     // trailing window for the volume average
	RequireVolumeDrop   bool    // reject pairs without volume exhaustion

	// Inverse head-and-shoulders / higher lows
	PatternWindow     int     // rolling window the base must fit into
	ShoulderTolerance float64 // max relative spread between shoulder prices

	// Bull flag
	FlagMinBars int     // consolidation length
	FlagCVRatio float64 // consolidation CV vs decline CV

	// Statistical regimes
	MomentumWindow    int
	MomentumThreshold float64
	VolWindow         int
	VolPercentile     float64 // rolling-std percentile that marks a high-vol bar
	VolumeSurgeRatio  float64
	GapThreshold      float64
	RangeWindow       int // new N-bar high/low horizon
}

// DefaultConfig returns production defaults. The decline and bounce
// thresholds are policy knobs, not calibrated constants.
func DefaultConfig() Config {
	return Config{
		PivotWindow:         5,
		LookbackWindow:      60,
		MinDeclinePct:       0.10,
		PairTolerance:       0.02,
		MinBouncePct:        0.05,
		MinPairSpacing:      10,
		BreakoutVolumeRatio: 1.5,
		VolumeAvgWindow:     20,
		RequireVolumeDrop:   false,
		PatternWindow:       40,
		ShoulderTolerance:   0.10,
		FlagMinBars:         10,
		FlagCVRatio:         0.70,
		MomentumWindow:      20,
		MomentumThreshold:   0.10,
		VolWindow:           20,
		VolPercentile:       80,
		VolumeSurgeRatio:    2.0,
		GapThreshold:        0.03,
		RangeWindow:         50,
	}
}

// replayPairTolerance is the double-bottom pair tolerance used when walking
// historical prefixes. Live scans keep the tighter default.
const replayPairTolerance = 0.05

// Backtest returns a copy tuned for point-in-time replay: the pair tolerance
// is widened so historical retests a few percent off the first low still
// count as occurrences. Every other knob is carried over unchanged, and an
// already wider operator-set tolerance is never narrowed.
func (c Config) Backtest() Config {
	if c.PairTolerance < replayPairTolerance {
		c.PairTolerance = replayPairTolerance
	}
	return c
}
