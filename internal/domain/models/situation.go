package models

// Priority marks whether a situation came from a structural detector
// (PRIMARY) or a statistical regime detector (SECONDARY).
type Priority string

const (
	PriorityPrimary   Priority = "PRIMARY"
	PrioritySecondary Priority = "SECONDARY"
)

// SituationKind tags the closed set of detector families. Consumers dispatch
// on the kind (or on the concrete Details type) instead of poking at
// string-keyed maps.
type SituationKind string

const (
	KindDoubleBottom      SituationKind = "double_bottom"
	KindInverseHS         SituationKind = "inverse_head_shoulders"
	KindBullFlag          SituationKind = "bull_flag"
	KindHigherLows        SituationKind = "higher_lows"
	KindMomentumRegime    SituationKind = "momentum_regime"
	KindVolatilityRegime  SituationKind = "volatility_regime"
	KindVolumeSurge       SituationKind = "volume_surge"
	KindGap               SituationKind = "gap"
	KindRangeExtreme      SituationKind = "range_extreme"
	KindCalendar          SituationKind = "calendar"
)

// SituationDetails is the typed metadata payload attached to a Situation.
// Each detector family has exactly one concrete implementation.
type SituationDetails interface {
	// Meta flattens the payload into a key-value view for reports and storage.
	Meta() map[string]any
}

// Situation is one detected occurrence of a named market condition.
// Indices are strictly increasing positions into the MarketSeries the
// detector was given. Immutable once created.
type Situation struct {
	Name        string
	Kind        SituationKind
	Priority    Priority
	Indices     []int
	Description string
	Details     SituationDetails
}

// DoubleBottomDetails describes a detected W-shaped reversal.
type DoubleBottomDetails struct {
	FirstLowIndex      int
	SecondLowIndex     int
	FirstLowPrice      float64
	SecondLowPrice     float64
	ReactionHigh       float64
	DeclinePct         float64
	BouncePct          float64
	VolumeDeclining    bool
	Triggered          bool
	TriggerIndex       int
	HighVolumeBreakout bool
}

func (d DoubleBottomDetails) Meta() map[string]any {
	return map[string]any{
		"first_low_index":      d.FirstLowIndex,
		"second_low_index":     d.SecondLowIndex,
		"first_low_price":      d.FirstLowPrice,
		"second_low_price":     d.SecondLowPrice,
		"reaction_high":        d.ReactionHigh,
		"decline_pct":          d.DeclinePct,
		"bounce_pct":           d.BouncePct,
		"volume_declining":     d.VolumeDeclining,
		"triggered":            d.Triggered,
		"trigger_index":        d.TriggerIndex,
		"high_volume_breakout": d.HighVolumeBreakout,
	}
}

// InverseHSDetails describes an inverse head-and-shoulders base.
type InverseHSDetails struct {
	HeadIndex          int
	HeadPrice          float64
	LeftShoulderIndex  int
	RightShoulderIndex int
	ShoulderSpreadPct  float64
	DeclinePct         float64
}

func (d InverseHSDetails) Meta() map[string]any {
	return map[string]any{
		"head_index":           d.HeadIndex,
		"head_price":           d.HeadPrice,
		"left_shoulder_index":  d.LeftShoulderIndex,
		"right_shoulder_index": d.RightShoulderIndex,
		"shoulder_spread_pct":  d.ShoulderSpreadPct,
		"decline_pct":          d.DeclinePct,
	}
}

// BullFlagDetails describes a volatility-contracting consolidation after a decline.
type BullFlagDetails struct {
	ConsolidationStart int
	ConsolidationEnd   int
	DeclinePct         float64
	DeclineCV          float64
	ConsolidationCV    float64
}

func (d BullFlagDetails) Meta() map[string]any {
	return map[string]any{
		"consolidation_start": d.ConsolidationStart,
		"consolidation_end":   d.ConsolidationEnd,
		"decline_pct":         d.DeclinePct,
		"decline_cv":          d.DeclineCV,
		"consolidation_cv":    d.ConsolidationCV,
	}
}

// HigherLowsDetails describes a sequence of non-decreasing pivot lows.
type HigherLowsDetails struct {
	LowIndices []int
	LowPrices  []float64
	DeclinePct float64
}

func (d HigherLowsDetails) Meta() map[string]any {
	return map[string]any{
		"low_indices": d.LowIndices,
		"low_prices":  d.LowPrices,
		"decline_pct": d.DeclinePct,
	}
}

// RegimeDetails is the shared payload of the threshold/percentile detectors
// (momentum, volatility, volume, gap, range extremes, calendar fields).
type RegimeDetails struct {
	Rule      string
	Threshold float64
	Window    int
}

func (d RegimeDetails) Meta() map[string]any {
	return map[string]any{
		"rule":      d.Rule,
		"threshold": d.Threshold,
		"window":    d.Window,
	}
}
