package models

import "time"

// HorizonResult bundles the four independent analyses run on one
// (situation, horizon) forward-return sample.
type HorizonResult struct {
	Horizon     int                   `json:"horizon"`
	Outcome     OutcomeStatistics     `json:"outcome"`
	Robust      RobustStatistics      `json:"robust"`
	Evaluation  PatternEvaluation     `json:"evaluation"`
	Edge        BayesianEdgeEstimate  `json:"edge"`
	Permutation PermutationTestResult `json:"permutation"`
	WinRateCI   ConfidenceInterval    `json:"win_rate_ci"`
}

// SituationReport is one ranked entry of a scan: the situation plus its
// per-horizon statistics. Rank ordering uses the best robust score across
// horizons.
type SituationReport struct {
	Symbol      string          `json:"symbol"`
	Name        string          `json:"name"`
	Kind        SituationKind   `json:"kind"`
	Priority    Priority        `json:"priority"`
	Description string          `json:"description"`
	Occurrences int             `json:"occurrences"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
	Horizons    []HorizonResult `json:"horizons"`
	BestScore   float64         `json:"best_score"`
	Significant bool            `json:"significant"`
}

// ScanReport is the full result of analyzing one instrument.
type ScanReport struct {
	Symbol      string            `json:"symbol"`
	GeneratedAt time.Time         `json:"generated_at"`
	Bars        int               `json:"bars"`
	Situations  []SituationReport `json:"situations"`
}
