package models

// OutcomeStatistics aggregates the forward-return distribution of one
// (situation, horizon) pair. A zero value with SampleSize == 0 is the
// documented result for an empty sample.
type OutcomeStatistics struct {
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	Std          float64 `json:"std"`
	Skewness     float64 `json:"skewness"`
	Kurtosis     float64 `json:"kurtosis"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Percentile5  float64 `json:"percentile_5"`
	Percentile25 float64 `json:"percentile_25"`
	Percentile75 float64 `json:"percentile_75"`
	Percentile95 float64 `json:"percentile_95"`
	WinRate      float64 `json:"win_rate"`
	AvgWin       float64 `json:"avg_win"`
	AvgLoss      float64 `json:"avg_loss"`
	ProfitFactor float64 `json:"profit_factor"`
	MaxDrawdown  float64 `json:"max_drawdown"`
	SampleSize   int     `json:"sample_size"`
}

// RobustStatistics extends OutcomeStatistics with shrinkage-adjusted
// quantities that stay meaningful for small samples.
type RobustStatistics struct {
	OutcomeStatistics

	AdjustedWinRate   float64 `json:"adjusted_win_rate"`
	ReturnConsistency float64 `json:"return_consistency"`
	PValue            float64 `json:"p_value"`
	SampleSizeFactor  float64 `json:"sample_size_factor"`
	PessimisticEV     float64 `json:"pessimistic_ev"`
	RobustScore       float64 `json:"robust_score"`
}

// PatternEvaluation is the robustness evaluator's verdict on one pattern.
type PatternEvaluation struct {
	PatternID           string  `json:"pattern_id"`
	OccurrenceCount     int     `json:"occurrence_count"`
	MeanReturn          float64 `json:"mean_return"`
	StdReturn           float64 `json:"std_return"`
	WinRate             float64 `json:"win_rate"`
	MaxDrawdown         float64 `json:"max_drawdown"`
	IsSignificant       bool    `json:"is_significant"`
	StabilityScore      float64 `json:"stability_score"`
	StatisticalStrength float64 `json:"statistical_strength"`
}

// UncertaintyLevel buckets posterior uncertainty by sample size.
type UncertaintyLevel string

const (
	UncertaintyLow    UncertaintyLevel = "low"
	UncertaintyMedium UncertaintyLevel = "medium"
	UncertaintyHigh   UncertaintyLevel = "high"
)

// Interval is a symmetric credible interval around a posterior mean.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// BayesianEdgeEstimate is the posterior summary of a forward-return sample
// under a conservative zero-mean Gaussian prior.
type BayesianEdgeEstimate struct {
	PointEstimate         float64          `json:"point_estimate"`
	CredibleInterval95    Interval         `json:"credible_interval_95"`
	CredibleInterval68    Interval         `json:"credible_interval_68"`
	ProbabilityPositive   float64          `json:"probability_positive"`
	ProbabilityAboveMin   float64          `json:"probability_above_threshold"`
	BiasAdjustedEdge      float64          `json:"bias_adjusted_edge"`
	SampleSize            int              `json:"sample_size"`
	Uncertainty           UncertaintyLevel `json:"uncertainty_level"`
}

// PermutationTestResult reports how extreme an observed mean is versus a
// randomized null drawn from a baseline population.
type PermutationTestResult struct {
	RealMeanReturn     float64 `json:"real_mean_return"`
	PercentileRank     float64 `json:"percentile_rank"`
	PValue             float64 `json:"p_value"`
	IsBetterThanRandom bool    `json:"is_better_than_random"`
	NPermutations      int     `json:"n_permutations"`
}

// ConfidenceInterval is a bounded interval for an observed proportion.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Point float64 `json:"point"`
	Upper float64 `json:"upper"`
}
