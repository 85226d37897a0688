// Package edge estimates a pattern's expected forward return under a
// conservative Bayesian prior of no edge.
package edge

import (
	"math"

	"EdgeScan/internal/domain/models"
	"EdgeScan/internal/services/stat"
)

// Config holds the estimator's prior and cost assumptions.
type Config struct {
	PriorStd            float64 `yaml:"prior_std" default:"0.05" validate:"gt=0"`
	SurvivorshipPenalty float64 `yaml:"survivorship_penalty" default:"0.80" validate:"gt=0,lte=1"`
	MinThreshold        float64 `yaml:"min_threshold" default:"0.005"`
	TransactionCost     float64 `yaml:"transaction_cost" default:"0.001" validate:"gte=0"`
}

// Estimator performs a conjugate normal-normal update: the prior is a
// zero-mean Gaussian with market-scale spread, the sample supplies the
// likelihood, and the posterior summarizes what the evidence actually earned
// over the skeptical default.
type Estimator struct {
	cfg Config
}

func NewEstimator(cfg Config) *Estimator {
	return &Estimator{cfg: cfg}
}

// Estimate returns the posterior edge summary for a forward-return sample.
// An empty sample returns a fully neutral estimate.
func (e *Estimator) Estimate(returns []float64) models.BayesianEdgeEstimate {
	n := len(returns)
	if n == 0 {
		return models.BayesianEdgeEstimate{
			ProbabilityPositive: 0.5,
			Uncertainty:         models.UncertaintyHigh,
		}
	}

	sampleMean := stat.Mean(returns)
	sampleStd := stat.Std(returns)
	if sampleStd == 0 {
		// A degenerate sample carries no usable variance information,
		// fall back to the prior spread.
		sampleStd = e.cfg.PriorStd
	}

	priorPrecision := 1 / (e.cfg.PriorStd * e.cfg.PriorStd)
	dataPrecision := float64(n) / (sampleStd * sampleStd)
	postPrecision := priorPrecision + dataPrecision

	postMean := dataPrecision * sampleMean / postPrecision // prior mean is 0
	postStd := 1 / math.Sqrt(postPrecision)

	hurdle := e.cfg.MinThreshold + e.cfg.TransactionCost

	return models.BayesianEdgeEstimate{
		PointEstimate: postMean,
		CredibleInterval95: models.Interval{
			Lower: postMean - 1.96*postStd,
			Upper: postMean + 1.96*postStd,
		},
		CredibleInterval68: models.Interval{
			Lower: postMean - postStd,
			Upper: postMean + postStd,
		},
		ProbabilityPositive: 1 - stat.NormalCDF((0-postMean)/postStd),
		ProbabilityAboveMin: 1 - stat.NormalCDF((hurdle-postMean)/postStd),
		BiasAdjustedEdge:    postMean * e.cfg.SurvivorshipPenalty,
		SampleSize:          n,
		Uncertainty:         uncertaintyLevel(n),
	}
}

func uncertaintyLevel(n int) models.UncertaintyLevel {
	switch {
	case n < 30:
		return models.UncertaintyHigh
	case n < 100:
		return models.UncertaintyMedium
	default:
		return models.UncertaintyLow
	}
}
