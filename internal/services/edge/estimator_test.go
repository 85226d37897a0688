package edge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EdgeScan/internal/domain/models"
)

func testConfig() Config {
	return Config{
		PriorStd:            0.05,
		SurvivorshipPenalty: 0.80,
		MinThreshold:        0.005,
		TransactionCost:     0.001,
	}
}

func TestEstimateEmptySample(t *testing.T) {
	est := NewEstimator(testConfig())
	got := est.Estimate(nil)

	assert.Equal(t, 0.0, got.PointEstimate)
	assert.Equal(t, 0.5, got.ProbabilityPositive)
	assert.Equal(t, models.UncertaintyHigh, got.Uncertainty)
	assert.Equal(t, 0, got.SampleSize)
}

func TestEstimateShrinksTowardZero(t *testing.T) {
	est := NewEstimator(testConfig())

	returns := make([]float64, 20)
	for i := range returns {
		returns[i] = 0.02
		if i%2 == 1 {
			returns[i] = 0.03
		}
	}
	got := est.Estimate(returns)

	sampleMean := 0.025
	require.Greater(t, got.PointEstimate, 0.0)
	assert.Less(t, got.PointEstimate, sampleMean)
	assert.Greater(t, got.ProbabilityPositive, 0.5)
}

func TestEstimateBiasAdjustment(t *testing.T) {
	est := NewEstimator(testConfig())
	got := est.Estimate([]float64{0.01, 0.02, 0.03, -0.01, 0.02, 0.01})

	assert.InDelta(t, got.PointEstimate*0.80, got.BiasAdjustedEdge, 1e-12)
	assert.LessOrEqual(t, math.Abs(got.BiasAdjustedEdge), math.Abs(got.PointEstimate))
}

func TestEstimateIntervalsNested(t *testing.T) {
	est := NewEstimator(testConfig())
	got := est.Estimate([]float64{0.01, -0.02, 0.03, 0.005, -0.01, 0.02, 0.015, -0.005})

	assert.Less(t, got.CredibleInterval95.Lower, got.CredibleInterval68.Lower)
	assert.Greater(t, got.CredibleInterval95.Upper, got.CredibleInterval68.Upper)
	assert.Less(t, got.CredibleInterval68.Lower, got.PointEstimate)
	assert.Greater(t, got.CredibleInterval68.Upper, got.PointEstimate)
}

func TestEstimateDegenerateSample(t *testing.T) {
	est := NewEstimator(testConfig())
	got := est.Estimate([]float64{0.01, 0.01, 0.01, 0.01, 0.01})

	require.False(t, math.IsNaN(got.PointEstimate))
	require.False(t, math.IsNaN(got.ProbabilityPositive))
	assert.Greater(t, got.ProbabilityPositive, 0.5)
	assert.Less(t, got.ProbabilityPositive, 1.0)
}

func TestEstimateUncertaintyLevels(t *testing.T) {
	est := NewEstimator(testConfig())

	sample := func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = 0.01
			if i%2 == 0 {
				out[i] = -0.005
			}
		}
		return out
	}

	assert.Equal(t, models.UncertaintyHigh, est.Estimate(sample(10)).Uncertainty)
	assert.Equal(t, models.UncertaintyMedium, est.Estimate(sample(50)).Uncertainty)
	assert.Equal(t, models.UncertaintyLow, est.Estimate(sample(150)).Uncertainty)
}
