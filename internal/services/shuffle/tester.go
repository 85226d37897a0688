// Package shuffle checks an observed pattern mean against a randomized null
// built from the instrument's own return population.
package shuffle

import (
	"math/rand"

	"EdgeScan/internal/domain/models"
	"EdgeScan/internal/services/stat"
)

// Config controls the permutation test.
type Config struct {
	NPermutations int   `yaml:"n_permutations" default:"1000" validate:"gte=1"`
	Seed          int64 `yaml:"seed" default:"42"`
}

// Tester draws repeated random samples from a baseline population and ranks
// the observed mean against them. The generator is seeded so identical input
// always produces identical output.
type Tester struct {
	cfg Config
}

func NewTester(cfg Config) *Tester {
	return &Tester{cfg: cfg}
}

// Test ranks the mean of returns against NPermutations random draws of the
// same size from baseline. Sampling is without replacement when the baseline
// is at least as large as the sample, with replacement otherwise. Empty input
// returns a neutral, non-significant result.
func (t *Tester) Test(returns, baseline []float64) models.PermutationTestResult {
	k := len(returns)
	if k == 0 || len(baseline) == 0 {
		return models.PermutationTestResult{
			PercentileRank: 50,
			PValue:         1,
			NPermutations:  t.cfg.NPermutations,
		}
	}

	observed := stat.Mean(returns)
	rng := rand.New(rand.NewSource(t.cfg.Seed))
	withReplacement := len(baseline) < k

	lessFavorable, atLeastAsExtreme := 0, 0
	draw := make([]float64, k)
	for p := 0; p < t.cfg.NPermutations; p++ {
		if withReplacement {
			for i := range draw {
				draw[i] = baseline[rng.Intn(len(baseline))]
			}
		} else {
			for i, j := range rng.Perm(len(baseline))[:k] {
				draw[i] = baseline[j]
			}
		}
		m := stat.Mean(draw)

		// Direction of "favorable" follows the sign of the observed mean:
		// a short-side pattern is validated by being more negative than
		// chance, not more positive.
		if observed >= 0 {
			if m < observed {
				lessFavorable++
			}
			if m >= observed {
				atLeastAsExtreme++
			}
		} else {
			if m > observed {
				lessFavorable++
			}
			if m <= observed {
				atLeastAsExtreme++
			}
		}
	}

	rank := 100 * float64(lessFavorable) / float64(t.cfg.NPermutations)
	return models.PermutationTestResult{
		RealMeanReturn:     observed,
		PercentileRank:     rank,
		PValue:             float64(atLeastAsExtreme) / float64(t.cfg.NPermutations),
		IsBetterThanRandom: rank >= 90,
		NPermutations:      t.cfg.NPermutations,
	}
}
