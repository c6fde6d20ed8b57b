package scoring

import (
	"math"

	"agentops/internal/model"
)

// Composite combines per-dimension results into one profile score.
// Dimensions with a nil score are dropped before anything else happens, and
// the weights of the remaining dimensions are renormalized so a missing
// dimension never dilutes the others. Returns nil when no dimension scored
// or the method is unknown.
func Composite(results []model.DimensionResult, method string) *float64 {
	var scored []model.DimensionResult
	for _, r := range results {
		if r.Score != nil {
			scored = append(scored, r)
		}
	}
	if len(scored) == 0 {
		return nil
	}

	totalWeight := 0.0
	for _, r := range scored {
		totalWeight += r.Weight
	}

	switch method {
	case model.MethodWeightedAverage:
		if totalWeight == 0 {
			return nil
		}
		sum := 0.0
		for _, r := range scored {
			sum += *r.Score * r.Weight / totalWeight
		}
		return round2p(sum)
	case model.MethodMinimum:
		min := *scored[0].Score
		for _, r := range scored[1:] {
			if *r.Score < min {
				min = *r.Score
			}
		}
		return round2p(min)
	case model.MethodGeometricMean:
		// A zero factor collapses a weighted geometric mean.
		for _, r := range scored {
			if *r.Score == 0 {
				zero := 0.0
				return &zero
			}
		}
		if totalWeight == 0 {
			return nil
		}
		product := 1.0
		for _, r := range scored {
			product *= math.Pow(*r.Score, r.Weight/totalWeight)
		}
		return round2p(product)
	default:
		return nil
	}
}

// round2 rounds to two decimals, the resolution composite scores are stored
// and compared at.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round2p(v float64) *float64 {
	r := round2(v)
	return &r
}
