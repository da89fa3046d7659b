package model

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
)

const (
	ExplanationRPN      = "RPN = likelihood × impact × detectability"
	ExplanationWeighted = "Weighted average scaled to 0..100"

	// weightedScale maps the 1..5 weighted average onto 0..100
	weightedScale = 20
)

// CategorizeRPN buckets an RPN score: <=20 LOW, <=60 MEDIUM, otherwise HIGH
func CategorizeRPN(score int) types.Category {
	switch {
	case score <= 20:
		return types.CategoryLow
	case score <= 60:
		return types.CategoryMedium
	default:
		return types.CategoryHigh
	}
}

// CategorizeWeighted buckets a WEIGHTED score: <33 LOW, <=66 MEDIUM, otherwise HIGH
func CategorizeWeighted(score int) types.Category {
	switch {
	case score < 33:
		return types.CategoryLow
	case score <= 66:
		return types.CategoryMedium
	default:
		return types.CategoryHigh
	}
}

// Categorize dispatches to the method-specific thresholds
func Categorize(method types.Method, score int) (types.Category, error) {
	switch method {
	case types.MethodRPN:
		return CategorizeRPN(score), nil
	case types.MethodWeighted:
		return CategorizeWeighted(score), nil
	default:
		return "", goerr.New("unsupported method", goerr.V(MethodKey, method))
	}
}

// ComputeRPN multiplies the three factors. Inputs are not range checked,
// so a product that does not fit in an int is reported as ErrScoreOverflow.
func ComputeRPN(likelihood, impact, detectability int) (*RiskResult, error) {
	score, ok := mulInt(likelihood, impact)
	if ok {
		score, ok = mulInt(score, detectability)
	}
	if !ok {
		return nil, goerr.Wrap(ErrScoreOverflow, "failed to compute RPN score",
			goerr.V(FactorsKey, []int{likelihood, impact, detectability}))
	}

	category, err := Categorize(types.MethodRPN, score)
	if err != nil {
		return nil, err
	}

	return &RiskResult{
		Method: types.MethodRPN,
		Inputs: RiskInput{
			Likelihood:    likelihood,
			Impact:        impact,
			Detectability: detectability,
		},
		Score:       score,
		Category:    category,
		Explanation: ExplanationRPN,
	}, nil
}

// mulInt returns a*b and false when the product overflows int
func mulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return 0, false
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}

// ComputeWeighted computes the weighted average of the four factors using
// defaults merged with override, re-normalized by the total weight and
// scaled to 0..100. The result is rounded once, after scaling.
func ComputeWeighted(likelihood, impact, detectability, exposure int, defaults WeightSet, override *PartialWeights) (*RiskResult, error) {
	w := defaults.Merge(override)

	weightedSum := (w.WL * float64(likelihood)) + (w.WI * float64(impact)) + (w.WD * float64(detectability)) + (w.WE * float64(exposure))
	totalWeight := w.Total()
	if totalWeight == 0 {
		return nil, goerr.Wrap(ErrZeroTotalWeight, "failed to normalize weighted score", goerr.V(WeightsKey, w))
	}

	scaled := math.Round((weightedSum / totalWeight) * weightedScale)
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) {
		return nil, goerr.Wrap(ErrNonFiniteScore, "failed to compute weighted score", goerr.V(WeightsKey, w))
	}
	// float64(math.MaxInt) rounds up to 2^63 on 64-bit platforms
	if scaled >= float64(math.MaxInt) || scaled < float64(math.MinInt) {
		return nil, goerr.Wrap(ErrScoreOverflow, "failed to compute weighted score",
			goerr.V(WeightsKey, w),
			goerr.V(ScaledKey, scaled))
	}
	score := int(scaled)

	category, err := Categorize(types.MethodWeighted, score)
	if err != nil {
		return nil, err
	}

	return &RiskResult{
		Method: types.MethodWeighted,
		Inputs: RiskInput{
			Likelihood:    likelihood,
			Impact:        impact,
			Detectability: detectability,
			Exposure:      &exposure,
		},
		WeightsUsed: &w,
		Score:       score,
		Category:    category,
		Explanation: ExplanationWeighted,
	}, nil
}
