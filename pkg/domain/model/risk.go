package model

import "github.com/secmon-lab/riskcalc/pkg/domain/types"

// RiskInput is the set of factors a score is computed from.
// Exposure is only consumed by the WEIGHTED model.
type RiskInput struct {
	Likelihood    int  `json:"likelihood"`
	Impact        int  `json:"impact"`
	Detectability int  `json:"detectability"`
	Exposure      *int `json:"exposure,omitempty"`
}

// RiskResult is the outcome of a single calculation
type RiskResult struct {
	Method      types.Method   `json:"method"`
	Inputs      RiskInput      `json:"inputs"`
	WeightsUsed *WeightSet     `json:"weightsUsed"`
	Score       int            `json:"score"`
	Category    types.Category `json:"category"`
	Explanation string         `json:"explanation"`
}

// CalculateRequest is the payload of a calculation, as received from a caller.
// Zero values of the core factors mean "not provided".
type CalculateRequest struct {
	Method        string          `json:"method" toml:"method"`
	Likelihood    int             `json:"likelihood" toml:"likelihood"`
	Impact        int             `json:"impact" toml:"impact"`
	Detectability int             `json:"detectability" toml:"detectability"`
	Exposure      *int            `json:"exposure,omitempty" toml:"exposure,omitempty"`
	Weights       *PartialWeights `json:"weights,omitempty" toml:"weights,omitempty"`
}

// Input returns the core factors carried by the request
func (r CalculateRequest) Input() RiskInput {
	return RiskInput{
		Likelihood:    r.Likelihood,
		Impact:        r.Impact,
		Detectability: r.Detectability,
		Exposure:      r.Exposure,
	}
}
