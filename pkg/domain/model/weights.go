package model

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
)

// WeightSet holds the per-factor multipliers of the WEIGHTED model.
// It is a value type; every operation returns a new WeightSet.
type WeightSet struct {
	WL float64 `json:"wL" toml:"wL"`
	WI float64 `json:"wI" toml:"wI"`
	WD float64 `json:"wD" toml:"wD"`
	WE float64 `json:"wE" toml:"wE"`
}

// DefaultWeights returns the built-in weight distribution
func DefaultWeights() WeightSet {
	return WeightSet{
		WL: 0.4,
		WI: 0.3,
		WD: 0.2,
		WE: 0.1,
	}
}

// Total returns wL + wI + wD + wE
func (w WeightSet) Total() float64 {
	return w.WL + w.WI + w.WD + w.WE
}

// Merge overlays the fields present in p on top of w.
// A nil p returns w unchanged.
func (w WeightSet) Merge(p *PartialWeights) WeightSet {
	merged := w
	if p == nil {
		return merged
	}
	if p.WL != nil {
		merged.WL = *p.WL
	}
	if p.WI != nil {
		merged.WI = *p.WI
	}
	if p.WD != nil {
		merged.WD = *p.WD
	}
	if p.WE != nil {
		merged.WE = *p.WE
	}
	return merged
}

// Validate checks that the weight set can be used as a configured default.
// Per-request weights are not validated here; a zero total on a request
// surfaces as a computation error instead.
func (w WeightSet) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"wL", w.WL},
		{"wI", w.WI},
		{"wD", w.WD},
		{"wE", w.WE},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return goerr.Wrap(ErrInvalidWeight, "weight must be finite", goerr.V(WeightNameKey, f.name), goerr.V(WeightValueKey, f.value))
		}
		if f.value < 0 {
			return goerr.Wrap(ErrInvalidWeight, "weight must not be negative", goerr.V(WeightNameKey, f.name), goerr.V(WeightValueKey, f.value))
		}
	}
	if w.Total() == 0 {
		return goerr.Wrap(ErrZeroTotalWeight, "default weights must not all be zero")
	}
	return nil
}

// PartialWeights is a caller-supplied override. Nil fields keep the default.
type PartialWeights struct {
	WL *float64 `json:"wL,omitempty" toml:"wL,omitempty"`
	WI *float64 `json:"wI,omitempty" toml:"wI,omitempty"`
	WD *float64 `json:"wD,omitempty" toml:"wD,omitempty"`
	WE *float64 `json:"wE,omitempty" toml:"wE,omitempty"`
}
