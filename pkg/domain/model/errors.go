package model

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// Computation errors raised by the scoring engine
var (
	ErrZeroTotalWeight = goerr.New("total weight is zero")
	ErrNonFiniteScore  = goerr.New("score is not a finite number")
	ErrScoreOverflow   = goerr.New("score does not fit in an integer")
)

var computationErrors = []error{
	ErrZeroTotalWeight,
	ErrNonFiniteScore,
	ErrScoreOverflow,
}

// Configuration errors for weight sets
var (
	ErrInvalidWeight = goerr.New("invalid weight")
)

// Context keys for error values
const (
	MethodKey      = "method"
	WeightsKey     = "weights"
	WeightNameKey  = "weight_name"
	WeightValueKey = "weight_value"
	FactorsKey     = "factors"
	ScaledKey      = "scaled"
)

// IsComputationError reports whether err is an arithmetic failure of the engine
func IsComputationError(err error) bool {
	return ComputationCause(err) != nil
}

// ComputationCause returns the engine sentinel behind err, or nil
func ComputationCause(err error) error {
	for _, sentinel := range computationErrors {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}
