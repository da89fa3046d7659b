package usecase

import (
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
)

type UseCases struct {
	defaultWeights model.WeightSet
	strictRanges   bool
	Risk           *RiskUseCase
}

type Option func(*UseCases)

// WithDefaultWeights replaces the built-in default weight set.
// The value is copied; later changes by the caller have no effect.
func WithDefaultWeights(w model.WeightSet) Option {
	return func(uc *UseCases) {
		uc.defaultWeights = w
	}
}

// WithStrictRanges enables rejection of factors outside their declared ranges
func WithStrictRanges(enabled bool) Option {
	return func(uc *UseCases) {
		uc.strictRanges = enabled
	}
}

func New(opts ...Option) *UseCases {
	uc := &UseCases{
		defaultWeights: model.DefaultWeights(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Risk = NewRiskUseCase(uc.defaultWeights, uc.strictRanges)

	return uc
}
