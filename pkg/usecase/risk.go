package usecase

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
)

type RiskUseCase struct {
	defaultWeights model.WeightSet
	strictRanges   bool
}

func NewRiskUseCase(defaultWeights model.WeightSet, strictRanges bool) *RiskUseCase {
	return &RiskUseCase{
		defaultWeights: defaultWeights,
		strictRanges:   strictRanges,
	}
}

// DefaultWeights returns a copy of the configured default weight set
func (uc *RiskUseCase) DefaultWeights() model.WeightSet {
	return uc.defaultWeights
}

// Models returns the catalog of supported scoring models
func (uc *RiskUseCase) Models() *model.ModelCatalog {
	return model.DescribeModels(uc.defaultWeights)
}

// Calculate validates req and computes its score with the requested method
func (uc *RiskUseCase) Calculate(req model.CalculateRequest) (*model.RiskResult, error) {
	if req.Method == "" || req.Likelihood == 0 || req.Impact == 0 || req.Detectability == 0 {
		return nil, goerr.Wrap(ErrMissingParameters, "invalid calculate request")
	}

	method, err := types.ParseMethod(req.Method)
	if err != nil {
		return nil, ErrUnsupportedMethod.Wrap(err, goerr.V(MethodKey, req.Method))
	}

	if method.RequiresExposure() && req.Exposure == nil {
		return nil, goerr.Wrap(ErrExposureRequired, "invalid calculate request", goerr.V(MethodKey, method))
	}
	if err := uc.checkRanges(req, method.RequiresExposure()); err != nil {
		return nil, err
	}

	switch method {
	case types.MethodRPN:
		result, err := model.ComputeRPN(req.Likelihood, req.Impact, req.Detectability)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to calculate RPN score")
		}
		return result, nil

	case types.MethodWeighted:
		result, err := model.ComputeWeighted(req.Likelihood, req.Impact, req.Detectability, *req.Exposure, uc.defaultWeights, req.Weights)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to calculate weighted score")
		}
		return result, nil

	default:
		return nil, goerr.Wrap(ErrUnsupportedMethod, "invalid calculate request", goerr.V(MethodKey, method))
	}
}

type factorRange struct {
	name     string
	value    int
	min, max int
}

func (uc *RiskUseCase) checkRanges(req model.CalculateRequest, withExposure bool) error {
	if !uc.strictRanges {
		return nil
	}

	factors := []factorRange{
		{model.ParamLikelihood, req.Likelihood, model.FactorMin, model.FactorMax},
		{model.ParamImpact, req.Impact, model.FactorMin, model.FactorMax},
		{model.ParamDetectability, req.Detectability, model.FactorMin, model.FactorMax},
	}
	if withExposure && req.Exposure != nil {
		factors = append(factors, factorRange{model.ParamExposure, *req.Exposure, model.ExposureMin, model.ExposureMax})
	}

	for _, f := range factors {
		if f.value < f.min || f.value > f.max {
			return goerr.Wrap(ErrOutOfRange, "invalid calculate request",
				goerr.V(ParameterKey, f.name),
				goerr.V(ValueKey, f.value))
		}
	}
	return nil
}
