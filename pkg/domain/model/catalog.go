package model

import "github.com/secmon-lab/riskcalc/pkg/domain/types"

// ModelCatalog describes every supported scoring model
type ModelCatalog struct {
	Models []ModelDescription `json:"models"`
}

// ModelDescription documents one scoring model for discovery
type ModelDescription struct {
	Name           types.Method              `json:"name"`
	Params         []string                  `json:"params"`
	Ranges         map[string]string         `json:"ranges"`
	Categories     map[types.Category]string `json:"categories"`
	WeightsDefault *WeightSet                `json:"weightsDefault,omitempty"`
}

// Factor parameter names as they appear on the wire
const (
	ParamLikelihood    = "likelihood"
	ParamImpact        = "impact"
	ParamDetectability = "detectability"
	ParamExposure      = "exposure"
)

// Declared factor ranges
const (
	FactorMin   = 1
	FactorMax   = 5
	ExposureMin = 0
	ExposureMax = 5
)

// DescribeModels returns the static catalog. defaults is reported as the
// WEIGHTED model's default weight set.
func DescribeModels(defaults WeightSet) *ModelCatalog {
	catalog := &ModelCatalog{}
	for _, m := range types.AllMethods() {
		catalog.Models = append(catalog.Models, describeModel(m, defaults))
	}
	return catalog
}

func describeModel(m types.Method, defaults WeightSet) ModelDescription {
	switch m {
	case types.MethodRPN:
		return ModelDescription{
			Name:   m,
			Params: []string{ParamLikelihood, ParamImpact, ParamDetectability},
			Ranges: map[string]string{
				ParamLikelihood:    "1..5",
				ParamImpact:        "1..5",
				ParamDetectability: "1..5",
			},
			Categories: map[types.Category]string{
				types.CategoryLow:    "1..20",
				types.CategoryMedium: "21..60",
				types.CategoryHigh:   "61..125",
			},
		}
	case types.MethodWeighted:
		w := defaults
		return ModelDescription{
			Name:   m,
			Params: []string{ParamLikelihood, ParamImpact, ParamDetectability, ParamExposure},
			Ranges: map[string]string{
				ParamLikelihood:    "1..5",
				ParamImpact:        "1..5",
				ParamDetectability: "1..5",
				ParamExposure:      "0..5",
			},
			Categories: map[types.Category]string{
				types.CategoryLow:    "<33",
				types.CategoryMedium: "33..66",
				types.CategoryHigh:   ">66",
			},
			WeightsDefault: &w,
		}
	default:
		return ModelDescription{Name: m}
	}
}
