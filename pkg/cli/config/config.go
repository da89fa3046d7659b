package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
)

// WeightsConfig is the TOML document overriding the built-in default weights.
//
//	[weights]
//	wL = 0.5
//	wE = 0.0
//
// Omitted fields keep their built-in value.
type WeightsConfig struct {
	Weights *model.PartialWeights `toml:"weights"`
}

// Resolve merges the file's weights over the built-in defaults and validates the result
func (c *WeightsConfig) Resolve() (model.WeightSet, error) {
	resolved := model.DefaultWeights().Merge(c.Weights)
	if err := resolved.Validate(); err != nil {
		return model.WeightSet{}, goerr.Wrap(ErrInvalidWeights, err.Error())
	}
	return resolved, nil
}

// LoadWeights reads a weights TOML file and returns the resolved default weight set
func LoadWeights(path string) (model.WeightSet, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.WeightSet{}, goerr.Wrap(ErrConfigNotFound, "weights file not found", goerr.V(ConfigPathKey, path))
		}
		return model.WeightSet{}, goerr.Wrap(err, "failed to read weights file", goerr.V(ConfigPathKey, path))
	}

	var cfg WeightsConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return model.WeightSet{}, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML weights file", goerr.V(ConfigPathKey, path), goerr.V("cause", err.Error()))
	}

	resolved, err := cfg.Resolve()
	if err != nil {
		return model.WeightSet{}, goerr.Wrap(err, "weights validation failed", goerr.V(ConfigPathKey, path))
	}

	return resolved, nil
}
