package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/usecase"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Scoring holds CLI flags that shape the scoring engine
type Scoring struct {
	weightsFile  string
	strictRanges bool
}

func (x *Scoring) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "weights-file",
			Usage:       "TOML file overriding the default WEIGHTED model weights",
			Category:    "Scoring",
			Sources:     cli.EnvVars("RISKCALC_WEIGHTS_FILE"),
			Destination: &x.weightsFile,
		},
		&cli.BoolFlag{
			Name:        "strict-ranges",
			Usage:       "Reject factors outside their declared ranges (1..5, exposure 0..5)",
			Category:    "Scoring",
			Sources:     cli.EnvVars("RISKCALC_STRICT_RANGES"),
			Destination: &x.strictRanges,
		},
	}
}

func (x Scoring) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("weights_file", x.weightsFile),
		slog.Bool("strict_ranges", x.strictRanges),
	)
}

// Configure builds the use cases with the configured default weights
func (x *Scoring) Configure() (*usecase.UseCases, error) {
	weights := model.DefaultWeights()
	if x.weightsFile != "" {
		loaded, err := LoadWeights(x.weightsFile)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load default weights")
		}
		weights = loaded
		logging.Default().Info("Loaded default weights", "path", x.weightsFile, "weights", weights)
	}

	return usecase.New(
		usecase.WithDefaultWeights(weights),
		usecase.WithStrictRanges(x.strictRanges),
	), nil
}
