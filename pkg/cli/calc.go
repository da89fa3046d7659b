package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/cli/config"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdCalc() *cli.Command {
	var req model.CalculateRequest
	var asJSON bool
	var scoringCfg config.Scoring

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "method",
			Aliases:     []string{"m"},
			Usage:       "Scoring method (RPN or WEIGHTED)",
			Destination: &req.Method,
		},
		&cli.IntFlag{
			Name:        "likelihood",
			Aliases:     []string{"l"},
			Usage:       "Likelihood factor (1..5)",
			Destination: &req.Likelihood,
		},
		&cli.IntFlag{
			Name:        "impact",
			Aliases:     []string{"i"},
			Usage:       "Impact factor (1..5)",
			Destination: &req.Impact,
		},
		&cli.IntFlag{
			Name:        "detectability",
			Aliases:     []string{"d"},
			Usage:       "Detectability factor (1..5)",
			Destination: &req.Detectability,
		},
		&cli.IntFlag{
			Name:    "exposure",
			Aliases: []string{"e"},
			Usage:   "Exposure factor (0..5), required for WEIGHTED",
		},
		&cli.FloatFlag{Name: "wl", Usage: "Likelihood weight override", Category: "Weights"},
		&cli.FloatFlag{Name: "wi", Usage: "Impact weight override", Category: "Weights"},
		&cli.FloatFlag{Name: "wd", Usage: "Detectability weight override", Category: "Weights"},
		&cli.FloatFlag{Name: "we", Usage: "Exposure weight override", Category: "Weights"},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the result as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, scoringCfg.Flags()...)

	return &cli.Command{
		Name:    "calc",
		Aliases: []string{"c"},
		Usage:   "Calculate a single risk score",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := scoringCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure scoring")
			}

			if c.IsSet("exposure") {
				exposure := c.Int("exposure")
				req.Exposure = &exposure
			}
			req.Weights = weightsFromFlags(c)

			result, err := uc.Risk.Calculate(req)
			if err != nil {
				return goerr.Wrap(err, "failed to calculate risk score")
			}

			w := writerOf(c)
			if asJSON {
				return printJSON(w, result)
			}
			printResult(w, result)
			return nil
		},
	}
}

// weightsFromFlags returns only the weight overrides given on the command line
func weightsFromFlags(c *cli.Command) *model.PartialWeights {
	var weights model.PartialWeights
	set := false

	for name, dst := range map[string]**float64{
		"wl": &weights.WL,
		"wi": &weights.WI,
		"wd": &weights.WD,
		"we": &weights.WE,
	} {
		if !c.IsSet(name) {
			continue
		}
		v := c.Float(name)
		*dst = &v
		set = true
	}

	if !set {
		return nil
	}
	return &weights
}
