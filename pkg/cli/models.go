package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdModels() *cli.Command {
	var scoringCfg config.Scoring

	return &cli.Command{
		Name:  "models",
		Usage: "Print the available scoring models as JSON",
		Flags: scoringCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := scoringCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure scoring")
			}
			return printJSON(writerOf(c), uc.Risk.Models())
		},
	}
}
