package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/riskcalc/pkg/cli/config"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// ErrBatchPartialFailure is returned when at least one batch item failed
var ErrBatchPartialFailure = goerr.New("some items failed to process")

func cmdBatch() *cli.Command {
	var asJSON bool
	var scoringCfg config.Scoring

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print results and errors as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, scoringCfg.Flags()...)

	return &cli.Command{
		Name:      "batch",
		Aliases:   []string{"b"},
		Usage:     "Calculate every item of a JSON or TOML batch file",
		ArgsUsage: "FILE",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("exactly one batch file is required", goerr.V("args", c.Args().Slice()))
			}
			path := c.Args().First()

			items, err := loadBatchFile(path)
			if err != nil {
				return err
			}

			uc, err := scoringCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure scoring")
			}

			result, err := uc.Risk.RunBatch(items)
			if err != nil {
				return goerr.Wrap(err, usecase.Message(err), goerr.V("path", path))
			}

			w := writerOf(c)
			if asJSON {
				if err := printJSON(w, newBatchOutput(result)); err != nil {
					return err
				}
			} else {
				printBatch(w, result)
			}

			if result.PartialFailure() {
				return goerr.Wrap(ErrBatchPartialFailure, "batch completed with errors",
					goerr.V("path", path),
					goerr.V("failed", len(result.Errors)),
					goerr.V("total", result.Total()))
			}
			return nil
		},
	}
}

// loadBatchFile reads `[[items]]` tables from .toml files and
// `{"items": [...]}` from anything else
func loadBatchFile(path string) ([]model.BatchItem, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read batch file", goerr.V("path", path))
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var doc struct {
			Items []model.CalculateRequest `toml:"items"`
		}
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, goerr.Wrap(err, "failed to parse TOML batch file", goerr.V("path", path))
		}
		return model.NewBatchItemsFromRequests(doc.Items), nil
	}

	var doc struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse JSON batch file", goerr.V("path", path))
	}
	return model.NewBatchItems(doc.Items), nil
}

type batchOutputError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type batchOutputResult struct {
	Index int `json:"index"`
	*model.RiskResult
}

type batchOutput struct {
	Results []batchOutputResult `json:"results"`
	Errors  []batchOutputError  `json:"errors,omitempty"`
}

func newBatchOutput(result *model.BatchResult) batchOutput {
	out := batchOutput{Results: []batchOutputResult{}}
	for _, entry := range result.Results {
		out.Results = append(out.Results, batchOutputResult{Index: entry.Index, RiskResult: entry.Result})
	}
	for _, failed := range result.Errors {
		out.Errors = append(out.Errors, batchOutputError{Index: failed.Index, Error: failed.Message})
	}
	return out
}
