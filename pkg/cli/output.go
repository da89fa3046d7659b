package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

var categoryColors = map[types.Category]*color.Color{
	types.CategoryLow:    color.New(color.FgGreen, color.Bold),
	types.CategoryMedium: color.New(color.FgYellow, color.Bold),
	types.CategoryHigh:   color.New(color.FgRed, color.Bold),
}

var errorColor = color.New(color.FgRed)

func writerOf(c *cli.Command) io.Writer {
	if w := c.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func colorCategory(category types.Category) string {
	if c, ok := categoryColors[category]; ok {
		return c.Sprint(category.String())
	}
	return category.String()
}

func formatWeights(w model.WeightSet) string {
	return fmt.Sprintf("wL=%g wI=%g wD=%g wE=%g", w.WL, w.WI, w.WD, w.WE)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to encode output")
	}
	return nil
}

func printResult(w io.Writer, result *model.RiskResult) {
	fmt.Fprintf(w, "Method:      %s\n", result.Method)
	fmt.Fprintf(w, "Score:       %d\n", result.Score)
	fmt.Fprintf(w, "Category:    %s\n", colorCategory(result.Category))
	fmt.Fprintf(w, "Explanation: %s\n", result.Explanation)
	if result.WeightsUsed != nil {
		fmt.Fprintf(w, "Weights:     %s\n", formatWeights(*result.WeightsUsed))
	}
}

func printBatch(w io.Writer, result *model.BatchResult) {
	for _, entry := range result.Results {
		fmt.Fprintf(w, "[%d] %-8s score=%-3d %s\n",
			entry.Index, entry.Result.Method, entry.Result.Score, colorCategory(entry.Result.Category))
	}
	for _, failed := range result.Errors {
		fmt.Fprintf(w, "[%d] %s %s\n", failed.Index, errorColor.Sprint("error:"), failed.Message)
	}
	fmt.Fprintf(w, "%d succeeded, %d failed\n", len(result.Results), len(result.Errors))
}
