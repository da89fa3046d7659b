package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
	"github.com/secmon-lab/riskcalc/pkg/usecase"
)

func runForTest(t *testing.T, args ...string) (string, error) {
	t.Helper()

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var buf bytes.Buffer
	cmd := newCommand("test")
	cmd.Writer = &buf
	err := cmd.Run(context.Background(), append([]string{"riskcalc"}, args...))
	return buf.String(), err
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644)).Required()
	return path
}

func TestCalc(t *testing.T) {
	t.Run("RPN as text", func(t *testing.T) {
		out, err := runForTest(t, "calc", "--method", "RPN", "-l", "2", "-i", "3", "-d", "4")
		gt.NoError(t, err).Required()
		gt.String(t, out).Contains("Score:       24")
		gt.String(t, out).Contains("Category:    MEDIUM")
		gt.B(t, strings.Contains(out, "Weights:")).False()
	})

	t.Run("WEIGHTED with partial weight override as JSON", func(t *testing.T) {
		out, err := runForTest(t, "calc", "--json", "--method", "WEIGHTED",
			"-l", "5", "-i", "1", "-d", "1", "-e", "1", "--wl", "0.5")
		gt.NoError(t, err).Required()

		var result model.RiskResult
		gt.NoError(t, json.Unmarshal([]byte(out), &result)).Required()
		gt.Value(t, result.Method).Equal(types.MethodWeighted)
		gt.Value(t, result.Score).Equal(56)
		gt.Value(t, result.Category).Equal(types.CategoryMedium)
		gt.Value(t, result.WeightsUsed).NotNil().Required()
		gt.Value(t, *result.WeightsUsed).Equal(model.WeightSet{WL: 0.5, WI: 0.3, WD: 0.2, WE: 0.1})
	})

	t.Run("zero exposure is accepted", func(t *testing.T) {
		out, err := runForTest(t, "calc", "--method", "WEIGHTED", "-l", "1", "-i", "1", "-d", "1", "-e", "0")
		gt.NoError(t, err).Required()
		gt.String(t, out).Contains("Category:    LOW")
	})

	t.Run("WEIGHTED without exposure", func(t *testing.T) {
		_, err := runForTest(t, "calc", "--method", "WEIGHTED", "-l", "1", "-i", "1", "-d", "1")
		gt.Error(t, err).Is(usecase.ErrExposureRequired)
	})

	t.Run("unsupported method", func(t *testing.T) {
		_, err := runForTest(t, "calc", "--method", "FMEA", "-l", "1", "-i", "1", "-d", "1")
		gt.Error(t, err).Is(usecase.ErrUnsupportedMethod)
	})

	t.Run("strict ranges", func(t *testing.T) {
		_, err := runForTest(t, "calc", "--method", "RPN", "-l", "6", "-i", "1", "-d", "1", "--strict-ranges")
		gt.Error(t, err).Is(usecase.ErrOutOfRange)

		out, err := runForTest(t, "calc", "--method", "RPN", "-l", "6", "-i", "1", "-d", "1")
		gt.NoError(t, err).Required()
		gt.String(t, out).Contains("Score:       6")
	})

	t.Run("weights file changes defaults", func(t *testing.T) {
		path := writeTestFile(t, "weights.toml", "[weights]\nwL = 1.0\nwI = 0.0\nwD = 0.0\nwE = 0.0\n")

		out, err := runForTest(t, "calc", "--weights-file", path, "--method", "WEIGHTED",
			"-l", "5", "-i", "1", "-d", "1", "-e", "1")
		gt.NoError(t, err).Required()
		gt.String(t, out).Contains("Score:       100")
	})
}

func TestBatch(t *testing.T) {
	t.Run("JSON file with partial failure", func(t *testing.T) {
		path := writeTestFile(t, "batch.json", `{"items": [
			{"method": "RPN", "likelihood": 2, "impact": 3, "detectability": 4},
			{"method": "WEIGHTED", "likelihood": 1, "impact": 1, "detectability": 1},
			{"method": "WEIGHTED", "likelihood": 5, "impact": 5, "detectability": 5, "exposure": 5}
		]}`)

		out, err := runForTest(t, "batch", path)
		gt.Error(t, err).Is(ErrBatchPartialFailure)
		gt.String(t, out).Contains("[0] RPN")
		gt.String(t, out).Contains("[1] error: Exposure parameter required for WEIGHTED method")
		gt.String(t, out).Contains("[2] WEIGHTED")
		gt.String(t, out).Contains("2 succeeded, 1 failed")
	})

	t.Run("TOML file", func(t *testing.T) {
		path := writeTestFile(t, "batch.toml", `
[[items]]
method = "RPN"
likelihood = 5
impact = 5
detectability = 5

[[items]]
method = "WEIGHTED"
likelihood = 5
impact = 1
detectability = 1
exposure = 1
weights = { wL = 0.5 }
`)

		out, err := runForTest(t, "batch", "--json", path)
		gt.NoError(t, err).Required()

		var got struct {
			Results []struct {
				Index    int            `json:"index"`
				Score    int            `json:"score"`
				Category types.Category `json:"category"`
			} `json:"results"`
			Errors []any `json:"errors"`
		}
		gt.NoError(t, json.Unmarshal([]byte(out), &got)).Required()
		gt.Array(t, got.Results).Length(2).Required()
		gt.Value(t, got.Results[0].Score).Equal(125)
		gt.Value(t, got.Results[0].Category).Equal(types.CategoryHigh)
		gt.Value(t, got.Results[1].Index).Equal(1)
		gt.Value(t, got.Results[1].Score).Equal(56)
		gt.Array(t, got.Errors).Length(0)
	})

	t.Run("empty items", func(t *testing.T) {
		path := writeTestFile(t, "batch.json", `{"items": []}`)
		_, err := runForTest(t, "batch", path)
		gt.Error(t, err).Is(usecase.ErrItemsRequired)
	})

	t.Run("malformed item is isolated", func(t *testing.T) {
		path := writeTestFile(t, "batch.json", `{"items": ["oops", {"method": "RPN", "likelihood": 1, "impact": 1, "detectability": 1}]}`)

		out, err := runForTest(t, "batch", path)
		gt.Error(t, err).Is(ErrBatchPartialFailure)
		gt.String(t, out).Contains("[0] error: Invalid item payload")
		gt.String(t, out).Contains("1 succeeded, 1 failed")
	})

	t.Run("missing file argument", func(t *testing.T) {
		_, err := runForTest(t, "batch")
		gt.Error(t, err)
	})
}

func TestModels(t *testing.T) {
	out, err := runForTest(t, "models")
	gt.NoError(t, err).Required()

	var catalog model.ModelCatalog
	gt.NoError(t, json.Unmarshal([]byte(out), &catalog)).Required()
	gt.Array(t, catalog.Models).Length(2).Required()
	gt.Value(t, catalog.Models[0].Name).Equal(types.MethodRPN)
	gt.Value(t, catalog.Models[1].WeightsDefault).NotNil().Required()
	gt.Value(t, *catalog.Models[1].WeightsDefault).Equal(model.DefaultWeights())
}
