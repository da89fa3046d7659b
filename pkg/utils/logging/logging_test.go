package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
)

func TestParseLevel(t *testing.T) {
	level, err := logging.ParseLevel("debug")
	gt.NoError(t, err).Required()
	gt.Value(t, level).Equal(slog.LevelDebug)

	level, err = logging.ParseLevel("WARN")
	gt.NoError(t, err).Required()
	gt.Value(t, level).Equal(slog.LevelWarn)

	_, err = logging.ParseLevel("verbose")
	gt.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := logging.ParseFormat("json")
	gt.NoError(t, err).Required()
	gt.Value(t, f).Equal(logging.FormatJSON)

	_, err = logging.ParseFormat("xml")
	gt.Error(t, err)
}

func TestFromAndWith(t *testing.T) {
	gt.Value(t, logging.From(context.Background())).Equal(logging.Default())

	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON, false)
	ctx := logging.With(context.Background(), logger)
	logging.From(ctx).Info("hello", "key", "value")

	var entry map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &entry)).Required()
	gt.Value(t, entry["msg"]).Equal("hello")
	gt.Value(t, entry["key"]).Equal("value")
}

func TestNew_RedactsSecrets(t *testing.T) {
	type sentryConfig struct {
		DSN         string
		Environment string
	}

	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON, false)
	logger.Info("configured", "sentry", sentryConfig{DSN: "https://key@sentry.example/1", Environment: "prod"})

	gt.B(t, strings.Contains(buf.String(), "https://key@sentry.example/1")).False()
	gt.String(t, buf.String()).Contains("prod")
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelWarn, logging.FormatJSON, false)
	logger.Info("dropped")
	gt.Value(t, buf.Len()).Equal(0)

	logger.Warn("kept")
	gt.String(t, buf.String()).Contains("kept")
}
