package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
	"github.com/secmon-lab/riskcalc/pkg/utils/safe"
)

// ErrorResponse is the JSON body written for every failed HTTP request
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Handle logs the error with a message and reports it to Sentry when configured.
// The error is returned as-is so callers can keep propagating it.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logError(ctx, msg, err)
	report(ctx, err)

	return err
}

// HandleHTTP logs the error and writes a JSON error response.
// Server errors (5xx) are logged at error level, reported to Sentry and
// expose err.Error() in the "error" field; client errors only carry message.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int, message string) {
	if err == nil {
		return
	}

	resp := ErrorResponse{Message: message}
	if statusCode >= http.StatusInternalServerError {
		logError(ctx, "HTTP error", err, "status", statusCode)
		report(ctx, err)
		resp.Error = err.Error()
	} else {
		logging.From(ctx).Info("HTTP client error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	WriteJSON(ctx, w, statusCode, resp)
}

// WriteJSON encodes v and writes it with the given status code
func WriteJSON(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logError(ctx, "failed to marshal response", goerr.Wrap(err, "failed to marshal response"))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	safe.Write(ctx, w, data)
}

func logError(ctx context.Context, msg string, err error, args ...any) {
	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		args = append(args,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		args = append(args, "error", err.Error())
	}
	logger.Error(msg, args...)
}

func report(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}
	hub.CaptureException(err)
}
