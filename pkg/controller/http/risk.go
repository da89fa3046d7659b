package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
	"github.com/secmon-lab/riskcalc/pkg/usecase"
	"github.com/secmon-lab/riskcalc/pkg/utils/errutil"
)

const (
	msgInvalidJSON  = "Invalid JSON"
	msgBodyTooLarge = "Request entity too large"
	msgBatchFailed  = "Some items failed to process"
)

func healthHandler(now func() time.Time) http.HandlerFunc {
	type response struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		errutil.WriteJSON(r.Context(), w, http.StatusOK, response{
			Status:    "ok",
			Timestamp: now().UTC().Format(time.RFC3339),
		})
	}
}

func modelsHandler(uc RiskUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		errutil.WriteJSON(r.Context(), w, http.StatusOK, uc.Models())
	}
}

func calculateHandler(uc RiskUseCase, metrics *Metrics, bodyLimit int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req model.CalculateRequest
		if !decodeBody(w, r, bodyLimit, &req) {
			return
		}

		result, err := uc.Calculate(req)
		if err != nil {
			metrics.observeFailure(err)
			if usecase.IsValidationError(err) {
				errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest, usecase.Message(err))
				return
			}
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to calculate risk", goerr.V("method", req.Method)), http.StatusInternalServerError, usecase.MsgCalculationError)
			return
		}

		metrics.observeResult(result)
		errutil.WriteJSON(ctx, w, http.StatusOK, result)
	}
}

type batchRequest struct {
	Items json.RawMessage `json:"items"`
}

type batchResultItem struct {
	Index    int            `json:"index"`
	Method   types.Method   `json:"method"`
	Score    int            `json:"score"`
	Category types.Category `json:"category"`
}

type batchErrorItem struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type batchResponse struct {
	Message string            `json:"message,omitempty"`
	Errors  []batchErrorItem  `json:"errors,omitempty"`
	Results []batchResultItem `json:"results,omitempty"`
}

func batchHandler(uc RiskUseCase, metrics *Metrics, bodyLimit int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req batchRequest
		if !decodeBody(w, r, bodyLimit, &req) {
			return
		}

		var raws []json.RawMessage
		if len(req.Items) > 0 {
			if err := json.Unmarshal(req.Items, &raws); err != nil {
				raws = nil
			}
		}

		result, err := uc.RunBatch(model.NewBatchItems(raws))
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest, usecase.Message(err))
			return
		}
		metrics.observeBatch(result)

		resp := batchResponse{}
		for _, entry := range result.Results {
			resp.Results = append(resp.Results, batchResultItem{
				Index:    entry.Index,
				Method:   entry.Result.Method,
				Score:    entry.Result.Score,
				Category: entry.Result.Category,
			})
		}

		if !result.PartialFailure() {
			errutil.WriteJSON(ctx, w, http.StatusOK, resp)
			return
		}

		resp.Message = msgBatchFailed
		for _, e := range result.Errors {
			resp.Errors = append(resp.Errors, batchErrorItem{
				Index: e.Index,
				Error: e.Message,
			})
		}
		errutil.WriteJSON(ctx, w, http.StatusBadRequest, resp)
	}
}

// decodeBody reads a JSON body into v, writing the error response itself
// and returning false when the body cannot be used.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, v any) bool {
	body := http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		// An empty body decodes as an empty payload and fails field validation instead
		if errors.Is(err, io.EOF) {
			return true
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "request body too large", goerr.V("limit", limit)), http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return false
		}
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode request body"), http.StatusBadRequest, msgInvalidJSON)
		return false
	}
	return true
}
