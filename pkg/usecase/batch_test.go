package usecase_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/usecase"
)

func TestRiskUseCase_RunBatch(t *testing.T) {
	uc := usecase.New()

	t.Run("keeps order and attributes the failed index", func(t *testing.T) {
		items := model.NewBatchItemsFromRequests([]model.CalculateRequest{
			{Method: "RPN", Likelihood: 2, Impact: 2, Detectability: 2},
			{Method: "RPN", Likelihood: 2, Impact: 2},
			{Method: "WEIGHTED", Likelihood: 5, Impact: 5, Detectability: 5, Exposure: ptr(5)},
		})

		result, err := uc.Risk.RunBatch(items)
		gt.NoError(t, err).Required()

		gt.Array(t, result.Results).Length(2).Required()
		gt.Value(t, result.Results[0].Index).Equal(0)
		gt.Value(t, result.Results[0].Result.Score).Equal(8)
		gt.Value(t, result.Results[1].Index).Equal(2)
		gt.Value(t, result.Results[1].Result.Score).Equal(100)

		gt.Array(t, result.Errors).Length(1).Required()
		gt.Value(t, result.Errors[0].Index).Equal(1)
		gt.Value(t, result.Errors[0].Message).Equal(usecase.ErrMissingParameters.Error())
		gt.Error(t, result.Errors[0].Err).Is(usecase.ErrMissingParameters)

		gt.Value(t, result.Total()).Equal(3)
		gt.B(t, result.PartialFailure()).True()
	})

	t.Run("all succeed", func(t *testing.T) {
		items := model.NewBatchItemsFromRequests([]model.CalculateRequest{
			{Method: "RPN", Likelihood: 1, Impact: 1, Detectability: 1},
			{Method: "RPN", Likelihood: 5, Impact: 5, Detectability: 5},
		})

		result, err := uc.Risk.RunBatch(items)
		gt.NoError(t, err).Required()
		gt.Array(t, result.Results).Length(2)
		gt.Array(t, result.Errors).Length(0)
		gt.B(t, result.PartialFailure()).False()
	})

	t.Run("does not stop on every kind of failure", func(t *testing.T) {
		raws := []json.RawMessage{
			json.RawMessage(`{"method":"FMEA","likelihood":1,"impact":1,"detectability":1}`),
			json.RawMessage(`{"method":"WEIGHTED","likelihood":1,"impact":1,"detectability":1}`),
			json.RawMessage(`{"method":"WEIGHTED","likelihood":1,"impact":1,"detectability":1,"exposure":1,"weights":{"wL":0,"wI":0,"wD":0,"wE":0}}`),
			json.RawMessage(`"not an object"`),
			json.RawMessage(`{"method":"RPN","likelihood":1,"impact":1,"detectability":1}`),
		}

		result, err := uc.Risk.RunBatch(model.NewBatchItems(raws))
		gt.NoError(t, err).Required()

		gt.Array(t, result.Errors).Length(4).Required()
		gt.Value(t, result.Errors[0].Index).Equal(0)
		gt.Value(t, result.Errors[0].Message).Equal(usecase.ErrUnsupportedMethod.Error())
		gt.Value(t, result.Errors[1].Index).Equal(1)
		gt.Value(t, result.Errors[1].Message).Equal(usecase.ErrExposureRequired.Error())
		gt.Value(t, result.Errors[2].Index).Equal(2)
		gt.Error(t, result.Errors[2].Err).Is(model.ErrZeroTotalWeight)
		gt.Value(t, result.Errors[2].Message).Equal("Error calculating risk score: total weight is zero")
		gt.Value(t, result.Errors[3].Index).Equal(3)
		gt.Value(t, result.Errors[3].Message).Equal(usecase.ErrInvalidItem.Error())

		gt.Array(t, result.Results).Length(1).Required()
		gt.Value(t, result.Results[0].Index).Equal(4)
	})

	t.Run("empty batch", func(t *testing.T) {
		result, err := uc.Risk.RunBatch(nil)
		gt.Error(t, err).Is(usecase.ErrItemsRequired)
		gt.Value(t, result).Nil()
	})
}
