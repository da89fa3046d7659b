package usecase

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
)

// RunBatch calculates every item in order. A failing item is recorded in
// Errors with its original index and never stops the remaining items.
// The only error returned is ErrItemsRequired for an empty batch.
func (uc *RiskUseCase) RunBatch(items []model.BatchItem) (*model.BatchResult, error) {
	if len(items) == 0 {
		return nil, goerr.Wrap(ErrItemsRequired, "invalid batch request")
	}

	result := &model.BatchResult{}
	for _, item := range items {
		if item.DecodeErr != nil {
			err := goerr.Wrap(ErrInvalidItem, "failed to decode batch item",
				goerr.V(IndexKey, item.Index),
				goerr.V("cause", item.DecodeErr.Error()))
			result.Errors = append(result.Errors, model.BatchError{
				Index:   item.Index,
				Message: Message(err),
				Err:     err,
			})
			continue
		}

		calculated, err := uc.Calculate(item.Request)
		if err != nil {
			result.Errors = append(result.Errors, model.BatchError{
				Index:   item.Index,
				Message: Message(err),
				Err:     goerr.Wrap(err, "failed to calculate batch item", goerr.V(IndexKey, item.Index)),
			})
			continue
		}

		result.Results = append(result.Results, model.BatchEntry{
			Index:  item.Index,
			Result: calculated,
		})
	}

	return result, nil
}
