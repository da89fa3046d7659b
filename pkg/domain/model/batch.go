package model

import "encoding/json"

// BatchItem is one calculation request tagged with its position in the
// submitted sequence. DecodeErr is set when the raw item could not be parsed.
type BatchItem struct {
	Index     int
	Request   CalculateRequest
	DecodeErr error
}

// BatchEntry is a successful item of a batch
type BatchEntry struct {
	Index  int
	Result *RiskResult
}

// BatchError is a failed item of a batch
type BatchError struct {
	Index   int
	Message string
	Err     error
}

// BatchResult holds every item of a batch, split by outcome.
// Both slices keep the submission order.
type BatchResult struct {
	Results []BatchEntry
	Errors  []BatchError
}

// PartialFailure reports whether at least one item failed
func (r *BatchResult) PartialFailure() bool {
	return len(r.Errors) > 0
}

// Total returns the number of processed items
func (r *BatchResult) Total() int {
	return len(r.Results) + len(r.Errors)
}

// NewBatchItems decodes raw JSON items independently so a malformed item
// does not prevent the rest of the batch from being processed.
func NewBatchItems(raws []json.RawMessage) []BatchItem {
	items := make([]BatchItem, len(raws))
	for i, raw := range raws {
		items[i].Index = i
		if err := json.Unmarshal(raw, &items[i].Request); err != nil {
			items[i].DecodeErr = err
		}
	}
	return items
}

// NewBatchItemsFromRequests tags already decoded requests with their index
func NewBatchItemsFromRequests(reqs []CalculateRequest) []BatchItem {
	items := make([]BatchItem, len(reqs))
	for i, req := range reqs {
		items[i] = BatchItem{Index: i, Request: req}
	}
	return items
}
