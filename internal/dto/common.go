package dto

// BulkItemOutcome reports the result of one item in a bulk operation. A
// failing item never aborts the rest of the batch.
type BulkItemOutcome struct {
	EntryID string `json:"entryID"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BulkOperationResponse aggregates per-item outcomes of a bulk post/delete.
type BulkOperationResponse struct {
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Outcomes  []BulkItemOutcome `json:"outcomes"`
}
