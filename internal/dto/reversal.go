package dto

import "time"

// ReverseEntryRequest defines the payload for reversing a posted entry.
type ReverseEntryRequest struct {
	ReversalDate time.Time `json:"reversalDate" binding:"required"`
	Reason       string    `json:"reason" binding:"required"`
	AutoPost     bool      `json:"autoPost"`
}

// ScheduleAutoReversalRequest annotates a posted entry with a future
// auto-reverse date.
type ScheduleAutoReversalRequest struct {
	ReverseOn time.Time `json:"reverseOn" binding:"required"`
}

// ProcessDueReversalsRequest triggers the idempotent auto-reversal sweep.
// AsOfDate defaults to today when omitted.
type ProcessDueReversalsRequest struct {
	AsOfDate *time.Time `json:"asOfDate,omitempty"`
}

// ReversalSweepItem reports one entry handled by the sweep.
type ReversalSweepItem struct {
	EntryID          string `json:"entryID"`
	ReversingEntryID string `json:"reversingEntryID,omitempty"`
	Success          bool   `json:"success"`
	Error            string `json:"error,omitempty"`
}

// ReversalSweepResponse aggregates the outcomes of one sweep run.
type ReversalSweepResponse struct {
	Processed int                 `json:"processed"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Items     []ReversalSweepItem `json:"items"`
}

// CreateCorrectionRequest defines the payload for an adjusting entry carrying
// only the correcting delta, linked to the original entry.
type CreateCorrectionRequest struct {
	EntryDate   time.Time                `json:"entryDate" binding:"required"`
	Reason      string                   `json:"reason" binding:"required"`
	Lines       []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
	AutoPost    bool                     `json:"autoPost"`
	Description string                   `json:"description"`
}
