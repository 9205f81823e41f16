package dto

import "github.com/ksiegowo/ksiegowo_backend/internal/core/validation"

// ValidationOutcomeResponse is one rule outcome of a dry-run validation.
type ValidationOutcomeResponse struct {
	Code       string `json:"code"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	LineNumber int    `json:"lineNumber,omitempty"`
	AccountID  string `json:"accountID,omitempty"`
}

// ValidationResultResponse aggregates a dry-run validation of an entry.
type ValidationResultResponse struct {
	EntryID  string                      `json:"entryID"`
	CanPost  bool                        `json:"canPost"`
	Outcomes []ValidationOutcomeResponse `json:"outcomes"`
}

// ToValidationResultResponse converts a validation verdict to its DTO.
func ToValidationResultResponse(entryID string, verdict validation.Verdict) ValidationResultResponse {
	outcomes := make([]ValidationOutcomeResponse, len(verdict.Outcomes))
	for i, o := range verdict.Outcomes {
		outcomes[i] = ValidationOutcomeResponse{
			Code:       string(o.Code),
			Severity:   string(o.Severity),
			Message:    o.Message,
			LineNumber: o.LineNumber,
			AccountID:  o.AccountID,
		}
	}
	return ValidationResultResponse{EntryID: entryID, CanPost: verdict.CanPost, Outcomes: outcomes}
}
