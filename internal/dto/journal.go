package dto

import (
	"time"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryLineRequest is one line of a new journal entry. Exactly one of
// debit and credit must be positive; amounts are in the entry's document
// currency.
type CreateEntryLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CostCenterID *string         `json:"costCenterID,omitempty"`
	Description  string          `json:"description"`
}

// CreateEntryRequest defines the payload for creating a journal entry.
type CreateEntryRequest struct {
	EntryDate    time.Time                `json:"entryDate" binding:"required"`
	EntryType    string                   `json:"entryType" binding:"omitempty,oneof=STANDARD OPENING REVERSING ADJUSTING"`
	Description  string                   `json:"description" binding:"required"`
	CurrencyCode string                   `json:"currencyCode" binding:"omitempty,len=3"`
	ExchangeRate *decimal.Decimal         `json:"exchangeRate,omitempty"` // Document -> base; looked up when omitted
	Lines        []CreateEntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateEntryRequest defines the payload for updating a draft/pending entry.
// When Lines is present the whole line set is replaced and re-validated.
type UpdateEntryRequest struct {
	EntryDate    *time.Time               `json:"entryDate,omitempty"`
	Description  *string                  `json:"description,omitempty"`
	CurrencyCode *string                  `json:"currencyCode,omitempty" binding:"omitempty,len=3"`
	ExchangeRate *decimal.Decimal         `json:"exchangeRate,omitempty"`
	Lines        []CreateEntryLineRequest `json:"lines,omitempty" binding:"omitempty,min=2,dive"`
}

// PostEntryRequest defines the payload for posting an entry.
type PostEntryRequest struct {
	BypassApproval bool `json:"bypassApproval"`
}

// BulkEntryRequest defines the payload for bulk post/delete operations.
type BulkEntryRequest struct {
	EntryIDs       []string `json:"entryIDs" binding:"required,min=1"`
	BypassApproval bool     `json:"bypassApproval"`
}

// RejectEntryRequest carries the reviewer's reason for sending a pending
// entry back to draft.
type RejectEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListEntriesParams holds the filters for listing journal entries.
type ListEntriesParams struct {
	Status       *string    `form:"status" binding:"omitempty,oneof=DRAFT PENDING POSTED REVERSED"`
	EntryType    *string    `form:"entryType" binding:"omitempty,oneof=STANDARD OPENING REVERSING ADJUSTING"`
	PeriodID     *string    `form:"periodID"`
	DateFrom     *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo       *time.Time `form:"dateTo" time_format:"2006-01-02"`
	SearchText   *string    `form:"search"`
	IncludeLines bool       `form:"includeLines"`
	Limit        int        `form:"limit"`
	NextToken    *string    `form:"nextToken"`
}

// EntryLineResponse defines the data returned for a journal line.
type EntryLineResponse struct {
	LineID       string          `json:"lineID"`
	LineNumber   int             `json:"lineNumber"`
	AccountID    string          `json:"accountID"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CurrencyCode string          `json:"currencyCode"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	BaseDebit    decimal.Decimal `json:"baseDebit"`
	BaseCredit   decimal.Decimal `json:"baseCredit"`
	CostCenterID *string         `json:"costCenterID,omitempty"`
	Description  string          `json:"description"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID          string              `json:"entryID"`
	EntryNumber      string              `json:"entryNumber"`
	EntryDate        time.Time           `json:"entryDate"`
	PeriodID         string              `json:"periodID"`
	FiscalYearID     string              `json:"fiscalYearID"`
	EntryType        string              `json:"entryType"`
	Status           string              `json:"status"`
	Description      string              `json:"description"`
	CurrencyCode     string              `json:"currencyCode"`
	TotalDebit       decimal.Decimal     `json:"totalDebit"`
	TotalCredit      decimal.Decimal     `json:"totalCredit"`
	IsBalanced       bool                `json:"isBalanced"`
	SubmittedBy      *string             `json:"submittedBy,omitempty"`
	ApprovedBy       *string             `json:"approvedBy,omitempty"`
	PostedBy         *string             `json:"postedBy,omitempty"`
	PostedAt         *time.Time          `json:"postedAt,omitempty"`
	ReversedEntryID  *string             `json:"reversedEntryID,omitempty"`
	ReversingEntryID *string             `json:"reversingEntryID,omitempty"`
	AutoReverseDate  *time.Time          `json:"autoReverseDate,omitempty"`
	CorrectedEntryID *string             `json:"correctedEntryID,omitempty"`
	Lines            []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	CreatedBy        string              `json:"createdBy"`
}

// ListEntriesResponse is a page of journal entries with a continuation token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain.JournalLine to its DTO.
func ToEntryLineResponse(l *domain.JournalLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:       l.LineID,
		LineNumber:   l.LineNumber,
		AccountID:    l.AccountID,
		Debit:        l.Debit,
		Credit:       l.Credit,
		CurrencyCode: l.CurrencyCode,
		ExchangeRate: l.ExchangeRate,
		BaseDebit:    l.BaseDebit,
		BaseCredit:   l.BaseCredit,
		CostCenterID: l.CostCenterID,
		Description:  l.Description,
	}
}

// ToEntryResponse converts a domain.JournalEntry to its DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:          e.EntryID,
		EntryNumber:      e.EntryNumber,
		EntryDate:        e.EntryDate,
		PeriodID:         e.PeriodID,
		FiscalYearID:     e.FiscalYearID,
		EntryType:        string(e.EntryType),
		Status:           string(e.Status),
		Description:      e.Description,
		CurrencyCode:     e.CurrencyCode,
		TotalDebit:       e.TotalDebit,
		TotalCredit:      e.TotalCredit,
		IsBalanced:       e.IsBalanced(),
		SubmittedBy:      e.SubmittedBy,
		ApprovedBy:       e.ApprovedBy,
		PostedBy:         e.PostedBy,
		PostedAt:         e.PostedAt,
		ReversedEntryID:  e.ReversedEntryID,
		ReversingEntryID: e.ReversingEntryID,
		AutoReverseDate:  e.AutoReverseDate,
		CorrectedEntryID: e.CorrectedEntryID,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToEntryLineResponse(&e.Lines[i])
		}
	}
	return resp
}

// ToEntryResponses converts a slice of entries to DTOs.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
