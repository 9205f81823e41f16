package dto

import (
	"time"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountLedgerParams holds the filters for an account ledger query.
type AccountLedgerParams struct {
	PeriodID              *string    `form:"periodID"`
	DateFrom              *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo                *time.Time `form:"dateTo" time_format:"2006-01-02"`
	EntryType             *string    `form:"entryType" binding:"omitempty,oneof=STANDARD OPENING REVERSING ADJUSTING"`
	SearchText            *string    `form:"search"`
	Ascending             bool       `form:"ascending"`
	IncludeRunningBalance bool       `form:"includeRunningBalance"`
	Limit                 int        `form:"limit"`
	NextToken             *string    `form:"nextToken"`
}

// LedgerRecordResponse is one general-ledger row, optionally annotated with a
// running balance when the query was chronological.
type LedgerRecordResponse struct {
	RecordID       string           `json:"recordID"`
	EntryID        string           `json:"entryID"`
	AccountID      string           `json:"accountID"`
	PeriodID       string           `json:"periodID"`
	EntryDate      time.Time        `json:"entryDate"`
	EntryType      string           `json:"entryType"`
	Debit          decimal.Decimal  `json:"debit"`
	Credit         decimal.Decimal  `json:"credit"`
	RunningBalance *decimal.Decimal `json:"runningBalance,omitempty"`
}

// AccountLedgerResponse is a page of ledger rows for one account.
type AccountLedgerResponse struct {
	AccountID      string                 `json:"accountID"`
	OpeningBalance decimal.Decimal        `json:"openingBalance"`
	Records        []LedgerRecordResponse `json:"records"`
	NextToken      *string                `json:"nextToken,omitempty"`
}

// AccountBalanceResponse is the as-of balance of one account.
type AccountBalanceResponse struct {
	AccountID      string          `json:"accountID"`
	AsOfDate       time.Time       `json:"asOfDate"`
	DebitTotal     decimal.Decimal `json:"debitTotal"`
	CreditTotal    decimal.Decimal `json:"creditTotal"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	NormalBalance  string          `json:"normalBalance"`
}

// LedgerReportParams holds the scope of a full ledger report.
type LedgerReportParams struct {
	PeriodID        *string    `form:"periodID"`
	FiscalYearID    *string    `form:"fiscalYearID"`
	DateFrom        *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo          *time.Time `form:"dateTo" time_format:"2006-01-02"`
	GroupByType     bool       `form:"groupByType"`
	OmitZeroRows    bool       `form:"omitZeroRows"`
	IncludeInactive bool       `form:"includeInactive"`
}

// LedgerReportGroup is one account-type group of the full report.
type LedgerReportGroup struct {
	AccountType string                   `json:"accountType,omitempty"`
	Rows        []domain.LedgerReportRow `json:"rows"`
}

// LedgerReportResponse is the full opening/movements/closing report.
type LedgerReportResponse struct {
	DateFrom    *time.Time          `json:"dateFrom,omitempty"`
	DateTo      *time.Time          `json:"dateTo,omitempty"`
	Groups      []LedgerReportGroup `json:"groups"`
	TotalDebit  decimal.Decimal     `json:"totalDebit"`
	TotalCredit decimal.Decimal     `json:"totalCredit"`
}

// ToLedgerRecordResponse converts a domain.LedgerRecord to its DTO.
func ToLedgerRecordResponse(r *domain.LedgerRecord) LedgerRecordResponse {
	return LedgerRecordResponse{
		RecordID:  r.RecordID,
		EntryID:   r.EntryID,
		AccountID: r.AccountID,
		PeriodID:  r.PeriodID,
		EntryDate: r.EntryDate,
		EntryType: string(r.EntryType),
		Debit:     r.Debit,
		Credit:    r.Credit,
	}
}
