package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceParams holds the scope of a trial balance generation.
type TrialBalanceParams struct {
	AsOfDate        *time.Time `form:"asOfDate" time_format:"2006-01-02"` // Defaults to today
	AccountType     *string    `form:"accountType" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	GroupByType     bool       `form:"groupByType"` // Insert synthetic subtotal rows per account type
	OmitZeroRows    bool       `form:"omitZeroRows"`
	IncludeInactive bool       `form:"includeInactive"`
}

// ComparativeTrialBalanceParams adds comparison points and a significance
// threshold for percent change.
type ComparativeTrialBalanceParams struct {
	AsOfDate             *time.Time       `json:"asOfDate,omitempty"`
	ComparisonDates      []time.Time      `json:"comparisonDates" binding:"required,min=1"`
	SignificantChangePct *decimal.Decimal `json:"significantChangePct,omitempty"` // Defaults to 10
	OmitZeroRows         bool             `json:"omitZeroRows"`
}

// CreateWorkingTrialBalanceRequest seeds a new audit workspace from a
// generated trial balance.
type CreateWorkingTrialBalanceRequest struct {
	Name     string     `json:"name" binding:"required"`
	AsOfDate *time.Time `json:"asOfDate,omitempty"`
}

// AddAdjustmentColumnRequest creates a named adjustment column, optionally
// backed by a supporting journal entry.
type AddAdjustmentColumnRequest struct {
	Name              string  `json:"name" binding:"required"`
	SupportingEntryID *string `json:"supportingEntryID,omitempty"`
}

// RecordAdjustmentRequest records one adjustment delta against a line in a
// column.
type RecordAdjustmentRequest struct {
	ColumnID string          `json:"columnID" binding:"required"`
	LineID   string          `json:"lineID" binding:"required"`
	Debit    decimal.Decimal `json:"debit"`
	Credit   decimal.Decimal `json:"credit"`
	Memo     string          `json:"memo"`
}
