package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkingTrialBalanceStatus is the lifecycle state of a working trial
// balance. LOCKED is terminal: no further adjustments are accepted.
type WorkingTrialBalanceStatus string

const (
	WorkingTrialBalanceOpen   WorkingTrialBalanceStatus = "OPEN"
	WorkingTrialBalanceLocked WorkingTrialBalanceStatus = "LOCKED"
)

// WorkingTrialBalance is a persisted, mutable audit workspace seeded from a
// generated trial balance. Auditors record adjustments in named columns; the
// adjusted figures are folded into each line at read time.
type WorkingTrialBalance struct {
	WorkingTrialBalanceID string                    `json:"workingTrialBalanceID"` // Primary key (UUID)
	OrganizationID        string                    `json:"organizationID"`
	Name                  string                    `json:"name"`
	AsOfDate              time.Time                 `json:"asOfDate"`
	Status                WorkingTrialBalanceStatus `json:"status"`
	Lines                 []WorkingTrialBalanceLine `json:"lines,omitempty"`
	Columns               []AdjustmentColumn        `json:"columns,omitempty"`
	Adjustments           []WorkingAdjustment       `json:"adjustments,omitempty"`
	AuditFields
}

// WorkingTrialBalanceLine is one account row of the workspace, seeded with
// the figures of the underlying trial balance. AdjustedDebit/AdjustedCredit
// are derived: seed figures plus all adjustments recorded against the line.
type WorkingTrialBalanceLine struct {
	LineID                string          `json:"lineID"` // Primary key (UUID)
	WorkingTrialBalanceID string          `json:"workingTrialBalanceID"`
	AccountID             string          `json:"accountID"`
	AccountCode           string          `json:"accountCode"`
	AccountName           string          `json:"accountName"`
	Debit                 decimal.Decimal `json:"debit"`
	Credit                decimal.Decimal `json:"credit"`
	AdjustedDebit         decimal.Decimal `json:"adjustedDebit"`
	AdjustedCredit        decimal.Decimal `json:"adjustedCredit"`
}

// AdjustmentColumn is a named set of adjustments, optionally backed by a
// supporting journal entry for traceability.
type AdjustmentColumn struct {
	ColumnID              string  `json:"columnID"` // Primary key (UUID)
	WorkingTrialBalanceID string  `json:"workingTrialBalanceID"`
	Name                  string  `json:"name"`
	Position              int     `json:"position"`
	SupportingEntryID     *string `json:"supportingEntryID,omitempty"`
	AuditFields
}

// WorkingAdjustment is one adjustment delta recorded against a line in a
// specific column.
type WorkingAdjustment struct {
	AdjustmentID string          `json:"adjustmentID"` // Primary key (UUID)
	ColumnID     string          `json:"columnID"`
	LineID       string          `json:"lineID"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Memo         string          `json:"memo"`
	AuditFields
}
