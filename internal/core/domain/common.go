package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// BalanceTolerance is the maximum permitted difference between total debits
// and total credits of a journal entry. Differences below it are treated as
// rounding noise; at or above it the entry is unbalanced.
var BalanceTolerance = decimal.New(1, -2) // 0.01

// MovementTotals aggregates debit and credit movements for one account over
// some scope (a period, a date range, or all time).
type MovementTotals struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}
