package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRecord is one immutable general-ledger row, derived from a posted
// journal line. Records are created only inside the posting transaction and
// are never mutated or deleted afterwards.
type LedgerRecord struct {
	RecordID       string          `json:"recordID"` // Primary key (UUID)
	OrganizationID string          `json:"organizationID"`
	EntryID        string          `json:"entryID"`
	LineID         string          `json:"lineID"`
	AccountID      string          `json:"accountID"`
	PeriodID       string          `json:"periodID"`
	EntryDate      time.Time       `json:"entryDate"`
	EntryType      EntryType       `json:"entryType"`
	Debit          decimal.Decimal `json:"debit"`  // Base currency
	Credit         decimal.Decimal `json:"credit"` // Base currency
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// AccountBalance is the per-(account, period) aggregate maintained by
// posting. It is fully recomputable from ledger records, so repair and
// reconciliation can rebuild it idempotently at any time.
type AccountBalance struct {
	AccountID       string          `json:"accountID"`
	PeriodID        string          `json:"periodID"`
	OrganizationID  string          `json:"organizationID"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
	DebitMovements  decimal.Decimal `json:"debitMovements"`
	CreditMovements decimal.Decimal `json:"creditMovements"`
	ClosingBalance  decimal.Decimal `json:"closingBalance"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
}

// BalanceDelta is the increment a posting applies to one (account, period)
// balance row. ClosingDelta is pre-signed by the account's normal-balance
// side so the storage layer can apply it as a plain atomic addition.
type BalanceDelta struct {
	AccountID    string
	PeriodID     string
	Debit        decimal.Decimal
	Credit       decimal.Decimal
	ClosingDelta decimal.Decimal
}

// ClosingBalance computes the closing figure for an account given its
// normal-balance side: opening + (debits - credits) for debit-normal
// accounts, opening + (credits - debits) for credit-normal accounts.
func ClosingBalance(normal NormalBalance, opening, debits, credits decimal.Decimal) decimal.Decimal {
	if normal == DebitNormal {
		return opening.Add(debits.Sub(credits))
	}
	return opening.Add(credits.Sub(debits))
}

// NetMovement is the signed effect of a debit/credit pair on an account with
// the given normal-balance side.
func NetMovement(normal NormalBalance, debit, credit decimal.Decimal) decimal.Decimal {
	if normal == DebitNormal {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}
