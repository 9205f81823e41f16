package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceLine is one row of a trial balance: the net as-of balance of a
// single account, placed on its natural side. IsUnusual flags accounts whose
// net direction contradicts their normal-balance side.
type TrialBalanceLine struct {
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	NormalBalance NormalBalance   `json:"normalBalance"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	IsUnusual     bool            `json:"isUnusual"`
	IsSubtotal    bool            `json:"isSubtotal"` // Synthetic group subtotal row
	GroupLabel    string          `json:"groupLabel,omitempty"`
}

// TrialBalanceReport is a point-in-time aggregate debit/credit view across
// the chart of accounts.
type TrialBalanceReport struct {
	OrganizationID string             `json:"organizationID"`
	AsOfDate       time.Time          `json:"asOfDate"`
	Lines          []TrialBalanceLine `json:"lines"`
	TotalDebit     decimal.Decimal    `json:"totalDebit"`
	TotalCredit    decimal.Decimal    `json:"totalCredit"`
	IsBalanced     bool               `json:"isBalanced"`
	GeneratedAt    time.Time          `json:"generatedAt"`
}

// ComparativePoint is one comparison column of a comparative trial balance.
type ComparativePoint struct {
	Label    string    `json:"label"`
	AsOfDate time.Time `json:"asOfDate"`
}

// ComparativeTrialBalanceLine carries one account's current balance next to
// its balance at each comparison point, with variance against the first
// point. Balances are net figures signed by the account's normal side.
type ComparativeTrialBalanceLine struct {
	AccountID      string            `json:"accountID"`
	AccountCode    string            `json:"accountCode"`
	AccountName    string            `json:"accountName"`
	AccountType    AccountType       `json:"accountType"`
	CurrentBalance decimal.Decimal   `json:"currentBalance"`
	PointBalances  []decimal.Decimal `json:"pointBalances"`
	Variance       decimal.Decimal   `json:"variance"`
	PercentChange  decimal.Decimal   `json:"percentChange"`
	IsSignificant  bool              `json:"isSignificant"`
}

// ComparativeTrialBalance repeats the trial balance computation for several
// as-of dates and reports variance per account.
type ComparativeTrialBalance struct {
	OrganizationID string                        `json:"organizationID"`
	AsOfDate       time.Time                     `json:"asOfDate"`
	Points         []ComparativePoint            `json:"points"`
	Lines          []ComparativeTrialBalanceLine `json:"lines"`
	GeneratedAt    time.Time                     `json:"generatedAt"`
}

// LedgerReportRow is one account's opening/movement/closing figures for a
// requested range in the full ledger report.
type LedgerReportRow struct {
	AccountID      string          `json:"accountID"`
	AccountCode    string          `json:"accountCode"`
	AccountName    string          `json:"accountName"`
	AccountType    AccountType     `json:"accountType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	DebitMovements decimal.Decimal `json:"debitMovements"`
	CreditMovement decimal.Decimal `json:"creditMovements"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}
