package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance is the side on which an account's healthy balance sits.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// DefaultNormalBalance returns the conventional normal-balance side for an
// account type. Assets and expenses grow on the debit side; liabilities,
// equity, and revenue grow on the credit side.
func (t AccountType) DefaultNormalBalance() NormalBalance {
	switch t {
	case Asset, Expense:
		return DebitNormal
	default:
		return CreditNormal
	}
}

// Account represents one position in the chart of accounts. Codes are
// hierarchical in the Polish convention (e.g. "100", "100-01"); header
// accounts carry AllowsPosting=false and exist only to group children.
type Account struct {
	AccountID          string        `json:"accountID"`      // Primary key (UUID)
	OrganizationID     string        `json:"organizationID"` // Tenant scope
	Code               string        `json:"code"`           // Unique per organization
	Name               string        `json:"name"`
	AccountType        AccountType   `json:"accountType"`
	NormalBalance      NormalBalance `json:"normalBalance"`
	ParentAccountID    *string       `json:"parentAccountID,omitempty"` // Self-referencing, nullable
	Level              int           `json:"level"`                     // 0 for roots, parent.Level+1 otherwise
	Path               string        `json:"path"`                      // Slash-joined codes from root
	AllowsPosting      bool          `json:"allowsPosting"`             // False for header accounts
	RequiresCostCenter bool          `json:"requiresCostCenter"`
	CurrencyCode       string        `json:"currencyCode"`
	Description        string        `json:"description"`
	IsActive           bool          `json:"isActive"`
	AuditFields
}
