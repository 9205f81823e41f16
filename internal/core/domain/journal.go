package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies a journal entry and selects its number prefix.
type EntryType string

const (
	EntryStandard  EntryType = "STANDARD"
	EntryOpening   EntryType = "OPENING"
	EntryReversing EntryType = "REVERSING"
	EntryAdjusting EntryType = "ADJUSTING"
)

// NumberPrefix returns the prefix used when formatting entry numbers of this
// type, e.g. "JE/2025/03/0007".
func (t EntryType) NumberPrefix() string {
	switch t {
	case EntryOpening:
		return "OP"
	case EntryReversing:
		return "RV"
	case EntryAdjusting:
		return "AJ"
	default:
		return "JE"
	}
}

// EntryStatus is the lifecycle state of a journal entry.
// DRAFT <-> PENDING -> POSTED -> REVERSED; DRAFT entries may also be deleted.
type EntryStatus string

const (
	EntryDraft    EntryStatus = "DRAFT"
	EntryPending  EntryStatus = "PENDING"
	EntryPosted   EntryStatus = "POSTED"
	EntryReversed EntryStatus = "REVERSED"
)

// IsEditable reports whether the entry may still be modified or deleted.
// Posted and reversed entries are immutable; changes go through reversal or
// correction instead.
func (s EntryStatus) IsEditable() bool {
	return s == EntryDraft || s == EntryPending
}

// JournalEntry represents a single, balanced financial event composed of
// multiple lines. The entry number is immutable once assigned and is never
// reused, even if the entry is deleted while still in draft.
type JournalEntry struct {
	EntryID        string      `json:"entryID"`        // Primary key (UUID)
	OrganizationID string      `json:"organizationID"` // Tenant scope
	EntryNumber    string      `json:"entryNumber"`    // e.g. "JE/2025/03/0007"
	EntryDate      time.Time   `json:"entryDate"`
	PeriodID       string      `json:"periodID"` // Accounting period covering EntryDate
	FiscalYearID   string      `json:"fiscalYearID"`
	EntryType      EntryType   `json:"entryType"`
	Status         EntryStatus `json:"status"`
	Description    string      `json:"description"`
	CurrencyCode   string      `json:"currencyCode"` // Document currency of the lines

	// Totals in the organization's base currency.
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`

	// Approval workflow metadata.
	SubmittedBy *string    `json:"submittedBy,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	ApprovedBy  *string    `json:"approvedBy,omitempty"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`

	// Posting metadata.
	PostedBy *string    `json:"postedBy,omitempty"`
	PostedAt *time.Time `json:"postedAt,omitempty"`

	// Reversal linkage. On a reversing entry ReversedEntryID points at the
	// original; on the original ReversingEntryID points at its reversal.
	ReversedEntryID  *string    `json:"reversedEntryID,omitempty"`
	ReversingEntryID *string    `json:"reversingEntryID,omitempty"`
	ReversalReason   string     `json:"reversalReason,omitempty"`
	ReversedAt       *time.Time `json:"reversedAt,omitempty"`

	// AutoReverseDate schedules a future automatic reversal of a posted entry.
	AutoReverseDate *time.Time `json:"autoReverseDate,omitempty"`

	// CorrectedEntryID links an adjusting entry to the original it corrects.
	// Corrections never change the original's status.
	CorrectedEntryID *string `json:"correctedEntryID,omitempty"`

	Lines []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// IsApproved reports whether the entry has recorded approval.
func (e *JournalEntry) IsApproved() bool {
	return e.ApprovedBy != nil
}

// IsBalanced reports whether total debits equal total credits within the
// balance tolerance.
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebit.Sub(e.TotalCredit).Abs().LessThan(BalanceTolerance)
}

// JournalLine is one account movement within a journal entry. Exactly one of
// Debit and Credit is non-zero. Amounts are entered in the document currency;
// base-currency equivalents are derived via the exchange rate.
type JournalLine struct {
	LineID       string          `json:"lineID"`  // Primary key (UUID)
	EntryID      string          `json:"entryID"` // Owning entry
	LineNumber   int             `json:"lineNumber"`
	AccountID    string          `json:"accountID"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CurrencyCode string          `json:"currencyCode"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"` // Document -> base currency
	BaseDebit    decimal.Decimal `json:"baseDebit"`
	BaseCredit   decimal.Decimal `json:"baseCredit"`
	CostCenterID *string         `json:"costCenterID,omitempty"`
	Description  string          `json:"description"`
	AuditFields
}

// Swapped returns a copy of the line with the debit and credit sides
// exchanged, in both document and base currency. Used to build reversals.
func (l JournalLine) Swapped() JournalLine {
	out := l
	out.Debit, out.Credit = l.Credit, l.Debit
	out.BaseDebit, out.BaseCredit = l.BaseCredit, l.BaseDebit
	return out
}

// EntryTotals sums the base-currency debit and credit sides of a set of lines.
func EntryTotals(lines []JournalLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.BaseDebit)
		credit = credit.Add(l.BaseCredit)
	}
	return debit, credit
}
