package validation

import (
	"fmt"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Severity grades a rule outcome. Only ERROR outcomes block posting.
type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// RuleCode is a stable machine-readable identifier of a validation rule.
type RuleCode string

const (
	RuleEntryBalanced      RuleCode = "ENTRY_BALANCED"
	RuleEntryNotEmpty      RuleCode = "ENTRY_NOT_EMPTY"
	RuleLineSingleSided    RuleCode = "LINE_SINGLE_SIDED"
	RuleAccountExists      RuleCode = "ACCOUNT_EXISTS"
	RuleAccountActive      RuleCode = "ACCOUNT_ACTIVE"
	RuleAccountPostable    RuleCode = "ACCOUNT_POSTABLE"
	RuleCostCenterRequired RuleCode = "COST_CENTER_REQUIRED"
	RulePeriodExists       RuleCode = "PERIOD_EXISTS"
	RulePeriodOpen         RuleCode = "PERIOD_OPEN"
	RulePeriodSoftClosed   RuleCode = "PERIOD_SOFT_CLOSED"
	RuleExchangeRateSanity RuleCode = "EXCHANGE_RATE_SANITY"
)

// Outcome is the result of evaluating one rule against a candidate entry.
// LineNumber is 0 for entry-level outcomes.
type Outcome struct {
	Code       RuleCode `json:"code"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	LineNumber int      `json:"lineNumber,omitempty"`
	AccountID  string   `json:"accountID,omitempty"`
}

// Rule evaluates one aspect of a candidate entry. Rules are pure functions:
// they read the candidate and return outcomes, nothing else.
type Rule func(Candidate) []Outcome

// Candidate bundles a journal entry with every piece of context the built-in
// rules need, so evaluation itself never touches storage.
type Candidate struct {
	Entry    domain.JournalEntry
	Lines    []domain.JournalLine
	Accounts map[string]domain.Account // Keyed by AccountID; absent = unknown account
	Period   *domain.AccountingPeriod  // nil when no period covers the entry date

	BaseCurrencyCode string
	Approved         bool
	BypassApproval   bool
}

// BuiltinRules returns the standard rule set applied to every entry.
func BuiltinRules() []Rule {
	return []Rule{
		entryNotEmpty,
		entryBalanced,
		lineSingleSided,
		accountExists,
		accountActive,
		accountPostable,
		costCenterRequired,
		periodExists,
		periodOpen,
		periodSoftClosed,
		exchangeRateSanity,
	}
}

func entryNotEmpty(c Candidate) []Outcome {
	if len(c.Lines) >= 2 {
		return nil
	}
	return []Outcome{{
		Code:     RuleEntryNotEmpty,
		Severity: SeverityError,
		Message:  "entry must have at least two lines",
	}}
}

func entryBalanced(c Candidate) []Outcome {
	debit, credit := domain.EntryTotals(c.Lines)
	if debit.Sub(credit).Abs().LessThan(domain.BalanceTolerance) {
		return nil
	}
	return []Outcome{{
		Code:     RuleEntryBalanced,
		Severity: SeverityError,
		Message:  fmt.Sprintf("entry is unbalanced: total debit %s, total credit %s", debit.String(), credit.String()),
	}}
}

func lineSingleSided(c Candidate) []Outcome {
	var out []Outcome
	for _, l := range c.Lines {
		debitSet := l.Debit.IsPositive()
		creditSet := l.Credit.IsPositive()
		if debitSet == creditSet || l.Debit.IsNegative() || l.Credit.IsNegative() {
			out = append(out, Outcome{
				Code:       RuleLineSingleSided,
				Severity:   SeverityError,
				Message:    fmt.Sprintf("line %d must carry a positive amount on exactly one side", l.LineNumber),
				LineNumber: l.LineNumber,
				AccountID:  l.AccountID,
			})
		}
	}
	return out
}

func accountExists(c Candidate) []Outcome {
	var out []Outcome
	for _, l := range c.Lines {
		if _, ok := c.Accounts[l.AccountID]; !ok {
			out = append(out, Outcome{
				Code:       RuleAccountExists,
				Severity:   SeverityError,
				Message:    fmt.Sprintf("account %s on line %d does not exist", l.AccountID, l.LineNumber),
				LineNumber: l.LineNumber,
				AccountID:  l.AccountID,
			})
		}
	}
	return out
}

func accountActive(c Candidate) []Outcome {
	var out []Outcome
	for _, l := range c.Lines {
		acc, ok := c.Accounts[l.AccountID]
		if ok && !acc.IsActive {
			out = append(out, Outcome{
				Code:       RuleAccountActive,
				Severity:   SeverityError,
				Message:    fmt.Sprintf("account %s is inactive", acc.Code),
				LineNumber: l.LineNumber,
				AccountID:  l.AccountID,
			})
		}
	}
	return out
}

func accountPostable(c Candidate) []Outcome {
	var out []Outcome
	for _, l := range c.Lines {
		acc, ok := c.Accounts[l.AccountID]
		if ok && !acc.AllowsPosting {
			out = append(out, Outcome{
				Code:       RuleAccountPostable,
				Severity:   SeverityError,
				Message:    fmt.Sprintf("account %s is a header account and does not allow direct posting", acc.Code),
				LineNumber: l.LineNumber,
				AccountID:  l.AccountID,
			})
		}
	}
	return out
}

func costCenterRequired(c Candidate) []Outcome {
	var out []Outcome
	for _, l := range c.Lines {
		acc, ok := c.Accounts[l.AccountID]
		if ok && acc.RequiresCostCenter && (l.CostCenterID == nil || *l.CostCenterID == "") {
			out = append(out, Outcome{
				Code:       RuleCostCenterRequired,
				Severity:   SeverityError,
				Message:    fmt.Sprintf("account %s requires a cost center on line %d", acc.Code, l.LineNumber),
				LineNumber: l.LineNumber,
				AccountID:  l.AccountID,
			})
		}
	}
	return out
}

func periodExists(c Candidate) []Outcome {
	if c.Period != nil {
		return nil
	}
	return []Outcome{{
		Code:     RulePeriodExists,
		Severity: SeverityError,
		Message:  fmt.Sprintf("no accounting period covers %s", c.Entry.EntryDate.Format("2006-01-02")),
	}}
}

func periodOpen(c Candidate) []Outcome {
	if c.Period == nil || c.Period.Status != domain.PeriodClosed {
		return nil
	}
	return []Outcome{{
		Code:     RulePeriodOpen,
		Severity: SeverityError,
		Message:  fmt.Sprintf("period %s is closed", c.Period.Name),
	}}
}

func periodSoftClosed(c Candidate) []Outcome {
	if c.Period == nil || c.Period.Status != domain.PeriodSoftClosed {
		return nil
	}
	return []Outcome{{
		Code:     RulePeriodSoftClosed,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("period %s is soft-closed; posting requires it to be reopened", c.Period.Name),
	}}
}

// maxPlausibleRate caps foreign-exchange rates; anything above it is almost
// certainly a data-entry mistake (fat-fingered decimal point).
var maxPlausibleRate = decimal.NewFromInt(10000)

func exchangeRateSanity(c Candidate) []Outcome {
	var out []Outcome
	for _, l := range c.Lines {
		if l.CurrencyCode == "" || l.CurrencyCode == c.BaseCurrencyCode {
			continue
		}
		if !l.ExchangeRate.IsPositive() || l.ExchangeRate.GreaterThan(maxPlausibleRate) {
			out = append(out, Outcome{
				Code:       RuleExchangeRateSanity,
				Severity:   SeverityWarning,
				Message:    fmt.Sprintf("exchange rate %s on line %d looks implausible", l.ExchangeRate.String(), l.LineNumber),
				LineNumber: l.LineNumber,
				AccountID:  l.AccountID,
			})
		}
	}
	return out
}
