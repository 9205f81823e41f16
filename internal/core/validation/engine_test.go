package validation_test

import (
	"testing"
	"time"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	"github.com/ksiegowo/ksiegowo_backend/internal/core/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postableAccount(id, code string) domain.Account {
	return domain.Account{
		AccountID:     id,
		Code:          code,
		Name:          "Account " + code,
		AccountType:   domain.Asset,
		NormalBalance: domain.DebitNormal,
		AllowsPosting: true,
		IsActive:      true,
		CurrencyCode:  "PLN",
	}
}

func openPeriod() *domain.AccountingPeriod {
	return &domain.AccountingPeriod{
		PeriodID:  "p-1",
		Name:      "2025-03",
		Sequence:  3,
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}
}

func balancedCandidate() validation.Candidate {
	hundred := decimal.NewFromInt(100)
	return validation.Candidate{
		Entry: domain.JournalEntry{
			EntryDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		Lines: []domain.JournalLine{
			{LineNumber: 1, AccountID: "acc-a", Debit: hundred, BaseDebit: hundred, Credit: decimal.Zero, BaseCredit: decimal.Zero, CurrencyCode: "PLN"},
			{LineNumber: 2, AccountID: "acc-b", Credit: hundred, BaseCredit: hundred, Debit: decimal.Zero, BaseDebit: decimal.Zero, CurrencyCode: "PLN"},
		},
		Accounts: map[string]domain.Account{
			"acc-a": postableAccount("acc-a", "100"),
			"acc-b": postableAccount("acc-b", "200"),
		},
		Period:           openPeriod(),
		BaseCurrencyCode: "PLN",
		Approved:         true,
	}
}

func findOutcome(outcomes []validation.Outcome, code validation.RuleCode) *validation.Outcome {
	for i := range outcomes {
		if outcomes[i].Code == code {
			return &outcomes[i]
		}
	}
	return nil
}

func TestAssess_BalancedEntryCanPost(t *testing.T) {
	verdict := validation.Assess(balancedCandidate())

	assert.True(t, verdict.CanPost)
	assert.False(t, validation.HasErrors(verdict.Outcomes))
}

func TestAssess_UnbalancedEntryFails(t *testing.T) {
	c := balancedCandidate()
	c.Lines[1].Credit = decimal.NewFromInt(90)
	c.Lines[1].BaseCredit = decimal.NewFromInt(90)

	verdict := validation.Assess(c)

	assert.False(t, verdict.CanPost)
	out := findOutcome(verdict.Outcomes, validation.RuleEntryBalanced)
	require.NotNil(t, out)
	assert.Equal(t, validation.SeverityError, out.Severity)
}

func TestAssess_ToleranceAbsorbsSubCentDifference(t *testing.T) {
	c := balancedCandidate()
	c.Lines[1].BaseCredit = decimal.RequireFromString("99.995")

	verdict := validation.Assess(c)

	assert.Nil(t, findOutcome(verdict.Outcomes, validation.RuleEntryBalanced))
	assert.True(t, verdict.CanPost)
}

func TestAssess_SingleLineEntryFails(t *testing.T) {
	c := balancedCandidate()
	c.Lines = c.Lines[:1]

	verdict := validation.Assess(c)

	assert.False(t, verdict.CanPost)
	assert.NotNil(t, findOutcome(verdict.Outcomes, validation.RuleEntryNotEmpty))
}

func TestAssess_BothSidesOnOneLineFails(t *testing.T) {
	c := balancedCandidate()
	c.Lines[0].Credit = decimal.NewFromInt(5)

	verdict := validation.Assess(c)

	out := findOutcome(verdict.Outcomes, validation.RuleLineSingleSided)
	require.NotNil(t, out)
	assert.Equal(t, 1, out.LineNumber)
}

func TestAssess_UnknownAccountFails(t *testing.T) {
	c := balancedCandidate()
	delete(c.Accounts, "acc-b")

	verdict := validation.Assess(c)

	out := findOutcome(verdict.Outcomes, validation.RuleAccountExists)
	require.NotNil(t, out)
	assert.Equal(t, "acc-b", out.AccountID)
	assert.False(t, verdict.CanPost)
}

func TestAssess_InactiveAccountFails(t *testing.T) {
	c := balancedCandidate()
	acc := c.Accounts["acc-a"]
	acc.IsActive = false
	c.Accounts["acc-a"] = acc

	verdict := validation.Assess(c)

	assert.NotNil(t, findOutcome(verdict.Outcomes, validation.RuleAccountActive))
	assert.False(t, verdict.CanPost)
}

func TestAssess_HeaderAccountFails(t *testing.T) {
	c := balancedCandidate()
	acc := c.Accounts["acc-a"]
	acc.AllowsPosting = false
	c.Accounts["acc-a"] = acc

	verdict := validation.Assess(c)

	assert.NotNil(t, findOutcome(verdict.Outcomes, validation.RuleAccountPostable))
}

func TestAssess_CostCenterRequired(t *testing.T) {
	c := balancedCandidate()
	acc := c.Accounts["acc-a"]
	acc.RequiresCostCenter = true
	c.Accounts["acc-a"] = acc

	verdict := validation.Assess(c)
	assert.NotNil(t, findOutcome(verdict.Outcomes, validation.RuleCostCenterRequired))

	cc := "cc-1"
	c.Lines[0].CostCenterID = &cc
	verdict = validation.Assess(c)
	assert.Nil(t, findOutcome(verdict.Outcomes, validation.RuleCostCenterRequired))
}

func TestAssess_MissingPeriodFails(t *testing.T) {
	c := balancedCandidate()
	c.Period = nil

	verdict := validation.Assess(c)

	assert.NotNil(t, findOutcome(verdict.Outcomes, validation.RulePeriodExists))
	assert.False(t, verdict.CanPost)
}

func TestAssess_ClosedPeriodBlocksPosting(t *testing.T) {
	c := balancedCandidate()
	c.Period.Status = domain.PeriodClosed

	verdict := validation.Assess(c)

	assert.NotNil(t, findOutcome(verdict.Outcomes, validation.RulePeriodOpen))
	assert.False(t, verdict.CanPost)
}

func TestAssess_SoftClosedPeriodWarnsAndBlocks(t *testing.T) {
	c := balancedCandidate()
	c.Period.Status = domain.PeriodSoftClosed

	verdict := validation.Assess(c)

	out := findOutcome(verdict.Outcomes, validation.RulePeriodSoftClosed)
	require.NotNil(t, out)
	assert.Equal(t, validation.SeverityWarning, out.Severity)
	// A warning alone is not an error, but a soft-closed period still rejects postings.
	assert.False(t, validation.HasErrors(verdict.Outcomes))
	assert.False(t, verdict.CanPost)
}

func TestAssess_ApprovalGate(t *testing.T) {
	c := balancedCandidate()
	c.Approved = false

	verdict := validation.Assess(c)
	assert.False(t, verdict.CanPost)

	c.BypassApproval = true
	verdict = validation.Assess(c)
	assert.True(t, verdict.CanPost)
}

func TestAssess_ForeignCurrencyRateSanity(t *testing.T) {
	c := balancedCandidate()
	c.Lines[0].CurrencyCode = "EUR"
	c.Lines[0].ExchangeRate = decimal.Zero

	verdict := validation.Assess(c)

	out := findOutcome(verdict.Outcomes, validation.RuleExchangeRateSanity)
	require.NotNil(t, out)
	assert.Equal(t, validation.SeverityWarning, out.Severity)
	// Warnings never block posting on their own.
	assert.True(t, verdict.CanPost)
}

func TestEvaluate_IsPureAndAdditive(t *testing.T) {
	c := balancedCandidate()

	custom := func(validation.Candidate) []validation.Outcome {
		return []validation.Outcome{{Code: "CUSTOM", Severity: validation.SeverityInfo, Message: "noted"}}
	}

	outcomes := validation.Evaluate(c, []validation.Rule{custom})
	require.Len(t, outcomes, 1)
	assert.Equal(t, validation.SeverityInfo, outcomes[0].Severity)

	verdict := validation.Assess(c, custom)
	assert.True(t, verdict.CanPost)
	assert.NotNil(t, findOutcome(verdict.Outcomes, "CUSTOM"))
}
