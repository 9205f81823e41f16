package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestEntryTypeNumberPrefix(t *testing.T) {
	tests := []struct {
		entryType domain.EntryType
		want      string
	}{
		{domain.EntryStandard, "JE"},
		{domain.EntryOpening, "OP"},
		{domain.EntryReversing, "RV"},
		{domain.EntryAdjusting, "AJ"},
		{domain.EntryType("UNKNOWN"), "JE"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.entryType.NumberPrefix())
	}
}

func TestEntryStatusIsEditable(t *testing.T) {
	assert.True(t, domain.EntryDraft.IsEditable())
	assert.True(t, domain.EntryPending.IsEditable())
	assert.False(t, domain.EntryPosted.IsEditable())
	assert.False(t, domain.EntryReversed.IsEditable())
}

func TestJournalEntryIsBalanced(t *testing.T) {
	tests := []struct {
		name   string
		debit  string
		credit string
		want   bool
	}{
		{"exact match", "100", "100", true},
		{"sub-tolerance drift", "100.004", "100", true},
		{"at tolerance boundary", "100.01", "100", false},
		{"grossly off", "100", "90", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := domain.JournalEntry{TotalDebit: d(tt.debit), TotalCredit: d(tt.credit)}
			assert.Equal(t, tt.want, entry.IsBalanced())
		})
	}
}

func TestJournalLineSwapped(t *testing.T) {
	costCenter := "cc-1"
	line := domain.JournalLine{
		LineID:       "line-1",
		AccountID:    "acc-1",
		Debit:        d("100"),
		Credit:       d("0"),
		ExchangeRate: d("4.25"),
		BaseDebit:    d("425"),
		BaseCredit:   d("0"),
		CostCenterID: &costCenter,
	}

	swapped := line.Swapped()

	assert.True(t, swapped.Debit.IsZero())
	assert.True(t, swapped.Credit.Equal(d("100")))
	assert.True(t, swapped.BaseDebit.IsZero())
	assert.True(t, swapped.BaseCredit.Equal(d("425")))
	assert.Equal(t, "acc-1", swapped.AccountID)
	assert.Equal(t, &costCenter, swapped.CostCenterID)
	// The original is untouched.
	assert.True(t, line.Debit.Equal(d("100")))
}

func TestEntryTotals(t *testing.T) {
	lines := []domain.JournalLine{
		{BaseDebit: d("100"), BaseCredit: d("0")},
		{BaseDebit: d("0"), BaseCredit: d("60")},
		{BaseDebit: d("0"), BaseCredit: d("40")},
	}

	debit, credit := domain.EntryTotals(lines)

	assert.True(t, debit.Equal(d("100")))
	assert.True(t, credit.Equal(d("100")))
}

func TestClosingBalance(t *testing.T) {
	tests := []struct {
		name    string
		normal  domain.NormalBalance
		opening string
		debits  string
		credits string
		want    string
	}{
		{"debit-normal grows on debits", domain.DebitNormal, "50", "100", "30", "120"},
		{"debit-normal shrinks on credits", domain.DebitNormal, "50", "0", "70", "-20"},
		{"credit-normal grows on credits", domain.CreditNormal, "200", "40", "100", "260"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ClosingBalance(tt.normal, d(tt.opening), d(tt.debits), d(tt.credits))
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestNetMovement(t *testing.T) {
	assert.True(t, domain.NetMovement(domain.DebitNormal, d("100"), d("30")).Equal(d("70")))
	assert.True(t, domain.NetMovement(domain.CreditNormal, d("100"), d("30")).Equal(d("-70")))
}

func TestAccountTypeDefaultNormalBalance(t *testing.T) {
	assert.Equal(t, domain.DebitNormal, domain.Asset.DefaultNormalBalance())
	assert.Equal(t, domain.DebitNormal, domain.Expense.DefaultNormalBalance())
	assert.Equal(t, domain.CreditNormal, domain.Liability.DefaultNormalBalance())
	assert.Equal(t, domain.CreditNormal, domain.Equity.DefaultNormalBalance())
	assert.Equal(t, domain.CreditNormal, domain.Revenue.DefaultNormalBalance())
}

func TestPeriodStatusAcceptsPosting(t *testing.T) {
	assert.True(t, domain.PeriodOpen.AcceptsPosting())
	assert.False(t, domain.PeriodSoftClosed.AcceptsPosting())
	assert.False(t, domain.PeriodClosed.AcceptsPosting())
}

func TestAccountingPeriodContains(t *testing.T) {
	period := domain.AccountingPeriod{
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, period.Contains(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)), "start boundary is inclusive")
	assert.True(t, period.Contains(time.Date(2025, 3, 31, 23, 59, 0, 0, time.UTC)), "end boundary ignores time of day")
	assert.True(t, period.Contains(time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)))
	assert.False(t, period.Contains(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))
}
