package accounting_test

import (
	"testing"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	"github.com/ksiegowo/ksiegowo_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name   string
		normal domain.NormalBalance
		debit  string
		credit string
		want   string
	}{
		{"debit to debit-normal", domain.DebitNormal, "100", "0", "100"},
		{"credit to debit-normal", domain.DebitNormal, "0", "100", "-100"},
		{"credit to credit-normal", domain.CreditNormal, "0", "100", "100"},
		{"debit to credit-normal", domain.CreditNormal, "100", "0", "-100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.SignedAmount(tt.normal, d(tt.debit), d(tt.credit))
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestIsBalanced(t *testing.T) {
	assert.True(t, accounting.IsBalanced(d("100"), d("100")))
	assert.True(t, accounting.IsBalanced(d("100.004"), d("100")))
	assert.False(t, accounting.IsBalanced(d("100.01"), d("100")))
	assert.False(t, accounting.IsBalanced(d("100"), d("90")))
}

func TestSplitBySide(t *testing.T) {
	debit, credit := accounting.SplitBySide(domain.DebitNormal, d("250"))
	assert.True(t, debit.Equal(d("250")))
	assert.True(t, credit.IsZero())

	// Unusual: debit-normal account net-credit lands on the credit column.
	debit, credit = accounting.SplitBySide(domain.DebitNormal, d("-40"))
	assert.True(t, debit.IsZero())
	assert.True(t, credit.Equal(d("40")))

	debit, credit = accounting.SplitBySide(domain.CreditNormal, d("75"))
	assert.True(t, debit.IsZero())
	assert.True(t, credit.Equal(d("75")))

	debit, credit = accounting.SplitBySide(domain.CreditNormal, d("0"))
	assert.True(t, debit.IsZero())
	assert.True(t, credit.IsZero())
}

func TestIsUnusualBalance(t *testing.T) {
	assert.False(t, accounting.IsUnusualBalance(d("10")))
	assert.False(t, accounting.IsUnusualBalance(d("0")))
	assert.True(t, accounting.IsUnusualBalance(d("-10")))
}

func TestPercentChange(t *testing.T) {
	assert.True(t, accounting.PercentChange(d("100"), d("150")).Equal(d("50")))
	assert.True(t, accounting.PercentChange(d("-100"), d("-150")).Equal(d("-50")))
	assert.True(t, accounting.PercentChange(d("0"), d("150")).IsZero())
}
