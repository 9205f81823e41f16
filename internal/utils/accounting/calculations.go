package accounting

import (
	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the accounting sign convention to a debit/credit pair:
// positive when the movement sits on the account's normal-balance side,
// negative otherwise. Used in both services and repositories so running
// balance arithmetic stays consistent.
func SignedAmount(normal domain.NormalBalance, debit, credit decimal.Decimal) decimal.Decimal {
	if normal == domain.DebitNormal {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// IsBalanced reports whether total debits equal total credits within the
// balance tolerance.
func IsBalanced(totalDebit, totalCredit decimal.Decimal) bool {
	return totalDebit.Sub(totalCredit).Abs().LessThan(domain.BalanceTolerance)
}

// IsUnusualBalance reports whether a net balance contradicts the account's
// normal-balance side: a debit-normal account sitting net-credit, or a
// credit-normal account sitting net-debit. Net balances are pre-signed by
// SignedAmount, so "unusual" simply means negative.
func IsUnusualBalance(net decimal.Decimal) bool {
	return net.IsNegative()
}

// SplitBySide places a signed net balance on the debit or credit column
// according to the account's normal side. The returned amounts are never
// negative; an unusual balance lands on the opposite column.
func SplitBySide(normal domain.NormalBalance, net decimal.Decimal) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	if net.IsZero() {
		return debit, credit
	}
	onNormalSide := net.IsPositive()
	amount := net.Abs()
	switch {
	case normal == domain.DebitNormal && onNormalSide,
		normal == domain.CreditNormal && !onNormalSide:
		debit = amount
	default:
		credit = amount
	}
	return debit, credit
}

// PercentChange computes (current-previous)/|previous| * 100, returning zero
// when the previous value is zero to avoid a meaningless division.
func PercentChange(previous, current decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous.Abs()).Mul(decimal.NewFromInt(100))
}
