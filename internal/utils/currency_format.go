package utils

import (
	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the correct precision
// for a given currency. Rounding happens only here, at the display boundary;
// all internal arithmetic keeps full decimal precision.
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.Round(int32(currency.Precision)).String()
}

// FormatWithPrecision formats an amount with the given precision.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
