package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents a currency used within the system.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // ISO 4217 code, primary key
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"` // Decimal places for display rounding
	AuditFields
}

// ExchangeRate is an organization-scoped conversion rate between two
// currencies, effective from a given date. Lines in foreign currencies use it
// to derive their base-currency equivalents.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"` // Primary key (UUID)
	OrganizationID   string          `json:"organizationID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	EffectiveDate    time.Time       `json:"effectiveDate"`
	AuditFields
}
