package repositories

import (
	"context"
	"time"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
)

// CurrencyRepositoryFacade defines persistence operations for the currency
// dictionary.
type CurrencyRepositoryFacade interface {
	SaveCurrency(ctx context.Context, currency domain.Currency) error
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// ExchangeRateRepositoryFacade defines persistence operations for
// organization-scoped exchange rates.
type ExchangeRateRepositoryFacade interface {
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// FindRateForDate returns the rate with the latest effective date not
	// after the given date.
	FindRateForDate(ctx context.Context, organizationID, fromCurrency, toCurrency string, onDate time.Time) (*domain.ExchangeRate, error)
	ListExchangeRates(ctx context.Context, organizationID string) ([]domain.ExchangeRate, error)
}
