package services

import (
	"context"
	"time"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
)

// CurrencySvcFacade defines operations for the currency dictionary
type CurrencySvcFacade interface {
	// CreateCurrency adds a currency to the dictionary.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a currency by its ISO code.
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies retrieves all known currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// ExchangeRateSvcFacade defines operations for organization-scoped exchange
// rates
type ExchangeRateSvcFacade interface {
	// CreateExchangeRate records a rate effective from a given date.
	CreateExchangeRate(ctx context.Context, organizationID string, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)

	// GetRateForDate returns the rate with the latest effective date not after
	// the given date.
	GetRateForDate(ctx context.Context, organizationID string, fromCurrency, toCurrency string, onDate time.Time) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves all rates of an organization.
	ListExchangeRates(ctx context.Context, organizationID string) ([]domain.ExchangeRate, error)
}
