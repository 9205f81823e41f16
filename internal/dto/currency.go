package dto

import (
	"time"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest defines the payload for adding a currency to the
// dictionary.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,len=3"`
	Symbol       string `json:"symbol" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Precision    int    `json:"precision" binding:"min=0,max=18"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"`
}

// CreateExchangeRateRequest defines the payload for recording an exchange rate.
type CreateExchangeRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,len=3"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,len=3"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
	EffectiveDate    time.Time       `json:"effectiveDate" binding:"required"`
}

// ExchangeRateResponse defines the data returned for an exchange rate.
type ExchangeRateResponse struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	EffectiveDate    time.Time       `json:"effectiveDate"`
}

// ToCurrencyResponse converts a domain.Currency to its DTO.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: c.CurrencyCode,
		Symbol:       c.Symbol,
		Name:         c.Name,
		Precision:    c.Precision,
	}
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its DTO.
func ToExchangeRateResponse(r *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   r.ExchangeRateID,
		FromCurrencyCode: r.FromCurrencyCode,
		ToCurrencyCode:   r.ToCurrencyCode,
		Rate:             r.Rate,
		EffectiveDate:    r.EffectiveDate,
	}
}
