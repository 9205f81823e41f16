package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ksiegowo/ksiegowo_backend/internal/apperrors"
	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	portsrepo "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/repositories"
	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
)

// currencyService manages the shared currency dictionary.
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade, opts ...Option) portssvc.CurrencySvcFacade {
	s := &currencyService{
		BaseService:  newBaseService(auditRepo),
		currencyRepo: currencyRepo,
	}
	applyOptions(&s.BaseService, opts)
	return s
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	code := strings.ToUpper(req.CurrencyCode)
	if existing, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: currency %s already exists", apperrors.ErrConflict, code)
	}

	currency := domain.Currency{
		CurrencyCode: code,
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    req.Precision,
		AuditFields:  s.newAuditFields(creatorUserID),
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(code))
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.currencyRepo.ListCurrencies(ctx)
}

// exchangeRateService manages organization-scoped exchange rates.
type exchangeRateService struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade, opts ...Option) portssvc.ExchangeRateSvcFacade {
	s := &exchangeRateService{
		BaseService:  newBaseService(auditRepo),
		rateRepo:     rateRepo,
		currencyRepo: currencyRepo,
	}
	applyOptions(&s.BaseService, opts)
	return s
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, organizationID string, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	from := strings.ToUpper(req.FromCurrencyCode)
	to := strings.ToUpper(req.ToCurrencyCode)
	if from == to {
		return nil, fmt.Errorf("%w: exchange rate currencies must differ", apperrors.ErrValidation)
	}
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	// Both ends must exist in the dictionary before a rate can reference them.
	for _, code := range []string{from, to} {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err != nil {
			return nil, fmt.Errorf("currency %s lookup failed: %w", code, err)
		}
	}

	rate := domain.ExchangeRate{
		ExchangeRateID:   newUUID(),
		OrganizationID:   organizationID,
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             req.Rate,
		EffectiveDate:    req.EffectiveDate,
		AuditFields:      s.newAuditFields(creatorUserID),
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to create exchange rate: %w", err)
	}

	s.RecordAudit(ctx, organizationID, creatorUserID, "exchange_rate.create", "exchange_rate", rate.ExchangeRateID, map[string]any{"from": from, "to": to})
	return &rate, nil
}

func (s *exchangeRateService) GetRateForDate(ctx context.Context, organizationID string, fromCurrency, toCurrency string, onDate time.Time) (*domain.ExchangeRate, error) {
	return s.rateRepo.FindRateForDate(ctx, organizationID, strings.ToUpper(fromCurrency), strings.ToUpper(toCurrency), onDate)
}

func (s *exchangeRateService) ListExchangeRates(ctx context.Context, organizationID string) ([]domain.ExchangeRate, error) {
	return s.rateRepo.ListExchangeRates(ctx, organizationID)
}
