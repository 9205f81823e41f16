package services

import (
	"context"
	"time"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
)

// PeriodResolverSvc resolves accounting periods by date. The journal service
// depends on this narrow view rather than the full fiscal facade.
type PeriodResolverSvc interface {
	// ResolvePeriodForDate returns the accounting period containing the date,
	// or ErrNotFound when no fiscal year covers it.
	ResolvePeriodForDate(ctx context.Context, organizationID string, date time.Time) (*domain.AccountingPeriod, error)

	// GetPeriodByID retrieves a specific period by its ID.
	GetPeriodByID(ctx context.Context, organizationID string, periodID string) (*domain.AccountingPeriod, error)
}

// FiscalReaderSvc defines read operations for fiscal years and periods
type FiscalReaderSvc interface {
	PeriodResolverSvc

	// GetFiscalYearByID retrieves a specific fiscal year by its ID.
	GetFiscalYearByID(ctx context.Context, organizationID string, fiscalYearID string) (*domain.FiscalYear, error)

	// ListFiscalYears retrieves all fiscal years of an organization.
	ListFiscalYears(ctx context.Context, organizationID string) ([]domain.FiscalYear, error)

	// ListPeriods retrieves the periods of a fiscal year in sequence order.
	ListPeriods(ctx context.Context, organizationID string, fiscalYearID string) ([]domain.AccountingPeriod, error)
}

// FiscalWriterSvc defines state-machine operations for fiscal years and periods
type FiscalWriterSvc interface {
	// CreateFiscalYear persists a draft fiscal year and generates its monthly
	// periods.
	CreateFiscalYear(ctx context.Context, organizationID string, req dto.CreateFiscalYearRequest, creatorUserID string) (*domain.FiscalYear, error)

	// OpenFiscalYear transitions a draft year to OPEN and opens its periods.
	OpenFiscalYear(ctx context.Context, organizationID string, fiscalYearID string, requestingUserID string) (*domain.FiscalYear, error)

	// CloseFiscalYear transitions an open year to CLOSED. Every child period
	// must already be closed.
	CloseFiscalYear(ctx context.Context, organizationID string, fiscalYearID string, requestingUserID string) (*domain.FiscalYear, error)

	// LockFiscalYear transitions a closed year to LOCKED. Irreversible.
	LockFiscalYear(ctx context.Context, organizationID string, fiscalYearID string, requestingUserID string) (*domain.FiscalYear, error)

	// SetCurrentFiscalYear marks a year as the organization's current one.
	SetCurrentFiscalYear(ctx context.Context, organizationID string, fiscalYearID string, requestingUserID string) error

	// DeleteFiscalYear removes a draft year that has no journal entries.
	DeleteFiscalYear(ctx context.Context, organizationID string, fiscalYearID string, requestingUserID string) error

	// TransitionPeriod moves a period between OPEN, SOFT_CLOSED and CLOSED.
	// CLOSED is terminal; reopening is only allowed from SOFT_CLOSED.
	TransitionPeriod(ctx context.Context, organizationID string, periodID string, target domain.PeriodStatus, requestingUserID string) (*domain.AccountingPeriod, error)
}

// FiscalSvcFacade combines all fiscal-calendar service interfaces
type FiscalSvcFacade interface {
	FiscalReaderSvc
	FiscalWriterSvc
}
