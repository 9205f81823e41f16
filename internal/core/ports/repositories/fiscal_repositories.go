package repositories

import (
	"context"
	"time"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
)

// FiscalRepositoryFacade defines persistence operations for fiscal years and
// their accounting periods.
type FiscalRepositoryFacade interface {
	// SaveFiscalYear persists a fiscal year together with its generated
	// periods in one transaction.
	SaveFiscalYear(ctx context.Context, year domain.FiscalYear, periods []domain.AccountingPeriod) error
	FindFiscalYearByID(ctx context.Context, organizationID, fiscalYearID string) (*domain.FiscalYear, error)
	FindFiscalYearByCode(ctx context.Context, organizationID, code string) (*domain.FiscalYear, error)
	ListFiscalYears(ctx context.Context, organizationID string) ([]domain.FiscalYear, error)
	UpdateFiscalYearStatus(ctx context.Context, organizationID, fiscalYearID string, status domain.FiscalYearStatus, userID string, now time.Time) error

	// SetCurrentFiscalYear unsets the previous current year and sets the new
	// one in a single transaction.
	SetCurrentFiscalYear(ctx context.Context, organizationID, fiscalYearID string, userID string, now time.Time) error

	// LockFiscalYear closes every child period and locks the year in a single
	// transaction. Irreversible.
	LockFiscalYear(ctx context.Context, organizationID, fiscalYearID string, userID string, now time.Time) error

	// DeleteFiscalYear removes a draft year and its periods.
	DeleteFiscalYear(ctx context.Context, organizationID, fiscalYearID string) error

	CountEntriesForFiscalYear(ctx context.Context, organizationID, fiscalYearID string) (int64, error)
	CountOpenPeriods(ctx context.Context, fiscalYearID string) (int64, error)

	FindPeriodByID(ctx context.Context, organizationID, periodID string) (*domain.AccountingPeriod, error)
	FindPeriodForDate(ctx context.Context, organizationID string, date time.Time) (*domain.AccountingPeriod, error)
	ListPeriods(ctx context.Context, organizationID, fiscalYearID string) ([]domain.AccountingPeriod, error)
	UpdatePeriodStatus(ctx context.Context, organizationID, periodID string, status domain.PeriodStatus, userID string, now time.Time) error
}
