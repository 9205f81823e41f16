package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ksiegowo/ksiegowo_backend/internal/apperrors"
	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	portsrepo "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/repositories"
	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
)

// fiscalService drives the fiscal year and accounting period state machines.
type fiscalService struct {
	BaseService
	fiscalRepo portsrepo.FiscalRepositoryFacade
}

// NewFiscalService creates a new FiscalService.
func NewFiscalService(fiscalRepo portsrepo.FiscalRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade, opts ...Option) portssvc.FiscalSvcFacade {
	s := &fiscalService{
		BaseService: newBaseService(auditRepo),
		fiscalRepo:  fiscalRepo,
	}
	applyOptions(&s.BaseService, opts)
	return s
}

var _ portssvc.FiscalSvcFacade = (*fiscalService)(nil)

// generateMonthlyPeriods splits a fiscal year's range into calendar-month
// periods. The first and last period absorb partial months at the edges.
func (s *fiscalService) generateMonthlyPeriods(year domain.FiscalYear, creatorUserID string) []domain.AccountingPeriod {
	var periods []domain.AccountingPeriod

	cursor := time.Date(year.StartDate.Year(), year.StartDate.Month(), year.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(year.EndDate.Year(), year.EndDate.Month(), year.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	sequence := 1

	for !cursor.After(end) {
		monthEnd := time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, 1, -1)
		if monthEnd.After(end) {
			monthEnd = end
		}

		periods = append(periods, domain.AccountingPeriod{
			PeriodID:       uuid.NewString(),
			FiscalYearID:   year.FiscalYearID,
			OrganizationID: year.OrganizationID,
			Sequence:       sequence,
			Name:           cursor.Format("2006-01"),
			StartDate:      cursor,
			EndDate:        monthEnd,
			Status:         domain.PeriodOpen,
			AuditFields:    s.newAuditFields(creatorUserID),
		})

		cursor = monthEnd.AddDate(0, 0, 1)
		sequence++
	}
	return periods
}

func (s *fiscalService) CreateFiscalYear(ctx context.Context, organizationID string, req dto.CreateFiscalYearRequest, creatorUserID string) (*domain.FiscalYear, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: fiscal year end date must be after start date", apperrors.ErrValidation)
	}
	if existing, err := s.fiscalRepo.FindFiscalYearByCode(ctx, organizationID, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: fiscal year code %s already exists", apperrors.ErrConflict, req.Code)
	}

	year := domain.FiscalYear{
		FiscalYearID:   uuid.NewString(),
		OrganizationID: organizationID,
		Code:           req.Code,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Status:         domain.FiscalYearDraft,
		IsCurrent:      false,
		AuditFields:    s.newAuditFields(creatorUserID),
	}
	periods := s.generateMonthlyPeriods(year, creatorUserID)

	if err := s.fiscalRepo.SaveFiscalYear(ctx, year, periods); err != nil {
		s.LogError(ctx, err, "Failed to save fiscal year", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to create fiscal year: %w", err)
	}

	s.RecordAudit(ctx, organizationID, creatorUserID, "fiscal_year.create", "fiscal_year", year.FiscalYearID, map[string]any{"code": year.Code, "periods": len(periods)})
	s.LogInfo(ctx, "Fiscal year created", slog.String("fiscal_year_id", year.FiscalYearID), slog.Int("periods", len(periods)))
	return &year, nil
}

func (s *fiscalService) GetFiscalYearByID(ctx context.Context, organizationID string, fiscalYearID string) (*domain.FiscalYear, error) {
	return s.fiscalRepo.FindFiscalYearByID(ctx, organizationID, fiscalYearID)
}

func (s *fiscalService) ListFiscalYears(ctx context.Context, organizationID string) ([]domain.FiscalYear, error) {
	return s.fiscalRepo.ListFiscalYears(ctx, organizationID)
}

func (s *fiscalService) ListPeriods(ctx context.Context, organizationID string, fiscalYearID string) ([]domain.AccountingPeriod, error) {
	return s.fiscalRepo.ListPeriods(ctx, organizationID, fiscalYearID)
}

func (s *fiscalService) GetPeriodByID(ctx context.Context, organizationID string, periodID string) (*domain.AccountingPeriod, error) {
	return s.fiscalRepo.FindPeriodByID(ctx, organizationID, periodID)
}

func (s *fiscalService) ResolvePeriodForDate(ctx context.Context, organizationID string, date time.Time) (*domain.AccountingPeriod, error) {
	return s.fiscalRepo.FindPeriodForDate(ctx, organizationID, date)
}

func (s *fiscalService) OpenFiscalYear(ctx context.Context, organizationID string, fiscalYearID string, requestingUserID string) (*domain.FiscalYear, error) {
	year, err := s.fiscalRepo.FindFiscalYearByID(ctx, organizationID, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if year.Status != domain.FiscalYearDraft {
		return nil, fmt.Errorf("%w: fiscal year %s is %s, only draft years can be opened", apperrors.ErrPreconditionFailed, year.Code, year.Status)
	}

	if err := s.fiscalRepo.UpdateFiscalYearStatus(ctx, organizationID, fiscalYearID, domain.FiscalYearOpen, requestingUserID, s.Now()); err != nil {
		return nil, fmt.Errorf("failed to open fiscal year: %w", err)
	}
	year.Status = domain.FiscalYearOpen

	s.RecordAudit(ctx, organizationID, requestingUserID, "fiscal_year.open", "fiscal_year", fiscalYearID, nil)
	return year, nil
}

func (s *fiscalService) CloseFiscalYear(ctx context.Context, organizationID string, fiscalYearID string, requestingUserID string) (*domain.FiscalYear, error) {
	year, err := s.fiscalRepo.FindFiscalYearByID(ctx, organizationID, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if year.Status != domain.FiscalYearOpen {
		return nil, fmt.Errorf("%w: fiscal year %s is %s, only open years can be closed", apperrors.ErrPreconditionFailed, year.Code, year.Status)
	}

	// Every child period must already be closed. Closing the year is the final
	// act of period-end, not a shortcut around it.
	openCount, err := s.fiscalRepo.CountOpenPeriods(ctx, fiscalYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to count open periods: %w", err)
	}
	if openCount > 0 {
		return nil, fmt.Errorf("%w: fiscal year %s still has %d periods that are not closed", apperrors.ErrPreconditionFailed, year.Code, openCount)
	}

	if err := s.fiscalRepo.UpdateFiscalYearStatus(ctx, organizationID, fiscalYearID, domain.FiscalYearClosed, requestingUserID, s.Now()); err != nil {
		return nil, fmt.Errorf("failed to close fiscal year: %w", err)
	}
	year.Status = domain.FiscalYearClosed

	s.RecordAudit(ctx, organizationID, requestingUserID, "fiscal_year.close", "fiscal_year", fiscalYearID, nil)
	return year, nil
}

func (s *fiscalService) LockFiscalYear(ctx context.Context, organizationID string, fiscalYearID string, requestingUserID string) (*domain.FiscalYear, error) {
	year, err := s.fiscalRepo.FindFiscalYearByID(ctx, organizationID, fiscalYearID)
	if err != nil {
		return nil, err
	}
	if year.Status != domain.FiscalYearClosed {
		return nil, fmt.Errorf("%w: fiscal year %s is %s, only closed years can be locked", apperrors.ErrPreconditionFailed, year.Code, year.Status)
	}

	if err := s.fiscalRepo.LockFiscalYear(ctx, organizationID, fiscalYearID, requestingUserID, s.Now()); err != nil {
		return nil, fmt.Errorf("failed to lock fiscal year: %w", err)
	}
	year.Status = domain.FiscalYearLocked

	s.RecordAudit(ctx, organizationID, requestingUserID, "fiscal_year.lock", "fiscal_year", fiscalYearID, nil)
	s.LogInfo(ctx, "Fiscal year locked", slog.String("fiscal_year_id", fiscalYearID))
	return year, nil
}

func (s *fiscalService) SetCurrentFiscalYear(ctx context.Context, organizationID string, fiscalYearID string, requestingUserID string) error {
	year, err := s.fiscalRepo.FindFiscalYearByID(ctx, organizationID, fiscalYearID)
	if err != nil {
		return err
	}
	if year.Status != domain.FiscalYearOpen {
		return fmt.Errorf("%w: only open fiscal years can be current", apperrors.ErrPreconditionFailed)
	}

	if err := s.fiscalRepo.SetCurrentFiscalYear(ctx, organizationID, fiscalYearID, requestingUserID, s.Now()); err != nil {
		return fmt.Errorf("failed to set current fiscal year: %w", err)
	}

	s.RecordAudit(ctx, organizationID, requestingUserID, "fiscal_year.set_current", "fiscal_year", fiscalYearID, nil)
	return nil
}

func (s *fiscalService) DeleteFiscalYear(ctx context.Context, organizationID string, fiscalYearID string, requestingUserID string) error {
	year, err := s.fiscalRepo.FindFiscalYearByID(ctx, organizationID, fiscalYearID)
	if err != nil {
		return err
	}
	if year.Status != domain.FiscalYearDraft {
		return fmt.Errorf("%w: only draft fiscal years can be deleted", apperrors.ErrPreconditionFailed)
	}

	entryCount, err := s.fiscalRepo.CountEntriesForFiscalYear(ctx, organizationID, fiscalYearID)
	if err != nil {
		return fmt.Errorf("failed to count entries for fiscal year: %w", err)
	}
	if entryCount > 0 {
		return fmt.Errorf("%w: fiscal year %s has %d journal entries", apperrors.ErrPreconditionFailed, year.Code, entryCount)
	}

	if err := s.fiscalRepo.DeleteFiscalYear(ctx, organizationID, fiscalYearID); err != nil {
		return fmt.Errorf("failed to delete fiscal year: %w", err)
	}

	s.RecordAudit(ctx, organizationID, requestingUserID, "fiscal_year.delete", "fiscal_year", fiscalYearID, map[string]any{"code": year.Code})
	return nil
}

// periodTransitions enumerates the allowed period moves. CLOSED is terminal;
// a soft close can be undone, a hard close cannot.
var periodTransitions = map[domain.PeriodStatus][]domain.PeriodStatus{
	domain.PeriodOpen:       {domain.PeriodSoftClosed, domain.PeriodClosed},
	domain.PeriodSoftClosed: {domain.PeriodOpen, domain.PeriodClosed},
	domain.PeriodClosed:     {},
}

func periodTransitionAllowed(from, to domain.PeriodStatus) bool {
	for _, t := range periodTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

func (s *fiscalService) TransitionPeriod(ctx context.Context, organizationID string, periodID string, target domain.PeriodStatus, requestingUserID string) (*domain.AccountingPeriod, error) {
	period, err := s.fiscalRepo.FindPeriodByID(ctx, organizationID, periodID)
	if err != nil {
		return nil, err
	}

	year, err := s.fiscalRepo.FindFiscalYearByID(ctx, organizationID, period.FiscalYearID)
	if err != nil {
		return nil, err
	}
	if year.Status == domain.FiscalYearLocked {
		return nil, fmt.Errorf("%w: fiscal year %s is locked", apperrors.ErrPreconditionFailed, year.Code)
	}

	if period.Status == target {
		return period, nil
	}
	if !periodTransitionAllowed(period.Status, target) {
		return nil, fmt.Errorf("%w: period %s cannot move from %s to %s", apperrors.ErrPreconditionFailed, period.Name, period.Status, target)
	}

	if err := s.fiscalRepo.UpdatePeriodStatus(ctx, organizationID, periodID, target, requestingUserID, s.Now()); err != nil {
		return nil, fmt.Errorf("failed to transition period: %w", err)
	}
	period.Status = target
	s.touchAuditFields(&period.AuditFields, requestingUserID)

	s.RecordAudit(ctx, organizationID, requestingUserID, "period.transition", "accounting_period", periodID, map[string]any{"to": string(target)})
	s.LogInfo(ctx, "Period transitioned", slog.String("period_id", periodID), slog.String("status", string(target)))
	return period, nil
}
