package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ksiegowo/ksiegowo_backend/internal/apperrors"
	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	portsrepo "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/repositories"
	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
	"github.com/ksiegowo/ksiegowo_backend/internal/utils/numbering"
)

// Reversal sentinels wrap the apperrors taxonomy, same as the lifecycle ones.
var (
	ErrNotPosted         = fmt.Errorf("only posted entries can be reversed or corrected: %w", apperrors.ErrPreconditionFailed)
	ErrAlreadyReversed   = fmt.Errorf("entry already has a reversal: %w", apperrors.ErrConflict)
	ErrReversalDateEarly = fmt.Errorf("reversal date cannot precede the original entry date: %w", apperrors.ErrValidation)
)

// reversalService builds reversing and correcting entries for posted ones.
// The original entry is never mutated beyond its status and linkage fields;
// the ledger records stay untouched and the reversal's own records cancel
// them out arithmetically.
type reversalService struct {
	BaseService
	journalRepo portsrepo.JournalEntryRepositoryFacade
	fiscalSvc   portssvc.PeriodResolverSvc
	posterSvc   portssvc.EntryPosterSvc
}

// NewReversalService creates a new ReversalService.
func NewReversalService(journalRepo portsrepo.JournalEntryRepositoryFacade, fiscalSvc portssvc.PeriodResolverSvc, posterSvc portssvc.EntryPosterSvc, auditRepo portsrepo.AuditRepositoryFacade, opts ...Option) portssvc.ReversalSvc {
	s := &reversalService{
		BaseService: newBaseService(auditRepo),
		journalRepo: journalRepo,
		fiscalSvc:   fiscalSvc,
		posterSvc:   posterSvc,
	}
	applyOptions(&s.BaseService, opts)
	return s
}

var _ portssvc.ReversalSvc = (*reversalService)(nil)

func (s *reversalService) loadPostedEntry(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryPosted {
		return nil, fmt.Errorf("%w: entry %s is %s", ErrNotPosted, entry.EntryNumber, entry.Status)
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry lines: %w", err)
	}
	entry.Lines = lines
	return entry, nil
}

// ReverseEntry creates a reversing entry with every line swapped and links
// both entries. With AutoPost the reversal is posted in the same call.
func (s *reversalService) ReverseEntry(ctx context.Context, organizationID string, entryID string, req dto.ReverseEntryRequest, requestingUserID string) (*domain.JournalEntry, error) {
	original, err := s.loadPostedEntry(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if original.ReversingEntryID != nil {
		return nil, fmt.Errorf("%w: entry %s", ErrAlreadyReversed, original.EntryNumber)
	}
	if req.ReversalDate.Before(original.EntryDate) {
		return nil, fmt.Errorf("%w: %s is before %s", ErrReversalDateEarly, req.ReversalDate.Format("2006-01-02"), original.EntryDate.Format("2006-01-02"))
	}

	period, err := s.fiscalSvc.ResolvePeriodForDate(ctx, organizationID, req.ReversalDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no accounting period covers %s", apperrors.ErrValidation, req.ReversalDate.Format("2006-01-02"))
		}
		return nil, err
	}
	if !period.Status.AcceptsPosting() {
		return nil, fmt.Errorf("%w: period %s is %s", apperrors.ErrPreconditionFailed, period.Name, period.Status)
	}

	seq, err := s.journalRepo.NextEntryNumber(ctx, organizationID, domain.EntryReversing, req.ReversalDate.Year(), int(req.ReversalDate.Month()))
	if err != nil {
		return nil, fmt.Errorf("failed to allocate entry number: %w", err)
	}

	now := s.Now()
	reversingID := uuid.NewString()
	lines := make([]domain.JournalLine, len(original.Lines))
	for i, l := range original.Lines {
		swapped := l.Swapped()
		swapped.LineID = uuid.NewString()
		swapped.EntryID = reversingID
		swapped.AuditFields = s.newAuditFields(requestingUserID)
		lines[i] = swapped
	}

	reversing := domain.JournalEntry{
		EntryID:         reversingID,
		OrganizationID:  organizationID,
		EntryNumber:     numbering.FormatEntryNumber(domain.EntryReversing.NumberPrefix(), req.ReversalDate.Year(), int(req.ReversalDate.Month()), seq),
		EntryDate:       req.ReversalDate,
		PeriodID:        period.PeriodID,
		FiscalYearID:    period.FiscalYearID,
		EntryType:       domain.EntryReversing,
		Status:          domain.EntryDraft,
		Description:     fmt.Sprintf("Reversal of %s: %s", original.EntryNumber, req.Reason),
		CurrencyCode:    original.CurrencyCode,
		TotalDebit:      original.TotalCredit,
		TotalCredit:     original.TotalDebit,
		ReversedEntryID: &entryID,
		ReversalReason:  req.Reason,
		ReversedAt:      &now,
		Lines:           lines,
		AuditFields:     s.newAuditFields(requestingUserID),
	}

	if err := s.journalRepo.SaveReversal(ctx, reversing, entryID, req.Reason); err != nil {
		s.LogError(ctx, err, "Failed to save reversal", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save reversal: %w", err)
	}

	s.RecordAudit(ctx, organizationID, requestingUserID, "journal_entry.reverse", "journal_entry", entryID, map[string]any{
		"reversing_entry_id": reversingID,
		"reason":             req.Reason,
	})
	s.LogInfo(ctx, "Entry reversed", slog.String("entry_id", entryID), slog.String("reversing_entry_id", reversingID))

	if req.AutoPost {
		// A reversal of approved, posted data needs no second approval pass.
		return s.posterSvc.PostEntry(ctx, organizationID, reversingID, requestingUserID, true)
	}
	return &reversing, nil
}

// CreateCorrection creates an adjusting entry carrying only the correcting
// delta. Correction lines are entered in the organization's base currency.
func (s *reversalService) CreateCorrection(ctx context.Context, organizationID string, entryID string, req dto.CreateCorrectionRequest, requestingUserID string) (*domain.JournalEntry, error) {
	original, err := s.loadPostedEntry(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}

	period, err := s.fiscalSvc.ResolvePeriodForDate(ctx, organizationID, req.EntryDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no accounting period covers %s", apperrors.ErrValidation, req.EntryDate.Format("2006-01-02"))
		}
		return nil, err
	}
	if period.Status == domain.PeriodClosed {
		return nil, fmt.Errorf("%w: period %s is closed", apperrors.ErrPreconditionFailed, period.Name)
	}

	seq, err := s.journalRepo.NextEntryNumber(ctx, organizationID, domain.EntryAdjusting, req.EntryDate.Year(), int(req.EntryDate.Month()))
	if err != nil {
		return nil, fmt.Errorf("failed to allocate entry number: %w", err)
	}

	correctionID := uuid.NewString()
	one := decimal.NewFromInt(1)
	lines := make([]domain.JournalLine, len(req.Lines))
	for i, lr := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      correctionID,
			LineNumber:   i + 1,
			AccountID:    lr.AccountID,
			Debit:        lr.Debit,
			Credit:       lr.Credit,
			CurrencyCode: "",
			ExchangeRate: one,
			BaseDebit:    lr.Debit,
			BaseCredit:   lr.Credit,
			CostCenterID: lr.CostCenterID,
			Description:  lr.Description,
			AuditFields:  s.newAuditFields(requestingUserID),
		}
	}

	totalDebit, totalCredit := domain.EntryTotals(lines)
	if totalDebit.Sub(totalCredit).Abs().GreaterThanOrEqual(domain.BalanceTolerance) {
		return nil, fmt.Errorf("%w: total debit %s, total credit %s", ErrEntryUnbalanced, totalDebit.String(), totalCredit.String())
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Correction of %s: %s", original.EntryNumber, req.Reason)
	}

	correction := domain.JournalEntry{
		EntryID:          correctionID,
		OrganizationID:   organizationID,
		EntryNumber:      numbering.FormatEntryNumber(domain.EntryAdjusting.NumberPrefix(), req.EntryDate.Year(), int(req.EntryDate.Month()), seq),
		EntryDate:        req.EntryDate,
		PeriodID:         period.PeriodID,
		FiscalYearID:     period.FiscalYearID,
		EntryType:        domain.EntryAdjusting,
		Status:           domain.EntryDraft,
		Description:      description,
		TotalDebit:       totalDebit,
		TotalCredit:      totalCredit,
		CorrectedEntryID: &entryID,
		Lines:            lines,
		AuditFields:      s.newAuditFields(requestingUserID),
	}

	if err := s.journalRepo.SaveEntry(ctx, correction); err != nil {
		s.LogError(ctx, err, "Failed to save correction", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save correction: %w", err)
	}

	s.RecordAudit(ctx, organizationID, requestingUserID, "journal_entry.correct", "journal_entry", entryID, map[string]any{
		"correction_entry_id": correctionID,
		"reason":              req.Reason,
	})

	if req.AutoPost {
		return s.posterSvc.PostEntry(ctx, organizationID, correctionID, requestingUserID, true)
	}
	return &correction, nil
}

// ScheduleAutoReversal annotates a posted entry for the reversal sweep.
func (s *reversalService) ScheduleAutoReversal(ctx context.Context, organizationID string, entryID string, reverseOn time.Time, requestingUserID string) error {
	entry, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.EntryPosted {
		return fmt.Errorf("%w: entry %s is %s", ErrNotPosted, entry.EntryNumber, entry.Status)
	}
	if !reverseOn.After(entry.EntryDate) {
		return fmt.Errorf("%w: auto-reverse date must be after the entry date", apperrors.ErrValidation)
	}

	if err := s.journalRepo.SetAutoReverseDate(ctx, organizationID, entryID, &reverseOn, requestingUserID, s.Now()); err != nil {
		return fmt.Errorf("failed to schedule auto-reversal: %w", err)
	}

	s.RecordAudit(ctx, organizationID, requestingUserID, "journal_entry.schedule_auto_reversal", "journal_entry", entryID, map[string]any{"reverse_on": reverseOn.Format("2006-01-02")})
	return nil
}

// CancelAutoReversal clears a scheduled auto-reversal. Only a posted,
// not-yet-reversed entry can still carry a schedule worth cancelling.
func (s *reversalService) CancelAutoReversal(ctx context.Context, organizationID string, entryID string, requestingUserID string) error {
	entry, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.EntryPosted {
		return fmt.Errorf("%w: entry %s is %s", ErrNotPosted, entry.EntryNumber, entry.Status)
	}
	if entry.AutoReverseDate == nil {
		return fmt.Errorf("%w: entry %s has no auto-reversal scheduled", apperrors.ErrNotFound, entry.EntryNumber)
	}

	if err := s.journalRepo.SetAutoReverseDate(ctx, organizationID, entryID, nil, requestingUserID, s.Now()); err != nil {
		return fmt.Errorf("failed to cancel auto-reversal: %w", err)
	}

	s.RecordAudit(ctx, organizationID, requestingUserID, "journal_entry.cancel_auto_reversal", "journal_entry", entryID, nil)
	return nil
}

// ProcessDueReversals reverses every posted entry whose auto-reverse date has
// arrived. Each entry succeeds or fails on its own; already-reversed entries
// drop out of the due list, so re-running the sweep is harmless.
func (s *reversalService) ProcessDueReversals(ctx context.Context, organizationID string, asOf time.Time, requestingUserID string) (*dto.ReversalSweepResponse, error) {
	if asOf.IsZero() {
		asOf = s.Now()
	}
	due, err := s.journalRepo.ListEntriesDueForAutoReversal(ctx, organizationID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries due for auto-reversal: %w", err)
	}

	resp := &dto.ReversalSweepResponse{Items: make([]dto.ReversalSweepItem, 0, len(due))}
	for _, entry := range due {
		resp.Processed++
		item := dto.ReversalSweepItem{EntryID: entry.EntryID}

		reversing, err := s.ReverseEntry(ctx, organizationID, entry.EntryID, dto.ReverseEntryRequest{
			ReversalDate: *entry.AutoReverseDate,
			Reason:       "scheduled automatic reversal",
			AutoPost:     true,
		}, requestingUserID)
		if err != nil {
			item.Error = err.Error()
			resp.Failed++
			s.LogError(ctx, err, "Auto-reversal failed", slog.String("entry_id", entry.EntryID))
		} else {
			item.Success = true
			item.ReversingEntryID = reversing.EntryID
			resp.Succeeded++
		}
		resp.Items = append(resp.Items, item)
	}

	s.LogInfo(ctx, "Auto-reversal sweep finished",
		slog.Int("processed", resp.Processed),
		slog.Int("succeeded", resp.Succeeded),
		slog.Int("failed", resp.Failed))
	return resp, nil
}
