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
	"github.com/ksiegowo/ksiegowo_backend/internal/core/validation"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
	"github.com/ksiegowo/ksiegowo_backend/internal/platform/cache"
	"github.com/ksiegowo/ksiegowo_backend/internal/utils/numbering"
)

// Lifecycle sentinels wrap the apperrors taxonomy so handlers map them onto
// the right HTTP status without knowing each one individually.
var (
	ErrEntryUnbalanced   = fmt.Errorf("entry lines do not balance: %w", apperrors.ErrValidation)
	ErrAccountNotFound   = fmt.Errorf("account not found in this organization: %w", apperrors.ErrValidation)
	ErrEntryMinLines     = fmt.Errorf("entry must have at least two lines: %w", apperrors.ErrValidation)
	ErrEntryNotEditable  = fmt.Errorf("entry is posted or reversed and cannot be modified: %w", apperrors.ErrPreconditionFailed)
	ErrEntryNotDraft     = fmt.Errorf("entry is not in draft: %w", apperrors.ErrPreconditionFailed)
	ErrEntryNotPending   = fmt.Errorf("entry is not pending review: %w", apperrors.ErrPreconditionFailed)
	ErrAlreadyPosted     = fmt.Errorf("entry is already posted: %w", apperrors.ErrConflict)
	ErrSelfApproval      = fmt.Errorf("an entry cannot be approved by its submitter: %w", apperrors.ErrForbidden)
	ErrMissingRate       = fmt.Errorf("no exchange rate available for the entry date: %w", apperrors.ErrPreconditionFailed)
	ErrEntryNotPostable  = fmt.Errorf("entry failed posting validation: %w", apperrors.ErrValidation)
	ErrPeriodNotPostable = fmt.Errorf("accounting period does not accept postings: %w", apperrors.ErrPreconditionFailed)
)

// journalService owns the journal entry lifecycle from draft through posting.
type journalService struct {
	BaseService
	journalRepo    portsrepo.JournalEntryRepositoryFacade
	orgRepo        portsrepo.OrganizationRepositoryFacade
	costCenterRepo portsrepo.CostCenterRepositoryFacade
	accountSvc     portssvc.AccountReaderSvc
	fiscalSvc      portssvc.PeriodResolverSvc
	rateSvc        portssvc.ExchangeRateSvcFacade
	ruleSource     portssvc.CustomRuleSource
	reportCache    *cache.Cache
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	journalRepo portsrepo.JournalEntryRepositoryFacade,
	orgRepo portsrepo.OrganizationRepositoryFacade,
	costCenterRepo portsrepo.CostCenterRepositoryFacade,
	accountSvc portssvc.AccountReaderSvc,
	fiscalSvc portssvc.PeriodResolverSvc,
	rateSvc portssvc.ExchangeRateSvcFacade,
	ruleSource portssvc.CustomRuleSource,
	auditRepo portsrepo.AuditRepositoryFacade,
	reportCache *cache.Cache,
	opts ...Option,
) portssvc.JournalSvcFacade {
	s := &journalService{
		BaseService:    newBaseService(auditRepo),
		journalRepo:    journalRepo,
		orgRepo:        orgRepo,
		costCenterRepo: costCenterRepo,
		accountSvc:     accountSvc,
		fiscalSvc:      fiscalSvc,
		rateSvc:        rateSvc,
		ruleSource:     ruleSource,
		reportCache:    reportCache,
	}
	applyOptions(&s.BaseService, opts)
	return s
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// resolveRate picks the document->base conversion rate for an entry: 1 for
// base-currency entries, the explicit request rate when given, otherwise the
// latest stored rate effective on the entry date.
func (s *journalService) resolveRate(ctx context.Context, organizationID, docCurrency, baseCurrency string, explicit *decimal.Decimal, onDate time.Time) (decimal.Decimal, error) {
	if docCurrency == "" || docCurrency == baseCurrency {
		return decimal.NewFromInt(1), nil
	}
	if explicit != nil {
		if !explicit.IsPositive() {
			return decimal.Zero, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
		}
		return *explicit, nil
	}
	rate, err := s.rateSvc.GetRateForDate(ctx, organizationID, docCurrency, baseCurrency, onDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: %s to %s on %s", ErrMissingRate, docCurrency, baseCurrency, onDate.Format("2006-01-02"))
		}
		return decimal.Zero, fmt.Errorf("exchange rate lookup failed: %w", err)
	}
	return rate.Rate, nil
}

// buildLines materializes domain lines from request lines, deriving base
// currency amounts. Base amounts are rounded to grosz; the per-entry balance
// check tolerates the resulting sub-cent drift.
func (s *journalService) buildLines(reqLines []dto.CreateEntryLineRequest, entryID, docCurrency string, rate decimal.Decimal, userID string) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, lr := range reqLines {
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			LineNumber:   i + 1,
			AccountID:    lr.AccountID,
			Debit:        lr.Debit,
			Credit:       lr.Credit,
			CurrencyCode: docCurrency,
			ExchangeRate: rate,
			BaseDebit:    lr.Debit.Mul(rate).Round(2),
			BaseCredit:   lr.Credit.Mul(rate).Round(2),
			CostCenterID: lr.CostCenterID,
			Description:  lr.Description,
			AuditFields:  s.newAuditFields(userID),
		}
	}
	return lines
}

// validateLineShape rejects lines the rule engine would flag anyway, early
// and with direct errors, so drafts cannot be saved in a shape that can never
// post.
func (s *journalService) validateLineShape(ctx context.Context, organizationID string, lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return ErrEntryMinLines
	}

	costCenterIDs := make([]string, 0)
	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		debitSet := l.Debit.IsPositive()
		creditSet := l.Credit.IsPositive()
		if debitSet == creditSet || l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d must carry a positive amount on exactly one side", apperrors.ErrValidation, l.LineNumber)
		}
		if l.CostCenterID != nil && *l.CostCenterID != "" {
			costCenterIDs = append(costCenterIDs, *l.CostCenterID)
		}
		if !seen[l.AccountID] {
			seen[l.AccountID] = true
			accountIDs = append(accountIDs, l.AccountID)
		}
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, organizationID, accountIDs)
	if err != nil {
		return fmt.Errorf("account lookup failed: %w", err)
	}
	for _, l := range lines {
		account, ok := accounts[l.AccountID]
		if !ok {
			return fmt.Errorf("%w: line %d references %s", ErrAccountNotFound, l.LineNumber, l.AccountID)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.Code)
		}
		if !account.AllowsPosting {
			return fmt.Errorf("%w: account %s is a header account and does not accept postings", apperrors.ErrValidation, account.Code)
		}
	}

	debit, credit := domain.EntryTotals(lines)
	if debit.Sub(credit).Abs().GreaterThanOrEqual(domain.BalanceTolerance) {
		return fmt.Errorf("%w: total debit %s, total credit %s", ErrEntryUnbalanced, debit.String(), credit.String())
	}

	if len(costCenterIDs) > 0 {
		found, err := s.costCenterRepo.FindCostCentersByIDs(ctx, organizationID, costCenterIDs)
		if err != nil {
			return fmt.Errorf("cost center lookup failed: %w", err)
		}
		for _, id := range costCenterIDs {
			cc, ok := found[id]
			if !ok {
				return fmt.Errorf("%w: cost center %s does not exist", apperrors.ErrValidation, id)
			}
			if !cc.IsActive {
				return fmt.Errorf("%w: cost center %s is inactive", apperrors.ErrValidation, cc.Code)
			}
		}
	}
	return nil
}

// CreateEntry creates a new draft journal entry with its lines.
// Implements portssvc.EntryWriterSvc
func (s *journalService) CreateEntry(ctx context.Context, organizationID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
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
	// Drafts may target soft-closed periods (they might reopen before
	// posting) but never hard-closed ones.
	if period.Status == domain.PeriodClosed {
		return nil, fmt.Errorf("%w: period %s is closed", apperrors.ErrPreconditionFailed, period.Name)
	}

	entryType := domain.EntryStandard
	if req.EntryType != "" {
		entryType = domain.EntryType(req.EntryType)
	}

	docCurrency := req.CurrencyCode
	if docCurrency == "" {
		docCurrency = org.BaseCurrencyCode
	}
	rate, err := s.resolveRate(ctx, organizationID, docCurrency, org.BaseCurrencyCode, req.ExchangeRate, req.EntryDate)
	if err != nil {
		return nil, err
	}

	entryID := uuid.NewString()
	lines := s.buildLines(req.Lines, entryID, docCurrency, rate, creatorUserID)
	if err := s.validateLineShape(ctx, organizationID, lines); err != nil {
		return nil, err
	}

	seq, err := s.journalRepo.NextEntryNumber(ctx, organizationID, entryType, req.EntryDate.Year(), int(req.EntryDate.Month()))
	if err != nil {
		return nil, fmt.Errorf("failed to allocate entry number: %w", err)
	}

	totalDebit, totalCredit := domain.EntryTotals(lines)
	entry := domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: organizationID,
		EntryNumber:    numbering.FormatEntryNumber(entryType.NumberPrefix(), req.EntryDate.Year(), int(req.EntryDate.Month()), seq),
		EntryDate:      req.EntryDate,
		PeriodID:       period.PeriodID,
		FiscalYearID:   period.FiscalYearID,
		EntryType:      entryType,
		Status:         domain.EntryDraft,
		Description:    req.Description,
		CurrencyCode:   docCurrency,
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
		Lines:          lines,
		AuditFields:    s.newAuditFields(creatorUserID),
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save entry", slog.String("entry_number", entry.EntryNumber))
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	s.RecordAudit(ctx, organizationID, creatorUserID, "journal_entry.create", "journal_entry", entryID, map[string]any{"entry_number": entry.EntryNumber})
	s.LogInfo(ctx, "Entry created", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return &entry, nil
}

// GetEntryByID retrieves an entry with its lines.
// Implements portssvc.EntryReaderSvc
func (s *journalService) GetEntryByID(ctx context.Context, organizationID string, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry lines: %w", err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a filtered, token-paginated page of entries.
// Implements portssvc.EntryReaderSvc
func (s *journalService) ListEntries(ctx context.Context, organizationID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	q := portsrepo.ListEntriesQuery{
		PeriodID:   params.PeriodID,
		DateFrom:   params.DateFrom,
		DateTo:     params.DateTo,
		SearchText: params.SearchText,
		Limit:      params.Limit,
		NextToken:  params.NextToken,
	}
	if params.Status != nil {
		status := domain.EntryStatus(*params.Status)
		q.Status = &status
	}
	if params.EntryType != nil {
		entryType := domain.EntryType(*params.EntryType)
		q.EntryType = &entryType
	}
	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 50
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, organizationID, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	if params.IncludeLines && len(entries) > 0 {
		entryIDs := make([]string, len(entries))
		for i := range entries {
			entryIDs[i] = entries[i].EntryID
		}
		linesByEntry, err := s.journalRepo.FindLinesByEntryIDs(ctx, entryIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load lines for entries: %w", err)
		}
		for i := range entries {
			entries[i].Lines = linesByEntry[entries[i].EntryID]
		}
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// UpdateEntry rewrites a draft or pending entry.
// Implements portssvc.EntryWriterSvc
func (s *journalService) UpdateEntry(ctx context.Context, organizationID string, entryID string, req dto.UpdateEntryRequest, requestingUserID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.Status.IsEditable() {
		return nil, fmt.Errorf("%w: entry %s is %s", ErrEntryNotEditable, entry.EntryNumber, entry.Status)
	}

	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if req.EntryDate != nil {
		period, err := s.fiscalSvc.ResolvePeriodForDate(ctx, organizationID, *req.EntryDate)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: no accounting period covers %s", apperrors.ErrValidation, req.EntryDate.Format("2006-01-02"))
			}
			return nil, err
		}
		if period.Status == domain.PeriodClosed {
			return nil, fmt.Errorf("%w: period %s is closed", apperrors.ErrPreconditionFailed, period.Name)
		}
		entry.EntryDate = *req.EntryDate
		entry.PeriodID = period.PeriodID
		entry.FiscalYearID = period.FiscalYearID
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.CurrencyCode != nil && *req.CurrencyCode != entry.CurrencyCode {
		// Stored base amounts were derived at the old currency's rate, so a
		// currency change must come with the full line set to re-derive them.
		if req.Lines == nil {
			return nil, fmt.Errorf("%w: changing the currency requires resubmitting the lines", apperrors.ErrValidation)
		}
		entry.CurrencyCode = *req.CurrencyCode
	}

	if req.Lines != nil {
		rate, err := s.resolveRate(ctx, organizationID, entry.CurrencyCode, org.BaseCurrencyCode, req.ExchangeRate, entry.EntryDate)
		if err != nil {
			return nil, err
		}
		lines := s.buildLines(req.Lines, entry.EntryID, entry.CurrencyCode, rate, requestingUserID)
		if err := s.validateLineShape(ctx, organizationID, lines); err != nil {
			return nil, err
		}
		entry.Lines = lines
		entry.TotalDebit, entry.TotalCredit = domain.EntryTotals(lines)
	}
	s.touchAuditFields(&entry.AuditFields, requestingUserID)

	if err := s.journalRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	s.RecordAudit(ctx, organizationID, requestingUserID, "journal_entry.update", "journal_entry", entryID, nil)
	return entry, nil
}

// DeleteEntry removes a draft entry. The entry number is not recycled, so the
// numbering sequence keeps an auditable gap-free allocation record.
// Implements portssvc.EntryWriterSvc
func (s *journalService) DeleteEntry(ctx context.Context, organizationID string, entryID string, requestingUserID string) error {
	entry, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.EntryDraft {
		return fmt.Errorf("%w: only draft entries can be deleted, entry %s is %s", apperrors.ErrPreconditionFailed, entry.EntryNumber, entry.Status)
	}

	if err := s.journalRepo.DeleteEntry(ctx, organizationID, entryID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	s.RecordAudit(ctx, organizationID, requestingUserID, "journal_entry.delete", "journal_entry", entryID, map[string]any{"entry_number": entry.EntryNumber})
	return nil
}

// SubmitEntry moves a draft to PENDING review.
// Implements portssvc.EntryWorkflowSvc
func (s *journalService) SubmitEntry(ctx context.Context, organizationID string, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: entry %s is %s", ErrEntryNotDraft, entry.EntryNumber, entry.Status)
	}
	if err := s.validateLineShape(ctx, organizationID, entry.Lines); err != nil {
		return nil, err
	}

	now := s.Now()
	entry.Status = domain.EntryPending
	entry.SubmittedBy = &requestingUserID
	entry.SubmittedAt = &now
	s.touchAuditFields(&entry.AuditFields, requestingUserID)

	if err := s.journalRepo.UpdateEntryWorkflow(ctx, *entry); err != nil {
		return nil, fmt.Errorf("failed to submit entry: %w", err)
	}

	s.RecordAudit(ctx, organizationID, requestingUserID, "journal_entry.submit", "journal_entry", entryID, nil)
	return entry, nil
}

// ApproveEntry records approval on a pending entry. Four-eyes: the submitter
// may not approve their own entry.
// Implements portssvc.EntryWorkflowSvc
func (s *journalService) ApproveEntry(ctx context.Context, organizationID string, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryPending {
		return nil, fmt.Errorf("%w: entry %s is %s", ErrEntryNotPending, entry.EntryNumber, entry.Status)
	}
	if entry.SubmittedBy != nil && *entry.SubmittedBy == requestingUserID {
		return nil, fmt.Errorf("%w: entry %s", ErrSelfApproval, entry.EntryNumber)
	}

	now := s.Now()
	entry.ApprovedBy = &requestingUserID
	entry.ApprovedAt = &now
	s.touchAuditFields(&entry.AuditFields, requestingUserID)

	if err := s.journalRepo.UpdateEntryWorkflow(ctx, *entry); err != nil {
		return nil, fmt.Errorf("failed to approve entry: %w", err)
	}

	s.RecordAudit(ctx, organizationID, requestingUserID, "journal_entry.approve", "journal_entry", entryID, nil)
	return entry, nil
}

// RejectEntry sends a pending entry back to draft with a reviewer reason.
// Implements portssvc.EntryWorkflowSvc
func (s *journalService) RejectEntry(ctx context.Context, organizationID string, entryID string, reason string, requestingUserID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryPending {
		return nil, fmt.Errorf("%w: entry %s is %s", ErrEntryNotPending, entry.EntryNumber, entry.Status)
	}

	entry.Status = domain.EntryDraft
	entry.SubmittedBy = nil
	entry.SubmittedAt = nil
	entry.ApprovedBy = nil
	entry.ApprovedAt = nil
	s.touchAuditFields(&entry.AuditFields, requestingUserID)

	if err := s.journalRepo.UpdateEntryWorkflow(ctx, *entry); err != nil {
		return nil, fmt.Errorf("failed to reject entry: %w", err)
	}

	s.RecordAudit(ctx, organizationID, requestingUserID, "journal_entry.reject", "journal_entry", entryID, map[string]any{"reason": reason})
	return entry, nil
}

// assembleCandidate loads everything the rule engine needs for one entry.
func (s *journalService) assembleCandidate(ctx context.Context, organizationID string, entry *domain.JournalEntry, bypassApproval bool) (validation.Candidate, error) {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return validation.Candidate{}, err
	}

	accountIDs := make([]string, 0, len(entry.Lines))
	seen := make(map[string]bool, len(entry.Lines))
	for _, l := range entry.Lines {
		if !seen[l.AccountID] {
			seen[l.AccountID] = true
			accountIDs = append(accountIDs, l.AccountID)
		}
	}
	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, organizationID, accountIDs)
	if err != nil {
		return validation.Candidate{}, fmt.Errorf("failed to load accounts for validation: %w", err)
	}

	var period *domain.AccountingPeriod
	if entry.PeriodID != "" {
		period, err = s.fiscalSvc.GetPeriodByID(ctx, organizationID, entry.PeriodID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return validation.Candidate{}, err
		}
	}

	return validation.Candidate{
		Entry:            *entry,
		Lines:            entry.Lines,
		Accounts:         accounts,
		Period:           period,
		BaseCurrencyCode: org.BaseCurrencyCode,
		Approved:         entry.IsApproved(),
		BypassApproval:   bypassApproval,
	}, nil
}

func (s *journalService) customRules(ctx context.Context, organizationID string) []validation.Rule {
	if s.ruleSource == nil {
		return nil
	}
	rules, err := s.ruleSource.RulesFor(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUnsupported) {
			s.LogError(ctx, err, "Custom rule source failed, continuing with built-in rules only")
		}
		return nil
	}
	return rules
}

// ValidateEntry runs the posting rule set without side effects.
// Implements portssvc.EntryPosterSvc
func (s *journalService) ValidateEntry(ctx context.Context, organizationID string, entryID string) (*dto.ValidationResultResponse, error) {
	entry, err := s.GetEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	candidate, err := s.assembleCandidate(ctx, organizationID, entry, false)
	if err != nil {
		return nil, err
	}
	verdict := validation.Assess(candidate, s.customRules(ctx, organizationID)...)
	resp := dto.ToValidationResultResponse(entryID, verdict)
	return &resp, nil
}

// buildPostingArtifacts derives the ledger records and the pre-signed balance
// deltas for a validated entry.
func (s *journalService) buildPostingArtifacts(entry *domain.JournalEntry, accounts map[string]domain.Account, postedBy string) ([]domain.LedgerRecord, []domain.BalanceDelta) {
	now := s.Now()
	records := make([]domain.LedgerRecord, len(entry.Lines))
	totalsByAccount := make(map[string]domain.MovementTotals)
	order := make([]string, 0, len(entry.Lines))

	for i, l := range entry.Lines {
		records[i] = domain.LedgerRecord{
			RecordID:       uuid.NewString(),
			OrganizationID: entry.OrganizationID,
			EntryID:        entry.EntryID,
			LineID:         l.LineID,
			AccountID:      l.AccountID,
			PeriodID:       entry.PeriodID,
			EntryDate:      entry.EntryDate,
			EntryType:      entry.EntryType,
			Debit:          l.BaseDebit,
			Credit:         l.BaseCredit,
			CreatedAt:      now,
			CreatedBy:      postedBy,
		}

		t, ok := totalsByAccount[l.AccountID]
		if !ok {
			t = domain.MovementTotals{Debit: decimal.Zero, Credit: decimal.Zero}
			order = append(order, l.AccountID)
		}
		t.Debit = t.Debit.Add(l.BaseDebit)
		t.Credit = t.Credit.Add(l.BaseCredit)
		totalsByAccount[l.AccountID] = t
	}

	deltas := make([]domain.BalanceDelta, 0, len(order))
	for _, accountID := range order {
		t := totalsByAccount[accountID]
		normal := accounts[accountID].NormalBalance
		deltas = append(deltas, domain.BalanceDelta{
			AccountID:    accountID,
			PeriodID:     entry.PeriodID,
			Debit:        t.Debit,
			Credit:       t.Credit,
			ClosingDelta: domain.NetMovement(normal, t.Debit, t.Credit),
		})
	}
	return records, deltas
}

// PostEntry validates and posts one entry atomically: the repository re-checks
// the period under a row lock, flips the status, writes the ledger records,
// and applies the balance deltas in a single transaction.
// Implements portssvc.EntryPosterSvc
func (s *journalService) PostEntry(ctx context.Context, organizationID string, entryID string, requestingUserID string, bypassApproval bool) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status == domain.EntryPosted || entry.Status == domain.EntryReversed {
		return nil, fmt.Errorf("%w: entry %s", ErrAlreadyPosted, entry.EntryNumber)
	}

	candidate, err := s.assembleCandidate(ctx, organizationID, entry, bypassApproval)
	if err != nil {
		return nil, err
	}
	verdict := validation.Assess(candidate, s.customRules(ctx, organizationID)...)
	if !verdict.CanPost {
		if candidate.Period != nil && !candidate.Period.Status.AcceptsPosting() {
			return nil, fmt.Errorf("%w: period %s is %s", ErrPeriodNotPostable, candidate.Period.Name, candidate.Period.Status)
		}
		if !candidate.Approved && !bypassApproval {
			return nil, fmt.Errorf("%w: entry %s is not approved", apperrors.ErrPreconditionFailed, entry.EntryNumber)
		}
		for _, o := range verdict.Outcomes {
			if o.Severity == validation.SeverityError {
				return nil, fmt.Errorf("%w: %s", ErrEntryNotPostable, o.Message)
			}
		}
		return nil, fmt.Errorf("%w: entry %s", ErrEntryNotPostable, entry.EntryNumber)
	}

	now := s.Now()
	entry.Status = domain.EntryPosted
	entry.PostedBy = &requestingUserID
	entry.PostedAt = &now
	s.touchAuditFields(&entry.AuditFields, requestingUserID)

	records, deltas := s.buildPostingArtifacts(entry, candidate.Accounts, requestingUserID)
	if err := s.journalRepo.PostEntry(ctx, *entry, records, deltas); err != nil {
		s.LogError(ctx, err, "Failed to post entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post entry: %w", err)
	}

	s.reportCache.InvalidatePrefix("report:" + organizationID + ":")
	s.RecordAudit(ctx, organizationID, requestingUserID, "journal_entry.post", "journal_entry", entryID, map[string]any{"entry_number": entry.EntryNumber})
	s.LogInfo(ctx, "Entry posted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// PostEntries posts a batch; each entry succeeds or fails on its own.
// Implements portssvc.EntryPosterSvc
func (s *journalService) PostEntries(ctx context.Context, organizationID string, entryIDs []string, requestingUserID string, bypassApproval bool) (*dto.BulkOperationResponse, error) {
	resp := &dto.BulkOperationResponse{Outcomes: make([]dto.BulkItemOutcome, 0, len(entryIDs))}
	for _, entryID := range entryIDs {
		_, err := s.PostEntry(ctx, organizationID, entryID, requestingUserID, bypassApproval)
		outcome := dto.BulkItemOutcome{EntryID: entryID, Success: err == nil}
		if err != nil {
			outcome.Error = err.Error()
			resp.Failed++
		} else {
			resp.Succeeded++
		}
		resp.Outcomes = append(resp.Outcomes, outcome)
	}
	return resp, nil
}

// DeleteEntries deletes a batch of draft entries; each entry succeeds or fails
// on its own, so one posted entry in the batch never aborts the rest.
// Implements portssvc.EntryWriterSvc
func (s *journalService) DeleteEntries(ctx context.Context, organizationID string, entryIDs []string, requestingUserID string) (*dto.BulkOperationResponse, error) {
	resp := &dto.BulkOperationResponse{Outcomes: make([]dto.BulkItemOutcome, 0, len(entryIDs))}
	for _, entryID := range entryIDs {
		err := s.DeleteEntry(ctx, organizationID, entryID, requestingUserID)
		outcome := dto.BulkItemOutcome{EntryID: entryID, Success: err == nil}
		if err != nil {
			outcome.Error = err.Error()
			resp.Failed++
		} else {
			resp.Succeeded++
		}
		resp.Outcomes = append(resp.Outcomes, outcome)
	}
	return resp, nil
}
