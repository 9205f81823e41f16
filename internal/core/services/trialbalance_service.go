package services

import (
	"context"
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
	"github.com/ksiegowo/ksiegowo_backend/internal/platform/cache"
	"github.com/ksiegowo/ksiegowo_backend/internal/utils/accounting"
)

// defaultSignificantChangePct flags comparative lines whose percent change
// exceeds this threshold unless the caller overrides it.
var defaultSignificantChangePct = decimal.NewFromInt(10)

// trialBalanceService generates point-in-time trial balances and manages the
// persisted working trial balance workspaces built on top of them.
type trialBalanceService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	wtbRepo     portsrepo.WorkingTrialBalanceRepositoryFacade
	accountSvc  portssvc.AccountReaderSvc
	reportCache *cache.Cache
}

// NewTrialBalanceService creates a new TrialBalanceService.
func NewTrialBalanceService(ledgerRepo portsrepo.LedgerRepositoryFacade, wtbRepo portsrepo.WorkingTrialBalanceRepositoryFacade, accountSvc portssvc.AccountReaderSvc, auditRepo portsrepo.AuditRepositoryFacade, reportCache *cache.Cache, opts ...Option) portssvc.TrialBalanceSvcFacade {
	s := &trialBalanceService{
		BaseService: newBaseService(auditRepo),
		ledgerRepo:  ledgerRepo,
		wtbRepo:     wtbRepo,
		accountSvc:  accountSvc,
		reportCache: reportCache,
	}
	applyOptions(&s.BaseService, opts)
	return s
}

var _ portssvc.TrialBalanceSvcFacade = (*trialBalanceService)(nil)

// balancesAsOf computes the signed net balance of every account at a date.
func (s *trialBalanceService) balancesAsOf(ctx context.Context, organizationID string, accounts []domain.Account, asOf time.Time) (map[string]decimal.Decimal, error) {
	movements, err := s.ledgerRepo.SumMovementsByAccount(ctx, organizationID, nil, &asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate movements: %w", err)
	}
	balances := make(map[string]decimal.Decimal, len(accounts))
	for _, account := range accounts {
		m := movements[account.AccountID]
		balances[account.AccountID] = accounting.SignedAmount(account.NormalBalance, m.Debit, m.Credit)
	}
	return balances, nil
}

// GenerateTrialBalance builds a point-in-time trial balance.
// Implements portssvc.TrialBalanceGeneratorSvc
func (s *trialBalanceService) GenerateTrialBalance(ctx context.Context, organizationID string, params dto.TrialBalanceParams) (*domain.TrialBalanceReport, error) {
	asOf := s.Now()
	if params.AsOfDate != nil {
		asOf = *params.AsOfDate
	}

	cacheKey := fmt.Sprintf("report:%s:tb:%s:%v:%v:%v:%v", organizationID, asOf.Format("2006-01-02"),
		params.AccountType, params.GroupByType, params.OmitZeroRows, params.IncludeInactive)
	if cached, ok := s.reportCache.Get(cacheKey); ok {
		if report, ok := cached.(*domain.TrialBalanceReport); ok {
			return report, nil
		}
	}

	accounts, err := s.accountSvc.ListAccounts(ctx, organizationID, params.IncludeInactive)
	if err != nil {
		return nil, err
	}
	balances, err := s.balancesAsOf(ctx, organizationID, accounts, asOf)
	if err != nil {
		return nil, err
	}

	report := &domain.TrialBalanceReport{
		OrganizationID: organizationID,
		AsOfDate:       asOf,
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
		GeneratedAt:    s.Now(),
	}

	typeOrder := []domain.AccountType{domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense}
	linesByType := make(map[domain.AccountType][]domain.TrialBalanceLine)

	for _, account := range accounts {
		if params.AccountType != nil && string(account.AccountType) != *params.AccountType {
			continue
		}
		net := balances[account.AccountID]
		if params.OmitZeroRows && net.IsZero() {
			continue
		}

		debit, credit := accounting.SplitBySide(account.NormalBalance, net)
		line := domain.TrialBalanceLine{
			AccountID:     account.AccountID,
			AccountCode:   account.Code,
			AccountName:   account.Name,
			AccountType:   account.AccountType,
			NormalBalance: account.NormalBalance,
			Debit:         debit,
			Credit:        credit,
			IsUnusual:     accounting.IsUnusualBalance(net),
		}
		linesByType[account.AccountType] = append(linesByType[account.AccountType], line)
		report.TotalDebit = report.TotalDebit.Add(debit)
		report.TotalCredit = report.TotalCredit.Add(credit)
	}

	for _, t := range typeOrder {
		lines := linesByType[t]
		if len(lines) == 0 {
			continue
		}
		report.Lines = append(report.Lines, lines...)
		if params.GroupByType {
			subtotalDebit, subtotalCredit := decimal.Zero, decimal.Zero
			for _, l := range lines {
				subtotalDebit = subtotalDebit.Add(l.Debit)
				subtotalCredit = subtotalCredit.Add(l.Credit)
			}
			report.Lines = append(report.Lines, domain.TrialBalanceLine{
				AccountType: t,
				Debit:       subtotalDebit,
				Credit:      subtotalCredit,
				IsSubtotal:  true,
				GroupLabel:  string(t),
			})
		}
	}

	report.IsBalanced = accounting.IsBalanced(report.TotalDebit, report.TotalCredit)
	if !report.IsBalanced {
		// A posted-only ledger can only get here through data corruption.
		s.LogError(ctx, fmt.Errorf("trial balance out of balance: debit %s, credit %s", report.TotalDebit, report.TotalCredit),
			"Trial balance does not balance", slog.String("organization_id", organizationID))
	}

	s.reportCache.Set(cacheKey, report)
	return report, nil
}

// GenerateComparativeTrialBalance repeats the balance computation for several
// dates and reports variance per account against the first comparison point.
// Implements portssvc.TrialBalanceGeneratorSvc
func (s *trialBalanceService) GenerateComparativeTrialBalance(ctx context.Context, organizationID string, params dto.ComparativeTrialBalanceParams) (*domain.ComparativeTrialBalance, error) {
	if len(params.ComparisonDates) == 0 {
		return nil, fmt.Errorf("%w: at least one comparison date is required", apperrors.ErrValidation)
	}

	asOf := s.Now()
	if params.AsOfDate != nil {
		asOf = *params.AsOfDate
	}
	threshold := defaultSignificantChangePct
	if params.SignificantChangePct != nil {
		threshold = *params.SignificantChangePct
	}

	accounts, err := s.accountSvc.ListAccounts(ctx, organizationID, false)
	if err != nil {
		return nil, err
	}

	current, err := s.balancesAsOf(ctx, organizationID, accounts, asOf)
	if err != nil {
		return nil, err
	}

	result := &domain.ComparativeTrialBalance{
		OrganizationID: organizationID,
		AsOfDate:       asOf,
		GeneratedAt:    s.Now(),
	}

	pointBalances := make([]map[string]decimal.Decimal, len(params.ComparisonDates))
	for i, date := range params.ComparisonDates {
		balances, err := s.balancesAsOf(ctx, organizationID, accounts, date)
		if err != nil {
			return nil, err
		}
		pointBalances[i] = balances
		result.Points = append(result.Points, domain.ComparativePoint{
			Label:    date.Format("2006-01-02"),
			AsOfDate: date,
		})
	}

	for _, account := range accounts {
		currentNet := current[account.AccountID]
		points := make([]decimal.Decimal, len(pointBalances))
		for i := range pointBalances {
			points[i] = pointBalances[i][account.AccountID]
		}

		baseline := points[0]
		if params.OmitZeroRows && currentNet.IsZero() && baseline.IsZero() {
			continue
		}

		pctChange := accounting.PercentChange(baseline, currentNet)
		result.Lines = append(result.Lines, domain.ComparativeTrialBalanceLine{
			AccountID:      account.AccountID,
			AccountCode:    account.Code,
			AccountName:    account.Name,
			AccountType:    account.AccountType,
			CurrentBalance: currentNet,
			PointBalances:  points,
			Variance:       currentNet.Sub(baseline),
			PercentChange:  pctChange,
			IsSignificant:  pctChange.Abs().GreaterThanOrEqual(threshold),
		})
	}
	return result, nil
}

// CreateWorkingTrialBalance seeds an audit workspace from a freshly generated
// trial balance.
// Implements portssvc.WorkingTrialBalanceSvc
func (s *trialBalanceService) CreateWorkingTrialBalance(ctx context.Context, organizationID string, req dto.CreateWorkingTrialBalanceRequest, creatorUserID string) (*domain.WorkingTrialBalance, error) {
	report, err := s.GenerateTrialBalance(ctx, organizationID, dto.TrialBalanceParams{AsOfDate: req.AsOfDate, OmitZeroRows: true})
	if err != nil {
		return nil, err
	}

	wtbID := uuid.NewString()
	wtb := domain.WorkingTrialBalance{
		WorkingTrialBalanceID: wtbID,
		OrganizationID:        organizationID,
		Name:                  req.Name,
		AsOfDate:              report.AsOfDate,
		Status:                domain.WorkingTrialBalanceOpen,
		AuditFields:           s.newAuditFields(creatorUserID),
	}
	for _, line := range report.Lines {
		if line.IsSubtotal {
			continue
		}
		wtb.Lines = append(wtb.Lines, domain.WorkingTrialBalanceLine{
			LineID:                uuid.NewString(),
			WorkingTrialBalanceID: wtbID,
			AccountID:             line.AccountID,
			AccountCode:           line.AccountCode,
			AccountName:           line.AccountName,
			Debit:                 line.Debit,
			Credit:                line.Credit,
			AdjustedDebit:         line.Debit,
			AdjustedCredit:        line.Credit,
		})
	}

	if err := s.wtbRepo.SaveWorkingTrialBalance(ctx, wtb); err != nil {
		return nil, fmt.Errorf("failed to save working trial balance: %w", err)
	}

	s.RecordAudit(ctx, organizationID, creatorUserID, "working_trial_balance.create", "working_trial_balance", wtbID, map[string]any{"name": req.Name})
	return &wtb, nil
}

// GetWorkingTrialBalanceByID returns the workspace with adjusted figures
// folded into each line.
// Implements portssvc.WorkingTrialBalanceSvc
func (s *trialBalanceService) GetWorkingTrialBalanceByID(ctx context.Context, organizationID string, workingTrialBalanceID string) (*domain.WorkingTrialBalance, error) {
	wtb, err := s.wtbRepo.FindWorkingTrialBalanceByID(ctx, organizationID, workingTrialBalanceID)
	if err != nil {
		return nil, err
	}

	adjustedDebit := make(map[string]decimal.Decimal)
	adjustedCredit := make(map[string]decimal.Decimal)
	for _, adj := range wtb.Adjustments {
		adjustedDebit[adj.LineID] = adjustedDebit[adj.LineID].Add(adj.Debit)
		adjustedCredit[adj.LineID] = adjustedCredit[adj.LineID].Add(adj.Credit)
	}
	for i := range wtb.Lines {
		line := &wtb.Lines[i]
		line.AdjustedDebit = line.Debit.Add(adjustedDebit[line.LineID])
		line.AdjustedCredit = line.Credit.Add(adjustedCredit[line.LineID])
	}
	return wtb, nil
}

// ListWorkingTrialBalances returns workspace headers without lines.
// Implements portssvc.WorkingTrialBalanceSvc
func (s *trialBalanceService) ListWorkingTrialBalances(ctx context.Context, organizationID string) ([]domain.WorkingTrialBalance, error) {
	return s.wtbRepo.ListWorkingTrialBalances(ctx, organizationID)
}

func (s *trialBalanceService) loadOpenWorkspace(ctx context.Context, organizationID, workingTrialBalanceID string) (*domain.WorkingTrialBalance, error) {
	wtb, err := s.wtbRepo.FindWorkingTrialBalanceByID(ctx, organizationID, workingTrialBalanceID)
	if err != nil {
		return nil, err
	}
	if wtb.Status != domain.WorkingTrialBalanceOpen {
		return nil, fmt.Errorf("%w: working trial balance %s is locked", apperrors.ErrPreconditionFailed, wtb.Name)
	}
	return wtb, nil
}

// AddAdjustmentColumn appends a named adjustment column to an open workspace.
// Implements portssvc.WorkingTrialBalanceSvc
func (s *trialBalanceService) AddAdjustmentColumn(ctx context.Context, organizationID string, workingTrialBalanceID string, req dto.AddAdjustmentColumnRequest, requestingUserID string) (*domain.AdjustmentColumn, error) {
	wtb, err := s.loadOpenWorkspace(ctx, organizationID, workingTrialBalanceID)
	if err != nil {
		return nil, err
	}

	column := domain.AdjustmentColumn{
		ColumnID:              uuid.NewString(),
		WorkingTrialBalanceID: workingTrialBalanceID,
		Name:                  req.Name,
		Position:              len(wtb.Columns) + 1,
		SupportingEntryID:     req.SupportingEntryID,
		AuditFields:           s.newAuditFields(requestingUserID),
	}

	if err := s.wtbRepo.AddAdjustmentColumn(ctx, column); err != nil {
		return nil, fmt.Errorf("failed to add adjustment column: %w", err)
	}

	s.RecordAudit(ctx, organizationID, requestingUserID, "working_trial_balance.add_column", "working_trial_balance", workingTrialBalanceID, map[string]any{"column": req.Name})
	return &column, nil
}

// RecordAdjustment records or overwrites one adjustment cell.
// Implements portssvc.WorkingTrialBalanceSvc
func (s *trialBalanceService) RecordAdjustment(ctx context.Context, organizationID string, workingTrialBalanceID string, req dto.RecordAdjustmentRequest, requestingUserID string) error {
	wtb, err := s.loadOpenWorkspace(ctx, organizationID, workingTrialBalanceID)
	if err != nil {
		return err
	}

	columnOK := false
	for _, c := range wtb.Columns {
		if c.ColumnID == req.ColumnID {
			columnOK = true
			break
		}
	}
	if !columnOK {
		return fmt.Errorf("%w: adjustment column %s", apperrors.ErrNotFound, req.ColumnID)
	}
	lineOK := false
	for _, l := range wtb.Lines {
		if l.LineID == req.LineID {
			lineOK = true
			break
		}
	}
	if !lineOK {
		return fmt.Errorf("%w: working trial balance line %s", apperrors.ErrNotFound, req.LineID)
	}
	if req.Debit.IsNegative() || req.Credit.IsNegative() {
		return fmt.Errorf("%w: adjustment amounts cannot be negative", apperrors.ErrValidation)
	}

	adjustment := domain.WorkingAdjustment{
		AdjustmentID: uuid.NewString(),
		ColumnID:     req.ColumnID,
		LineID:       req.LineID,
		Debit:        req.Debit,
		Credit:       req.Credit,
		Memo:         req.Memo,
		AuditFields:  s.newAuditFields(requestingUserID),
	}

	if err := s.wtbRepo.UpsertAdjustment(ctx, adjustment); err != nil {
		return fmt.Errorf("failed to record adjustment: %w", err)
	}

	s.RecordAudit(ctx, organizationID, requestingUserID, "working_trial_balance.adjust", "working_trial_balance", workingTrialBalanceID, nil)
	return nil
}

// LockWorkingTrialBalance freezes the workspace. Terminal.
// Implements portssvc.WorkingTrialBalanceSvc
func (s *trialBalanceService) LockWorkingTrialBalance(ctx context.Context, organizationID string, workingTrialBalanceID string, requestingUserID string) error {
	if _, err := s.loadOpenWorkspace(ctx, organizationID, workingTrialBalanceID); err != nil {
		return err
	}

	if err := s.wtbRepo.UpdateWorkingTrialBalanceStatus(ctx, organizationID, workingTrialBalanceID, domain.WorkingTrialBalanceLocked, requestingUserID, s.Now()); err != nil {
		return fmt.Errorf("failed to lock working trial balance: %w", err)
	}

	s.RecordAudit(ctx, organizationID, requestingUserID, "working_trial_balance.lock", "working_trial_balance", workingTrialBalanceID, nil)
	return nil
}
