package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	portsrepo "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/repositories"
	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
	"github.com/ksiegowo/ksiegowo_backend/internal/platform/cache"
)

// ledgerService serves reads and balance computations over the immutable
// general ledger. It writes nothing except the rebuildable balance rows.
type ledgerService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountSvc  portssvc.AccountReaderSvc
	fiscalSvc   portssvc.PeriodResolverSvc
	reportCache *cache.Cache
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountSvc portssvc.AccountReaderSvc, fiscalSvc portssvc.PeriodResolverSvc, auditRepo portsrepo.AuditRepositoryFacade, reportCache *cache.Cache, opts ...Option) portssvc.LedgerSvcFacade {
	s := &ledgerService{
		BaseService: newBaseService(auditRepo),
		ledgerRepo:  ledgerRepo,
		accountSvc:  accountSvc,
		fiscalSvc:   fiscalSvc,
		reportCache: reportCache,
	}
	applyOptions(&s.BaseService, opts)
	return s
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetAccountLedger retrieves one account's ledger rows. Running balances are
// only computed for chronological reads, where they are well defined.
// Implements portssvc.LedgerReaderSvc
func (s *ledgerService) GetAccountLedger(ctx context.Context, organizationID string, accountID string, params dto.AccountLedgerParams) (*dto.AccountLedgerResponse, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return nil, err
	}

	q := portsrepo.LedgerQuery{
		PeriodID:   params.PeriodID,
		DateFrom:   params.DateFrom,
		DateTo:     params.DateTo,
		SearchText: params.SearchText,
		Ascending:  params.Ascending || params.IncludeRunningBalance,
		Limit:      params.Limit,
		NextToken:  params.NextToken,
	}
	if params.EntryType != nil {
		entryType := domain.EntryType(*params.EntryType)
		q.EntryType = &entryType
	}
	if q.Limit <= 0 || q.Limit > 500 {
		q.Limit = 100
	}

	opening := decimal.Zero
	if params.DateFrom != nil {
		before := params.DateFrom.AddDate(0, 0, -1)
		totals, err := s.ledgerRepo.SumMovements(ctx, organizationID, accountID, &before)
		if err != nil {
			return nil, fmt.Errorf("failed to compute opening balance: %w", err)
		}
		opening = domain.ClosingBalance(account.NormalBalance, decimal.Zero, totals.Debit, totals.Credit)
	}

	records, nextToken, err := s.ledgerRepo.ListLedgerRecords(ctx, organizationID, accountID, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger records: %w", err)
	}

	resp := &dto.AccountLedgerResponse{
		AccountID:      accountID,
		OpeningBalance: opening,
		Records:        make([]dto.LedgerRecordResponse, len(records)),
		NextToken:      nextToken,
	}

	running := opening
	for i := range records {
		row := dto.ToLedgerRecordResponse(&records[i])
		if params.IncludeRunningBalance {
			running = running.Add(domain.NetMovement(account.NormalBalance, records[i].Debit, records[i].Credit))
			balance := running
			row.RunningBalance = &balance
		}
		resp.Records[i] = row
	}
	return resp, nil
}

// GetLedgerReport builds the opening/movements/closing report across the
// chart of accounts.
// Implements portssvc.LedgerReaderSvc
func (s *ledgerService) GetLedgerReport(ctx context.Context, organizationID string, params dto.LedgerReportParams) (*dto.LedgerReportResponse, error) {
	from, to := params.DateFrom, params.DateTo
	if params.PeriodID != nil {
		period, err := s.fiscalSvc.GetPeriodByID(ctx, organizationID, *params.PeriodID)
		if err != nil {
			return nil, err
		}
		from, to = &period.StartDate, &period.EndDate
	}

	accounts, err := s.accountSvc.ListAccounts(ctx, organizationID, params.IncludeInactive)
	if err != nil {
		return nil, err
	}

	movements, err := s.ledgerRepo.SumMovementsByAccount(ctx, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate movements: %w", err)
	}

	openings := map[string]domain.MovementTotals{}
	if from != nil {
		before := from.AddDate(0, 0, -1)
		openings, err = s.ledgerRepo.SumMovementsByAccount(ctx, organizationID, nil, &before)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate opening movements: %w", err)
		}
	}

	resp := &dto.LedgerReportResponse{
		DateFrom:    from,
		DateTo:      to,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	rowsByType := make(map[domain.AccountType][]domain.LedgerReportRow)
	typeOrder := []domain.AccountType{domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense}

	for _, account := range accounts {
		m := movements[account.AccountID]
		o := openings[account.AccountID]
		opening := domain.ClosingBalance(account.NormalBalance, decimal.Zero, o.Debit, o.Credit)
		closing := domain.ClosingBalance(account.NormalBalance, opening, m.Debit, m.Credit)

		if params.OmitZeroRows && opening.IsZero() && m.Debit.IsZero() && m.Credit.IsZero() {
			continue
		}

		row := domain.LedgerReportRow{
			AccountID:      account.AccountID,
			AccountCode:    account.Code,
			AccountName:    account.Name,
			AccountType:    account.AccountType,
			OpeningBalance: opening,
			DebitMovements: m.Debit,
			CreditMovement: m.Credit,
			ClosingBalance: closing,
		}
		rowsByType[account.AccountType] = append(rowsByType[account.AccountType], row)
		resp.TotalDebit = resp.TotalDebit.Add(m.Debit)
		resp.TotalCredit = resp.TotalCredit.Add(m.Credit)
	}

	if params.GroupByType {
		for _, t := range typeOrder {
			if rows := rowsByType[t]; len(rows) > 0 {
				resp.Groups = append(resp.Groups, dto.LedgerReportGroup{AccountType: string(t), Rows: rows})
			}
		}
	} else {
		var all []domain.LedgerReportRow
		for _, t := range typeOrder {
			all = append(all, rowsByType[t]...)
		}
		resp.Groups = []dto.LedgerReportGroup{{Rows: all}}
	}
	return resp, nil
}

// CalculateAccountBalance computes an account's as-of balance from ledger
// records.
// Implements portssvc.BalanceCalculatorSvc
func (s *ledgerService) CalculateAccountBalance(ctx context.Context, organizationID string, accountID string, asOf time.Time) (*dto.AccountBalanceResponse, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return nil, err
	}

	totals, err := s.ledgerRepo.SumMovements(ctx, organizationID, accountID, &asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to sum movements: %w", err)
	}

	return &dto.AccountBalanceResponse{
		AccountID:      accountID,
		AsOfDate:       asOf,
		DebitTotal:     totals.Debit,
		CreditTotal:    totals.Credit,
		ClosingBalance: domain.ClosingBalance(account.NormalBalance, decimal.Zero, totals.Debit, totals.Credit),
		NormalBalance:  string(account.NormalBalance),
	}, nil
}

// GetPeriodBalances returns the maintained balance rows of a period.
// Implements portssvc.BalanceCalculatorSvc
func (s *ledgerService) GetPeriodBalances(ctx context.Context, organizationID string, periodID string) ([]domain.AccountBalance, error) {
	return s.ledgerRepo.ListAccountBalancesForPeriod(ctx, organizationID, periodID)
}

// RecalculatePeriodBalances rebuilds one (account, period) balance row from
// the ledger. The incremental path maintained by posting should always agree;
// this is the repair tool when it does not.
// Implements portssvc.BalanceCalculatorSvc
func (s *ledgerService) RecalculatePeriodBalances(ctx context.Context, organizationID string, accountID string, periodID string) (*domain.AccountBalance, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return nil, err
	}

	totals, err := s.ledgerRepo.SumMovementsForPeriod(ctx, organizationID, accountID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum period movements: %w", err)
	}

	opening := decimal.Zero
	if existing, err := s.ledgerRepo.FindAccountBalance(ctx, accountID, periodID); err == nil && existing != nil {
		opening = existing.OpeningBalance
	}

	balance := domain.AccountBalance{
		AccountID:       accountID,
		PeriodID:        periodID,
		OrganizationID:  organizationID,
		OpeningBalance:  opening,
		DebitMovements:  totals.Debit,
		CreditMovements: totals.Credit,
		ClosingBalance:  domain.ClosingBalance(account.NormalBalance, opening, totals.Debit, totals.Credit),
		LastUpdatedAt:   s.Now(),
	}

	if err := s.ledgerRepo.UpsertAccountBalance(ctx, balance); err != nil {
		return nil, fmt.Errorf("failed to store recalculated balance: %w", err)
	}
	s.reportCache.InvalidatePrefix("report:" + organizationID + ":")
	return &balance, nil
}

// NetMovement returns an account's signed net movement over a date range.
// Implements portssvc.BalanceCalculatorSvc
func (s *ledgerService) NetMovement(ctx context.Context, organizationID string, accountID string, from, to time.Time) (decimal.Decimal, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	upTo, err := s.ledgerRepo.SumMovements(ctx, organizationID, accountID, &to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum movements: %w", err)
	}
	before := from.AddDate(0, 0, -1)
	prior, err := s.ledgerRepo.SumMovements(ctx, organizationID, accountID, &before)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum prior movements: %w", err)
	}

	return domain.NetMovement(account.NormalBalance, upTo.Debit.Sub(prior.Debit), upTo.Credit.Sub(prior.Credit)), nil
}
