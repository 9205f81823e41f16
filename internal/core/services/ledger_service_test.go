package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	portsrepo "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/repositories"
	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/core/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) ListLedgerRecords(ctx context.Context, organizationID, accountID string, q portsrepo.LedgerQuery) ([]domain.LedgerRecord, *string, error) {
	args := m.Called(ctx, organizationID, accountID, q)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerRecord), nextToken, args.Error(2)
}

func (m *MockLedgerRepository) SumMovements(ctx context.Context, organizationID, accountID string, upTo *time.Time) (domain.MovementTotals, error) {
	args := m.Called(ctx, organizationID, accountID, upTo)
	return args.Get(0).(domain.MovementTotals), args.Error(1)
}

func (m *MockLedgerRepository) SumMovementsForPeriod(ctx context.Context, organizationID, accountID, periodID string) (domain.MovementTotals, error) {
	args := m.Called(ctx, organizationID, accountID, periodID)
	return args.Get(0).(domain.MovementTotals), args.Error(1)
}

func (m *MockLedgerRepository) SumMovementsByAccount(ctx context.Context, organizationID string, from, to *time.Time) (map[string]domain.MovementTotals, error) {
	args := m.Called(ctx, organizationID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.MovementTotals), args.Error(1)
}

func (m *MockLedgerRepository) FindAccountBalance(ctx context.Context, accountID, periodID string) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockLedgerRepository) UpsertAccountBalance(ctx context.Context, balance domain.AccountBalance) error {
	args := m.Called(ctx, balance)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListAccountBalancesForPeriod(ctx context.Context, organizationID, periodID string) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, organizationID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockAccountSvc *MockAccountReader
	mockFiscalSvc  *MockPeriodResolver
	mockAuditRepo  *MockAuditRepository
	service        portssvc.LedgerSvcFacade

	organizationID string
	now            time.Time
	cashAccount    domain.Account
	revenueAccount domain.Account
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountSvc = new(MockAccountReader)
	suite.mockFiscalSvc = new(MockPeriodResolver)
	suite.mockAuditRepo = new(MockAuditRepository)

	suite.now = time.Date(2025, 3, 31, 18, 0, 0, 0, time.UTC)
	suite.service = services.NewLedgerService(
		suite.mockLedgerRepo,
		suite.mockAccountSvc,
		suite.mockFiscalSvc,
		suite.mockAuditRepo,
		nil, // no report cache
		services.WithClock(func() time.Time { return suite.now }),
	)
	suite.mockAuditRepo.On("SaveAuditRecord", mock.Anything, mock.Anything).Return(nil).Maybe()

	suite.organizationID = uuid.NewString()
	suite.cashAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           "100",
		Name:           "Kasa",
		AccountType:    domain.Asset,
		NormalBalance:  domain.DebitNormal,
		AllowsPosting:  true,
		IsActive:       true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           "700",
		Name:           "Sprzedaz",
		AccountType:    domain.Revenue,
		NormalBalance:  domain.CreditNormal,
		AllowsPosting:  true,
		IsActive:       true,
	}
}

func (suite *LedgerServiceTestSuite) totals(debit, credit int64) domain.MovementTotals {
	return domain.MovementTotals{Debit: decimal.NewFromInt(debit), Credit: decimal.NewFromInt(credit)}
}

// --- CalculateAccountBalance ---

func (suite *LedgerServiceTestSuite) TestCalculateAccountBalance_DebitNormal() {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.organizationID, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockLedgerRepo.On("SumMovements", ctx, suite.organizationID, suite.cashAccount.AccountID, &asOf).Return(suite.totals(300, 120), nil).Once()

	resp, err := suite.service.CalculateAccountBalance(ctx, suite.organizationID, suite.cashAccount.AccountID, asOf)

	suite.Require().NoError(err)
	suite.True(resp.DebitTotal.Equal(decimal.NewFromInt(300)))
	suite.True(resp.CreditTotal.Equal(decimal.NewFromInt(120)))
	suite.True(resp.ClosingBalance.Equal(decimal.NewFromInt(180)), "debit-normal balance is debits minus credits")
	suite.Equal("DEBIT", resp.NormalBalance)
}

func (suite *LedgerServiceTestSuite) TestCalculateAccountBalance_CreditNormal() {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.organizationID, suite.revenueAccount.AccountID).Return(&suite.revenueAccount, nil).Once()
	suite.mockLedgerRepo.On("SumMovements", ctx, suite.organizationID, suite.revenueAccount.AccountID, &asOf).Return(suite.totals(20, 500), nil).Once()

	resp, err := suite.service.CalculateAccountBalance(ctx, suite.organizationID, suite.revenueAccount.AccountID, asOf)

	suite.Require().NoError(err)
	suite.True(resp.ClosingBalance.Equal(decimal.NewFromInt(480)), "credit-normal balance is credits minus debits")
}

// --- GetAccountLedger ---

func (suite *LedgerServiceTestSuite) TestGetAccountLedger_RunningBalanceFromOpening() {
	ctx := context.Background()
	dateFrom := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	dayBefore := dateFrom.AddDate(0, 0, -1)

	records := []domain.LedgerRecord{
		{RecordID: uuid.NewString(), AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		{RecordID: uuid.NewString(), AccountID: suite.cashAccount.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(30)},
		{RecordID: uuid.NewString(), AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(10), Credit: decimal.Zero},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.organizationID, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockLedgerRepo.On("SumMovements", ctx, suite.organizationID, suite.cashAccount.AccountID, &dayBefore).Return(suite.totals(50, 0), nil).Once()
	suite.mockLedgerRepo.On("ListLedgerRecords", ctx, suite.organizationID, suite.cashAccount.AccountID, mock.MatchedBy(func(q portsrepo.LedgerQuery) bool {
		return q.Ascending // running balances force chronological order
	})).Return(records, nil, nil).Once()

	resp, err := suite.service.GetAccountLedger(ctx, suite.organizationID, suite.cashAccount.AccountID, dto.AccountLedgerParams{
		DateFrom:              &dateFrom,
		IncludeRunningBalance: true,
	})

	suite.Require().NoError(err)
	suite.True(resp.OpeningBalance.Equal(decimal.NewFromInt(50)))
	suite.Require().Len(resp.Records, 3)
	suite.True(resp.Records[0].RunningBalance.Equal(decimal.NewFromInt(150)))
	suite.True(resp.Records[1].RunningBalance.Equal(decimal.NewFromInt(120)))
	suite.True(resp.Records[2].RunningBalance.Equal(decimal.NewFromInt(130)))
}

func (suite *LedgerServiceTestSuite) TestGetAccountLedger_NoOpeningWithoutDateFrom() {
	ctx := context.Background()

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.organizationID, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockLedgerRepo.On("ListLedgerRecords", ctx, suite.organizationID, suite.cashAccount.AccountID, mock.Anything).Return([]domain.LedgerRecord{}, nil, nil).Once()

	resp, err := suite.service.GetAccountLedger(ctx, suite.organizationID, suite.cashAccount.AccountID, dto.AccountLedgerParams{})

	suite.Require().NoError(err)
	suite.True(resp.OpeningBalance.IsZero())
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SumMovements", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- GetLedgerReport ---

func (suite *LedgerServiceTestSuite) TestGetLedgerReport_GroupsByTypeAndOmitsZeroRows() {
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	dayBefore := from.AddDate(0, 0, -1)

	idle := domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           "999",
		Name:           "Unused",
		AccountType:    domain.Expense,
		NormalBalance:  domain.DebitNormal,
		AllowsPosting:  true,
		IsActive:       true,
	}

	suite.mockAccountSvc.On("ListAccounts", ctx, suite.organizationID, false).
		Return([]domain.Account{suite.revenueAccount, suite.cashAccount, idle}, nil).Once()
	suite.mockLedgerRepo.On("SumMovementsByAccount", ctx, suite.organizationID, &from, &to).Return(map[string]domain.MovementTotals{
		suite.cashAccount.AccountID:    suite.totals(200, 50),
		suite.revenueAccount.AccountID: suite.totals(0, 150),
	}, nil).Once()
	suite.mockLedgerRepo.On("SumMovementsByAccount", ctx, suite.organizationID, (*time.Time)(nil), &dayBefore).Return(map[string]domain.MovementTotals{
		suite.cashAccount.AccountID: suite.totals(80, 0),
	}, nil).Once()

	resp, err := suite.service.GetLedgerReport(ctx, suite.organizationID, dto.LedgerReportParams{
		DateFrom:     &from,
		DateTo:       &to,
		GroupByType:  true,
		OmitZeroRows: true,
	})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Groups, 2, "idle account drops out, leaving asset and revenue groups")
	suite.Equal("ASSET", resp.Groups[0].AccountType)
	suite.Equal("REVENUE", resp.Groups[1].AccountType)

	cashRow := resp.Groups[0].Rows[0]
	suite.True(cashRow.OpeningBalance.Equal(decimal.NewFromInt(80)))
	suite.True(cashRow.ClosingBalance.Equal(decimal.NewFromInt(230)), "80 opening + 200 debits - 50 credits")

	suite.True(resp.TotalDebit.Equal(decimal.NewFromInt(200)))
	suite.True(resp.TotalCredit.Equal(decimal.NewFromInt(200)))
}

func (suite *LedgerServiceTestSuite) TestGetLedgerReport_PeriodScopesDateRange() {
	ctx := context.Background()
	periodID := uuid.NewString()
	period := domain.AccountingPeriod{
		PeriodID:       periodID,
		OrganizationID: suite.organizationID,
		Name:           "2025-03",
		StartDate:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:         domain.PeriodOpen,
	}
	dayBefore := period.StartDate.AddDate(0, 0, -1)

	suite.mockFiscalSvc.On("GetPeriodByID", ctx, suite.organizationID, periodID).Return(&period, nil).Once()
	suite.mockAccountSvc.On("ListAccounts", ctx, suite.organizationID, false).Return([]domain.Account{suite.cashAccount}, nil).Once()
	suite.mockLedgerRepo.On("SumMovementsByAccount", ctx, suite.organizationID, &period.StartDate, &period.EndDate).
		Return(map[string]domain.MovementTotals{}, nil).Once()
	suite.mockLedgerRepo.On("SumMovementsByAccount", ctx, suite.organizationID, (*time.Time)(nil), &dayBefore).
		Return(map[string]domain.MovementTotals{}, nil).Once()

	resp, err := suite.service.GetLedgerReport(ctx, suite.organizationID, dto.LedgerReportParams{PeriodID: &periodID})

	suite.Require().NoError(err)
	suite.Equal(period.StartDate, *resp.DateFrom)
	suite.Equal(period.EndDate, *resp.DateTo)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

// --- RecalculatePeriodBalances ---

func (suite *LedgerServiceTestSuite) TestRecalculatePeriodBalances_PreservesOpening() {
	ctx := context.Background()
	periodID := uuid.NewString()
	existing := &domain.AccountBalance{
		AccountID:      suite.cashAccount.AccountID,
		PeriodID:       periodID,
		OpeningBalance: decimal.NewFromInt(75),
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.organizationID, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockLedgerRepo.On("SumMovementsForPeriod", ctx, suite.organizationID, suite.cashAccount.AccountID, periodID).Return(suite.totals(100, 40), nil).Once()
	suite.mockLedgerRepo.On("FindAccountBalance", ctx, suite.cashAccount.AccountID, periodID).Return(existing, nil).Once()

	var upserted domain.AccountBalance
	suite.mockLedgerRepo.On("UpsertAccountBalance", ctx, mock.AnythingOfType("domain.AccountBalance")).
		Run(func(args mock.Arguments) {
			upserted = args.Get(1).(domain.AccountBalance)
		}).Return(nil).Once()

	balance, err := suite.service.RecalculatePeriodBalances(ctx, suite.organizationID, suite.cashAccount.AccountID, periodID)

	suite.Require().NoError(err)
	suite.True(balance.OpeningBalance.Equal(decimal.NewFromInt(75)))
	suite.True(balance.ClosingBalance.Equal(decimal.NewFromInt(135)), "75 opening + 100 debits - 40 credits")
	suite.Equal(suite.now, balance.LastUpdatedAt)
	suite.True(upserted.ClosingBalance.Equal(balance.ClosingBalance))
}

func (suite *LedgerServiceTestSuite) TestRecalculatePeriodBalances_NoExistingRowStartsAtZero() {
	ctx := context.Background()
	periodID := uuid.NewString()

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.organizationID, suite.revenueAccount.AccountID).Return(&suite.revenueAccount, nil).Once()
	suite.mockLedgerRepo.On("SumMovementsForPeriod", ctx, suite.organizationID, suite.revenueAccount.AccountID, periodID).Return(suite.totals(0, 90), nil).Once()
	suite.mockLedgerRepo.On("FindAccountBalance", ctx, suite.revenueAccount.AccountID, periodID).Return(nil, nil).Once()
	suite.mockLedgerRepo.On("UpsertAccountBalance", ctx, mock.Anything).Return(nil).Once()

	balance, err := suite.service.RecalculatePeriodBalances(ctx, suite.organizationID, suite.revenueAccount.AccountID, periodID)

	suite.Require().NoError(err)
	suite.True(balance.OpeningBalance.IsZero())
	suite.True(balance.ClosingBalance.Equal(decimal.NewFromInt(90)))
}

// --- NetMovement ---

func (suite *LedgerServiceTestSuite) TestNetMovement_SubtractsPriorActivity() {
	ctx := context.Background()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	dayBefore := from.AddDate(0, 0, -1)

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.organizationID, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockLedgerRepo.On("SumMovements", ctx, suite.organizationID, suite.cashAccount.AccountID, &to).Return(suite.totals(500, 200), nil).Once()
	suite.mockLedgerRepo.On("SumMovements", ctx, suite.organizationID, suite.cashAccount.AccountID, &dayBefore).Return(suite.totals(300, 150), nil).Once()

	net, err := suite.service.NetMovement(ctx, suite.organizationID, suite.cashAccount.AccountID, from, to)

	suite.Require().NoError(err)
	suite.True(net.Equal(decimal.NewFromInt(150)), "(500-300) debits - (200-150) credits")
}

// --- Run Test Suite ---
func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
