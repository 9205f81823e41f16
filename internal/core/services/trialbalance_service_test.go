package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ksiegowo/ksiegowo_backend/internal/apperrors"
	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	portsrepo "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/repositories"
	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/core/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
	"github.com/ksiegowo/ksiegowo_backend/internal/platform/cache"
)

// --- Mock WorkingTrialBalanceRepository ---
type MockWorkingTrialBalanceRepository struct {
	mock.Mock
}

var _ portsrepo.WorkingTrialBalanceRepositoryFacade = (*MockWorkingTrialBalanceRepository)(nil)

func (m *MockWorkingTrialBalanceRepository) SaveWorkingTrialBalance(ctx context.Context, wtb domain.WorkingTrialBalance) error {
	args := m.Called(ctx, wtb)
	return args.Error(0)
}

func (m *MockWorkingTrialBalanceRepository) FindWorkingTrialBalanceByID(ctx context.Context, organizationID, workingTrialBalanceID string) (*domain.WorkingTrialBalance, error) {
	args := m.Called(ctx, organizationID, workingTrialBalanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkingTrialBalance), args.Error(1)
}

func (m *MockWorkingTrialBalanceRepository) ListWorkingTrialBalances(ctx context.Context, organizationID string) ([]domain.WorkingTrialBalance, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkingTrialBalance), args.Error(1)
}

func (m *MockWorkingTrialBalanceRepository) AddAdjustmentColumn(ctx context.Context, column domain.AdjustmentColumn) error {
	args := m.Called(ctx, column)
	return args.Error(0)
}

func (m *MockWorkingTrialBalanceRepository) UpsertAdjustment(ctx context.Context, adjustment domain.WorkingAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

func (m *MockWorkingTrialBalanceRepository) UpdateWorkingTrialBalanceStatus(ctx context.Context, organizationID, workingTrialBalanceID string, status domain.WorkingTrialBalanceStatus, userID string, now time.Time) error {
	args := m.Called(ctx, organizationID, workingTrialBalanceID, status, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type TrialBalanceServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockWTBRepo    *MockWorkingTrialBalanceRepository
	mockAccountSvc *MockAccountReader
	mockAuditRepo  *MockAuditRepository
	reportCache    *cache.Cache
	service        portssvc.TrialBalanceSvcFacade

	organizationID string
	userID         string
	now            time.Time
	cashAccount    domain.Account
	loanAccount    domain.Account
	revenueAccount domain.Account
}

func (suite *TrialBalanceServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockWTBRepo = new(MockWorkingTrialBalanceRepository)
	suite.mockAccountSvc = new(MockAccountReader)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.reportCache = cache.New(64, time.Minute)

	suite.now = time.Date(2025, 3, 31, 18, 0, 0, 0, time.UTC)
	suite.service = services.NewTrialBalanceService(
		suite.mockLedgerRepo,
		suite.mockWTBRepo,
		suite.mockAccountSvc,
		suite.mockAuditRepo,
		suite.reportCache,
		services.WithClock(func() time.Time { return suite.now }),
	)
	suite.mockAuditRepo.On("SaveAuditRecord", mock.Anything, mock.Anything).Return(nil).Maybe()

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
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
	suite.loanAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           "240",
		Name:           "Kredyty",
		AccountType:    domain.Liability,
		NormalBalance:  domain.CreditNormal,
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

func (suite *TrialBalanceServiceTestSuite) totals(debit, credit int64) domain.MovementTotals {
	return domain.MovementTotals{Debit: decimal.NewFromInt(debit), Credit: decimal.NewFromInt(credit)}
}

func (suite *TrialBalanceServiceTestSuite) allAccounts() []domain.Account {
	return []domain.Account{suite.cashAccount, suite.loanAccount, suite.revenueAccount}
}

// --- GenerateTrialBalance ---

func (suite *TrialBalanceServiceTestSuite) TestGenerateTrialBalance_BalancedSides() {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountSvc.On("ListAccounts", ctx, suite.organizationID, false).Return(suite.allAccounts(), nil).Once()
	suite.mockLedgerRepo.On("SumMovementsByAccount", ctx, suite.organizationID, (*time.Time)(nil), &asOf).Return(map[string]domain.MovementTotals{
		suite.cashAccount.AccountID:    suite.totals(500, 100), // net 400 debit
		suite.loanAccount.AccountID:    suite.totals(0, 250),   // net 250 credit
		suite.revenueAccount.AccountID: suite.totals(0, 150),   // net 150 credit
	}, nil).Once()

	report, err := suite.service.GenerateTrialBalance(ctx, suite.organizationID, dto.TrialBalanceParams{AsOfDate: &asOf})

	suite.Require().NoError(err)
	suite.True(report.IsBalanced)
	suite.True(report.TotalDebit.Equal(decimal.NewFromInt(400)))
	suite.True(report.TotalCredit.Equal(decimal.NewFromInt(400)))
	suite.Require().Len(report.Lines, 3)
	suite.Equal(suite.cashAccount.Code, report.Lines[0].AccountCode)
	suite.True(report.Lines[0].Debit.Equal(decimal.NewFromInt(400)))
	suite.True(report.Lines[0].Credit.IsZero())
	suite.Equal(suite.now, report.GeneratedAt)
}

func (suite *TrialBalanceServiceTestSuite) TestGenerateTrialBalance_SecondCallServedFromCache() {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountSvc.On("ListAccounts", ctx, suite.organizationID, false).Return(suite.allAccounts(), nil).Once()
	suite.mockLedgerRepo.On("SumMovementsByAccount", ctx, suite.organizationID, (*time.Time)(nil), &asOf).
		Return(map[string]domain.MovementTotals{}, nil).Once()

	params := dto.TrialBalanceParams{AsOfDate: &asOf}
	first, err := suite.service.GenerateTrialBalance(ctx, suite.organizationID, params)
	suite.Require().NoError(err)

	second, err := suite.service.GenerateTrialBalance(ctx, suite.organizationID, params)
	suite.Require().NoError(err)

	suite.Same(first, second)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *TrialBalanceServiceTestSuite) TestGenerateTrialBalance_FlagsUnusualBalance() {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountSvc.On("ListAccounts", ctx, suite.organizationID, false).Return([]domain.Account{suite.cashAccount}, nil).Once()
	// Cash credited past zero: a debit-normal account with a credit balance.
	suite.mockLedgerRepo.On("SumMovementsByAccount", ctx, suite.organizationID, (*time.Time)(nil), &asOf).Return(map[string]domain.MovementTotals{
		suite.cashAccount.AccountID: suite.totals(100, 180),
	}, nil).Once()

	report, err := suite.service.GenerateTrialBalance(ctx, suite.organizationID, dto.TrialBalanceParams{AsOfDate: &asOf})

	suite.Require().NoError(err)
	suite.Require().Len(report.Lines, 1)
	suite.True(report.Lines[0].IsUnusual)
	suite.True(report.Lines[0].Credit.Equal(decimal.NewFromInt(80)), "negative net shows on the opposite side")
	suite.True(report.Lines[0].Debit.IsZero())
}

func (suite *TrialBalanceServiceTestSuite) TestGenerateTrialBalance_GroupSubtotals() {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountSvc.On("ListAccounts", ctx, suite.organizationID, false).Return(suite.allAccounts(), nil).Once()
	suite.mockLedgerRepo.On("SumMovementsByAccount", ctx, suite.organizationID, (*time.Time)(nil), &asOf).Return(map[string]domain.MovementTotals{
		suite.cashAccount.AccountID:    suite.totals(400, 0),
		suite.loanAccount.AccountID:    suite.totals(0, 250),
		suite.revenueAccount.AccountID: suite.totals(0, 150),
	}, nil).Once()

	report, err := suite.service.GenerateTrialBalance(ctx, suite.organizationID, dto.TrialBalanceParams{AsOfDate: &asOf, GroupByType: true})

	suite.Require().NoError(err)
	// One account plus one subtotal row per type: asset, liability, revenue.
	suite.Require().Len(report.Lines, 6)
	suite.True(report.Lines[1].IsSubtotal)
	suite.Equal("ASSET", report.Lines[1].GroupLabel)
	suite.True(report.Lines[1].Debit.Equal(decimal.NewFromInt(400)))
	suite.True(report.Lines[3].IsSubtotal)
	suite.Equal("LIABILITY", report.Lines[3].GroupLabel)
	suite.True(report.Lines[5].IsSubtotal)
	suite.Equal("REVENUE", report.Lines[5].GroupLabel)
}

func (suite *TrialBalanceServiceTestSuite) TestGenerateTrialBalance_OmitZeroRowsAndTypeFilter() {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	accountType := "LIABILITY"

	suite.mockAccountSvc.On("ListAccounts", ctx, suite.organizationID, false).Return(suite.allAccounts(), nil).Once()
	suite.mockLedgerRepo.On("SumMovementsByAccount", ctx, suite.organizationID, (*time.Time)(nil), &asOf).Return(map[string]domain.MovementTotals{
		suite.cashAccount.AccountID: suite.totals(400, 0),
		suite.loanAccount.AccountID: suite.totals(250, 250), // nets to zero
	}, nil).Once()

	report, err := suite.service.GenerateTrialBalance(ctx, suite.organizationID, dto.TrialBalanceParams{
		AsOfDate:     &asOf,
		AccountType:  &accountType,
		OmitZeroRows: true,
	})

	suite.Require().NoError(err)
	suite.Empty(report.Lines, "the only liability account nets to zero and drops out")
}

// --- GenerateComparativeTrialBalance ---

func (suite *TrialBalanceServiceTestSuite) TestGenerateComparativeTrialBalance_VarianceAndSignificance() {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	priorDate := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)

	suite.mockAccountSvc.On("ListAccounts", ctx, suite.organizationID, false).Return([]domain.Account{suite.cashAccount, suite.loanAccount}, nil).Once()
	suite.mockLedgerRepo.On("SumMovementsByAccount", ctx, suite.organizationID, (*time.Time)(nil), &asOf).Return(map[string]domain.MovementTotals{
		suite.cashAccount.AccountID: suite.totals(460, 0),
		suite.loanAccount.AccountID: suite.totals(0, 202),
	}, nil).Once()
	suite.mockLedgerRepo.On("SumMovementsByAccount", ctx, suite.organizationID, (*time.Time)(nil), &priorDate).Return(map[string]domain.MovementTotals{
		suite.cashAccount.AccountID: suite.totals(400, 0),
		suite.loanAccount.AccountID: suite.totals(0, 200),
	}, nil).Once()

	result, err := suite.service.GenerateComparativeTrialBalance(ctx, suite.organizationID, dto.ComparativeTrialBalanceParams{
		AsOfDate:        &asOf,
		ComparisonDates: []time.Time{priorDate},
	})

	suite.Require().NoError(err)
	suite.Require().Len(result.Points, 1)
	suite.Equal("2025-02-28", result.Points[0].Label)
	suite.Require().Len(result.Lines, 2)

	cash := result.Lines[0]
	suite.True(cash.Variance.Equal(decimal.NewFromInt(60)))
	suite.True(cash.PercentChange.Equal(decimal.NewFromInt(15)), "400 to 460 is a 15 percent rise")
	suite.True(cash.IsSignificant, "15 percent exceeds the default 10 percent threshold")

	loan := result.Lines[1]
	suite.True(loan.Variance.Equal(decimal.NewFromInt(2)))
	suite.True(loan.PercentChange.Equal(decimal.NewFromInt(1)))
	suite.False(loan.IsSignificant)
}

func (suite *TrialBalanceServiceTestSuite) TestGenerateComparativeTrialBalance_RequiresComparisonDate() {
	ctx := context.Background()

	_, err := suite.service.GenerateComparativeTrialBalance(ctx, suite.organizationID, dto.ComparativeTrialBalanceParams{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything)
}

// --- Working trial balance ---

func (suite *TrialBalanceServiceTestSuite) TestCreateWorkingTrialBalance_SeedsLinesSkippingSubtotals() {
	ctx := context.Background()
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountSvc.On("ListAccounts", ctx, suite.organizationID, false).Return(suite.allAccounts(), nil).Once()
	suite.mockLedgerRepo.On("SumMovementsByAccount", ctx, suite.organizationID, (*time.Time)(nil), &asOf).Return(map[string]domain.MovementTotals{
		suite.cashAccount.AccountID: suite.totals(400, 0),
		suite.loanAccount.AccountID: suite.totals(0, 400),
	}, nil).Once()

	var saved domain.WorkingTrialBalance
	suite.mockWTBRepo.On("SaveWorkingTrialBalance", ctx, mock.AnythingOfType("domain.WorkingTrialBalance")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.WorkingTrialBalance)
		}).Return(nil).Once()

	wtb, err := suite.service.CreateWorkingTrialBalance(ctx, suite.organizationID, dto.CreateWorkingTrialBalanceRequest{
		Name:     "Year-end audit 2025",
		AsOfDate: &asOf,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.WorkingTrialBalanceOpen, wtb.Status)
	suite.Equal(asOf, wtb.AsOfDate)
	suite.Require().Len(saved.Lines, 2, "zero-balance revenue account and subtotals are not seeded")
	suite.True(saved.Lines[0].AdjustedDebit.Equal(saved.Lines[0].Debit), "adjusted figures start at the seed")
	suite.mockWTBRepo.AssertExpectations(suite.T())
}

func (suite *TrialBalanceServiceTestSuite) openWorkspace() *domain.WorkingTrialBalance {
	wtbID := uuid.NewString()
	return &domain.WorkingTrialBalance{
		WorkingTrialBalanceID: wtbID,
		OrganizationID:        suite.organizationID,
		Name:                  "Year-end audit 2025",
		AsOfDate:              time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:                domain.WorkingTrialBalanceOpen,
		Lines: []domain.WorkingTrialBalanceLine{
			{
				LineID:                uuid.NewString(),
				WorkingTrialBalanceID: wtbID,
				AccountID:             suite.cashAccount.AccountID,
				AccountCode:           "100",
				Debit:                 decimal.NewFromInt(100),
				Credit:                decimal.Zero,
			},
		},
		Columns: []domain.AdjustmentColumn{
			{ColumnID: uuid.NewString(), WorkingTrialBalanceID: wtbID, Name: "Audit adjustments", Position: 1},
		},
	}
}

func (suite *TrialBalanceServiceTestSuite) TestGetWorkingTrialBalanceByID_FoldsAdjustments() {
	ctx := context.Background()
	wtb := suite.openWorkspace()
	wtb.Adjustments = []domain.WorkingAdjustment{
		{AdjustmentID: uuid.NewString(), ColumnID: wtb.Columns[0].ColumnID, LineID: wtb.Lines[0].LineID, Debit: decimal.NewFromInt(25), Credit: decimal.Zero},
	}

	suite.mockWTBRepo.On("FindWorkingTrialBalanceByID", ctx, suite.organizationID, wtb.WorkingTrialBalanceID).Return(wtb, nil).Once()

	result, err := suite.service.GetWorkingTrialBalanceByID(ctx, suite.organizationID, wtb.WorkingTrialBalanceID)

	suite.Require().NoError(err)
	suite.True(result.Lines[0].AdjustedDebit.Equal(decimal.NewFromInt(125)), "100 seed + 25 adjustment")
	suite.True(result.Lines[0].AdjustedCredit.IsZero())
}

func (suite *TrialBalanceServiceTestSuite) TestAddAdjustmentColumn_AppendsPosition() {
	ctx := context.Background()
	wtb := suite.openWorkspace()

	suite.mockWTBRepo.On("FindWorkingTrialBalanceByID", ctx, suite.organizationID, wtb.WorkingTrialBalanceID).Return(wtb, nil).Once()

	var added domain.AdjustmentColumn
	suite.mockWTBRepo.On("AddAdjustmentColumn", ctx, mock.AnythingOfType("domain.AdjustmentColumn")).
		Run(func(args mock.Arguments) {
			added = args.Get(1).(domain.AdjustmentColumn)
		}).Return(nil).Once()

	column, err := suite.service.AddAdjustmentColumn(ctx, suite.organizationID, wtb.WorkingTrialBalanceID, dto.AddAdjustmentColumnRequest{Name: "Reclassifications"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, column.Position, "appended after the existing column")
	suite.Equal("Reclassifications", added.Name)
}

func (suite *TrialBalanceServiceTestSuite) TestRecordAdjustment_UnknownColumn() {
	ctx := context.Background()
	wtb := suite.openWorkspace()

	suite.mockWTBRepo.On("FindWorkingTrialBalanceByID", ctx, suite.organizationID, wtb.WorkingTrialBalanceID).Return(wtb, nil).Once()

	err := suite.service.RecordAdjustment(ctx, suite.organizationID, wtb.WorkingTrialBalanceID, dto.RecordAdjustmentRequest{
		ColumnID: uuid.NewString(),
		LineID:   wtb.Lines[0].LineID,
		Debit:    decimal.NewFromInt(10),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockWTBRepo.AssertNotCalled(suite.T(), "UpsertAdjustment", mock.Anything, mock.Anything)
}

func (suite *TrialBalanceServiceTestSuite) TestRecordAdjustment_NegativeAmount() {
	ctx := context.Background()
	wtb := suite.openWorkspace()

	suite.mockWTBRepo.On("FindWorkingTrialBalanceByID", ctx, suite.organizationID, wtb.WorkingTrialBalanceID).Return(wtb, nil).Once()

	err := suite.service.RecordAdjustment(ctx, suite.organizationID, wtb.WorkingTrialBalanceID, dto.RecordAdjustmentRequest{
		ColumnID: wtb.Columns[0].ColumnID,
		LineID:   wtb.Lines[0].LineID,
		Debit:    decimal.NewFromInt(-10),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TrialBalanceServiceTestSuite) TestRecordAdjustment_LockedWorkspace() {
	ctx := context.Background()
	wtb := suite.openWorkspace()
	wtb.Status = domain.WorkingTrialBalanceLocked

	suite.mockWTBRepo.On("FindWorkingTrialBalanceByID", ctx, suite.organizationID, wtb.WorkingTrialBalanceID).Return(wtb, nil).Once()

	err := suite.service.RecordAdjustment(ctx, suite.organizationID, wtb.WorkingTrialBalanceID, dto.RecordAdjustmentRequest{
		ColumnID: wtb.Columns[0].ColumnID,
		LineID:   wtb.Lines[0].LineID,
		Debit:    decimal.NewFromInt(10),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
}

func (suite *TrialBalanceServiceTestSuite) TestRecordAdjustment_Success() {
	ctx := context.Background()
	wtb := suite.openWorkspace()

	suite.mockWTBRepo.On("FindWorkingTrialBalanceByID", ctx, suite.organizationID, wtb.WorkingTrialBalanceID).Return(wtb, nil).Once()

	var upserted domain.WorkingAdjustment
	suite.mockWTBRepo.On("UpsertAdjustment", ctx, mock.AnythingOfType("domain.WorkingAdjustment")).
		Run(func(args mock.Arguments) {
			upserted = args.Get(1).(domain.WorkingAdjustment)
		}).Return(nil).Once()

	err := suite.service.RecordAdjustment(ctx, suite.organizationID, wtb.WorkingTrialBalanceID, dto.RecordAdjustmentRequest{
		ColumnID: wtb.Columns[0].ColumnID,
		LineID:   wtb.Lines[0].LineID,
		Debit:    decimal.NewFromInt(10),
		Memo:     "depreciation catch-up",
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(wtb.Lines[0].LineID, upserted.LineID)
	suite.True(upserted.Debit.Equal(decimal.NewFromInt(10)))
	suite.Equal("depreciation catch-up", upserted.Memo)
}

func (suite *TrialBalanceServiceTestSuite) TestLockWorkingTrialBalance_Terminal() {
	ctx := context.Background()
	wtb := suite.openWorkspace()

	suite.mockWTBRepo.On("FindWorkingTrialBalanceByID", ctx, suite.organizationID, wtb.WorkingTrialBalanceID).Return(wtb, nil).Twice()
	suite.mockWTBRepo.On("UpdateWorkingTrialBalanceStatus", ctx, suite.organizationID, wtb.WorkingTrialBalanceID, domain.WorkingTrialBalanceLocked, suite.userID, suite.now).Return(nil).Once()

	err := suite.service.LockWorkingTrialBalance(ctx, suite.organizationID, wtb.WorkingTrialBalanceID, suite.userID)
	suite.Require().NoError(err)

	// Locking an already locked workspace fails.
	wtb.Status = domain.WorkingTrialBalanceLocked
	err = suite.service.LockWorkingTrialBalance(ctx, suite.organizationID, wtb.WorkingTrialBalanceID, suite.userID)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
	suite.mockWTBRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestTrialBalanceService(t *testing.T) {
	suite.Run(t, new(TrialBalanceServiceTestSuite))
}
