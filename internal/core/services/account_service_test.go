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
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organizationID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, organizationID string, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) HasPostedActivity(ctx context.Context, organizationID, accountID string) (bool, error) {
	args := m.Called(ctx, organizationID, accountID)
	return args.Bool(0), args.Error(1)
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	mockAuditRepo   *MockAuditRepository
	service         portssvc.AccountSvcFacade

	organizationID string
	userID         string
	now            time.Time
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAuditRepo = new(MockAuditRepository)

	suite.now = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	suite.service = services.NewAccountService(
		suite.mockAccountRepo,
		suite.mockLedgerRepo,
		suite.mockAuditRepo,
		services.WithClock(func() time.Time { return suite.now }),
	)
	suite.mockAuditRepo.On("SaveAuditRecord", mock.Anything, mock.Anything).Return(nil).Maybe()

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- CreateAccount ---

func (suite *AccountServiceTestSuite) TestCreateAccount_DefaultsFromType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "201", Name: "Zobowiazania", AccountType: "LIABILITY"}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.organizationID, "201").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.CreditNormal, account.NormalBalance, "liabilities default to credit-normal")
	suite.True(account.AllowsPosting)
	suite.True(account.IsActive)
	suite.Equal(0, account.Level)
	suite.Equal("201", account.Path)
	suite.Nil(account.ParentAccountID)
	suite.Equal(suite.userID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ChildInheritsHierarchy() {
	ctx := context.Background()
	parentID := uuid.NewString()
	parent := &domain.Account{
		AccountID:      parentID,
		OrganizationID: suite.organizationID,
		Code:           "7",
		Name:           "Przychody",
		AccountType:    domain.Revenue,
		NormalBalance:  domain.CreditNormal,
		Level:          1,
		Path:           "RZiS/7",
		AllowsPosting:  false,
		IsActive:       true,
	}
	req := dto.CreateAccountRequest{Code: "700", Name: "Sprzedaz", AccountType: "REVENUE", ParentAccountID: &parentID}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.organizationID, "700").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, parentID).Return(parent, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.Anything).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, account.Level)
	suite.Equal("RZiS/7/700", account.Path)
	suite.Equal(&parentID, account.ParentAccountID)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: uuid.NewString(), Code: "100"}
	req := dto.CreateAccountRequest{Code: "100", Name: "Kasa", AccountType: "ASSET"}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.organizationID, "100").Return(existing, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	ctx := context.Background()
	parentID := uuid.NewString()
	parent := &domain.Account{
		AccountID:     parentID,
		Code:          "1",
		AccountType:   domain.Asset,
		NormalBalance: domain.DebitNormal,
		IsActive:      true,
	}
	req := dto.CreateAccountRequest{Code: "700", Name: "Sprzedaz", AccountType: "REVENUE", ParentAccountID: &parentID}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.organizationID, "700").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, parentID).Return(parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

// --- DeactivateAccount ---

func (suite *AccountServiceTestSuite) TestDeactivateAccount_NonzeroBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:      accountID,
		OrganizationID: suite.organizationID,
		Code:           "100",
		AccountType:    domain.Asset,
		NormalBalance:  domain.DebitNormal,
		IsActive:       true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, accountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("HasPostedActivity", ctx, suite.organizationID, accountID).Return(true, nil).Once()
	suite.mockLedgerRepo.On("SumMovements", ctx, suite.organizationID, accountID, (*time.Time)(nil)).
		Return(domain.MovementTotals{Debit: decimal.NewFromInt(300), Credit: decimal.NewFromInt(120)}, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.organizationID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_ZeroedAccountSucceeds() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:      accountID,
		OrganizationID: suite.organizationID,
		Code:           "100",
		AccountType:    domain.Asset,
		NormalBalance:  domain.DebitNormal,
		IsActive:       true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, accountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("HasPostedActivity", ctx, suite.organizationID, accountID).Return(true, nil).Once()
	suite.mockLedgerRepo.On("SumMovements", ctx, suite.organizationID, accountID, (*time.Time)(nil)).
		Return(domain.MovementTotals{Debit: decimal.NewFromInt(300), Credit: decimal.NewFromInt(300)}, nil).Once()

	var updated domain.Account
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Account)
		}).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.organizationID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.False(updated.IsActive)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_NoActivitySkipsBalanceCheck() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:      accountID,
		OrganizationID: suite.organizationID,
		Code:           "150",
		AccountType:    domain.Asset,
		NormalBalance:  domain.DebitNormal,
		IsActive:       true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, accountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("HasPostedActivity", ctx, suite.organizationID, accountID).Return(false, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.Anything).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.organizationID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SumMovements", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_AlreadyInactive() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:      accountID,
		OrganizationID: suite.organizationID,
		Code:           "100",
		AccountType:    domain.Asset,
		NormalBalance:  domain.DebitNormal,
		IsActive:       false,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, accountID).Return(account, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.organizationID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- UpdateAccount ---

func (suite *AccountServiceTestSuite) TestUpdateAccount_PartialUpdate() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:      accountID,
		OrganizationID: suite.organizationID,
		Code:           "100",
		Name:           "Kasa",
		AccountType:    domain.Asset,
		NormalBalance:  domain.DebitNormal,
		IsActive:       true,
	}
	newName := "Kasa glowna"

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, accountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.organizationID, accountID, dto.UpdateAccountRequest{Name: &newName}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Kasa glowna", updated.Name)
	suite.Equal("100", updated.Code, "code is immutable")
}

// --- Run Test Suite ---
func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
