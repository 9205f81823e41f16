package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ksiegowo/ksiegowo_backend/internal/apperrors"
	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	portsrepo "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/repositories"
	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/core/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
)

// --- Mock FiscalRepository ---
type MockFiscalRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalRepositoryFacade = (*MockFiscalRepository)(nil)

func (m *MockFiscalRepository) SaveFiscalYear(ctx context.Context, year domain.FiscalYear, periods []domain.AccountingPeriod) error {
	args := m.Called(ctx, year, periods)
	return args.Error(0)
}

func (m *MockFiscalRepository) FindFiscalYearByID(ctx context.Context, organizationID, fiscalYearID string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, organizationID, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalRepository) FindFiscalYearByCode(ctx context.Context, organizationID, code string) (*domain.FiscalYear, error) {
	args := m.Called(ctx, organizationID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalRepository) ListFiscalYears(ctx context.Context, organizationID string) ([]domain.FiscalYear, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}

func (m *MockFiscalRepository) UpdateFiscalYearStatus(ctx context.Context, organizationID, fiscalYearID string, status domain.FiscalYearStatus, userID string, now time.Time) error {
	args := m.Called(ctx, organizationID, fiscalYearID, status, userID, now)
	return args.Error(0)
}

func (m *MockFiscalRepository) SetCurrentFiscalYear(ctx context.Context, organizationID, fiscalYearID string, userID string, now time.Time) error {
	args := m.Called(ctx, organizationID, fiscalYearID, userID, now)
	return args.Error(0)
}

func (m *MockFiscalRepository) LockFiscalYear(ctx context.Context, organizationID, fiscalYearID string, userID string, now time.Time) error {
	args := m.Called(ctx, organizationID, fiscalYearID, userID, now)
	return args.Error(0)
}

func (m *MockFiscalRepository) DeleteFiscalYear(ctx context.Context, organizationID, fiscalYearID string) error {
	args := m.Called(ctx, organizationID, fiscalYearID)
	return args.Error(0)
}

func (m *MockFiscalRepository) CountEntriesForFiscalYear(ctx context.Context, organizationID, fiscalYearID string) (int64, error) {
	args := m.Called(ctx, organizationID, fiscalYearID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFiscalRepository) CountOpenPeriods(ctx context.Context, fiscalYearID string) (int64, error) {
	args := m.Called(ctx, fiscalYearID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFiscalRepository) FindPeriodByID(ctx context.Context, organizationID, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, organizationID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockFiscalRepository) FindPeriodForDate(ctx context.Context, organizationID string, date time.Time) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, organizationID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockFiscalRepository) ListPeriods(ctx context.Context, organizationID, fiscalYearID string) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, organizationID, fiscalYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockFiscalRepository) UpdatePeriodStatus(ctx context.Context, organizationID, periodID string, status domain.PeriodStatus, userID string, now time.Time) error {
	args := m.Called(ctx, organizationID, periodID, status, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type FiscalServiceTestSuite struct {
	suite.Suite
	mockFiscalRepo *MockFiscalRepository
	mockAuditRepo  *MockAuditRepository
	service        portssvc.FiscalSvcFacade

	organizationID string
	userID         string
	now            time.Time
}

func (suite *FiscalServiceTestSuite) SetupTest() {
	suite.mockFiscalRepo = new(MockFiscalRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.now = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	suite.service = services.NewFiscalService(
		suite.mockFiscalRepo,
		suite.mockAuditRepo,
		services.WithClock(func() time.Time { return suite.now }),
	)
	suite.mockAuditRepo.On("SaveAuditRecord", mock.Anything, mock.Anything).Return(nil).Maybe()

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *FiscalServiceTestSuite) fiscalYear(status domain.FiscalYearStatus) *domain.FiscalYear {
	return &domain.FiscalYear{
		FiscalYearID:   uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           "FY2025",
		StartDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:         status,
	}
}

// --- CreateFiscalYear ---

func (suite *FiscalServiceTestSuite) TestCreateFiscalYear_GeneratesTwelveMonthlyPeriods() {
	ctx := context.Background()
	req := dto.CreateFiscalYearRequest{
		Code:      "FY2025",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockFiscalRepo.On("FindFiscalYearByCode", ctx, suite.organizationID, "FY2025").Return(nil, apperrors.ErrNotFound).Once()

	var gotPeriods []domain.AccountingPeriod
	suite.mockFiscalRepo.On("SaveFiscalYear", ctx, mock.AnythingOfType("domain.FiscalYear"), mock.Anything).
		Run(func(args mock.Arguments) {
			gotPeriods = args.Get(2).([]domain.AccountingPeriod)
		}).Return(nil).Once()

	year, err := suite.service.CreateFiscalYear(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.FiscalYearDraft, year.Status)
	suite.False(year.IsCurrent)

	suite.Require().Len(gotPeriods, 12)
	suite.Equal("2025-01", gotPeriods[0].Name)
	suite.Equal(1, gotPeriods[0].Sequence)
	suite.Equal("2025-12", gotPeriods[11].Name)
	suite.Equal(12, gotPeriods[11].Sequence)
	suite.Equal(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), gotPeriods[1].EndDate)
	for _, p := range gotPeriods {
		suite.Equal(domain.PeriodOpen, p.Status)
		suite.Equal(year.FiscalYearID, p.FiscalYearID)
	}
	suite.mockFiscalRepo.AssertExpectations(suite.T())
}

func (suite *FiscalServiceTestSuite) TestCreateFiscalYear_PartialEdgeMonths() {
	ctx := context.Background()
	req := dto.CreateFiscalYearRequest{
		Code:      "FY2025S",
		StartDate: time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
	}

	suite.mockFiscalRepo.On("FindFiscalYearByCode", ctx, suite.organizationID, "FY2025S").Return(nil, apperrors.ErrNotFound).Once()

	var gotPeriods []domain.AccountingPeriod
	suite.mockFiscalRepo.On("SaveFiscalYear", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotPeriods = args.Get(2).([]domain.AccountingPeriod)
		}).Return(nil).Once()

	_, err := suite.service.CreateFiscalYear(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(gotPeriods, 3)
	// Edge periods absorb the partial months; the range stays contiguous.
	suite.Equal(time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC), gotPeriods[0].StartDate)
	suite.Equal(time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), gotPeriods[0].EndDate)
	suite.Equal(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), gotPeriods[1].StartDate)
	suite.Equal(time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), gotPeriods[1].EndDate)
	suite.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), gotPeriods[2].StartDate)
	suite.Equal(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), gotPeriods[2].EndDate)
}

func (suite *FiscalServiceTestSuite) TestCreateFiscalYear_DuplicateCode() {
	ctx := context.Background()
	existing := suite.fiscalYear(domain.FiscalYearOpen)
	req := dto.CreateFiscalYearRequest{
		Code:      "FY2025",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockFiscalRepo.On("FindFiscalYearByCode", ctx, suite.organizationID, "FY2025").Return(existing, nil).Once()

	_, err := suite.service.CreateFiscalYear(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "SaveFiscalYear", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalServiceTestSuite) TestCreateFiscalYear_EndBeforeStart() {
	ctx := context.Background()
	req := dto.CreateFiscalYearRequest{
		Code:      "FY2025",
		StartDate: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := suite.service.CreateFiscalYear(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "SaveFiscalYear", mock.Anything, mock.Anything, mock.Anything)
}

// --- Year state machine ---

func (suite *FiscalServiceTestSuite) TestOpenFiscalYear_FromDraft() {
	ctx := context.Background()
	year := suite.fiscalYear(domain.FiscalYearDraft)

	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, suite.organizationID, year.FiscalYearID).Return(year, nil).Once()
	suite.mockFiscalRepo.On("UpdateFiscalYearStatus", ctx, suite.organizationID, year.FiscalYearID, domain.FiscalYearOpen, suite.userID, suite.now).Return(nil).Once()

	opened, err := suite.service.OpenFiscalYear(ctx, suite.organizationID, year.FiscalYearID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.FiscalYearOpen, opened.Status)
	suite.mockFiscalRepo.AssertExpectations(suite.T())
}

func (suite *FiscalServiceTestSuite) TestOpenFiscalYear_RejectsNonDraft() {
	ctx := context.Background()
	year := suite.fiscalYear(domain.FiscalYearClosed)

	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, suite.organizationID, year.FiscalYearID).Return(year, nil).Once()

	_, err := suite.service.OpenFiscalYear(ctx, suite.organizationID, year.FiscalYearID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
}

func (suite *FiscalServiceTestSuite) TestCloseFiscalYear_BlockedByOpenPeriods() {
	ctx := context.Background()
	year := suite.fiscalYear(domain.FiscalYearOpen)

	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, suite.organizationID, year.FiscalYearID).Return(year, nil).Once()
	suite.mockFiscalRepo.On("CountOpenPeriods", ctx, year.FiscalYearID).Return(int64(3), nil).Once()

	_, err := suite.service.CloseFiscalYear(ctx, suite.organizationID, year.FiscalYearID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "UpdateFiscalYearStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalServiceTestSuite) TestCloseFiscalYear_AllPeriodsClosed() {
	ctx := context.Background()
	year := suite.fiscalYear(domain.FiscalYearOpen)

	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, suite.organizationID, year.FiscalYearID).Return(year, nil).Once()
	suite.mockFiscalRepo.On("CountOpenPeriods", ctx, year.FiscalYearID).Return(int64(0), nil).Once()
	suite.mockFiscalRepo.On("UpdateFiscalYearStatus", ctx, suite.organizationID, year.FiscalYearID, domain.FiscalYearClosed, suite.userID, suite.now).Return(nil).Once()

	closed, err := suite.service.CloseFiscalYear(ctx, suite.organizationID, year.FiscalYearID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.FiscalYearClosed, closed.Status)
}

func (suite *FiscalServiceTestSuite) TestLockFiscalYear_OnlyFromClosed() {
	ctx := context.Background()
	year := suite.fiscalYear(domain.FiscalYearOpen)

	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, suite.organizationID, year.FiscalYearID).Return(year, nil).Once()

	_, err := suite.service.LockFiscalYear(ctx, suite.organizationID, year.FiscalYearID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "LockFiscalYear", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalServiceTestSuite) TestLockFiscalYear_FromClosed() {
	ctx := context.Background()
	year := suite.fiscalYear(domain.FiscalYearClosed)

	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, suite.organizationID, year.FiscalYearID).Return(year, nil).Once()
	suite.mockFiscalRepo.On("LockFiscalYear", ctx, suite.organizationID, year.FiscalYearID, suite.userID, suite.now).Return(nil).Once()

	locked, err := suite.service.LockFiscalYear(ctx, suite.organizationID, year.FiscalYearID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.FiscalYearLocked, locked.Status)
	suite.mockFiscalRepo.AssertExpectations(suite.T())
}

func (suite *FiscalServiceTestSuite) TestSetCurrentFiscalYear_RequiresOpen() {
	ctx := context.Background()
	year := suite.fiscalYear(domain.FiscalYearDraft)

	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, suite.organizationID, year.FiscalYearID).Return(year, nil).Once()

	err := suite.service.SetCurrentFiscalYear(ctx, suite.organizationID, year.FiscalYearID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
}

func (suite *FiscalServiceTestSuite) TestDeleteFiscalYear_BlockedByEntries() {
	ctx := context.Background()
	year := suite.fiscalYear(domain.FiscalYearDraft)

	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, suite.organizationID, year.FiscalYearID).Return(year, nil).Once()
	suite.mockFiscalRepo.On("CountEntriesForFiscalYear", ctx, suite.organizationID, year.FiscalYearID).Return(int64(5), nil).Once()

	err := suite.service.DeleteFiscalYear(ctx, suite.organizationID, year.FiscalYearID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "DeleteFiscalYear", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalServiceTestSuite) TestDeleteFiscalYear_EmptyDraft() {
	ctx := context.Background()
	year := suite.fiscalYear(domain.FiscalYearDraft)

	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, suite.organizationID, year.FiscalYearID).Return(year, nil).Once()
	suite.mockFiscalRepo.On("CountEntriesForFiscalYear", ctx, suite.organizationID, year.FiscalYearID).Return(int64(0), nil).Once()
	suite.mockFiscalRepo.On("DeleteFiscalYear", ctx, suite.organizationID, year.FiscalYearID).Return(nil).Once()

	err := suite.service.DeleteFiscalYear(ctx, suite.organizationID, year.FiscalYearID, suite.userID)

	suite.Require().NoError(err)
	suite.mockFiscalRepo.AssertExpectations(suite.T())
}

// --- Period state machine ---

func (suite *FiscalServiceTestSuite) period(status domain.PeriodStatus, fiscalYearID string) *domain.AccountingPeriod {
	return &domain.AccountingPeriod{
		PeriodID:       uuid.NewString(),
		FiscalYearID:   fiscalYearID,
		OrganizationID: suite.organizationID,
		Sequence:       3,
		Name:           "2025-03",
		StartDate:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:         status,
	}
}

func (suite *FiscalServiceTestSuite) TestTransitionPeriod_Matrix() {
	cases := []struct {
		name    string
		from    domain.PeriodStatus
		to      domain.PeriodStatus
		allowed bool
	}{
		{"open to soft closed", domain.PeriodOpen, domain.PeriodSoftClosed, true},
		{"open to closed", domain.PeriodOpen, domain.PeriodClosed, true},
		{"soft closed reopens", domain.PeriodSoftClosed, domain.PeriodOpen, true},
		{"soft closed to closed", domain.PeriodSoftClosed, domain.PeriodClosed, true},
		{"closed is terminal", domain.PeriodClosed, domain.PeriodOpen, false},
		{"closed cannot soften", domain.PeriodClosed, domain.PeriodSoftClosed, false},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			ctx := context.Background()
			year := suite.fiscalYear(domain.FiscalYearOpen)
			period := suite.period(tc.from, year.FiscalYearID)

			suite.mockFiscalRepo.On("FindPeriodByID", ctx, suite.organizationID, period.PeriodID).Return(period, nil).Once()
			suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, suite.organizationID, year.FiscalYearID).Return(year, nil).Once()
			if tc.allowed {
				suite.mockFiscalRepo.On("UpdatePeriodStatus", ctx, suite.organizationID, period.PeriodID, tc.to, suite.userID, suite.now).Return(nil).Once()
			}

			updated, err := suite.service.TransitionPeriod(ctx, suite.organizationID, period.PeriodID, tc.to, suite.userID)

			if tc.allowed {
				suite.Require().NoError(err)
				suite.Equal(tc.to, updated.Status)
			} else {
				suite.Require().Error(err)
				suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
				suite.mockFiscalRepo.AssertNotCalled(suite.T(), "UpdatePeriodStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func (suite *FiscalServiceTestSuite) TestTransitionPeriod_SameStatusIsNoOp() {
	ctx := context.Background()
	year := suite.fiscalYear(domain.FiscalYearOpen)
	period := suite.period(domain.PeriodOpen, year.FiscalYearID)

	suite.mockFiscalRepo.On("FindPeriodByID", ctx, suite.organizationID, period.PeriodID).Return(period, nil).Once()
	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, suite.organizationID, year.FiscalYearID).Return(year, nil).Once()

	updated, err := suite.service.TransitionPeriod(ctx, suite.organizationID, period.PeriodID, domain.PeriodOpen, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodOpen, updated.Status)
	suite.mockFiscalRepo.AssertNotCalled(suite.T(), "UpdatePeriodStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FiscalServiceTestSuite) TestTransitionPeriod_LockedYearBlocksEverything() {
	ctx := context.Background()
	year := suite.fiscalYear(domain.FiscalYearLocked)
	period := suite.period(domain.PeriodSoftClosed, year.FiscalYearID)

	suite.mockFiscalRepo.On("FindPeriodByID", ctx, suite.organizationID, period.PeriodID).Return(period, nil).Once()
	suite.mockFiscalRepo.On("FindFiscalYearByID", ctx, suite.organizationID, year.FiscalYearID).Return(year, nil).Once()

	_, err := suite.service.TransitionPeriod(ctx, suite.organizationID, period.PeriodID, domain.PeriodOpen, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
}

// --- Run Test Suite ---
func TestFiscalService(t *testing.T) {
	suite.Run(t, new(FiscalServiceTestSuite))
}
