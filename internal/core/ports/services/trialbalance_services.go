package services

import (
	"context"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
)

// TrialBalanceGeneratorSvc defines on-demand trial balance generation
type TrialBalanceGeneratorSvc interface {
	// GenerateTrialBalance builds a point-in-time trial balance across the
	// chart of accounts.
	GenerateTrialBalance(ctx context.Context, organizationID string, params dto.TrialBalanceParams) (*domain.TrialBalanceReport, error)

	// GenerateComparativeTrialBalance repeats the computation for several
	// as-of dates and reports variance per account.
	GenerateComparativeTrialBalance(ctx context.Context, organizationID string, params dto.ComparativeTrialBalanceParams) (*domain.ComparativeTrialBalance, error)
}

// WorkingTrialBalanceSvc defines the persisted audit workspace operations
type WorkingTrialBalanceSvc interface {
	// CreateWorkingTrialBalance seeds a workspace from a freshly generated
	// trial balance.
	CreateWorkingTrialBalance(ctx context.Context, organizationID string, req dto.CreateWorkingTrialBalanceRequest, creatorUserID string) (*domain.WorkingTrialBalance, error)

	GetWorkingTrialBalanceByID(ctx context.Context, organizationID string, workingTrialBalanceID string) (*domain.WorkingTrialBalance, error)
	ListWorkingTrialBalances(ctx context.Context, organizationID string) ([]domain.WorkingTrialBalance, error)

	// AddAdjustmentColumn appends a named adjustment column to an open
	// workspace.
	AddAdjustmentColumn(ctx context.Context, organizationID string, workingTrialBalanceID string, req dto.AddAdjustmentColumnRequest, requestingUserID string) (*domain.AdjustmentColumn, error)

	// RecordAdjustment records or overwrites one adjustment cell on an open
	// workspace.
	RecordAdjustment(ctx context.Context, organizationID string, workingTrialBalanceID string, req dto.RecordAdjustmentRequest, requestingUserID string) error

	// LockWorkingTrialBalance freezes the workspace. Terminal.
	LockWorkingTrialBalance(ctx context.Context, organizationID string, workingTrialBalanceID string, requestingUserID string) error
}

// TrialBalanceSvcFacade combines generation and workspace interfaces
type TrialBalanceSvcFacade interface {
	TrialBalanceGeneratorSvc
	WorkingTrialBalanceSvc
}
