package repositories

import (
	"context"
	"time"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
)

// WorkingTrialBalanceRepositoryFacade defines persistence for the mutable
// audit workspace built on top of generated trial balances.
type WorkingTrialBalanceRepositoryFacade interface {
	// SaveWorkingTrialBalance persists the workspace header and its seeded
	// lines in one transaction.
	SaveWorkingTrialBalance(ctx context.Context, wtb domain.WorkingTrialBalance) error

	// FindWorkingTrialBalanceByID returns the workspace hydrated with lines,
	// adjustment columns, and adjustments.
	FindWorkingTrialBalanceByID(ctx context.Context, organizationID, workingTrialBalanceID string) (*domain.WorkingTrialBalance, error)

	// ListWorkingTrialBalances returns workspace headers without lines.
	ListWorkingTrialBalances(ctx context.Context, organizationID string) ([]domain.WorkingTrialBalance, error)

	AddAdjustmentColumn(ctx context.Context, column domain.AdjustmentColumn) error

	// UpsertAdjustment records or overwrites the adjustment for one
	// (column, line) cell.
	UpsertAdjustment(ctx context.Context, adjustment domain.WorkingAdjustment) error

	UpdateWorkingTrialBalanceStatus(ctx context.Context, organizationID, workingTrialBalanceID string, status domain.WorkingTrialBalanceStatus, userID string, now time.Time) error
}
