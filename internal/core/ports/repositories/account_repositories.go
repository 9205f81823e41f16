package repositories

import (
	"context"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
)

// AccountRepositoryFacade defines persistence operations for the chart of
// accounts. Every read is filtered by organization; a hit in another
// organization is reported as not found.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, organizationID string, includeInactive bool) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error

	// HasPostedActivity reports whether any ledger record references the
	// account. Guards deactivation of accounts that still carry balances.
	HasPostedActivity(ctx context.Context, organizationID, accountID string) (bool, error)
}
