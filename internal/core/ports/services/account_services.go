package services

import (
	"context"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, organizationID string, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves a specific account by its code.
	GetAccountByCode(ctx context.Context, organizationID string, code string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts in one read. Missing IDs are
	// absent from the map.
	GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the chart of accounts, optionally including
	// inactive accounts.
	ListAccounts(ctx context.Context, organizationID string, includeInactive bool) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount persists a new account, deriving its normal balance from
	// the account type when not supplied and its level/path from the parent.
	CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates account details. Code and type are immutable.
	UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive. Accounts with a nonzero
	// balance are refused.
	DeactivateAccount(ctx context.Context, organizationID string, accountID string, requestingUserID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
