package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ksiegowo/ksiegowo_backend/internal/apperrors"
	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	portsrepo "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/repositories"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart of accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, organization_id, code, name, account_type, normal_balance,
	parent_account_id, level, path, allows_posting, requires_cost_center, currency_code,
	description, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.AccountID,
		&account.OrganizationID,
		&account.Code,
		&account.Name,
		&account.AccountType,
		&account.NormalBalance,
		&account.ParentAccountID,
		&account.Level,
		&account.Path,
		&account.AllowsPosting,
		&account.RequiresCostCenter,
		&account.CurrencyCode,
		&account.Description,
		&account.IsActive,
		&account.CreatedAt,
		&account.CreatedBy,
		&account.LastUpdatedAt,
		&account.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan account", err)
	}
	return &account, nil
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	defer rows.Close()
	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate accounts", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.OrganizationID,
		account.Code,
		account.Name,
		account.AccountType,
		account.NormalBalance,
		account.ParentAccountID,
		account.Level,
		account.Path,
		account.AllowsPosting,
		account.RequiresCostCenter,
		account.CurrencyCode,
		account.Description,
		account.IsActive,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("account code " + account.Code + " already exists")
		}
		return apperrors.NewAppError(500, "failed to insert account "+account.AccountID, err)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 AND organization_id = $2;`
	return scanAccount(r.Pool.QueryRow(ctx, query, accountID, organizationID))
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND code = $2;`
	return scanAccount(r.Pool.QueryRow(ctx, query, organizationID, code))
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND account_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, organizationID, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	result := make(map[string]domain.Account, len(accounts))
	for _, account := range accounts {
		result[account.AccountID] = account
	}
	return result, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, organizationID string, includeInactive bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	return collectAccounts(rows)
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $3, description = $4, requires_cost_center = $5, is_active = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE account_id = $1 AND organization_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.OrganizationID,
		account.Name,
		account.Description,
		account.RequiresCostCenter,
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// HasPostedActivity checks the ledger for any record referencing the account.
func (r *PgxAccountRepository) HasPostedActivity(ctx context.Context, organizationID, accountID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM ledger_records WHERE organization_id = $1 AND account_id = $2);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, organizationID, accountID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check posted activity for account "+accountID, err)
	}
	return exists, nil
}
