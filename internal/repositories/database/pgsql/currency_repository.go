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

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for the currency
// dictionary.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryFacade {
	return &PgxCurrencyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CurrencyRepositoryFacade = (*PgxCurrencyRepository)(nil)

const currencyColumns = `currency_code, symbol, name, precision, created_at, created_by, last_updated_at, last_updated_by`

func scanCurrency(row pgx.Row) (*domain.Currency, error) {
	var c domain.Currency
	err := row.Scan(
		&c.CurrencyCode,
		&c.Symbol,
		&c.Name,
		&c.Precision,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan currency", err)
	}
	return &c, nil
}

func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	query := `
		INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		currency.CurrencyCode,
		currency.Symbol,
		currency.Name,
		currency.Precision,
		currency.CreatedAt,
		currency.CreatedBy,
		currency.LastUpdatedAt,
		currency.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("currency " + currency.CurrencyCode + " already exists")
		}
		return apperrors.NewAppError(500, "failed to insert currency "+currency.CurrencyCode, err)
	}
	return nil
}

func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE currency_code = $1;`
	return scanCurrency(r.Pool.QueryRow(ctx, query, code))
}

func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies ORDER BY currency_code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list currencies", err)
	}
	defer rows.Close()

	var currencies []domain.Currency
	for rows.Next() {
		c, err := scanCurrency(rows)
		if err != nil {
			return nil, err
		}
		currencies = append(currencies, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate currencies", err)
	}
	return currencies, nil
}
