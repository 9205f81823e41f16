package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ksiegowo/ksiegowo_backend/internal/apperrors"
	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	portsrepo "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/repositories"
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const exchangeRateColumns = `exchange_rate_id, organization_id, from_currency_code, to_currency_code, rate, effective_date,
	created_at, created_by, last_updated_at, last_updated_by`

func scanExchangeRate(row pgx.Row) (*domain.ExchangeRate, error) {
	var rate domain.ExchangeRate
	err := row.Scan(
		&rate.ExchangeRateID,
		&rate.OrganizationID,
		&rate.FromCurrencyCode,
		&rate.ToCurrencyCode,
		&rate.Rate,
		&rate.EffectiveDate,
		&rate.CreatedAt,
		&rate.CreatedBy,
		&rate.LastUpdatedAt,
		&rate.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan exchange rate", err)
	}
	return &rate, nil
}

func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		rate.ExchangeRateID,
		rate.OrganizationID,
		rate.FromCurrencyCode,
		rate.ToCurrencyCode,
		rate.Rate,
		rate.EffectiveDate,
		rate.CreatedAt,
		rate.CreatedBy,
		rate.LastUpdatedAt,
		rate.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("exchange rate for this pair and date already exists")
		}
		return apperrors.NewAppError(500, "failed to insert exchange rate "+rate.ExchangeRateID, err)
	}
	return nil
}

// FindRateForDate returns the rate with the latest effective date not after
// onDate for the given pair.
func (r *PgxExchangeRateRepository) FindRateForDate(ctx context.Context, organizationID, fromCurrency, toCurrency string, onDate time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE organization_id = $1 AND from_currency_code = $2 AND to_currency_code = $3
		  AND effective_date::date <= $4::date
		ORDER BY effective_date DESC
		LIMIT 1;
	`
	return scanExchangeRate(r.Pool.QueryRow(ctx, query, organizationID, fromCurrency, toCurrency, onDate))
}

func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, organizationID string) ([]domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE organization_id = $1
		ORDER BY from_currency_code, to_currency_code, effective_date DESC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list exchange rates", err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		rate, err := scanExchangeRate(rows)
		if err != nil {
			return nil, err
		}
		rates = append(rates, *rate)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate exchange rates", err)
	}
	return rates, nil
}
