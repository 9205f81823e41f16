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

type PgxFiscalRepository struct {
	BaseRepository
}

// newPgxFiscalRepository creates a new repository for fiscal years and
// accounting periods.
func newPgxFiscalRepository(pool *pgxpool.Pool) portsrepo.FiscalRepositoryFacade {
	return &PgxFiscalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalRepositoryFacade = (*PgxFiscalRepository)(nil)

const fiscalYearColumns = `fiscal_year_id, organization_id, code, start_date, end_date, status, is_current,
	created_at, created_by, last_updated_at, last_updated_by`

const periodColumns = `period_id, fiscal_year_id, organization_id, sequence, name, start_date, end_date, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanFiscalYear(row pgx.Row) (*domain.FiscalYear, error) {
	var year domain.FiscalYear
	err := row.Scan(
		&year.FiscalYearID,
		&year.OrganizationID,
		&year.Code,
		&year.StartDate,
		&year.EndDate,
		&year.Status,
		&year.IsCurrent,
		&year.CreatedAt,
		&year.CreatedBy,
		&year.LastUpdatedAt,
		&year.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan fiscal year", err)
	}
	return &year, nil
}

func scanPeriod(row pgx.Row) (*domain.AccountingPeriod, error) {
	var period domain.AccountingPeriod
	err := row.Scan(
		&period.PeriodID,
		&period.FiscalYearID,
		&period.OrganizationID,
		&period.Sequence,
		&period.Name,
		&period.StartDate,
		&period.EndDate,
		&period.Status,
		&period.CreatedAt,
		&period.CreatedBy,
		&period.LastUpdatedAt,
		&period.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan accounting period", err)
	}
	return &period, nil
}

// SaveFiscalYear inserts the year and all of its periods in one transaction.
func (r *PgxFiscalRepository) SaveFiscalYear(ctx context.Context, year domain.FiscalYear, periods []domain.AccountingPeriod) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	yearQuery := `
		INSERT INTO fiscal_years (` + fiscalYearColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, yearQuery,
		year.FiscalYearID,
		year.OrganizationID,
		year.Code,
		year.StartDate,
		year.EndDate,
		year.Status,
		year.IsCurrent,
		year.CreatedAt,
		year.CreatedBy,
		year.LastUpdatedAt,
		year.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("fiscal year code " + year.Code + " already exists")
		}
		return apperrors.NewAppError(500, "failed to insert fiscal year "+year.FiscalYearID, err)
	}

	batch := &pgx.Batch{}
	periodQuery := `
		INSERT INTO accounting_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, p := range periods {
		batch.Queue(periodQuery,
			p.PeriodID,
			p.FiscalYearID,
			p.OrganizationID,
			p.Sequence,
			p.Name,
			p.StartDate,
			p.EndDate,
			p.Status,
			p.CreatedAt,
			p.CreatedBy,
			p.LastUpdatedAt,
			p.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert periods for fiscal year "+year.FiscalYearID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxFiscalRepository) FindFiscalYearByID(ctx context.Context, organizationID, fiscalYearID string) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE fiscal_year_id = $1 AND organization_id = $2;`
	return scanFiscalYear(r.Pool.QueryRow(ctx, query, fiscalYearID, organizationID))
}

func (r *PgxFiscalRepository) FindFiscalYearByCode(ctx context.Context, organizationID, code string) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE organization_id = $1 AND code = $2;`
	return scanFiscalYear(r.Pool.QueryRow(ctx, query, organizationID, code))
}

func (r *PgxFiscalRepository) ListFiscalYears(ctx context.Context, organizationID string) ([]domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE organization_id = $1 ORDER BY start_date;`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list fiscal years", err)
	}
	defer rows.Close()

	var years []domain.FiscalYear
	for rows.Next() {
		year, err := scanFiscalYear(rows)
		if err != nil {
			return nil, err
		}
		years = append(years, *year)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate fiscal years", err)
	}
	return years, nil
}

func (r *PgxFiscalRepository) UpdateFiscalYearStatus(ctx context.Context, organizationID, fiscalYearID string, status domain.FiscalYearStatus, userID string, now time.Time) error {
	query := `
		UPDATE fiscal_years
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE fiscal_year_id = $1 AND organization_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, fiscalYearID, organizationID, status, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update fiscal year status "+fiscalYearID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetCurrentFiscalYear unsets any previous current year before marking the new
// one, all in one transaction so the at-most-one invariant holds.
func (r *PgxFiscalRepository) SetCurrentFiscalYear(ctx context.Context, organizationID, fiscalYearID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	unsetQuery := `
		UPDATE fiscal_years
		SET is_current = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE organization_id = $1 AND is_current = TRUE;
	`
	if _, err := tx.Exec(ctx, unsetQuery, organizationID, now, userID); err != nil {
		return apperrors.NewAppError(500, "failed to unset current fiscal year", err)
	}

	setQuery := `
		UPDATE fiscal_years
		SET is_current = TRUE, last_updated_at = $3, last_updated_by = $4
		WHERE fiscal_year_id = $1 AND organization_id = $2;
	`
	tag, err := tx.Exec(ctx, setQuery, fiscalYearID, organizationID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set current fiscal year "+fiscalYearID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// LockFiscalYear closes every child period and locks the year atomically.
func (r *PgxFiscalRepository) LockFiscalYear(ctx context.Context, organizationID, fiscalYearID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	closePeriodsQuery := `
		UPDATE accounting_periods
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE fiscal_year_id = $1 AND organization_id = $2 AND status <> $3;
	`
	if _, err := tx.Exec(ctx, closePeriodsQuery, fiscalYearID, organizationID, domain.PeriodClosed, now, userID); err != nil {
		return apperrors.NewAppError(500, "failed to close periods for fiscal year "+fiscalYearID, err)
	}

	lockQuery := `
		UPDATE fiscal_years
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE fiscal_year_id = $1 AND organization_id = $2;
	`
	tag, err := tx.Exec(ctx, lockQuery, fiscalYearID, organizationID, domain.FiscalYearLocked, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock fiscal year "+fiscalYearID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// DeleteFiscalYear removes a draft year together with its periods.
func (r *PgxFiscalRepository) DeleteFiscalYear(ctx context.Context, organizationID, fiscalYearID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	deletePeriodsQuery := `DELETE FROM accounting_periods WHERE fiscal_year_id = $1 AND organization_id = $2;`
	if _, err := tx.Exec(ctx, deletePeriodsQuery, fiscalYearID, organizationID); err != nil {
		return apperrors.NewAppError(500, "failed to delete periods for fiscal year "+fiscalYearID, err)
	}

	deleteYearQuery := `DELETE FROM fiscal_years WHERE fiscal_year_id = $1 AND organization_id = $2;`
	tag, err := tx.Exec(ctx, deleteYearQuery, fiscalYearID, organizationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete fiscal year "+fiscalYearID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

func (r *PgxFiscalRepository) CountEntriesForFiscalYear(ctx context.Context, organizationID, fiscalYearID string) (int64, error) {
	query := `SELECT COUNT(*) FROM journal_entries WHERE organization_id = $1 AND fiscal_year_id = $2;`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, organizationID, fiscalYearID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count entries for fiscal year "+fiscalYearID, err)
	}
	return count, nil
}

func (r *PgxFiscalRepository) CountOpenPeriods(ctx context.Context, fiscalYearID string) (int64, error) {
	query := `SELECT COUNT(*) FROM accounting_periods WHERE fiscal_year_id = $1 AND status <> $2;`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, fiscalYearID, domain.PeriodClosed).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count open periods for fiscal year "+fiscalYearID, err)
	}
	return count, nil
}

func (r *PgxFiscalRepository) FindPeriodByID(ctx context.Context, organizationID, periodID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE period_id = $1 AND organization_id = $2;`
	return scanPeriod(r.Pool.QueryRow(ctx, query, periodID, organizationID))
}

// FindPeriodForDate resolves the period whose date range covers the given
// date. Comparison is on the calendar date.
func (r *PgxFiscalRepository) FindPeriodForDate(ctx context.Context, organizationID string, date time.Time) (*domain.AccountingPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM accounting_periods
		WHERE organization_id = $1 AND start_date::date <= $2::date AND end_date::date >= $2::date
		LIMIT 1;
	`
	return scanPeriod(r.Pool.QueryRow(ctx, query, organizationID, date))
}

func (r *PgxFiscalRepository) ListPeriods(ctx context.Context, organizationID, fiscalYearID string) ([]domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE organization_id = $1 AND fiscal_year_id = $2 ORDER BY sequence;`
	rows, err := r.Pool.Query(ctx, query, organizationID, fiscalYearID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list periods", err)
	}
	defer rows.Close()

	var periods []domain.AccountingPeriod
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, *period)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate periods", err)
	}
	return periods, nil
}

func (r *PgxFiscalRepository) UpdatePeriodStatus(ctx context.Context, organizationID, periodID string, status domain.PeriodStatus, userID string, now time.Time) error {
	query := `
		UPDATE accounting_periods
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE period_id = $1 AND organization_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, periodID, organizationID, status, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update period status "+periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
