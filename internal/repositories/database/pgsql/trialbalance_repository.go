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

type PgxWorkingTrialBalanceRepository struct {
	BaseRepository
}

// newPgxWorkingTrialBalanceRepository creates a new repository for working
// trial balance workspaces.
func newPgxWorkingTrialBalanceRepository(pool *pgxpool.Pool) portsrepo.WorkingTrialBalanceRepositoryFacade {
	return &PgxWorkingTrialBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WorkingTrialBalanceRepositoryFacade = (*PgxWorkingTrialBalanceRepository)(nil)

const wtbColumns = `working_trial_balance_id, organization_id, name, as_of_date, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanWorkingTrialBalance(row pgx.Row) (*domain.WorkingTrialBalance, error) {
	var wtb domain.WorkingTrialBalance
	err := row.Scan(
		&wtb.WorkingTrialBalanceID,
		&wtb.OrganizationID,
		&wtb.Name,
		&wtb.AsOfDate,
		&wtb.Status,
		&wtb.CreatedAt,
		&wtb.CreatedBy,
		&wtb.LastUpdatedAt,
		&wtb.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan working trial balance", err)
	}
	return &wtb, nil
}

// SaveWorkingTrialBalance persists the workspace header and its seeded lines.
func (r *PgxWorkingTrialBalanceRepository) SaveWorkingTrialBalance(ctx context.Context, wtb domain.WorkingTrialBalance) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		INSERT INTO working_trial_balances (` + wtbColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, headerQuery,
		wtb.WorkingTrialBalanceID,
		wtb.OrganizationID,
		wtb.Name,
		wtb.AsOfDate,
		wtb.Status,
		wtb.CreatedAt,
		wtb.CreatedBy,
		wtb.LastUpdatedAt,
		wtb.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert working trial balance "+wtb.WorkingTrialBalanceID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO working_trial_balance_lines (line_id, working_trial_balance_id, account_id,
			account_code, account_name, debit, credit)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, l := range wtb.Lines {
		batch.Queue(lineQuery,
			l.LineID,
			l.WorkingTrialBalanceID,
			l.AccountID,
			l.AccountCode,
			l.AccountName,
			l.Debit,
			l.Credit,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for working trial balance "+wtb.WorkingTrialBalanceID, err)
	}

	return r.Commit(ctx, tx)
}

// FindWorkingTrialBalanceByID hydrates the workspace with lines, columns, and
// adjustments. Adjusted figures are folded in by the service at read time.
func (r *PgxWorkingTrialBalanceRepository) FindWorkingTrialBalanceByID(ctx context.Context, organizationID, workingTrialBalanceID string) (*domain.WorkingTrialBalance, error) {
	headerQuery := `
		SELECT ` + wtbColumns + `
		FROM working_trial_balances
		WHERE working_trial_balance_id = $1 AND organization_id = $2;
	`
	wtb, err := scanWorkingTrialBalance(r.Pool.QueryRow(ctx, headerQuery, workingTrialBalanceID, organizationID))
	if err != nil {
		return nil, err
	}

	lineQuery := `
		SELECT line_id, working_trial_balance_id, account_id, account_code, account_name, debit, credit
		FROM working_trial_balance_lines
		WHERE working_trial_balance_id = $1
		ORDER BY account_code;
	`
	lineRows, err := r.Pool.Query(ctx, lineQuery, workingTrialBalanceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query working trial balance lines", err)
	}
	defer lineRows.Close()
	for lineRows.Next() {
		var l domain.WorkingTrialBalanceLine
		err := lineRows.Scan(&l.LineID, &l.WorkingTrialBalanceID, &l.AccountID, &l.AccountCode, &l.AccountName, &l.Debit, &l.Credit)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan working trial balance line", err)
		}
		wtb.Lines = append(wtb.Lines, l)
	}
	if err := lineRows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate working trial balance lines", err)
	}

	columnQuery := `
		SELECT column_id, working_trial_balance_id, name, position, supporting_entry_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM adjustment_columns
		WHERE working_trial_balance_id = $1
		ORDER BY position;
	`
	columnRows, err := r.Pool.Query(ctx, columnQuery, workingTrialBalanceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query adjustment columns", err)
	}
	defer columnRows.Close()
	for columnRows.Next() {
		var c domain.AdjustmentColumn
		err := columnRows.Scan(&c.ColumnID, &c.WorkingTrialBalanceID, &c.Name, &c.Position, &c.SupportingEntryID,
			&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan adjustment column", err)
		}
		wtb.Columns = append(wtb.Columns, c)
	}
	if err := columnRows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate adjustment columns", err)
	}

	adjustmentQuery := `
		SELECT a.adjustment_id, a.column_id, a.line_id, a.debit, a.credit, a.memo,
		       a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
		FROM working_adjustments a
		JOIN adjustment_columns c ON a.column_id = c.column_id
		WHERE c.working_trial_balance_id = $1;
	`
	adjustmentRows, err := r.Pool.Query(ctx, adjustmentQuery, workingTrialBalanceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query working adjustments", err)
	}
	defer adjustmentRows.Close()
	for adjustmentRows.Next() {
		var a domain.WorkingAdjustment
		err := adjustmentRows.Scan(&a.AdjustmentID, &a.ColumnID, &a.LineID, &a.Debit, &a.Credit, &a.Memo,
			&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan working adjustment", err)
		}
		wtb.Adjustments = append(wtb.Adjustments, a)
	}
	if err := adjustmentRows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate working adjustments", err)
	}

	return wtb, nil
}

// ListWorkingTrialBalances returns headers only, newest first.
func (r *PgxWorkingTrialBalanceRepository) ListWorkingTrialBalances(ctx context.Context, organizationID string) ([]domain.WorkingTrialBalance, error) {
	query := `
		SELECT ` + wtbColumns + `
		FROM working_trial_balances
		WHERE organization_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list working trial balances", err)
	}
	defer rows.Close()

	var workspaces []domain.WorkingTrialBalance
	for rows.Next() {
		wtb, err := scanWorkingTrialBalance(rows)
		if err != nil {
			return nil, err
		}
		workspaces = append(workspaces, *wtb)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate working trial balances", err)
	}
	return workspaces, nil
}

func (r *PgxWorkingTrialBalanceRepository) AddAdjustmentColumn(ctx context.Context, column domain.AdjustmentColumn) error {
	query := `
		INSERT INTO adjustment_columns (column_id, working_trial_balance_id, name, position, supporting_entry_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		column.ColumnID,
		column.WorkingTrialBalanceID,
		column.Name,
		column.Position,
		column.SupportingEntryID,
		column.CreatedAt,
		column.CreatedBy,
		column.LastUpdatedAt,
		column.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert adjustment column "+column.ColumnID, err)
	}
	return nil
}

// UpsertAdjustment records or overwrites the adjustment for one (column, line)
// cell. A later adjustment in the same cell replaces the earlier one.
func (r *PgxWorkingTrialBalanceRepository) UpsertAdjustment(ctx context.Context, adjustment domain.WorkingAdjustment) error {
	query := `
		INSERT INTO working_adjustments (adjustment_id, column_id, line_id, debit, credit, memo,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (column_id, line_id)
		DO UPDATE SET
			debit           = EXCLUDED.debit,
			credit          = EXCLUDED.credit,
			memo            = EXCLUDED.memo,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		adjustment.AdjustmentID,
		adjustment.ColumnID,
		adjustment.LineID,
		adjustment.Debit,
		adjustment.Credit,
		adjustment.Memo,
		adjustment.CreatedAt,
		adjustment.CreatedBy,
		adjustment.LastUpdatedAt,
		adjustment.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert adjustment "+adjustment.AdjustmentID, err)
	}
	return nil
}

func (r *PgxWorkingTrialBalanceRepository) UpdateWorkingTrialBalanceStatus(ctx context.Context, organizationID, workingTrialBalanceID string, status domain.WorkingTrialBalanceStatus, userID string, now time.Time) error {
	query := `
		UPDATE working_trial_balances
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE working_trial_balance_id = $1 AND organization_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, workingTrialBalanceID, organizationID, status, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update working trial balance status "+workingTrialBalanceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
