package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ksiegowo/ksiegowo_backend/internal/apperrors"
	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	portsrepo "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/repositories"
	"github.com/ksiegowo/ksiegowo_backend/internal/utils/pagination"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for general ledger reads and
// account balance maintenance. Ledger rows are only ever written by the
// journal repository's posting transaction.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerRecordColumns = `r.record_id, r.organization_id, r.entry_id, r.line_id, r.account_id, r.period_id,
	r.entry_date, r.entry_type, r.debit, r.credit, r.created_at, r.created_by`

func scanLedgerRecord(row pgx.Row) (*domain.LedgerRecord, error) {
	var rec domain.LedgerRecord
	err := row.Scan(
		&rec.RecordID,
		&rec.OrganizationID,
		&rec.EntryID,
		&rec.LineID,
		&rec.AccountID,
		&rec.PeriodID,
		&rec.EntryDate,
		&rec.EntryType,
		&rec.Debit,
		&rec.Credit,
		&rec.CreatedAt,
		&rec.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan ledger record", err)
	}
	return &rec, nil
}

// ListLedgerRecords reads one account's ledger rows with token pagination.
// The entry join lets the search text also match entry numbers.
func (r *PgxLedgerRepository) ListLedgerRecords(ctx context.Context, organizationID, accountID string, q portsrepo.LedgerQuery) ([]domain.LedgerRecord, *string, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	fetchLimit := limit + 1

	query := `
		SELECT ` + ledgerRecordColumns + `
		FROM ledger_records r
		JOIN journal_entries e ON r.entry_id = e.entry_id
		WHERE r.organization_id = $1 AND r.account_id = $2`
	args := []any{organizationID, accountID}

	addArg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if q.PeriodID != nil {
		query += ` AND r.period_id = ` + addArg(*q.PeriodID)
	}
	if q.DateFrom != nil {
		query += ` AND r.entry_date::date >= ` + addArg(*q.DateFrom) + `::date`
	}
	if q.DateTo != nil {
		query += ` AND r.entry_date::date <= ` + addArg(*q.DateTo) + `::date`
	}
	if q.EntryType != nil {
		query += ` AND r.entry_type = ` + addArg(*q.EntryType)
	}
	if q.SearchText != nil && *q.SearchText != "" {
		p := addArg("%" + *q.SearchText + "%")
		query += ` AND (e.entry_number ILIKE ` + p + ` OR e.description ILIKE ` + p + `)`
	}

	if q.NextToken != nil && *q.NextToken != "" {
		lastDate, lastCreated, err := pagination.DecodeToken(*q.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		pd := addArg(lastDate)
		pc := addArg(lastCreated)
		if q.Ascending {
			query += ` AND (r.entry_date, r.created_at) > (` + pd + `, ` + pc + `)`
		} else {
			query += ` AND (r.entry_date, r.created_at) < (` + pd + `, ` + pc + `)`
		}
	}

	if q.Ascending {
		query += ` ORDER BY r.entry_date ASC, r.created_at ASC`
	} else {
		query += ` ORDER BY r.entry_date DESC, r.created_at DESC`
	}
	query += ` LIMIT ` + addArg(fetchLimit) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list ledger records for account "+accountID, err)
	}
	defer rows.Close()

	var records []domain.LedgerRecord
	for rows.Next() {
		rec, err := scanLedgerRecord(rows)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate ledger records", err)
	}

	var nextToken *string
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextToken = &token
	}
	return records, nextToken, nil
}

// SumMovements totals the account's debits and credits up to and including
// upTo (all time when nil).
func (r *PgxLedgerRepository) SumMovements(ctx context.Context, organizationID, accountID string, upTo *time.Time) (domain.MovementTotals, error) {
	query := `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM ledger_records
		WHERE organization_id = $1 AND account_id = $2 AND ($3::timestamptz IS NULL OR entry_date::date <= $3::date);
	`
	var totals domain.MovementTotals
	if err := r.Pool.QueryRow(ctx, query, organizationID, accountID, upTo).Scan(&totals.Debit, &totals.Credit); err != nil {
		return domain.MovementTotals{}, apperrors.NewAppError(500, "failed to sum movements for account "+accountID, err)
	}
	return totals, nil
}

func (r *PgxLedgerRepository) SumMovementsForPeriod(ctx context.Context, organizationID, accountID, periodID string) (domain.MovementTotals, error) {
	query := `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM ledger_records
		WHERE organization_id = $1 AND account_id = $2 AND period_id = $3;
	`
	var totals domain.MovementTotals
	if err := r.Pool.QueryRow(ctx, query, organizationID, accountID, periodID).Scan(&totals.Debit, &totals.Credit); err != nil {
		return domain.MovementTotals{}, apperrors.NewAppError(500, "failed to sum period movements for account "+accountID, err)
	}
	return totals, nil
}

// SumMovementsByAccount aggregates per-account totals over a date range in a
// single scan. Accounts without activity in the range are absent.
func (r *PgxLedgerRepository) SumMovementsByAccount(ctx context.Context, organizationID string, from, to *time.Time) (map[string]domain.MovementTotals, error) {
	query := `
		SELECT account_id, COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM ledger_records
		WHERE organization_id = $1
		  AND ($2::timestamptz IS NULL OR entry_date::date >= $2::date)
		  AND ($3::timestamptz IS NULL OR entry_date::date <= $3::date)
		GROUP BY account_id;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate movements by account", err)
	}
	defer rows.Close()

	result := make(map[string]domain.MovementTotals)
	for rows.Next() {
		var accountID string
		var totals domain.MovementTotals
		if err := rows.Scan(&accountID, &totals.Debit, &totals.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan movement aggregate", err)
		}
		result[accountID] = totals
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate movement aggregates", err)
	}
	return result, nil
}

func (r *PgxLedgerRepository) FindAccountBalance(ctx context.Context, accountID, periodID string) (*domain.AccountBalance, error) {
	query := `
		SELECT account_id, period_id, organization_id, opening_balance, debit_movements,
		       credit_movements, closing_balance, last_updated_at
		FROM account_balances
		WHERE account_id = $1 AND period_id = $2;
	`
	var b domain.AccountBalance
	err := r.Pool.QueryRow(ctx, query, accountID, periodID).Scan(
		&b.AccountID,
		&b.PeriodID,
		&b.OrganizationID,
		&b.OpeningBalance,
		&b.DebitMovements,
		&b.CreditMovements,
		&b.ClosingBalance,
		&b.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account balance", err)
	}
	return &b, nil
}

// UpsertAccountBalance overwrites the full balance row. Used by the
// recalculation path; incremental posting goes through PostEntry instead.
func (r *PgxLedgerRepository) UpsertAccountBalance(ctx context.Context, balance domain.AccountBalance) error {
	query := `
		INSERT INTO account_balances (account_id, period_id, organization_id, opening_balance,
			debit_movements, credit_movements, closing_balance, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (account_id, period_id)
		DO UPDATE SET
			opening_balance  = EXCLUDED.opening_balance,
			debit_movements  = EXCLUDED.debit_movements,
			credit_movements = EXCLUDED.credit_movements,
			closing_balance  = EXCLUDED.closing_balance,
			last_updated_at  = EXCLUDED.last_updated_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		balance.AccountID,
		balance.PeriodID,
		balance.OrganizationID,
		balance.OpeningBalance,
		balance.DebitMovements,
		balance.CreditMovements,
		balance.ClosingBalance,
		balance.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert account balance", err)
	}
	return nil
}

func (r *PgxLedgerRepository) ListAccountBalancesForPeriod(ctx context.Context, organizationID, periodID string) ([]domain.AccountBalance, error) {
	query := `
		SELECT b.account_id, b.period_id, b.organization_id, b.opening_balance, b.debit_movements,
		       b.credit_movements, b.closing_balance, b.last_updated_at
		FROM account_balances b
		JOIN accounts a ON b.account_id = a.account_id
		WHERE b.organization_id = $1 AND b.period_id = $2
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, periodID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list balances for period "+periodID, err)
	}
	defer rows.Close()

	var balances []domain.AccountBalance
	for rows.Next() {
		var b domain.AccountBalance
		err := rows.Scan(
			&b.AccountID,
			&b.PeriodID,
			&b.OrganizationID,
			&b.OpeningBalance,
			&b.DebitMovements,
			&b.CreditMovements,
			&b.ClosingBalance,
			&b.LastUpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account balance", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate account balances", err)
	}
	return balances, nil
}
