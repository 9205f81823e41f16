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

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries, their
// lines, and the posting transaction.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalEntryRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, organization_id, entry_number, entry_date, period_id, fiscal_year_id,
	entry_type, status, description, currency_code, total_debit, total_credit,
	submitted_by, submitted_at, approved_by, approved_at, posted_by, posted_at,
	reversed_entry_id, reversing_entry_id, reversal_reason, reversed_at,
	auto_reverse_date, corrected_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, line_number, account_id, debit, credit, currency_code,
	exchange_rate, base_debit, base_credit, cost_center_id, description,
	created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.EntryID,
		&e.OrganizationID,
		&e.EntryNumber,
		&e.EntryDate,
		&e.PeriodID,
		&e.FiscalYearID,
		&e.EntryType,
		&e.Status,
		&e.Description,
		&e.CurrencyCode,
		&e.TotalDebit,
		&e.TotalCredit,
		&e.SubmittedBy,
		&e.SubmittedAt,
		&e.ApprovedBy,
		&e.ApprovedAt,
		&e.PostedBy,
		&e.PostedAt,
		&e.ReversedEntryID,
		&e.ReversingEntryID,
		&e.ReversalReason,
		&e.ReversedAt,
		&e.AutoReverseDate,
		&e.CorrectedEntryID,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan journal entry", err)
	}
	return &e, nil
}

func scanLine(row pgx.Row) (*domain.JournalLine, error) {
	var l domain.JournalLine
	err := row.Scan(
		&l.LineID,
		&l.EntryID,
		&l.LineNumber,
		&l.AccountID,
		&l.Debit,
		&l.Credit,
		&l.CurrencyCode,
		&l.ExchangeRate,
		&l.BaseDebit,
		&l.BaseCredit,
		&l.CostCenterID,
		&l.Description,
		&l.CreatedAt,
		&l.CreatedBy,
		&l.LastUpdatedAt,
		&l.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan journal line", err)
	}
	return &l, nil
}

// NextEntryNumber bumps the per-(organization, type, year, month) counter and
// returns the new value. The upsert keeps the sequence gapless under
// concurrency: the row lock taken by ON CONFLICT serializes competing calls.
func (r *PgxJournalRepository) NextEntryNumber(ctx context.Context, organizationID string, entryType domain.EntryType, year int, month int) (int64, error) {
	query := `
		INSERT INTO entry_number_sequences (organization_id, entry_type, year, month, counter)
		VALUES ($1, $2, $3, $4, 1)
		ON CONFLICT (organization_id, entry_type, year, month)
		DO UPDATE SET counter = entry_number_sequences.counter + 1
		RETURNING counter;
	`
	var counter int64
	if err := r.Pool.QueryRow(ctx, query, organizationID, entryType, year, month).Scan(&counter); err != nil {
		return 0, apperrors.NewAppError(500, "failed to advance entry number sequence", err)
	}
	return counter, nil
}

func queueLineInserts(batch *pgx.Batch, lines []domain.JournalLine) {
	query := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	for _, l := range lines {
		batch.Queue(query,
			l.LineID,
			l.EntryID,
			l.LineNumber,
			l.AccountID,
			l.Debit,
			l.Credit,
			l.CurrencyCode,
			l.ExchangeRate,
			l.BaseDebit,
			l.BaseCredit,
			l.CostCenterID,
			l.Description,
			l.CreatedAt,
			l.CreatedBy,
			l.LastUpdatedAt,
			l.LastUpdatedBy,
		)
	}
}

func insertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28);
	`
	_, err := tx.Exec(ctx, query,
		entry.EntryID,
		entry.OrganizationID,
		entry.EntryNumber,
		entry.EntryDate,
		entry.PeriodID,
		entry.FiscalYearID,
		entry.EntryType,
		entry.Status,
		entry.Description,
		entry.CurrencyCode,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.SubmittedBy,
		entry.SubmittedAt,
		entry.ApprovedBy,
		entry.ApprovedAt,
		entry.PostedBy,
		entry.PostedAt,
		entry.ReversedEntryID,
		entry.ReversingEntryID,
		entry.ReversalReason,
		entry.ReversedAt,
		entry.AutoReverseDate,
		entry.CorrectedEntryID,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("entry number " + entry.EntryNumber + " already exists")
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+entry.EntryID, err)
	}

	batch := &pgx.Batch{}
	queueLineInserts(batch, entry.Lines)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for entry "+entry.EntryID, err)
	}
	return nil
}

// SaveEntry inserts the entry header together with its lines.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertEntryInTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1 AND organization_id = $2;`
	return scanEntry(r.Pool.QueryRow(ctx, query, entryID, organizationID))
}

func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = $1 ORDER BY line_number;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	var lines []domain.JournalLine
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate lines for entry "+entryID, err)
	}
	return lines, nil
}

func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	result := make(map[string][]domain.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = ANY($1) ORDER BY entry_id, line_number;`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entries", err)
	}
	defer rows.Close()

	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		result[line.EntryID] = append(result[line.EntryID], *line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate entry lines", err)
	}
	return result, nil
}

// ListEntries returns a page of entries newest-first with token-based cursor
// pagination on (entry_date, created_at).
func (r *PgxJournalRepository) ListEntries(ctx context.Context, organizationID string, q portsrepo.ListEntriesQuery) ([]domain.JournalEntry, *string, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1 // one extra row decides whether a next page exists

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE organization_id = $1`
	args := []any{organizationID}

	addArg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if q.Status != nil {
		query += ` AND status = ` + addArg(*q.Status)
	}
	if q.EntryType != nil {
		query += ` AND entry_type = ` + addArg(*q.EntryType)
	}
	if q.PeriodID != nil {
		query += ` AND period_id = ` + addArg(*q.PeriodID)
	}
	if q.DateFrom != nil {
		query += ` AND entry_date::date >= ` + addArg(*q.DateFrom) + `::date`
	}
	if q.DateTo != nil {
		query += ` AND entry_date::date <= ` + addArg(*q.DateTo) + `::date`
	}
	if q.SearchText != nil && *q.SearchText != "" {
		p := addArg("%" + *q.SearchText + "%")
		query += ` AND (entry_number ILIKE ` + p + ` OR description ILIKE ` + p + `)`
	}
	if q.NextToken != nil && *q.NextToken != "" {
		lastDate, lastCreated, err := pagination.DecodeToken(*q.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		pd := addArg(lastDate)
		pc := addArg(lastCreated)
		query += ` AND (entry_date, created_at) < (` + pd + `, ` + pc + `)`
	}

	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT ` + addArg(fetchLimit) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate journal entries", err)
	}

	var nextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextToken = &token
	}
	return entries, nextToken, nil
}

// UpdateEntry rewrites the header and replaces all lines in one transaction.
func (r *PgxJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		UPDATE journal_entries
		SET entry_date = $3, period_id = $4, fiscal_year_id = $5, description = $6,
		    currency_code = $7, total_debit = $8, total_credit = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE entry_id = $1 AND organization_id = $2;
	`
	tag, err := tx.Exec(ctx, headerQuery,
		entry.EntryID,
		entry.OrganizationID,
		entry.EntryDate,
		entry.PeriodID,
		entry.FiscalYearID,
		entry.Description,
		entry.CurrencyCode,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if entry.Lines != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
			return apperrors.NewAppError(500, "failed to delete lines for entry "+entry.EntryID, err)
		}
		batch := &pgx.Batch{}
		queueLineInserts(batch, entry.Lines)
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.NewAppError(500, "failed to replace lines for entry "+entry.EntryID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// UpdateEntryWorkflow persists status and approval metadata without touching
// lines or totals.
func (r *PgxJournalRepository) UpdateEntryWorkflow(ctx context.Context, entry domain.JournalEntry) error {
	query := `
		UPDATE journal_entries
		SET status = $3, submitted_by = $4, submitted_at = $5, approved_by = $6, approved_at = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE entry_id = $1 AND organization_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		entry.EntryID,
		entry.OrganizationID,
		entry.Status,
		entry.SubmittedBy,
		entry.SubmittedAt,
		entry.ApprovedBy,
		entry.ApprovedAt,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update workflow state for entry "+entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEntry removes a draft entry with its lines. The status guard is
// enforced here as well so a concurrent posting cannot race the delete.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, organizationID, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for entry "+entryID, err)
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM journal_entries WHERE entry_id = $1 AND organization_id = $2 AND status = $3;`,
		entryID, organizationID, domain.EntryDraft,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// PostEntry commits an entry into the general ledger in a single transaction:
// the covering period is re-checked under a row lock, the entry flips to
// POSTED only from DRAFT/PENDING, ledger records are appended, and the
// balance deltas are applied as atomic increments.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, entry domain.JournalEntry, records []domain.LedgerRecord, deltas []domain.BalanceDelta) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Lock the period row so a concurrent close cannot slip between the
	// validation and the inserts.
	var periodStatus domain.PeriodStatus
	err = tx.QueryRow(ctx,
		`SELECT status FROM accounting_periods WHERE period_id = $1 AND organization_id = $2 FOR UPDATE;`,
		entry.PeriodID, entry.OrganizationID,
	).Scan(&periodStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock period "+entry.PeriodID, err)
	}
	if !periodStatus.AcceptsPosting() {
		return apperrors.NewAppError(412, "period "+entry.PeriodID+" does not accept postings", apperrors.ErrPreconditionFailed)
	}

	statusQuery := `
		UPDATE journal_entries
		SET status = $3, posted_by = $4, posted_at = $5, last_updated_at = $6, last_updated_by = $7
		WHERE entry_id = $1 AND organization_id = $2 AND status IN ($8, $9);
	`
	tag, err := tx.Exec(ctx, statusQuery,
		entry.EntryID,
		entry.OrganizationID,
		domain.EntryPosted,
		entry.PostedBy,
		entry.PostedAt,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
		domain.EntryDraft,
		domain.EntryPending,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry "+entry.EntryID+" as posted", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("entry " + entry.EntryID + " is no longer postable")
	}

	batch := &pgx.Batch{}
	recordQuery := `
		INSERT INTO ledger_records (record_id, organization_id, entry_id, line_id, account_id, period_id,
			entry_date, entry_type, debit, credit, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, rec := range records {
		batch.Queue(recordQuery,
			rec.RecordID,
			rec.OrganizationID,
			rec.EntryID,
			rec.LineID,
			rec.AccountID,
			rec.PeriodID,
			rec.EntryDate,
			rec.EntryType,
			rec.Debit,
			rec.Credit,
			rec.CreatedAt,
			rec.CreatedBy,
		)
	}

	balanceQuery := `
		INSERT INTO account_balances (account_id, period_id, organization_id, opening_balance,
			debit_movements, credit_movements, closing_balance, last_updated_at)
		VALUES ($1, $2, $3, 0, $4, $5, $6, $7)
		ON CONFLICT (account_id, period_id)
		DO UPDATE SET
			debit_movements  = account_balances.debit_movements + EXCLUDED.debit_movements,
			credit_movements = account_balances.credit_movements + EXCLUDED.credit_movements,
			closing_balance  = account_balances.closing_balance + EXCLUDED.closing_balance,
			last_updated_at  = EXCLUDED.last_updated_at;
	`
	for _, d := range deltas {
		batch.Queue(balanceQuery,
			d.AccountID,
			d.PeriodID,
			entry.OrganizationID,
			d.Debit,
			d.Credit,
			d.ClosingDelta,
			entry.LastUpdatedAt,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to write ledger for entry "+entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// SaveReversal inserts the reversing entry and marks the original as REVERSED
// with linkage in one transaction.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, reversing domain.JournalEntry, originalEntryID string, reason string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertEntryInTx(ctx, tx, reversing); err != nil {
		return err
	}

	linkQuery := `
		UPDATE journal_entries
		SET status = $3, reversing_entry_id = $4, reversal_reason = $5, reversed_at = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE entry_id = $1 AND organization_id = $2 AND status = $9 AND reversing_entry_id IS NULL;
	`
	tag, err := tx.Exec(ctx, linkQuery,
		originalEntryID,
		reversing.OrganizationID,
		domain.EntryReversed,
		reversing.EntryID,
		reason,
		reversing.ReversedAt,
		reversing.LastUpdatedAt,
		reversing.LastUpdatedBy,
		domain.EntryPosted,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link reversal to entry "+originalEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("entry " + originalEntryID + " is not reversible")
	}

	return r.Commit(ctx, tx)
}

func (r *PgxJournalRepository) SetAutoReverseDate(ctx context.Context, organizationID, entryID string, date *time.Time, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET auto_reverse_date = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1 AND organization_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, organizationID, date, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set auto-reverse date for entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListEntriesDueForAutoReversal returns posted entries whose scheduled
// reversal date has arrived. Already-reversed entries drop out via the status
// filter, which makes the sweep idempotent.
func (r *PgxJournalRepository) ListEntriesDueForAutoReversal(ctx context.Context, organizationID string, asOf time.Time) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE organization_id = $1 AND status = $2
		  AND auto_reverse_date IS NOT NULL AND auto_reverse_date::date <= $3::date
		ORDER BY auto_reverse_date, entry_number;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, domain.EntryPosted, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list entries due for auto-reversal", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate due entries", err)
	}
	return entries, nil
}
