package repositories

import (
	"context"
	"time"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
)

// LedgerQuery carries the filters for reading an account's ledger rows.
type LedgerQuery struct {
	PeriodID   *string
	DateFrom   *time.Time
	DateTo     *time.Time
	EntryType  *domain.EntryType
	SearchText *string // Matched against entry number and description
	Ascending  bool    // Chronological order; required for running balances
	Limit      int
	NextToken  *string
}

// LedgerRepositoryFacade defines read and aggregate operations over the
// append-only general ledger plus maintenance of account balance rows.
// Ledger records themselves are written only by PostEntry.
type LedgerRepositoryFacade interface {
	ListLedgerRecords(ctx context.Context, organizationID, accountID string, q LedgerQuery) ([]domain.LedgerRecord, *string, error)

	// SumMovements totals an account's ledger debits and credits up to and
	// including the given date (all time when nil).
	SumMovements(ctx context.Context, organizationID, accountID string, upTo *time.Time) (domain.MovementTotals, error)
	SumMovementsForPeriod(ctx context.Context, organizationID, accountID, periodID string) (domain.MovementTotals, error)

	// SumMovementsByAccount aggregates debit/credit totals per account over a
	// date range in one scan. Accounts without activity are absent from the map.
	SumMovementsByAccount(ctx context.Context, organizationID string, from, to *time.Time) (map[string]domain.MovementTotals, error)

	FindAccountBalance(ctx context.Context, accountID, periodID string) (*domain.AccountBalance, error)
	UpsertAccountBalance(ctx context.Context, balance domain.AccountBalance) error
	ListAccountBalancesForPeriod(ctx context.Context, organizationID, periodID string) ([]domain.AccountBalance, error)
}
