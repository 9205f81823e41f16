package services

import (
	"context"
	"time"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerReaderSvc defines read operations over the immutable general ledger
type LedgerReaderSvc interface {
	// GetAccountLedger retrieves the ledger rows of one account, optionally
	// annotated with running balances when read chronologically.
	GetAccountLedger(ctx context.Context, organizationID string, accountID string, params dto.AccountLedgerParams) (*dto.AccountLedgerResponse, error)

	// GetLedgerReport builds the opening/movements/closing report across the
	// chart of accounts for a period or date range.
	GetLedgerReport(ctx context.Context, organizationID string, params dto.LedgerReportParams) (*dto.LedgerReportResponse, error)
}

// BalanceCalculatorSvc defines balance computations over the ledger
type BalanceCalculatorSvc interface {
	// CalculateAccountBalance computes an account's as-of balance from ledger
	// records, signed by its normal-balance side.
	CalculateAccountBalance(ctx context.Context, organizationID string, accountID string, asOf time.Time) (*dto.AccountBalanceResponse, error)

	// GetPeriodBalances returns the maintained per-account balance rows of a
	// period.
	GetPeriodBalances(ctx context.Context, organizationID string, periodID string) ([]domain.AccountBalance, error)

	// RecalculatePeriodBalances rebuilds an account's balance row for a period
	// from the ledger. Idempotent; used as a consistency repair.
	RecalculatePeriodBalances(ctx context.Context, organizationID string, accountID string, periodID string) (*domain.AccountBalance, error)

	// NetMovement returns an account's signed net movement over a date range.
	NetMovement(ctx context.Context, organizationID string, accountID string, from, to time.Time) (decimal.Decimal, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	BalanceCalculatorSvc
}
