package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrganizationRepo: newPgxOrganizationRepository(dbPool),
		AccountRepo:      newPgxAccountRepository(dbPool),
		FiscalRepo:       newPgxFiscalRepository(dbPool),
		JournalRepo:      newPgxJournalRepository(dbPool),
		LedgerRepo:       newPgxLedgerRepository(dbPool),
		TrialBalanceRepo: newPgxWorkingTrialBalanceRepository(dbPool),
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		CostCenterRepo:   newPgxCostCenterRepository(dbPool),
		AuditRepo:        newPgxAuditRepository(dbPool),
	}
}
