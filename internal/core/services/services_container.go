package services

import (
	portsrepo "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/repositories"
	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/platform/cache"
	"github.com/ksiegowo/ksiegowo_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	reportCache := cache.New(cfg.CacheSize, cfg.CacheTTL)

	// Optional capabilities default to honest unsupported implementations; a
	// deployment swaps in real ones after construction.
	container.Recurring = NewUnsupportedRecurringScheduler()
	container.Rules = NewUnsupportedRuleSource()
	container.TaxExport = NewUnsupportedTaxExportStore()

	container.Organization = NewOrganizationService(repos.OrganizationRepo, repos.AuditRepo, cfg.BaseCurrencyCode)
	container.Account = NewAccountService(repos.AccountRepo, repos.LedgerRepo, repos.AuditRepo)
	container.Fiscal = NewFiscalService(repos.FiscalRepo, repos.AuditRepo)
	container.Currency = NewCurrencyService(repos.CurrencyRepo, repos.AuditRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, repos.CurrencyRepo, repos.AuditRepo)
	container.CostCenter = NewCostCenterService(repos.CostCenterRepo, repos.AuditRepo)

	// Journal and ledger services depend on the narrow reader views of the
	// account and fiscal facades.
	accountReader := container.Account.(portssvc.AccountReaderSvc)
	periodResolver := container.Fiscal.(portssvc.PeriodResolverSvc)

	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.OrganizationRepo,
		repos.CostCenterRepo,
		accountReader,
		periodResolver,
		container.ExchangeRate,
		container.Rules,
		repos.AuditRepo,
		reportCache,
	)
	container.Reversal = NewReversalService(repos.JournalRepo, periodResolver, container.Journal, repos.AuditRepo)
	container.Ledger = NewLedgerService(repos.LedgerRepo, accountReader, periodResolver, repos.AuditRepo, reportCache)
	container.TrialBalance = NewTrialBalanceService(repos.LedgerRepo, repos.TrialBalanceRepo, accountReader, repos.AuditRepo, reportCache)

	return container
}
