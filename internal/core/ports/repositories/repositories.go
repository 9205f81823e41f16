package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	OrganizationRepo OrganizationRepositoryFacade
	AccountRepo      AccountRepositoryFacade
	FiscalRepo       FiscalRepositoryFacade
	JournalRepo      JournalEntryRepositoryFacade
	LedgerRepo       LedgerRepositoryFacade
	TrialBalanceRepo WorkingTrialBalanceRepositoryFacade
	CurrencyRepo     CurrencyRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	CostCenterRepo   CostCenterRepositoryFacade
	AuditRepo        AuditRepositoryFacade
}
