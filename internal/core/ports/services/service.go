package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Organization OrganizationSvcFacade
	Account      AccountSvcFacade
	Fiscal       FiscalSvcFacade
	Journal      JournalSvcFacade
	Reversal     ReversalSvc
	Ledger       LedgerSvcFacade
	TrialBalance TrialBalanceSvcFacade
	Currency     CurrencySvcFacade
	ExchangeRate ExchangeRateSvcFacade
	CostCenter   CostCenterSvcFacade

	// Optional capabilities; wired to Unsupported implementations unless a
	// deployment provides real ones.
	Recurring RecurringEntryScheduler
	Rules     CustomRuleSource
	TaxExport TaxExportStore
}
