package domain

// Organization is the tenant boundary of the ledger core: a bookkeeping
// client company. Every account, fiscal year, entry, and ledger row is scoped
// to exactly one organization, and cross-organization references resolve as
// not found.
type Organization struct {
	OrganizationID   string `json:"organizationID"` // Primary key (UUID)
	Name             string `json:"name"`
	NIP              string `json:"nip"`              // Polish tax identification number
	BaseCurrencyCode string `json:"baseCurrencyCode"` // Ledger currency, PLN by default
	IsActive         bool   `json:"isActive"`
	AuditFields
}
