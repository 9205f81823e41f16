package domain

// CostCenter is an organization-scoped analytic dimension that journal lines
// may reference. Accounts flagged RequiresCostCenter reject lines without one.
type CostCenter struct {
	CostCenterID   string `json:"costCenterID"` // Primary key (UUID)
	OrganizationID string `json:"organizationID"`
	Code           string `json:"code"` // Unique per organization
	Name           string `json:"name"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}
