package domain

import "time"

// AuditRecord is one append-only trail entry describing a mutating call.
// Writing the trail is best-effort: a failing audit sink never blocks the
// primary operation, only surfaces in the logs.
type AuditRecord struct {
	AuditID        string         `json:"auditID"` // Primary key (UUID)
	OrganizationID string         `json:"organizationID"`
	ActorID        string         `json:"actorID"`
	Action         string         `json:"action"`     // e.g. "journal_entry.post"
	EntityType     string         `json:"entityType"` // e.g. "journal_entry"
	EntityID       string         `json:"entityID"`
	Details        map[string]any `json:"details,omitempty"` // Before/after context where applicable
	OccurredAt     time.Time      `json:"occurredAt"`
}
