package repositories

import (
	"context"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
)

// AuditRepositoryFacade is the append-only audit sink. SaveAuditRecord
// failures are logged by callers but never block the primary operation.
type AuditRepositoryFacade interface {
	SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error
	ListAuditRecords(ctx context.Context, organizationID, entityType, entityID string, limit int) ([]domain.AuditRecord, error)
}
