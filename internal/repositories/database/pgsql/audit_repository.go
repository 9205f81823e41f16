package pgsql

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ksiegowo/ksiegowo_backend/internal/apperrors"
	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	portsrepo "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/repositories"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the append-only audit
// trail.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

func (r *PgxAuditRepository) SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error {
	var details []byte
	if record.Details != nil {
		var err error
		details, err = json.Marshal(record.Details)
		if err != nil {
			return apperrors.NewAppError(500, "failed to marshal audit details", err)
		}
	}

	query := `
		INSERT INTO audit_records (audit_id, organization_id, actor_id, action, entity_type, entity_id, details, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		record.AuditID,
		record.OrganizationID,
		record.ActorID,
		record.Action,
		record.EntityType,
		record.EntityID,
		details,
		record.OccurredAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit record "+record.AuditID, err)
	}
	return nil
}

func (r *PgxAuditRepository) ListAuditRecords(ctx context.Context, organizationID, entityType, entityID string, limit int) ([]domain.AuditRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query := `
		SELECT audit_id, organization_id, actor_id, action, entity_type, entity_id, details, occurred_at
		FROM audit_records
		WHERE organization_id = $1 AND entity_type = $2 AND entity_id = $3
		ORDER BY occurred_at DESC
		LIMIT $4;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, entityType, entityID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list audit records", err)
	}
	defer rows.Close()

	var records []domain.AuditRecord
	for rows.Next() {
		var rec domain.AuditRecord
		var details []byte
		err := rows.Scan(
			&rec.AuditID,
			&rec.OrganizationID,
			&rec.ActorID,
			&rec.Action,
			&rec.EntityType,
			&rec.EntityID,
			&details,
			&rec.OccurredAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit record", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &rec.Details); err != nil {
				return nil, apperrors.NewAppError(500, "failed to unmarshal audit details", err)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate audit records", err)
	}
	return records, nil
}
