package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ksiegowo/ksiegowo_backend/internal/apperrors"
	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	portsrepo "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/repositories"
)

type PgxCostCenterRepository struct {
	BaseRepository
}

func newPgxCostCenterRepository(pool *pgxpool.Pool) portsrepo.CostCenterRepositoryFacade {
	return &PgxCostCenterRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CostCenterRepositoryFacade = (*PgxCostCenterRepository)(nil)

const costCenterColumns = `cost_center_id, organization_id, code, name, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCostCenter(row pgx.Row) (*domain.CostCenter, error) {
	var cc domain.CostCenter
	err := row.Scan(
		&cc.CostCenterID,
		&cc.OrganizationID,
		&cc.Code,
		&cc.Name,
		&cc.IsActive,
		&cc.CreatedAt,
		&cc.CreatedBy,
		&cc.LastUpdatedAt,
		&cc.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan cost center", err)
	}
	return &cc, nil
}

func (r *PgxCostCenterRepository) SaveCostCenter(ctx context.Context, costCenter domain.CostCenter) error {
	query := `
		INSERT INTO cost_centers (` + costCenterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		costCenter.CostCenterID,
		costCenter.OrganizationID,
		costCenter.Code,
		costCenter.Name,
		costCenter.IsActive,
		costCenter.CreatedAt,
		costCenter.CreatedBy,
		costCenter.LastUpdatedAt,
		costCenter.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("cost center code " + costCenter.Code + " already exists")
		}
		return apperrors.NewAppError(500, "failed to insert cost center "+costCenter.CostCenterID, err)
	}
	return nil
}

func (r *PgxCostCenterRepository) FindCostCenterByID(ctx context.Context, organizationID, costCenterID string) (*domain.CostCenter, error) {
	query := `SELECT ` + costCenterColumns + ` FROM cost_centers WHERE cost_center_id = $1 AND organization_id = $2;`
	return scanCostCenter(r.Pool.QueryRow(ctx, query, costCenterID, organizationID))
}

func (r *PgxCostCenterRepository) FindCostCentersByIDs(ctx context.Context, organizationID string, costCenterIDs []string) (map[string]domain.CostCenter, error) {
	result := make(map[string]domain.CostCenter, len(costCenterIDs))
	if len(costCenterIDs) == 0 {
		return result, nil
	}
	query := `SELECT ` + costCenterColumns + ` FROM cost_centers WHERE organization_id = $1 AND cost_center_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, organizationID, costCenterIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query cost centers by IDs", err)
	}
	defer rows.Close()

	for rows.Next() {
		cc, err := scanCostCenter(rows)
		if err != nil {
			return nil, err
		}
		result[cc.CostCenterID] = *cc
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate cost centers", err)
	}
	return result, nil
}

func (r *PgxCostCenterRepository) ListCostCenters(ctx context.Context, organizationID string, includeInactive bool) ([]domain.CostCenter, error) {
	query := `SELECT ` + costCenterColumns + ` FROM cost_centers WHERE organization_id = $1`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list cost centers", err)
	}
	defer rows.Close()

	var costCenters []domain.CostCenter
	for rows.Next() {
		cc, err := scanCostCenter(rows)
		if err != nil {
			return nil, err
		}
		costCenters = append(costCenters, *cc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate cost centers", err)
	}
	return costCenters, nil
}

func (r *PgxCostCenterRepository) UpdateCostCenter(ctx context.Context, costCenter domain.CostCenter) error {
	query := `
		UPDATE cost_centers
		SET name = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE cost_center_id = $1 AND organization_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		costCenter.CostCenterID,
		costCenter.OrganizationID,
		costCenter.Name,
		costCenter.IsActive,
		costCenter.LastUpdatedAt,
		costCenter.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update cost center "+costCenter.CostCenterID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
