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

type PgxOrganizationRepository struct {
	BaseRepository
}

func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

const organizationColumns = `organization_id, name, nip, base_currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanOrganization(row pgx.Row) (*domain.Organization, error) {
	var org domain.Organization
	err := row.Scan(
		&org.OrganizationID,
		&org.Name,
		&org.NIP,
		&org.BaseCurrencyCode,
		&org.IsActive,
		&org.CreatedAt,
		&org.CreatedBy,
		&org.LastUpdatedAt,
		&org.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan organization", err)
	}
	return &org, nil
}

func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	query := `
		INSERT INTO organizations (` + organizationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		org.OrganizationID,
		org.Name,
		org.NIP,
		org.BaseCurrencyCode,
		org.IsActive,
		org.CreatedAt,
		org.CreatedBy,
		org.LastUpdatedAt,
		org.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("organization already exists")
		}
		return apperrors.NewAppError(500, "failed to insert organization "+org.OrganizationID, err)
	}
	return nil
}

func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE organization_id = $1;`
	return scanOrganization(r.Pool.QueryRow(ctx, query, organizationID))
}

func (r *PgxOrganizationRepository) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list organizations", err)
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, *org)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate organizations", err)
	}
	return orgs, nil
}

func (r *PgxOrganizationRepository) UpdateOrganization(ctx context.Context, org domain.Organization) error {
	query := `
		UPDATE organizations
		SET name = $2, nip = $3, base_currency_code = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE organization_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		org.OrganizationID,
		org.Name,
		org.NIP,
		org.BaseCurrencyCode,
		org.IsActive,
		org.LastUpdatedAt,
		org.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update organization "+org.OrganizationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
