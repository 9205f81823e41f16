package repositories

import (
	"context"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
)

// OrganizationRepositoryFacade defines persistence operations for
// organizations (tenants).
type OrganizationRepositoryFacade interface {
	SaveOrganization(ctx context.Context, org domain.Organization) error
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
	UpdateOrganization(ctx context.Context, org domain.Organization) error
}
