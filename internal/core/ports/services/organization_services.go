package services

import (
	"context"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
)

// OrganizationReaderSvc defines read operations for organization data
type OrganizationReaderSvc interface {
	// GetOrganizationByID retrieves a specific organization by its ID.
	GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListOrganizations retrieves all organizations visible to the caller.
	ListOrganizations(ctx context.Context, userID string) ([]domain.Organization, error)
}

// OrganizationWriterSvc defines write operations for organization data
type OrganizationWriterSvc interface {
	// CreateOrganization persists a new organization.
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error)

	// UpdateOrganization updates organization details.
	UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, requestingUserID string) (*domain.Organization, error)

	// DeactivateOrganization marks an organization as inactive.
	DeactivateOrganization(ctx context.Context, organizationID string, requestingUserID string) error
}

// OrganizationSvcFacade combines all organization-related service interfaces
type OrganizationSvcFacade interface {
	OrganizationReaderSvc
	OrganizationWriterSvc
}
