package services

import (
	"fmt"
	"log/slog"

	"context"

	"github.com/google/uuid"

	"github.com/ksiegowo/ksiegowo_backend/internal/apperrors"
	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	portsrepo "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/repositories"
	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
)

// organizationService manages the tenant companies of the platform.
type organizationService struct {
	BaseService
	orgRepo          portsrepo.OrganizationRepositoryFacade
	baseCurrencyCode string
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade, baseCurrencyCode string, opts ...Option) portssvc.OrganizationSvcFacade {
	s := &organizationService{
		BaseService:      newBaseService(auditRepo),
		orgRepo:          orgRepo,
		baseCurrencyCode: baseCurrencyCode,
	}
	applyOptions(&s.BaseService, opts)
	return s
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

func (s *organizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error) {
	baseCurrency := req.BaseCurrencyCode
	if baseCurrency == "" {
		baseCurrency = s.baseCurrencyCode
	}

	org := domain.Organization{
		OrganizationID:   uuid.NewString(),
		Name:             req.Name,
		NIP:              req.NIP,
		BaseCurrencyCode: baseCurrency,
		IsActive:         true,
		AuditFields:      s.newAuditFields(creatorUserID),
	}

	if err := s.orgRepo.SaveOrganization(ctx, org); err != nil {
		s.LogError(ctx, err, "Failed to save organization", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	s.RecordAudit(ctx, org.OrganizationID, creatorUserID, "organization.create", "organization", org.OrganizationID, nil)
	s.LogInfo(ctx, "Organization created", slog.String("organization_id", org.OrganizationID))
	return &org, nil
}

func (s *organizationService) GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return org, nil
}

func (s *organizationService) ListOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	return s.orgRepo.ListOrganizations(ctx)
}

func (s *organizationService) UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, requestingUserID string) (*domain.Organization, error) {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.NIP != nil {
		org.NIP = *req.NIP
	}
	s.touchAuditFields(&org.AuditFields, requestingUserID)

	if err := s.orgRepo.UpdateOrganization(ctx, *org); err != nil {
		s.LogError(ctx, err, "Failed to update organization", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	s.RecordAudit(ctx, organizationID, requestingUserID, "organization.update", "organization", organizationID, nil)
	return org, nil
}

func (s *organizationService) DeactivateOrganization(ctx context.Context, organizationID string, requestingUserID string) error {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return err
	}
	if !org.IsActive {
		return fmt.Errorf("%w: organization is already inactive", apperrors.ErrConflict)
	}

	org.IsActive = false
	s.touchAuditFields(&org.AuditFields, requestingUserID)

	if err := s.orgRepo.UpdateOrganization(ctx, *org); err != nil {
		s.LogError(ctx, err, "Failed to deactivate organization", slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to deactivate organization: %w", err)
	}

	s.RecordAudit(ctx, organizationID, requestingUserID, "organization.deactivate", "organization", organizationID, nil)
	return nil
}
