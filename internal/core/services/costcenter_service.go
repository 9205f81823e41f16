package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	portsrepo "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/repositories"
	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
)

// newUUID is indirected for clarity at call sites in this package.
func newUUID() string { return uuid.NewString() }

// costCenterService manages the analytic cost center dimension.
type costCenterService struct {
	BaseService
	costCenterRepo portsrepo.CostCenterRepositoryFacade
}

// NewCostCenterService creates a new CostCenterService.
func NewCostCenterService(costCenterRepo portsrepo.CostCenterRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade, opts ...Option) portssvc.CostCenterSvcFacade {
	s := &costCenterService{
		BaseService:    newBaseService(auditRepo),
		costCenterRepo: costCenterRepo,
	}
	applyOptions(&s.BaseService, opts)
	return s
}

var _ portssvc.CostCenterSvcFacade = (*costCenterService)(nil)

func (s *costCenterService) CreateCostCenter(ctx context.Context, organizationID string, req dto.CreateCostCenterRequest, creatorUserID string) (*domain.CostCenter, error) {
	costCenter := domain.CostCenter{
		CostCenterID:   newUUID(),
		OrganizationID: organizationID,
		Code:           req.Code,
		Name:           req.Name,
		IsActive:       true,
		AuditFields:    s.newAuditFields(creatorUserID),
	}

	if err := s.costCenterRepo.SaveCostCenter(ctx, costCenter); err != nil {
		return nil, fmt.Errorf("failed to create cost center: %w", err)
	}

	s.RecordAudit(ctx, organizationID, creatorUserID, "cost_center.create", "cost_center", costCenter.CostCenterID, map[string]any{"code": costCenter.Code})
	return &costCenter, nil
}

func (s *costCenterService) GetCostCenterByID(ctx context.Context, organizationID string, costCenterID string) (*domain.CostCenter, error) {
	return s.costCenterRepo.FindCostCenterByID(ctx, organizationID, costCenterID)
}

func (s *costCenterService) ListCostCenters(ctx context.Context, organizationID string, includeInactive bool) ([]domain.CostCenter, error) {
	return s.costCenterRepo.ListCostCenters(ctx, organizationID, includeInactive)
}

func (s *costCenterService) UpdateCostCenter(ctx context.Context, organizationID string, costCenterID string, req dto.UpdateCostCenterRequest, requestingUserID string) (*domain.CostCenter, error) {
	costCenter, err := s.costCenterRepo.FindCostCenterByID(ctx, organizationID, costCenterID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		costCenter.Name = *req.Name
	}
	if req.IsActive != nil {
		costCenter.IsActive = *req.IsActive
	}
	s.touchAuditFields(&costCenter.AuditFields, requestingUserID)

	if err := s.costCenterRepo.UpdateCostCenter(ctx, *costCenter); err != nil {
		return nil, fmt.Errorf("failed to update cost center: %w", err)
	}

	s.RecordAudit(ctx, organizationID, requestingUserID, "cost_center.update", "cost_center", costCenterID, nil)
	return costCenter, nil
}
