package services

import (
	"context"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
)

// CostCenterSvcFacade defines operations for cost centers
type CostCenterSvcFacade interface {
	// CreateCostCenter persists a new cost center.
	CreateCostCenter(ctx context.Context, organizationID string, req dto.CreateCostCenterRequest, creatorUserID string) (*domain.CostCenter, error)

	// GetCostCenterByID retrieves a specific cost center by its ID.
	GetCostCenterByID(ctx context.Context, organizationID string, costCenterID string) (*domain.CostCenter, error)

	// ListCostCenters retrieves the cost centers of an organization.
	ListCostCenters(ctx context.Context, organizationID string, includeInactive bool) ([]domain.CostCenter, error)

	// UpdateCostCenter updates cost center details or toggles activity.
	UpdateCostCenter(ctx context.Context, organizationID string, costCenterID string, req dto.UpdateCostCenterRequest, requestingUserID string) (*domain.CostCenter, error)
}
