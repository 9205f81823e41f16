package repositories

import (
	"context"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
)

// CostCenterRepositoryFacade defines persistence operations for cost centers.
type CostCenterRepositoryFacade interface {
	SaveCostCenter(ctx context.Context, costCenter domain.CostCenter) error
	FindCostCenterByID(ctx context.Context, organizationID, costCenterID string) (*domain.CostCenter, error)
	FindCostCentersByIDs(ctx context.Context, organizationID string, costCenterIDs []string) (map[string]domain.CostCenter, error)
	ListCostCenters(ctx context.Context, organizationID string, includeInactive bool) ([]domain.CostCenter, error)
	UpdateCostCenter(ctx context.Context, costCenter domain.CostCenter) error
}
