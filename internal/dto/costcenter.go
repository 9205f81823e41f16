package dto

import "github.com/ksiegowo/ksiegowo_backend/internal/core/domain"

// CreateCostCenterRequest defines the payload for creating a cost center.
type CreateCostCenterRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// UpdateCostCenterRequest defines the payload for updating a cost center.
type UpdateCostCenterRequest struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// CostCenterResponse defines the data returned for a cost center.
type CostCenterResponse struct {
	CostCenterID string `json:"costCenterID"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	IsActive     bool   `json:"isActive"`
}

// ToCostCenterResponse converts a domain.CostCenter to its DTO.
func ToCostCenterResponse(cc *domain.CostCenter) CostCenterResponse {
	return CostCenterResponse{
		CostCenterID: cc.CostCenterID,
		Code:         cc.Code,
		Name:         cc.Name,
		IsActive:     cc.IsActive,
	}
}

// ToCostCenterResponses converts a slice of cost centers to DTOs.
func ToCostCenterResponses(centers []domain.CostCenter) []CostCenterResponse {
	responses := make([]CostCenterResponse, len(centers))
	for i := range centers {
		responses[i] = ToCostCenterResponse(&centers[i])
	}
	return responses
}
