package dto

import "github.com/ksiegowo/ksiegowo_backend/internal/core/domain"

// CreateOrganizationRequest defines the payload for creating an organization.
type CreateOrganizationRequest struct {
	Name             string `json:"name" binding:"required"`
	NIP              string `json:"nip" binding:"omitempty,len=10,numeric,nip"`
	BaseCurrencyCode string `json:"baseCurrencyCode" binding:"omitempty,len=3"`
}

// UpdateOrganizationRequest defines the payload for updating an organization.
type UpdateOrganizationRequest struct {
	Name *string `json:"name,omitempty"`
	NIP  *string `json:"nip,omitempty" binding:"omitempty,len=10,numeric,nip"`
}

// OrganizationResponse defines the data returned for an organization.
type OrganizationResponse struct {
	OrganizationID   string `json:"organizationID"`
	Name             string `json:"name"`
	NIP              string `json:"nip"`
	BaseCurrencyCode string `json:"baseCurrencyCode"`
	IsActive         bool   `json:"isActive"`
}

// ToOrganizationResponse converts a domain.Organization to its DTO.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID:   o.OrganizationID,
		Name:             o.Name,
		NIP:              o.NIP,
		BaseCurrencyCode: o.BaseCurrencyCode,
		IsActive:         o.IsActive,
	}
}
