package dto

import "github.com/ksiegowo/ksiegowo_backend/internal/core/domain"

// CreateAccountRequest defines the payload for creating an account.
// NormalBalance defaults from the account type when omitted.
type CreateAccountRequest struct {
	Code               string  `json:"code" binding:"required"`
	Name               string  `json:"name" binding:"required"`
	AccountType        string  `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	NormalBalance      *string `json:"normalBalance,omitempty" binding:"omitempty,oneof=DEBIT CREDIT"`
	ParentAccountID    *string `json:"parentAccountID,omitempty"`
	AllowsPosting      *bool   `json:"allowsPosting,omitempty"` // Defaults to true
	RequiresCostCenter bool    `json:"requiresCostCenter"`
	CurrencyCode       string  `json:"currencyCode" binding:"omitempty,len=3"`
	Description        string  `json:"description"`
}

// UpdateAccountRequest defines the payload for updating an account. Code,
// type, and normal balance are immutable once the account exists.
type UpdateAccountRequest struct {
	Name               *string `json:"name,omitempty"`
	Description        *string `json:"description,omitempty"`
	RequiresCostCenter *bool   `json:"requiresCostCenter,omitempty"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID          string  `json:"accountID"`
	Code               string  `json:"code"`
	Name               string  `json:"name"`
	AccountType        string  `json:"accountType"`
	NormalBalance      string  `json:"normalBalance"`
	ParentAccountID    *string `json:"parentAccountID,omitempty"`
	Level              int     `json:"level"`
	Path               string  `json:"path"`
	AllowsPosting      bool    `json:"allowsPosting"`
	RequiresCostCenter bool    `json:"requiresCostCenter"`
	CurrencyCode       string  `json:"currencyCode"`
	Description        string  `json:"description"`
	IsActive           bool    `json:"isActive"`
}

// ToAccountResponse converts a domain.Account to its DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:          a.AccountID,
		Code:               a.Code,
		Name:               a.Name,
		AccountType:        string(a.AccountType),
		NormalBalance:      string(a.NormalBalance),
		ParentAccountID:    a.ParentAccountID,
		Level:              a.Level,
		Path:               a.Path,
		AllowsPosting:      a.AllowsPosting,
		RequiresCostCenter: a.RequiresCostCenter,
		CurrencyCode:       a.CurrencyCode,
		Description:        a.Description,
		IsActive:           a.IsActive,
	}
}

// ToAccountResponses converts a slice of accounts to DTOs.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
