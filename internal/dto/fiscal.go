package dto

import (
	"time"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
)

// CreateFiscalYearRequest defines the payload for creating a fiscal year.
// Monthly periods are generated automatically across the date range.
type CreateFiscalYearRequest struct {
	Code      string    `json:"code" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// TransitionPeriodRequest moves an accounting period to a new status.
type TransitionPeriodRequest struct {
	Status string `json:"status" binding:"required,oneof=OPEN SOFT_CLOSED CLOSED"`
}

// FiscalYearResponse defines the data returned for a fiscal year.
type FiscalYearResponse struct {
	FiscalYearID string    `json:"fiscalYearID"`
	Code         string    `json:"code"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Status       string    `json:"status"`
	IsCurrent    bool      `json:"isCurrent"`
}

// PeriodResponse defines the data returned for an accounting period.
type PeriodResponse struct {
	PeriodID     string    `json:"periodID"`
	FiscalYearID string    `json:"fiscalYearID"`
	Sequence     int       `json:"sequence"`
	Name         string    `json:"name"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Status       string    `json:"status"`
}

// ToFiscalYearResponse converts a domain.FiscalYear to its DTO.
func ToFiscalYearResponse(fy *domain.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		FiscalYearID: fy.FiscalYearID,
		Code:         fy.Code,
		StartDate:    fy.StartDate,
		EndDate:      fy.EndDate,
		Status:       string(fy.Status),
		IsCurrent:    fy.IsCurrent,
	}
}

// ToFiscalYearResponses converts a slice of fiscal years to DTOs.
func ToFiscalYearResponses(years []domain.FiscalYear) []FiscalYearResponse {
	responses := make([]FiscalYearResponse, len(years))
	for i := range years {
		responses[i] = ToFiscalYearResponse(&years[i])
	}
	return responses
}

// ToPeriodResponse converts a domain.AccountingPeriod to its DTO.
func ToPeriodResponse(p *domain.AccountingPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:     p.PeriodID,
		FiscalYearID: p.FiscalYearID,
		Sequence:     p.Sequence,
		Name:         p.Name,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		Status:       string(p.Status),
	}
}

// ToPeriodResponses converts a slice of periods to DTOs.
func ToPeriodResponses(periods []domain.AccountingPeriod) []PeriodResponse {
	responses := make([]PeriodResponse, len(periods))
	for i := range periods {
		responses[i] = ToPeriodResponse(&periods[i])
	}
	return responses
}
