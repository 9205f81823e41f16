package domain

import "time"

// FiscalYearStatus is the lifecycle state of a fiscal year. Transitions are
// forward-only: DRAFT -> OPEN -> CLOSED -> LOCKED, with LOCKED terminal.
type FiscalYearStatus string

const (
	FiscalYearDraft  FiscalYearStatus = "DRAFT"
	FiscalYearOpen   FiscalYearStatus = "OPEN"
	FiscalYearClosed FiscalYearStatus = "CLOSED"
	FiscalYearLocked FiscalYearStatus = "LOCKED"
)

// PeriodStatus is the single canonical vocabulary for accounting period
// state, used unchanged in storage, domain, and DTOs.
type PeriodStatus string

const (
	PeriodOpen       PeriodStatus = "OPEN"
	PeriodSoftClosed PeriodStatus = "SOFT_CLOSED" // Reopenable
	PeriodClosed     PeriodStatus = "CLOSED"      // Terminal
)

// AcceptsPosting reports whether entries may be posted into a period in this
// state. Soft-closed periods reject postings but may be reopened.
func (s PeriodStatus) AcceptsPosting() bool {
	return s == PeriodOpen
}

// FiscalYear groups the accounting periods of one organization's reporting
// year. At most one fiscal year per organization carries IsCurrent=true.
type FiscalYear struct {
	FiscalYearID   string           `json:"fiscalYearID"`   // Primary key (UUID)
	OrganizationID string           `json:"organizationID"` // Tenant scope
	Code           string           `json:"code"`           // Unique per organization (e.g. "FY2025")
	StartDate      time.Time        `json:"startDate"`
	EndDate        time.Time        `json:"endDate"`
	Status         FiscalYearStatus `json:"status"`
	IsCurrent      bool             `json:"isCurrent"`
	AuditFields
}

// AccountingPeriod is one contiguous slice of a fiscal year. Period date
// ranges within a fiscal year never overlap and leave no gaps.
type AccountingPeriod struct {
	PeriodID       string       `json:"periodID"`     // Primary key (UUID)
	FiscalYearID   string       `json:"fiscalYearID"` // Owning year
	OrganizationID string       `json:"organizationID"`
	Sequence       int          `json:"sequence"` // 1-based position within the year
	Name           string       `json:"name"`     // e.g. "2025-03"
	StartDate      time.Time    `json:"startDate"`
	EndDate        time.Time    `json:"endDate"`
	Status         PeriodStatus `json:"status"`
	AuditFields
}

// Contains reports whether the given date falls inside the period's range,
// boundaries inclusive. Only the calendar date matters, not the time of day.
func (p AccountingPeriod) Contains(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	start := p.StartDate.Truncate(24 * time.Hour)
	end := p.EndDate.Truncate(24 * time.Hour)
	return !d.Before(start) && !d.After(end)
}
