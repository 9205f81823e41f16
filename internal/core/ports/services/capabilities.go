package services

import (
	"context"
	"time"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/validation"
)

// Optional capabilities. Deployments that do not provide an implementation
// get honest Unsupported stand-ins that fail with apperrors.ErrUnsupported
// instead of silently doing nothing.

// RecurringEntryScheduler generates journal entries from recurring templates.
type RecurringEntryScheduler interface {
	// ScheduleRecurring registers a template entry to be materialized on a
	// cadence.
	ScheduleRecurring(ctx context.Context, organizationID string, templateEntryID string, cronSpec string, requestingUserID string) error

	// MaterializeDue creates draft entries for every registration due as of
	// the given time, returning the created entry IDs.
	MaterializeDue(ctx context.Context, organizationID string, asOf time.Time) ([]string, error)
}

// CustomRuleSource supplies organization-defined validation rules evaluated
// alongside the built-in set.
type CustomRuleSource interface {
	RulesFor(ctx context.Context, organizationID string) ([]validation.Rule, error)
}

// TaxExportStore produces statutory export artifacts (JPK ledgers) from
// posted data.
type TaxExportStore interface {
	ExportLedger(ctx context.Context, organizationID string, fiscalYearID string) ([]byte, error)
}
