package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ksiegowo/ksiegowo_backend/internal/apperrors"
	portssvc "github.com/ksiegowo/ksiegowo_backend/internal/core/ports/services"
	"github.com/ksiegowo/ksiegowo_backend/internal/core/validation"
)

// Honest stand-ins for the optional capabilities. Each returns
// apperrors.ErrUnsupported so callers can tell "not configured" apart from
// "failed", instead of a silent no-op.

type unsupportedRecurringScheduler struct{}

// NewUnsupportedRecurringScheduler returns a RecurringEntryScheduler that
// rejects every call.
func NewUnsupportedRecurringScheduler() portssvc.RecurringEntryScheduler {
	return unsupportedRecurringScheduler{}
}

func (unsupportedRecurringScheduler) ScheduleRecurring(ctx context.Context, organizationID string, templateEntryID string, cronSpec string, requestingUserID string) error {
	return fmt.Errorf("%w: recurring entry scheduling", apperrors.ErrUnsupported)
}

func (unsupportedRecurringScheduler) MaterializeDue(ctx context.Context, organizationID string, asOf time.Time) ([]string, error) {
	return nil, fmt.Errorf("%w: recurring entry scheduling", apperrors.ErrUnsupported)
}

type unsupportedRuleSource struct{}

// NewUnsupportedRuleSource returns a CustomRuleSource that provides no rules.
func NewUnsupportedRuleSource() portssvc.CustomRuleSource {
	return unsupportedRuleSource{}
}

func (unsupportedRuleSource) RulesFor(ctx context.Context, organizationID string) ([]validation.Rule, error) {
	return nil, fmt.Errorf("%w: custom validation rules", apperrors.ErrUnsupported)
}

type unsupportedTaxExportStore struct{}

// NewUnsupportedTaxExportStore returns a TaxExportStore that rejects every
// export.
func NewUnsupportedTaxExportStore() portssvc.TaxExportStore {
	return unsupportedTaxExportStore{}
}

func (unsupportedTaxExportStore) ExportLedger(ctx context.Context, organizationID string, fiscalYearID string) ([]byte, error) {
	return nil, fmt.Errorf("%w: statutory ledger export", apperrors.ErrUnsupported)
}
