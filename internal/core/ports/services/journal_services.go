package services

import (
	"context"
	"time"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
	"github.com/ksiegowo/ksiegowo_backend/internal/dto"
)

// EntryReaderSvc defines read operations for journal entries
type EntryReaderSvc interface {
	// GetEntryByID retrieves a specific journal entry with its lines.
	GetEntryByID(ctx context.Context, organizationID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated, filtered list of journal entries.
	ListEntries(ctx context.Context, organizationID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// EntryWriterSvc defines draft-stage write operations for journal entries
type EntryWriterSvc interface {
	// CreateEntry persists a new draft entry with its lines. The entry number
	// is assigned at creation and never reused.
	CreateEntry(ctx context.Context, organizationID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateEntry rewrites a draft or pending entry. Posted entries are
	// immutable.
	UpdateEntry(ctx context.Context, organizationID string, entryID string, req dto.UpdateEntryRequest, requestingUserID string) (*domain.JournalEntry, error)

	// DeleteEntry removes a draft entry. Its number is not recycled.
	DeleteEntry(ctx context.Context, organizationID string, entryID string, requestingUserID string) error

	// DeleteEntries deletes a batch of draft entries; each entry succeeds or
	// fails independently.
	DeleteEntries(ctx context.Context, organizationID string, entryIDs []string, requestingUserID string) (*dto.BulkOperationResponse, error)
}

// EntryWorkflowSvc defines the approval workflow operations
type EntryWorkflowSvc interface {
	// SubmitEntry moves a draft entry to PENDING review.
	SubmitEntry(ctx context.Context, organizationID string, entryID string, requestingUserID string) (*domain.JournalEntry, error)

	// ApproveEntry records approval on a pending entry. The submitter cannot
	// approve their own entry.
	ApproveEntry(ctx context.Context, organizationID string, entryID string, requestingUserID string) (*domain.JournalEntry, error)

	// RejectEntry sends a pending entry back to draft with a reason.
	RejectEntry(ctx context.Context, organizationID string, entryID string, reason string, requestingUserID string) (*domain.JournalEntry, error)
}

// EntryPosterSvc defines the posting operations that commit entries into the
// general ledger
type EntryPosterSvc interface {
	// PostEntry validates and posts one entry atomically.
	PostEntry(ctx context.Context, organizationID string, entryID string, requestingUserID string, bypassApproval bool) (*domain.JournalEntry, error)

	// PostEntries posts a batch; each entry succeeds or fails independently.
	PostEntries(ctx context.Context, organizationID string, entryIDs []string, requestingUserID string, bypassApproval bool) (*dto.BulkOperationResponse, error)

	// ValidateEntry runs the posting rule set without side effects.
	ValidateEntry(ctx context.Context, organizationID string, entryID string) (*dto.ValidationResultResponse, error)
}

// JournalSvcFacade combines all journal-entry service interfaces
type JournalSvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
	EntryWorkflowSvc
	EntryPosterSvc
}

// ReversalSvc defines the reversal and correction operations
type ReversalSvc interface {
	// ReverseEntry creates (and optionally posts) a reversing entry with all
	// lines swapped, linking both directions.
	ReverseEntry(ctx context.Context, organizationID string, entryID string, req dto.ReverseEntryRequest, requestingUserID string) (*domain.JournalEntry, error)

	// CreateCorrection creates an adjusting entry carrying only the correcting
	// delta, linked to the original.
	CreateCorrection(ctx context.Context, organizationID string, entryID string, req dto.CreateCorrectionRequest, requestingUserID string) (*domain.JournalEntry, error)

	// ScheduleAutoReversal annotates a posted entry for the reversal sweep.
	ScheduleAutoReversal(ctx context.Context, organizationID string, entryID string, reverseOn time.Time, requestingUserID string) error

	// CancelAutoReversal clears a pending auto-reversal schedule before the
	// sweep picks it up.
	CancelAutoReversal(ctx context.Context, organizationID string, entryID string, requestingUserID string) error

	// ProcessDueReversals reverses every entry whose auto-reverse date has
	// arrived. A zero asOf means the service clock's current time. Idempotent;
	// failures are per entry.
	ProcessDueReversals(ctx context.Context, organizationID string, asOf time.Time, requestingUserID string) (*dto.ReversalSweepResponse, error)
}
