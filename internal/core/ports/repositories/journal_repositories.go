package repositories

import (
	"context"
	"time"

	"github.com/ksiegowo/ksiegowo_backend/internal/core/domain"
)

// ListEntriesQuery carries the filters and cursor for listing journal entries.
type ListEntriesQuery struct {
	Status     *domain.EntryStatus
	EntryType  *domain.EntryType
	PeriodID   *string
	DateFrom   *time.Time
	DateTo     *time.Time
	SearchText *string // Matched against entry number and description
	Limit      int
	NextToken  *string
}

// JournalEntryRepositoryFacade defines persistence operations for journal
// entries, their lines, and the posting transaction.
type JournalEntryRepositoryFacade interface {
	// NextEntryNumber atomically increments and returns the per-scope
	// sequence for (organization, entry type, year, month). Issued numbers
	// are gapless under concurrency and never reused.
	NextEntryNumber(ctx context.Context, organizationID string, entryType domain.EntryType, year int, month int) (int64, error)

	// SaveEntry inserts a new entry with its lines in one transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	FindEntryByID(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error)
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)
	ListEntries(ctx context.Context, organizationID string, q ListEntriesQuery) ([]domain.JournalEntry, *string, error)

	// UpdateEntry rewrites a draft/pending entry's header and replaces its
	// lines in one transaction.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntryWorkflow persists status and approval metadata changes
	// (submit, approve, reject) without touching lines.
	UpdateEntryWorkflow(ctx context.Context, entry domain.JournalEntry) error

	// DeleteEntry removes a draft entry and its lines. The entry number is
	// not recycled.
	DeleteEntry(ctx context.Context, organizationID, entryID string) error

	// PostEntry commits an entry into the general ledger atomically: it
	// re-checks the period status under a row lock, flips the entry to
	// POSTED (only from DRAFT/PENDING), inserts one ledger record per line,
	// and applies the balance deltas as atomic increments. Any failure rolls
	// the whole posting back.
	PostEntry(ctx context.Context, entry domain.JournalEntry, records []domain.LedgerRecord, deltas []domain.BalanceDelta) error

	// SaveReversal inserts the reversing entry with its lines and updates the
	// original entry (status REVERSED plus linkage) in one transaction.
	SaveReversal(ctx context.Context, reversing domain.JournalEntry, originalEntryID string, reason string) error

	SetAutoReverseDate(ctx context.Context, organizationID, entryID string, date *time.Time, userID string, now time.Time) error
	ListEntriesDueForAutoReversal(ctx context.Context, organizationID string, asOf time.Time) ([]domain.JournalEntry, error)
}
