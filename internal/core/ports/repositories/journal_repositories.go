package repositories

import (
	"context"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a specific journal, with its lines, by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindJournalBySource returns the journal posted for a business event, or
	// apperrors.ErrNotFound if none has been posted yet.
	FindJournalBySource(ctx context.Context, source domain.JournalSource) (*domain.Journal, error)

	// ListJournalsByCompany retrieves a paginated list of journals for a given company using token-based pagination.
	// It returns the journals, a token for the next page, and an error.
	ListJournalsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Journal, *string, error)

	// CompanyHasJournals reports whether anything was ever posted for the company.
	CompanyHasJournals(ctx context.Context, companyID string) (bool, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournal persists a journal and all of its lines. A second journal
	// for the same source yields apperrors.ErrAlreadyPosted.
	SaveJournal(ctx context.Context, journal domain.Journal) error
}

// ReportingReader aggregates posted journal lines.
type ReportingReader interface {
	// GetTrialBalanceData sums debits and credits per account for a company, ordered by account code.
	GetTrialBalanceData(ctx context.Context, companyID string) ([]domain.TrialBalanceRow, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	ReportingReader
}
