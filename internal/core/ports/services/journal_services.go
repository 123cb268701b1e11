package services

import (
	"context"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/SscSPs/placement_ledger/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByID retrieves a specific journal by its ID.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals for a company.
	ListJournals(ctx context.Context, companyID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// ReportingService defines report operations built on the ledger
type ReportingService interface {
	// TrialBalance sums every account of a company's ledger.
	TrialBalance(ctx context.Context, companyID string) (*domain.TrialBalance, error)

	// CandidateProfitability converts fee and costs leniently; amounts without
	// a rate are included unconverted and flagged.
	CandidateProfitability(ctx context.Context, candidateID string) (*domain.CandidateProfitability, error)
}
