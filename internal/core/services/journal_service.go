package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/placement_ledger/internal/core/ports/services"
	"github.com/SscSPs/placement_ledger/internal/dto"
)

const defaultJournalPageSize = 20

// journalService serves posted journals. Journals are immutable; there is no
// write path here.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalReader
	companyRepo portsrepo.CompanyReader
}

// NewJournalService creates a journal reader service.
func NewJournalService(journalRepo portsrepo.JournalReader, companyRepo portsrepo.CompanyReader, options ...ServiceOption) portssvc.JournalReaderSvc {
	return &journalService{BaseService: newBaseService(options...), journalRepo: journalRepo, companyRepo: companyRepo}
}

var _ portssvc.JournalReaderSvc = (*journalService)(nil)

// GetJournalByID retrieves a journal with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal by ID", slog.String("journal_id", journalID))
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}

	s.LogDebug(ctx, "Journal retrieved successfully",
		slog.String("journal_id", journalID),
		slog.Int("line_count", len(journal.Lines)))
	return journal, nil
}

// ListJournals retrieves a paginated list of journals for a company.
func (s *journalService) ListJournals(ctx context.Context, companyID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
		return nil, fmt.Errorf("failed to find company %s: %w", companyID, err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultJournalPageSize
	}
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}

	journals, nextToken, err := s.journalRepo.ListJournalsByCompany(ctx, companyID, limit, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to list journals from repository", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}

	resp := dto.ToListJournalsResponse(journals, nextToken)
	s.LogDebug(ctx, "Journals listed successfully", slog.Int("count", len(journals)), slog.String("company_id", companyID))
	return &resp, nil
}
