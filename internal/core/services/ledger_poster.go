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
	"github.com/SscSPs/placement_ledger/internal/utils/accounting"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ledgerPoster is the only writer of journals.
type ledgerPoster struct {
	BaseService
	txRunner portsrepo.TxRunner
}

// NewLedgerPoster creates a ledger poster. txRunner is only used by PostJournal.
func NewLedgerPoster(txRunner portsrepo.TxRunner, options ...ServiceOption) portssvc.LedgerPosterSvc {
	return &ledgerPoster{BaseService: newBaseService(options...), txRunner: txRunner}
}

var _ portssvc.LedgerPosterSvc = (*ledgerPoster)(nil)

// Post validates req and writes it through repos.
func (p *ledgerPoster) Post(ctx context.Context, repos portsrepo.RepositoryProvider, req portssvc.PostingRequest) (*domain.Journal, error) {
	ctx, span := tracer.Start(ctx, "LedgerPoster.Post", trace.WithAttributes(
		attribute.String("ledger.company_id", req.CompanyID),
		attribute.String("ledger.source_type", string(req.Source.Type)),
		attribute.String("ledger.source_id", req.Source.ID),
		attribute.Int("ledger.lines", len(req.Lines)),
	))
	defer span.End()

	journal, err := p.post(ctx, repos, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return journal, nil
}

func (p *ledgerPoster) post(ctx context.Context, repos portsrepo.RepositoryProvider, req portssvc.PostingRequest) (*domain.Journal, error) {
	if req.CompanyID == "" {
		return nil, fmt.Errorf("%w: journal company is required", apperrors.ErrValidation)
	}

	lines := accounting.RoundLines(req.Lines)
	if err := accounting.ValidateJournalLines(lines); err != nil {
		if errors.Is(err, apperrors.ErrUnbalancedJournal) {
			p.LogWarn(ctx, "Rejected unbalanced journal",
				slog.String("company_id", req.CompanyID),
				slog.String("source_type", string(req.Source.Type)),
				slog.String("source_id", req.Source.ID),
				slog.String("error", err.Error()))
		}
		return nil, err
	}

	company, err := repos.CompanyRepo.FindCompanyByID(ctx, req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company %s for posting: %w", req.CompanyID, err)
	}

	now := p.Now()
	journalDate := req.JournalDate
	if journalDate.IsZero() {
		journalDate = now
	}

	journal := domain.Journal{
		JournalID:    p.NewID(),
		CompanyID:    company.CompanyID,
		JournalDate:  domain.DateOnly(journalDate),
		Description:  req.Description,
		Reference:    req.Reference,
		CurrencyCode: company.BaseCurrency,
		Source:       req.Source,
		PostedAt:     now,
		PostedBy:     req.PostedBy,
		Lines:        make([]domain.JournalLine, len(lines)),
	}
	for i, l := range lines {
		l.LineID = p.NewID()
		l.JournalID = journal.JournalID
		l.LineNo = i + 1
		journal.Lines[i] = l
	}

	if err := repos.JournalRepo.SaveJournal(ctx, journal); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyPosted) {
			return nil, err
		}
		p.LogError(ctx, err, "Failed to save journal",
			slog.String("journal_id", journal.JournalID),
			slog.String("company_id", journal.CompanyID))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	p.LogInfo(ctx, "Journal posted",
		slog.String("journal_id", journal.JournalID),
		slog.String("company_id", journal.CompanyID),
		slog.String("source_type", string(journal.Source.Type)),
		slog.String("source_id", journal.Source.ID),
		slog.String("total", journal.TotalDebit().StringFixed(2)),
		slog.String("currency", journal.CurrencyCode))
	return &journal, nil
}

// PostJournal runs Post in its own transaction.
func (p *ledgerPoster) PostJournal(ctx context.Context, req portssvc.PostingRequest) (*domain.Journal, error) {
	var journal *domain.Journal
	err := p.txRunner.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		var err error
		journal, err = p.Post(ctx, repos, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return journal, nil
}
