package services

import (
	"context"
	"time"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/placement_ledger/internal/dto"
)

// PostingRequest is a fully resolved journal ready to be written: lines are
// already in the company's base currency.
type PostingRequest struct {
	CompanyID   string
	Description string
	Reference   string
	Source      domain.JournalSource
	JournalDate time.Time
	Lines       []domain.JournalLine
	PostedBy    string
}

// LedgerPosterSvc validates and writes journals.
type LedgerPosterSvc interface {
	// Post writes the journal through repos, which the caller has bound to
	// its transaction. An unbalanced request yields
	// apperrors.UnbalancedJournalError and writes nothing.
	Post(ctx context.Context, repos portsrepo.RepositoryProvider, req PostingRequest) (*domain.Journal, error)

	// PostJournal is Post inside a transaction of its own.
	PostJournal(ctx context.Context, req PostingRequest) (*domain.Journal, error)
}

// CostPostingSvc handles candidate costs.
type CostPostingSvc interface {
	// RecordCost stores the cost and posts its WIP journal in one transaction.
	RecordCost(ctx context.Context, req dto.RecordCostRequest, userID string) (*domain.CandidateCost, *domain.Journal, error)

	// PostCostJournal posts Dr WIP / Cr AP for an existing cost.
	PostCostJournal(ctx context.Context, costID, userID string) (*domain.Journal, error)
}

// DeploymentPostingSvc handles stage moves and the deployment journal.
type DeploymentPostingSvc interface {
	// MoveStage changes the candidate's stage and, on first entry to
	// DEPLOYED, posts the deployment journal in the same transaction.
	MoveStage(ctx context.Context, candidateID string, stage domain.Stage, userID string) (*domain.StageChange, error)

	// PostDeploymentJournal posts revenue recognition for a deployed
	// candidate. Returns nil, nil when the candidate is not DEPLOYED and the
	// existing journal when one was already posted.
	PostDeploymentJournal(ctx context.Context, candidateID, userID string) (*domain.Journal, error)
}

// BillingPostingSvc handles invoices, receipts and payments.
type BillingPostingSvc interface {
	// CreateInvoice numbers and stores the invoice and, unless it is a draft,
	// posts it in the same transaction.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, *domain.Journal, error)

	// PostInvoiceJournal posts a DRAFT invoice.
	PostInvoiceJournal(ctx context.Context, invoiceID, userID string) (*domain.Journal, error)

	RecordReceipt(ctx context.Context, req dto.RecordReceiptRequest, userID string) (*domain.Receipt, *domain.Journal, error)
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.Payment, *domain.Journal, error)
}

// PostingSvcFacade combines all business event translators
type PostingSvcFacade interface {
	CostPostingSvc
	DeploymentPostingSvc
	BillingPostingSvc
}

// BulkSvc applies a change to many candidates, one transaction each.
type BulkSvc interface {
	BulkMoveStage(ctx context.Context, candidateIDs []string, stage domain.Stage, userID string) domain.BulkStageResult
	BulkAddCost(ctx context.Context, candidateIDs []string, template domain.CostTemplate, userID string) domain.BulkCostResult
}

// ChartOfAccountsProvider resolves a company's account codes. An unknown
// company yields apperrors.MissingAccountConfigurationError.
type ChartOfAccountsProvider interface {
	ChartFor(companyCode string) (domain.ChartOfAccounts, error)
}
