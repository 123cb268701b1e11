package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/placement_ledger/internal/core/ports/services"
	"github.com/SscSPs/placement_ledger/internal/dto"
	"github.com/SscSPs/placement_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// postingService runs every business event in one transaction: the domain
// mutation and its journal commit together or not at all.
type postingService struct {
	BaseService
	txRunner portsrepo.TxRunner
	poster   portssvc.LedgerPosterSvc
	rules    postingRules
}

// NewPostingService creates the business event translators.
func NewPostingService(
	txRunner portsrepo.TxRunner,
	poster portssvc.LedgerPosterSvc,
	converter portssvc.CurrencyConverterSvc,
	charts portssvc.ChartOfAccountsProvider,
	options ...ServiceOption,
) portssvc.PostingSvcFacade {
	return &postingService{
		BaseService: newBaseService(options...),
		txRunner:    txRunner,
		poster:      poster,
		rules:       postingRules{converter: converter, charts: charts},
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// --- Costs ---

func validateCostTemplate(t domain.CostTemplate) error {
	switch t.CostType {
	case domain.CostVisa, domain.CostMedical, domain.CostTicket, domain.CostTraining, domain.CostDocumentation, domain.CostOther:
	default:
		return fmt.Errorf("%w: unknown cost type '%s'", apperrors.ErrValidation, t.CostType)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: cost amount must be positive", apperrors.ErrValidation)
	}
	if !domain.IsSupportedCurrency(t.Currency) {
		return fmt.Errorf("%w: currency '%s' is not supported", apperrors.ErrValidation, t.Currency)
	}
	return nil
}

// RecordCost stores a cost and posts its WIP journal.
func (s *postingService) RecordCost(ctx context.Context, req dto.RecordCostRequest, userID string) (*domain.CandidateCost, *domain.Journal, error) {
	template := req.ToCostTemplate()
	if err := validateCostTemplate(template); err != nil {
		return nil, nil, err
	}

	var cost domain.CandidateCost
	var journal *domain.Journal
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		candidate, err := repos.CandidateRepo.FindCandidateByID(ctx, req.CandidateID)
		if err != nil {
			return fmt.Errorf("failed to load candidate %s: %w", req.CandidateID, err)
		}

		cost = template.NewCost(s.NewID(), candidate.CandidateID, userID, s.Now())
		if err := repos.CostRepo.SaveCandidateCost(ctx, cost); err != nil {
			return fmt.Errorf("failed to save cost: %w", err)
		}

		journal, err = s.postCostTx(ctx, repos, candidate, &cost, userID)
		return err
	})
	if err != nil {
		s.logEventFailure(ctx, err, "Failed to record cost", slog.String("candidate_id", req.CandidateID))
		return nil, nil, err
	}
	return &cost, journal, nil
}

// PostCostJournal posts the WIP journal for a stored cost.
func (s *postingService) PostCostJournal(ctx context.Context, costID, userID string) (*domain.Journal, error) {
	var journal *domain.Journal
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		cost, err := repos.CostRepo.FindCostByID(ctx, costID)
		if err != nil {
			return fmt.Errorf("failed to load cost %s: %w", costID, err)
		}
		if cost.IsPosted() {
			return fmt.Errorf("%w: cost %s already has journal %s", apperrors.ErrAlreadyPosted, costID, *cost.JournalID)
		}

		candidate, err := repos.CandidateRepo.FindCandidateByID(ctx, cost.CandidateID)
		if err != nil {
			return fmt.Errorf("failed to load candidate %s: %w", cost.CandidateID, err)
		}

		journal, err = s.postCostTx(ctx, repos, candidate, cost, userID)
		return err
	})
	if err != nil {
		s.logEventFailure(ctx, err, "Failed to post cost journal", slog.String("cost_id", costID))
		return nil, err
	}
	return journal, nil
}

func (s *postingService) postCostTx(ctx context.Context, repos portsrepo.RepositoryProvider, candidate *domain.Candidate, cost *domain.CandidateCost, userID string) (*domain.Journal, error) {
	company, _, err := s.loadCompanyForCandidate(ctx, repos, candidate)
	if err != nil {
		return nil, err
	}

	req, err := s.rules.costIncurred(ctx, company, candidate, cost, userID)
	if err != nil {
		return nil, err
	}
	journal, err := s.poster.Post(ctx, repos, req)
	if err != nil {
		return nil, err
	}

	if err := repos.CostRepo.MarkCostPosted(ctx, cost.CostID, journal.JournalID, userID, s.Now()); err != nil {
		return nil, fmt.Errorf("failed to link cost %s to journal: %w", cost.CostID, err)
	}
	cost.JournalID = &journal.JournalID
	return journal, nil
}

// --- Stages and deployment ---

// MoveStage updates the candidate's stage under a row lock and posts the
// deployment journal on first entry to DEPLOYED.
func (s *postingService) MoveStage(ctx context.Context, candidateID string, requested domain.Stage, userID string) (*domain.StageChange, error) {
	stage, ok := domain.ParseStage(string(requested))
	if !ok {
		return nil, fmt.Errorf("%w: unknown stage '%s'", apperrors.ErrValidation, requested)
	}

	var change *domain.StageChange
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		candidate, err := repos.CandidateRepo.LockCandidate(ctx, candidateID)
		if err != nil {
			return fmt.Errorf("failed to lock candidate %s: %w", candidateID, err)
		}

		now := s.Now()
		hadDeployedDate := candidate.DeployedDate != nil
		old := candidate.MoveTo(stage, now)
		change = &domain.StageChange{OldStage: old}

		if old != stage || hadDeployedDate != (candidate.DeployedDate != nil) {
			candidate.LastUpdatedAt = now
			candidate.LastUpdatedBy = userID
			if err := repos.CandidateRepo.UpdateCandidateStage(ctx, *candidate); err != nil {
				return fmt.Errorf("failed to update candidate stage: %w", err)
			}
		}

		if old != stage {
			transition := domain.StageTransition{
				TransitionID:   s.NewID(),
				CandidateID:    candidate.CandidateID,
				OldStage:       old,
				NewStage:       stage,
				TransitionedAt: now,
				TransitionedBy: userID,
			}
			if err := repos.CandidateRepo.AppendStageTransition(ctx, transition); err != nil {
				return fmt.Errorf("failed to record stage transition: %w", err)
			}
			change.Transition = &transition
		}

		if old != domain.StageDeployed && stage == domain.StageDeployed {
			journal, posted, err := s.postDeploymentTx(ctx, repos, candidate, userID)
			if err != nil {
				return err
			}
			change.Journal = journal
			change.JournalPosted = posted
		}

		change.Candidate = *candidate
		return nil
	})
	if err != nil {
		s.logEventFailure(ctx, err, "Failed to move candidate stage",
			slog.String("candidate_id", candidateID),
			slog.String("stage", string(stage)))
		return nil, err
	}

	s.LogInfo(ctx, "Candidate stage changed",
		slog.String("candidate_id", candidateID),
		slog.String("old_stage", string(change.OldStage)),
		slog.String("new_stage", string(stage)))
	return change, nil
}

// PostDeploymentJournal posts revenue recognition for a DEPLOYED candidate.
func (s *postingService) PostDeploymentJournal(ctx context.Context, candidateID, userID string) (*domain.Journal, error) {
	var journal *domain.Journal
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		candidate, err := repos.CandidateRepo.LockCandidate(ctx, candidateID)
		if err != nil {
			return fmt.Errorf("failed to lock candidate %s: %w", candidateID, err)
		}
		if candidate.CurrentStage != domain.StageDeployed {
			return nil
		}
		journal, _, err = s.postDeploymentTx(ctx, repos, candidate, userID)
		return err
	})
	if err != nil {
		s.logEventFailure(ctx, err, "Failed to post deployment journal", slog.String("candidate_id", candidateID))
		return nil, err
	}
	return journal, nil
}

// postDeploymentTx returns the existing deployment journal if there is one,
// so a candidate is recognised at most once. posted is true only when this
// call created the journal.
func (s *postingService) postDeploymentTx(ctx context.Context, repos portsrepo.RepositoryProvider, candidate *domain.Candidate, userID string) (journal *domain.Journal, posted bool, err error) {
	source := domain.JournalSource{Type: domain.SourceDeployment, ID: candidate.CandidateID}
	existing, err := repos.JournalRepo.FindJournalBySource(ctx, source)
	if err == nil {
		s.LogDebug(ctx, "Deployment journal already posted",
			slog.String("candidate_id", candidate.CandidateID),
			slog.String("journal_id", existing.JournalID))
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to check for deployment journal: %w", err)
	}

	company, jobOrder, err := s.loadCompanyForCandidate(ctx, repos, candidate)
	if err != nil {
		return nil, false, err
	}

	costs, err := repos.CostRepo.FindCostsByCandidateID(ctx, candidate.CandidateID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load candidate costs: %w", err)
	}

	deployedOn := s.Now()
	if candidate.DeployedDate != nil {
		deployedOn = *candidate.DeployedDate
	}

	req, err := s.rules.deployment(ctx, company, jobOrder, candidate, costs, deployedOn, userID)
	if err != nil {
		return nil, false, err
	}
	journal, err = s.poster.Post(ctx, repos, req)
	if err != nil {
		return nil, false, err
	}
	return journal, true, nil
}

func (s *postingService) loadCompanyForCandidate(ctx context.Context, repos portsrepo.RepositoryProvider, candidate *domain.Candidate) (*domain.Company, *domain.JobOrder, error) {
	jobOrder, err := repos.CandidateRepo.FindJobOrderByID(ctx, candidate.JobOrderID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load job order %s: %w", candidate.JobOrderID, err)
	}
	company, err := repos.CompanyRepo.FindCompanyByID(ctx, jobOrder.CompanyID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load company %s: %w", jobOrder.CompanyID, err)
	}
	return company, jobOrder, nil
}

// --- Invoices ---

// CreateInvoice numbers, stores and (unless Draft) posts an invoice.
func (s *postingService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, *domain.Journal, error) {
	if err := validateDocumentLines(req.Lines); err != nil {
		return nil, nil, err
	}
	if !domain.IsSupportedCurrency(req.Currency) {
		return nil, nil, fmt.Errorf("%w: currency '%s' is not supported", apperrors.ErrValidation, req.Currency)
	}
	if req.TaxAmount.IsNegative() {
		return nil, nil, fmt.Errorf("%w: tax amount cannot be negative", apperrors.ErrValidation)
	}
	if req.ApplyCompanyTax && !req.TaxAmount.IsZero() {
		return nil, nil, fmt.Errorf("%w: taxAmount must be empty when applyCompanyTax is set", apperrors.ErrValidation)
	}

	var invoice domain.Invoice
	var journal *domain.Journal
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		company, err := repos.CompanyRepo.FindCompanyByID(ctx, req.CompanyID)
		if err != nil {
			return fmt.Errorf("failed to load company %s: %w", req.CompanyID, err)
		}
		if req.JobOrderID != nil {
			jobOrder, err := repos.CandidateRepo.FindJobOrderByID(ctx, *req.JobOrderID)
			if err != nil {
				return fmt.Errorf("failed to load job order %s: %w", *req.JobOrderID, err)
			}
			if jobOrder.CompanyID != company.CompanyID {
				return fmt.Errorf("%w: job order %s belongs to another company", apperrors.ErrValidation, jobOrder.JobOrderID)
			}
		}

		n, err := repos.CompanyRepo.NextDocumentNumber(ctx, company.CompanyID, domain.DocumentInvoice)
		if err != nil {
			return fmt.Errorf("failed to allocate invoice number: %w", err)
		}

		now := s.Now()
		invoice = domain.Invoice{
			InvoiceID:     s.NewID(),
			CompanyID:     company.CompanyID,
			InvoiceNumber: domain.FormatDocumentNumber(company.DocumentPrefix(domain.DocumentInvoice), n),
			EmployerName:  req.EmployerName,
			JobOrderID:    req.JobOrderID,
			InvoiceDate:   domain.DateOnly(req.InvoiceDate),
			DueDate:       req.DueDate,
			Currency:      req.Currency,
			Lines:         dto.ToDocumentLines(req.Lines, s.NewID),
			TaxAmount:     req.TaxAmount,
			AmountPaid:    decimal.Zero,
			Status:        domain.StatusDraft,
			AuditFields:   domain.NewAuditFields(userID, now),
		}
		if req.ApplyCompanyTax {
			applyCompanyTax(&invoice, company, s.NewID())
		}
		invoice.RecalculateTotals()
		if invoice.TaxAmount.GreaterThan(invoice.TotalAmount) {
			return fmt.Errorf("%w: tax amount exceeds invoice total", apperrors.ErrValidation)
		}

		if !req.Draft {
			posting, err := s.rules.invoicePosted(ctx, company, &invoice, userID)
			if err != nil {
				return err
			}
			journal, err = s.poster.Post(ctx, repos, posting)
			if err != nil {
				return err
			}
			invoice.Status = domain.StatusPosted
			invoice.JournalID = &journal.JournalID
		}

		if err := repos.BillingRepo.SaveInvoice(ctx, invoice); err != nil {
			return fmt.Errorf("failed to save invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logEventFailure(ctx, err, "Failed to create invoice", slog.String("company_id", req.CompanyID))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.String("status", string(invoice.Status)))
	return &invoice, journal, nil
}

// applyCompanyTax appends a tax line at the company rate over the current lines.
func applyCompanyTax(invoice *domain.Invoice, company *domain.Company, lineID string) {
	if !company.TaxRate.IsPositive() {
		return
	}
	invoice.RecalculateTotals()
	tax := accounting.RoundMoney(invoice.TotalAmount.Mul(company.TaxRate).Div(decimal.NewFromInt(100)))
	taxName := company.TaxName
	if taxName == "" {
		taxName = "Tax"
	}
	invoice.Lines = append(invoice.Lines, domain.DocumentLine{
		LineID:      lineID,
		Description: fmt.Sprintf("%s @ %s%%", taxName, company.TaxRate.String()),
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   tax,
	})
	invoice.TaxAmount = tax
}

// PostInvoiceJournal posts a DRAFT invoice.
func (s *postingService) PostInvoiceJournal(ctx context.Context, invoiceID, userID string) (*domain.Journal, error) {
	var journal *domain.Journal
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		invoice, err := repos.BillingRepo.LockInvoice(ctx, invoiceID)
		if err != nil {
			return fmt.Errorf("failed to lock invoice %s: %w", invoiceID, err)
		}
		if invoice.JournalID != nil {
			return fmt.Errorf("%w: invoice %s already has journal %s", apperrors.ErrAlreadyPosted, invoice.InvoiceNumber, *invoice.JournalID)
		}
		if invoice.Status != domain.StatusDraft {
			return fmt.Errorf("%w: only DRAFT invoices can be posted, %s is %s", apperrors.ErrValidation, invoice.InvoiceNumber, invoice.Status)
		}

		company, err := repos.CompanyRepo.FindCompanyByID(ctx, invoice.CompanyID)
		if err != nil {
			return fmt.Errorf("failed to load company %s: %w", invoice.CompanyID, err)
		}

		posting, err := s.rules.invoicePosted(ctx, company, invoice, userID)
		if err != nil {
			return err
		}
		journal, err = s.poster.Post(ctx, repos, posting)
		if err != nil {
			return err
		}

		invoice.Status = domain.StatusPosted
		invoice.JournalID = &journal.JournalID
		invoice.LastUpdatedAt = s.Now()
		invoice.LastUpdatedBy = userID
		if err := repos.BillingRepo.UpdateInvoiceState(ctx, *invoice); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logEventFailure(ctx, err, "Failed to post invoice journal", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	return journal, nil
}

// --- Receipts and payments ---

// RecordReceipt stores a receipt, settles the linked invoice and posts the
// bank/AR journal. The settled portion is the receipt expressed in the
// invoice currency; receipts beyond the outstanding balance are rejected.
func (s *postingService) RecordReceipt(ctx context.Context, req dto.RecordReceiptRequest, userID string) (*domain.Receipt, *domain.Journal, error) {
	if !req.Amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: receipt amount must be positive", apperrors.ErrValidation)
	}
	if !domain.IsSupportedCurrency(req.Currency) {
		return nil, nil, fmt.Errorf("%w: currency '%s' is not supported", apperrors.ErrValidation, req.Currency)
	}

	var receipt domain.Receipt
	var journal *domain.Journal
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		company, err := repos.CompanyRepo.FindCompanyByID(ctx, req.CompanyID)
		if err != nil {
			return fmt.Errorf("failed to load company %s: %w", req.CompanyID, err)
		}
		bank, err := s.rules.bankAccount(company, req.BankAccount)
		if err != nil {
			return err
		}

		now := s.Now()
		receipt = domain.Receipt{
			ReceiptID:   s.NewID(),
			CompanyID:   company.CompanyID,
			InvoiceID:   req.InvoiceID,
			ReceiptDate: domain.DateOnly(req.ReceiptDate),
			Amount:      req.Amount,
			Currency:    req.Currency,
			BankAccount: bank,
			Reference:   req.Reference,
			AuditFields: domain.NewAuditFields(userID, now),
		}

		var invoice *domain.Invoice
		settled := decimal.Zero
		if req.InvoiceID != nil {
			invoice, err = repos.BillingRepo.LockInvoice(ctx, *req.InvoiceID)
			if err != nil {
				return fmt.Errorf("failed to lock invoice %s: %w", *req.InvoiceID, err)
			}
			if invoice.CompanyID != company.CompanyID {
				return fmt.Errorf("%w: invoice %s belongs to another company", apperrors.ErrValidation, invoice.InvoiceNumber)
			}
			if invoice.Status != domain.StatusPosted {
				return fmt.Errorf("%w: invoice %s is %s and cannot take receipts", apperrors.ErrValidation, invoice.InvoiceNumber, invoice.Status)
			}
			settled, err = s.settle(ctx, receipt.Amount, receipt.Currency, invoice.Currency, receipt.ReceiptDate, invoice.Outstanding())
			if err != nil {
				return fmt.Errorf("invoice %s: %w", invoice.InvoiceNumber, err)
			}
		}

		posting, err := s.rules.receiptRecorded(ctx, company, &receipt, invoice, settled, userID)
		if err != nil {
			return err
		}
		journal, err = s.poster.Post(ctx, repos, posting)
		if err != nil {
			return err
		}
		receipt.JournalID = &journal.JournalID

		if err := repos.BillingRepo.SaveReceipt(ctx, receipt); err != nil {
			return fmt.Errorf("failed to save receipt: %w", err)
		}

		if invoice != nil {
			invoice.AmountPaid = invoice.AmountPaid.Add(settled)
			if invoice.Outstanding().LessThanOrEqual(accounting.BalanceTolerance) {
				invoice.Status = domain.StatusPaid
			}
			invoice.LastUpdatedAt = now
			invoice.LastUpdatedBy = userID
			if err := repos.BillingRepo.UpdateInvoiceState(ctx, *invoice); err != nil {
				return fmt.Errorf("failed to update invoice settlement: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.logEventFailure(ctx, err, "Failed to record receipt", slog.String("company_id", req.CompanyID))
		return nil, nil, err
	}
	return &receipt, journal, nil
}

// RecordPayment stores a payment, settles the linked bill and posts the
// AP/bank journal.
func (s *postingService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.Payment, *domain.Journal, error) {
	if !req.Amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if !domain.IsSupportedCurrency(req.Currency) {
		return nil, nil, fmt.Errorf("%w: currency '%s' is not supported", apperrors.ErrValidation, req.Currency)
	}

	var payment domain.Payment
	var journal *domain.Journal
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		company, err := repos.CompanyRepo.FindCompanyByID(ctx, req.CompanyID)
		if err != nil {
			return fmt.Errorf("failed to load company %s: %w", req.CompanyID, err)
		}
		bank, err := s.rules.bankAccount(company, req.BankAccount)
		if err != nil {
			return err
		}

		now := s.Now()
		payment = domain.Payment{
			PaymentID:   s.NewID(),
			CompanyID:   company.CompanyID,
			BillID:      req.BillID,
			PaymentDate: domain.DateOnly(req.PaymentDate),
			Amount:      req.Amount,
			Currency:    req.Currency,
			BankAccount: bank,
			Reference:   req.Reference,
			AuditFields: domain.NewAuditFields(userID, now),
		}

		var bill *domain.Bill
		settled := decimal.Zero
		payee := ""
		if req.BillID != nil {
			bill, err = repos.BillingRepo.LockBill(ctx, *req.BillID)
			if err != nil {
				return fmt.Errorf("failed to lock bill %s: %w", *req.BillID, err)
			}
			if bill.CompanyID != company.CompanyID {
				return fmt.Errorf("%w: bill %s belongs to another company", apperrors.ErrValidation, bill.BillNumber)
			}
			if bill.Status != domain.StatusPosted {
				return fmt.Errorf("%w: bill %s is %s and cannot take payments", apperrors.ErrValidation, bill.BillNumber, bill.Status)
			}
			settled, err = s.settle(ctx, payment.Amount, payment.Currency, bill.Currency, payment.PaymentDate, bill.Outstanding())
			if err != nil {
				return fmt.Errorf("bill %s: %w", bill.BillNumber, err)
			}
			payee = bill.VendorName
		}

		posting, err := s.rules.paymentRecorded(ctx, company, &payment, payee, userID)
		if err != nil {
			return err
		}
		journal, err = s.poster.Post(ctx, repos, posting)
		if err != nil {
			return err
		}
		payment.JournalID = &journal.JournalID

		if err := repos.BillingRepo.SavePayment(ctx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}

		if bill != nil {
			bill.AmountPaid = bill.AmountPaid.Add(settled)
			if bill.Outstanding().LessThanOrEqual(accounting.BalanceTolerance) {
				bill.Status = domain.StatusPaid
			}
			bill.LastUpdatedAt = now
			bill.LastUpdatedBy = userID
			if err := repos.BillingRepo.UpdateBillState(ctx, *bill); err != nil {
				return fmt.Errorf("failed to update bill settlement: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.logEventFailure(ctx, err, "Failed to record payment", slog.String("company_id", req.CompanyID))
		return nil, nil, err
	}
	return &payment, journal, nil
}

// settle expresses amount in the document currency and checks it against the
// outstanding balance. Amounts within the posting tolerance above the
// balance are capped to it.
func (s *postingService) settle(ctx context.Context, amount decimal.Decimal, currency, docCurrency string, on time.Time, outstanding decimal.Decimal) (decimal.Decimal, error) {
	settled := amount
	if currency != docCurrency {
		conv, err := s.rules.converter.Convert(ctx, amount, currency, docCurrency, on, domain.PolicyStrict)
		if err != nil {
			return decimal.Zero, err
		}
		settled = conv.Amount
	}

	if settled.GreaterThan(outstanding.Add(accounting.BalanceTolerance)) {
		return decimal.Zero, fmt.Errorf("%w: %s %s exceeds the outstanding balance of %s %s",
			apperrors.ErrValidation, settled.StringFixed(2), docCurrency, outstanding.StringFixed(2), docCurrency)
	}
	if settled.GreaterThan(outstanding) {
		settled = outstanding
	}
	return settled, nil
}

// logEventFailure logs unexpected failures at ERROR and business rejections at WARN.
func (s *postingService) logEventFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrAlreadyPosted),
		errors.Is(err, apperrors.ErrMissingFxRate):
		s.LogWarn(ctx, msg, append([]any{slog.String("error", err.Error())}, keyvals...)...)
	default:
		s.LogError(ctx, err, msg, keyvals...)
	}
}
