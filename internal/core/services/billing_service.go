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
	"github.com/shopspring/decimal"
)

type billingService struct {
	BaseService
	txRunner portsrepo.TxRunner
	repos    portsrepo.RepositoryProvider
}

// NewBillingService creates the billing document service.
func NewBillingService(txRunner portsrepo.TxRunner, repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.BillingSvcFacade {
	return &billingService{BaseService: newBaseService(options...), txRunner: txRunner, repos: repos}
}

var _ portssvc.BillingSvcFacade = (*billingService)(nil)

func validateDocumentLines(lines []dto.DocumentLineRequest) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: at least one line is required", apperrors.ErrValidation)
	}
	for i, l := range lines {
		if !l.Quantity.IsPositive() {
			return fmt.Errorf("%w: line %d quantity must be positive", apperrors.ErrValidation, i+1)
		}
		if l.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: line %d unit price cannot be negative", apperrors.ErrValidation, i+1)
		}
	}
	return nil
}

func (s *billingService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.repos.BillingRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}
	return invoice, nil
}

func (s *billingService) GetBill(ctx context.Context, billID string) (*domain.Bill, error) {
	bill, err := s.repos.BillingRepo.FindBillByID(ctx, billID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find bill", slog.String("bill_id", billID))
		}
		return nil, err
	}
	return bill, nil
}

// CreateBill numbers and stores a bill. Linked costs must belong to the same
// company and must not already be on another bill.
func (s *billingService) CreateBill(ctx context.Context, req dto.CreateBillRequest, userID string) (*domain.Bill, error) {
	if err := validateDocumentLines(req.Lines); err != nil {
		return nil, err
	}
	if !domain.IsSupportedCurrency(req.Currency) {
		return nil, fmt.Errorf("%w: currency '%s' is not supported", apperrors.ErrValidation, req.Currency)
	}
	if req.TaxAmount.IsNegative() {
		return nil, fmt.Errorf("%w: tax amount cannot be negative", apperrors.ErrValidation)
	}

	var bill domain.Bill
	err := s.txRunner.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		company, err := repos.CompanyRepo.FindCompanyByID(ctx, req.CompanyID)
		if err != nil {
			return fmt.Errorf("failed to load company %s: %w", req.CompanyID, err)
		}

		for _, costID := range req.CostIDs {
			if err := s.checkCostLinkable(ctx, repos, company.CompanyID, costID); err != nil {
				return err
			}
		}

		n, err := repos.CompanyRepo.NextDocumentNumber(ctx, company.CompanyID, domain.DocumentBill)
		if err != nil {
			return fmt.Errorf("failed to allocate bill number: %w", err)
		}

		bill = domain.Bill{
			BillID:      s.NewID(),
			CompanyID:   company.CompanyID,
			BillNumber:  domain.FormatDocumentNumber(company.DocumentPrefix(domain.DocumentBill), n),
			VendorName:  req.VendorName,
			BillDate:    domain.DateOnly(req.BillDate),
			DueDate:     req.DueDate,
			Currency:    req.Currency,
			Lines:       dto.ToDocumentLines(req.Lines, s.NewID),
			TaxAmount:   req.TaxAmount,
			AmountPaid:  decimal.Zero,
			Status:      domain.StatusPosted,
			CostIDs:     req.CostIDs,
			AuditFields: domain.NewAuditFields(userID, s.Now()),
		}
		bill.RecalculateTotals()
		if bill.TaxAmount.GreaterThan(bill.TotalAmount) {
			return fmt.Errorf("%w: tax amount exceeds bill total", apperrors.ErrValidation)
		}

		if err := repos.BillingRepo.SaveBill(ctx, bill); err != nil {
			return fmt.Errorf("failed to save bill: %w", err)
		}
		if len(req.CostIDs) > 0 {
			if err := repos.CostRepo.LinkCostsToBill(ctx, bill.BillID, req.CostIDs); err != nil {
				return fmt.Errorf("failed to link costs to bill: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Bill rejected", slog.String("error", err.Error()), slog.String("company_id", req.CompanyID))
		} else {
			s.LogError(ctx, err, "Failed to create bill", slog.String("company_id", req.CompanyID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Bill created",
		slog.String("bill_id", bill.BillID),
		slog.String("bill_number", bill.BillNumber),
		slog.Int("linked_costs", len(bill.CostIDs)))
	return &bill, nil
}

func (s *billingService) checkCostLinkable(ctx context.Context, repos portsrepo.RepositoryProvider, companyID, costID string) error {
	cost, err := repos.CostRepo.FindCostByID(ctx, costID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: cost %s not found", apperrors.ErrValidation, costID)
		}
		return fmt.Errorf("failed to load cost %s: %w", costID, err)
	}
	if cost.BillID != nil {
		return fmt.Errorf("%w: cost %s is already on bill %s", apperrors.ErrValidation, costID, *cost.BillID)
	}

	candidate, err := repos.CandidateRepo.FindCandidateByID(ctx, cost.CandidateID)
	if err != nil {
		return fmt.Errorf("failed to load candidate %s: %w", cost.CandidateID, err)
	}
	jobOrder, err := repos.CandidateRepo.FindJobOrderByID(ctx, candidate.JobOrderID)
	if err != nil {
		return fmt.Errorf("failed to load job order %s: %w", candidate.JobOrderID, err)
	}
	if jobOrder.CompanyID != companyID {
		return fmt.Errorf("%w: cost %s belongs to another company", apperrors.ErrValidation, costID)
	}
	return nil
}
