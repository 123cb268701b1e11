package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/placement_ledger/internal/core/ports/services"
	"github.com/SscSPs/placement_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// postingRules turns business events into balanced PostingRequests in the
// company's base currency. Every conversion is strict.
type postingRules struct {
	converter portssvc.CurrencyConverterSvc
	charts    portssvc.ChartOfAccountsProvider
}

// accounts resolves the listed roles for company, failing on the first one
// without a configured code.
func (r postingRules) accounts(company *domain.Company, roles ...domain.AccountRole) (map[domain.AccountRole]string, error) {
	chart, err := r.charts.ChartFor(company.Code)
	if err != nil {
		return nil, err
	}
	out := make(map[domain.AccountRole]string, len(roles))
	for _, role := range roles {
		code := chart.Account(role)
		if code == "" {
			return nil, &apperrors.MissingAccountConfigurationError{CompanyCode: company.Code, Role: string(role)}
		}
		out[role] = code
	}
	return out, nil
}

// bankAccount returns requested, or the company's default bank account.
func (r postingRules) bankAccount(company *domain.Company, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}
	acc, err := r.accounts(company, domain.RoleBank)
	if err != nil {
		return "", err
	}
	return acc[domain.RoleBank], nil
}

func (r postingRules) toBase(ctx context.Context, company *domain.Company, amount decimal.Decimal, currency string, asOf time.Time) (decimal.Decimal, error) {
	conv, err := r.converter.Convert(ctx, amount, currency, company.BaseCurrency, asOf, domain.PolicyStrict)
	if err != nil {
		return decimal.Zero, err
	}
	return conv.Amount, nil
}

// costIncurred: Dr WIP, Cr AP at the incurred-date rate.
func (r postingRules) costIncurred(ctx context.Context, company *domain.Company, candidate *domain.Candidate, cost *domain.CandidateCost, postedBy string) (portssvc.PostingRequest, error) {
	acc, err := r.accounts(company, domain.RoleWIP, domain.RoleAccountsPayable)
	if err != nil {
		return portssvc.PostingRequest{}, err
	}

	local, err := r.toBase(ctx, company, cost.Amount, cost.Currency, cost.DateIncurred)
	if err != nil {
		return portssvc.PostingRequest{}, err
	}

	vendor := cost.VendorName
	if vendor == "" {
		vendor = "Vendor"
	}
	label := cost.CostType.Label()

	return portssvc.PostingRequest{
		CompanyID:   company.CompanyID,
		Description: fmt.Sprintf("Candidate Cost: %s - %s", candidateRef(candidate), label),
		Reference:   cost.CostID,
		Source:      domain.JournalSource{Type: domain.SourceCost, ID: cost.CostID},
		JournalDate: cost.DateIncurred,
		PostedBy:    postedBy,
		Lines: []domain.JournalLine{
			domain.DebitLine(acc[domain.RoleWIP], local, fmt.Sprintf("WIP - %s - %s", label, candidate.FullName)),
			domain.CreditLine(acc[domain.RoleAccountsPayable], local, fmt.Sprintf("AP - %s", vendor)),
		},
	}, nil
}

// deployment recognises revenue: Dr COGS / Cr WIP for the candidate's costs
// (each at its incurred date) and Dr AR / Cr Revenue for the agreed fee at
// the deployed date.
func (r postingRules) deployment(ctx context.Context, company *domain.Company, jobOrder *domain.JobOrder, candidate *domain.Candidate, costs []domain.CandidateCost, deployedOn time.Time, postedBy string) (portssvc.PostingRequest, error) {
	acc, err := r.accounts(company, domain.RoleCOGS, domain.RoleWIP, domain.RoleRevenue, domain.RoleAccountsReceivable)
	if err != nil {
		return portssvc.PostingRequest{}, err
	}

	totalCost := decimal.Zero
	for i := range costs {
		local, err := r.toBase(ctx, company, costs[i].Amount, costs[i].Currency, costs[i].DateIncurred)
		if err != nil {
			return portssvc.PostingRequest{}, err
		}
		totalCost = totalCost.Add(local)
	}

	fee, err := r.toBase(ctx, company, jobOrder.AgreedFee, jobOrder.Currency, deployedOn)
	if err != nil {
		return portssvc.PostingRequest{}, err
	}

	ref := candidateRef(candidate)
	return portssvc.PostingRequest{
		CompanyID:   company.CompanyID,
		Description: fmt.Sprintf("Deployment Revenue Recognition - %s", candidate.FullName),
		Reference:   ref,
		Source:      domain.JournalSource{Type: domain.SourceDeployment, ID: candidate.CandidateID},
		JournalDate: deployedOn,
		PostedBy:    postedBy,
		Lines: []domain.JournalLine{
			domain.DebitLine(acc[domain.RoleCOGS], totalCost, fmt.Sprintf("COGS - Deployment %s", candidate.FullName)),
			domain.CreditLine(acc[domain.RoleWIP], totalCost, fmt.Sprintf("WIP Cleared - %s", ref)),
			domain.CreditLine(acc[domain.RoleRevenue], fee, fmt.Sprintf("Revenue - Placement %s", candidate.FullName)),
			domain.DebitLine(acc[domain.RoleAccountsReceivable], fee, fmt.Sprintf("AR - Placement Fee %s", ref)),
		},
	}, nil
}

// invoicePosted: Dr AR total, Cr Revenue net, Cr Tax Payable tax (omitted
// when zero), all at the invoice-date rate.
func (r postingRules) invoicePosted(ctx context.Context, company *domain.Company, invoice *domain.Invoice, postedBy string) (portssvc.PostingRequest, error) {
	acc, err := r.accounts(company, domain.RoleAccountsReceivable, domain.RoleRevenue)
	if err != nil {
		return portssvc.PostingRequest{}, err
	}

	total, err := r.toBase(ctx, company, invoice.TotalAmount, invoice.Currency, invoice.InvoiceDate)
	if err != nil {
		return portssvc.PostingRequest{}, err
	}
	tax, err := r.toBase(ctx, company, invoice.TaxAmount, invoice.Currency, invoice.InvoiceDate)
	if err != nil {
		return portssvc.PostingRequest{}, err
	}
	net := total.Sub(tax)

	lines := []domain.JournalLine{
		domain.DebitLine(acc[domain.RoleAccountsReceivable], total, fmt.Sprintf("Invoice %s", invoice.InvoiceNumber)),
		domain.CreditLine(acc[domain.RoleRevenue], net, fmt.Sprintf("Invoice %s - Service", invoice.InvoiceNumber)),
	}
	if tax.IsPositive() {
		taxAcc, err := r.accounts(company, domain.RoleTaxPayable)
		if err != nil {
			return portssvc.PostingRequest{}, err
		}
		taxName := company.TaxName
		if taxName == "" {
			taxName = "Output Tax"
		}
		lines = append(lines, domain.CreditLine(taxAcc[domain.RoleTaxPayable], tax, fmt.Sprintf("%s - %s", taxName, invoice.InvoiceNumber)))
	}

	return portssvc.PostingRequest{
		CompanyID:   company.CompanyID,
		Description: fmt.Sprintf("Invoice Posted: %s", invoice.InvoiceNumber),
		Reference:   invoice.InvoiceNumber,
		Source:      domain.JournalSource{Type: domain.SourceInvoice, ID: invoice.InvoiceID},
		JournalDate: invoice.InvoiceDate,
		PostedBy:    postedBy,
		Lines:       lines,
	}, nil
}

// receiptRecorded: Dr Bank at the receipt-date rate, Cr AR for the settled
// invoice amount at the invoice-date rate. A residual above the balance
// tolerance goes to FX gain/loss on the side that keeps the journal balanced:
// a gain is credited and a loss is debited. settled is in the invoice currency and ignored when invoice is nil.
func (r postingRules) receiptRecorded(ctx context.Context, company *domain.Company, receipt *domain.Receipt, invoice *domain.Invoice, settled decimal.Decimal, postedBy string) (portssvc.PostingRequest, error) {
	acc, err := r.accounts(company, domain.RoleAccountsReceivable)
	if err != nil {
		return portssvc.PostingRequest{}, err
	}

	bank, err := r.toBase(ctx, company, receipt.Amount, receipt.Currency, receipt.ReceiptDate)
	if err != nil {
		return portssvc.PostingRequest{}, err
	}

	ar := bank
	arDesc := "AR Cleared"
	if invoice != nil {
		ar, err = r.toBase(ctx, company, settled, invoice.Currency, invoice.InvoiceDate)
		if err != nil {
			return portssvc.PostingRequest{}, err
		}
		arDesc = fmt.Sprintf("AR Cleared - %s", invoice.InvoiceNumber)
	}

	lines := []domain.JournalLine{
		domain.DebitLine(receipt.BankAccount, bank, fmt.Sprintf("Payment received - %s", receipt.Reference)),
		domain.CreditLine(acc[domain.RoleAccountsReceivable], ar, arDesc),
	}

	residual := bank.Sub(ar)
	if residual.Abs().GreaterThan(accounting.BalanceTolerance) {
		fx, err := r.accounts(company, domain.RoleFXGainLoss)
		if err != nil {
			return portssvc.PostingRequest{}, err
		}
		if residual.IsPositive() {
			lines = append(lines, domain.CreditLine(fx[domain.RoleFXGainLoss], residual, "FX Gain on receipt"))
		} else {
			lines = append(lines, domain.DebitLine(fx[domain.RoleFXGainLoss], residual.Abs(), "FX Loss on receipt"))
		}
	}

	return portssvc.PostingRequest{
		CompanyID:   company.CompanyID,
		Description: fmt.Sprintf("Receipt: %s", receipt.Reference),
		Reference:   receipt.Reference,
		Source:      domain.JournalSource{Type: domain.SourceReceipt, ID: receipt.ReceiptID},
		JournalDate: receipt.ReceiptDate,
		PostedBy:    postedBy,
		Lines:       lines,
	}, nil
}

// paymentRecorded: Dr AP, Cr Bank at the payment-date rate.
func (r postingRules) paymentRecorded(ctx context.Context, company *domain.Company, payment *domain.Payment, payee string, postedBy string) (portssvc.PostingRequest, error) {
	acc, err := r.accounts(company, domain.RoleAccountsPayable)
	if err != nil {
		return portssvc.PostingRequest{}, err
	}

	amount, err := r.toBase(ctx, company, payment.Amount, payment.Currency, payment.PaymentDate)
	if err != nil {
		return portssvc.PostingRequest{}, err
	}

	if payee == "" {
		payee = "Vendor"
	}
	return portssvc.PostingRequest{
		CompanyID:   company.CompanyID,
		Description: fmt.Sprintf("Payment: %s", payment.Reference),
		Reference:   payment.Reference,
		Source:      domain.JournalSource{Type: domain.SourcePayment, ID: payment.PaymentID},
		JournalDate: payment.PaymentDate,
		PostedBy:    postedBy,
		Lines: []domain.JournalLine{
			domain.DebitLine(acc[domain.RoleAccountsPayable], amount, fmt.Sprintf("Payment to %s", payee)),
			domain.CreditLine(payment.BankAccount, amount, fmt.Sprintf("Bank payment - %s", payment.Reference)),
		},
	}, nil
}

func candidateRef(c *domain.Candidate) string {
	if c.PassportNumber != "" {
		return c.PassportNumber
	}
	return c.FullName
}
