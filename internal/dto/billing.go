package dto

import (
	"time"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DocumentLineRequest is one quantity x unit price line.
type DocumentLineRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	CandidateID *string         `json:"candidateID,omitempty"`
}

// CreateInvoiceRequest defines data for raising an invoice.
type CreateInvoiceRequest struct {
	CompanyID    string                `json:"-"` // From the path
	EmployerName string                `json:"employerName" binding:"required"`
	JobOrderID   *string               `json:"jobOrderID,omitempty"`
	InvoiceDate  time.Time             `json:"invoiceDate" binding:"required"`
	DueDate      *time.Time            `json:"dueDate,omitempty"`
	Currency     string                `json:"currency" binding:"required,len=3,uppercase"`
	Lines        []DocumentLineRequest `json:"lines" binding:"required,min=1,dive"`
	TaxAmount    decimal.Decimal       `json:"taxAmount"` // Portion of the line total that is tax

	// ApplyCompanyTax appends a tax line at the company's tax rate instead of
	// taking TaxAmount from the request.
	ApplyCompanyTax bool `json:"applyCompanyTax"`
	Draft           bool `json:"draft"` // Store without posting
}

// CreateBillRequest defines data for recording a vendor bill.
type CreateBillRequest struct {
	CompanyID  string                `json:"-"` // From the path
	VendorName string                `json:"vendorName" binding:"required"`
	BillDate   time.Time             `json:"billDate" binding:"required"`
	DueDate    *time.Time            `json:"dueDate,omitempty"`
	Currency   string                `json:"currency" binding:"required,len=3,uppercase"`
	Lines      []DocumentLineRequest `json:"lines" binding:"required,min=1,dive"`
	TaxAmount  decimal.Decimal       `json:"taxAmount"`
	CostIDs    []string              `json:"costIDs,omitempty"`
}

// RecordReceiptRequest defines money received, optionally against an invoice.
type RecordReceiptRequest struct {
	CompanyID   string          `json:"-"` // From the path
	InvoiceID   *string         `json:"invoiceID,omitempty"`
	ReceiptDate time.Time       `json:"receiptDate" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency" binding:"required,len=3,uppercase"`
	BankAccount string          `json:"bankAccount"` // Defaults to the company's bank account
	Reference   string          `json:"reference"`
}

// RecordPaymentRequest defines money paid, optionally against a bill.
type RecordPaymentRequest struct {
	CompanyID   string          `json:"-"` // From the path
	BillID      *string         `json:"billID,omitempty"`
	PaymentDate time.Time       `json:"paymentDate" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency" binding:"required,len=3,uppercase"`
	BankAccount string          `json:"bankAccount"`
	Reference   string          `json:"reference"`
}

// ToDocumentLines converts request lines into domain lines with fresh ids.
func ToDocumentLines(lines []DocumentLineRequest, newID func() string) []domain.DocumentLine {
	out := make([]domain.DocumentLine, len(lines))
	for i, l := range lines {
		out[i] = domain.DocumentLine{
			LineID:      newID(),
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			CandidateID: l.CandidateID,
		}
	}
	return out
}

// InvoiceResponse returns an invoice and, when posted, its journal.
type InvoiceResponse struct {
	Invoice domain.Invoice   `json:"invoice"`
	Journal *JournalResponse `json:"journal,omitempty"`
}

// ReceiptResponse returns a receipt and its journal.
type ReceiptResponse struct {
	Receipt domain.Receipt   `json:"receipt"`
	Journal *JournalResponse `json:"journal,omitempty"`
}

// PaymentResponse returns a payment and its journal.
type PaymentResponse struct {
	Payment domain.Payment   `json:"payment"`
	Journal *JournalResponse `json:"journal,omitempty"`
}
