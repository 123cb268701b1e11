package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentStatus is the lifecycle state shared by invoices and bills.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "DRAFT"
	StatusPosted    DocumentStatus = "POSTED"
	StatusPaid      DocumentStatus = "PAID"
	StatusCancelled DocumentStatus = "CANCELLED"
)

// DocumentLine is a quantity x unit price line on an invoice or bill.
type DocumentLine struct {
	LineID      string          `json:"lineID"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
	CandidateID *string         `json:"candidateID,omitempty"`
}

func recalculate(lines []DocumentLine) decimal.Decimal {
	total := decimal.Zero
	for i := range lines {
		lines[i].Amount = lines[i].Quantity.Mul(lines[i].UnitPrice).Round(2)
		total = total.Add(lines[i].Amount)
	}
	return total
}

// Invoice is a receivable raised against an employer.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	CompanyID     string          `json:"companyID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	EmployerName  string          `json:"employerName"`
	JobOrderID    *string         `json:"jobOrderID,omitempty"`
	InvoiceDate   time.Time       `json:"invoiceDate"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
	Currency      string          `json:"currency"`
	Lines         []DocumentLine  `json:"lines"`
	TotalAmount   decimal.Decimal `json:"totalAmount"` // Includes tax
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	Status        DocumentStatus  `json:"status"`
	JournalID     *string         `json:"journalID,omitempty"`
	AuditFields
}

// RecalculateTotals recomputes every line amount and the invoice total.
func (inv *Invoice) RecalculateTotals() {
	inv.TotalAmount = recalculate(inv.Lines)
}

// NetAmount is the revenue portion of the total.
func (inv Invoice) NetAmount() decimal.Decimal {
	return inv.TotalAmount.Sub(inv.TaxAmount)
}

// Outstanding is what remains to be received.
func (inv Invoice) Outstanding() decimal.Decimal {
	return inv.TotalAmount.Sub(inv.AmountPaid)
}

// Bill is a payable owed to a vendor.
type Bill struct {
	BillID      string          `json:"billID"`
	CompanyID   string          `json:"companyID"`
	BillNumber  string          `json:"billNumber"`
	VendorName  string          `json:"vendorName"`
	BillDate    time.Time       `json:"billDate"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	Currency    string          `json:"currency"`
	Lines       []DocumentLine  `json:"lines"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	AmountPaid  decimal.Decimal `json:"amountPaid"`
	Status      DocumentStatus  `json:"status"`
	CostIDs     []string        `json:"costIDs,omitempty"`
	AuditFields
}

// RecalculateTotals recomputes every line amount and the bill total.
func (b *Bill) RecalculateTotals() {
	b.TotalAmount = recalculate(b.Lines)
}

// NetAmount is the total less tax.
func (b Bill) NetAmount() decimal.Decimal {
	return b.TotalAmount.Sub(b.TaxAmount)
}

// Outstanding is what remains to be paid.
func (b Bill) Outstanding() decimal.Decimal {
	return b.TotalAmount.Sub(b.AmountPaid)
}

// Receipt records money received into a bank account.
type Receipt struct {
	ReceiptID   string          `json:"receiptID"`
	CompanyID   string          `json:"companyID"`
	InvoiceID   *string         `json:"invoiceID,omitempty"`
	ReceiptDate time.Time       `json:"receiptDate"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	BankAccount string          `json:"bankAccount"`
	Reference   string          `json:"reference"`
	JournalID   *string         `json:"journalID,omitempty"`
	AuditFields
}

// Payment records money paid out of a bank account.
type Payment struct {
	PaymentID   string          `json:"paymentID"`
	CompanyID   string          `json:"companyID"`
	BillID      *string         `json:"billID,omitempty"`
	PaymentDate time.Time       `json:"paymentDate"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	BankAccount string          `json:"bankAccount"`
	Reference   string          `json:"reference"`
	JournalID   *string         `json:"journalID,omitempty"`
	AuditFields
}
