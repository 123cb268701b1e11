package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DocumentKind selects which per-company counter a document number draws from.
type DocumentKind string

const (
	DocumentInvoice DocumentKind = "INVOICE"
	DocumentBill    DocumentKind = "BILL"
)

// Company is a country subsidiary with its own base currency and ledger.
type Company struct {
	CompanyID      string          `json:"companyID"`
	Code           string          `json:"code"` // Unique, e.g. "AE"
	Name           string          `json:"name"`
	BaseCurrency   string          `json:"baseCurrency"`
	TaxName        string          `json:"taxName"`
	TaxRate        decimal.Decimal `json:"taxRate"` // Percent
	InvoicePrefix  string          `json:"invoicePrefix"`
	InvoiceCounter int64           `json:"invoiceCounter"` // Last number issued
	BillCounter    int64           `json:"billCounter"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// FormatDocumentNumber renders a document number such as INV-000042.
func FormatDocumentNumber(prefix string, n int64) string {
	return fmt.Sprintf("%s-%06d", prefix, n)
}

// DocumentPrefix returns the numbering prefix for kind.
func (c Company) DocumentPrefix(kind DocumentKind) string {
	if kind == DocumentBill {
		return "BILL"
	}
	if c.InvoicePrefix == "" {
		return "INV"
	}
	return c.InvoicePrefix
}
