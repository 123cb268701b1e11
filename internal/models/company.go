package models

import "github.com/shopspring/decimal"

// Company represents a row of the companies table.
type Company struct {
	CompanyID      string          `db:"company_id"`
	Code           string          `db:"code"`
	Name           string          `db:"name"`
	BaseCurrency   string          `db:"base_currency"`
	TaxName        string          `db:"tax_name"`
	TaxRate        decimal.Decimal `db:"tax_rate"`
	InvoicePrefix  string          `db:"invoice_prefix"`
	InvoiceCounter int64           `db:"invoice_counter"`
	BillCounter    int64           `db:"bill_counter"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
