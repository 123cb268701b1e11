package repositories

import (
	"context"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
)

// BillingReader defines read operations for invoices and bills
type BillingReader interface {
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	FindBillByID(ctx context.Context, billID string) (*domain.Bill, error)
}

// BillingWriter defines write operations for invoices, bills and their settlements
type BillingWriter interface {
	// SaveInvoice persists a new invoice with its lines.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// LockInvoice loads the invoice and holds a row lock on it until the
	// surrounding transaction ends.
	LockInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// UpdateInvoiceState persists Status, AmountPaid, JournalID and the update audit fields.
	UpdateInvoiceState(ctx context.Context, invoice domain.Invoice) error

	SaveBill(ctx context.Context, bill domain.Bill) error
	LockBill(ctx context.Context, billID string) (*domain.Bill, error)

	// UpdateBillState persists Status, AmountPaid and the update audit fields.
	UpdateBillState(ctx context.Context, bill domain.Bill) error

	SaveReceipt(ctx context.Context, receipt domain.Receipt) error
	SavePayment(ctx context.Context, payment domain.Payment) error
}

// BillingRepositoryFacade combines all billing-related repository interfaces
type BillingRepositoryFacade interface {
	BillingReader
	BillingWriter
}
