package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
)

func copyInvoice(inv domain.Invoice) domain.Invoice {
	inv.Lines = cloneLines(inv.Lines)
	return inv
}

func copyBill(b domain.Bill) domain.Bill {
	b.Lines = cloneLines(b.Lines)
	b.CostIDs = cloneLines(b.CostIDs)
	return b
}

func (r *repo) FindInvoiceByID(_ context.Context, invoiceID string) (*domain.Invoice, error) {
	var out *domain.Invoice
	err := r.h.read(func(st *state) error {
		inv, ok := st.invoices[invoiceID]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = ptr(copyInvoice(inv))
		return nil
	})
	return out, err
}

func (r *repo) LockInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.FindInvoiceByID(ctx, invoiceID)
}

func (r *repo) SaveInvoice(_ context.Context, invoice domain.Invoice) error {
	return r.h.write(func(st *state) error {
		for _, existing := range st.invoices {
			if existing.InvoiceID == invoice.InvoiceID ||
				(existing.CompanyID == invoice.CompanyID && existing.InvoiceNumber == invoice.InvoiceNumber) {
				return fmt.Errorf("%w: invoice %s", apperrors.ErrDuplicate, invoice.InvoiceNumber)
			}
		}
		st.invoices[invoice.InvoiceID] = copyInvoice(invoice)
		return nil
	})
}

func (r *repo) UpdateInvoiceState(_ context.Context, invoice domain.Invoice) error {
	return r.h.write(func(st *state) error {
		existing, ok := st.invoices[invoice.InvoiceID]
		if !ok {
			return apperrors.ErrNotFound
		}
		existing.Status = invoice.Status
		existing.AmountPaid = invoice.AmountPaid
		existing.JournalID = invoice.JournalID
		existing.LastUpdatedAt = invoice.LastUpdatedAt
		existing.LastUpdatedBy = invoice.LastUpdatedBy
		st.invoices[invoice.InvoiceID] = existing
		return nil
	})
}

func (r *repo) FindBillByID(_ context.Context, billID string) (*domain.Bill, error) {
	var out *domain.Bill
	err := r.h.read(func(st *state) error {
		b, ok := st.bills[billID]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = ptr(copyBill(b))
		return nil
	})
	return out, err
}

func (r *repo) LockBill(ctx context.Context, billID string) (*domain.Bill, error) {
	return r.FindBillByID(ctx, billID)
}

func (r *repo) SaveBill(_ context.Context, bill domain.Bill) error {
	return r.h.write(func(st *state) error {
		for _, existing := range st.bills {
			if existing.BillID == bill.BillID ||
				(existing.CompanyID == bill.CompanyID && existing.BillNumber == bill.BillNumber) {
				return fmt.Errorf("%w: bill %s", apperrors.ErrDuplicate, bill.BillNumber)
			}
		}
		st.bills[bill.BillID] = copyBill(bill)
		return nil
	})
}

func (r *repo) UpdateBillState(_ context.Context, bill domain.Bill) error {
	return r.h.write(func(st *state) error {
		existing, ok := st.bills[bill.BillID]
		if !ok {
			return apperrors.ErrNotFound
		}
		existing.Status = bill.Status
		existing.AmountPaid = bill.AmountPaid
		existing.LastUpdatedAt = bill.LastUpdatedAt
		existing.LastUpdatedBy = bill.LastUpdatedBy
		st.bills[bill.BillID] = existing
		return nil
	})
}

func (r *repo) SaveReceipt(_ context.Context, receipt domain.Receipt) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.receipts[receipt.ReceiptID]; ok {
			return fmt.Errorf("%w: receipt %s", apperrors.ErrDuplicate, receipt.ReceiptID)
		}
		st.receipts[receipt.ReceiptID] = receipt
		return nil
	})
}

func (r *repo) SavePayment(_ context.Context, payment domain.Payment) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.payments[payment.PaymentID]; ok {
			return fmt.Errorf("%w: payment %s", apperrors.ErrDuplicate, payment.PaymentID)
		}
		st.payments[payment.PaymentID] = payment
		return nil
	})
}
