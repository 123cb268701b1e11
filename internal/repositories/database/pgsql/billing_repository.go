package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// PgxBillingRepository stores invoices, bills and their settlements.
type PgxBillingRepository struct {
	BaseRepository
}

var _ portsrepo.BillingRepositoryFacade = (*PgxBillingRepository)(nil)

const invoiceColumns = `
	invoice_id, company_id, invoice_number, employer_name, job_order_id, invoice_date, due_date,
	currency_code, total_amount, tax_amount, amount_paid, status, journal_id,
	created_at, created_by, last_updated_at, last_updated_by`

const billColumns = `
	bill_id, company_id, bill_number, vendor_name, bill_date, due_date,
	currency_code, total_amount, tax_amount, amount_paid, status,
	created_at, created_by, last_updated_at, last_updated_by`

// documentLineTables guards the table names interpolated into line queries.
var documentLineTables = map[string]string{
	"invoice_lines": "invoice_id",
	"bill_lines":    "bill_id",
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	var status string
	err := row.Scan(
		&inv.InvoiceID,
		&inv.CompanyID,
		&inv.InvoiceNumber,
		&inv.EmployerName,
		&inv.JobOrderID,
		&inv.InvoiceDate,
		&inv.DueDate,
		&inv.Currency,
		&inv.TotalAmount,
		&inv.TaxAmount,
		&inv.AmountPaid,
		&status,
		&inv.JournalID,
		&inv.CreatedAt,
		&inv.CreatedBy,
		&inv.LastUpdatedAt,
		&inv.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	inv.Status = domain.DocumentStatus(status)
	inv.InvoiceDate = domain.DateOnly(inv.InvoiceDate)
	return &inv, nil
}

func scanBill(row pgx.Row) (*domain.Bill, error) {
	var b domain.Bill
	var status string
	err := row.Scan(
		&b.BillID,
		&b.CompanyID,
		&b.BillNumber,
		&b.VendorName,
		&b.BillDate,
		&b.DueDate,
		&b.Currency,
		&b.TotalAmount,
		&b.TaxAmount,
		&b.AmountPaid,
		&status,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	b.Status = domain.DocumentStatus(status)
	b.BillDate = domain.DateOnly(b.BillDate)
	return &b, nil
}

func (r *PgxBillingRepository) findLines(ctx context.Context, table, ownerID string) ([]domain.DocumentLine, error) {
	ownerColumn, ok := documentLineTables[table]
	if !ok {
		return nil, fmt.Errorf("unknown document line table %q", table)
	}
	rows, err := r.DB.Query(ctx, `
		SELECT line_id, description, quantity, unit_price, amount, candidate_id
		FROM `+table+`
		WHERE `+ownerColumn+` = $1
		ORDER BY line_no`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s for %s: %w", table, ownerID, err)
	}
	defer rows.Close()

	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DocumentLine, error) {
		var l domain.DocumentLine
		err := row.Scan(&l.LineID, &l.Description, &l.Quantity, &l.UnitPrice, &l.Amount, &l.CandidateID)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", table, err)
	}
	return lines, nil
}

func (r *PgxBillingRepository) insertLines(ctx context.Context, table, ownerID string, lines []domain.DocumentLine) error {
	ownerColumn, ok := documentLineTables[table]
	if !ok {
		return fmt.Errorf("unknown document line table %q", table)
	}
	batch := &pgx.Batch{}
	for i, l := range lines {
		batch.Queue(`
			INSERT INTO `+table+` (line_id, `+ownerColumn+`, line_no, description, quantity, unit_price, amount, candidate_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			l.LineID, ownerID, i+1, l.Description, l.Quantity, l.UnitPrice, l.Amount, l.CandidateID,
		)
	}
	br := r.DB.SendBatch(ctx, batch)
	defer br.Close()

	for range lines {
		if _, err := br.Exec(); err != nil {
			return mapPgError(err, "failed to insert "+table)
		}
	}
	return nil
}

func (r *PgxBillingRepository) loadInvoice(ctx context.Context, query, invoiceID string) (*domain.Invoice, error) {
	inv, err := scanInvoice(r.DB.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	if inv.Lines, err = r.findLines(ctx, "invoice_lines", invoiceID); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *PgxBillingRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.loadInvoice(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1`, invoiceID)
}

func (r *PgxBillingRepository) LockInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.loadInvoice(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1 FOR UPDATE`, invoiceID)
}

func (r *PgxBillingRepository) SaveInvoice(ctx context.Context, inv domain.Invoice) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		inv.InvoiceID, inv.CompanyID, inv.InvoiceNumber, inv.EmployerName, inv.JobOrderID,
		domain.DateOnly(inv.InvoiceDate), inv.DueDate, inv.Currency, inv.TotalAmount, inv.TaxAmount,
		inv.AmountPaid, string(inv.Status), inv.JournalID,
		inv.CreatedAt, inv.CreatedBy, inv.LastUpdatedAt, inv.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to save invoice "+inv.InvoiceNumber)
	}
	return r.insertLines(ctx, "invoice_lines", inv.InvoiceID, inv.Lines)
}

func (r *PgxBillingRepository) UpdateInvoiceState(ctx context.Context, inv domain.Invoice) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE invoices
		SET status = $2, amount_paid = $3, journal_id = $4, last_updated_at = $5, last_updated_by = $6
		WHERE invoice_id = $1`,
		inv.InvoiceID, string(inv.Status), inv.AmountPaid, inv.JournalID, inv.LastUpdatedAt, inv.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update invoice "+inv.InvoiceID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBillingRepository) loadBill(ctx context.Context, query, billID string) (*domain.Bill, error) {
	b, err := scanBill(r.DB.QueryRow(ctx, query, billID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bill %s: %w", billID, err)
	}
	if b.Lines, err = r.findLines(ctx, "bill_lines", billID); err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `SELECT cost_id FROM candidate_costs WHERE bill_id = $1 ORDER BY cost_id`, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to query costs for bill %s: %w", billID, err)
	}
	costIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan costs for bill %s: %w", billID, err)
	}
	if len(costIDs) > 0 {
		b.CostIDs = costIDs
	}
	return b, nil
}

func (r *PgxBillingRepository) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	return r.loadBill(ctx, `SELECT `+billColumns+` FROM bills WHERE bill_id = $1`, billID)
}

func (r *PgxBillingRepository) LockBill(ctx context.Context, billID string) (*domain.Bill, error) {
	return r.loadBill(ctx, `SELECT `+billColumns+` FROM bills WHERE bill_id = $1 FOR UPDATE`, billID)
}

// SaveBill inserts the bill and its lines. Cost links are written separately
// with LinkCostsToBill.
func (r *PgxBillingRepository) SaveBill(ctx context.Context, b domain.Bill) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO bills (`+billColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		b.BillID, b.CompanyID, b.BillNumber, b.VendorName, domain.DateOnly(b.BillDate), b.DueDate,
		b.Currency, b.TotalAmount, b.TaxAmount, b.AmountPaid, string(b.Status),
		b.CreatedAt, b.CreatedBy, b.LastUpdatedAt, b.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to save bill "+b.BillNumber)
	}
	return r.insertLines(ctx, "bill_lines", b.BillID, b.Lines)
}

func (r *PgxBillingRepository) UpdateBillState(ctx context.Context, b domain.Bill) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE bills
		SET status = $2, amount_paid = $3, last_updated_at = $4, last_updated_by = $5
		WHERE bill_id = $1`,
		b.BillID, string(b.Status), b.AmountPaid, b.LastUpdatedAt, b.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update bill "+b.BillID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBillingRepository) SaveReceipt(ctx context.Context, rc domain.Receipt) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO receipts (
			receipt_id, company_id, invoice_id, receipt_date, amount, currency_code, bank_account,
			reference, journal_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		rc.ReceiptID, rc.CompanyID, rc.InvoiceID, domain.DateOnly(rc.ReceiptDate), rc.Amount, rc.Currency,
		rc.BankAccount, rc.Reference, rc.JournalID,
		rc.CreatedAt, rc.CreatedBy, rc.LastUpdatedAt, rc.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to save receipt "+rc.ReceiptID)
	}
	return nil
}

func (r *PgxBillingRepository) SavePayment(ctx context.Context, p domain.Payment) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO payments (
			payment_id, company_id, bill_id, payment_date, amount, currency_code, bank_account,
			reference, journal_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.PaymentID, p.CompanyID, p.BillID, domain.DateOnly(p.PaymentDate), p.Amount, p.Currency,
		p.BankAccount, p.Reference, p.JournalID,
		p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to save payment "+p.PaymentID)
	}
	return nil
}
