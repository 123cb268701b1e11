package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/placement_ledger/internal/models"
	"github.com/SscSPs/placement_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxCompanyRepository struct {
	BaseRepository
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

const companyColumns = `
	company_id, code, name, base_currency, tax_name, tax_rate, invoice_prefix,
	invoice_counter, bill_counter, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCompany(row pgx.Row) (models.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.CompanyID,
		&m.Code,
		&m.Name,
		&m.BaseCurrency,
		&m.TaxName,
		&m.TaxRate,
		&m.InvoicePrefix,
		&m.InvoiceCounter,
		&m.BillCounter,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCompanyRepository) findOne(ctx context.Context, where string, arg any) (*domain.Company, error) {
	m, err := scanCompany(r.DB.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	company := mapping.ToDomainCompany(m)
	return &company, nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	return r.findOne(ctx, "company_id = $1", companyID)
}

func (r *PgxCompanyRepository) FindCompanyByCode(ctx context.Context, code string) (*domain.Company, error) {
	return r.findOne(ctx, "code = $1", strings.ToUpper(code))
}

func (r *PgxCompanyRepository) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	modelCompanies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Company, error) {
		return scanCompany(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan companies: %w", err)
	}
	return mapping.ToDomainCompanySlice(modelCompanies), nil
}

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)
	_, err := r.DB.Exec(ctx, `
		INSERT INTO companies (`+companyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		m.CompanyID, m.Code, m.Name, m.BaseCurrency, m.TaxName, m.TaxRate, m.InvoicePrefix,
		m.InvoiceCounter, m.BillCounter, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to save company "+m.Code)
	}
	return nil
}

// UpdateCompany rewrites the mutable fields. Code, counters and creation
// audit fields are never touched here.
func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)

	// The base currency may only change while the ledger is empty.
	var currentBase string
	var hasJournals bool
	err := r.DB.QueryRow(ctx, `
		SELECT c.base_currency, EXISTS (SELECT 1 FROM journals j WHERE j.company_id = c.company_id)
		FROM companies c
		WHERE c.company_id = $1
		FOR UPDATE OF c`, m.CompanyID).Scan(&currentBase, &hasJournals)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to load company %s: %w", m.CompanyID, err)
	}
	if currentBase != m.BaseCurrency && hasJournals {
		return fmt.Errorf("%w: base currency of company %s cannot change once journals exist", apperrors.ErrValidation, m.CompanyID)
	}

	_, err = r.DB.Exec(ctx, `
		UPDATE companies
		SET name = $2, base_currency = $3, tax_name = $4, tax_rate = $5, invoice_prefix = $6,
		    is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE company_id = $1`,
		m.CompanyID, m.Name, m.BaseCurrency, m.TaxName, m.TaxRate, m.InvoicePrefix,
		m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update company "+m.CompanyID)
	}
	return nil
}

// NextDocumentNumber increments the counter in place; the row lock taken by
// UPDATE serialises concurrent callers.
func (r *PgxCompanyRepository) NextDocumentNumber(ctx context.Context, companyID string, kind domain.DocumentKind) (int64, error) {
	var query string
	switch kind {
	case domain.DocumentInvoice:
		query = `UPDATE companies SET invoice_counter = invoice_counter + 1 WHERE company_id = $1 RETURNING invoice_counter`
	case domain.DocumentBill:
		query = `UPDATE companies SET bill_counter = bill_counter + 1 WHERE company_id = $1 RETURNING bill_counter`
	default:
		return 0, fmt.Errorf("%w: unknown document kind '%s'", apperrors.ErrValidation, kind)
	}

	var n int64
	if err := r.DB.QueryRow(ctx, query, companyID).Scan(&n); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("failed to allocate %s number for company %s: %w", strings.ToLower(string(kind)), companyID, err)
	}
	return n, nil
}
