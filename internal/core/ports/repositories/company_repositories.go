package repositories

import (
	"context"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
)

// CompanyReader defines read operations for company data
type CompanyReader interface {
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	FindCompanyByCode(ctx context.Context, code string) (*domain.Company, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
}

// CompanyWriter defines write operations for company data
type CompanyWriter interface {
	// SaveCompany persists a new company. A duplicate code yields apperrors.ErrDuplicate.
	SaveCompany(ctx context.Context, company domain.Company) error

	// UpdateCompany updates the mutable company fields. Changing the base
	// currency once the company has journals yields apperrors.ErrValidation.
	UpdateCompany(ctx context.Context, company domain.Company) error

	// NextDocumentNumber atomically increments the company's counter for kind
	// and returns the value that was issued.
	NextDocumentNumber(ctx context.Context, companyID string, kind domain.DocumentKind) (int64, error)
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
