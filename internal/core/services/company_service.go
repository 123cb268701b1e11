package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/placement_ledger/internal/core/ports/services"
	"github.com/SscSPs/placement_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// companyService implements the CompanySvcFacade interface
type companyService struct {
	BaseService
	companyRepo  portsrepo.CompanyRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
}

// NewCompanyService creates a new company service with the provided dependencies
func NewCompanyService(
	companyRepo portsrepo.CompanyRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
	options ...ServiceOption,
) portssvc.CompanySvcFacade {
	return &companyService{
		BaseService:  newBaseService(options...),
		companyRepo:  companyRepo,
		currencyRepo: currencyRepo,
	}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// GetCompanyByID retrieves a company by its ID
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company by ID",
				slog.String("company_id", companyID))
		}
		return nil, err
	}

	s.LogDebug(ctx, "Company retrieved successfully",
		slog.String("company_id", company.CompanyID))
	return company, nil
}

// ListCompanies retrieves every company
func (s *companyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompanies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies")
		return nil, err
	}
	if companies == nil {
		return []domain.Company{}, nil
	}
	return companies, nil
}

// CreateCompany creates a new company with zeroed document counters
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, fmt.Errorf("%w: company code is required", apperrors.ErrValidation)
	}
	if err := s.validateBaseCurrency(ctx, req.BaseCurrency); err != nil {
		return nil, err
	}
	if err := validateTaxRate(req.TaxRate); err != nil {
		return nil, err
	}

	company := domain.Company{
		CompanyID:     s.NewID(),
		Code:          code,
		Name:          req.Name,
		BaseCurrency:  strings.ToUpper(req.BaseCurrency),
		TaxName:       req.TaxName,
		TaxRate:       req.TaxRate,
		InvoicePrefix: req.InvoicePrefix,
		IsActive:      true,
		AuditFields:   domain.NewAuditFields(creatorUserID, s.Now()),
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: company code %s already exists", apperrors.ErrDuplicate, code)
		}
		s.LogError(ctx, err, "Failed to save company", slog.String("company_code", code))
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.LogInfo(ctx, "Company created",
		slog.String("company_id", company.CompanyID),
		slog.String("company_code", company.Code),
		slog.String("base_currency", company.BaseCurrency))
	return &company, nil
}

// UpdateCompany applies the non-nil fields of req.
func (s *companyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, userID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.BaseCurrency != nil && !strings.EqualFold(*req.BaseCurrency, company.BaseCurrency) {
		if err := s.validateBaseCurrency(ctx, *req.BaseCurrency); err != nil {
			return nil, err
		}
		company.BaseCurrency = strings.ToUpper(*req.BaseCurrency)
	}
	if req.TaxName != nil {
		company.TaxName = *req.TaxName
	}
	if req.TaxRate != nil {
		if err := validateTaxRate(*req.TaxRate); err != nil {
			return nil, err
		}
		company.TaxRate = *req.TaxRate
	}
	if req.InvoicePrefix != nil {
		company.InvoicePrefix = *req.InvoicePrefix
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}
	company.LastUpdatedAt = s.Now()
	company.LastUpdatedBy = userID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to update company", slog.String("company_id", companyID))
		}
		return nil, fmt.Errorf("failed to update company %s: %w", companyID, err)
	}

	s.LogInfo(ctx, "Company updated", slog.String("company_id", companyID), slog.String("user_id", userID))
	return company, nil
}

func (s *companyService) validateBaseCurrency(ctx context.Context, code string) error {
	code = strings.ToUpper(code)
	if !domain.IsSupportedCurrency(code) {
		return fmt.Errorf("%w: base currency '%s' is not supported", apperrors.ErrValidation, code)
	}
	if s.currencyRepo == nil {
		return nil
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: base currency '%s' does not exist", apperrors.ErrValidation, code)
		}
		s.LogError(ctx, err, "Failed to check base currency", slog.String("currency_code", code))
		return fmt.Errorf("failed to check base currency: %w", err)
	}
	return nil
}

func validateTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: tax rate must be between 0 and 100", apperrors.ErrValidation)
	}
	return nil
}
