package dto

import (
	"time"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCompanyRequest defines data for creating a new company.
type CreateCompanyRequest struct {
	Code          string          `json:"code" binding:"required,max=10"`
	Name          string          `json:"name" binding:"required"`
	BaseCurrency  string          `json:"baseCurrency" binding:"required,len=3,uppercase"`
	TaxName       string          `json:"taxName"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	InvoicePrefix string          `json:"invoicePrefix" binding:"omitempty,max=10"`
}

// UpdateCompanyRequest defines the fields that may change on a company. Nil
// fields are left untouched.
type UpdateCompanyRequest struct {
	Name          *string          `json:"name,omitempty"`
	BaseCurrency  *string          `json:"baseCurrency,omitempty" binding:"omitempty,len=3,uppercase"`
	TaxName       *string          `json:"taxName,omitempty"`
	TaxRate       *decimal.Decimal `json:"taxRate,omitempty"`
	InvoicePrefix *string          `json:"invoicePrefix,omitempty" binding:"omitempty,max=10"`
	IsActive      *bool            `json:"isActive,omitempty"`
}

// CompanyResponse defines data returned for a company.
type CompanyResponse struct {
	CompanyID     string          `json:"companyID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	BaseCurrency  string          `json:"baseCurrency"`
	TaxName       string          `json:"taxName"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	InvoicePrefix string          `json:"invoicePrefix"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToCompanyResponse converts domain.Company to DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:     c.CompanyID,
		Code:          c.Code,
		Name:          c.Name,
		BaseCurrency:  c.BaseCurrency,
		TaxName:       c.TaxName,
		TaxRate:       c.TaxRate,
		InvoicePrefix: c.DocumentPrefix(domain.DocumentInvoice),
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
		LastUpdatedAt: c.LastUpdatedAt,
		LastUpdatedBy: c.LastUpdatedBy,
	}
}

// ListCompaniesResponse wraps a list of companies.
type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// ToListCompaniesResponse converts a slice of domain.Company to DTO.
func ToListCompaniesResponse(cs []domain.Company) ListCompaniesResponse {
	list := make([]CompanyResponse, len(cs))
	for i := range cs {
		list[i] = ToCompanyResponse(&cs[i])
	}
	return ListCompaniesResponse{Companies: list}
}
