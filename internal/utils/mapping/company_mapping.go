package mapping

import (
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/SscSPs/placement_ledger/internal/models"
)

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:      d.CompanyID,
		Code:           d.Code,
		Name:           d.Name,
		BaseCurrency:   d.BaseCurrency,
		TaxName:        d.TaxName,
		TaxRate:        d.TaxRate,
		InvoicePrefix:  d.InvoicePrefix,
		InvoiceCounter: d.InvoiceCounter,
		BillCounter:    d.BillCounter,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:      m.CompanyID,
		Code:           m.Code,
		Name:           m.Name,
		BaseCurrency:   m.BaseCurrency,
		TaxName:        m.TaxName,
		TaxRate:        m.TaxRate,
		InvoicePrefix:  m.InvoicePrefix,
		InvoiceCounter: m.InvoiceCounter,
		BillCounter:    m.BillCounter,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCompanySlice converts a slice of model Companies to domain Companies
func ToDomainCompanySlice(ms []models.Company) []domain.Company {
	ds := make([]domain.Company, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCompany(m)
	}
	return ds
}
