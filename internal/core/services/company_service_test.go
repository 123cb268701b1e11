package services_test

import (
	"testing"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/SscSPs/placement_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type CompanyServiceTestSuite struct {
	ledgerSuite
}

func (s *CompanyServiceTestSuite) TestCreateCompany() {
	company, err := s.container.Company.CreateCompany(s.ctx, dto.CreateCompanyRequest{
		Code:         " ae ",
		Name:         "Gulf Placements",
		BaseCurrency: "AED",
		TaxName:      "VAT",
		TaxRate:      dec("5"),
	}, testUserID)
	s.Require().NoError(err)
	s.Equal("AE", company.Code)
	s.Equal("id-0001", company.CompanyID)
	s.Equal(int64(0), company.InvoiceCounter)
	s.True(company.IsActive)

	_, err = s.container.Company.CreateCompany(s.ctx, dto.CreateCompanyRequest{Code: "AE", Name: "Again", BaseCurrency: "AED"}, testUserID)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *CompanyServiceTestSuite) TestCreateCompany_Validation() {
	cases := map[string]dto.CreateCompanyRequest{
		"unsupported currency": {Code: "XX", Name: "X", BaseCurrency: "JPY"},
		"negative tax":         {Code: "XX", Name: "X", BaseCurrency: "USD", TaxRate: dec("-1")},
		"tax above 100":        {Code: "XX", Name: "X", BaseCurrency: "USD", TaxRate: dec("101")},
		"blank code":           {Code: "  ", Name: "X", BaseCurrency: "USD"},
	}
	for name, req := range cases {
		s.Run(name, func() {
			_, err := s.container.Company.CreateCompany(s.ctx, req, testUserID)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
}

func (s *CompanyServiceTestSuite) TestUpdateCompany_BaseCurrencyLockedAfterPosting() {
	s.seedCompany("co-us", "US", "USD", "0")
	inr := "INR"

	updated, err := s.container.Company.UpdateCompany(s.ctx, "co-us", dto.UpdateCompanyRequest{BaseCurrency: &inr}, testUserID)
	s.Require().NoError(err)
	s.Equal("INR", updated.BaseCurrency)

	s.seedJobOrder("jo-1", "co-us", "100", "INR")
	s.seedCandidate("cand-1", "jo-1")
	_, err = s.container.Posting.MoveStage(s.ctx, "cand-1", domain.StageDeployed, testUserID)
	s.Require().NoError(err)

	usd := "USD"
	_, err = s.container.Company.UpdateCompany(s.ctx, "co-us", dto.UpdateCompanyRequest{BaseCurrency: &usd}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	name := "Renamed"
	updated, err = s.container.Company.UpdateCompany(s.ctx, "co-us", dto.UpdateCompanyRequest{Name: &name}, testUserID)
	s.Require().NoError(err)
	s.Equal("Renamed", updated.Name)
	s.Equal("INR", updated.BaseCurrency)
}

func (s *CompanyServiceTestSuite) TestListCompanies_Empty() {
	companies, err := s.container.Company.ListCompanies(s.ctx)
	s.Require().NoError(err)
	s.NotNil(companies)
	s.Empty(companies)
}

func TestCompanyService(t *testing.T) {
	suite.Run(t, new(CompanyServiceTestSuite))
}
