package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/placement_ledger/internal/core/ports/services"
	"github.com/SscSPs/placement_ledger/internal/core/services"
	"github.com/SscSPs/placement_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalReader ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalReader = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalBySource(ctx context.Context, source domain.JournalSource) (*domain.Journal, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListJournalsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Journal), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) CompanyHasJournals(ctx context.Context, companyID string) (bool, error) {
	args := m.Called(ctx, companyID)
	return args.Bool(0), args.Error(1)
}

// --- Mock CompanyReader ---
type MockCompanyRepository struct {
	mock.Mock
}

var _ portsrepo.CompanyReader = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindCompanyByCode(ctx context.Context, code string) (*domain.Company, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

// --- Test Suite ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockCompanyRepo *MockCompanyRepository
	service         portssvc.JournalReaderSvc
	ctx             context.Context
	companyID       string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockCompanyRepo)
	suite.ctx = context.Background()
	suite.companyID = "co-1"
}

func (suite *JournalServiceTestSuite) sampleJournal(id string) domain.Journal {
	return domain.Journal{
		JournalID:    id,
		CompanyID:    suite.companyID,
		JournalDate:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Description:  "Cost: Visa Fee",
		CurrencyCode: "USD",
		Source:       domain.JournalSource{Type: domain.SourceCost, ID: "cost-" + id},
		Lines: []domain.JournalLine{
			domain.DebitLine("1300", dec("10"), "WIP"),
			domain.CreditLine("2000", dec("10"), "AP"),
		},
	}
}

func (suite *JournalServiceTestSuite) TestGetJournalByID_Success() {
	j := suite.sampleJournal("j-1")
	suite.mockJournalRepo.On("FindJournalByID", suite.ctx, "j-1").Return(&j, nil).Once()

	got, err := suite.service.GetJournalByID(suite.ctx, "j-1")

	suite.Require().NoError(err)
	suite.Equal("j-1", got.JournalID)
	suite.Len(got.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGetJournalByID_NotFound() {
	suite.mockJournalRepo.On("FindJournalByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.GetJournalByID(suite.ctx, "missing")

	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestListJournals_DefaultLimit() {
	suite.mockCompanyRepo.On("FindCompanyByID", suite.ctx, suite.companyID).Return(&domain.Company{CompanyID: suite.companyID}, nil).Once()
	journals := []domain.Journal{suite.sampleJournal("j-2"), suite.sampleJournal("j-1")}
	suite.mockJournalRepo.On("ListJournalsByCompany", suite.ctx, suite.companyID, 20, (*string)(nil)).Return(journals, "next", nil).Once()

	resp, err := suite.service.ListJournals(suite.ctx, suite.companyID, dto.ListJournalsParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Journals, 2)
	suite.Equal("next", resp.NextPageToken)
	suite.Equal("j-2", resp.Journals[0].JournalID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestListJournals_PassesToken() {
	token := "abc"
	suite.mockCompanyRepo.On("FindCompanyByID", suite.ctx, suite.companyID).Return(&domain.Company{CompanyID: suite.companyID}, nil).Once()
	suite.mockJournalRepo.On("ListJournalsByCompany", suite.ctx, suite.companyID, 5, &token).Return([]domain.Journal{}, nil, nil).Once()

	resp, err := suite.service.ListJournals(suite.ctx, suite.companyID, dto.ListJournalsParams{Limit: 5, NextToken: token})

	suite.Require().NoError(err)
	suite.Empty(resp.Journals)
	suite.Empty(resp.NextPageToken)
}

func (suite *JournalServiceTestSuite) TestListJournals_BadToken() {
	suite.mockCompanyRepo.On("FindCompanyByID", suite.ctx, suite.companyID).Return(&domain.Company{CompanyID: suite.companyID}, nil).Once()
	suite.mockJournalRepo.On("ListJournalsByCompany", suite.ctx, suite.companyID, 20, mock.Anything).Return(nil, nil, apperrors.ErrValidation).Once()

	_, err := suite.service.ListJournals(suite.ctx, suite.companyID, dto.ListJournalsParams{NextToken: "garbage"})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestListJournals_CompanyNotFound() {
	suite.mockCompanyRepo.On("FindCompanyByID", suite.ctx, "nope").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ListJournals(suite.ctx, "nope", dto.ListJournalsParams{})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ListJournalsByCompany")
}

func (suite *JournalServiceTestSuite) TestListJournals_RepoError() {
	suite.mockCompanyRepo.On("FindCompanyByID", suite.ctx, suite.companyID).Return(&domain.Company{CompanyID: suite.companyID}, nil).Once()
	suite.mockJournalRepo.On("ListJournalsByCompany", suite.ctx, suite.companyID, 20, (*string)(nil)).Return(nil, nil, errors.New("db down")).Once()

	_, err := suite.service.ListJournals(suite.ctx, suite.companyID, dto.ListJournalsParams{})

	suite.Error(err)
	suite.NotErrorIs(err, apperrors.ErrValidation)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
