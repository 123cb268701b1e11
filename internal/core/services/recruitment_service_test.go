package services_test

import (
	"testing"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/SscSPs/placement_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type RecruitmentServiceTestSuite struct {
	ledgerSuite
}

func (s *RecruitmentServiceTestSuite) SetupTest() {
	s.ledgerSuite.SetupTest()
	s.seedCompany("co-us", "US", "USD", "0")
}

func (s *RecruitmentServiceTestSuite) TestCreateJobOrderAndCandidate() {
	jobOrder, err := s.container.Recruitment.CreateJobOrder(s.ctx, dto.CreateJobOrderRequest{
		CompanyID:     "co-us",
		EmployerName:  "Gulf Builders",
		PositionTitle: "Welder",
		AgreedFee:     dec("1234.567"),
		Currency:      "usd",
	}, testUserID)
	s.Require().NoError(err)
	s.Equal(1, jobOrder.NumPositions)
	s.Equal("USD", jobOrder.Currency)
	s.True(jobOrder.AgreedFee.Equal(dec("1234.57")))

	candidate, err := s.container.Recruitment.CreateCandidate(s.ctx, dto.CreateCandidateRequest{
		JobOrderID:     jobOrder.JobOrderID,
		FullName:       "Amina Otieno",
		PassportNumber: "AK123456",
	}, testUserID)
	s.Require().NoError(err)
	s.Equal(domain.StageSourcing, candidate.CurrentStage)
	s.Nil(candidate.DeployedDate)

	got, err := s.container.Recruitment.GetCandidate(s.ctx, candidate.CandidateID)
	s.Require().NoError(err)
	s.Equal("Amina Otieno", got.FullName)
}

func (s *RecruitmentServiceTestSuite) TestCreateJobOrder_Validation() {
	_, err := s.container.Recruitment.CreateJobOrder(s.ctx, dto.CreateJobOrderRequest{CompanyID: "nope", Currency: "USD"}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.container.Recruitment.CreateJobOrder(s.ctx, dto.CreateJobOrderRequest{CompanyID: "co-us", Currency: "GBP"}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.container.Recruitment.CreateJobOrder(s.ctx, dto.CreateJobOrderRequest{CompanyID: "co-us", Currency: "USD", AgreedFee: dec("-5")}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *RecruitmentServiceTestSuite) TestCreateCandidate_ClosedJobOrder() {
	s.Require().NoError(s.repos.CandidateRepo.SaveJobOrder(s.ctx, domain.JobOrder{
		JobOrderID: "jo-closed", CompanyID: "co-us", Currency: "USD", AgreedFee: dec("1"), IsActive: false,
	}))

	_, err := s.container.Recruitment.CreateCandidate(s.ctx, dto.CreateCandidateRequest{JobOrderID: "jo-closed", FullName: "X"}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.container.Recruitment.CreateCandidate(s.ctx, dto.CreateCandidateRequest{JobOrderID: "missing", FullName: "X"}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *RecruitmentServiceTestSuite) TestStageHistory_UnknownCandidate() {
	_, err := s.container.Recruitment.GetStageHistory(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)

	s.seedJobOrder("jo-1", "co-us", "100", "USD")
	s.seedCandidate("cand-1", "jo-1")
	history, err := s.container.Recruitment.GetStageHistory(s.ctx, "cand-1")
	s.Require().NoError(err)
	s.NotNil(history)
	s.Empty(history)
}

func TestRecruitmentService(t *testing.T) {
	suite.Run(t, new(RecruitmentServiceTestSuite))
}
