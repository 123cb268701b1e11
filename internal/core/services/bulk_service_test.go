package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/stretchr/testify/suite"
)

type BulkServiceTestSuite struct {
	ledgerSuite
}

func (s *BulkServiceTestSuite) SetupTest() {
	s.ledgerSuite.SetupTest()
	s.seedCompany("co-us", "US", "USD", "0")
	s.seedJobOrder("jo-1", "co-us", "1500", "USD")
	s.seedCandidate("cand-1", "jo-1")
	s.seedCandidate("cand-2", "jo-1")
}

func visaTemplate() domain.CostTemplate {
	return domain.CostTemplate{
		CostType:     domain.CostVisa,
		VendorName:   "Embassy",
		Amount:       dec("75"),
		Currency:     "USD",
		DateIncurred: date(2024, 5, 3),
	}
}

func (s *BulkServiceTestSuite) TestBulkAddCost_SkipsUnknownCandidates() {
	result := s.container.Bulk.BulkAddCost(s.ctx, []string{"cand-1", "missing", "cand-2"}, visaTemplate(), testUserID)

	s.Equal(3, result.Total)
	s.Equal(2, result.Created)
	s.Require().Len(result.Failures, 1)
	s.Equal("missing", result.Failures[0].CandidateID)
	s.NotEmpty(result.Failures[0].Error)

	for _, id := range []string{"cand-1", "cand-2"} {
		costs, err := s.container.Recruitment.ListCandidateCosts(s.ctx, id)
		s.Require().NoError(err)
		s.Require().Len(costs, 1)
		s.True(costs[0].IsPosted())
	}
	s.Equal(2, s.journalCount("co-us"))
}

func (s *BulkServiceTestSuite) TestBulkAddCost_InvalidTemplateFailsEveryItem() {
	template := visaTemplate()
	template.Amount = dec("-1")

	result := s.container.Bulk.BulkAddCost(s.ctx, []string{"cand-1", "cand-2"}, template, testUserID)
	s.Equal(0, result.Created)
	s.Len(result.Failures, 2)
	s.Equal(0, s.journalCount("co-us"))
}

func (s *BulkServiceTestSuite) TestBulkMoveStage_CountsDeployments() {
	_, err := s.container.Posting.MoveStage(s.ctx, "cand-2", domain.StageDeployed, testUserID)
	s.Require().NoError(err)

	result := s.container.Bulk.BulkMoveStage(s.ctx, []string{"cand-1", "cand-2", "missing"}, domain.StageDeployed, testUserID)
	s.Equal(3, result.Total)
	s.Equal(2, result.Updated)
	s.Equal(1, result.Deployed)
	s.Require().Len(result.Failures, 1)
	s.Equal("missing", result.Failures[0].CandidateID)

	// One deployment journal per candidate.
	s.Equal(2, s.journalCount("co-us"))
}

func (s *BulkServiceTestSuite) TestBulkMoveStage_ReentryIsNotADeployment() {
	_, err := s.container.Posting.MoveStage(s.ctx, "cand-1", domain.StageDeployed, testUserID)
	s.Require().NoError(err)
	_, err = s.container.Posting.MoveStage(s.ctx, "cand-1", domain.StageInvoiced, testUserID)
	s.Require().NoError(err)
	before := s.journalCount("co-us")

	result := s.container.Bulk.BulkMoveStage(s.ctx, []string{"cand-1"}, domain.StageDeployed, testUserID)
	s.Equal(1, result.Updated)
	s.Equal(0, result.Deployed)
	s.Empty(result.Failures)
	s.Equal(before, s.journalCount("co-us"))
}

func (s *BulkServiceTestSuite) TestBulkMoveStage_FailureDoesNotStopBatch() {
	s.seedJobOrder("jo-php", "co-us", "50000", "PHP")
	s.seedCandidate("cand-php", "jo-php")

	result := s.container.Bulk.BulkMoveStage(s.ctx, []string{"cand-php", "cand-1"}, domain.StageDeployed, testUserID)
	s.Equal(1, result.Updated)
	s.Equal(1, result.Deployed)
	s.Require().Len(result.Failures, 1)
	s.Equal("cand-php", result.Failures[0].CandidateID)

	candidate, err := s.container.Recruitment.GetCandidate(s.ctx, "cand-php")
	s.Require().NoError(err)
	s.Equal(domain.StageSourcing, candidate.CurrentStage)
}

func (s *BulkServiceTestSuite) TestBulkMoveStage_CancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	result := s.container.Bulk.BulkMoveStage(ctx, []string{"cand-1", "cand-2"}, domain.StageScreening, testUserID)
	s.Equal(0, result.Updated)
	s.Len(result.Failures, 2)
}

func TestBulkService(t *testing.T) {
	suite.Run(t, new(BulkServiceTestSuite))
}
