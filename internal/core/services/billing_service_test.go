package services_test

import (
	"testing"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/SscSPs/placement_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type BillingServiceTestSuite struct {
	ledgerSuite
}

func (s *BillingServiceTestSuite) SetupTest() {
	s.ledgerSuite.SetupTest()
	s.seedCompany("co-us", "US", "USD", "0")
	s.seedCompany("co-ae", "AE", "AED", "5")
	s.seedJobOrder("jo-us", "co-us", "1000", "USD")
	s.seedJobOrder("jo-ae", "co-ae", "3000", "AED")
	s.seedCandidate("cand-us", "jo-us")
	s.seedCandidate("cand-ae", "jo-ae")
}

func billRequest(companyID string, costIDs ...string) dto.CreateBillRequest {
	return dto.CreateBillRequest{
		CompanyID:  companyID,
		VendorName: "Clinic",
		BillDate:   date(2024, 5, 5),
		Currency:   "USD",
		Lines:      []dto.DocumentLineRequest{{Description: "Medical", Quantity: dec("3"), UnitPrice: dec("33.333")}},
		CostIDs:    costIDs,
	}
}

func (s *BillingServiceTestSuite) recordCost(candidateID string) string {
	cost, _, err := s.container.Posting.RecordCost(s.ctx, costRequest(candidateID, "20", "USD", domain.CostMedical), testUserID)
	s.Require().NoError(err)
	return cost.CostID
}

func (s *BillingServiceTestSuite) TestCreateBill_NumbersAndLinksCosts() {
	costID := s.recordCost("cand-us")

	bill, err := s.container.Billing.CreateBill(s.ctx, billRequest("co-us", costID), testUserID)
	s.Require().NoError(err)
	s.Equal("BILL-000001", bill.BillNumber)
	s.Equal(domain.StatusPosted, bill.Status)
	s.True(bill.TotalAmount.Equal(dec("100.00")))

	costs, err := s.container.Recruitment.ListCandidateCosts(s.ctx, "cand-us")
	s.Require().NoError(err)
	s.Require().Len(costs, 1)
	s.Require().NotNil(costs[0].BillID)
	s.Equal(bill.BillID, *costs[0].BillID)

	next, err := s.container.Billing.CreateBill(s.ctx, billRequest("co-us"), testUserID)
	s.Require().NoError(err)
	s.Equal("BILL-000002", next.BillNumber)

	// Bills are not journalised on creation.
	s.Equal(1, s.journalCount("co-us"))
}

func (s *BillingServiceTestSuite) TestCreateBill_RejectsCostAlreadyBilled() {
	costID := s.recordCost("cand-us")
	_, err := s.container.Billing.CreateBill(s.ctx, billRequest("co-us", costID), testUserID)
	s.Require().NoError(err)

	_, err = s.container.Billing.CreateBill(s.ctx, billRequest("co-us", costID), testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *BillingServiceTestSuite) TestCreateBill_RejectsForeignCost() {
	s.seedRate("USD", "AED", "3.6725", date(2024, 1, 1))
	costID := s.recordCost("cand-ae")

	_, err := s.container.Billing.CreateBill(s.ctx, billRequest("co-us", costID), testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	company, err := s.container.Company.GetCompanyByID(s.ctx, "co-us")
	s.Require().NoError(err)
	s.Equal(int64(0), company.BillCounter)
}

func (s *BillingServiceTestSuite) TestCreateBill_Validation() {
	req := billRequest("co-us")
	req.Lines = nil
	_, err := s.container.Billing.CreateBill(s.ctx, req, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	req = billRequest("co-us", "no-such-cost")
	_, err = s.container.Billing.CreateBill(s.ctx, req, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.container.Billing.CreateBill(s.ctx, billRequest("nope"), testUserID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *BillingServiceTestSuite) TestGetInvoice_NotFound() {
	_, err := s.container.Billing.GetInvoice(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func TestBillingService(t *testing.T) {
	suite.Run(t, new(BillingServiceTestSuite))
}
