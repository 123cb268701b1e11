package services_test

import (
	"testing"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/SscSPs/placement_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type PostingServiceTestSuite struct {
	ledgerSuite
}

func (s *PostingServiceTestSuite) SetupTest() {
	s.ledgerSuite.SetupTest()
	s.seedCompany("co-us", "US", "USD", "0")
	s.seedJobOrder("jo-1", "co-us", "2000", "USD")
	s.seedCandidate("cand-1", "jo-1")
	s.seedRate("EUR", "USD", "1.10", date(2024, 5, 1))
}

func costRequest(candidateID, amount, currency string, costType domain.CostType) dto.RecordCostRequest {
	incurred := date(2024, 5, 10)
	return dto.RecordCostRequest{
		CandidateID: candidateID,
		CostInput: dto.CostInput{
			CostType:     string(costType),
			VendorName:   "Embassy",
			Amount:       dec(amount),
			Currency:     currency,
			DateIncurred: &incurred,
		},
	}
}

// --- Costs ---

func (s *PostingServiceTestSuite) TestRecordCost_ConvertsToBaseCurrency() {
	cost, journal, err := s.container.Posting.RecordCost(s.ctx, costRequest("cand-1", "100", "EUR", domain.CostVisa), testUserID)
	s.Require().NoError(err)

	s.Require().NotNil(cost.JournalID)
	s.Equal(journal.JournalID, *cost.JournalID)
	s.Equal(domain.SourceCost, journal.Source.Type)
	s.Equal(cost.CostID, journal.Source.ID)
	s.True(journal.JournalDate.Equal(date(2024, 5, 10)))
	s.Equal("USD", journal.CurrencyCode)

	s.True(s.line(journal, "1300", true).Debit.Equal(dec("110.00")))
	s.True(s.line(journal, "2000", false).Credit.Equal(dec("110.00")))
	s.assertBalanced(journal)

	stored, err := s.repos.CostRepo.FindCostByID(s.ctx, cost.CostID)
	s.Require().NoError(err)
	s.True(stored.IsPosted())
}

func (s *PostingServiceTestSuite) TestRecordCost_MissingRateWritesNothing() {
	before := s.journalCount("co-us")

	_, _, err := s.container.Posting.RecordCost(s.ctx, costRequest("cand-1", "5000", "KES", domain.CostMedical), testUserID)
	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrMissingFxRate)

	s.Equal(before, s.journalCount("co-us"))
	costs, err := s.repos.CostRepo.FindCostsByCandidateID(s.ctx, "cand-1")
	s.Require().NoError(err)
	s.Empty(costs)
}

func (s *PostingServiceTestSuite) TestRecordCost_Validation() {
	_, _, err := s.container.Posting.RecordCost(s.ctx, costRequest("cand-1", "0", "USD", domain.CostTicket), testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, _, err = s.container.Posting.RecordCost(s.ctx, costRequest("cand-1", "10", "USD", domain.CostType("LUNCH")), testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, _, err = s.container.Posting.RecordCost(s.ctx, costRequest("nobody", "10", "USD", domain.CostTicket), testUserID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PostingServiceTestSuite) TestPostCostJournal_OnlyOnce() {
	cost, _, err := s.container.Posting.RecordCost(s.ctx, costRequest("cand-1", "40", "USD", domain.CostTraining), testUserID)
	s.Require().NoError(err)

	_, err = s.container.Posting.PostCostJournal(s.ctx, cost.CostID, testUserID)
	s.ErrorIs(err, apperrors.ErrAlreadyPosted)
	s.Equal(1, s.journalCount("co-us"))
}

func (s *PostingServiceTestSuite) TestMissingChartOfAccounts() {
	s.seedCompany("co-ke", "KE", "KES", "0")
	s.seedJobOrder("jo-ke", "co-ke", "100000", "KES")
	s.seedCandidate("cand-ke", "jo-ke")

	_, _, err := s.container.Posting.RecordCost(s.ctx, costRequest("cand-ke", "100", "KES", domain.CostVisa), testUserID)
	s.ErrorIs(err, apperrors.ErrMissingAccountConfiguration)
	s.Equal(0, s.journalCount("co-ke"))
}

// --- Stages and deployment ---

func (s *PostingServiceTestSuite) TestDeployment_RecognisesFeeAndCosts() {
	_, _, err := s.container.Posting.RecordCost(s.ctx, costRequest("cand-1", "100", "EUR", domain.CostVisa), testUserID)
	s.Require().NoError(err)
	_, _, err = s.container.Posting.RecordCost(s.ctx, costRequest("cand-1", "50", "USD", domain.CostMedical), testUserID)
	s.Require().NoError(err)

	change, err := s.container.Posting.MoveStage(s.ctx, "cand-1", domain.StageDeployed, testUserID)
	s.Require().NoError(err)
	s.Equal(domain.StageSourcing, change.OldStage)
	s.True(change.Deployed())
	s.True(change.JournalPosted)
	s.Require().NotNil(change.Transition)
	s.Require().NotNil(change.Candidate.DeployedDate)
	s.True(change.Candidate.DeployedDate.Equal(date(2024, 6, 1)))

	j := change.Journal
	s.Require().NotNil(j)
	s.Equal(domain.SourceDeployment, j.Source.Type)
	s.True(s.line(j, "5000", true).Debit.Equal(dec("160.00")))
	s.True(s.line(j, "1300", false).Credit.Equal(dec("160.00")))
	s.True(s.line(j, "4000", false).Credit.Equal(dec("2000.00")))
	s.True(s.line(j, "1100", true).Debit.Equal(dec("2000.00")))
	s.assertBalanced(j)
}

func (s *PostingServiceTestSuite) TestDeployment_PostsOnce() {
	first, err := s.container.Posting.MoveStage(s.ctx, "cand-1", domain.StageDeployed, testUserID)
	s.Require().NoError(err)
	s.Require().NotNil(first.Journal)

	again, err := s.container.Posting.MoveStage(s.ctx, "cand-1", domain.StageDeployed, testUserID)
	s.Require().NoError(err)
	s.Nil(again.Journal)
	s.Nil(again.Transition)

	existing, err := s.container.Posting.PostDeploymentJournal(s.ctx, "cand-1", testUserID)
	s.Require().NoError(err)
	s.Equal(first.Journal.JournalID, existing.JournalID)

	// Leaving and re-entering DEPLOYED does not recognise revenue twice.
	_, err = s.container.Posting.MoveStage(s.ctx, "cand-1", domain.StageInvoiced, testUserID)
	s.Require().NoError(err)
	back, err := s.container.Posting.MoveStage(s.ctx, "cand-1", domain.StageDeployed, testUserID)
	s.Require().NoError(err)
	s.Require().NotNil(back.Journal)
	s.Equal(first.Journal.JournalID, back.Journal.JournalID)
	s.True(back.Deployed())
	s.False(back.JournalPosted)

	s.Equal(1, s.journalCount("co-us"))

	history, err := s.container.Recruitment.GetStageHistory(s.ctx, "cand-1")
	s.Require().NoError(err)
	s.Require().Len(history, 3)
	s.Equal(domain.StageSourcing, history[0].OldStage)
	s.Equal(domain.StageInvoiced, history[2].OldStage)
}

func (s *PostingServiceTestSuite) TestPostDeploymentJournal_NotDeployed() {
	journal, err := s.container.Posting.PostDeploymentJournal(s.ctx, "cand-1", testUserID)
	s.Require().NoError(err)
	s.Nil(journal)
	s.Equal(0, s.journalCount("co-us"))
}

func (s *PostingServiceTestSuite) TestMoveStage_UnknownStage() {
	_, err := s.container.Posting.MoveStage(s.ctx, "cand-1", domain.Stage("HIRED"), testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PostingServiceTestSuite) TestDeployment_MissingRateKeepsStage() {
	s.seedJobOrder("jo-php", "co-us", "90000", "PHP")
	s.seedCandidate("cand-php", "jo-php")

	_, err := s.container.Posting.MoveStage(s.ctx, "cand-php", domain.StageDeployed, testUserID)
	s.ErrorIs(err, apperrors.ErrMissingFxRate)

	candidate, err := s.repos.CandidateRepo.FindCandidateByID(s.ctx, "cand-php")
	s.Require().NoError(err)
	s.Equal(domain.StageSourcing, candidate.CurrentStage)
	s.Nil(candidate.DeployedDate)
}

// --- Invoices ---

func invoiceRequest(companyID, currency, amount, tax string) dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		CompanyID:    companyID,
		EmployerName: "Gulf Builders",
		InvoiceDate:  date(2024, 5, 1),
		Currency:     currency,
		Lines: []dto.DocumentLineRequest{
			{Description: "Placement fee", Quantity: dec("1"), UnitPrice: dec(amount)},
		},
		TaxAmount: dec(tax),
	}
}

func (s *PostingServiceTestSuite) TestCreateInvoice_SplitsTax() {
	invoice, journal, err := s.container.Posting.CreateInvoice(s.ctx, invoiceRequest("co-us", "USD", "1000", "180"), testUserID)
	s.Require().NoError(err)

	s.Equal("INV-000001", invoice.InvoiceNumber)
	s.Equal(domain.StatusPosted, invoice.Status)
	s.Require().NotNil(invoice.JournalID)
	s.True(s.line(journal, "1100", true).Debit.Equal(dec("1000.00")))
	s.True(s.line(journal, "4000", false).Credit.Equal(dec("820.00")))
	s.True(s.line(journal, "2200", false).Credit.Equal(dec("180.00")))
	s.assertBalanced(journal)

	second, _, err := s.container.Posting.CreateInvoice(s.ctx, invoiceRequest("co-us", "USD", "10", "0"), testUserID)
	s.Require().NoError(err)
	s.Equal("INV-000002", second.InvoiceNumber)
}

func (s *PostingServiceTestSuite) TestCreateInvoice_NoTaxLineWhenZero() {
	_, journal, err := s.container.Posting.CreateInvoice(s.ctx, invoiceRequest("co-us", "USD", "500", "0"), testUserID)
	s.Require().NoError(err)
	s.Len(journal.Lines, 2)
}

func (s *PostingServiceTestSuite) TestCreateInvoice_ApplyCompanyTax() {
	s.seedCompany("co-ae", "AE", "AED", "5")
	req := invoiceRequest("co-ae", "AED", "1000", "0")
	req.ApplyCompanyTax = true

	invoice, journal, err := s.container.Posting.CreateInvoice(s.ctx, req, testUserID)
	s.Require().NoError(err)
	s.True(invoice.TaxAmount.Equal(dec("50")))
	s.True(invoice.TotalAmount.Equal(dec("1050")))
	s.Len(invoice.Lines, 2)
	s.True(s.line(journal, "2200", false).Credit.Equal(dec("50.00")))
	s.True(s.line(journal, "4000", false).Credit.Equal(dec("1000.00")))
}

func (s *PostingServiceTestSuite) TestCreateInvoice_MissingRateWritesNothing() {
	_, _, err := s.container.Posting.CreateInvoice(s.ctx, invoiceRequest("co-us", "QAR", "1000", "0"), testUserID)
	s.ErrorIs(err, apperrors.ErrMissingFxRate)
	s.Equal(0, s.journalCount("co-us"))

	company, err := s.repos.CompanyRepo.FindCompanyByID(s.ctx, "co-us")
	s.Require().NoError(err)
	s.Equal(int64(0), company.InvoiceCounter)
}

func (s *PostingServiceTestSuite) TestDraftInvoice_PostedLater() {
	req := invoiceRequest("co-us", "USD", "300", "0")
	req.Draft = true
	invoice, journal, err := s.container.Posting.CreateInvoice(s.ctx, req, testUserID)
	s.Require().NoError(err)
	s.Nil(journal)
	s.Equal(domain.StatusDraft, invoice.Status)
	s.Equal(0, s.journalCount("co-us"))

	journal, err = s.container.Posting.PostInvoiceJournal(s.ctx, invoice.InvoiceID, testUserID)
	s.Require().NoError(err)
	s.Equal(invoice.InvoiceID, journal.Source.ID)

	stored, err := s.container.Billing.GetInvoice(s.ctx, invoice.InvoiceID)
	s.Require().NoError(err)
	s.Equal(domain.StatusPosted, stored.Status)

	_, err = s.container.Posting.PostInvoiceJournal(s.ctx, invoice.InvoiceID, testUserID)
	s.ErrorIs(err, apperrors.ErrAlreadyPosted)
	s.Equal(1, s.journalCount("co-us"))
}

// --- Receipts and payments ---

func receiptRequest(invoiceID *string, amount, currency string) dto.RecordReceiptRequest {
	return dto.RecordReceiptRequest{
		CompanyID:   "co-us",
		InvoiceID:   invoiceID,
		ReceiptDate: date(2024, 5, 20),
		Amount:      dec(amount),
		Currency:    currency,
		Reference:   "TT-001",
	}
}

func (s *PostingServiceTestSuite) TestReceipt_FullSettlement() {
	invoice, _, err := s.container.Posting.CreateInvoice(s.ctx, invoiceRequest("co-us", "USD", "1000", "0"), testUserID)
	s.Require().NoError(err)

	receipt, journal, err := s.container.Posting.RecordReceipt(s.ctx, receiptRequest(&invoice.InvoiceID, "1000", "USD"), testUserID)
	s.Require().NoError(err)
	s.Equal("1000", receipt.BankAccount)
	s.Len(journal.Lines, 2)
	s.True(s.line(journal, "1000", true).Debit.Equal(dec("1000.00")))
	s.True(s.line(journal, "1100", false).Credit.Equal(dec("1000.00")))

	stored, err := s.container.Billing.GetInvoice(s.ctx, invoice.InvoiceID)
	s.Require().NoError(err)
	s.Equal(domain.StatusPaid, stored.Status)
	s.True(stored.Outstanding().IsZero())
}

func (s *PostingServiceTestSuite) TestReceipt_FXGain() {
	s.seedRate("EUR", "USD", "1.15", date(2024, 5, 15))
	invoice, _, err := s.container.Posting.CreateInvoice(s.ctx, invoiceRequest("co-us", "EUR", "1000", "0"), testUserID)
	s.Require().NoError(err)

	_, journal, err := s.container.Posting.RecordReceipt(s.ctx, receiptRequest(&invoice.InvoiceID, "1000", "EUR"), testUserID)
	s.Require().NoError(err)

	s.True(s.line(journal, "1000", true).Debit.Equal(dec("1150.00")))
	s.True(s.line(journal, "1100", false).Credit.Equal(dec("1100.00")))
	s.True(s.line(journal, "7000", false).Credit.Equal(dec("50.00")))
	s.assertBalanced(journal)
}

func (s *PostingServiceTestSuite) TestReceipt_FXLoss() {
	s.seedRate("EUR", "USD", "1.05", date(2024, 5, 15))
	invoice, _, err := s.container.Posting.CreateInvoice(s.ctx, invoiceRequest("co-us", "EUR", "1000", "0"), testUserID)
	s.Require().NoError(err)

	_, journal, err := s.container.Posting.RecordReceipt(s.ctx, receiptRequest(&invoice.InvoiceID, "1000", "EUR"), testUserID)
	s.Require().NoError(err)

	s.True(s.line(journal, "7000", true).Debit.Equal(dec("50.00")))
	s.assertBalanced(journal)
}

func (s *PostingServiceTestSuite) TestReceipt_NegligibleResidualHasNoFXLine() {
	s.seedRate("EUR", "USD", "1.10001", date(2024, 5, 15))
	invoice, _, err := s.container.Posting.CreateInvoice(s.ctx, invoiceRequest("co-us", "EUR", "1000", "0"), testUserID)
	s.Require().NoError(err)

	_, journal, err := s.container.Posting.RecordReceipt(s.ctx, receiptRequest(&invoice.InvoiceID, "1000", "EUR"), testUserID)
	s.Require().NoError(err)

	s.Len(journal.Lines, 2)
	s.True(s.line(journal, "1000", true).Debit.Equal(dec("1100.01")))
	s.True(s.line(journal, "1100", false).Credit.Equal(dec("1100.00")))
	s.assertBalanced(journal)
}

func (s *PostingServiceTestSuite) TestReceipt_PartialThenOverpayment() {
	invoice, _, err := s.container.Posting.CreateInvoice(s.ctx, invoiceRequest("co-us", "USD", "1000", "0"), testUserID)
	s.Require().NoError(err)

	_, _, err = s.container.Posting.RecordReceipt(s.ctx, receiptRequest(&invoice.InvoiceID, "400", "USD"), testUserID)
	s.Require().NoError(err)

	stored, err := s.container.Billing.GetInvoice(s.ctx, invoice.InvoiceID)
	s.Require().NoError(err)
	s.Equal(domain.StatusPosted, stored.Status)
	s.True(stored.AmountPaid.Equal(dec("400")))

	before := s.journalCount("co-us")
	_, _, err = s.container.Posting.RecordReceipt(s.ctx, receiptRequest(&invoice.InvoiceID, "700", "USD"), testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal(before, s.journalCount("co-us"))

	_, _, err = s.container.Posting.RecordReceipt(s.ctx, receiptRequest(&invoice.InvoiceID, "600", "USD"), testUserID)
	s.Require().NoError(err)
	stored, err = s.container.Billing.GetInvoice(s.ctx, invoice.InvoiceID)
	s.Require().NoError(err)
	s.Equal(domain.StatusPaid, stored.Status)
}

func (s *PostingServiceTestSuite) TestReceipt_Unallocated() {
	receipt, journal, err := s.container.Posting.RecordReceipt(s.ctx, receiptRequest(nil, "250", "EUR"), testUserID)
	s.Require().NoError(err)
	s.Nil(receipt.InvoiceID)
	s.Len(journal.Lines, 2)
	s.True(s.line(journal, "1000", true).Debit.Equal(dec("275.00")))
	s.True(s.line(journal, "1100", false).Credit.Equal(dec("275.00")))
}

func (s *PostingServiceTestSuite) TestPayment_SettlesBill() {
	bill, err := s.container.Billing.CreateBill(s.ctx, dto.CreateBillRequest{
		CompanyID:  "co-us",
		VendorName: "Embassy",
		BillDate:   date(2024, 5, 2),
		Currency:   "EUR",
		Lines:      []dto.DocumentLineRequest{{Description: "Visa fees", Quantity: dec("2"), UnitPrice: dec("100")}},
	}, testUserID)
	s.Require().NoError(err)
	s.Equal("BILL-000001", bill.BillNumber)
	s.True(bill.TotalAmount.Equal(dec("200")))

	payment, journal, err := s.container.Posting.RecordPayment(s.ctx, dto.RecordPaymentRequest{
		CompanyID:   "co-us",
		BillID:      &bill.BillID,
		PaymentDate: date(2024, 5, 20),
		Amount:      dec("200"),
		Currency:    "EUR",
		BankAccount: "1010",
		Reference:   "WIRE-9",
	}, testUserID)
	s.Require().NoError(err)
	s.Equal("1010", payment.BankAccount)
	s.True(s.line(journal, "2000", true).Debit.Equal(dec("220.00")))
	s.True(s.line(journal, "1010", false).Credit.Equal(dec("220.00")))

	stored, err := s.container.Billing.GetBill(s.ctx, bill.BillID)
	s.Require().NoError(err)
	s.Equal(domain.StatusPaid, stored.Status)
}

func TestPostingService(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
