package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/placement_ledger/internal/core/ports/services"
	"github.com/SscSPs/placement_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) RecordCost(ctx context.Context, req dto.RecordCostRequest, userID string) (*domain.CandidateCost, *domain.Journal, error) {
	args := m.Called(ctx, req, userID)
	cost, _ := args.Get(0).(*domain.CandidateCost)
	journal, _ := args.Get(1).(*domain.Journal)
	return cost, journal, args.Error(2)
}

func (m *MockPostingService) PostCostJournal(ctx context.Context, costID, userID string) (*domain.Journal, error) {
	args := m.Called(ctx, costID, userID)
	journal, _ := args.Get(0).(*domain.Journal)
	return journal, args.Error(1)
}

func (m *MockPostingService) MoveStage(ctx context.Context, candidateID string, stage domain.Stage, userID string) (*domain.StageChange, error) {
	args := m.Called(ctx, candidateID, stage, userID)
	change, _ := args.Get(0).(*domain.StageChange)
	return change, args.Error(1)
}

func (m *MockPostingService) PostDeploymentJournal(ctx context.Context, candidateID, userID string) (*domain.Journal, error) {
	args := m.Called(ctx, candidateID, userID)
	journal, _ := args.Get(0).(*domain.Journal)
	return journal, args.Error(1)
}

func (m *MockPostingService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, *domain.Journal, error) {
	args := m.Called(ctx, req, userID)
	invoice, _ := args.Get(0).(*domain.Invoice)
	journal, _ := args.Get(1).(*domain.Journal)
	return invoice, journal, args.Error(2)
}

func (m *MockPostingService) PostInvoiceJournal(ctx context.Context, invoiceID, userID string) (*domain.Journal, error) {
	args := m.Called(ctx, invoiceID, userID)
	journal, _ := args.Get(0).(*domain.Journal)
	return journal, args.Error(1)
}

func (m *MockPostingService) RecordReceipt(ctx context.Context, req dto.RecordReceiptRequest, userID string) (*domain.Receipt, *domain.Journal, error) {
	args := m.Called(ctx, req, userID)
	receipt, _ := args.Get(0).(*domain.Receipt)
	journal, _ := args.Get(1).(*domain.Journal)
	return receipt, journal, args.Error(2)
}

func (m *MockPostingService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.Payment, *domain.Journal, error) {
	args := m.Called(ctx, req, userID)
	payment, _ := args.Get(0).(*domain.Payment)
	journal, _ := args.Get(1).(*domain.Journal)
	return payment, journal, args.Error(2)
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

// --- Mock BulkService ---
type MockBulkService struct {
	mock.Mock
}

func (m *MockBulkService) BulkMoveStage(ctx context.Context, candidateIDs []string, stage domain.Stage, userID string) domain.BulkStageResult {
	args := m.Called(ctx, candidateIDs, stage, userID)
	return args.Get(0).(domain.BulkStageResult)
}

func (m *MockBulkService) BulkAddCost(ctx context.Context, candidateIDs []string, template domain.CostTemplate, userID string) domain.BulkCostResult {
	args := m.Called(ctx, candidateIDs, template, userID)
	return args.Get(0).(domain.BulkCostResult)
}

var _ portssvc.BulkSvc = (*MockBulkService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	journal, _ := args.Get(0).(*domain.Journal)
	return journal, args.Error(1)
}

func (m *MockJournalService) ListJournals(ctx context.Context, companyID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, companyID, params)
	resp, _ := args.Get(0).(*dto.ListJournalsResponse)
	return resp, args.Error(1)
}

var _ portssvc.JournalReaderSvc = (*MockJournalService)(nil)

// --- Mock CurrencyConverter ---
type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) Convert(ctx context.Context, amount decimal.Decimal, from, to string, asOf time.Time, policy domain.ConversionPolicy) (domain.Conversion, error) {
	args := m.Called(ctx, amount, from, to, asOf, policy)
	return args.Get(0).(domain.Conversion), args.Error(1)
}

var _ portssvc.CurrencyConverterSvc = (*MockConverter)(nil)
