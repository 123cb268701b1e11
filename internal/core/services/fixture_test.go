package services_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/placement_ledger/internal/core/ports/services"
	"github.com/SscSPs/placement_ledger/internal/core/services"
	"github.com/SscSPs/placement_ledger/internal/dto"
	"github.com/SscSPs/placement_ledger/internal/platform/chartofaccounts"
	"github.com/SscSPs/placement_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testUserID = "user-1"

var fixedNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testChart(code string) domain.ChartOfAccounts {
	return domain.ChartOfAccounts{
		CompanyCode:        code,
		WIP:                "1300",
		AccountsPayable:    "2000",
		AccountsReceivable: "1100",
		Revenue:            "4000",
		COGS:               "5000",
		TaxPayable:         "2200",
		FXGainLoss:         "7000",
		Bank:               "1000",
	}
}

// ledgerSuite wires every service over a fresh in-memory store.
type ledgerSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Store
	repos     portsrepo.RepositoryProvider
	container *portssvc.ServiceContainer
	options   []services.ServiceOption
	seq       atomic.Int64
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.repos = s.store.Provider()
	s.seq.Store(0)

	charts, err := chartofaccounts.NewRegistry(testChart("US"), testChart("AE"))
	s.Require().NoError(err)

	s.options = []services.ServiceOption{
		services.WithClock(func() time.Time { return fixedNow }),
		services.WithIDGenerator(func() string { return fmt.Sprintf("id-%04d", s.seq.Add(1)) }),
	}
	s.container = services.NewServiceContainer(services.Dependencies{
		Repos:    s.repos,
		TxRunner: s.store,
		Charts:   charts,
	}, s.options...)
}

func (s *ledgerSuite) seedCompany(id, code, base string, taxRate string) domain.Company {
	c := domain.Company{
		CompanyID:    id,
		Code:         code,
		Name:         code + " Placement",
		BaseCurrency: base,
		TaxName:      "VAT",
		TaxRate:      dec(taxRate),
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(testUserID, fixedNow),
	}
	s.Require().NoError(s.repos.CompanyRepo.SaveCompany(s.ctx, c))
	return c
}

func dtoRate(from, to, rate string, on time.Time) dto.CreateExchangeRateRequest {
	return dto.CreateExchangeRateRequest{FromCurrencyCode: from, ToCurrencyCode: to, Rate: dec(rate), DateEffective: on}
}

func (s *ledgerSuite) seedRate(from, to, rate string, on time.Time) {
	_, err := s.container.ExchangeRate.CreateExchangeRate(s.ctx, dtoRate(from, to, rate, on), testUserID)
	s.Require().NoError(err)
}

func (s *ledgerSuite) seedJobOrder(id, companyID, fee, currency string) domain.JobOrder {
	j := domain.JobOrder{
		JobOrderID:    id,
		CompanyID:     companyID,
		EmployerName:  "Gulf Builders",
		PositionTitle: "Electrician",
		NumPositions:  5,
		AgreedFee:     dec(fee),
		Currency:      currency,
		IsActive:      true,
		AuditFields:   domain.NewAuditFields(testUserID, fixedNow),
	}
	s.Require().NoError(s.repos.CandidateRepo.SaveJobOrder(s.ctx, j))
	return j
}

func (s *ledgerSuite) seedCandidate(id, jobOrderID string) domain.Candidate {
	c := domain.Candidate{
		CandidateID:    id,
		JobOrderID:     jobOrderID,
		FullName:       "Candidate " + id,
		PassportNumber: "P-" + id,
		CurrentStage:   domain.StageSourcing,
		AuditFields:    domain.NewAuditFields(testUserID, fixedNow),
	}
	s.Require().NoError(s.repos.CandidateRepo.SaveCandidate(s.ctx, c))
	return c
}

func (s *ledgerSuite) journalCount(companyID string) int {
	journals, _, err := s.repos.JournalRepo.ListJournalsByCompany(s.ctx, companyID, 1000, nil)
	s.Require().NoError(err)
	return len(journals)
}

// line returns the single line posted to account on the given side.
func (s *ledgerSuite) line(j *domain.Journal, account string, debit bool) domain.JournalLine {
	s.T().Helper()
	for _, l := range j.Lines {
		if l.AccountCode != account {
			continue
		}
		if debit && l.Debit.IsPositive() || !debit && l.Credit.IsPositive() {
			return l
		}
	}
	s.Failf("line not found", "account %s (debit=%v) not in journal %s", account, debit, j.JournalID)
	return domain.JournalLine{}
}

func (s *ledgerSuite) assertBalanced(j *domain.Journal) {
	s.T().Helper()
	diff := j.TotalDebit().Sub(j.TotalCredit()).Abs()
	s.True(diff.LessThanOrEqual(dec("0.01")), "journal %s unbalanced: %s vs %s", j.JournalID, j.TotalDebit(), j.TotalCredit())
}
