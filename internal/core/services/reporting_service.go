package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/placement_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface. Its
// conversions are lenient: a missing rate never fails a report, the amount
// is carried unconverted and flagged instead.
type reportingService struct {
	BaseService
	repos     portsrepo.RepositoryProvider
	converter portssvc.CurrencyConverterSvc
}

// NewReportingService creates a new reporting service
func NewReportingService(repos portsrepo.RepositoryProvider, converter portssvc.CurrencyConverterSvc, options ...ServiceOption) portssvc.ReportingService {
	return &reportingService{BaseService: newBaseService(options...), repos: repos, converter: converter}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance sums a company's ledger per account.
func (s *reportingService) TrialBalance(ctx context.Context, companyID string) (*domain.TrialBalance, error) {
	company, err := s.repos.CompanyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find company %s: %w", companyID, err)
	}

	rows, err := s.repos.JournalRepo.GetTrialBalanceData(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}
	if rows == nil {
		rows = []domain.TrialBalanceRow{}
	}

	tb := &domain.TrialBalance{
		CompanyID:    company.CompanyID,
		CurrencyCode: company.BaseCurrency,
		Rows:         rows,
		TotalDebit:   decimal.Zero,
		TotalCredit:  decimal.Zero,
	}
	for _, row := range rows {
		tb.TotalDebit = tb.TotalDebit.Add(row.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(row.Credit)
	}

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("company_id", companyID),
		slog.Int("row_count", len(rows)))
	return tb, nil
}

// CandidateProfitability compares the agreed fee with the candidate's costs.
// The fee converts at the deployed date (today if not deployed), each cost at
// its incurred date.
func (s *reportingService) CandidateProfitability(ctx context.Context, candidateID string) (*domain.CandidateProfitability, error) {
	candidate, err := s.repos.CandidateRepo.FindCandidateByID(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find candidate %s: %w", candidateID, err)
	}
	jobOrder, err := s.repos.CandidateRepo.FindJobOrderByID(ctx, candidate.JobOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job order %s: %w", candidate.JobOrderID, err)
	}
	company, err := s.repos.CompanyRepo.FindCompanyByID(ctx, jobOrder.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find company %s: %w", jobOrder.CompanyID, err)
	}
	costs, err := s.repos.CostRepo.FindCostsByCandidateID(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list costs for candidate %s: %w", candidateID, err)
	}

	feeDate := s.Now()
	if candidate.DeployedDate != nil {
		feeDate = *candidate.DeployedDate
	}

	report := &domain.CandidateProfitability{
		CandidateID:  candidateID,
		BaseCurrency: company.BaseCurrency,
		Costs:        make([]domain.ProfitabilityItem, 0, len(costs)),
		TotalCost:    decimal.Zero,
	}

	fee, err := s.convert(ctx, "Placement Fee", jobOrder.AgreedFee, jobOrder.Currency, company.BaseCurrency, feeDate)
	if err != nil {
		return nil, err
	}
	report.Fee = fee
	report.HasUnconverted = fee.Unconverted

	for _, cost := range costs {
		item, err := s.convert(ctx, cost.CostType.Label(), cost.Amount, cost.Currency, company.BaseCurrency, cost.DateIncurred)
		if err != nil {
			return nil, err
		}
		report.Costs = append(report.Costs, item)
		report.TotalCost = report.TotalCost.Add(item.BaseAmount)
		report.HasUnconverted = report.HasUnconverted || item.Unconverted
	}
	report.Margin = report.Fee.BaseAmount.Sub(report.TotalCost)

	if report.HasUnconverted {
		s.LogWarn(ctx, "Profitability report contains unconverted amounts",
			slog.String("candidate_id", candidateID),
			slog.String("base_currency", company.BaseCurrency))
	}
	return report, nil
}

func (s *reportingService) convert(ctx context.Context, label string, amount decimal.Decimal, from, to string, on time.Time) (domain.ProfitabilityItem, error) {
	conv, err := s.converter.Convert(ctx, amount, from, to, on, domain.PolicyLenient)
	if err != nil {
		s.LogError(ctx, err, "Failed to convert amount for profitability report", slog.String("label", label))
		return domain.ProfitabilityItem{}, fmt.Errorf("failed to convert %s: %w", label, err)
	}
	return domain.ProfitabilityItem{
		Label:       label,
		Amount:      amount,
		Currency:    from,
		BaseAmount:  conv.Amount,
		Unconverted: conv.Unconverted,
	}, nil
}
