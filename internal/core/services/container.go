package services

import (
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/placement_ledger/internal/core/ports/services"
)

// Dependencies groups what NewServiceContainer needs beyond the repositories.
type Dependencies struct {
	Repos    portsrepo.RepositoryProvider
	TxRunner portsrepo.TxRunner

	// Rates serves rate lookups and rate administration. It is usually a
	// cache in front of Repos.ExchangeRateRepo; nil means the repository is
	// used directly.
	Rates portsrepo.ExchangeRateRepositoryFacade

	Charts portssvc.ChartOfAccountsProvider
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(deps Dependencies, options ...ServiceOption) *portssvc.ServiceContainer {
	rates := deps.Rates
	if rates == nil {
		rates = deps.Repos.ExchangeRateRepo
	}

	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(deps.Repos.CurrencyRepo, options...)
	container.ExchangeRate = NewExchangeRateService(rates, container.Currency, options...)
	container.Converter = NewCurrencyConverter(rates, options...)
	container.Company = NewCompanyService(deps.Repos.CompanyRepo, deps.Repos.CurrencyRepo, options...)
	container.Recruitment = NewRecruitmentService(deps.Repos, options...)

	poster := NewLedgerPoster(deps.TxRunner, options...)
	container.Posting = NewPostingService(deps.TxRunner, poster, container.Converter, deps.Charts, options...)
	container.Bulk = NewBulkService(container.Posting, options...)
	container.Billing = NewBillingService(deps.TxRunner, deps.Repos, options...)

	container.Journal = NewJournalService(deps.Repos.JournalRepo, deps.Repos.CompanyRepo, options...)
	container.Reporting = NewReportingService(deps.Repos, container.Converter, options...)

	return container
}
