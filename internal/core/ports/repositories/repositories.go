package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Inside TxRunner.WithinTx every field is bound to the same transaction.
type RepositoryProvider struct {
	CurrencyRepo     CurrencyRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	CompanyRepo      CompanyRepositoryFacade
	CandidateRepo    CandidateRepositoryFacade
	CostRepo         CostRepositoryFacade
	BillingRepo      BillingRepositoryFacade
	JournalRepo      JournalRepositoryFacade
}
