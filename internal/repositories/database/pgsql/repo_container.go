package pgsql

import (
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider returns repositories that run each call directly on
// the pool. Use TxRunner for multi-statement units of work.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return newRepositoryProvider(dbPool, nil)
}

func newRepositoryProvider(pool *pgxpool.Pool, db DBTX) portsrepo.RepositoryProvider {
	base := newBaseRepository(pool, db)
	return portsrepo.RepositoryProvider{
		CurrencyRepo:     &PgxCurrencyRepository{BaseRepository: base},
		ExchangeRateRepo: &PgxExchangeRateRepository{BaseRepository: base},
		CompanyRepo:      &PgxCompanyRepository{BaseRepository: base},
		CandidateRepo:    &PgxCandidateRepository{BaseRepository: base},
		CostRepo:         &PgxCostRepository{BaseRepository: base},
		BillingRepo:      &PgxBillingRepository{BaseRepository: base},
		JournalRepo:      &PgxJournalRepository{BaseRepository: base},
	}
}
