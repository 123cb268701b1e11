//go:build integration

package pgsql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/placement_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/placement_ledger/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a disposable Postgres, applies the migrations and
// returns a pool on it.
func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("ledger"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations("file://../../../../migrations", connStr))

	pool, err := database.NewPgxPool(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { database.ClosePgxPool(pool) })
	return pool
}

func seedCompany(t *testing.T, repos portsrepo.RepositoryProvider, code, currency string) domain.Company {
	t.Helper()
	company := domain.Company{
		CompanyID:    uuid.NewString(),
		Code:         code,
		Name:         code + " Placements",
		BaseCurrency: currency,
		TaxRate:      decimal.Zero,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields("tester", time.Now().UTC()),
	}
	require.NoError(t, repos.CompanyRepo.SaveCompany(context.Background(), company))
	return company
}

func costJournal(companyID, sourceID string, date time.Time, amount int64) domain.Journal {
	journalID := uuid.NewString()
	lines := []domain.JournalLine{
		domain.DebitLine("1300", decimal.NewFromInt(amount), "WIP"),
		domain.CreditLine("2000", decimal.NewFromInt(amount), "AP"),
	}
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].JournalID = journalID
		lines[i].LineNo = i + 1
	}
	return domain.Journal{
		JournalID:    journalID,
		CompanyID:    companyID,
		JournalDate:  date,
		Description:  "Cost " + sourceID,
		CurrencyCode: "USD",
		Source:       domain.JournalSource{Type: domain.SourceCost, ID: sourceID},
		PostedAt:     time.Now().UTC(),
		PostedBy:     "tester",
		Lines:        lines,
	}
}

func TestIntegration_ExchangeRates(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repos := pgsql.NewRepositoryProvider(pool)

	may1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: "EUR",
		ToCurrencyCode:   "USD",
		Rate:             decimal.RequireFromString("1.10"),
		DateEffective:    may1,
		AuditFields:      domain.NewAuditFields("tester", time.Now().UTC()),
	}
	require.NoError(t, repos.ExchangeRateRepo.SaveExchangeRate(ctx, rate))

	dup := rate
	dup.ExchangeRateID = uuid.NewString()
	err := repos.ExchangeRateRepo.SaveExchangeRate(ctx, dup)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	found, err := repos.ExchangeRateRepo.FindRateOnOrBefore(ctx, "eur", "usd", may1.AddDate(0, 0, 9))
	require.NoError(t, err)
	assert.True(t, found.Rate.Equal(decimal.RequireFromString("1.10")))
	assert.True(t, found.DateEffective.Equal(may1))

	_, err = repos.ExchangeRateRepo.FindRateOnOrBefore(ctx, "EUR", "USD", may1.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestIntegration_JournalPosting(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repos := pgsql.NewRepositoryProvider(pool)
	runner := pgsql.NewTxRunner(pool)
	company := seedCompany(t, repos, "US", "USD")

	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	first := costJournal(company.CompanyID, "cost-1", date, 110)
	require.NoError(t, repos.JournalRepo.SaveJournal(ctx, first))

	got, err := repos.JournalRepo.FindJournalBySource(ctx, first.Source)
	require.NoError(t, err)
	assert.Equal(t, first.JournalID, got.JournalID)
	require.Len(t, got.Lines, 2)
	assert.True(t, got.TotalDebit().Equal(got.TotalCredit()))

	t.Run("second journal for the same source is rejected", func(t *testing.T) {
		err := repos.JournalRepo.SaveJournal(ctx, costJournal(company.CompanyID, "cost-1", date, 110))
		assert.ErrorIs(t, err, apperrors.ErrAlreadyPosted)
	})

	t.Run("failed unit of work leaves nothing behind", func(t *testing.T) {
		rolledBack := costJournal(company.CompanyID, "cost-2", date, 50)
		boom := errors.New("boom")
		err := runner.WithinTx(ctx, func(ctx context.Context, tx portsrepo.RepositoryProvider) error {
			if err := tx.JournalRepo.SaveJournal(ctx, rolledBack); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = repos.JournalRepo.FindJournalByID(ctx, rolledBack.JournalID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("trial balance sums per account", func(t *testing.T) {
		rows, err := repos.JournalRepo.GetTrialBalanceData(ctx, company.CompanyID)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "1300", rows[0].AccountCode)
		assert.True(t, rows[0].Debit.Equal(decimal.NewFromInt(110)))
		assert.Equal(t, "2000", rows[1].AccountCode)
		assert.True(t, rows[1].Credit.Equal(decimal.NewFromInt(110)))
	})
}

func TestIntegration_ListJournalsKeyset(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repos := pgsql.NewRepositoryProvider(pool)
	company := seedCompany(t, repos, "AE", "AED")

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		j := costJournal(company.CompanyID, uuid.NewString(), start.AddDate(0, 0, i), int64(10+i))
		j.CurrencyCode = "AED"
		require.NoError(t, repos.JournalRepo.SaveJournal(ctx, j))
	}

	var seen []time.Time
	var token *string
	for page := 0; page < 3; page++ {
		journals, next, err := repos.JournalRepo.ListJournalsByCompany(ctx, company.CompanyID, 2, token)
		require.NoError(t, err)
		for _, j := range journals {
			seen = append(seen, j.JournalDate)
		}
		token = next
		if next == nil {
			break
		}
	}

	require.Len(t, seen, 5)
	for i := 1; i < len(seen); i++ {
		assert.True(t, seen[i].Before(seen[i-1]), "journals must be newest first")
	}
	assert.Nil(t, token)

	bad := "not-a-token"
	_, _, err := repos.JournalRepo.ListJournalsByCompany(ctx, company.CompanyID, 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	has, err := repos.JournalRepo.CompanyHasJournals(ctx, company.CompanyID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestIntegration_DocumentNumbers(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repos := pgsql.NewRepositoryProvider(pool)
	company := seedCompany(t, repos, "KE", "KES")

	for want := int64(1); want <= 3; want++ {
		n, err := repos.CompanyRepo.NextDocumentNumber(ctx, company.CompanyID, domain.DocumentInvoice)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	n, err := repos.CompanyRepo.NextDocumentNumber(ctx, company.CompanyID, domain.DocumentBill)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repos.CompanyRepo.NextDocumentNumber(ctx, uuid.NewString(), domain.DocumentInvoice)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
