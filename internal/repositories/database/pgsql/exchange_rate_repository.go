package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/placement_ledger/internal/models"
	"github.com/SscSPs/placement_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// PgxExchangeRateRepository implements the exchange rate store on Postgres.
type PgxExchangeRateRepository struct {
	BaseRepository
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const exchangeRateColumns = `
	exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective,
	created_at, created_by, last_updated_at, last_updated_by`

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID,
		&m.FromCurrencyCode,
		&m.ToCurrencyCode,
		&m.Rate,
		&m.DateEffective,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveExchangeRate inserts a new rate. The (from, to, date) triple is unique.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	modelRate := mapping.ToModelExchangeRate(rate)
	modelRate.FromCurrencyCode = strings.ToUpper(modelRate.FromCurrencyCode)
	modelRate.ToCurrencyCode = strings.ToUpper(modelRate.ToCurrencyCode)

	_, err := r.DB.Exec(ctx, `
		INSERT INTO exchange_rates (`+exchangeRateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		modelRate.ExchangeRateID, modelRate.FromCurrencyCode, modelRate.ToCurrencyCode,
		modelRate.Rate, modelRate.DateEffective, modelRate.CreatedAt,
		modelRate.CreatedBy, modelRate.LastUpdatedAt, modelRate.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, fmt.Sprintf("failed to save exchange rate %s->%s on %s",
			modelRate.FromCurrencyCode, modelRate.ToCurrencyCode, modelRate.DateEffective.Format(time.DateOnly)))
	}
	return nil
}

// FindRateOnOrBefore returns the latest rate for the pair effective on or before asOf.
func (r *PgxExchangeRateRepository) FindRateOnOrBefore(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2 AND date_effective <= $3
		ORDER BY date_effective DESC
		LIMIT 1`

	m, err := scanExchangeRate(r.DB.QueryRow(ctx, query,
		strings.ToUpper(fromCurrencyCode), strings.ToUpper(toCurrencyCode), domain.DateOnly(asOf)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exchange rate %s->%s: %w", fromCurrencyCode, toCurrencyCode, err)
	}

	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// ListExchangeRates lists every rate for the pair, newest first.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, fromCurrencyCode, toCurrencyCode string) ([]domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2
		ORDER BY date_effective DESC`

	rows, err := r.DB.Query(ctx, query, strings.ToUpper(fromCurrencyCode), strings.ToUpper(toCurrencyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		return scanExchangeRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan exchange rates: %w", err)
	}
	return mapping.ToDomainExchangeRateSlice(modelRates), nil
}
