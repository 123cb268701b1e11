package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindRateOnOrBefore returns the latest from->to rate whose effective date
	// is on or before asOf. Returns apperrors.ErrNotFound when none exists.
	FindRateOnOrBefore(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error)

	// ListExchangeRates lists every rate recorded for a pair, newest first.
	ListExchangeRates(ctx context.Context, fromCurrencyCode, toCurrencyCode string) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a new exchange rate. A second rate for the
	// same pair and date yields apperrors.ErrDuplicate.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
