package services

import (
	"context"
	"time"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/SscSPs/placement_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetRateAsOf returns the rate used for from->to on asOf: the latest rate
	// effective on or before that date.
	GetRateAsOf(ctx context.Context, fromCode, toCode string, asOf time.Time) (*domain.ExchangeRate, error)

	// ListExchangeRates lists the recorded history of a pair, newest first.
	ListExchangeRates(ctx context.Context, fromCode, toCode string) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate persists a new exchange rate.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}

// CurrencyConverterSvc converts amounts between currencies using the rate
// history.
type CurrencyConverterSvc interface {
	// Convert converts amount from one currency to another as of a date.
	// Resolution order: zero amount, same currency, latest direct rate on or
	// before asOf, latest reverse rate on or before asOf. When no rate exists
	// PolicyStrict fails with apperrors.MissingFxRateError and PolicyLenient
	// returns the amount unchanged with Unconverted set.
	Convert(ctx context.Context, amount decimal.Decimal, from, to string, asOf time.Time, policy domain.ConversionPolicy) (domain.Conversion, error)
}
