package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a directional rate observation: one unit of FromCurrencyCode
// multiplied by Rate gives ToCurrencyCode.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}

// ConversionPolicy decides what happens when no rate is available.
type ConversionPolicy string

const (
	// PolicyStrict fails the conversion. Used by every posting rule.
	PolicyStrict ConversionPolicy = "strict"
	// PolicyLenient returns the unconverted amount, flagged. Reporting only.
	PolicyLenient ConversionPolicy = "lenient"
)

// ConversionMethod records how a converted amount was obtained.
type ConversionMethod string

const (
	MethodZero        ConversionMethod = "zero"
	MethodIdentity    ConversionMethod = "identity"
	MethodDirect      ConversionMethod = "direct"
	MethodReverse     ConversionMethod = "reverse"
	MethodPassthrough ConversionMethod = "passthrough"
)

// Conversion is the result of converting an amount between currencies.
type Conversion struct {
	Amount      decimal.Decimal  `json:"amount"`
	From        string           `json:"from"`
	To          string           `json:"to"`
	AsOf        time.Time        `json:"asOf"`
	Rate        decimal.Decimal  `json:"rate"` // Effective from->to multiplier; zero for passthrough
	RateDate    *time.Time       `json:"rateDate,omitempty"`
	Method      ConversionMethod `json:"method"`
	Unconverted bool             `json:"unconverted"`
}
