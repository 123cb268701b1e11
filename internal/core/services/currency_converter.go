package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/placement_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/SscSPs/placement_ledger/internal/core/services"

var tracer = otel.Tracer(tracerName)

// currencyConverter resolves rates from the rate store. Rates are immutable
// once written, so lookups take no locks and may go through a cache.
type currencyConverter struct {
	BaseService
	rates portsrepo.ExchangeRateReader
}

// NewCurrencyConverter creates a converter reading from rates.
func NewCurrencyConverter(rates portsrepo.ExchangeRateReader, options ...ServiceOption) portssvc.CurrencyConverterSvc {
	return &currencyConverter{BaseService: newBaseService(options...), rates: rates}
}

var _ portssvc.CurrencyConverterSvc = (*currencyConverter)(nil)

// Convert implements portssvc.CurrencyConverterSvc.
func (c *currencyConverter) Convert(ctx context.Context, amount decimal.Decimal, from, to string, asOf time.Time, policy domain.ConversionPolicy) (domain.Conversion, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	asOf = domain.DateOnly(asOf)

	conv := domain.Conversion{From: from, To: to, AsOf: asOf}

	if amount.IsZero() {
		conv.Amount = decimal.Zero
		conv.Method = domain.MethodZero
		return conv, nil
	}

	if from == to {
		conv.Amount = amount.Round(2)
		conv.Rate = decimal.NewFromInt(1)
		conv.Method = domain.MethodIdentity
		return conv, nil
	}

	if from == "" || to == "" {
		return conv, fmt.Errorf("%w: currency codes are required for conversion", apperrors.ErrValidation)
	}

	ctx, span := tracer.Start(ctx, "CurrencyConverter.Convert", trace.WithAttributes(
		attribute.String("fx.from", from),
		attribute.String("fx.to", to),
		attribute.String("fx.as_of", asOf.Format(time.DateOnly)),
		attribute.String("fx.policy", string(policy)),
	))
	defer span.End()

	direct, err := c.rates.FindRateOnOrBefore(ctx, from, to, asOf)
	switch {
	case err == nil:
		conv.Amount = amount.Mul(direct.Rate).Round(2)
		conv.Rate = direct.Rate
		conv.RateDate = &direct.DateEffective
		conv.Method = domain.MethodDirect
		span.SetAttributes(attribute.String("fx.method", string(conv.Method)))
		return conv, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		span.RecordError(err)
		return conv, fmt.Errorf("failed to look up %s->%s rate: %w", from, to, err)
	}

	reverse, err := c.rates.FindRateOnOrBefore(ctx, to, from, asOf)
	switch {
	case err == nil:
		if reverse.Rate.IsZero() {
			return conv, fmt.Errorf("%w: stored %s->%s rate is zero", apperrors.ErrValidation, to, from)
		}
		conv.Amount = amount.Div(reverse.Rate).Round(2)
		conv.Rate = decimal.NewFromInt(1).DivRound(reverse.Rate, 10)
		conv.RateDate = &reverse.DateEffective
		conv.Method = domain.MethodReverse
		span.SetAttributes(attribute.String("fx.method", string(conv.Method)))
		return conv, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		span.RecordError(err)
		return conv, fmt.Errorf("failed to look up %s->%s rate: %w", to, from, err)
	}

	if policy == domain.PolicyLenient {
		c.LogWarn(ctx, "No fx rate available, returning unconverted amount",
			slog.String("from", from),
			slog.String("to", to),
			slog.String("as_of", asOf.Format(time.DateOnly)),
			slog.String("amount", amount.String()))
		conv.Amount = amount.Round(2)
		conv.Method = domain.MethodPassthrough
		conv.Unconverted = true
		span.SetAttributes(attribute.String("fx.method", string(conv.Method)))
		return conv, nil
	}

	missing := &apperrors.MissingFxRateError{From: from, To: to, AsOf: asOf}
	span.RecordError(missing)
	return conv, missing
}
