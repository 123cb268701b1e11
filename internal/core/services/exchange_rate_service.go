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
	"github.com/SscSPs/placement_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// exchangeRateService provides business logic for exchange rates.
type exchangeRateService struct {
	BaseService
	rateRepo        portsrepo.ExchangeRateRepositoryFacade
	currencyService portssvc.CurrencyReaderSvc
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyService portssvc.CurrencyReaderSvc, options ...ServiceOption) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		BaseService:     newBaseService(options...),
		rateRepo:        rateRepo,
		currencyService: currencyService,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate handles the creation of a new exchange rate.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	from := strings.ToUpper(req.FromCurrencyCode)
	to := strings.ToUpper(req.ToCurrencyCode)

	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if from == to {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}
	if req.DateEffective.IsZero() {
		return nil, fmt.Errorf("%w: effective date is required", apperrors.ErrValidation)
	}

	if err := s.checkCurrency(ctx, "from", from); err != nil {
		return nil, err
	}
	if err := s.checkCurrency(ctx, "to", to); err != nil {
		return nil, err
	}

	now := s.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID:   s.NewID(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             req.Rate,
		DateEffective:    domain.DateOnly(req.DateEffective),
		AuditFields:      domain.NewAuditFields(creatorUserID, now),
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: a %s->%s rate already exists for %s", apperrors.ErrDuplicate, from, to, rate.DateEffective.Format(time.DateOnly))
		}
		s.LogError(ctx, err, "Failed to save exchange rate",
			slog.String("from", from), slog.String("to", to))
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}

	s.LogInfo(ctx, "Exchange rate created",
		slog.String("exchange_rate_id", rate.ExchangeRateID),
		slog.String("from", from),
		slog.String("to", to),
		slog.String("rate", rate.Rate.String()),
		slog.String("date_effective", rate.DateEffective.Format(time.DateOnly)))
	return &rate, nil
}

func (s *exchangeRateService) checkCurrency(ctx context.Context, side, code string) error {
	if !domain.IsSupportedCurrency(code) {
		return fmt.Errorf("%w: '%s' currency code '%s' is not supported", apperrors.ErrValidation, side, code)
	}
	if s.currencyService == nil {
		return nil
	}
	if _, err := s.currencyService.GetCurrencyByCode(ctx, code); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: '%s' currency code '%s' not found", apperrors.ErrValidation, side, code)
		}
		return fmt.Errorf("failed to validate '%s' currency '%s': %w", side, code, err)
	}
	return nil
}

// GetRateAsOf retrieves the rate in force for a pair on a date.
func (s *exchangeRateService) GetRateAsOf(ctx context.Context, fromCode, toCode string, asOf time.Time) (*domain.ExchangeRate, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	rate, err := s.rateRepo.FindRateOnOrBefore(ctx, fromCode, toCode, domain.DateOnly(asOf))
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

// ListExchangeRates lists a pair's history.
func (s *exchangeRateService) ListExchangeRates(ctx context.Context, fromCode, toCode string) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx, strings.ToUpper(fromCode), strings.ToUpper(toCode))
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rates", slog.String("from", fromCode), slog.String("to", toCode))
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}
