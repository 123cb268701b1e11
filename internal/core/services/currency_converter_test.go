package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
	"github.com/SscSPs/placement_ledger/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CurrencyConverterTestSuite struct {
	ledgerSuite
}

func (s *CurrencyConverterTestSuite) TestZeroAmountNeedsNoRate() {
	conv, err := s.container.Converter.Convert(s.ctx, dec("0"), "EUR", "KES", date(2024, 1, 1), domain.PolicyStrict)
	s.Require().NoError(err)
	s.True(conv.Amount.IsZero())
	s.Equal(domain.MethodZero, conv.Method)
}

func (s *CurrencyConverterTestSuite) TestIdentityRoundsToCents() {
	for _, code := range []string{"USD", "KES", "INR"} {
		conv, err := s.container.Converter.Convert(s.ctx, dec("10.005"), code, code, date(2024, 1, 1), domain.PolicyStrict)
		s.Require().NoError(err)
		s.True(conv.Amount.Equal(dec("10.01")), "got %s", conv.Amount)
		s.Equal(domain.MethodIdentity, conv.Method)
	}
}

func (s *CurrencyConverterTestSuite) TestDirectRateOnOrBefore() {
	s.seedRate("EUR", "USD", "1.10", date(2024, 1, 1))
	s.seedRate("EUR", "USD", "1.20", date(2024, 2, 1))

	conv, err := s.container.Converter.Convert(s.ctx, dec("100"), "EUR", "USD", date(2024, 1, 31), domain.PolicyStrict)
	s.Require().NoError(err)
	s.True(conv.Amount.Equal(dec("110.00")))
	s.Equal(domain.MethodDirect, conv.Method)
	s.Require().NotNil(conv.RateDate)
	s.True(conv.RateDate.Equal(date(2024, 1, 1)))

	conv, err = s.container.Converter.Convert(s.ctx, dec("100"), "eur", "usd", date(2024, 2, 1), domain.PolicyStrict)
	s.Require().NoError(err)
	s.True(conv.Amount.Equal(dec("120.00")))
}

func (s *CurrencyConverterTestSuite) TestReverseRate() {
	s.seedRate("USD", "KES", "130", date(2024, 1, 1))

	conv, err := s.container.Converter.Convert(s.ctx, dec("1000"), "KES", "USD", date(2024, 3, 1), domain.PolicyStrict)
	s.Require().NoError(err)
	s.Equal(domain.MethodReverse, conv.Method)
	s.True(conv.Amount.Equal(dec("7.69")), "got %s", conv.Amount)
}

func (s *CurrencyConverterTestSuite) TestDirectPreferredOverReverse() {
	s.seedRate("USD", "KES", "130", date(2024, 1, 1))
	s.seedRate("KES", "USD", "0.008", date(2023, 12, 1))

	conv, err := s.container.Converter.Convert(s.ctx, dec("1000"), "KES", "USD", date(2024, 3, 1), domain.PolicyStrict)
	s.Require().NoError(err)
	s.Equal(domain.MethodDirect, conv.Method)
	s.True(conv.Amount.Equal(dec("8.00")))
}

func (s *CurrencyConverterTestSuite) TestStrictMissingRate() {
	s.seedRate("USD", "KES", "130", date(2024, 5, 1))

	_, err := s.container.Converter.Convert(s.ctx, dec("50"), "USD", "KES", date(2024, 4, 30), domain.PolicyStrict)
	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrMissingFxRate)

	var missing *apperrors.MissingFxRateError
	s.Require().True(errors.As(err, &missing))
	s.Equal("USD", missing.From)
	s.Equal("KES", missing.To)
}

func (s *CurrencyConverterTestSuite) TestLenientMissingRatePassesThrough() {
	conv, err := s.container.Converter.Convert(s.ctx, dec("50.555"), "PHP", "QAR", date(2024, 4, 30), domain.PolicyLenient)
	s.Require().NoError(err)
	s.True(conv.Unconverted)
	s.Equal(domain.MethodPassthrough, conv.Method)
	s.True(conv.Amount.Equal(dec("50.56")))
}

func TestCurrencyConverter(t *testing.T) {
	suite.Run(t, new(CurrencyConverterTestSuite))
}

func TestCurrencyConverter_RepositoryErrorIsNotAMissingRate(t *testing.T) {
	repo := new(MockExchangeRateRepository)
	repo.On("FindRateOnOrBefore", mock.Anything, "EUR", "USD", mock.Anything).Return(nil, assert.AnError).Once()

	converter := services.NewCurrencyConverter(repo)
	_, err := converter.Convert(context.Background(), dec("1"), "EUR", "USD", date(2024, 1, 1), domain.PolicyLenient)

	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, apperrors.ErrMissingFxRate)
	repo.AssertExpectations(t)
}
