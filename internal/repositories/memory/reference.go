package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/placement_ledger/internal/apperrors"
	"github.com/SscSPs/placement_ledger/internal/core/domain"
)

// --- Currencies ---

func (r *repo) FindCurrencyByCode(_ context.Context, currencyCode string) (*domain.Currency, error) {
	var out *domain.Currency
	err := r.h.read(func(st *state) error {
		c, ok := st.currencies[strings.ToUpper(currencyCode)]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *repo) ListCurrencies(_ context.Context) ([]domain.Currency, error) {
	var out []domain.Currency
	err := r.h.read(func(st *state) error {
		out = make([]domain.Currency, 0, len(st.currencies))
		for _, c := range st.currencies {
			out = append(out, c)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CurrencyCode < out[j].CurrencyCode })
		return nil
	})
	return out, err
}

func (r *repo) SaveCurrency(_ context.Context, currency domain.Currency) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.currencies[currency.CurrencyCode]; ok {
			return fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, currency.CurrencyCode)
		}
		st.currencies[currency.CurrencyCode] = currency
		return nil
	})
}

// --- Exchange rates ---

func rateKey(from, to string, on time.Time) string {
	return from + "|" + to + "|" + on.Format(time.DateOnly)
}

func (r *repo) FindRateOnOrBefore(_ context.Context, from, to string, asOf time.Time) (*domain.ExchangeRate, error) {
	var out *domain.ExchangeRate
	err := r.h.read(func(st *state) error {
		for _, rate := range st.rates {
			if rate.FromCurrencyCode != from || rate.ToCurrencyCode != to || rate.DateEffective.After(asOf) {
				continue
			}
			if out == nil || rate.DateEffective.After(out.DateEffective) {
				out = ptr(rate)
			}
		}
		if out == nil {
			return apperrors.ErrNotFound
		}
		return nil
	})
	return out, err
}

func (r *repo) ListExchangeRates(_ context.Context, from, to string) ([]domain.ExchangeRate, error) {
	var out []domain.ExchangeRate
	err := r.h.read(func(st *state) error {
		for _, rate := range st.rates {
			if rate.FromCurrencyCode == from && rate.ToCurrencyCode == to {
				out = append(out, rate)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].DateEffective.After(out[j].DateEffective) })
		return nil
	})
	return out, err
}

func (r *repo) SaveExchangeRate(_ context.Context, rate domain.ExchangeRate) error {
	return r.h.write(func(st *state) error {
		key := rateKey(rate.FromCurrencyCode, rate.ToCurrencyCode, rate.DateEffective)
		if _, ok := st.rates[key]; ok {
			return fmt.Errorf("%w: rate %s->%s on %s", apperrors.ErrDuplicate,
				rate.FromCurrencyCode, rate.ToCurrencyCode, rate.DateEffective.Format(time.DateOnly))
		}
		st.rates[key] = rate
		return nil
	})
}

// --- Companies ---

func (r *repo) FindCompanyByID(_ context.Context, companyID string) (*domain.Company, error) {
	var out *domain.Company
	err := r.h.read(func(st *state) error {
		c, ok := st.companies[companyID]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *repo) FindCompanyByCode(_ context.Context, code string) (*domain.Company, error) {
	var out *domain.Company
	err := r.h.read(func(st *state) error {
		for _, c := range st.companies {
			if strings.EqualFold(c.Code, code) {
				out = ptr(c)
				return nil
			}
		}
		return apperrors.ErrNotFound
	})
	return out, err
}

func (r *repo) ListCompanies(_ context.Context) ([]domain.Company, error) {
	var out []domain.Company
	err := r.h.read(func(st *state) error {
		for _, c := range st.companies {
			out = append(out, c)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
		return nil
	})
	return out, err
}

func (r *repo) SaveCompany(_ context.Context, company domain.Company) error {
	return r.h.write(func(st *state) error {
		for _, c := range st.companies {
			if strings.EqualFold(c.Code, company.Code) {
				return fmt.Errorf("%w: company code %s", apperrors.ErrDuplicate, company.Code)
			}
		}
		st.companies[company.CompanyID] = company
		return nil
	})
}

func (r *repo) UpdateCompany(_ context.Context, company domain.Company) error {
	return r.h.write(func(st *state) error {
		existing, ok := st.companies[company.CompanyID]
		if !ok {
			return apperrors.ErrNotFound
		}
		if existing.BaseCurrency != company.BaseCurrency && companyHasJournals(st, company.CompanyID) {
			return fmt.Errorf("%w: base currency cannot change once journals are posted", apperrors.ErrValidation)
		}
		// Counters are owned by NextDocumentNumber.
		company.InvoiceCounter = existing.InvoiceCounter
		company.BillCounter = existing.BillCounter
		company.Code = existing.Code
		company.CreatedAt = existing.CreatedAt
		company.CreatedBy = existing.CreatedBy
		st.companies[company.CompanyID] = company
		return nil
	})
}

func (r *repo) NextDocumentNumber(_ context.Context, companyID string, kind domain.DocumentKind) (int64, error) {
	var n int64
	err := r.h.write(func(st *state) error {
		c, ok := st.companies[companyID]
		if !ok {
			return apperrors.ErrNotFound
		}
		switch kind {
		case domain.DocumentInvoice:
			c.InvoiceCounter++
			n = c.InvoiceCounter
		case domain.DocumentBill:
			c.BillCounter++
			n = c.BillCounter
		default:
			return fmt.Errorf("%w: unknown document kind %s", apperrors.ErrValidation, kind)
		}
		st.companies[companyID] = c
		return nil
	})
	return n, err
}
