// Package memory is an in-process implementation of the repository ports.
// It backs unit tests and the "memory" storage driver for local runs.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/SscSPs/placement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
)

// state is one snapshot of every table. Stored values are never mutated in
// place: writers replace map entries, so a shallow map copy is a consistent
// snapshot.
type state struct {
	currencies  map[string]domain.Currency
	rates       map[string]domain.ExchangeRate
	companies   map[string]domain.Company
	jobOrders   map[string]domain.JobOrder
	candidates  map[string]domain.Candidate
	transitions []domain.StageTransition
	costs       map[string]domain.CandidateCost
	invoices    map[string]domain.Invoice
	bills       map[string]domain.Bill
	receipts    map[string]domain.Receipt
	payments    map[string]domain.Payment
	journals    map[string]domain.Journal
	sources     map[domain.JournalSource]string
}

func newState() *state {
	return &state{
		currencies: make(map[string]domain.Currency),
		rates:      make(map[string]domain.ExchangeRate),
		companies:  make(map[string]domain.Company),
		jobOrders:  make(map[string]domain.JobOrder),
		candidates: make(map[string]domain.Candidate),
		costs:      make(map[string]domain.CandidateCost),
		invoices:   make(map[string]domain.Invoice),
		bills:      make(map[string]domain.Bill),
		receipts:   make(map[string]domain.Receipt),
		payments:   make(map[string]domain.Payment),
		journals:   make(map[string]domain.Journal),
		sources:    make(map[domain.JournalSource]string),
	}
}

func (st *state) clone() *state {
	return &state{
		currencies:  maps.Clone(st.currencies),
		rates:       maps.Clone(st.rates),
		companies:   maps.Clone(st.companies),
		jobOrders:   maps.Clone(st.jobOrders),
		candidates:  maps.Clone(st.candidates),
		transitions: append([]domain.StageTransition(nil), st.transitions...),
		costs:       maps.Clone(st.costs),
		invoices:    maps.Clone(st.invoices),
		bills:       maps.Clone(st.bills),
		receipts:    maps.Clone(st.receipts),
		payments:    maps.Clone(st.payments),
		journals:    maps.Clone(st.journals),
		sources:     maps.Clone(st.sources),
	}
}

// Store holds the committed state. Transactions are serialised by txMu:
// WithinTx works on a private snapshot and swaps it in only when fn succeeds.
// mu guards the committed state only and is never held while fn runs, so
// reads through Provider stay available inside a transaction.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   *state
}

// NewStore returns an empty store seeded with the supported currencies.
func NewStore() *Store {
	st := newState()
	for _, c := range domain.SupportedCurrencies {
		st.currencies[c.CurrencyCode] = c
	}
	return &Store{st: st}
}

var _ portsrepo.TxRunner = (*Store)(nil)

// WithinTx implements portsrepo.TxRunner.
func (s *Store) WithinTx(ctx context.Context, fn portsrepo.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.st.clone()
	s.mu.RUnlock()

	if err := fn(ctx, newProvider(&handle{st: snapshot})); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = snapshot
	s.mu.Unlock()
	return nil
}

// Provider returns repositories working directly on the committed state.
// Each call is atomic on its own. Writes wait for a running transaction so
// its swap cannot drop them; they must not be issued from inside fn.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return newProvider(&handle{store: s})
}

// handle resolves the state a repository call works on: the transaction
// snapshot when bound to one, the committed state under the store lock
// otherwise.
type handle struct {
	store *Store
	st    *state
}

func (h *handle) read(fn func(st *state) error) error {
	if h.st != nil {
		return fn(h.st)
	}
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	return fn(h.store.st)
}

func (h *handle) write(fn func(st *state) error) error {
	if h.st != nil {
		return fn(h.st)
	}
	h.store.txMu.Lock()
	defer h.store.txMu.Unlock()
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return fn(h.store.st)
}

type repo struct {
	h *handle
}

func newProvider(h *handle) portsrepo.RepositoryProvider {
	r := &repo{h: h}
	return portsrepo.RepositoryProvider{
		CurrencyRepo:     r,
		ExchangeRateRepo: r,
		CompanyRepo:      r,
		CandidateRepo:    r,
		CostRepo:         r,
		BillingRepo:      r,
		JournalRepo:      r,
	}
}

var (
	_ portsrepo.CurrencyRepositoryFacade     = (*repo)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade = (*repo)(nil)
	_ portsrepo.CompanyRepositoryFacade      = (*repo)(nil)
	_ portsrepo.CandidateRepositoryFacade    = (*repo)(nil)
	_ portsrepo.CostRepositoryFacade         = (*repo)(nil)
	_ portsrepo.BillingRepositoryFacade      = (*repo)(nil)
	_ portsrepo.JournalRepositoryFacade      = (*repo)(nil)
)

func cloneLines[T any](lines []T) []T {
	if lines == nil {
		return nil
	}
	return append([]T(nil), lines...)
}

func ptr[T any](v T) *T {
	return &v
}
