package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/SscSPs/placement_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxRunner runs units of work inside a single Postgres transaction.
type TxRunner struct {
	BaseRepository
}

// NewTxRunner creates a TxRunner over pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{BaseRepository: newBaseRepository(pool, nil)}
}

var (
	_ portsrepo.TxRunner           = (*TxRunner)(nil)
	_ portsrepo.TransactionManager = (*TxRunner)(nil)
)

// WithinTx begins a transaction, hands fn a provider bound to it and
// commits only if fn succeeds.
func (r *TxRunner) WithinTx(ctx context.Context, fn portsrepo.TxFunc) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if the transaction is committed successfully
	defer r.Rollback(context.WithoutCancel(ctx), tx)

	if err := fn(ctx, newRepositoryProvider(r.Pool, tx)); err != nil {
		return err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return fmt.Errorf("unit of work not committed: %w", err)
	}
	return nil
}
