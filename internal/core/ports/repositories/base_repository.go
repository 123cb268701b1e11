package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// TxFunc is the body of a unit of work. The provider it receives is bound to
// the surrounding transaction.
type TxFunc func(ctx context.Context, repos RepositoryProvider) error

// TxRunner runs a TxFunc atomically: the transaction commits only if fn
// returns nil, and every write made through the provider is rolled back
// otherwise.
type TxRunner interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}
