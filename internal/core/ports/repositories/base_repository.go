package repositories

import (
	"context"
)

// TxRepositories are repositories bound to a single database transaction.
type TxRepositories struct {
	Loans        LoanRepositoryFacade
	Installments InstallmentRepositoryFacade
	Transactions TransactionRepositoryFacade
}

// UnitOfWork runs multi-entity mutations atomically.
type UnitOfWork interface {
	// WithinTx runs fn in one transaction. It commits when fn returns nil and
	// rolls back otherwise, returning fn's error unchanged.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
