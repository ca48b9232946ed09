package pgsql

import (
	"context"
	"log/slog"

	portsrepo "github.com/SscSPs/hk_loans_app/internal/core/ports/repositories"
	"github.com/SscSPs/hk_loans_app/internal/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUnitOfWork runs closures inside a single pgx transaction.
type PgxUnitOfWork struct {
	BaseRepository
}

func newPgxUnitOfWork(pool *pgxpool.Pool) portsrepo.UnitOfWork {
	return &PgxUnitOfWork{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UnitOfWork = (*PgxUnitOfWork)(nil)

func (u *PgxUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	tx, err := u.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = u.Rollback(ctx, tx)
			panic(p)
		}
	}()

	repos := portsrepo.TxRepositories{
		Loans:        newPgxLoanRepository(tx),
		Installments: newPgxInstallmentRepository(tx),
		Transactions: newPgxTransactionRepository(tx),
	}

	if err := fn(ctx, repos); err != nil {
		if rbErr := u.Rollback(ctx, tx); rbErr != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Rollback failed", slog.String("error", rbErr.Error()))
		}
		return err
	}
	return u.Commit(ctx, tx)
}
