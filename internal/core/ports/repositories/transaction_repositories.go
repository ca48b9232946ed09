package repositories

import (
	"context"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
)

// TransactionRepositoryFacade covers the cash-flow journal. Entries are never updated.
type TransactionRepositoryFacade interface {
	FindTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error)
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	SaveTransactions(ctx context.Context, txns []domain.Transaction) error
	DeleteTransaction(ctx context.Context, transactionID string) error
	// DeleteTransactionsByLoan removes every entry linked to the loan and returns the count.
	DeleteTransactionsByLoan(ctx context.Context, loanID string) (int64, error)
}
