package services

import (
	"context"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	"github.com/SscSPs/hk_loans_app/internal/dto"
)

// TransactionSvcFacade exposes the cash-flow journal.
type TransactionSvcFacade interface {
	ListTransactions(ctx context.Context, tenantID string, filter domain.TransactionFilter) ([]domain.Transaction, error)
	CreateTransaction(ctx context.Context, tenantID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, tenantID, transactionID string) error
}
