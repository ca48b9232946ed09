package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/hk_loans_app/internal/apperrors"
	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hk_loans_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/dto"
	"github.com/google/uuid"
)

// transactionService manages manual entries of the cash-flow journal.
// Loan-driven entries are written by the loan and installment services.
type transactionService struct {
	BaseService
	txnRepo portsrepo.TransactionRepositoryFacade
}

func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) ListTransactions(ctx context.Context, tenantID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if filter.Type != "" && filter.Type != domain.TransactionIn && filter.Type != domain.TransactionOut {
		return nil, fmt.Errorf("%w: type must be IN or OUT", apperrors.ErrValidation)
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, fmt.Errorf("%w: from must be before to", apperrors.ErrValidation)
	}
	txns, err := s.txnRepo.FindTransactions(ctx, tenantID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, err
	}
	return txns, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, tenantID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = req.Date.Time
	}
	description := emptyToNil(req.Description)
	if description == nil {
		d := domain.DefaultManualDescription
		description = &d
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        tenantID,
		Type:          domain.TransactionType(strings.ToUpper(strings.TrimSpace(req.Type))),
		Amount:        req.Amount,
		Category:      strings.TrimSpace(req.Category),
		Description:   description,
		Date:          date,
		CreatedAt:     now,
	}
	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if err := s.txnRepo.SaveTransactions(ctx, []domain.Transaction{txn}); err != nil {
		s.LogError(ctx, err, "Failed to save transaction")
		return nil, err
	}

	s.LogInfo(ctx, "Manual transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.Amount.StringFixed(2)))
	return &txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, tenantID, transactionID string) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return lookupErr(err, "transaction", transactionID)
	}
	if err := ensureOwner(txn.UserID, tenantID, "transaction"); err != nil {
		return err
	}
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		return lookupErr(err, "transaction", transactionID)
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
