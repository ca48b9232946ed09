package dto

import (
	"time"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records a manual cash-flow entry.
type CreateTransactionRequest struct {
	Type        string          `json:"type" binding:"required,oneof=IN OUT"`
	Amount      decimal.Decimal `json:"amount" binding:"gt=0"`
	Category    string          `json:"category" binding:"required,max=80"`
	Description *string         `json:"description" binding:"omitempty,max=255"`
	Date        *Date           `json:"date"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Type string `form:"type" binding:"omitempty,oneof=IN OUT"`
	From string `form:"from"`
	To   string `form:"to"`
}

// TransactionResponse is the public view of a cash-flow entry.
type TransactionResponse struct {
	TransactionID string          `json:"id"`
	LoanID        *string         `json:"loanId"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Description   *string         `json:"description"`
	Date          time.Time       `json:"date"`
}

func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		LoanID:        t.LoanID,
		Type:          string(t.Type),
		Amount:        t.Amount,
		Category:      t.Category,
		Description:   t.Description,
		Date:          t.Date,
	}
}

func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}
