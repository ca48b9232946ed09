package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether cash entered or left the tenant's box.
type TransactionType string

const (
	TransactionIn  TransactionType = "IN"
	TransactionOut TransactionType = "OUT"
)

// Categories emitted by the loan ledger.
const (
	CategoryLoan             = "Empréstimo"
	CategoryCommission       = "Comissão"
	CategoryInstallment      = "Pagamento Parcela"
	CategoryInterest         = "Juros"
	CategoryRenegotiation    = "Renegociação"
	DefaultManualDescription = "Lançamento manual"
)

// Transaction is an append-only cash-flow entry. LoanID links entries emitted
// by the loan ledger to the loan they belong to; manual entries leave it nil.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	UserID        string          `json:"userID"`
	LoanID        *string         `json:"loanID,omitempty"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Description   *string         `json:"description,omitempty"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TransactionFilter narrows a cash-flow listing. Zero values do not filter.
type TransactionFilter struct {
	Type TransactionType
	From *time.Time
	To   *time.Time
}

// Validate checks the fields every cash-flow entry needs.
func (t *Transaction) Validate() error {
	if t.UserID == "" {
		return errors.New("transaction must belong to a user")
	}
	if t.Type != TransactionIn && t.Type != TransactionOut {
		return errors.New("transaction type must be IN or OUT")
	}
	if !t.Amount.IsPositive() {
		return errors.New("transaction amount must be positive")
	}
	if strings.TrimSpace(t.Category) == "" {
		return errors.New("transaction category is required")
	}
	if t.Date.IsZero() {
		return errors.New("transaction date is required")
	}
	return nil
}

// NewLoanTransaction builds a ledger-emitted entry linked to loanID.
func NewLoanTransaction(id, userID, loanID string, typ TransactionType, amount decimal.Decimal, category, description string, date, now time.Time) Transaction {
	lid := loanID
	desc := description
	return Transaction{
		TransactionID: id,
		UserID:        userID,
		LoanID:        &lid,
		Type:          typ,
		Amount:        amount,
		Category:      category,
		Description:   &desc,
		Date:          date,
		CreatedAt:     now,
	}
}
