package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors a row of the transactions table.
type Transaction struct {
	TransactionID string          `db:"id"`
	UserID        string          `db:"user_id"`
	LoanID        *string         `db:"loan_id"`
	Type          string          `db:"type"`
	Amount        decimal.Decimal `db:"amount"`
	Category      string          `db:"category"`
	Description   *string         `db:"description"`
	Date          time.Time       `db:"date"`
	CreatedAt     time.Time       `db:"created_at"`
}
