package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan mirrors a row of the loans table. UserID and ClientName come from the clients join.
type Loan struct {
	LoanID         string          `db:"id"`
	ClientID       string          `db:"client_id"`
	UserID         string          `db:"user_id"`
	ClientName     string          `db:"client_name"`
	PartnerID      *string         `db:"partner_id"`
	OriginalLoanID *string         `db:"original_loan_id"`
	Amount         decimal.Decimal `db:"amount"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	InterestRate   decimal.Decimal `db:"interest_rate"`
	InterestType   string          `db:"interest_type"`
	StartDate      time.Time       `db:"start_date"`
	Status         string          `db:"status"`
	AuditFields
}

// Installment mirrors a row of the installments table.
type Installment struct {
	InstallmentID string           `db:"id"`
	LoanID        string           `db:"loan_id"`
	Number        int              `db:"number"`
	Amount        decimal.Decimal  `db:"amount"`
	DueDate       time.Time        `db:"due_date"`
	Status        string           `db:"status"`
	PaidAmount    *decimal.Decimal `db:"paid_amount"`
	PaidDate      *time.Time       `db:"paid_date"`
	AuditFields
}
