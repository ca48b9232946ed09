package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentStatus is the lifecycle state of a single installment.
type InstallmentStatus string

const (
	InstallmentPending      InstallmentStatus = "PENDING"
	InstallmentPaid         InstallmentStatus = "PAID"
	InstallmentInterestPaid InstallmentStatus = "INTEREST_PAID"
	InstallmentRenegotiated InstallmentStatus = "RENEGOTIATED"
)

// Valid reports whether s is a known installment status.
func (s InstallmentStatus) Valid() bool {
	switch s {
	case InstallmentPending, InstallmentPaid, InstallmentInterestPaid, InstallmentRenegotiated:
		return true
	}
	return false
}

// IsSettled reports whether a payment has been recorded against the installment.
func (s InstallmentStatus) IsSettled() bool {
	return s == InstallmentPaid || s == InstallmentInterestPaid
}

// PaymentMode selects how a payment call settles an installment.
type PaymentMode string

const (
	PaymentFull         PaymentMode = "FULL"
	PaymentInterestOnly PaymentMode = "INTEREST_ONLY"
)

// Valid reports whether m is a known payment mode.
func (m PaymentMode) Valid() bool {
	return m == PaymentFull || m == PaymentInterestOnly
}

// Installment is one scheduled payment obligation of a loan.
type Installment struct {
	InstallmentID string            `json:"installmentID"`
	LoanID        string            `json:"loanID"`
	Number        int               `json:"number"`
	Amount        decimal.Decimal   `json:"amount"`
	DueDate       time.Time         `json:"dueDate"`
	Status        InstallmentStatus `json:"status"`
	PaidAmount    *decimal.Decimal  `json:"paidAmount,omitempty"`
	PaidDate      *time.Time        `json:"paidDate,omitempty"`
	AuditFields
}

// EnforcePaymentInvariant clears payment data on installments that are not settled.
func (i *Installment) EnforcePaymentInvariant() {
	if !i.Status.IsSettled() {
		i.PaidAmount = nil
		i.PaidDate = nil
	}
}

// Contribution is the amount this installment adds to its loan's totalAmount.
func (i Installment) Contribution() decimal.Decimal {
	if i.Status == InstallmentRenegotiated {
		return decimal.Zero
	}
	return i.Amount
}

// PaidValue returns the recorded paid amount, or zero when none.
func (i Installment) PaidValue() decimal.Decimal {
	if i.PaidAmount == nil {
		return decimal.Zero
	}
	return *i.PaidAmount
}

// PaymentResult is the outcome of a payment: the settled installment, the
// installment carried forward by an interest-only payment, and the loan status afterwards.
type PaymentResult struct {
	Installment Installment
	Carried     *Installment
	LoanStatus  LoanStatus
}
