package dto

import (
	"time"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLoanRequest issues a loan to a client.
type CreateLoanRequest struct {
	ClientID          string          `json:"clientId" binding:"required,uuid"`
	Amount            decimal.Decimal `json:"amount" binding:"gt=0"`
	TotalAmount       decimal.Decimal `json:"totalAmount" binding:"gt=0"`
	InstallmentsCount int             `json:"installmentsCount" binding:"required,min=1,max=600"`
	StartDate         *Date           `json:"startDate" binding:"required"`
	InterestType      string          `json:"interestType" binding:"omitempty,oneof=MONTHLY WEEKLY DAILY"`
	PartnerID         *string         `json:"partnerId"`
}

// UpdateLoanRequest edits loan metadata. The total is driven by installments and is not editable here.
type UpdateLoanRequest struct {
	Amount       *decimal.Decimal `json:"amount" binding:"omitempty,gt=0"`
	InterestType *string          `json:"interestType" binding:"omitempty,oneof=MONTHLY WEEKLY DAILY"`
	StartDate    *Date            `json:"startDate"`
	PartnerID    *string          `json:"partnerId"`

	// ClearPartner detaches the partner; it wins over PartnerID.
	ClearPartner bool `json:"clearPartner"`
}

// RenegotiateLoanRequest replaces a loan's pending balance with a new loan.
type RenegotiateLoanRequest struct {
	PaidAmountEntry      *decimal.Decimal `json:"paidAmountEntry" binding:"omitempty,gte=0"`
	NewTotalAmount       decimal.Decimal  `json:"newTotalAmount" binding:"gt=0"`
	NewInstallmentsCount int              `json:"newInstallmentsCount" binding:"required,min=1,max=600"`
	NewStartDate         *Date            `json:"newStartDate" binding:"required"`
	InterestType         string           `json:"interestType" binding:"omitempty,oneof=MONTHLY WEEKLY DAILY"`
}

// Entry returns the down payment, zero when absent.
func (r RenegotiateLoanRequest) Entry() decimal.Decimal {
	if r.PaidAmountEntry == nil {
		return decimal.Zero
	}
	return *r.PaidAmountEntry
}

// ListLoansParams defines query parameters for listing loans.
type ListLoansParams struct {
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE COMPLETED RENEGOTIATED"`
	ClientID string `form:"clientId" binding:"omitempty,uuid"`
}

// LoanResponse is the public view of a loan.
type LoanResponse struct {
	LoanID         string                `json:"id"`
	ClientID       string                `json:"clientId"`
	ClientName     string                `json:"clientName,omitempty"`
	PartnerID      *string               `json:"partnerId"`
	OriginalLoanID *string               `json:"originalLoanId"`
	Amount         decimal.Decimal       `json:"amount"`
	TotalAmount    decimal.Decimal       `json:"totalAmount"`
	InterestRate   decimal.Decimal       `json:"interestRate"`
	InterestType   string                `json:"interestType"`
	StartDate      time.Time             `json:"startDate"`
	Status         string                `json:"status"`
	Installments   []InstallmentResponse `json:"installments"`
	CreatedAt      time.Time             `json:"createdAt"`
}

// ToLoanResponse converts a loan. The rate is recomputed from the current figures.
func ToLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:         l.LoanID,
		ClientID:       l.ClientID,
		ClientName:     l.ClientName,
		PartnerID:      l.PartnerID,
		OriginalLoanID: l.OriginalLoanID,
		Amount:         l.Amount,
		TotalAmount:    l.TotalAmount,
		InterestRate:   domain.InterestRateFor(l.Amount, l.TotalAmount),
		InterestType:   string(l.InterestType),
		StartDate:      l.StartDate,
		Status:         string(l.Status),
		Installments:   ToInstallmentResponses(l.Installments),
		CreatedAt:      l.CreatedAt,
	}
}

func ToLoanResponses(loans []domain.Loan) []LoanResponse {
	out := make([]LoanResponse, len(loans))
	for i := range loans {
		out[i] = ToLoanResponse(&loans[i])
	}
	return out
}
