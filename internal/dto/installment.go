package dto

import (
	"time"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PayInstallmentRequest records a payment. Type defaults to FULL.
type PayInstallmentRequest struct {
	AmountPaid  decimal.Decimal `json:"amountPaid" binding:"gt=0"`
	Type        string          `json:"type" binding:"omitempty,oneof=FULL INTEREST_ONLY"`
	PaymentDate *Date           `json:"paymentDate"`
	NextDueDate *Date           `json:"nextDueDate"`
}

// Mode returns the requested payment mode.
func (r PayInstallmentRequest) Mode() domain.PaymentMode {
	if r.Type == "" {
		return domain.PaymentFull
	}
	return domain.PaymentMode(r.Type)
}

// UpdateInstallmentRequest overrides installment fields directly, without emitting cash flow.
type UpdateInstallmentRequest struct {
	Status     *string          `json:"status" binding:"omitempty,oneof=PENDING PAID INTEREST_PAID RENEGOTIATED"`
	Amount     *decimal.Decimal `json:"amount" binding:"omitempty,gt=0"`
	DueDate    *Date            `json:"dueDate"`
	PaidAmount *decimal.Decimal `json:"paidAmount" binding:"omitempty,gte=0"`
	PaidDate   *Date            `json:"paidDate"`
}

// InstallmentResponse is the public view of an installment.
type InstallmentResponse struct {
	InstallmentID string           `json:"id"`
	LoanID        string           `json:"loanId"`
	Number        int              `json:"number"`
	Amount        decimal.Decimal  `json:"amount"`
	DueDate       time.Time        `json:"dueDate"`
	Status        string           `json:"status"`
	PaidAmount    *decimal.Decimal `json:"paidAmount"`
	PaidDate      *time.Time       `json:"paidDate"`
}

func ToInstallmentResponse(i *domain.Installment) InstallmentResponse {
	return InstallmentResponse{
		InstallmentID: i.InstallmentID,
		LoanID:        i.LoanID,
		Number:        i.Number,
		Amount:        i.Amount,
		DueDate:       i.DueDate,
		Status:        string(i.Status),
		PaidAmount:    i.PaidAmount,
		PaidDate:      i.PaidDate,
	}
}

func ToInstallmentResponses(insts []domain.Installment) []InstallmentResponse {
	out := make([]InstallmentResponse, len(insts))
	for i := range insts {
		out[i] = ToInstallmentResponse(&insts[i])
	}
	return out
}

// PaymentResponse reports the settled installment, the carried one for interest-only
// payments, and the loan status after completion re-evaluation.
type PaymentResponse struct {
	Installment    InstallmentResponse  `json:"installment"`
	NewInstallment *InstallmentResponse `json:"newInstallment,omitempty"`
	LoanStatus     string               `json:"loanStatus"`
}

func ToPaymentResponse(r *domain.PaymentResult) PaymentResponse {
	resp := PaymentResponse{
		Installment: ToInstallmentResponse(&r.Installment),
		LoanStatus:  string(r.LoanStatus),
	}
	if r.Carried != nil {
		carried := ToInstallmentResponse(r.Carried)
		resp.NewInstallment = &carried
	}
	return resp
}
