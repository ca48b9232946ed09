package services

import (
	"context"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	"github.com/SscSPs/hk_loans_app/internal/dto"
)

// LoanReaderSvc defines tenant-scoped loan reads.
type LoanReaderSvc interface {
	ListLoans(ctx context.Context, tenantID string, filter domain.LoanFilter) ([]domain.Loan, error)
	GetLoan(ctx context.Context, tenantID, loanID string) (*domain.Loan, error)
}

// LoanWriterSvc defines loan state transitions.
type LoanWriterSvc interface {
	// CreateLoan persists the loan, its schedule and its outgoing cash-flow entries atomically.
	CreateLoan(ctx context.Context, tenantID string, req dto.CreateLoanRequest) (*domain.Loan, error)

	// UpdateLoan edits loan metadata. The total is never set directly.
	UpdateLoan(ctx context.Context, tenantID, loanID string, req dto.UpdateLoanRequest) (*domain.Loan, error)

	// RenegotiateLoan closes the loan and returns the successor that carries its remaining debt.
	RenegotiateLoan(ctx context.Context, tenantID, loanID string, req dto.RenegotiateLoanRequest) (*domain.Loan, error)

	// DeleteLoan removes the loan, its installments and its linked cash-flow entries.
	DeleteLoan(ctx context.Context, tenantID, loanID string) error
}

// LoanSvcFacade combines all loan-related service interfaces
type LoanSvcFacade interface {
	LoanReaderSvc
	LoanWriterSvc
}

// InstallmentSvcFacade covers the installment lifecycle.
type InstallmentSvcFacade interface {
	PayInstallment(ctx context.Context, tenantID, installmentID string, req dto.PayInstallmentRequest) (*domain.PaymentResult, error)

	// UpdateInstallment is a correction tool: no cash-flow entry is recorded.
	UpdateInstallment(ctx context.Context, tenantID, installmentID string, req dto.UpdateInstallmentRequest) (*domain.Installment, error)

	// DuplicateInstallment appends a PENDING copy one period later and grows the loan total.
	DuplicateInstallment(ctx context.Context, tenantID, installmentID string) (*domain.Installment, error)

	DeleteInstallment(ctx context.Context, tenantID, installmentID string) error
}
