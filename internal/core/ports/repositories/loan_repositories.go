package repositories

import (
	"context"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
)

// LoanReader defines read operations for loan data. Loans are returned with
// their installments ordered by due date and UserID resolved through the client.
type LoanReader interface {
	FindLoans(ctx context.Context, userID string, filter domain.LoanFilter) ([]domain.Loan, error)
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// FindLoanByIDForUpdate is FindLoanByID holding a row lock on the loan until the transaction ends.
	FindLoanByIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error)

	// CountOpenLoans counts a tenant's loans that are not RENEGOTIATED.
	CountOpenLoans(ctx context.Context, userID string) (int, error)
}

// LoanWriter defines write operations for loan data
type LoanWriter interface {
	SaveLoan(ctx context.Context, loan domain.Loan) error
	// UpdateLoan persists the loan's own columns; installments are written separately.
	UpdateLoan(ctx context.Context, loan domain.Loan) error
	// DeleteLoan removes the loan; installments cascade.
	DeleteLoan(ctx context.Context, loanID string) error
}

// LoanRepositoryFacade combines all loan-related repository interfaces
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}

// InstallmentRepositoryFacade covers installment persistence.
type InstallmentRepositoryFacade interface {
	FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error)
	SaveInstallments(ctx context.Context, installments []domain.Installment) error
	UpdateInstallment(ctx context.Context, installment domain.Installment) error
	DeleteInstallment(ctx context.Context, installmentID string) error
	// MarkPendingRenegotiated flips every PENDING installment of the loan to RENEGOTIATED
	// and clears their payment fields. It returns how many rows changed.
	MarkPendingRenegotiated(ctx context.Context, loanID string) (int64, error)
}
