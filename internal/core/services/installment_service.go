package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SscSPs/hk_loans_app/internal/apperrors"
	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hk_loans_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/dto"
	"github.com/SscSPs/hk_loans_app/internal/platform/metrics"
	"github.com/google/uuid"
)

const interestOnlySuffix = " (Apenas Juros)"

type installmentService struct {
	BaseService
	installmentRepo portsrepo.InstallmentRepositoryFacade
	uow             portsrepo.UnitOfWork
	now             func() time.Time
}

// InstallmentServiceOption is a function that configures an installmentService
type InstallmentServiceOption func(*installmentService)

// WithInstallmentClock overrides the time source used when no payment date is given.
func WithInstallmentClock(now func() time.Time) InstallmentServiceOption {
	return func(s *installmentService) {
		s.now = now
	}
}

// WithInstallmentMetrics records payment counters.
func WithInstallmentMetrics(m *metrics.Metrics) InstallmentServiceOption {
	return func(s *installmentService) {
		s.Metrics = m
	}
}

func NewInstallmentService(installmentRepo portsrepo.InstallmentRepositoryFacade, uow portsrepo.UnitOfWork, options ...InstallmentServiceOption) portssvc.InstallmentSvcFacade {
	s := &installmentService{installmentRepo: installmentRepo, uow: uow, now: time.Now}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.InstallmentSvcFacade = (*installmentService)(nil)

// withLockedInstallment resolves the installment's loan, locks it and hands both to fn.
// The installment pointer refers into loan.Installments.
func (s *installmentService) withLockedInstallment(
	ctx context.Context,
	op, tenantID, installmentID string,
	fn func(ctx context.Context, repos portsrepo.TxRepositories, loan *domain.Loan, inst *domain.Installment) error,
) error {
	ref, err := s.installmentRepo.FindInstallmentByID(ctx, installmentID)
	if err != nil {
		return lookupErr(err, "installment", installmentID)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		loan, err := lockOwned(ctx, repos, tenantID, ref.LoanID)
		if err != nil {
			return err
		}
		inst := loan.FindInstallment(installmentID)
		if inst == nil {
			return fmt.Errorf("installment %s: %w", installmentID, apperrors.ErrNotFound)
		}
		return fn(ctx, repos, loan, inst)
	})
	if err != nil {
		return s.txFailed(ctx, op, err)
	}
	return nil
}

// saveLoanState re-applies the completion rule and persists the loan row.
func (s *installmentService) saveLoanState(ctx context.Context, repos portsrepo.TxRepositories, loan *domain.Loan, now time.Time) error {
	if loan.ReevaluateStatus() {
		s.LogInfo(ctx, "Loan status changed", slog.String("loan_id", loan.LoanID), slog.String("status", string(loan.Status)))
	}
	loan.LastUpdatedAt = now
	return repos.Loans.UpdateLoan(ctx, *loan)
}

func (s *installmentService) PayInstallment(ctx context.Context, tenantID, installmentID string, req dto.PayInstallmentRequest) (*domain.PaymentResult, error) {
	mode := req.Mode()
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown payment type %q", apperrors.ErrValidation, req.Type)
	}
	if !req.AmountPaid.IsPositive() {
		return nil, fmt.Errorf("%w: amountPaid must be positive", apperrors.ErrValidation)
	}

	now := s.now().UTC()
	paidDate := now
	if req.PaymentDate != nil {
		paidDate = req.PaymentDate.Time
	}
	amount := req.AmountPaid

	var result domain.PaymentResult
	err := s.withLockedInstallment(ctx, "pay_installment", tenantID, installmentID,
		func(ctx context.Context, repos portsrepo.TxRepositories, loan *domain.Loan, inst *domain.Installment) error {
			if inst.Status != domain.InstallmentPending {
				return fmt.Errorf("%w: installment %d is %s", apperrors.ErrConflict, inst.Number, inst.Status)
			}

			category := domain.CategoryInstallment
			description := domain.CategoryInstallment + " " + strconv.Itoa(inst.Number) + " - " + loan.ClientName
			inst.Status = domain.InstallmentPaid
			if mode == domain.PaymentInterestOnly {
				inst.Status = domain.InstallmentInterestPaid
				category = domain.CategoryInterest
				description += interestOnlySuffix
			}
			inst.PaidAmount = &amount
			inst.PaidDate = &paidDate
			inst.LastUpdatedAt = now
			if err := repos.Installments.UpdateInstallment(ctx, *inst); err != nil {
				return err
			}
			result.Installment = *inst

			if mode == domain.PaymentInterestOnly {
				due := loan.InterestType.Advance(inst.DueDate, 1)
				if req.NextDueDate != nil {
					due = domain.CalendarDate(req.NextDueDate.Time)
				}
				carried := domain.Installment{
					InstallmentID: uuid.NewString(),
					LoanID:        loan.LoanID,
					Number:        loan.NextInstallmentNumber(),
					Amount:        inst.Amount,
					DueDate:       due,
					Status:        domain.InstallmentPending,
					AuditFields:   domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
				}
				if err := repos.Installments.SaveInstallments(ctx, []domain.Installment{carried}); err != nil {
					return err
				}
				loan.Installments = append(loan.Installments, carried)
				loan.AdjustTotal(carried.Amount)
				result.Carried = &carried
			}

			txn := domain.NewLoanTransaction(uuid.NewString(), tenantID, loan.LoanID, domain.TransactionIn, amount,
				category, description, paidDate, now)
			if err := repos.Transactions.SaveTransactions(ctx, []domain.Transaction{txn}); err != nil {
				return err
			}

			if err := s.saveLoanState(ctx, repos, loan, now); err != nil {
				return err
			}
			result.LoanStatus = loan.Status
			return nil
		})
	if err != nil {
		return nil, err
	}

	s.countPayment(string(mode), amount)
	s.LogInfo(ctx, "Installment paid",
		slog.String("installment_id", installmentID),
		slog.String("mode", string(mode)),
		slog.String("amount", amount.StringFixed(2)),
		slog.String("loan_status", string(result.LoanStatus)))
	return &result, nil
}

func (s *installmentService) UpdateInstallment(ctx context.Context, tenantID, installmentID string, req dto.UpdateInstallmentRequest) (*domain.Installment, error) {
	var status domain.InstallmentStatus
	if req.Status != nil {
		status = domain.InstallmentStatus(*req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown installment status %q", apperrors.ErrValidation, *req.Status)
		}
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.PaidAmount != nil && req.PaidAmount.IsNegative() {
		return nil, fmt.Errorf("%w: paidAmount cannot be negative", apperrors.ErrValidation)
	}

	now := s.now().UTC()
	var updated domain.Installment
	err := s.withLockedInstallment(ctx, "update_installment", tenantID, installmentID,
		func(ctx context.Context, repos portsrepo.TxRepositories, loan *domain.Loan, inst *domain.Installment) error {
			before := inst.Contribution()
			if status != "" {
				inst.Status = status
			}
			if req.Amount != nil {
				inst.Amount = *req.Amount
			}
			if req.DueDate != nil {
				inst.DueDate = domain.CalendarDate(req.DueDate.Time)
			}
			if req.PaidAmount != nil {
				paid := *req.PaidAmount
				inst.PaidAmount = &paid
			}
			if req.PaidDate != nil {
				inst.PaidDate = req.PaidDate.TimePtr()
			}
			inst.EnforcePaymentInvariant()
			inst.LastUpdatedAt = now

			if err := repos.Installments.UpdateInstallment(ctx, *inst); err != nil {
				return err
			}
			loan.AdjustTotal(inst.Contribution().Sub(before))
			updated = *inst
			return s.saveLoanState(ctx, repos, loan, now)
		})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Installment edited", slog.String("installment_id", installmentID), slog.String("status", string(updated.Status)))
	return &updated, nil
}

func (s *installmentService) DuplicateInstallment(ctx context.Context, tenantID, installmentID string) (*domain.Installment, error) {
	now := s.now().UTC()
	var dup domain.Installment
	err := s.withLockedInstallment(ctx, "duplicate_installment", tenantID, installmentID,
		func(ctx context.Context, repos portsrepo.TxRepositories, loan *domain.Loan, inst *domain.Installment) error {
			dup = domain.Installment{
				InstallmentID: uuid.NewString(),
				LoanID:        loan.LoanID,
				Number:        loan.NextInstallmentNumber(),
				Amount:        inst.Amount,
				DueDate:       loan.InterestType.Advance(inst.DueDate, 1),
				Status:        domain.InstallmentPending,
				AuditFields:   domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
			}
			if err := repos.Installments.SaveInstallments(ctx, []domain.Installment{dup}); err != nil {
				return err
			}
			loan.Installments = append(loan.Installments, dup)
			loan.AdjustTotal(dup.Amount)
			return s.saveLoanState(ctx, repos, loan, now)
		})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Installment duplicated",
		slog.String("source_id", installmentID),
		slog.String("installment_id", dup.InstallmentID),
		slog.Int("number", dup.Number))
	return &dup, nil
}

func (s *installmentService) DeleteInstallment(ctx context.Context, tenantID, installmentID string) error {
	now := s.now().UTC()
	err := s.withLockedInstallment(ctx, "delete_installment", tenantID, installmentID,
		func(ctx context.Context, repos portsrepo.TxRepositories, loan *domain.Loan, inst *domain.Installment) error {
			contribution := inst.Contribution()
			if err := repos.Installments.DeleteInstallment(ctx, installmentID); err != nil {
				return err
			}
			kept := loan.Installments[:0]
			for _, other := range loan.Installments {
				if other.InstallmentID != installmentID {
					kept = append(kept, other)
				}
			}
			loan.Installments = kept
			loan.AdjustTotal(contribution.Neg())
			return s.saveLoanState(ctx, repos, loan, now)
		})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Installment deleted", slog.String("installment_id", installmentID))
	return nil
}
