package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/hk_loans_app/internal/apperrors"
	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hk_loans_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/dto"
	"github.com/SscSPs/hk_loans_app/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type loanService struct {
	BaseService
	loanRepo    portsrepo.LoanRepositoryFacade
	clientRepo  portsrepo.ClientRepositoryFacade
	partnerRepo portsrepo.PartnerRepositoryFacade
	uow         portsrepo.UnitOfWork
	plans       planGuard
	now         func() time.Time
}

// LoanServiceOption is a function that configures a loanService
type LoanServiceOption func(*loanService)

// WithLoanPlanLimits enforces the tenant plan's loan quota on creation.
func WithLoanPlanLimits(userRepo portsrepo.UserRepositoryFacade, planRepo portsrepo.PlanRepositoryFacade) LoanServiceOption {
	return func(s *loanService) {
		s.plans = planGuard{userRepo: userRepo, planRepo: planRepo}
	}
}

// WithLoanClock overrides the time source used for cash-flow dates and audit fields.
func WithLoanClock(now func() time.Time) LoanServiceOption {
	return func(s *loanService) {
		s.now = now
	}
}

// WithLoanMetrics records loan business counters.
func WithLoanMetrics(m *metrics.Metrics) LoanServiceOption {
	return func(s *loanService) {
		s.Metrics = m
	}
}

func NewLoanService(
	loanRepo portsrepo.LoanRepositoryFacade,
	clientRepo portsrepo.ClientRepositoryFacade,
	partnerRepo portsrepo.PartnerRepositoryFacade,
	uow portsrepo.UnitOfWork,
	options ...LoanServiceOption,
) portssvc.LoanSvcFacade {
	s := &loanService{
		loanRepo:    loanRepo,
		clientRepo:  clientRepo,
		partnerRepo: partnerRepo,
		uow:         uow,
		now:         time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

func (s *loanService) ListLoans(ctx context.Context, tenantID string, filter domain.LoanFilter) ([]domain.Loan, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown loan status %q", apperrors.ErrValidation, filter.Status)
	}
	loans, err := s.loanRepo.FindLoans(ctx, tenantID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans")
		return nil, err
	}
	return loans, nil
}

func (s *loanService) GetLoan(ctx context.Context, tenantID, loanID string) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, lookupErr(err, "loan", loanID)
	}
	if err := ensureOwner(loan.UserID, tenantID, "loan"); err != nil {
		return nil, err
	}
	return loan, nil
}

func (s *loanService) ownedClient(ctx context.Context, tenantID, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, lookupErr(err, "client", clientID)
	}
	if err := ensureOwner(client.UserID, tenantID, "client"); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *loanService) ownedPartner(ctx context.Context, tenantID string, partnerID *string) (*domain.Partner, error) {
	if partnerID == nil || strings.TrimSpace(*partnerID) == "" {
		return nil, nil
	}
	partner, err := s.partnerRepo.FindPartnerByID(ctx, *partnerID)
	if err != nil {
		return nil, lookupErr(err, "partner", *partnerID)
	}
	if err := ensureOwner(partner.UserID, tenantID, "partner"); err != nil {
		return nil, err
	}
	return partner, nil
}

func (s *loanService) CreateLoan(ctx context.Context, tenantID string, req dto.CreateLoanRequest) (*domain.Loan, error) {
	if !req.Amount.IsPositive() || !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: amount and totalAmount must be positive", apperrors.ErrValidation)
	}
	if req.InstallmentsCount < 1 {
		return nil, fmt.Errorf("%w: installmentsCount must be at least 1", apperrors.ErrValidation)
	}
	if req.StartDate == nil {
		return nil, fmt.Errorf("%w: startDate is required", apperrors.ErrValidation)
	}
	interestType, err := domain.ParseInterestType(req.InterestType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	client, err := s.ownedClient(ctx, tenantID, req.ClientID)
	if err != nil {
		return nil, err
	}
	partner, err := s.ownedPartner(ctx, tenantID, req.PartnerID)
	if err != nil {
		return nil, err
	}
	if err := s.checkLoanQuota(ctx, tenantID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	loan := domain.Loan{
		LoanID:       uuid.NewString(),
		UserID:       tenantID,
		ClientID:     client.ClientID,
		ClientName:   client.Name,
		Amount:       req.Amount,
		TotalAmount:  req.TotalAmount,
		InterestType: interestType,
		StartDate:    domain.CalendarDate(req.StartDate.Time),
		Status:       domain.LoanActive,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if partner != nil {
		pid := partner.PartnerID
		loan.PartnerID = &pid
	}
	loan.RecomputeInterestRate()
	loan.Installments = domain.BuildSchedule(loan.LoanID, loan.TotalAmount, req.InstallmentsCount, loan.StartDate, interestType, uuid.NewString, now)

	txns := []domain.Transaction{
		domain.NewLoanTransaction(uuid.NewString(), tenantID, loan.LoanID, domain.TransactionOut, loan.Amount,
			domain.CategoryLoan, domain.CategoryLoan+" - "+client.Name, now, now),
	}
	commission := partner.CommissionFor(loan.Amount, loan.TotalAmount)
	if commission.IsPositive() {
		txns = append(txns, domain.NewLoanTransaction(uuid.NewString(), tenantID, loan.LoanID, domain.TransactionOut, commission,
			domain.CategoryCommission, domain.CategoryCommission+" - "+partner.Name, now, now))
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if err := repos.Loans.SaveLoan(ctx, loan); err != nil {
			return err
		}
		if err := repos.Installments.SaveInstallments(ctx, loan.Installments); err != nil {
			return err
		}
		return repos.Transactions.SaveTransactions(ctx, txns)
	})
	if err != nil {
		return nil, s.txFailed(ctx, "create_loan", err)
	}

	s.countLoanCreated()
	s.countDisbursed(loan.Amount.Add(commission))
	s.LogInfo(ctx, "Loan created",
		slog.String("loan_id", loan.LoanID),
		slog.String("client_id", loan.ClientID),
		slog.Int("installments", len(loan.Installments)),
		slog.String("commission", commission.StringFixed(2)))
	return &loan, nil
}

func (s *loanService) checkLoanQuota(ctx context.Context, tenantID string) error {
	plan, err := s.plans.planFor(ctx, tenantID)
	if err != nil || plan == nil {
		return err
	}
	count, err := s.loanRepo.CountOpenLoans(ctx, tenantID)
	if err != nil {
		return err
	}
	if !plan.AllowsAnotherLoan(count) {
		s.LogWarn(ctx, "Loan quota reached", slog.Int("loans", count))
		return limitErr("loans", plan)
	}
	return nil
}

// lockOwned loads the loan under a row lock and checks the tenant.
func lockOwned(ctx context.Context, repos portsrepo.TxRepositories, tenantID, loanID string) (*domain.Loan, error) {
	loan, err := repos.Loans.FindLoanByIDForUpdate(ctx, loanID)
	if err != nil {
		return nil, lookupErr(err, "loan", loanID)
	}
	if err := ensureOwner(loan.UserID, tenantID, "loan"); err != nil {
		return nil, err
	}
	return loan, nil
}

func (s *loanService) UpdateLoan(ctx context.Context, tenantID, loanID string, req dto.UpdateLoanRequest) (*domain.Loan, error) {
	var interestType domain.InterestType
	if req.InterestType != nil {
		t, err := domain.ParseInterestType(*req.InterestType)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		interestType = t
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	var partner *domain.Partner
	if !req.ClearPartner {
		p, err := s.ownedPartner(ctx, tenantID, req.PartnerID)
		if err != nil {
			return nil, err
		}
		partner = p
	}

	var updated *domain.Loan
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		loan, err := lockOwned(ctx, repos, tenantID, loanID)
		if err != nil {
			return err
		}
		if req.Amount != nil {
			loan.Amount = *req.Amount
		}
		if interestType != "" {
			loan.InterestType = interestType
		}
		if req.StartDate != nil {
			loan.StartDate = domain.CalendarDate(req.StartDate.Time)
		}
		switch {
		case req.ClearPartner:
			loan.PartnerID = nil
		case partner != nil:
			pid := partner.PartnerID
			loan.PartnerID = &pid
		}
		loan.RecomputeInterestRate()
		loan.LastUpdatedAt = s.now().UTC()
		if err := repos.Loans.UpdateLoan(ctx, *loan); err != nil {
			return err
		}
		updated = loan
		return nil
	})
	if err != nil {
		return nil, s.txFailed(ctx, "update_loan", err)
	}
	return updated, nil
}

func (s *loanService) RenegotiateLoan(ctx context.Context, tenantID, loanID string, req dto.RenegotiateLoanRequest) (*domain.Loan, error) {
	entry := req.Entry()
	if entry.IsNegative() {
		return nil, fmt.Errorf("%w: paidAmountEntry cannot be negative", apperrors.ErrValidation)
	}
	if !req.NewTotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: newTotalAmount must be positive", apperrors.ErrValidation)
	}
	if req.NewInstallmentsCount < 1 {
		return nil, fmt.Errorf("%w: newInstallmentsCount must be at least 1", apperrors.ErrValidation)
	}
	if req.NewStartDate == nil {
		return nil, fmt.Errorf("%w: newStartDate is required", apperrors.ErrValidation)
	}
	interestType, err := domain.ParseInterestType(req.InterestType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	now := s.now().UTC()
	var successor domain.Loan
	var debt decimal.Decimal
	err = s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		old, err := lockOwned(ctx, repos, tenantID, loanID)
		if err != nil {
			return err
		}
		if old.Status == domain.LoanRenegotiated {
			return fmt.Errorf("%w: loan %s was already renegotiated", apperrors.ErrConflict, loanID)
		}

		// Debt is measured before the pending installments are closed.
		debt = old.PendingDebt()
		if entry.GreaterThan(debt) {
			return fmt.Errorf("%w: entry %s exceeds outstanding debt %s", apperrors.ErrValidation, entry.StringFixed(2), debt.StringFixed(2))
		}

		old.Status = domain.LoanRenegotiated
		old.LastUpdatedAt = now
		if err := repos.Loans.UpdateLoan(ctx, *old); err != nil {
			return err
		}
		if _, err := repos.Installments.MarkPendingRenegotiated(ctx, old.LoanID); err != nil {
			return err
		}

		oldID := old.LoanID
		successor = domain.Loan{
			LoanID:         uuid.NewString(),
			UserID:         old.UserID,
			ClientID:       old.ClientID,
			ClientName:     old.ClientName,
			PartnerID:      old.PartnerID,
			OriginalLoanID: &oldID,
			Amount:         debt.Sub(entry),
			TotalAmount:    req.NewTotalAmount,
			InterestType:   interestType,
			StartDate:      domain.CalendarDate(req.NewStartDate.Time),
			Status:         domain.LoanActive,
			AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}
		successor.RecomputeInterestRate()
		successor.Installments = domain.BuildSchedule(successor.LoanID, successor.TotalAmount, req.NewInstallmentsCount,
			successor.StartDate, interestType, uuid.NewString, now)

		if err := repos.Loans.SaveLoan(ctx, successor); err != nil {
			return err
		}
		if err := repos.Installments.SaveInstallments(ctx, successor.Installments); err != nil {
			return err
		}
		if !entry.IsPositive() {
			return nil
		}
		txn := domain.NewLoanTransaction(uuid.NewString(), tenantID, successor.LoanID, domain.TransactionIn, entry,
			domain.CategoryRenegotiation, domain.CategoryRenegotiation+" - "+old.ClientName, now, now)
		return repos.Transactions.SaveTransactions(ctx, []domain.Transaction{txn})
	})
	if err != nil {
		return nil, s.txFailed(ctx, "renegotiate_loan", err)
	}

	s.countRenegotiation()
	s.countReceived(entry)
	s.LogInfo(ctx, "Loan renegotiated",
		slog.String("loan_id", loanID),
		slog.String("new_loan_id", successor.LoanID),
		slog.String("debt", debt.StringFixed(2)),
		slog.String("entry", entry.StringFixed(2)))
	return &successor, nil
}

func (s *loanService) DeleteLoan(ctx context.Context, tenantID, loanID string) error {
	var removed int64
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		if _, err := lockOwned(ctx, repos, tenantID, loanID); err != nil {
			return err
		}
		n, err := repos.Transactions.DeleteTransactionsByLoan(ctx, loanID)
		if err != nil {
			return err
		}
		removed = n
		return repos.Loans.DeleteLoan(ctx, loanID)
	})
	if err != nil {
		return s.txFailed(ctx, "delete_loan", err)
	}

	s.LogInfo(ctx, "Loan deleted", slog.String("loan_id", loanID), slog.Int64("transactions_removed", removed))
	return nil
}
