package services_test

import (
	"context"
	"fmt"
	"maps"
	"sort"

	"github.com/SscSPs/hk_loans_app/internal/apperrors"
	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hk_loans_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// ledgerStore is an in-memory stand-in for the loan, installment and
// transaction tables. WithinTx snapshots the tables and restores them
// when the closure fails, so rollback behaviour can be asserted.
type ledgerStore struct {
	loans map[string]domain.Loan
	insts map[string]domain.Installment
	txns  map[string]domain.Transaction

	// failures makes the named method return the error.
	failures map[string]error
	commits  int
}

var (
	_ portsrepo.LoanRepositoryFacade        = (*ledgerStore)(nil)
	_ portsrepo.InstallmentRepositoryFacade = (*ledgerStore)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*ledgerStore)(nil)
	_ portsrepo.UnitOfWork                  = (*ledgerStore)(nil)
	_ portsrepo.ReportingRepository         = (*ledgerStore)(nil)
)

func newLedgerStore() *ledgerStore {
	return &ledgerStore{
		loans:    map[string]domain.Loan{},
		insts:    map[string]domain.Installment{},
		txns:     map[string]domain.Transaction{},
		failures: map[string]error{},
	}
}

func (s *ledgerStore) fail(method string) error {
	return s.failures[method]
}

func (s *ledgerStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	loans, insts, txns := maps.Clone(s.loans), maps.Clone(s.insts), maps.Clone(s.txns)
	if err := fn(ctx, portsrepo.TxRepositories{Loans: s, Installments: s, Transactions: s}); err != nil {
		s.loans, s.insts, s.txns = loans, insts, txns
		return err
	}
	s.commits++
	return nil
}

func (s *ledgerStore) withInstallments(l domain.Loan) domain.Loan {
	l.Installments = s.installmentsOf(l.LoanID)
	return l
}

func (s *ledgerStore) installmentsOf(loanID string) []domain.Installment {
	out := []domain.Installment{}
	for _, inst := range s.insts {
		if inst.LoanID == loanID {
			out = append(out, inst)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].Number < out[j].Number
		}
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

func (s *ledgerStore) FindLoans(_ context.Context, userID string, filter domain.LoanFilter) ([]domain.Loan, error) {
	out := []domain.Loan{}
	for _, l := range s.loans {
		if l.UserID != userID {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if filter.ClientID != "" && l.ClientID != filter.ClientID {
			continue
		}
		out = append(out, s.withInstallments(l))
	}
	return out, nil
}

func (s *ledgerStore) FindLoanByID(_ context.Context, loanID string) (*domain.Loan, error) {
	l, ok := s.loans[loanID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	l = s.withInstallments(l)
	return &l, nil
}

func (s *ledgerStore) FindLoanByIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	return s.FindLoanByID(ctx, loanID)
}

func (s *ledgerStore) CountOpenLoans(_ context.Context, userID string) (int, error) {
	n := 0
	for _, l := range s.loans {
		if l.UserID == userID && l.Status != domain.LoanRenegotiated {
			n++
		}
	}
	return n, nil
}

func (s *ledgerStore) SaveLoan(_ context.Context, loan domain.Loan) error {
	if err := s.fail("SaveLoan"); err != nil {
		return err
	}
	loan.Installments = nil
	s.loans[loan.LoanID] = loan
	return nil
}

func (s *ledgerStore) UpdateLoan(_ context.Context, loan domain.Loan) error {
	if err := s.fail("UpdateLoan"); err != nil {
		return err
	}
	if _, ok := s.loans[loan.LoanID]; !ok {
		return apperrors.ErrNotFound
	}
	loan.Installments = nil
	s.loans[loan.LoanID] = loan
	return nil
}

func (s *ledgerStore) DeleteLoan(_ context.Context, loanID string) error {
	if _, ok := s.loans[loanID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.loans, loanID)
	for id, inst := range s.insts {
		if inst.LoanID == loanID {
			delete(s.insts, id)
		}
	}
	for id, l := range s.loans {
		if l.OriginalLoanID != nil && *l.OriginalLoanID == loanID {
			l.OriginalLoanID = nil
			s.loans[id] = l
		}
	}
	return nil
}

func (s *ledgerStore) FindInstallmentByID(_ context.Context, installmentID string) (*domain.Installment, error) {
	inst, ok := s.insts[installmentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &inst, nil
}

func (s *ledgerStore) SaveInstallments(_ context.Context, installments []domain.Installment) error {
	if err := s.fail("SaveInstallments"); err != nil {
		return err
	}
	for _, inst := range installments {
		for _, existing := range s.insts {
			if existing.LoanID == inst.LoanID && existing.Number == inst.Number {
				return fmt.Errorf("%w: installment number %d taken", apperrors.ErrConflict, inst.Number)
			}
		}
		s.insts[inst.InstallmentID] = inst
	}
	return nil
}

func (s *ledgerStore) UpdateInstallment(_ context.Context, installment domain.Installment) error {
	if _, ok := s.insts[installment.InstallmentID]; !ok {
		return apperrors.ErrNotFound
	}
	if !installment.Status.IsSettled() && (installment.PaidAmount != nil || installment.PaidDate != nil) {
		return fmt.Errorf("check constraint violated for installment %s", installment.InstallmentID)
	}
	s.insts[installment.InstallmentID] = installment
	return nil
}

func (s *ledgerStore) DeleteInstallment(_ context.Context, installmentID string) error {
	if _, ok := s.insts[installmentID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.insts, installmentID)
	return nil
}

func (s *ledgerStore) MarkPendingRenegotiated(_ context.Context, loanID string) (int64, error) {
	var n int64
	for id, inst := range s.insts {
		if inst.LoanID == loanID && inst.Status == domain.InstallmentPending {
			inst.Status = domain.InstallmentRenegotiated
			inst.PaidAmount = nil
			inst.PaidDate = nil
			s.insts[id] = inst
			n++
		}
	}
	return n, nil
}

func (s *ledgerStore) FindTransactions(_ context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	out := []domain.Transaction{}
	for _, t := range s.txns {
		if t.UserID != userID {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.From != nil && t.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !t.Date.Before(*filter.To) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *ledgerStore) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	t, ok := s.txns[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (s *ledgerStore) SaveTransactions(_ context.Context, txns []domain.Transaction) error {
	if err := s.fail("SaveTransactions"); err != nil {
		return err
	}
	for _, t := range txns {
		s.txns[t.TransactionID] = t
	}
	return nil
}

func (s *ledgerStore) DeleteTransaction(_ context.Context, transactionID string) error {
	if _, ok := s.txns[transactionID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.txns, transactionID)
	return nil
}

func (s *ledgerStore) DeleteTransactionsByLoan(_ context.Context, loanID string) (int64, error) {
	var n int64
	for id, t := range s.txns {
		if t.LoanID != nil && *t.LoanID == loanID {
			delete(s.txns, id)
			n++
		}
	}
	return n, nil
}

// transactionsOf returns the entries linked to a loan.
func (s *ledgerStore) transactionsOf(loanID string) []domain.Transaction {
	out := []domain.Transaction{}
	for _, t := range s.txns {
		if t.LoanID != nil && *t.LoanID == loanID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// --- reporting, mirroring the SQL filters ---

func (s *ledgerStore) DashboardSummary(_ context.Context, userID string, window domain.AlertWindow) (domain.DashboardSummary, error) {
	sum := domain.DashboardSummary{
		TotalInvested:   decimal.Zero,
		TotalReceivable: decimal.Zero,
		TotalLate:       decimal.Zero,
		TotalReceived:   decimal.Zero,
	}
	for _, l := range s.loans {
		if l.UserID != userID {
			continue
		}
		active := l.Status == domain.LoanActive
		if active {
			sum.TotalInvested = sum.TotalInvested.Add(l.Amount)
			sum.TotalReceivable = sum.TotalReceivable.Add(l.TotalAmount)
		}
		for _, inst := range s.installmentsOf(l.LoanID) {
			if active && inst.Status == domain.InstallmentPending && window.IsLate(inst.DueDate) {
				sum.TotalLate = sum.TotalLate.Add(inst.Amount)
			}
			if inst.Status.IsSettled() && inst.PaidAmount != nil {
				sum.TotalReceived = sum.TotalReceived.Add(*inst.PaidAmount)
			}
		}
	}
	return sum, nil
}

func (s *ledgerStore) InstallmentAlerts(_ context.Context, userID string, window domain.AlertWindow) (domain.Alerts, error) {
	alerts := domain.Alerts{DueToday: []domain.InstallmentAlert{}, Late: []domain.InstallmentAlert{}}
	for _, l := range s.loans {
		if l.UserID != userID || l.Status != domain.LoanActive {
			continue
		}
		for _, inst := range s.installmentsOf(l.LoanID) {
			if inst.Status != domain.InstallmentPending || !inst.DueDate.Before(window.StartOfTomorrow) {
				continue
			}
			alert := domain.InstallmentAlert{Installment: inst, LoanID: l.LoanID, ClientID: l.ClientID, ClientName: l.ClientName}
			if window.IsLate(inst.DueDate) {
				alerts.Late = append(alerts.Late, alert)
			} else {
				alerts.DueToday = append(alerts.DueToday, alert)
			}
		}
	}
	return alerts, nil
}

func (s *ledgerStore) AdminStats(_ context.Context) (domain.AdminStats, error) {
	users, clients := map[string]struct{}{}, map[string]struct{}{}
	stats := domain.AdminStats{TotalLoaned: decimal.Zero}
	for _, l := range s.loans {
		users[l.UserID] = struct{}{}
		clients[l.ClientID] = struct{}{}
		stats.TotalLoans++
		if l.Status != domain.LoanRenegotiated {
			stats.TotalLoaned = stats.TotalLoaned.Add(l.Amount)
		}
	}
	stats.TotalUsers, stats.TotalClients = len(users), len(clients)
	return stats, nil
}
