package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/hk_loans_app/internal/apperrors"
	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/core/services"
	"github.com/SscSPs/hk_loans_app/internal/dto"
	"github.com/SscSPs/hk_loans_app/internal/platform/metrics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	tenantA = "tenant-a"
	tenantB = "tenant-b"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// --- Test Suite ---
type LoanLedgerTestSuite struct {
	suite.Suite
	ctx         context.Context
	store       *ledgerStore
	clientRepo  *MockClientRepository
	partnerRepo *MockPartnerRepository
	loans       portssvc.LoanSvcFacade
	installs    portssvc.InstallmentSvcFacade
	now         time.Time
}

func (suite *LoanLedgerTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newLedgerStore()
	suite.clientRepo = new(MockClientRepository)
	suite.partnerRepo = new(MockPartnerRepository)
	suite.now = time.Date(2024, time.January, 10, 15, 0, 0, 0, time.UTC)
	clock := func() time.Time { return suite.now }

	m := metrics.New()
	suite.loans = services.NewLoanService(suite.store, suite.clientRepo, suite.partnerRepo, suite.store,
		services.WithLoanClock(clock), services.WithLoanMetrics(m))
	suite.installs = services.NewInstallmentService(suite.store, suite.store,
		services.WithInstallmentClock(clock), services.WithInstallmentMetrics(m))

	suite.clientRepo.On("FindClientByID", mock.Anything, "client-1").
		Return(&domain.Client{ClientID: "client-1", UserID: tenantA, Name: "Maria"}, nil).Maybe()
	suite.clientRepo.On("FindClientByID", mock.Anything, "missing").
		Return(nil, apperrors.ErrNotFound).Maybe()
}

func TestLoanLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LoanLedgerTestSuite))
}

func (suite *LoanLedgerTestSuite) requireMoney(expected string, actual decimal.Decimal) {
	suite.T().Helper()
	suite.Require().True(money(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

func (suite *LoanLedgerTestSuite) createLoan(amount, total string, count int) *domain.Loan {
	suite.T().Helper()
	loan, err := suite.loans.CreateLoan(suite.ctx, tenantA, dto.CreateLoanRequest{
		ClientID:          "client-1",
		Amount:            money(amount),
		TotalAmount:       money(total),
		InstallmentsCount: count,
		StartDate:         &dto.Date{Time: day(2024, time.January, 10)},
	})
	suite.Require().NoError(err)
	return loan
}

func (suite *LoanLedgerTestSuite) reload(loanID string) *domain.Loan {
	suite.T().Helper()
	loan, err := suite.store.FindLoanByID(suite.ctx, loanID)
	suite.Require().NoError(err)
	return loan
}

// assertTotalMatches checks totalAmount against the sum of non-renegotiated installments.
func (suite *LoanLedgerTestSuite) assertTotalMatches(loanID string) {
	suite.T().Helper()
	loan := suite.reload(loanID)
	suite.True(loan.TotalAmount.Equal(loan.CurrentTotal()), "total %s != installments %s", loan.TotalAmount, loan.CurrentTotal())
}

// seedLoan stores a loan whose installments have the given amounts and statuses.
func (suite *LoanLedgerTestSuite) seedLoan(loanID string, amounts []string, statuses []domain.InstallmentStatus) {
	total := decimal.Zero
	for i, a := range amounts {
		inst := domain.Installment{
			InstallmentID: loanID + "-inst-" + string(rune('1'+i)),
			LoanID:        loanID,
			Number:        i + 1,
			Amount:        money(a),
			DueDate:       day(2024, time.Month(2+i), 10),
			Status:        statuses[i],
		}
		if inst.Status.IsSettled() {
			paid := money(a)
			paidAt := day(2024, time.Month(2+i), 9)
			inst.PaidAmount = &paid
			inst.PaidDate = &paidAt
		}
		suite.store.insts[inst.InstallmentID] = inst
		total = total.Add(inst.Amount)
	}
	suite.store.loans[loanID] = domain.Loan{
		LoanID:       loanID,
		UserID:       tenantA,
		ClientID:     "client-1",
		ClientName:   "Maria",
		Amount:       money("300"),
		TotalAmount:  total,
		InterestType: domain.InterestMonthly,
		StartDate:    day(2024, time.January, 10),
		Status:       domain.LoanActive,
	}
}

// --- CreateLoan Tests ---
func (suite *LoanLedgerTestSuite) TestCreateLoan_BuildsScheduleAndDisbursement() {
	loan := suite.createLoan("1000", "1200", 3)

	suite.Equal(domain.LoanActive, loan.Status)
	suite.requireMoney("20", loan.InterestRate)
	stored := suite.reload(loan.LoanID)
	suite.Require().Len(stored.Installments, 3)
	for i, inst := range stored.Installments {
		suite.Equal(i+1, inst.Number)
		suite.requireMoney("400", inst.Amount)
		suite.Equal(domain.InstallmentPending, inst.Status)
		suite.True(day(2024, time.Month(2+i), 10).Equal(inst.DueDate))
	}

	txns := suite.store.transactionsOf(loan.LoanID)
	suite.Require().Len(txns, 1)
	suite.Equal(domain.TransactionOut, txns[0].Type)
	suite.Equal(domain.CategoryLoan, txns[0].Category)
	suite.Equal("Empréstimo - Maria", *txns[0].Description)
	suite.requireMoney("1000", txns[0].Amount)
	suite.assertTotalMatches(loan.LoanID)
}

func (suite *LoanLedgerTestSuite) TestCreateLoan_UnevenSplitStillSumsToTotal() {
	loan := suite.createLoan("900", "1000", 3)

	stored := suite.reload(loan.LoanID)
	suite.Require().Len(stored.Installments, 3)
	suite.requireMoney("333.33", stored.Installments[0].Amount)
	suite.requireMoney("333.33", stored.Installments[1].Amount)
	suite.requireMoney("333.34", stored.Installments[2].Amount)
	suite.requireMoney("1000", stored.TotalAmount)
	suite.assertTotalMatches(loan.LoanID)
}

func (suite *LoanLedgerTestSuite) TestCreateLoan_PartnerCommission() {
	rate := money("10")
	suite.partnerRepo.On("FindPartnerByID", mock.Anything, "partner-1").
		Return(&domain.Partner{PartnerID: "partner-1", UserID: tenantA, Name: "João", CommissionRate: &rate}, nil).Once()
	partnerID := "partner-1"

	loan, err := suite.loans.CreateLoan(suite.ctx, tenantA, dto.CreateLoanRequest{
		ClientID:          "client-1",
		Amount:            money("1000"),
		TotalAmount:       money("1200"),
		InstallmentsCount: 3,
		StartDate:         &dto.Date{Time: day(2024, time.January, 10)},
		InterestType:      "WEEKLY",
		PartnerID:         &partnerID,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.InterestWeekly, loan.InterestType)
	suite.True(day(2024, time.January, 17).Equal(loan.Installments[0].DueDate))
	txns := suite.store.transactionsOf(loan.LoanID)
	suite.Require().Len(txns, 2)
	suite.Equal(domain.CategoryCommission, txns[0].Category)
	suite.Equal("Comissão - João", *txns[0].Description)
	suite.requireMoney("20", txns[0].Amount)
	suite.partnerRepo.AssertExpectations(suite.T())
}

func (suite *LoanLedgerTestSuite) TestCreateLoan_ZeroCommissionEmitsNothing() {
	suite.partnerRepo.On("FindPartnerByID", mock.Anything, "partner-0").
		Return(&domain.Partner{PartnerID: "partner-0", UserID: tenantA, Name: "Zero"}, nil).Once()
	partnerID := "partner-0"

	loan, err := suite.loans.CreateLoan(suite.ctx, tenantA, dto.CreateLoanRequest{
		ClientID:          "client-1",
		Amount:            money("500"),
		TotalAmount:       money("600"),
		InstallmentsCount: 2,
		StartDate:         &dto.Date{Time: day(2024, time.January, 10)},
		PartnerID:         &partnerID,
	})

	suite.Require().NoError(err)
	suite.Len(suite.store.transactionsOf(loan.LoanID), 1)
}

func (suite *LoanLedgerTestSuite) TestCreateLoan_ValidationAndOwnership() {
	start := &dto.Date{Time: day(2024, time.January, 10)}

	_, err := suite.loans.CreateLoan(suite.ctx, tenantA, dto.CreateLoanRequest{
		ClientID: "client-1", Amount: money("0"), TotalAmount: money("10"), InstallmentsCount: 1, StartDate: start,
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.loans.CreateLoan(suite.ctx, tenantA, dto.CreateLoanRequest{
		ClientID: "client-1", Amount: money("10"), TotalAmount: money("10"), InstallmentsCount: 1, StartDate: start, InterestType: "YEARLY",
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.loans.CreateLoan(suite.ctx, tenantA, dto.CreateLoanRequest{
		ClientID: "missing", Amount: money("10"), TotalAmount: money("10"), InstallmentsCount: 1, StartDate: start,
	})
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.loans.CreateLoan(suite.ctx, tenantB, dto.CreateLoanRequest{
		ClientID: "client-1", Amount: money("10"), TotalAmount: money("10"), InstallmentsCount: 1, StartDate: start,
	})
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.Empty(suite.store.loans)
	suite.Empty(suite.store.txns)
}

func (suite *LoanLedgerTestSuite) TestCreateLoan_RollsBackWhenJournalWriteFails() {
	suite.store.failures["SaveTransactions"] = errors.New("connection reset")

	_, err := suite.loans.CreateLoan(suite.ctx, tenantA, dto.CreateLoanRequest{
		ClientID:          "client-1",
		Amount:            money("1000"),
		TotalAmount:       money("1200"),
		InstallmentsCount: 3,
		StartDate:         &dto.Date{Time: day(2024, time.January, 10)},
	})

	suite.Require().Error(err)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(500, appErr.Code)
	suite.Equal("operation failed", appErr.Message)
	suite.Empty(suite.store.loans)
	suite.Empty(suite.store.insts)
}

func (suite *LoanLedgerTestSuite) TestCreateLoan_PlanLimit() {
	userRepo := new(MockUserRepository)
	planRepo := new(MockPlanRepository)
	planID := "plan-basic"
	maxLoans := 1
	userRepo.On("FindUserByID", mock.Anything, tenantA).Return(&domain.User{UserID: tenantA, PlanID: &planID}, nil)
	planRepo.On("FindPlanByID", mock.Anything, planID).Return(&domain.Plan{PlanID: planID, Name: "Basic", MaxLoans: &maxLoans}, nil)
	limited := services.NewLoanService(suite.store, suite.clientRepo, suite.partnerRepo, suite.store,
		services.WithLoanPlanLimits(userRepo, planRepo))

	req := dto.CreateLoanRequest{
		ClientID:          "client-1",
		Amount:            money("100"),
		TotalAmount:       money("120"),
		InstallmentsCount: 1,
		StartDate:         &dto.Date{Time: day(2024, time.January, 10)},
	}
	_, err := limited.CreateLoan(suite.ctx, tenantA, req)
	suite.Require().NoError(err)

	_, err = limited.CreateLoan(suite.ctx, tenantA, req)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrPlanLimitReached)
	suite.Len(suite.store.loans, 1)
}

// --- PayInstallment Tests ---
func (suite *LoanLedgerTestSuite) TestEndToEnd_FullThenInterestOnlyPayment() {
	loan := suite.createLoan("1000", "1200", 3)
	first, second := loan.Installments[0], loan.Installments[1]

	res, err := suite.installs.PayInstallment(suite.ctx, tenantA, first.InstallmentID, dto.PayInstallmentRequest{
		AmountPaid: money("400"),
	})
	suite.Require().NoError(err)
	suite.Equal(domain.InstallmentPaid, res.Installment.Status)
	suite.requireMoney("400", *res.Installment.PaidAmount)
	suite.True(suite.now.Equal(*res.Installment.PaidDate))
	suite.Nil(res.Carried)
	suite.Equal(domain.LoanActive, res.LoanStatus)

	res, err = suite.installs.PayInstallment(suite.ctx, tenantA, second.InstallmentID, dto.PayInstallmentRequest{
		AmountPaid:  money("66.67"),
		Type:        "INTEREST_ONLY",
		PaymentDate: &dto.Date{Time: day(2024, time.March, 9)},
	})
	suite.Require().NoError(err)
	suite.Equal(domain.InstallmentInterestPaid, res.Installment.Status)
	suite.Require().NotNil(res.Carried)
	suite.Equal(4, res.Carried.Number)
	suite.requireMoney("400", res.Carried.Amount)
	suite.Equal(domain.InstallmentPending, res.Carried.Status)
	suite.True(day(2024, time.April, 10).Equal(res.Carried.DueDate))
	suite.Equal(domain.LoanActive, res.LoanStatus)

	stored := suite.reload(loan.LoanID)
	suite.Len(stored.Installments, 4)
	suite.requireMoney("1600", stored.TotalAmount)
	suite.assertTotalMatches(loan.LoanID)

	txns := suite.store.transactionsOf(loan.LoanID)
	suite.Require().Len(txns, 3)
	byCategory := map[string]domain.Transaction{}
	for _, t := range txns {
		byCategory[t.Category] = t
	}
	suite.Equal("Pagamento Parcela 1 - Maria", *byCategory[domain.CategoryInstallment].Description)
	suite.requireMoney("400", byCategory[domain.CategoryInstallment].Amount)
	suite.Equal(domain.TransactionIn, byCategory[domain.CategoryInstallment].Type)
	suite.Equal("Pagamento Parcela 2 - Maria (Apenas Juros)", *byCategory[domain.CategoryInterest].Description)
	suite.requireMoney("66.67", byCategory[domain.CategoryInterest].Amount)
	suite.True(day(2024, time.March, 9).Equal(byCategory[domain.CategoryInterest].Date))
}

func (suite *LoanLedgerTestSuite) TestPayInstallment_NextDueDateOverride() {
	loan := suite.createLoan("1000", "1200", 3)

	res, err := suite.installs.PayInstallment(suite.ctx, tenantA, loan.Installments[0].InstallmentID, dto.PayInstallmentRequest{
		AmountPaid:  money("66.67"),
		Type:        "INTEREST_ONLY",
		NextDueDate: &dto.Date{Time: day(2024, time.June, 1)},
	})

	suite.Require().NoError(err)
	suite.True(day(2024, time.June, 1).Equal(res.Carried.DueDate))
}

func (suite *LoanLedgerTestSuite) TestPayInstallment_AlreadySettledIsConflict() {
	loan := suite.createLoan("1000", "1200", 3)
	id := loan.Installments[0].InstallmentID
	_, err := suite.installs.PayInstallment(suite.ctx, tenantA, id, dto.PayInstallmentRequest{AmountPaid: money("400")})
	suite.Require().NoError(err)

	_, err = suite.installs.PayInstallment(suite.ctx, tenantA, id, dto.PayInstallmentRequest{AmountPaid: money("400")})

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Len(suite.store.transactionsOf(loan.LoanID), 2)
}

func (suite *LoanLedgerTestSuite) TestPayInstallment_RollbackKeepsInstallmentPending() {
	loan := suite.createLoan("1000", "1200", 3)
	suite.store.failures["SaveTransactions"] = errors.New("connection reset")

	_, err := suite.installs.PayInstallment(suite.ctx, tenantA, loan.Installments[0].InstallmentID, dto.PayInstallmentRequest{
		AmountPaid: money("400"),
		Type:       "INTEREST_ONLY",
	})

	suite.Require().Error(err)
	stored := suite.reload(loan.LoanID)
	suite.Len(stored.Installments, 3)
	suite.Equal(domain.InstallmentPending, stored.Installments[0].Status)
	suite.Nil(stored.Installments[0].PaidAmount)
	suite.requireMoney("1200", stored.TotalAmount)
}

func (suite *LoanLedgerTestSuite) TestPayInstallment_NotFound() {
	_, err := suite.installs.PayInstallment(suite.ctx, tenantA, "nope", dto.PayInstallmentRequest{AmountPaid: money("1")})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Completion Tests ---
func (suite *LoanLedgerTestSuite) TestCompletionAndReactivation() {
	loan := suite.createLoan("100", "120", 2)
	for _, inst := range loan.Installments {
		_, err := suite.installs.PayInstallment(suite.ctx, tenantA, inst.InstallmentID, dto.PayInstallmentRequest{AmountPaid: money("60")})
		suite.Require().NoError(err)
	}
	suite.Equal(domain.LoanCompleted, suite.reload(loan.LoanID).Status)

	pending := string(domain.InstallmentPending)
	updated, err := suite.installs.UpdateInstallment(suite.ctx, tenantA, loan.Installments[0].InstallmentID, dto.UpdateInstallmentRequest{
		Status: &pending,
	})

	suite.Require().NoError(err)
	suite.Nil(updated.PaidAmount)
	suite.Nil(updated.PaidDate)
	suite.Equal(domain.LoanActive, suite.reload(loan.LoanID).Status)
	suite.assertTotalMatches(loan.LoanID)
}

// --- UpdateInstallment Tests ---
func (suite *LoanLedgerTestSuite) TestUpdateInstallment_PaidFieldsClearedWhenNotSettled() {
	loan := suite.createLoan("1000", "1200", 3)
	paid := money("10")

	updated, err := suite.installs.UpdateInstallment(suite.ctx, tenantA, loan.Installments[0].InstallmentID, dto.UpdateInstallmentRequest{
		PaidAmount: &paid,
		PaidDate:   &dto.Date{Time: day(2024, time.January, 20)},
	})

	suite.Require().NoError(err)
	suite.Equal(domain.InstallmentPending, updated.Status)
	suite.Nil(updated.PaidAmount)
	suite.Nil(updated.PaidDate)
	suite.Len(suite.store.transactionsOf(loan.LoanID), 1)
}

func (suite *LoanLedgerTestSuite) TestUpdateInstallment_AmountChangeAdjustsTotal() {
	loan := suite.createLoan("1000", "1200", 3)
	amount := money("500")

	_, err := suite.installs.UpdateInstallment(suite.ctx, tenantA, loan.Installments[0].InstallmentID, dto.UpdateInstallmentRequest{
		Amount: &amount,
	})

	suite.Require().NoError(err)
	stored := suite.reload(loan.LoanID)
	suite.requireMoney("1300", stored.TotalAmount)
	suite.requireMoney("30", stored.InterestRate)
	suite.assertTotalMatches(loan.LoanID)
}

func (suite *LoanLedgerTestSuite) TestUpdateInstallment_MarkPaidWithoutCashFlow() {
	loan := suite.createLoan("1000", "1200", 1)
	status := string(domain.InstallmentPaid)
	paid := money("1200")

	updated, err := suite.installs.UpdateInstallment(suite.ctx, tenantA, loan.Installments[0].InstallmentID, dto.UpdateInstallmentRequest{
		Status:     &status,
		PaidAmount: &paid,
	})

	suite.Require().NoError(err)
	suite.requireMoney("1200", *updated.PaidAmount)
	suite.Equal(domain.LoanCompleted, suite.reload(loan.LoanID).Status)
	suite.Len(suite.store.transactionsOf(loan.LoanID), 1)
}

// --- DuplicateInstallment Tests ---
func (suite *LoanLedgerTestSuite) TestDuplicateInstallment_TwiceGrowsTotalEachTime() {
	loan := suite.createLoan("1000", "1200", 3)
	source := loan.Installments[0]

	first, err := suite.installs.DuplicateInstallment(suite.ctx, tenantA, source.InstallmentID)
	suite.Require().NoError(err)
	second, err := suite.installs.DuplicateInstallment(suite.ctx, tenantA, source.InstallmentID)
	suite.Require().NoError(err)

	suite.NotEqual(first.InstallmentID, second.InstallmentID)
	suite.Equal(4, first.Number)
	suite.Equal(5, second.Number)
	suite.True(day(2024, time.March, 10).Equal(first.DueDate))
	suite.requireMoney("400", second.Amount)
	suite.Equal(domain.InstallmentPending, second.Status)
	suite.requireMoney("2000", suite.reload(loan.LoanID).TotalAmount)
	suite.assertTotalMatches(loan.LoanID)
}

func (suite *LoanLedgerTestSuite) TestDuplicateInstallment_ReactivatesCompletedLoan() {
	loan := suite.createLoan("100", "120", 1)
	_, err := suite.installs.PayInstallment(suite.ctx, tenantA, loan.Installments[0].InstallmentID, dto.PayInstallmentRequest{AmountPaid: money("120")})
	suite.Require().NoError(err)
	suite.Equal(domain.LoanCompleted, suite.reload(loan.LoanID).Status)

	_, err = suite.installs.DuplicateInstallment(suite.ctx, tenantA, loan.Installments[0].InstallmentID)

	suite.Require().NoError(err)
	suite.Equal(domain.LoanActive, suite.reload(loan.LoanID).Status)
}

// --- DeleteInstallment Tests ---
func (suite *LoanLedgerTestSuite) TestDeleteInstallment_ShrinksTotalAndCompletes() {
	loan := suite.createLoan("1000", "1200", 2)
	_, err := suite.installs.PayInstallment(suite.ctx, tenantA, loan.Installments[0].InstallmentID, dto.PayInstallmentRequest{AmountPaid: money("600")})
	suite.Require().NoError(err)

	err = suite.installs.DeleteInstallment(suite.ctx, tenantA, loan.Installments[1].InstallmentID)

	suite.Require().NoError(err)
	stored := suite.reload(loan.LoanID)
	suite.Len(stored.Installments, 1)
	suite.requireMoney("600", stored.TotalAmount)
	suite.Equal(domain.LoanCompleted, stored.Status)
}

// --- RenegotiateLoan Tests ---
func (suite *LoanLedgerTestSuite) TestRenegotiateLoan_CarriesPendingDebt() {
	suite.seedLoan("loan-1",
		[]string{"50", "100", "100", "100"},
		[]domain.InstallmentStatus{domain.InstallmentPaid, domain.InstallmentPending, domain.InstallmentPending, domain.InstallmentPending})
	entry := money("50")

	successor, err := suite.loans.RenegotiateLoan(suite.ctx, tenantA, "loan-1", dto.RenegotiateLoanRequest{
		PaidAmountEntry:      &entry,
		NewTotalAmount:       money("300"),
		NewInstallmentsCount: 3,
		NewStartDate:         &dto.Date{Time: day(2024, time.February, 1)},
	})

	suite.Require().NoError(err)
	suite.requireMoney("250", successor.Amount)
	suite.requireMoney("300", successor.TotalAmount)
	suite.Equal(domain.LoanActive, successor.Status)
	suite.Require().NotNil(successor.OriginalLoanID)
	suite.Equal("loan-1", *successor.OriginalLoanID)
	suite.Equal("client-1", successor.ClientID)

	old := suite.reload("loan-1")
	suite.Equal(domain.LoanRenegotiated, old.Status)
	renegotiated := 0
	for _, inst := range old.Installments {
		if inst.Status == domain.InstallmentRenegotiated {
			renegotiated++
		}
	}
	suite.Equal(3, renegotiated)
	suite.Equal(domain.InstallmentPaid, old.Installments[0].Status)

	fresh := suite.reload(successor.LoanID)
	suite.Require().Len(fresh.Installments, 3)
	for _, inst := range fresh.Installments {
		suite.requireMoney("100", inst.Amount)
	}
	suite.True(day(2024, time.March, 1).Equal(fresh.Installments[0].DueDate))

	txns := suite.store.transactionsOf(successor.LoanID)
	suite.Require().Len(txns, 1)
	suite.Equal(domain.TransactionIn, txns[0].Type)
	suite.Equal(domain.CategoryRenegotiation, txns[0].Category)
	suite.Equal("Renegociação - Maria", *txns[0].Description)
	suite.requireMoney("50", txns[0].Amount)
}

func (suite *LoanLedgerTestSuite) TestRenegotiateLoan_WithoutEntryEmitsNoTransaction() {
	suite.seedLoan("loan-1", []string{"100", "100"}, []domain.InstallmentStatus{domain.InstallmentPending, domain.InstallmentPending})

	successor, err := suite.loans.RenegotiateLoan(suite.ctx, tenantA, "loan-1", dto.RenegotiateLoanRequest{
		NewTotalAmount:       money("240"),
		NewInstallmentsCount: 2,
		NewStartDate:         &dto.Date{Time: day(2024, time.February, 1)},
		InterestType:         "DAILY",
	})

	suite.Require().NoError(err)
	suite.requireMoney("200", successor.Amount)
	suite.Equal(domain.InterestDaily, successor.InterestType)
	suite.Empty(suite.store.txns)
}

func (suite *LoanLedgerTestSuite) TestRenegotiateLoan_UnevenSplitStillSumsToTotal() {
	suite.seedLoan("loan-1", []string{"100"}, []domain.InstallmentStatus{domain.InstallmentPending})

	successor, err := suite.loans.RenegotiateLoan(suite.ctx, tenantA, "loan-1", dto.RenegotiateLoanRequest{
		NewTotalAmount:       money("100"),
		NewInstallmentsCount: 3,
		NewStartDate:         &dto.Date{Time: day(2024, time.February, 1)},
	})

	suite.Require().NoError(err)
	suite.requireMoney("33.34", suite.reload(successor.LoanID).Installments[2].Amount)
	suite.assertTotalMatches(successor.LoanID)
}

func (suite *LoanLedgerTestSuite) TestRenegotiateLoan_Rejections() {
	suite.seedLoan("loan-1", []string{"100"}, []domain.InstallmentStatus{domain.InstallmentPending})
	req := dto.RenegotiateLoanRequest{
		NewTotalAmount:       money("120"),
		NewInstallmentsCount: 1,
		NewStartDate:         &dto.Date{Time: day(2024, time.February, 1)},
	}

	tooMuch := money("150")
	withEntry := req
	withEntry.PaidAmountEntry = &tooMuch
	_, err := suite.loans.RenegotiateLoan(suite.ctx, tenantA, "loan-1", withEntry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal(domain.LoanActive, suite.reload("loan-1").Status)

	_, err = suite.loans.RenegotiateLoan(suite.ctx, tenantB, "loan-1", req)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	_, err = suite.loans.RenegotiateLoan(suite.ctx, tenantA, "loan-1", req)
	suite.Require().NoError(err)

	_, err = suite.loans.RenegotiateLoan(suite.ctx, tenantA, "loan-1", req)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Len(suite.store.loans, 2)
}

func (suite *LoanLedgerTestSuite) TestRenegotiateLoan_FailureLeavesOldLoanUntouched() {
	suite.seedLoan("loan-1", []string{"100", "100"}, []domain.InstallmentStatus{domain.InstallmentPending, domain.InstallmentPending})
	suite.store.failures["SaveInstallments"] = errors.New("connection reset")

	_, err := suite.loans.RenegotiateLoan(suite.ctx, tenantA, "loan-1", dto.RenegotiateLoanRequest{
		NewTotalAmount:       money("240"),
		NewInstallmentsCount: 2,
		NewStartDate:         &dto.Date{Time: day(2024, time.February, 1)},
	})

	suite.Require().Error(err)
	old := suite.reload("loan-1")
	suite.Equal(domain.LoanActive, old.Status)
	for _, inst := range old.Installments {
		suite.Equal(domain.InstallmentPending, inst.Status)
	}
	suite.Len(suite.store.loans, 1)
}

func (suite *LoanLedgerTestSuite) TestRenegotiatedLoanTotalIsFrozen() {
	suite.seedLoan("loan-1", []string{"100", "100"}, []domain.InstallmentStatus{domain.InstallmentPaid, domain.InstallmentPending})
	_, err := suite.loans.RenegotiateLoan(suite.ctx, tenantA, "loan-1", dto.RenegotiateLoanRequest{
		NewTotalAmount:       money("120"),
		NewInstallmentsCount: 1,
		NewStartDate:         &dto.Date{Time: day(2024, time.February, 1)},
	})
	suite.Require().NoError(err)

	_, err = suite.installs.DuplicateInstallment(suite.ctx, tenantA, "loan-1-inst-1")

	suite.Require().NoError(err)
	old := suite.reload("loan-1")
	suite.Equal(domain.LoanRenegotiated, old.Status)
	suite.requireMoney("200", old.TotalAmount)
}

// --- DeleteLoan / UpdateLoan Tests ---
func (suite *LoanLedgerTestSuite) TestDeleteLoan_RemovesLinkedTransactionsOnly() {
	loan := suite.createLoan("1000", "1200", 3)
	other := suite.createLoan("500", "600", 2)
	_, err := suite.installs.PayInstallment(suite.ctx, tenantA, loan.Installments[0].InstallmentID, dto.PayInstallmentRequest{AmountPaid: money("400")})
	suite.Require().NoError(err)

	err = suite.loans.DeleteLoan(suite.ctx, tenantA, loan.LoanID)

	suite.Require().NoError(err)
	_, err = suite.store.FindLoanByID(suite.ctx, loan.LoanID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Empty(suite.store.transactionsOf(loan.LoanID))
	suite.Empty(suite.store.installmentsOf(loan.LoanID))
	suite.Len(suite.store.transactionsOf(other.LoanID), 1)
}

func (suite *LoanLedgerTestSuite) TestDeleteLoan_KeepsSuccessor() {
	suite.seedLoan("loan-1", []string{"100"}, []domain.InstallmentStatus{domain.InstallmentPending})
	successor, err := suite.loans.RenegotiateLoan(suite.ctx, tenantA, "loan-1", dto.RenegotiateLoanRequest{
		NewTotalAmount:       money("120"),
		NewInstallmentsCount: 1,
		NewStartDate:         &dto.Date{Time: day(2024, time.February, 1)},
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.loans.DeleteLoan(suite.ctx, tenantA, "loan-1"))

	kept := suite.reload(successor.LoanID)
	suite.Nil(kept.OriginalLoanID)
}

func (suite *LoanLedgerTestSuite) TestUpdateLoan_RecomputesRateAndKeepsTotal() {
	loan := suite.createLoan("1000", "1200", 3)
	amount := money("800")

	updated, err := suite.loans.UpdateLoan(suite.ctx, tenantA, loan.LoanID, dto.UpdateLoanRequest{Amount: &amount})

	suite.Require().NoError(err)
	suite.requireMoney("1200", updated.TotalAmount)
	suite.requireMoney("50", updated.InterestRate)
	suite.requireMoney("800", suite.reload(loan.LoanID).Amount)
}

func (suite *LoanLedgerTestSuite) TestListLoans_FiltersAndValidates() {
	suite.createLoan("1000", "1200", 3)
	suite.seedLoan("loan-1", []string{"100"}, []domain.InstallmentStatus{domain.InstallmentPaid})
	done := suite.store.loans["loan-1"]
	done.Status = domain.LoanCompleted
	suite.store.loans["loan-1"] = done

	active, err := suite.loans.ListLoans(suite.ctx, tenantA, domain.LoanFilter{Status: domain.LoanActive})
	suite.Require().NoError(err)
	suite.Len(active, 1)

	all, err := suite.loans.ListLoans(suite.ctx, tenantA, domain.LoanFilter{})
	suite.Require().NoError(err)
	suite.Len(all, 2)

	none, err := suite.loans.ListLoans(suite.ctx, tenantB, domain.LoanFilter{})
	suite.Require().NoError(err)
	suite.Empty(none)

	_, err = suite.loans.ListLoans(suite.ctx, tenantA, domain.LoanFilter{Status: "LOST"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Tenant isolation ---
func (suite *LoanLedgerTestSuite) TestTenantIsolation() {
	loan := suite.createLoan("1000", "1200", 3)
	instID := loan.Installments[0].InstallmentID

	_, err := suite.loans.GetLoan(suite.ctx, tenantB, loan.LoanID)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	_, err = suite.installs.PayInstallment(suite.ctx, tenantB, instID, dto.PayInstallmentRequest{AmountPaid: money("400")})
	suite.ErrorIs(err, apperrors.ErrForbidden)

	_, err = suite.installs.DuplicateInstallment(suite.ctx, tenantB, instID)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	err = suite.installs.DeleteInstallment(suite.ctx, tenantB, instID)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	err = suite.loans.DeleteLoan(suite.ctx, tenantB, loan.LoanID)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	stored := suite.reload(loan.LoanID)
	suite.Len(stored.Installments, 3)
	suite.Equal(domain.InstallmentPending, stored.Installments[0].Status)
	suite.Len(suite.store.transactionsOf(loan.LoanID), 1)
}
