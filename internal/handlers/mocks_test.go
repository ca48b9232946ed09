package handlers_test

import (
	"context"
	"io"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ToggleUserStatus(ctx context.Context, userID string, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	return m.Called(ctx, userID, requestingUserID).Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock PlanService ---
type MockPlanService struct {
	mock.Mock
}

func (m *MockPlanService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}
func (m *MockPlanService) CreatePlan(ctx context.Context, req dto.CreatePlanRequest) (*domain.Plan, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}
func (m *MockPlanService) DeletePlan(ctx context.Context, planID string) error {
	return m.Called(ctx, planID).Error(0)
}

var _ portssvc.PlanSvcFacade = (*MockPlanService)(nil)

// --- Mock ClientService ---
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) ListClients(ctx context.Context, tenantID string) ([]domain.Client, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}
func (m *MockClientService) GetClient(ctx context.Context, tenantID, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, tenantID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) GetClientStats(ctx context.Context, tenantID, clientID string) (domain.ClientStats, error) {
	args := m.Called(ctx, tenantID, clientID)
	return args.Get(0).(domain.ClientStats), args.Error(1)
}
func (m *MockClientService) CreateClient(ctx context.Context, tenantID string, req dto.CreateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) UpdateClient(ctx context.Context, tenantID, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, tenantID, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) DeleteClient(ctx context.Context, tenantID, clientID string) error {
	return m.Called(ctx, tenantID, clientID).Error(0)
}
func (m *MockClientService) UploadDocument(ctx context.Context, tenantID, clientID, fileName string, content io.Reader) (*domain.ClientDocument, error) {
	args := m.Called(ctx, tenantID, clientID, fileName, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientDocument), args.Error(1)
}
func (m *MockClientService) DeleteDocument(ctx context.Context, tenantID, documentID string) error {
	return m.Called(ctx, tenantID, documentID).Error(0)
}

var _ portssvc.ClientSvcFacade = (*MockClientService)(nil)

// --- Mock PartnerService ---
type MockPartnerService struct {
	mock.Mock
}

func (m *MockPartnerService) ListPartners(ctx context.Context, tenantID string) ([]domain.Partner, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Partner), args.Error(1)
}
func (m *MockPartnerService) CreatePartner(ctx context.Context, tenantID string, req dto.CreatePartnerRequest) (*domain.Partner, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}
func (m *MockPartnerService) DeletePartner(ctx context.Context, tenantID, partnerID string) error {
	return m.Called(ctx, tenantID, partnerID).Error(0)
}

var _ portssvc.PartnerSvcFacade = (*MockPartnerService)(nil)

// --- Mock LoanService ---
type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) ListLoans(ctx context.Context, tenantID string, filter domain.LoanFilter) ([]domain.Loan, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanService) GetLoan(ctx context.Context, tenantID, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, tenantID, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) CreateLoan(ctx context.Context, tenantID string, req dto.CreateLoanRequest) (*domain.Loan, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) UpdateLoan(ctx context.Context, tenantID, loanID string, req dto.UpdateLoanRequest) (*domain.Loan, error) {
	args := m.Called(ctx, tenantID, loanID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) RenegotiateLoan(ctx context.Context, tenantID, loanID string, req dto.RenegotiateLoanRequest) (*domain.Loan, error) {
	args := m.Called(ctx, tenantID, loanID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) DeleteLoan(ctx context.Context, tenantID, loanID string) error {
	return m.Called(ctx, tenantID, loanID).Error(0)
}

var _ portssvc.LoanSvcFacade = (*MockLoanService)(nil)

// --- Mock InstallmentService ---
type MockInstallmentService struct {
	mock.Mock
}

func (m *MockInstallmentService) PayInstallment(ctx context.Context, tenantID, installmentID string, req dto.PayInstallmentRequest) (*domain.PaymentResult, error) {
	args := m.Called(ctx, tenantID, installmentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentResult), args.Error(1)
}
func (m *MockInstallmentService) UpdateInstallment(ctx context.Context, tenantID, installmentID string, req dto.UpdateInstallmentRequest) (*domain.Installment, error) {
	args := m.Called(ctx, tenantID, installmentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Installment), args.Error(1)
}
func (m *MockInstallmentService) DuplicateInstallment(ctx context.Context, tenantID, installmentID string) (*domain.Installment, error) {
	args := m.Called(ctx, tenantID, installmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Installment), args.Error(1)
}
func (m *MockInstallmentService) DeleteInstallment(ctx context.Context, tenantID, installmentID string) error {
	return m.Called(ctx, tenantID, installmentID).Error(0)
}

var _ portssvc.InstallmentSvcFacade = (*MockInstallmentService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, tenantID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) CreateTransaction(ctx context.Context, tenantID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, tenantID, transactionID string) error {
	return m.Called(ctx, tenantID, transactionID).Error(0)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock DashboardService ---
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Summary(ctx context.Context, tenantID string) (domain.DashboardSummary, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(domain.DashboardSummary), args.Error(1)
}
func (m *MockDashboardService) Alerts(ctx context.Context, tenantID string) (domain.Alerts, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(domain.Alerts), args.Error(1)
}
func (m *MockDashboardService) AdminStats(ctx context.Context) (domain.AdminStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.AdminStats), args.Error(1)
}

var _ portssvc.DashboardSvcFacade = (*MockDashboardService)(nil)
