package services_test

import (
	"context"
	"io"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hk_loans_app/internal/core/ports/repositories"
	"github.com/SscSPs/hk_loans_app/internal/storage"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock PlanRepository ---
type MockPlanRepository struct {
	mock.Mock
}

var _ portsrepo.PlanRepositoryFacade = (*MockPlanRepository)(nil)

func (m *MockPlanRepository) FindPlans(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

func (m *MockPlanRepository) SavePlan(ctx context.Context, plan domain.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) DeletePlan(ctx context.Context, planID string) error {
	args := m.Called(ctx, planID)
	return args.Error(0)
}

// --- Mock ClientRepository ---
type MockClientRepository struct {
	mock.Mock
}

var _ portsrepo.ClientRepositoryFacade = (*MockClientRepository)(nil)

func (m *MockClientRepository) FindClients(ctx context.Context, userID string) ([]domain.Client, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) CountClients(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockClientRepository) ClientStats(ctx context.Context, clientID string) (domain.ClientStats, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(domain.ClientStats), args.Error(1)
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockClientRepository) SaveDocument(ctx context.Context, doc domain.ClientDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockClientRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.ClientDocument, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientDocument), args.Error(1)
}

func (m *MockClientRepository) FindDocumentsByClient(ctx context.Context, clientID string) ([]domain.ClientDocument, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClientDocument), args.Error(1)
}

func (m *MockClientRepository) DeleteDocument(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

// --- Mock PartnerRepository ---
type MockPartnerRepository struct {
	mock.Mock
}

var _ portsrepo.PartnerRepositoryFacade = (*MockPartnerRepository)(nil)

func (m *MockPartnerRepository) FindPartners(ctx context.Context, userID string) ([]domain.Partner, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

func (m *MockPartnerRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

func (m *MockPartnerRepository) DeletePartner(ctx context.Context, partnerID string) error {
	args := m.Called(ctx, partnerID)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) DashboardSummary(ctx context.Context, userID string, window domain.AlertWindow) (domain.DashboardSummary, error) {
	args := m.Called(ctx, userID, window)
	return args.Get(0).(domain.DashboardSummary), args.Error(1)
}

func (m *MockReportingRepository) InstallmentAlerts(ctx context.Context, userID string, window domain.AlertWindow) (domain.Alerts, error) {
	args := m.Called(ctx, userID, window)
	return args.Get(0).(domain.Alerts), args.Error(1)
}

func (m *MockReportingRepository) AdminStats(ctx context.Context) (domain.AdminStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.AdminStats), args.Error(1)
}

// --- Mock DocumentStore ---
type MockDocumentStore struct {
	mock.Mock
}

var _ storage.DocumentStore = (*MockDocumentStore)(nil)

func (m *MockDocumentStore) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	data, _ := io.ReadAll(r)
	args := m.Called(ctx, key, data)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockDocumentStore) URL(key string) string {
	args := m.Called(key)
	return args.String(0)
}
