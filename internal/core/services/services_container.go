package services

import (
	portsrepo "github.com/SscSPs/hk_loans_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/platform/config"
	"github.com/SscSPs/hk_loans_app/internal/platform/metrics"
	"github.com/SscSPs/hk_loans_app/internal/storage"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, store storage.DocumentStore, m *metrics.Metrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Auth = NewAuthService(repos.UserRepo, cfg)
	container.User = NewUserService(repos.UserRepo, repos.PlanRepo)
	container.Plan = NewPlanService(repos.PlanRepo)

	container.Client = NewClientService(
		repos.ClientRepo,
		WithPlanLimits(repos.UserRepo, repos.PlanRepo),
		WithDocumentStore(store, cfg.DocumentMaxBytes),
	)
	container.Partner = NewPartnerService(repos.PartnerRepo)

	// Loan-ledger mutations share the unit of work so they commit atomically
	container.Loan = NewLoanService(
		repos.LoanRepo,
		repos.ClientRepo,
		repos.PartnerRepo,
		repos.UnitOfWork,
		WithLoanPlanLimits(repos.UserRepo, repos.PlanRepo),
		WithLoanMetrics(m),
	)
	container.Installment = NewInstallmentService(
		repos.InstallmentRepo,
		repos.UnitOfWork,
		WithInstallmentMetrics(m),
	)
	container.Transaction = NewTransactionService(repos.TransactionRepo)
	container.Dashboard = NewDashboardService(repos.ReportingRepo, cfg.Timezone)

	return container
}
