package pgsql

import (
	portsrepo "github.com/SscSPs/hk_loans_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(dbPool),
		PlanRepo:        newPgxPlanRepository(dbPool),
		ClientRepo:      newPgxClientRepository(dbPool),
		PartnerRepo:     newPgxPartnerRepository(dbPool),
		LoanRepo:        newPgxLoanRepository(dbPool),
		InstallmentRepo: newPgxInstallmentRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		ReportingRepo:   newPgxReportingRepository(dbPool),
		UnitOfWork:      newPgxUnitOfWork(dbPool),
	}
}
