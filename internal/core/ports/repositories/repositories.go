package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo        UserRepositoryFacade
	PlanRepo        PlanRepositoryFacade
	ClientRepo      ClientRepositoryFacade
	PartnerRepo     PartnerRepositoryFacade
	LoanRepo        LoanRepositoryFacade
	InstallmentRepo InstallmentRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	ReportingRepo   ReportingRepository
	UnitOfWork      UnitOfWork
}
