package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	QuoteRepo       QuoteRepositoryFacade
	PaymentRepo     PaymentRepositoryWithTx
	BeneficiaryRepo BeneficiaryRepositoryFacade
	AuditRepo       AuditRepositoryFacade
	UserRepo        UserRepositoryFacade
}
