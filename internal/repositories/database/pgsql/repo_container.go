package pgsql

import (
	portsrepo "github.com/flowpay/flow_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		QuoteRepo:       newPgxQuoteRepository(dbPool),
		PaymentRepo:     newPgxPaymentRepository(dbPool),
		BeneficiaryRepo: newPgxBeneficiaryRepository(dbPool),
		AuditRepo:       newPgxAuditRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
	}
}

// Compile-time checks that each repository satisfies its facade.
var (
	_ portsrepo.QuoteRepositoryFacade       = (*PgxQuoteRepository)(nil)
	_ portsrepo.PaymentRepositoryWithTx     = (*PgxPaymentRepository)(nil)
	_ portsrepo.BeneficiaryRepositoryFacade = (*PgxBeneficiaryRepository)(nil)
	_ portsrepo.AuditRepositoryFacade       = (*PgxAuditRepository)(nil)
	_ portsrepo.UserRepositoryFacade        = (*PgxUserRepository)(nil)
)
