package services

import (
	"time"

	portsprov "github.com/flowpay/flow_backend/internal/core/ports/providers"
	portsrepo "github.com/flowpay/flow_backend/internal/core/ports/repositories"
	portssvc "github.com/flowpay/flow_backend/internal/core/ports/services"
	"github.com/flowpay/flow_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, provider portsprov.RateProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit first; every other service records through it.
	container.Audit = NewAuditService(repos.AuditRepo)

	container.User = NewUserService(repos.UserRepo)

	container.Quote = NewQuoteService(
		repos.QuoteRepo,
		provider,
		container.Audit,
		cfg.FXMarkupFraction,
		time.Duration(cfg.FXQuoteValiditySeconds)*time.Second,
	)

	container.Beneficiary = NewBeneficiaryService(repos.BeneficiaryRepo, container.Audit)

	container.Payment = NewPaymentService(
		repos.PaymentRepo,
		repos.BeneficiaryRepo,
		container.Quote,
		container.User,
		container.Audit,
	)

	return container
}

// Compile-time checks that each service satisfies its facade.
var (
	_ portssvc.QuoteSvcFacade       = (*QuoteService)(nil)
	_ portssvc.PaymentSvcFacade     = (*PaymentService)(nil)
	_ portssvc.BeneficiarySvcFacade = (*BeneficiaryService)(nil)
	_ portssvc.AuditSvcFacade       = (*AuditService)(nil)
	_ portssvc.UserSvcFacade        = (*UserService)(nil)
)
