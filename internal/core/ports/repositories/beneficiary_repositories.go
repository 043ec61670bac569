package repositories

import (
	"context"

	"github.com/flowpay/flow_backend/internal/core/domain"
)

// BeneficiaryReader defines read operations for beneficiary data
type BeneficiaryReader interface {
	// FindBeneficiaryByID retrieves a beneficiary by its ID.
	FindBeneficiaryByID(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error)

	// ListCompanyBeneficiaries retrieves beneficiaries for a company.
	ListCompanyBeneficiaries(ctx context.Context, companyID string, includeInactive bool) ([]domain.Beneficiary, error)

	// FindBankAccountByID retrieves a bank account by its ID.
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves the bank accounts of a beneficiary.
	ListBankAccounts(ctx context.Context, beneficiaryID string) ([]domain.BankAccount, error)
}

// BeneficiaryWriter defines write operations for beneficiary data
type BeneficiaryWriter interface {
	// SaveBeneficiary persists a new beneficiary.
	SaveBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error

	// UpdateBeneficiary replaces the mutable fields of a beneficiary.
	UpdateBeneficiary(ctx context.Context, beneficiary domain.Beneficiary) error

	// SetBeneficiaryActive enables or disables a beneficiary.
	SetBeneficiaryActive(ctx context.Context, beneficiaryID string, active bool, updatedBy string) error

	// SaveBankAccount persists a new bank account.
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error

	// DeleteBankAccount removes a bank account.
	DeleteBankAccount(ctx context.Context, bankAccountID string) error

	// SetDefaultBankAccount atomically makes the account the beneficiary's only
	// default: siblings are unset and the target set inside one transaction.
	SetDefaultBankAccount(ctx context.Context, bankAccountID string, updatedBy string) (*domain.BankAccount, error)
}

// BeneficiaryRepositoryFacade combines all beneficiary-related repository interfaces
type BeneficiaryRepositoryFacade interface {
	BeneficiaryReader
	BeneficiaryWriter
}
