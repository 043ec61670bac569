package services

import (
	"context"

	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/flowpay/flow_backend/internal/dto"
)

// BeneficiaryReaderSvc defines read operations for beneficiaries. Every
// lookup is scoped to the caller's company; other companies' beneficiaries and
// accounts read as not found.
type BeneficiaryReaderSvc interface {
	// GetBeneficiary retrieves one of the company's beneficiaries.
	GetBeneficiary(ctx context.Context, companyID, beneficiaryID string) (*domain.Beneficiary, error)

	// ListCompanyBeneficiaries retrieves a company's beneficiaries.
	ListCompanyBeneficiaries(ctx context.Context, companyID string, includeInactive bool) ([]domain.Beneficiary, error)

	// GetBankAccount retrieves a bank account held by one of the company's
	// beneficiaries.
	GetBankAccount(ctx context.Context, companyID, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves the bank accounts of one of the company's
	// beneficiaries.
	ListBankAccounts(ctx context.Context, companyID, beneficiaryID string) ([]domain.BankAccount, error)
}

// BeneficiaryWriterSvc defines write operations for beneficiaries. Every
// mutation is scoped to the caller's company.
type BeneficiaryWriterSvc interface {
	// CreateBeneficiary persists a new beneficiary for a company.
	CreateBeneficiary(ctx context.Context, companyID string, req dto.CreateBeneficiaryRequest, creatorID string) (*domain.Beneficiary, error)

	// UpdateBeneficiary applies a partial update; only fields present in the
	// request change.
	UpdateBeneficiary(ctx context.Context, companyID, beneficiaryID string, req dto.UpdateBeneficiaryRequest, userID string) (*domain.Beneficiary, error)

	// SetBeneficiaryActive enables or disables a beneficiary.
	SetBeneficiaryActive(ctx context.Context, companyID, beneficiaryID string, active bool, userID string) error

	// AddBankAccount validates and persists a receiving account.
	AddBankAccount(ctx context.Context, companyID, beneficiaryID string, req dto.AddBankAccountRequest, userID string) (*domain.BankAccount, error)

	// DeleteBankAccount removes a receiving account.
	DeleteBankAccount(ctx context.Context, companyID, bankAccountID string, userID string) error

	// SetDefaultBankAccount atomically makes the account the beneficiary's
	// only default.
	SetDefaultBankAccount(ctx context.Context, companyID, bankAccountID string, userID string) (*domain.BankAccount, error)
}

// BeneficiarySvcFacade combines all beneficiary-related service interfaces
type BeneficiarySvcFacade interface {
	BeneficiaryReaderSvc
	BeneficiaryWriterSvc
}
