package mapping

import (
	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/flowpay/flow_backend/internal/models"
)

// ToModelBeneficiary converts a domain Beneficiary to a model Beneficiary
func ToModelBeneficiary(d domain.Beneficiary) models.Beneficiary {
	return models.Beneficiary{
		BeneficiaryID:   d.BeneficiaryID,
		CompanyID:       d.CompanyID,
		BeneficiaryName: d.BeneficiaryName,
		BeneficiaryType: d.BeneficiaryType,
		Country:         d.Country,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBeneficiary converts a model Beneficiary to a domain Beneficiary
func ToDomainBeneficiary(m models.Beneficiary) domain.Beneficiary {
	return domain.Beneficiary{
		BeneficiaryID:   m.BeneficiaryID,
		CompanyID:       m.CompanyID,
		BeneficiaryName: m.BeneficiaryName,
		BeneficiaryType: m.BeneficiaryType,
		Country:         m.Country,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBeneficiaries converts a slice of model Beneficiaries to domain Beneficiaries
func ToDomainBeneficiaries(ms []models.Beneficiary) []domain.Beneficiary {
	out := make([]domain.Beneficiary, len(ms))
	for i, m := range ms {
		out[i] = ToDomainBeneficiary(m)
	}
	return out
}

// ToModelBankAccount converts a domain BankAccount to a model BankAccount
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID:     d.BankAccountID,
		BeneficiaryID:     d.BeneficiaryID,
		AccountHolderName: d.AccountHolderName,
		IBAN:              d.IBAN,
		SwiftBIC:          d.SwiftBIC,
		BankName:          d.BankName,
		CurrencyCode:      d.CurrencyCode,
		IsDefault:         d.IsDefault,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankAccount converts a model BankAccount to a domain BankAccount
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID:     m.BankAccountID,
		BeneficiaryID:     m.BeneficiaryID,
		AccountHolderName: m.AccountHolderName,
		IBAN:              m.IBAN,
		SwiftBIC:          m.SwiftBIC,
		BankName:          m.BankName,
		CurrencyCode:      m.CurrencyCode,
		IsDefault:         m.IsDefault,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBankAccounts converts a slice of model BankAccounts to domain BankAccounts
func ToDomainBankAccounts(ms []models.BankAccount) []domain.BankAccount {
	out := make([]domain.BankAccount, len(ms))
	for i, m := range ms {
		out[i] = ToDomainBankAccount(m)
	}
	return out
}
