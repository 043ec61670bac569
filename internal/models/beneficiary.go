package models

import "github.com/flowpay/flow_backend/internal/core/domain"

// Beneficiary is the persisted form of a payee.
type Beneficiary struct {
	BeneficiaryID   string                 `db:"beneficiary_id"`
	CompanyID       string                 `db:"company_id"`
	BeneficiaryName string                 `db:"beneficiary_name"`
	BeneficiaryType domain.BeneficiaryType `db:"beneficiary_type"`
	Country         string                 `db:"country"`
	IsActive        bool                   `db:"is_active"`
	AuditFields
}

// BankAccount is a beneficiary's receiving account. IBAN and SWIFT are stored
// normalized (uppercase, no separators).
type BankAccount struct {
	BankAccountID     string `db:"bank_account_id"`
	BeneficiaryID     string `db:"beneficiary_id"`
	AccountHolderName string `db:"account_holder_name"`
	IBAN              string `db:"iban"`
	SwiftBIC          string `db:"swift_bic"`
	BankName          string `db:"bank_name"`
	CurrencyCode      string `db:"currency_code"`
	IsDefault         bool   `db:"is_default"`
	AuditFields
}
