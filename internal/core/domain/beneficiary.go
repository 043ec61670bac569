package domain

// BeneficiaryType distinguishes corporate from individual payees.
type BeneficiaryType string

const (
	BeneficiaryBusiness   BeneficiaryType = "BUSINESS"
	BeneficiaryIndividual BeneficiaryType = "INDIVIDUAL"
)

// Beneficiary is a payee owned by a company. Disabled beneficiaries are kept
// for payment history rather than deleted.
type Beneficiary struct {
	BeneficiaryID   string          `json:"beneficiaryID"` // Primary Key (UUID)
	CompanyID       string          `json:"companyID"`
	BeneficiaryName string          `json:"beneficiaryName"`
	BeneficiaryType BeneficiaryType `json:"beneficiaryType"`
	Country         string          `json:"country"` // ISO 3166-1 alpha-2
	IsActive        bool            `json:"isActive"`
	AuditFields
}

// BankAccount is one receiving account of a beneficiary. At most one account
// per beneficiary is the default; the repository enforces that atomically.
type BankAccount struct {
	BankAccountID     string `json:"bankAccountID"` // Primary Key (UUID)
	BeneficiaryID     string `json:"beneficiaryID"`
	AccountHolderName string `json:"accountHolderName"`
	IBAN              string `json:"iban,omitempty"`
	SwiftBIC          string `json:"swiftBic,omitempty"`
	BankName          string `json:"bankName,omitempty"`
	CurrencyCode      string `json:"currencyCode"` // ISO 4217
	IsDefault         bool   `json:"isDefault"`
	AuditFields
}
