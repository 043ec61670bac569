package dto

import (
	"time"

	"github.com/flowpay/flow_backend/internal/core/domain"
)

// CreateBeneficiaryRequest defines the structure for creating a beneficiary.
type CreateBeneficiaryRequest struct {
	BeneficiaryName string `json:"beneficiaryName" binding:"required,max=255"`
	BeneficiaryType string `json:"beneficiaryType" binding:"required,oneof=BUSINESS INDIVIDUAL"`
	Country         string `json:"country" binding:"required,len=2,uppercase"`
}

// UpdateBeneficiaryRequest enumerates the mutable fields of a beneficiary.
type UpdateBeneficiaryRequest struct {
	BeneficiaryName *string `json:"beneficiaryName,omitempty" binding:"omitempty,max=255"`
	BeneficiaryType *string `json:"beneficiaryType,omitempty" binding:"omitempty,oneof=BUSINESS INDIVIDUAL"`
	Country         *string `json:"country,omitempty" binding:"omitempty,len=2,uppercase"`
}

// AddBankAccountRequest defines the structure for adding a receiving account.
type AddBankAccountRequest struct {
	AccountHolderName string `json:"accountHolderName" binding:"required,max=255"`
	IBAN              string `json:"iban" binding:"omitempty,max=34"`
	SwiftBIC          string `json:"swiftBic" binding:"omitempty,max=11"`
	BankName          string `json:"bankName" binding:"omitempty,max=255"`
	CurrencyCode      string `json:"currencyCode" binding:"required,len=3,uppercase"`
}

// BeneficiaryResponse defines the API shape of a beneficiary.
type BeneficiaryResponse struct {
	BeneficiaryID   string    `json:"beneficiaryID"`
	CompanyID       string    `json:"companyID"`
	BeneficiaryName string    `json:"beneficiaryName"`
	BeneficiaryType string    `json:"beneficiaryType"`
	Country         string    `json:"country"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	LastUpdatedAt   time.Time `json:"lastUpdatedAt"`
}

// ToBeneficiaryResponse converts a domain.Beneficiary to BeneficiaryResponse.
func ToBeneficiaryResponse(b *domain.Beneficiary) BeneficiaryResponse {
	return BeneficiaryResponse{
		BeneficiaryID:   b.BeneficiaryID,
		CompanyID:       b.CompanyID,
		BeneficiaryName: b.BeneficiaryName,
		BeneficiaryType: string(b.BeneficiaryType),
		Country:         b.Country,
		IsActive:        b.IsActive,
		CreatedAt:       b.CreatedAt,
		LastUpdatedAt:   b.LastUpdatedAt,
	}
}

// ToBeneficiaryResponses converts a slice of beneficiaries.
func ToBeneficiaryResponses(items []domain.Beneficiary) []BeneficiaryResponse {
	responses := make([]BeneficiaryResponse, len(items))
	for i := range items {
		responses[i] = ToBeneficiaryResponse(&items[i])
	}
	return responses
}

// BankAccountResponse defines the API shape of a receiving account.
type BankAccountResponse struct {
	BankAccountID     string    `json:"bankAccountID"`
	BeneficiaryID     string    `json:"beneficiaryID"`
	AccountHolderName string    `json:"accountHolderName"`
	IBAN              string    `json:"iban,omitempty"`
	SwiftBIC          string    `json:"swiftBic,omitempty"`
	BankName          string    `json:"bankName,omitempty"`
	CurrencyCode      string    `json:"currencyCode"`
	IsDefault         bool      `json:"isDefault"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ToBankAccountResponse converts a domain.BankAccount to BankAccountResponse.
func ToBankAccountResponse(a *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID:     a.BankAccountID,
		BeneficiaryID:     a.BeneficiaryID,
		AccountHolderName: a.AccountHolderName,
		IBAN:              a.IBAN,
		SwiftBIC:          a.SwiftBIC,
		BankName:          a.BankName,
		CurrencyCode:      a.CurrencyCode,
		IsDefault:         a.IsDefault,
		CreatedAt:         a.CreatedAt,
	}
}

// ToBankAccountResponses converts a slice of bank accounts.
func ToBankAccountResponses(items []domain.BankAccount) []BankAccountResponse {
	responses := make([]BankAccountResponse, len(items))
	for i := range items {
		responses[i] = ToBankAccountResponse(&items[i])
	}
	return responses
}
