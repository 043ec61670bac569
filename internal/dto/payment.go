package dto

import (
	"time"

	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDraftRequest defines the structure for creating a draft payment.
type CreateDraftRequest struct {
	BeneficiaryID    string          `json:"beneficiaryID" binding:"required,uuid"`
	BankAccountID    string          `json:"bankAccountID" binding:"required,uuid"`
	SourceCurrency   string          `json:"sourceCurrency" binding:"required,len=3,uppercase"`
	TargetCurrency   string          `json:"targetCurrency" binding:"required,len=3,uppercase"`
	SourceAmount     decimal.Decimal `json:"sourceAmount" binding:"required"`
	ExecutionDate    time.Time       `json:"executionDate" binding:"required"`
	PaymentReference string          `json:"paymentReference" binding:"omitempty,max=255"`
}

// UpdateDraftRequest enumerates the mutable fields of a DRAFT payment.
// Pointer fields distinguish "absent" from zero values; anything not listed
// here cannot be changed through a draft edit.
type UpdateDraftRequest struct {
	BeneficiaryID    *string          `json:"beneficiaryID,omitempty" binding:"omitempty,uuid"`
	BankAccountID    *string          `json:"bankAccountID,omitempty" binding:"omitempty,uuid"`
	SourceAmount     *decimal.Decimal `json:"sourceAmount,omitempty"`
	ExecutionDate    *time.Time       `json:"executionDate,omitempty"`
	PaymentReference *string          `json:"paymentReference,omitempty" binding:"omitempty,max=255"`
}

// AttachQuoteRequest binds a quote to a draft payment.
type AttachQuoteRequest struct {
	QuoteID string `json:"quoteID" binding:"required,uuid"`
}

// DecisionRequest defines the structure for a checker decision.
type DecisionRequest struct {
	Action  string `json:"action" binding:"required,oneof=APPROVE REJECT"`
	Comment string `json:"comment" binding:"omitempty,max=1000"`
}

// ExecutionOutcomeRequest reports the execution collaborator's result.
type ExecutionOutcomeRequest struct {
	Outcome       string `json:"outcome" binding:"required,oneof=SUCCEEDED FAILED"`
	ExternalID    string `json:"externalID" binding:"omitempty,max=100"`
	FailureReason string `json:"failureReason" binding:"omitempty,max=1000"`
}

// PaymentResponse defines the API shape of a payment.
type PaymentResponse struct {
	PaymentID        string          `json:"paymentID"`
	CompanyID        string          `json:"companyID"`
	CreatedByID      string          `json:"createdByID"`
	BeneficiaryID    string          `json:"beneficiaryID"`
	BankAccountID    string          `json:"bankAccountID"`
	QuoteID          *string         `json:"quoteID,omitempty"`
	SourceCurrency   string          `json:"sourceCurrency"`
	TargetCurrency   string          `json:"targetCurrency"`
	SourceAmount     decimal.Decimal `json:"sourceAmount"`
	TargetAmount     decimal.Decimal `json:"targetAmount"`
	FXRate           decimal.Decimal `json:"fxRate"`
	FeeAmount        decimal.Decimal `json:"feeAmount"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	ExecutionDate    time.Time       `json:"executionDate"`
	Status           string          `json:"status"`
	ExternalID       *string         `json:"externalID,omitempty"`
	FailureReason    *string         `json:"failureReason,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:        p.PaymentID,
		CompanyID:        p.CompanyID,
		CreatedByID:      p.CreatedByID,
		BeneficiaryID:    p.BeneficiaryID,
		BankAccountID:    p.BankAccountID,
		QuoteID:          p.QuoteID,
		SourceCurrency:   p.SourceCurrency,
		TargetCurrency:   p.TargetCurrency,
		SourceAmount:     p.SourceAmount,
		TargetAmount:     p.TargetAmount,
		FXRate:           p.FXRate,
		FeeAmount:        p.FeeAmount,
		TotalDebit:       p.TotalDebit,
		PaymentReference: p.PaymentReference,
		ExecutionDate:    p.ExecutionDate,
		Status:           string(p.Status),
		ExternalID:       p.ExternalID,
		FailureReason:    p.FailureReason,
		CreatedAt:        p.CreatedAt,
		LastUpdatedAt:    p.LastUpdatedAt,
	}
}

// ToPaymentResponses converts a slice of payments.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}

// ApprovalResponse defines the API shape of one decision record.
type ApprovalResponse struct {
	ApprovalID string    `json:"approvalID"`
	PaymentID  string    `json:"paymentID"`
	DeciderID  string    `json:"deciderID"`
	Action     string    `json:"action"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToApprovalResponses converts a slice of approvals.
func ToApprovalResponses(approvals []domain.Approval) []ApprovalResponse {
	responses := make([]ApprovalResponse, len(approvals))
	for i, a := range approvals {
		responses[i] = ApprovalResponse{
			ApprovalID: a.ApprovalID,
			PaymentID:  a.PaymentID,
			DeciderID:  a.DeciderID,
			Action:     string(a.Action),
			Comment:    a.Comment,
			CreatedAt:  a.CreatedAt,
		}
	}
	return responses
}
