package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the state of a payment instruction in the maker-checker workflow.
type PaymentStatus string

const (
	PaymentDraft           PaymentStatus = "DRAFT"
	PaymentPendingApproval PaymentStatus = "PENDING_APPROVAL"
	PaymentApproved        PaymentStatus = "APPROVED"
	PaymentProcessing      PaymentStatus = "PROCESSING"
	PaymentCompleted       PaymentStatus = "COMPLETED"
	PaymentFailed          PaymentStatus = "FAILED"
	PaymentRejected        PaymentStatus = "REJECTED"
)

// CanTransitionTo reports whether the edge exists in the state machine.
// Guards (quote validity, maker-checker, comments) are enforced by the service.
// COMPLETED and FAILED have no outgoing edges; REJECTED only reopens to DRAFT.
func (s PaymentStatus) CanTransitionTo(to PaymentStatus) bool {
	switch s {
	case PaymentDraft:
		return to == PaymentPendingApproval
	case PaymentPendingApproval:
		return to == PaymentApproved || to == PaymentRejected
	case PaymentApproved:
		return to == PaymentProcessing
	case PaymentProcessing:
		return to == PaymentCompleted || to == PaymentFailed
	case PaymentRejected:
		return to == PaymentDraft
	default:
		return false
	}
}

// Payment is one cross-border payment instruction. Target amount, fee and total
// debit are frozen from the attached quote at submission and never recomputed.
type Payment struct {
	PaymentID     string `json:"paymentID"` // Primary Key (UUID)
	CompanyID     string `json:"companyID"`
	CreatedByID   string `json:"createdByID"` // the maker
	BeneficiaryID string `json:"beneficiaryID"`
	BankAccountID string `json:"bankAccountID"`
	QuoteID       *string `json:"quoteID,omitempty"` // attached quote, nil while drafting

	SourceCurrency string          `json:"sourceCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	SourceAmount   decimal.Decimal `json:"sourceAmount"`
	TargetAmount   decimal.Decimal `json:"targetAmount"` // frozen at submission
	FXRate         decimal.Decimal `json:"fxRate"`       // quote final rate at submission
	FeeAmount      decimal.Decimal `json:"feeAmount"`    // markup fee at submission
	TotalDebit     decimal.Decimal `json:"totalDebit"`   // SourceAmount + FeeAmount

	PaymentReference string        `json:"paymentReference,omitempty"`
	ExecutionDate    time.Time     `json:"executionDate"`
	Status           PaymentStatus `json:"status"`
	ExternalID       *string       `json:"externalID,omitempty"`    // execution provider reference
	FailureReason    *string       `json:"failureReason,omitempty"` // set on FAILED or auto-reject
	AuditFields
}

// ApprovalAction is a checker's decision on a submitted payment.
type ApprovalAction string

const (
	ApprovalApprove ApprovalAction = "APPROVE"
	ApprovalReject  ApprovalAction = "REJECT"
)

// Approval is one maker-checker decision event. Append-only.
type Approval struct {
	ApprovalID string         `json:"approvalID"` // Primary Key (UUID)
	PaymentID  string         `json:"paymentID"`
	DeciderID  string         `json:"deciderID"`
	Action     ApprovalAction `json:"action"`
	Comment    string         `json:"comment,omitempty"` // required for REJECT
	CreatedAt  time.Time      `json:"createdAt"`
}

// ExecutionOutcome is the execution collaborator's report for a processing payment.
type ExecutionOutcome string

const (
	ExecutionSucceeded ExecutionOutcome = "SUCCEEDED"
	ExecutionFailed    ExecutionOutcome = "FAILED"
)
