package services

import (
	"context"

	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/flowpay/flow_backend/internal/dto"
)

// PaymentReaderSvc defines read operations for payments. Every lookup is
// scoped to the caller's company; payments of other companies read as not
// found.
type PaymentReaderSvc interface {
	// GetPayment retrieves one of the company's payments.
	GetPayment(ctx context.Context, companyID, paymentID string) (*domain.Payment, error)

	// ListCompanyPayments retrieves a company's payments, optionally filtered
	// by status, newest first.
	ListCompanyPayments(ctx context.Context, companyID string, status *domain.PaymentStatus, limit int) ([]domain.Payment, error)

	// ListPendingApprovals retrieves payments awaiting a checker decision.
	ListPendingApprovals(ctx context.Context, companyID string, limit int) ([]domain.Payment, error)

	// GetApprovals retrieves the decision history of one of the company's
	// payments.
	GetApprovals(ctx context.Context, companyID, paymentID string) ([]domain.Approval, error)
}

// PaymentWriterSvc defines the state-changing operations of the workflow.
// Every operation is scoped to the caller's company.
type PaymentWriterSvc interface {
	// CreateDraft creates a payment in DRAFT for the maker.
	CreateDraft(ctx context.Context, companyID string, req dto.CreateDraftRequest, creatorID string) (*domain.Payment, error)

	// UpdateDraft applies a partial update to a DRAFT payment. Only the fields
	// present in the request change, and only the maker may edit.
	UpdateDraft(ctx context.Context, companyID, paymentID string, req dto.UpdateDraftRequest, userID string) (*domain.Payment, error)

	// AttachQuote binds a quote to a draft. A quote already referenced by a
	// non-terminal payment cannot be attached again.
	AttachQuote(ctx context.Context, companyID, paymentID, quoteID, userID string) (*domain.Payment, error)

	// Submit moves DRAFT to PENDING_APPROVAL, freezing the converted amounts
	// from the attached quote. Fails with ErrQuoteExpired when the quote is no
	// longer valid; the payment stays in DRAFT.
	Submit(ctx context.Context, companyID, paymentID, makerID string) (*domain.Payment, error)

	// Decide records a checker's approval or rejection. The decider must not
	// be the payment's creator. A quote that expired before the decision
	// auto-rejects the payment with reason "quote expired".
	Decide(ctx context.Context, companyID, paymentID, deciderID string, action domain.ApprovalAction, comment string) (*domain.Payment, error)

	// MarkProcessing moves APPROVED to PROCESSING when the system dispatches
	// the payment to the execution collaborator.
	MarkProcessing(ctx context.Context, companyID, paymentID string) (*domain.Payment, error)

	// ReportExecutionOutcome resolves PROCESSING to COMPLETED (requiring the
	// provider's external reference) or FAILED (recording the failure reason).
	ReportExecutionOutcome(ctx context.Context, companyID, paymentID string, outcome domain.ExecutionOutcome, referenceOrReason string) (*domain.Payment, error)

	// ReopenRejected moves REJECTED back to DRAFT for edit-and-resubmit.
	// Only the original maker may reopen.
	ReopenRejected(ctx context.Context, companyID, paymentID, makerID string) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
