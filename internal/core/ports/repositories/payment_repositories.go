package repositories

import (
	"context"

	"github.com/flowpay/flow_backend/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a payment by its ID.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListCompanyPayments retrieves payments for a company, optionally
	// filtered by status, newest first.
	ListCompanyPayments(ctx context.Context, companyID string, status *domain.PaymentStatus, limit int) ([]domain.Payment, error)

	// CountActiveQuoteUsage counts non-terminal payments referencing a quote.
	// Backs the single-use policy on quote attachment.
	CountActiveQuoteUsage(ctx context.Context, quoteID string) (int, error)

	// FindApprovalsByPaymentID retrieves the decision history of a payment.
	FindApprovalsByPaymentID(ctx context.Context, paymentID string) ([]domain.Approval, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePayment persists a new draft payment.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// UpdatePayment replaces the mutable fields of a payment, guarded by the
	// row's current version. Returns apperrors.ErrStaleState when the guard
	// does not match.
	UpdatePayment(ctx context.Context, payment domain.Payment, expectedVersion int64) error

	// TransitionStatus moves a payment between states, guarded by the expected
	// current status and version. Returns apperrors.ErrStaleState when another
	// writer got there first. The approval, when non-nil, is written in the
	// same transaction as the status change.
	TransitionStatus(ctx context.Context, payment domain.Payment, fromStatus domain.PaymentStatus, expectedVersion int64, approval *domain.Approval) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}

// PaymentRepositoryWithTx extends PaymentRepositoryFacade with transaction capabilities
type PaymentRepositoryWithTx interface {
	PaymentRepositoryFacade
	TransactionManager
}
