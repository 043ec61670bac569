package models

import (
	"time"

	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Payment is the persisted form of a cross-border payment instruction.
// QuoteID, ExternalID and FailureReason are nullable.
type Payment struct {
	PaymentID        string               `db:"payment_id"`
	CompanyID        string               `db:"company_id"`
	CreatedByID      string               `db:"created_by_id"`
	BeneficiaryID    string               `db:"beneficiary_id"`
	BankAccountID    string               `db:"bank_account_id"`
	QuoteID          *string              `db:"quote_id"`
	SourceCurrency   string               `db:"source_currency"`
	TargetCurrency   string               `db:"target_currency"`
	SourceAmount     decimal.Decimal      `db:"source_amount"`
	TargetAmount     decimal.Decimal      `db:"target_amount"`
	FXRate           decimal.Decimal      `db:"fx_rate"`
	FeeAmount        decimal.Decimal      `db:"fee_amount"`
	TotalDebit       decimal.Decimal      `db:"total_debit"`
	PaymentReference string               `db:"payment_reference"`
	ExecutionDate    time.Time            `db:"execution_date"`
	Status           domain.PaymentStatus `db:"status"`
	ExternalID       *string              `db:"external_id"`
	FailureReason    *string              `db:"failure_reason"`
	AuditFields
}

// Approval records a single maker-checker decision against a payment.
type Approval struct {
	ApprovalID string                `db:"approval_id"`
	PaymentID  string                `db:"payment_id"`
	DeciderID  string                `db:"decider_id"`
	Action     domain.ApprovalAction `db:"action"`
	Comment    string                `db:"comment"`
	CreatedAt  time.Time             `db:"created_at"`
}
