package mapping

import (
	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/flowpay/flow_backend/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:        d.PaymentID,
		CompanyID:        d.CompanyID,
		CreatedByID:      d.CreatedByID,
		BeneficiaryID:    d.BeneficiaryID,
		BankAccountID:    d.BankAccountID,
		QuoteID:          d.QuoteID,
		SourceCurrency:   d.SourceCurrency,
		TargetCurrency:   d.TargetCurrency,
		SourceAmount:     d.SourceAmount,
		TargetAmount:     d.TargetAmount,
		FXRate:           d.FXRate,
		FeeAmount:        d.FeeAmount,
		TotalDebit:       d.TotalDebit,
		PaymentReference: d.PaymentReference,
		ExecutionDate:    d.ExecutionDate,
		Status:           d.Status,
		ExternalID:       d.ExternalID,
		FailureReason:    d.FailureReason,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:        m.PaymentID,
		CompanyID:        m.CompanyID,
		CreatedByID:      m.CreatedByID,
		BeneficiaryID:    m.BeneficiaryID,
		BankAccountID:    m.BankAccountID,
		QuoteID:          m.QuoteID,
		SourceCurrency:   m.SourceCurrency,
		TargetCurrency:   m.TargetCurrency,
		SourceAmount:     m.SourceAmount,
		TargetAmount:     m.TargetAmount,
		FXRate:           m.FXRate,
		FeeAmount:        m.FeeAmount,
		TotalDebit:       m.TotalDebit,
		PaymentReference: m.PaymentReference,
		ExecutionDate:    m.ExecutionDate,
		Status:           m.Status,
		ExternalID:       m.ExternalID,
		FailureReason:    m.FailureReason,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPayments converts a slice of model Payments to domain Payments
func ToDomainPayments(ms []models.Payment) []domain.Payment {
	out := make([]domain.Payment, len(ms))
	for i, m := range ms {
		out[i] = ToDomainPayment(m)
	}
	return out
}

// ToModelApproval converts a domain Approval to a model Approval
func ToModelApproval(d domain.Approval) models.Approval {
	return models.Approval{
		ApprovalID: d.ApprovalID,
		PaymentID:  d.PaymentID,
		DeciderID:  d.DeciderID,
		Action:     d.Action,
		Comment:    d.Comment,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainApproval converts a model Approval to a domain Approval
func ToDomainApproval(m models.Approval) domain.Approval {
	return domain.Approval{
		ApprovalID: m.ApprovalID,
		PaymentID:  m.PaymentID,
		DeciderID:  m.DeciderID,
		Action:     m.Action,
		Comment:    m.Comment,
		CreatedAt:  m.CreatedAt,
	}
}

// ToDomainApprovals converts a slice of model Approvals to domain Approvals
func ToDomainApprovals(ms []models.Approval) []domain.Approval {
	out := make([]domain.Approval, len(ms))
	for i, m := range ms {
		out[i] = ToDomainApproval(m)
	}
	return out
}
