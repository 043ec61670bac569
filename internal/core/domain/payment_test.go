package domain_test

import (
	"testing"

	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestPaymentStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.PaymentStatus
		to   domain.PaymentStatus
		want bool
	}{
		{"draft submits", domain.PaymentDraft, domain.PaymentPendingApproval, true},
		{"draft cannot skip to approved", domain.PaymentDraft, domain.PaymentApproved, false},
		{"pending approves", domain.PaymentPendingApproval, domain.PaymentApproved, true},
		{"pending rejects", domain.PaymentPendingApproval, domain.PaymentRejected, true},
		{"pending cannot complete directly", domain.PaymentPendingApproval, domain.PaymentCompleted, false},
		{"approved starts processing", domain.PaymentApproved, domain.PaymentProcessing, true},
		{"approved cannot return to draft", domain.PaymentApproved, domain.PaymentDraft, false},
		{"processing completes", domain.PaymentProcessing, domain.PaymentCompleted, true},
		{"processing fails", domain.PaymentProcessing, domain.PaymentFailed, true},
		{"rejected reopens to draft", domain.PaymentRejected, domain.PaymentDraft, true},
		{"rejected cannot resubmit directly", domain.PaymentRejected, domain.PaymentPendingApproval, false},
		{"completed has no outgoing edges", domain.PaymentCompleted, domain.PaymentDraft, false},
		{"failed has no outgoing edges", domain.PaymentFailed, domain.PaymentDraft, false},
		{"unknown status has no edges", domain.PaymentStatus("BOGUS"), domain.PaymentDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}
