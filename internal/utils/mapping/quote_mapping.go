package mapping

import (
	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/flowpay/flow_backend/internal/models"
)

// ToModelQuote converts a domain Quote to a model Quote
func ToModelQuote(d domain.Quote) models.Quote {
	return models.Quote{
		QuoteID:        d.QuoteID,
		CompanyID:      d.CompanyID,
		SourceCurrency: d.SourceCurrency,
		TargetCurrency: d.TargetCurrency,
		BaseRate:       d.BaseRate,
		MarkupFraction: d.MarkupFraction,
		FinalRate:      d.FinalRate,
		SourceAmount:   d.SourceAmount,
		TargetAmount:   d.TargetAmount,
		ExpiresAt:      d.ExpiresAt,
		IsExpired:      d.IsExpired,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainQuote converts a model Quote to a domain Quote
func ToDomainQuote(m models.Quote) domain.Quote {
	return domain.Quote{
		QuoteID:        m.QuoteID,
		CompanyID:      m.CompanyID,
		SourceCurrency: m.SourceCurrency,
		TargetCurrency: m.TargetCurrency,
		BaseRate:       m.BaseRate,
		MarkupFraction: m.MarkupFraction,
		FinalRate:      m.FinalRate,
		SourceAmount:   m.SourceAmount,
		TargetAmount:   m.TargetAmount,
		ExpiresAt:      m.ExpiresAt,
		IsExpired:      m.IsExpired,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainQuotes converts a slice of model Quotes to domain Quotes
func ToDomainQuotes(ms []models.Quote) []domain.Quote {
	out := make([]domain.Quote, len(ms))
	for i, m := range ms {
		out[i] = ToDomainQuote(m)
	}
	return out
}
