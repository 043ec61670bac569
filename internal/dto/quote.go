package dto

import (
	"time"

	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RequestQuoteRequest defines the structure for requesting a fixed FX quote.
type RequestQuoteRequest struct {
	SourceCurrency  string          `json:"sourceCurrency" binding:"required,len=3,uppercase"`
	TargetCurrency  string          `json:"targetCurrency" binding:"required,len=3,uppercase"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	ValiditySeconds int             `json:"validitySeconds" binding:"omitempty,min=10,max=3600"`
}

// QuoteResponse defines the API shape of a quote.
type QuoteResponse struct {
	QuoteID          string          `json:"quoteID"`
	CompanyID        string          `json:"companyID"`
	SourceCurrency   string          `json:"sourceCurrency"`
	TargetCurrency   string          `json:"targetCurrency"`
	BaseRate         decimal.Decimal `json:"baseRate"`
	MarkupFraction   decimal.Decimal `json:"markupFraction"`
	FinalRate        decimal.Decimal `json:"finalRate"`
	SourceAmount     decimal.Decimal `json:"sourceAmount"`
	TargetAmount     decimal.Decimal `json:"targetAmount"`
	ExpiresAt        time.Time       `json:"expiresAt"`
	IsExpired        bool            `json:"isExpired"`
	SecondsRemaining int64           `json:"secondsRemaining"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ToQuoteResponse converts a domain.Quote to QuoteResponse.
func ToQuoteResponse(q *domain.Quote, remaining time.Duration) QuoteResponse {
	return QuoteResponse{
		QuoteID:          q.QuoteID,
		CompanyID:        q.CompanyID,
		SourceCurrency:   q.SourceCurrency,
		TargetCurrency:   q.TargetCurrency,
		BaseRate:         q.BaseRate,
		MarkupFraction:   q.MarkupFraction,
		FinalRate:        q.FinalRate,
		SourceAmount:     q.SourceAmount,
		TargetAmount:     q.TargetAmount,
		ExpiresAt:        q.ExpiresAt,
		IsExpired:        q.IsExpired,
		SecondsRemaining: int64(remaining.Seconds()),
		CreatedAt:        q.CreatedAt,
	}
}

// RateResponse defines the API shape of a raw provider rate.
type RateResponse struct {
	SourceCurrency string          `json:"sourceCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	InverseRate    decimal.Decimal `json:"inverseRate"`
	AsOf           time.Time       `json:"asOf"`
	Provider       string          `json:"provider"`
}

// ToRateResponse converts a domain.RateInfo to RateResponse.
func ToRateResponse(r domain.RateInfo) RateResponse {
	return RateResponse{
		SourceCurrency: r.SourceCurrency,
		TargetCurrency: r.TargetCurrency,
		Rate:           r.Rate,
		InverseRate:    r.InverseRate,
		AsOf:           r.AsOf,
		Provider:       r.Provider,
	}
}
