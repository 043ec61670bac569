package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a locked, markup-applied exchange rate offer for a company.
// FinalRate is always derived as BaseRate * (1 + MarkupFraction), never set
// independently. IsExpired is a persisted cache of the time-based fact
// "now >= ExpiresAt"; validity checks compare against the clock, not the flag.
type Quote struct {
	QuoteID        string          `json:"quoteID"` // Primary Key (UUID)
	CompanyID      string          `json:"companyID"`
	SourceCurrency string          `json:"sourceCurrency"` // ISO 4217
	TargetCurrency string          `json:"targetCurrency"` // ISO 4217
	BaseRate       decimal.Decimal `json:"baseRate"`       // raw provider rate
	MarkupFraction decimal.Decimal `json:"markupFraction"` // e.g. 0.005 = 0.5%
	FinalRate      decimal.Decimal `json:"finalRate"`      // round4(BaseRate * (1+Markup))
	SourceAmount   decimal.Decimal `json:"sourceAmount"`   // amount quoted for
	TargetAmount   decimal.Decimal `json:"targetAmount"`   // round2(SourceAmount * FinalRate)
	ExpiresAt      time.Time       `json:"expiresAt"`
	IsExpired      bool            `json:"isExpired"`
	AuditFields
}

// ValidAt reports whether the quote can still be used at the given instant.
// The persisted flag only ever accelerates expiry; it never extends it.
func (q *Quote) ValidAt(now time.Time) bool {
	if q.IsExpired {
		return false
	}
	return now.Before(q.ExpiresAt)
}

// CurrencyPair renders the pair as "GBP/EUR".
func (q *Quote) CurrencyPair() string {
	return q.SourceCurrency + "/" + q.TargetCurrency
}

// RateInfo is a raw provider observation for a currency pair.
type RateInfo struct {
	SourceCurrency string          `json:"sourceCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	InverseRate    decimal.Decimal `json:"inverseRate"`
	AsOf           time.Time       `json:"asOf"`
	Provider       string          `json:"provider"`
}

// RateBreakdown decomposes a quote's rate for display.
type RateBreakdown struct {
	BaseRate      decimal.Decimal `json:"baseRate"`
	MarkupPercent decimal.Decimal `json:"markupPercent"` // fraction * 100
	MarkupAmount  decimal.Decimal `json:"markupAmount"`  // rate units added by markup
	FinalRate     decimal.Decimal `json:"finalRate"`
	InverseRate   decimal.Decimal `json:"inverseRate"` // round4(1 / FinalRate)
	CurrencyPair  string          `json:"currencyPair"`
}

// QuoteStatistics summarises quote activity for a company over a window.
type QuoteStatistics struct {
	TotalQuotes   int      `json:"totalQuotes"`
	ExpiredQuotes int      `json:"expiredQuotes"`
	ActiveQuotes  int      `json:"activeQuotes"`
	CurrencyPairs []string `json:"currencyPairs"`
}
