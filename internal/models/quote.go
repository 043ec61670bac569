package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the persisted form of an FX quote. Rates carry 4 decimal places,
// amounts 2; both are stored as NUMERIC.
type Quote struct {
	QuoteID        string          `db:"quote_id"`
	CompanyID      string          `db:"company_id"`
	SourceCurrency string          `db:"source_currency"`
	TargetCurrency string          `db:"target_currency"`
	BaseRate       decimal.Decimal `db:"base_rate"`
	MarkupFraction decimal.Decimal `db:"markup_fraction"`
	FinalRate      decimal.Decimal `db:"final_rate"`
	SourceAmount   decimal.Decimal `db:"source_amount"`
	TargetAmount   decimal.Decimal `db:"target_amount"`
	ExpiresAt      time.Time       `db:"expires_at"`
	IsExpired      bool            `db:"is_expired"`
	AuditFields
}
