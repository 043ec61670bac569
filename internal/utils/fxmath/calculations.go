package fxmath

import (
	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Rates are quoted to 4 decimal places, monetary amounts to 2, both with
// banker's rounding. The rate is rounded before any amount is converted;
// reversing that order produces different cents-level results.
const (
	RatePrecision   = 4
	AmountPrecision = 2
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// RoundRate rounds an exchange rate to 4 decimal places, half to even.
func RoundRate(rate decimal.Decimal) decimal.Decimal {
	return rate.RoundBank(RatePrecision)
}

// RoundAmount rounds a monetary amount to 2 decimal places, half to even.
func RoundAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.RoundBank(AmountPrecision)
}

// ApplyMarkup derives a company-facing rate from a raw provider rate.
// The markup is applied multiplicatively to the rate, not to converted amounts.
func ApplyMarkup(baseRate, markupFraction decimal.Decimal) decimal.Decimal {
	return RoundRate(baseRate.Mul(one.Add(markupFraction)))
}

// Convert converts an amount using an already-rounded rate.
func Convert(amount, rate decimal.Decimal) decimal.Decimal {
	return RoundAmount(amount.Mul(rate))
}

// InverseRate returns round4(1 / rate), or zero for a zero rate.
func InverseRate(rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return decimal.Zero
	}
	return RoundRate(one.Div(rate))
}

// Amounts is the result of converting a source amount through a quote.
type Amounts struct {
	SourceAmount  decimal.Decimal
	TargetAmount  decimal.Decimal // round2(source * final rate)
	MarkupFee     decimal.Decimal // target amount minus the unmarked-up conversion
	ExchangeRate  decimal.Decimal // the quote's final rate
	BaseRate      decimal.Decimal
	MarkupPercent decimal.Decimal // fraction * 100
}

// CalculateAmounts converts a source amount with the quote's frozen rates.
// It must be called with the quote whose final rate was locked at submission,
// never with a freshly fetched rate.
func CalculateAmounts(q *domain.Quote, sourceAmount decimal.Decimal) Amounts {
	targetAmount := Convert(sourceAmount, q.FinalRate)
	baseTargetAmount := Convert(sourceAmount, q.BaseRate)

	return Amounts{
		SourceAmount:  sourceAmount,
		TargetAmount:  targetAmount,
		MarkupFee:     targetAmount.Sub(baseTargetAmount),
		ExchangeRate:  q.FinalRate,
		BaseRate:      q.BaseRate,
		MarkupPercent: q.MarkupFraction.Mul(hundred),
	}
}

// Breakdown decomposes a quote's rate into its components for display.
func Breakdown(q *domain.Quote) domain.RateBreakdown {
	return domain.RateBreakdown{
		BaseRate:      q.BaseRate,
		MarkupPercent: q.MarkupFraction.Mul(hundred).RoundBank(AmountPrecision),
		MarkupAmount:  RoundRate(q.BaseRate.Mul(q.MarkupFraction)),
		FinalRate:     q.FinalRate,
		InverseRate:   InverseRate(q.FinalRate),
		CurrencyPair:  q.CurrencyPair(),
	}
}
