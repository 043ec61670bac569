// Package fx contains Rate Source adapters: a deterministic in-process table
// for development and testing, a Fixer.io HTTP client, and a Redis caching
// decorator that can wrap either.
package fx

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/flowpay/flow_backend/internal/apperrors"
	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/flowpay/flow_backend/internal/core/ports/providers"
	"github.com/flowpay/flow_backend/internal/utils/fxmath"
	"github.com/shopspring/decimal"
)

// mockBaseRates quotes each currency against GBP. Cross rates are derived.
var mockBaseRates = map[string]decimal.Decimal{
	"GBP": decimal.RequireFromString("1.0000"),
	"EUR": decimal.RequireFromString("1.1650"),
	"USD": decimal.RequireFromString("1.2720"),
	"CHF": decimal.RequireFromString("1.1250"),
	"JPY": decimal.RequireFromString("145.50"),
	"CAD": decimal.RequireFromString("1.6850"),
	"AUD": decimal.RequireFromString("1.8450"),
	"NZD": decimal.RequireFromString("1.9750"),
	"SEK": decimal.RequireFromString("13.25"),
	"NOK": decimal.RequireFromString("13.15"),
	"DKK": decimal.RequireFromString("8.68"),
	"PLN": decimal.RequireFromString("5.05"),
	"CZK": decimal.RequireFromString("28.50"),
}

// MockProvider serves deterministic rates from a fixed table. It satisfies the
// same contract as the live adapters, which makes it the default in
// development and the standard collaborator in tests.
type MockProvider struct {
	rates map[string]decimal.Decimal
	now   func() time.Time
}

var _ providers.RateProvider = (*MockProvider)(nil)

// NewMockProvider creates a provider over the built-in rate table.
func NewMockProvider() *MockProvider {
	return &MockProvider{rates: mockBaseRates, now: time.Now}
}

// NewMockProviderWithRates creates a provider over a caller-supplied table,
// keyed by currency code against a common base.
func NewMockProviderWithRates(rates map[string]decimal.Decimal) *MockProvider {
	return &MockProvider{rates: rates, now: time.Now}
}

// FetchRate derives the cross rate for the pair from the base table.
func (p *MockProvider) FetchRate(_ context.Context, sourceCurrency, targetCurrency string) (domain.RateInfo, error) {
	from := strings.ToUpper(sourceCurrency)
	to := strings.ToUpper(targetCurrency)

	fromBase, ok := p.rates[from]
	if !ok {
		return domain.RateInfo{}, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, from)
	}
	toBase, ok := p.rates[to]
	if !ok {
		return domain.RateInfo{}, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, to)
	}

	rate := fxmath.RoundRate(toBase.Div(fromBase))
	return domain.RateInfo{
		SourceCurrency: from,
		TargetCurrency: to,
		Rate:           rate,
		InverseRate:    fxmath.InverseRate(rate),
		AsOf:           p.now().UTC(),
		Provider:       "mock",
	}, nil
}

// SupportedCurrencies lists the table's codes in stable order.
func (p *MockProvider) SupportedCurrencies() []string {
	codes := make([]string, 0, len(p.rates))
	for code := range p.rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
