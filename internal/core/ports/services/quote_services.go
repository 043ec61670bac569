package services

import (
	"context"
	"time"

	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/flowpay/flow_backend/internal/dto"
)

// QuoteReaderSvc defines read operations for FX rates and quotes
type QuoteReaderSvc interface {
	// GetRate retrieves the provider's raw rate for a pair. Same-currency
	// pairs return an identity rate without calling the provider.
	GetRate(ctx context.Context, sourceCurrency, targetCurrency string) (domain.RateInfo, error)

	// GetQuote retrieves a quote by its ID.
	GetQuote(ctx context.Context, quoteID string) (*domain.Quote, error)

	// GetActiveQuotes retrieves the company's currently usable quotes,
	// optionally filtered to one currency pair.
	GetActiveQuotes(ctx context.Context, companyID string, sourceCurrency, targetCurrency *string) ([]domain.Quote, error)

	// GetCompanyQuotes retrieves the company's quote history, newest first.
	GetCompanyQuotes(ctx context.Context, companyID string, includeExpired bool, limit int) ([]domain.Quote, error)

	// GetQuoteStatistics aggregates quote activity over the trailing window.
	GetQuoteStatistics(ctx context.Context, companyID string, windowDays int) (*domain.QuoteStatistics, error)

	// RateBreakdown decomposes a quote's rate. Pure read, no side effects.
	RateBreakdown(quote *domain.Quote) domain.RateBreakdown

	// TimeRemaining returns how long the quote stays usable; zero once invalid.
	TimeRemaining(quote *domain.Quote, now time.Time) time.Duration

	// SupportedCurrencies lists the codes the configured provider quotes.
	SupportedCurrencies() []string
}

// QuoteWriterSvc defines write operations for quotes
type QuoteWriterSvc interface {
	// RequestQuote fetches a raw rate, applies the configured markup and
	// persists a time-bound quote for the company.
	RequestQuote(ctx context.Context, companyID string, req dto.RequestQuoteRequest, requestorID string) (*domain.Quote, error)

	// SweepExpired bulk-marks quotes past their expiry and returns the count.
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

// QuoteValidatorSvc is the narrow contract the payment workflow depends on.
type QuoteValidatorSvc interface {
	GetQuote(ctx context.Context, quoteID string) (*domain.Quote, error)

	// ValidateQuote reports whether the quote is usable at the given instant.
	// The comparison is against the clock; the persisted expiry flag is a
	// cache refreshed as a best-effort side effect.
	ValidateQuote(ctx context.Context, quote *domain.Quote, now time.Time) bool
}

// QuoteSvcFacade combines all quote-related service interfaces
type QuoteSvcFacade interface {
	QuoteReaderSvc
	QuoteWriterSvc
	QuoteValidatorSvc
}
