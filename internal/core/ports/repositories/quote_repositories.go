package repositories

import (
	"context"
	"time"

	"github.com/flowpay/flow_backend/internal/core/domain"
)

// QuoteReader defines read operations for quote data
type QuoteReader interface {
	// FindQuoteByID retrieves a quote by its ID.
	FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error)

	// ListActiveQuotes retrieves non-expired quotes for a company, optionally
	// filtered to one currency pair.
	ListActiveQuotes(ctx context.Context, companyID string, sourceCurrency, targetCurrency *string, now time.Time) ([]domain.Quote, error)

	// ListCompanyQuotes retrieves quotes for a company, newest first.
	ListCompanyQuotes(ctx context.Context, companyID string, includeExpired bool, limit int) ([]domain.Quote, error)

	// CountQuoteStatistics aggregates quote activity since the cutoff.
	CountQuoteStatistics(ctx context.Context, companyID string, since time.Time) (*domain.QuoteStatistics, error)
}

// QuoteWriter defines write operations for quote data
type QuoteWriter interface {
	// SaveQuote persists a new quote. Quotes are never deleted.
	SaveQuote(ctx context.Context, quote domain.Quote) error

	// MarkExpired flips the expired flag on one quote. Setting an already-set
	// flag is a no-op, not an error.
	MarkExpired(ctx context.Context, quoteID string) error

	// ExpireQuotesBefore flips the flag on every unexpired quote whose expiry
	// has passed and returns how many rows changed.
	ExpireQuotesBefore(ctx context.Context, now time.Time) (int64, error)
}

// QuoteRepositoryFacade combines all quote-related repository interfaces
type QuoteRepositoryFacade interface {
	QuoteReader
	QuoteWriter
}
