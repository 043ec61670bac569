package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/flowpay/flow_backend/internal/apperrors"
	"github.com/flowpay/flow_backend/internal/core/domain"
	portsprov "github.com/flowpay/flow_backend/internal/core/ports/providers"
	portsrepo "github.com/flowpay/flow_backend/internal/core/ports/repositories"
	portssvc "github.com/flowpay/flow_backend/internal/core/ports/services"
	"github.com/flowpay/flow_backend/internal/dto"
	"github.com/flowpay/flow_backend/internal/middleware"
	"github.com/flowpay/flow_backend/internal/utils/bankdetails"
	"github.com/flowpay/flow_backend/internal/utils/fxmath"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultStatisticsWindowDays = 30

// QuoteService handles business logic for FX rates and time-bound quotes.
type QuoteService struct {
	quoteRepo       portsrepo.QuoteRepositoryFacade
	provider        portsprov.RateProvider
	auditSvc        portssvc.AuditRecorder
	markupFraction  decimal.Decimal
	defaultValidity time.Duration
	now             func() time.Time
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(qr portsrepo.QuoteRepositoryFacade, provider portsprov.RateProvider, auditSvc portssvc.AuditRecorder, markupFraction decimal.Decimal, defaultValidity time.Duration) *QuoteService {
	return &QuoteService{
		quoteRepo:       qr,
		provider:        provider,
		auditSvc:        auditSvc,
		markupFraction:  markupFraction,
		defaultValidity: defaultValidity,
		now:             time.Now,
	}
}

var _ portssvc.QuoteSvcFacade = (*QuoteService)(nil)

// GetRate returns the provider's raw rate for the pair. Same-currency pairs
// resolve to an identity rate without calling the provider.
func (s *QuoteService) GetRate(ctx context.Context, sourceCurrency, targetCurrency string) (domain.RateInfo, error) {
	from := strings.ToUpper(strings.TrimSpace(sourceCurrency))
	to := strings.ToUpper(strings.TrimSpace(targetCurrency))

	if err := bankdetails.ValidateCurrencyCode(from); err != nil {
		return domain.RateInfo{}, err
	}
	if err := bankdetails.ValidateCurrencyCode(to); err != nil {
		return domain.RateInfo{}, err
	}

	if from == to {
		one := decimal.NewFromInt(1)
		return domain.RateInfo{
			SourceCurrency: from,
			TargetCurrency: to,
			Rate:           fxmath.RoundRate(one),
			InverseRate:    fxmath.RoundRate(one),
			AsOf:           s.now().UTC(),
			Provider:       "identity",
		}, nil
	}

	info, err := s.provider.FetchRate(ctx, from, to)
	if err != nil {
		return domain.RateInfo{}, fmt.Errorf("failed to fetch rate for %s/%s: %w", from, to, err)
	}
	return info, nil
}

// RequestQuote fetches the current rate, applies the configured markup and
// persists a quote the company can execute against until it expires.
func (s *QuoteService) RequestQuote(ctx context.Context, companyID string, req dto.RequestQuoteRequest, requestorID string) (*domain.Quote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	rate, err := s.GetRate(ctx, req.SourceCurrency, req.TargetCurrency)
	if err != nil {
		return nil, err
	}

	finalRate := fxmath.ApplyMarkup(rate.Rate, s.markupFraction)
	sourceAmount := fxmath.RoundAmount(req.Amount)
	targetAmount := fxmath.Convert(sourceAmount, finalRate)

	validity := s.defaultValidity
	if req.ValiditySeconds > 0 {
		validity = time.Duration(req.ValiditySeconds) * time.Second
	}

	now := s.now()
	quote := domain.Quote{
		QuoteID:        uuid.NewString(),
		CompanyID:      companyID,
		SourceCurrency: rate.SourceCurrency,
		TargetCurrency: rate.TargetCurrency,
		BaseRate:       rate.Rate,
		MarkupFraction: s.markupFraction,
		FinalRate:      finalRate,
		SourceAmount:   sourceAmount,
		TargetAmount:   targetAmount,
		ExpiresAt:      now.Add(validity),
		IsExpired:      false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestorID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestorID,
			Version:       1,
		},
	}

	if err := s.quoteRepo.SaveQuote(ctx, quote); err != nil {
		logger.Error("Failed to save quote", slog.String("error", err.Error()), slog.String("pair", quote.CurrencyPair()))
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	s.auditSvc.Record(ctx, &requestorID, "quote", quote.QuoteID, "requested", nil, map[string]any{
		"currencyPair": quote.CurrencyPair(),
		"baseRate":     quote.BaseRate.String(),
		"finalRate":    quote.FinalRate.String(),
		"sourceAmount": quote.SourceAmount.String(),
		"targetAmount": quote.TargetAmount.String(),
		"expiresAt":    quote.ExpiresAt.UTC().Format(time.RFC3339),
	})

	logger.Info("Quote created", slog.String("quote_id", quote.QuoteID), slog.String("pair", quote.CurrencyPair()), slog.String("final_rate", finalRate.String()))
	return &quote, nil
}

// GetQuote retrieves a quote by ID.
func (s *QuoteService) GetQuote(ctx context.Context, quoteID string) (*domain.Quote, error) {
	quote, err := s.quoteRepo.FindQuoteByID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: quote %s", apperrors.ErrNotFound, quoteID)
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return quote, nil
}

// ValidateQuote reports whether the quote is usable right now. The check is
// purely against the clock; when it observes an expired quote whose persisted
// flag is stale it refreshes the flag best-effort.
func (s *QuoteService) ValidateQuote(ctx context.Context, quote *domain.Quote, now time.Time) bool {
	if quote == nil {
		return false
	}
	if quote.ValidAt(now) {
		return true
	}
	if !quote.IsExpired {
		if err := s.quoteRepo.MarkExpired(ctx, quote.QuoteID); err != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Failed to persist quote expiry flag", slog.String("quote_id", quote.QuoteID), slog.String("error", err.Error()))
		}
		quote.IsExpired = true
	}
	return false
}

// TimeRemaining returns how long the quote stays usable, zero once invalid.
func (s *QuoteService) TimeRemaining(quote *domain.Quote, now time.Time) time.Duration {
	if quote == nil || !quote.ValidAt(now) {
		return 0
	}
	return quote.ExpiresAt.Sub(now)
}

// RateBreakdown decomposes a quote's pricing for display.
func (s *QuoteService) RateBreakdown(quote *domain.Quote) domain.RateBreakdown {
	return fxmath.Breakdown(quote)
}

// GetActiveQuotes lists the company's currently usable quotes.
func (s *QuoteService) GetActiveQuotes(ctx context.Context, companyID string, sourceCurrency, targetCurrency *string) ([]domain.Quote, error) {
	quotes, err := s.quoteRepo.ListActiveQuotes(ctx, companyID, sourceCurrency, targetCurrency, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list active quotes: %w", err)
	}
	if quotes == nil {
		return []domain.Quote{}, nil
	}
	return quotes, nil
}

// GetCompanyQuotes lists the company's quote history, newest first.
func (s *QuoteService) GetCompanyQuotes(ctx context.Context, companyID string, includeExpired bool, limit int) ([]domain.Quote, error) {
	quotes, err := s.quoteRepo.ListCompanyQuotes(ctx, companyID, includeExpired, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list company quotes: %w", err)
	}
	if quotes == nil {
		return []domain.Quote{}, nil
	}
	return quotes, nil
}

// GetQuoteStatistics aggregates quote activity over the trailing window.
func (s *QuoteService) GetQuoteStatistics(ctx context.Context, companyID string, windowDays int) (*domain.QuoteStatistics, error) {
	if windowDays <= 0 {
		windowDays = defaultStatisticsWindowDays
	}
	since := s.now().AddDate(0, 0, -windowDays)
	stats, err := s.quoteRepo.CountQuoteStatistics(ctx, companyID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate quote statistics: %w", err)
	}
	return stats, nil
}

// SweepExpired flips the expired flag on every quote past its expiry.
func (s *QuoteService) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	count, err := s.quoteRepo.ExpireQuotesBefore(ctx, now)
	if err != nil {
		logger.Error("Quote expiry sweep failed", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to sweep expired quotes: %w", err)
	}
	if count > 0 {
		logger.Info("Quote expiry sweep completed", slog.Int64("expired", count))
	}
	return count, nil
}

// SupportedCurrencies lists the codes the configured provider quotes.
func (s *QuoteService) SupportedCurrencies() []string {
	return s.provider.SupportedCurrencies()
}
