package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/flowpay/flow_backend/internal/core/ports/services"
)

// QuoteSweeper periodically flips the expired flag on quotes past their
// expiry so that persisted state converges with the clock.
type QuoteSweeper struct {
	quoteSvc portssvc.QuoteWriterSvc
	interval time.Duration
	logger   *slog.Logger
}

// NewQuoteSweeper creates a sweeper that runs at the given interval.
func NewQuoteSweeper(quoteSvc portssvc.QuoteWriterSvc, interval time.Duration, logger *slog.Logger) *QuoteSweeper {
	return &QuoteSweeper{quoteSvc: quoteSvc, interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled, sweeping once per interval. Sweep
// failures are logged and the loop continues.
func (s *QuoteSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Quote expiry sweeper started", slog.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Quote expiry sweeper stopped")
			return
		case now := <-ticker.C:
			if _, err := s.quoteSvc.SweepExpired(ctx, now); err != nil {
				s.logger.Error("Quote expiry sweep iteration failed", slog.String("error", err.Error()))
			}
		}
	}
}
