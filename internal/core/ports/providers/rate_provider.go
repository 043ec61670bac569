package providers

import (
	"context"

	"github.com/flowpay/flow_backend/internal/core/domain"
)

// RateProvider supplies raw mid-market rates for currency pairs. The core
// tolerates any implementation of this contract, including a deterministic
// one for testing. Implementations must bound their own I/O: a FetchRate call
// never blocks past the configured provider timeout.
type RateProvider interface {
	// FetchRate returns the raw rate for a pair. Implementations return
	// apperrors.ErrUnsupportedCurrency for unknown codes and collapse all
	// transport failures into apperrors.ErrProviderUnavailable.
	FetchRate(ctx context.Context, sourceCurrency, targetCurrency string) (domain.RateInfo, error)

	// SupportedCurrencies lists the codes the provider can quote.
	SupportedCurrencies() []string
}
