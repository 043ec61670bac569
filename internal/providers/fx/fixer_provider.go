package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/flowpay/flow_backend/internal/apperrors"
	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/flowpay/flow_backend/internal/core/ports/providers"
	"github.com/flowpay/flow_backend/internal/utils/fxmath"
	"github.com/shopspring/decimal"
)

const defaultFixerBaseURL = "https://data.fixer.io/api"

// fixerCurrencies is the subset of Fixer symbols the platform supports.
var fixerCurrencies = []string{
	"AUD", "CAD", "CHF", "CZK", "DKK", "EUR", "GBP", "JPY", "NOK", "NZD", "PLN", "SEK", "USD",
}

// FixerProvider fetches live rates from data.fixer.io. The free tier only
// quotes against EUR, so cross rates are computed as EUR->target / EUR->source.
type FixerProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	now     func() time.Time
}

var _ providers.RateProvider = (*FixerProvider)(nil)

// NewFixerProvider creates a Fixer client. An empty baseURL selects the
// public endpoint; timeout bounds each HTTP call.
func NewFixerProvider(apiKey, baseURL string, timeout time.Duration) *FixerProvider {
	if baseURL == "" {
		baseURL = defaultFixerBaseURL
	}
	return &FixerProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

type fixerResponse struct {
	Success bool               `json:"success"`
	Base    string             `json:"base"`
	Rates   map[string]float64 `json:"rates"`
	Error   struct {
		Code int    `json:"code"`
		Type string `json:"type"`
	} `json:"error"`
}

// FetchRate calls the latest-rates endpoint and derives the pair's cross rate.
// Network, HTTP and payload failures surface as ErrProviderUnavailable so the
// caller can fall back or fail the request uniformly.
func (p *FixerProvider) FetchRate(ctx context.Context, sourceCurrency, targetCurrency string) (domain.RateInfo, error) {
	from := strings.ToUpper(sourceCurrency)
	to := strings.ToUpper(targetCurrency)
	if !p.supports(from) {
		return domain.RateInfo{}, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, from)
	}
	if !p.supports(to) {
		return domain.RateInfo{}, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, to)
	}

	q := url.Values{}
	q.Set("access_key", p.apiKey)
	q.Set("symbols", from+","+to)
	endpoint := p.baseURL + "/latest?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.RateInfo{}, fmt.Errorf("%w: building fixer request: %v", apperrors.ErrProviderUnavailable, err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return domain.RateInfo{}, fmt.Errorf("%w: calling fixer: %v", apperrors.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.RateInfo{}, fmt.Errorf("%w: fixer returned status %d", apperrors.ErrProviderUnavailable, resp.StatusCode)
	}

	var body fixerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.RateInfo{}, fmt.Errorf("%w: decoding fixer response: %v", apperrors.ErrProviderUnavailable, err)
	}
	if !body.Success {
		return domain.RateInfo{}, fmt.Errorf("%w: fixer error %d (%s)", apperrors.ErrProviderUnavailable, body.Error.Code, body.Error.Type)
	}

	eurToSource, ok := body.Rates[from]
	if !ok || eurToSource == 0 {
		return domain.RateInfo{}, fmt.Errorf("%w: fixer response missing rate for %s", apperrors.ErrProviderUnavailable, from)
	}
	eurToTarget, ok := body.Rates[to]
	if !ok {
		return domain.RateInfo{}, fmt.Errorf("%w: fixer response missing rate for %s", apperrors.ErrProviderUnavailable, to)
	}

	rate := fxmath.RoundRate(decimal.NewFromFloat(eurToTarget).Div(decimal.NewFromFloat(eurToSource)))
	return domain.RateInfo{
		SourceCurrency: from,
		TargetCurrency: to,
		Rate:           rate,
		InverseRate:    fxmath.InverseRate(rate),
		AsOf:           p.now().UTC(),
		Provider:       "fixer",
	}, nil
}

// SupportedCurrencies lists the configured Fixer symbols.
func (p *FixerProvider) SupportedCurrencies() []string {
	out := make([]string, len(fixerCurrencies))
	copy(out, fixerCurrencies)
	sort.Strings(out)
	return out
}

func (p *FixerProvider) supports(code string) bool {
	for _, c := range fixerCurrencies {
		if c == code {
			return true
		}
	}
	return false
}
