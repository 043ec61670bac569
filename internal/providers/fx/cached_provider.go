package fx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/flowpay/flow_backend/internal/core/ports/providers"
	"github.com/go-redis/redis/v8"
)

// CachedProvider wraps another RateProvider with a Redis read-through cache.
// Cache failures are logged and degrade to the underlying provider, never to
// the caller.
type CachedProvider struct {
	inner  providers.RateProvider
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

var _ providers.RateProvider = (*CachedProvider)(nil)

// NewCachedProvider decorates inner with a cache keyed per currency pair.
func NewCachedProvider(inner providers.RateProvider, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedProvider {
	return &CachedProvider{inner: inner, client: client, ttl: ttl, logger: logger}
}

func cacheKey(sourceCurrency, targetCurrency string) string {
	return "fx:rate:" + sourceCurrency + ":" + targetCurrency
}

// FetchRate returns the cached rate when fresh, otherwise fetches from the
// underlying provider and stores the result.
func (p *CachedProvider) FetchRate(ctx context.Context, sourceCurrency, targetCurrency string) (domain.RateInfo, error) {
	key := cacheKey(sourceCurrency, targetCurrency)

	raw, err := p.client.Get(ctx, key).Result()
	if err == nil {
		var info domain.RateInfo
		if err := json.Unmarshal([]byte(raw), &info); err == nil {
			return info, nil
		}
		p.logger.WarnContext(ctx, "discarding undecodable cached rate", slog.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		p.logger.WarnContext(ctx, "rate cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	info, err := p.inner.FetchRate(ctx, sourceCurrency, targetCurrency)
	if err != nil {
		return domain.RateInfo{}, err
	}

	if payload, err := json.Marshal(info); err == nil {
		if err := p.client.Set(ctx, key, payload, p.ttl).Err(); err != nil {
			p.logger.WarnContext(ctx, "rate cache write failed", slog.String("key", key), slog.Any("error", err))
		}
	}
	return info, nil
}

// SupportedCurrencies delegates to the underlying provider.
func (p *CachedProvider) SupportedCurrencies() []string {
	return p.inner.SupportedCurrencies()
}
