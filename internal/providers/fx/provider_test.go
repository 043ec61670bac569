package fx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flowpay/flow_backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProviderCrossRates(t *testing.T) {
	p := NewMockProvider()
	ctx := context.Background()

	tests := []struct {
		from, to string
		want     string
	}{
		{"GBP", "EUR", "1.1650"},
		{"GBP", "USD", "1.2720"},
		{"GBP", "GBP", "1.0000"},
		{"EUR", "USD", "1.0918"}, // 1.2720 / 1.1650
		{"USD", "JPY", "114.3868"},
	}
	for _, tt := range tests {
		info, err := p.FetchRate(ctx, tt.from, tt.to)
		require.NoError(t, err, "%s/%s", tt.from, tt.to)
		assert.Equal(t, tt.want, info.Rate.StringFixed(4), "%s/%s", tt.from, tt.to)
		assert.Equal(t, "mock", info.Provider)
	}
}

func TestMockProviderUnsupportedCurrency(t *testing.T) {
	p := NewMockProvider()

	_, err := p.FetchRate(context.Background(), "GBP", "XXX")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedCurrency)

	_, err = p.FetchRate(context.Background(), "ZZZ", "EUR")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedCurrency)
}

func TestMockProviderSupportedCurrenciesSorted(t *testing.T) {
	codes := NewMockProvider().SupportedCurrencies()
	require.NotEmpty(t, codes)
	for i := 1; i < len(codes); i++ {
		assert.Less(t, codes[i-1], codes[i])
	}
	assert.Contains(t, codes, "GBP")
	assert.Contains(t, codes, "EUR")
}

func TestFixerProviderCrossRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("access_key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"base":"EUR","rates":{"GBP":0.8584,"USD":1.0920}}`))
	}))
	defer srv.Close()

	p := NewFixerProvider("test-key", srv.URL, 2*time.Second)
	info, err := p.FetchRate(context.Background(), "GBP", "USD")
	require.NoError(t, err)
	// EUR->USD / EUR->GBP = 1.0920 / 0.8584
	assert.Equal(t, "1.2721", info.Rate.StringFixed(4))
	assert.Equal(t, "fixer", info.Provider)
}

func TestFixerProviderAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":101,"type":"invalid_access_key"}}`))
	}))
	defer srv.Close()

	p := NewFixerProvider("bad-key", srv.URL, 2*time.Second)
	_, err := p.FetchRate(context.Background(), "GBP", "EUR")
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}

func TestFixerProviderHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewFixerProvider("test-key", srv.URL, 2*time.Second)
	_, err := p.FetchRate(context.Background(), "GBP", "EUR")
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}

func TestFixerProviderRejectsUnsupportedCurrencyWithoutCalling(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer srv.Close()

	p := NewFixerProvider("test-key", srv.URL, 2*time.Second)
	_, err := p.FetchRate(context.Background(), "GBP", "XXX")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedCurrency)
	assert.False(t, called)
}
