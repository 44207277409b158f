package provider

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupCoinGecko(handler http.Handler) (*CoinGecko, func()) {
	rc, server := setupTestServer(handler)
	fixed := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	cg := &CoinGecko{rest: rc, now: func() time.Time { return fixed }}
	return cg, server.Close
}

func TestCoinGeckoFetch(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/simple/price", r.URL.Path)
			assert.Equal(t, "bitcoin,avalanche-2", r.URL.Query().Get("ids"))
			assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
			assert.Equal(t, "true", r.URL.Query().Get("include_24hr_change"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"bitcoin": {"usd": 97000.5, "usd_24h_change": 1.25, "usd_market_cap": 1900000000000, "usd_24h_vol": 41000000000},
				"avalanche-2": {"usd": 35.1, "usd_24h_change": -3.5, "usd_market_cap": 0, "usd_24h_vol": 500000000}
			}`))
		})
		cg, closeFn := setupCoinGecko(handler)
		defer closeFn()

		// Act
		quotes, err := cg.Fetch(context.Background(), []string{"BTC", "avax", "NOPE"})

		// Assert
		require.NoError(t, err)
		require.Len(t, quotes, 2)

		btc := quotes["BTC"]
		assert.True(t, decimal.RequireFromString("97000.5").Equal(btc.Price))
		assert.True(t, decimal.RequireFromString("1.25").Equal(btc.ChangePct))
		assert.True(t, btc.MarketCap.Valid)

		avax := quotes["AVAX"]
		assert.Equal(t, "AVAX", avax.Symbol)
		assert.False(t, avax.MarketCap.Valid, "zero market cap is reported as absent")
		assert.Equal(t, 2025, avax.FetchedAt.Year())
	})

	t.Run("ZeroPriceIsSkipped", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"bitcoin": {"usd": 0}}`))
		})
		cg, closeFn := setupCoinGecko(handler)
		defer closeFn()

		quotes, err := cg.Fetch(context.Background(), []string{"BTC"})

		require.NoError(t, err)
		assert.Empty(t, quotes)
	})

	t.Run("UnknownSymbolsSkipUpstream", func(t *testing.T) {
		var calls int32
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		})
		cg, closeFn := setupCoinGecko(handler)
		defer closeFn()

		quotes, err := cg.Fetch(context.Background(), []string{"FOO", "BAR"})

		require.NoError(t, err)
		assert.Empty(t, quotes)
		assert.Zero(t, atomic.LoadInt32(&calls))
	})

	t.Run("APIError", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})
		cg, closeFn := setupCoinGecko(handler)
		defer closeFn()

		quotes, err := cg.Fetch(context.Background(), []string{"ETH"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get coingecko prices")
		assert.Nil(t, quotes)
	})
}

func TestNewCoinGecko(t *testing.T) {
	cg := NewCoinGecko(testProvidersConfig("https://api.example.test"), zap.NewNop())
	assert.Equal(t, "https://api.example.test", cg.rest.client.BaseURL)
}
