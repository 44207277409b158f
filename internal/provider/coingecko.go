package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"borsa-dashboard-go/internal/config"
	"borsa-dashboard-go/internal/market"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// coinIDs maps ticker symbols to CoinGecko coin ids.
var coinIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"BNB":   "binancecoin",
	"SOL":   "solana",
	"XRP":   "ripple",
	"ADA":   "cardano",
	"DOGE":  "dogecoin",
	"DOT":   "polkadot",
	"AVAX":  "avalanche-2",
	"MATIC": "matic-network",
	"LINK":  "chainlink",
	"UNI":   "uniswap",
	"ATOM":  "cosmos",
	"LTC":   "litecoin",
	"NEAR":  "near",
}

// coinPrice is one entry of the /simple/price response.
type coinPrice struct {
	USD          decimal.Decimal `json:"usd"`
	USDChange24h decimal.Decimal `json:"usd_24h_change"`
	USDMarketCap decimal.Decimal `json:"usd_market_cap"`
	USDVolume24h decimal.Decimal `json:"usd_24h_vol"`
}

// CoinGecko fetches cryptocurrency quotes from the CoinGecko public API.
type CoinGecko struct {
	rest *restClient
	now  func() time.Time
}

var _ market.QuoteSource = (*CoinGecko)(nil)

// NewCoinGecko creates a CoinGecko client.
func NewCoinGecko(cfg *config.Providers, logger *zap.Logger) *CoinGecko {
	return &CoinGecko{
		rest: newRestClient(cfg.CoinGeckoURL, cfg, logger.Named("coingecko")),
		now:  time.Now,
	}
}

// Fetch returns quotes for the symbols CoinGecko knows about.
func (c *CoinGecko) Fetch(ctx context.Context, symbols []string) (market.Quotes, error) {
	ids := make([]string, 0, len(symbols))
	symbolByID := make(map[string]string, len(symbols))
	for _, sym := range symbols {
		id, ok := coinIDs[strings.ToUpper(sym)]
		if !ok {
			continue
		}
		ids = append(ids, id)
		symbolByID[id] = strings.ToUpper(sym)
	}

	quotes := make(market.Quotes, len(ids))
	if len(ids) == 0 {
		return quotes, nil
	}

	var prices map[string]coinPrice
	req := c.rest.client.R().
		SetQueryParams(map[string]string{
			"ids":                 strings.Join(ids, ","),
			"vs_currencies":       "usd",
			"include_24hr_change": "true",
			"include_market_cap":  "true",
			"include_24hr_vol":    "true",
		}).
		SetResult(&prices)

	resp, err := c.rest.doRequest(ctx, "GET", "/simple/price", req)
	if err != nil {
		return nil, fmt.Errorf("failed to get coingecko prices: %w", err)
	}

	result := *resp.Result().(*map[string]coinPrice)
	fetchedAt := c.now()
	for id, p := range result {
		sym, ok := symbolByID[id]
		if !ok || !p.USD.IsPositive() {
			continue
		}
		q := market.LiveQuote{
			Symbol:    sym,
			Price:     p.USD,
			ChangePct: p.USDChange24h,
			Volume:    p.USDVolume24h,
			FetchedAt: fetchedAt,
		}
		if p.USDMarketCap.IsPositive() {
			q.MarketCap = decimal.NewNullDecimal(p.USDMarketCap)
		}
		quotes[sym] = q
	}

	return quotes, nil
}
