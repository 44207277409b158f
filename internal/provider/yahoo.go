package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"borsa-dashboard-go/internal/config"
	"borsa-dashboard-go/internal/market"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// istanbulSuffix is appended to BIST tickers in Yahoo Finance symbols.
const istanbulSuffix = ".IS"

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Yahoo fetches Borsa Istanbul equity quotes from the Yahoo Finance chart API.
type Yahoo struct {
	rest        *restClient
	logger      *zap.Logger
	concurrency int
	now         func() time.Time
}

var _ market.QuoteSource = (*Yahoo)(nil)

// NewYahoo creates a Yahoo Finance client.
func NewYahoo(cfg *config.Providers, logger *zap.Logger) *Yahoo {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	l := logger.Named("yahoo")
	return &Yahoo{
		rest:        newRestClient(cfg.YahooURL, cfg, l),
		logger:      l,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// Fetch queries every symbol concurrently. Unknown symbols and symbols that
// fail are omitted; the call fails only when every symbol failed.
func (y *Yahoo) Fetch(ctx context.Context, symbols []string) (market.Quotes, error) {
	quotes := make(market.Quotes, len(symbols))
	if len(symbols) == 0 {
		return quotes, nil
	}

	var (
		mu       sync.Mutex
		failures []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(y.concurrency)

	for _, symbol := range symbols {
		sym := symbol
		g.Go(func() error {
			q, ok, err := y.fetchSymbol(gctx, sym)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				y.logger.Debug("Symbol fetch failed", zap.String("symbol", sym), zap.Error(err))
				failures = append(failures, err)
				return nil
			}
			if ok {
				quotes[sym] = q
			}
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	y.logger.Debug("Fetched equity quotes", zap.Int("fetched", len(quotes)), zap.Int("requested", len(symbols)))

	if len(quotes) == 0 && len(failures) > 0 {
		return nil, fmt.Errorf("all fetches failed: %w", failures[0])
	}
	return quotes, nil
}

func (y *Yahoo) fetchSymbol(ctx context.Context, symbol string) (market.LiveQuote, bool, error) {
	var chart yahooChartResponse
	req := y.rest.client.R().
		SetPathParam("symbol", symbol+istanbulSuffix).
		SetQueryParams(map[string]string{"interval": "1d", "range": "2d"}).
		SetResult(&chart)

	resp, err := y.rest.doRequest(ctx, "GET", "/v8/finance/chart/{symbol}", req)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		// Unknown ticker.
		return market.LiveQuote{}, false, nil
	}
	if err != nil {
		return market.LiveQuote{}, false, fmt.Errorf("failed to get chart for %s: %w", symbol, err)
	}

	body := resp.Result().(*yahooChartResponse)
	if body.Chart.Error != nil && body.Chart.Error.Code == "Not Found" {
		return market.LiveQuote{}, false, nil
	}
	if body.Chart.Error != nil {
		return market.LiveQuote{}, false, fmt.Errorf("yahoo error for %s: %s", symbol, body.Chart.Error.Description)
	}
	if len(body.Chart.Result) == 0 || len(body.Chart.Result[0].Indicators.Quote) == 0 {
		return market.LiveQuote{}, false, nil
	}

	result := body.Chart.Result[0]
	series := result.Indicators.Quote[0]

	price := result.Meta.RegularMarketPrice
	if price == 0 {
		price = lastValue(series.Close)
	}
	if price <= 0 {
		return market.LiveQuote{}, false, nil
	}

	change := decimal.Zero
	if prev := result.Meta.ChartPreviousClose; prev > 0 {
		change = decimal.NewFromFloat(price).
			Sub(decimal.NewFromFloat(prev)).
			Div(decimal.NewFromFloat(prev)).
			Mul(decimal.NewFromInt(100)).
			Round(4)
	}

	return market.LiveQuote{
		Symbol:    symbol,
		Price:     decimal.NewFromFloat(price),
		ChangePct: change,
		Volume:    decimal.NewFromFloat(lastValue(series.Volume)),
		FetchedAt: y.now(),
	}, true, nil
}

// lastValue returns the last non-null entry of a series.
func lastValue(series []*float64) float64 {
	for i := len(series) - 1; i >= 0; i-- {
		if series[i] != nil {
			return *series[i]
		}
	}
	return 0
}
