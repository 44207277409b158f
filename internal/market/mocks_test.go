package market

import (
	"context"
	"time"

	"borsa-dashboard-go/internal/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockQuoteSource is a mock implementation of QuoteSource.
type MockQuoteSource struct {
	mock.Mock
}

func (m *MockQuoteSource) Fetch(ctx context.Context, symbols []string) (Quotes, error) {
	args := m.Called(ctx, symbols)
	q, _ := args.Get(0).(Quotes)
	return q, args.Error(1)
}

// MockNewsSource is a mock implementation of NewsSource.
type MockNewsSource struct {
	mock.Mock
}

func (m *MockNewsSource) News(ctx context.Context, q NewsQuery) ([]NewsItem, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]NewsItem)
	return items, args.Error(1)
}

// fetchResult is one scripted answer of a gatedSource.
type fetchResult struct {
	quotes Quotes
	err    error
}

// gatedSource blocks every Fetch until the test releases it, so tests control
// the order in which concurrent fetches complete.
type gatedSource struct {
	calls chan chan fetchResult
}

func newGatedSource() *gatedSource {
	return &gatedSource{calls: make(chan chan fetchResult, 8)}
}

func (g *gatedSource) Fetch(ctx context.Context, symbols []string) (Quotes, error) {
	reply := make(chan fetchResult, 1)
	g.calls <- reply
	select {
	case r := <-reply:
		return r.quotes, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func quote(symbol, price, change string) LiveQuote {
	return LiveQuote{
		Symbol:    symbol,
		Price:     decimal.RequireFromString(price),
		ChangePct: decimal.RequireFromString(change),
		Volume:    decimal.NewFromInt(1000),
		FetchedAt: time.Now(),
	}
}

func testInstrument(symbol string, category catalog.Category, price string) catalog.Instrument {
	return catalog.Instrument{
		Symbol:     symbol,
		Name:       symbol + " Corp",
		Category:   category,
		Sector:     "Test",
		Price:      decimal.RequireFromString(price),
		Change:     decimal.Zero,
		Volume:     decimal.NewFromInt(10),
		MarketCap:  decimal.NewFromInt(1000000),
		Prediction: catalog.Watch,
		Confidence: 50,
		Sentiment:  "Neutral",
	}
}
