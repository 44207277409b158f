package market

import (
	"context"
	"errors"
	"time"

	"borsa-dashboard-go/internal/catalog"
	"github.com/shopspring/decimal"
)

// LiveQuote is a live price snapshot for one instrument.
type LiveQuote struct {
	Symbol    string              `json:"symbol"`
	Price     decimal.Decimal     `json:"price"`
	ChangePct decimal.Decimal     `json:"change_pct"`
	Volume    decimal.Decimal     `json:"volume"`
	MarketCap decimal.NullDecimal `json:"market_cap"`
	FetchedAt time.Time           `json:"fetched_at"`
}

// Quotes maps a symbol to its latest quote.
type Quotes map[string]LiveQuote

// QuoteSource fetches quotes for a set of symbols. Symbols the upstream
// does not recognize are omitted from the result without an error.
type QuoteSource interface {
	Fetch(ctx context.Context, symbols []string) (Quotes, error)
}

// NewsItem is a single headline about an instrument.
type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	PublishedAt time.Time `json:"published_at"`
	Sentiment   string    `json:"sentiment"` // positive, neutral or negative
	Source      string    `json:"source"`
	URL         string    `json:"url"`
}

// NewsQuery identifies the instrument news is requested for.
type NewsQuery struct {
	Symbol   string           `json:"symbol"`
	Name     string           `json:"name"`
	Category catalog.Category `json:"category"`
}

// NewsSource returns headlines for an instrument.
type NewsSource interface {
	News(ctx context.Context, q NewsQuery) ([]NewsItem, error)
}

var (
	ErrNoSymbols       = errors.New("at least one symbol is required")
	ErrUnknownCategory = errors.New("unknown category")
)
