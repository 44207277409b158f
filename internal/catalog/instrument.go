package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Category discriminates the two instrument universes.
type Category string

const (
	Equity Category = "equity"
	Crypto Category = "crypto"
)

// ParseCategory accepts the canonical names plus the aliases used by the
// price proxy ("stocks", "stock").
func ParseCategory(s string) (Category, error) {
	switch s {
	case "equity", "stocks", "stock":
		return Equity, nil
	case "crypto":
		return Crypto, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Prediction is a pre-baked outlook label. It is catalog data, not the
// output of a model.
type Prediction string

const (
	Rise  Prediction = "rise"
	Watch Prediction = "watch"
	Risky Prediction = "risky"
)

func (p Prediction) valid() bool {
	return p == Rise || p == Watch || p == Risky
}

// Instrument is a tradable entry of the reference catalog. Price, Change,
// Volume and MarketCap are baselines that live quotes shadow.
type Instrument struct {
	Symbol     string          `json:"symbol"`
	Name       string          `json:"name"`
	Category   Category        `json:"category"`
	Sector     string          `json:"sector"`
	Price      decimal.Decimal `json:"price"`
	Change     decimal.Decimal `json:"change"` // 24h percent change
	Volume     decimal.Decimal `json:"volume"`
	MarketCap  decimal.Decimal `json:"market_cap"`
	Prediction Prediction      `json:"prediction"`
	Confidence int             `json:"confidence"` // 0-100
	Sentiment  string          `json:"sentiment"`
}

var (
	ErrDuplicateSymbol = errors.New("duplicate symbol")
	ErrInvalidEntry    = errors.New("invalid catalog entry")
)

func (i Instrument) validate() error {
	if i.Symbol == "" || i.Name == "" {
		return fmt.Errorf("%w: symbol and name are required", ErrInvalidEntry)
	}
	if i.Category != Equity && i.Category != Crypto {
		return fmt.Errorf("%w: %s has unknown category %q", ErrInvalidEntry, i.Symbol, i.Category)
	}
	if !i.Prediction.valid() {
		return fmt.Errorf("%w: %s has unknown prediction %q", ErrInvalidEntry, i.Symbol, i.Prediction)
	}
	if i.Confidence < 0 || i.Confidence > 100 {
		return fmt.Errorf("%w: %s confidence %d outside 0-100", ErrInvalidEntry, i.Symbol, i.Confidence)
	}
	if i.Price.IsNegative() {
		return fmt.Errorf("%w: %s has a negative price", ErrInvalidEntry, i.Symbol)
	}
	return nil
}
